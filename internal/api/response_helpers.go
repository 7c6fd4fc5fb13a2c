// internal/api/response_helpers.go
package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "github.com/Corphon/FactLens/internal/errors"
	"github.com/Corphon/FactLens/internal/utils"
)

// APIResponse is the standard response envelope.
type APIResponse struct {
	Success   bool        `json:"success"`
	Data      interface{} `json:"data,omitempty"`
	Error     *APIError   `json:"error,omitempty"`
	Message   string      `json:"message,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	RequestID string      `json:"request_id,omitempty"`
}

// APIError is the standard error payload.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// ResponseHelper builds the standard response envelopes.
type ResponseHelper struct{}

func NewResponseHelper() *ResponseHelper {
	return &ResponseHelper{}
}

// Success writes a 200 envelope.
func (rh *ResponseHelper) Success(c *gin.Context, data interface{}, message ...string) {
	response := &APIResponse{
		Success:   true,
		Data:      data,
		Timestamp: time.Now(),
		RequestID: rh.getRequestID(c),
	}

	if len(message) > 0 {
		response.Message = message[0]
	}

	c.JSON(http.StatusOK, response)
}

// BadRequest writes a 400 envelope.
func (rh *ResponseHelper) BadRequest(c *gin.Context, code, message string, err error) {
	rh.writeError(c, http.StatusBadRequest, code, message, err)
}

// NotFound writes a 404 envelope.
func (rh *ResponseHelper) NotFound(c *gin.Context, code, message string, err error) {
	rh.writeError(c, http.StatusNotFound, code, message, err)
}

// ServiceUnavailable writes a 503 envelope.
func (rh *ResponseHelper) ServiceUnavailable(c *gin.Context, code, message string, err error) {
	rh.writeError(c, http.StatusServiceUnavailable, code, message, err)
}

// InternalError writes a 500 envelope. The underlying error is logged,
// never echoed to the client.
func (rh *ResponseHelper) InternalError(c *gin.Context, code, message string, err error) {
	if err != nil {
		utils.GetLogger().Error("internal error", map[string]interface{}{
			"code":       code,
			"error":      err.Error(),
			"path":       c.Request.URL.Path,
			"request_id": rh.getRequestID(c),
		})
	}
	rh.writeError(c, http.StatusInternalServerError, code, message, nil)
}

// FromAppError maps a typed application error to the matching HTTP status.
func (rh *ResponseHelper) FromAppError(c *gin.Context, err *apperrors.AppError) {
	switch err.Type {
	case apperrors.ErrorTypeValidation:
		rh.writeError(c, http.StatusBadRequest, err.Code, err.Message, err.Err)
	case apperrors.ErrorTypeNotFound:
		rh.writeError(c, http.StatusNotFound, err.Code, err.Message, err.Err)
	case apperrors.ErrorTypeConflict:
		rh.writeError(c, http.StatusConflict, err.Code, err.Message, err.Err)
	case apperrors.ErrorTypeUnavailable:
		rh.writeError(c, http.StatusServiceUnavailable, err.Code, err.Message, err.Err)
	case apperrors.ErrorTypeTimeout:
		rh.writeError(c, http.StatusGatewayTimeout, err.Code, err.Message, err.Err)
	default:
		rh.InternalError(c, err.Code, err.Message, err.Err)
	}
}

func (rh *ResponseHelper) writeError(c *gin.Context, status int, code, message string, err error) {
	apiErr := &APIError{
		Code:    code,
		Message: message,
	}
	if err != nil {
		apiErr.Details = err.Error()
	}

	c.JSON(status, &APIResponse{
		Success:   false,
		Error:     apiErr,
		Timestamp: time.Now(),
		RequestID: rh.getRequestID(c),
	})
}

func (rh *ResponseHelper) getRequestID(c *gin.Context) string {
	if id, exists := c.Get("request_id"); exists {
		if s, ok := id.(string); ok {
			return s
		}
	}
	return ""
}
