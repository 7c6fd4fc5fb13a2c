// internal/api/websocket.go
package api

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/Corphon/FactLens/internal/llm"
	"github.com/Corphon/FactLens/internal/models"
	"github.com/Corphon/FactLens/internal/render"
	"github.com/Corphon/FactLens/internal/utils"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Production deployments should restrict this.
		return true
	},
}

const (
	wsWriteTimeout = 10 * time.Second
	wsReadTimeout  = 60 * time.Second
)

// wsConn serializes writes to one websocket connection.
type wsConn struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (w *wsConn) writeJSON(v interface{}) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
	return w.conn.WriteJSON(v)
}

// FactCheckWebSocket streams one fact-check over a websocket. The client
// sends a single FactCheckRequest; the server forwards analyzer deltas as
// they arrive and finishes with the reconciled report.
func (h *Handler) FactCheckWebSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		utils.GetLogger().Error("websocket upgrade failed", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}
	defer conn.Close()

	ws := &wsConn{conn: conn}

	conn.SetReadDeadline(time.Now().Add(wsReadTimeout))

	var req FactCheckRequest
	if err := conn.ReadJSON(&req); err != nil {
		ws.writeJSON(gin.H{
			"type":  "error",
			"code":  ErrorBadRequest,
			"error": "Invalid request",
		})
		return
	}
	if req.Text == "" {
		ws.writeJSON(gin.H{
			"type":  "error",
			"code":  ErrorEmptyText,
			"error": "No text to fact-check",
		})
		return
	}
	if len(req.Text) > maxTextBytes {
		ws.writeJSON(gin.H{
			"type":  "error",
			"code":  ErrorTextTooLarge,
			"error": "Text exceeds the maximum size",
		})
		return
	}

	analyzer := req.analyzer()

	started := time.Now()
	var report *models.FactCheckReport
	if analyzer.Streaming {
		report, err = h.FactCheckService.StreamCheck(
			c.Request.Context(),
			req.Text,
			req.visibility(),
			analyzer,
			func(chunk llm.StreamResponse) {
				if chunk.Text == "" && chunk.Reasoning == "" {
					return
				}
				ws.writeJSON(gin.H{
					"type":      "delta",
					"text":      chunk.Text,
					"reasoning": chunk.Reasoning,
				})
			},
		)
	} else {
		report, err = h.FactCheckService.CheckText(c.Request.Context(), req.Text, req.visibility(), analyzer)
	}
	if err != nil {
		h.Metrics.RecordError("fact_check", "websocket")
		ws.writeJSON(gin.H{
			"type":  "error",
			"code":  ErrorFactCheckFailed,
			"error": err.Error(),
		})
		return
	}

	h.Metrics.RecordAnalyzerRequest(report.Provider, report.Model, report.TokensUsed, time.Since(started))
	h.Metrics.RecordFactCheck(len(report.Issues), len(report.Segments), len(report.Text))

	ws.writeJSON(gin.H{
		"type":        "report",
		"report":      report,
		"issues_html": render.IssueList(report.Issues),
		"source_html": render.SourceList(report.AllSources),
		"legend_html": render.Legend(),
	})

	conn.WriteControl(
		websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(wsWriteTimeout),
	)
}
