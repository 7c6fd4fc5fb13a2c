// cmd/server/main.go
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Corphon/FactLens/internal/api"
	"github.com/Corphon/FactLens/internal/app"
	"github.com/Corphon/FactLens/internal/config"
	"github.com/Corphon/FactLens/internal/di"
)

func main() {
	log.Println("starting FactLens server...")

	// 1. Base configuration from the environment
	baseConfig, err := config.Load()
	if err != nil {
		log.Fatalf("loading configuration failed: %v", err)
	}

	// 2. Runtime directories
	createDirectories(baseConfig)

	// 3. Configuration system (environment merged with saved settings)
	if err := config.InitConfig(baseConfig.DataDir); err != nil {
		log.Fatalf("initializing configuration failed: %v", err)
	}

	// 4. Services, in dependency order
	if err := app.InitServices(); err != nil {
		log.Fatalf("initializing services failed: %v", err)
	}

	// 5. Routes only look up services, they never create them
	if err := performHealthCheck(); err != nil {
		log.Printf("warning: health check: %v", err)
	}

	router, err := api.SetupRouter()
	if err != nil {
		log.Fatalf("setting up routes failed: %v", err)
	}

	log.Printf("listening on port %s", baseConfig.Port)

	setupGracefulShutdown(router, baseConfig.Port)
}

func createDirectories(cfg *config.Config) {
	dirs := []string{
		cfg.DataDir,
		cfg.LogDir,
		filepath.Join(cfg.DataDir, "cache"),
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			log.Printf("warning: creating directory %s: %v", dir, err)
		}
	}
}

func performHealthCheck() error {
	container := di.GetContainer()

	criticalServices := []string{"llm", "config", "factcheck"}

	for _, serviceName := range criticalServices {
		if service := container.Get(serviceName); service == nil {
			return fmt.Errorf("critical service not registered: %s", serviceName)
		}
	}

	return nil
}

func setupGracefulShutdown(router *gin.Engine, port string) {
	srv := &http.Server{
		Addr:    ":" + port,
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("starting server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("forced server shutdown: %v", err)
	}

	app.Cleanup()

	log.Println("server stopped")
}
