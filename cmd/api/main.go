package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"alfredoptarigan/resume-analyzer/internal/bootstrap"
	"alfredoptarigan/resume-analyzer/internal/config"
	"alfredoptarigan/resume-analyzer/internal/handlers"
	"alfredoptarigan/resume-analyzer/internal/logger"
)

func main() {
	// Load configuration
	cfg := config.Load()

	zl, err := logger.New(logger.Options{
		Service: "api",
		JSON:    cfg.Log.JSON,
		Debug:   cfg.Log.Debug || cfg.IsDevelopment(),
	})
	if err != nil {
		log.Fatalf("❌ Failed to initialize logger: %v", err)
	}
	defer zl.Sync()

	zl.Info("✅ Config loaded successfully", zap.String("env", cfg.Server.Env))

	// Load recognizer and vocabulary once; they are shared read-only.
	analyzer, err := bootstrap.NewAnalyzer(context.Background(), cfg, zl)
	if err != nil {
		zl.Fatal("❌ Failed to initialize analyzer", zap.Error(err))
	}
	zl.Info("✅ Analyzer initialized")

	app := handlers.NewApp(analyzer, cfg.Storage.MaxFileSize, zl)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		zl.Info("🛑 Shutting down server...")
		if err := app.Shutdown(); err != nil {
			zl.Error("❌ Server forced to shutdown", zap.Error(err))
		}
	}()

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	zl.Info("🚀 Server starting", zap.String("addr", addr))

	if err := app.Listen(addr); err != nil {
		zl.Fatal("❌ Failed to start server", zap.Error(err))
	}
}
