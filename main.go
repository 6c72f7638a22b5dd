package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/voyagent/voyagent/internal/pkg/config"
	"github.com/voyagent/voyagent/internal/pkg/logger"
	"github.com/voyagent/voyagent/internal/server"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Error loading .env file, using environment variables")
	}

	if err := logger.Init(zapcore.InfoLevel); err != nil {
		return err
	}
	lg := logger.Log
	defer lg.Sync()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	otelShutdown, err := server.InitObservability("voyagent", cfg.MetricsPort, lg)
	if err != nil {
		return err
	}
	defer func() {
		if err := otelShutdown(context.Background()); err != nil {
			lg.Error("Failed to shutdown OpenTelemetry", zap.Error(err))
		}
	}()

	srv, err := server.New(cfg, lg)
	if err != nil {
		return err
	}

	srv.SetRouter(srv.SetupRouter())

	server.StartPprofServer(cfg.PprofPort, lg)

	httpServer := srv.HTTPServer()

	done := make(chan bool, 1)
	go server.GracefulShutdown(httpServer, lg, done)

	lg.Info("Server starting", zap.String("port", cfg.ServerPort))
	if err := httpServer.ListenAndServe(); err != nil {
		lg.Error("Server error", zap.Error(err))
	}

	<-done
	lg.Info("Graceful shutdown complete")

	return nil
}
