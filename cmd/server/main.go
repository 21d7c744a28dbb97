package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spacesedan/sentiaura/config"
	"github.com/spacesedan/sentiaura/internal/clients"
	"github.com/spacesedan/sentiaura/internal/handler"
	"github.com/spacesedan/sentiaura/internal/logging"
	"github.com/spacesedan/sentiaura/internal/sentiment"
)

const shutdownTimeout = 10 * time.Second

func main() {
	env := config.AppEnv()
	config.LoadEnv(env)
	logging.InitLogger(os.Getenv("LOG_LEVEL"))

	cfg, err := config.Load()
	if err != nil {
		slog.Error("[Main] Invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	var opts []sentiment.Option
	if cfg.CrossCheck {
		opts = append(opts, sentiment.WithVaderCrossCheck(sentiment.NewVaderChecker()))
	}
	analyzer := sentiment.NewAnalyzer(clients.NewOpenAIClient(cfg.OpenAI), opts...)

	router := handler.NewRouter(cfg.AllowedOrigins, handler.NewSentimentHandler(analyzer))
	slog.Info("[Main] CORS allow-list configured", slog.Any("origins", cfg.AllowedOrigins))

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		slog.Info("[Main] Server listening", slog.String("addr", srv.Addr), slog.String("env", cfg.AppEnv))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("[Main] Server failed", slog.String("error", err.Error()))
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("[Main] Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("[Main] Graceful shutdown failed", slog.String("error", err.Error()))
	}
}
