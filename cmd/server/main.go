package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Ko-stant/gridmaze/internal/api"
	"github.com/Ko-stant/gridmaze/internal/config"
	"github.com/Ko-stant/gridmaze/internal/session"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[APP] [FATAL] %v", err)
	}
	gin.SetMode(cfg.GinMode)
	StartProfiling(GetProfilingConfigFromEnv())

	logger := NewLogger()
	metrics := NewIntentMetrics()
	manager := session.NewManager(cfg.Session, logger)
	handlers := NewIntentHandlers(logger, metrics)

	router := api.NewRouter(api.Config{
		Addr:      cfg.Addr(),
		BaseURL:   "/api",
		StaticDir: "internal/web/static",
		Controllers: []api.Controller{
			api.NewPageController(manager),
			api.NewStreamController(manager, handlers, logger),
			api.NewSessionController(manager),
		},
	})
	srv := &http.Server{Addr: router.Addr(), Handler: router.Handler()}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.SessionIdleTTL > 0 {
		go manager.RunExpiry(ctx, max(cfg.SessionIdleTTL/2, time.Second), cfg.SessionIdleTTL)
	}

	go func() {
		log.Printf("listening on %s (mode=%s)", cfg.Addr(), cfg.Session.Mode)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	<-ctx.Done()
	log.Printf("shutting down")
	manager.CloseAll()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
	metrics.LogMetrics(logger)
}
