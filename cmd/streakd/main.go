package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"streakboard/internal/auth"
	"streakboard/internal/config"
	"streakboard/internal/db"
	httpx "streakboard/internal/http"
	"streakboard/internal/jobs"
	"streakboard/internal/logging"
	"streakboard/internal/motivation"
	"streakboard/internal/store"
)

func main() {
	cfg, err := config.Load()
	logger := logging.Setup(cfg.LogLevel)
	if err != nil {
		logger.Error("config", "error", err)
		os.Exit(1)
	}
	time.Local = cfg.Location

	gdb, err := db.Connect(cfg)
	if err != nil {
		logger.Error("connect database", "error", err)
		os.Exit(1)
	}
	if err := db.AutoMigrateAndIndexes(gdb); err != nil {
		logger.Error("migrate", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var generator motivation.Generator = motivation.Static{}
	if cfg.GeminiAPIKey != "" {
		g, err := motivation.NewGemini(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			logger.Warn("gemini unavailable, using built-in motivations", "error", err)
		} else {
			generator = g
		}
	}

	r := httpx.NewRouter(cfg, httpx.Deps{
		DB:        gdb,
		JWT:       auth.NewJWT(cfg.JWTSecret),
		Generator: generator,
		Logger:    logger,
	})

	// worker
	worker := &jobs.Worker{
		ID:       "worker-1",
		Repo:     &jobs.Repo{DB: gdb},
		Refiller: &jobs.Refiller{Store: &store.Store{DB: gdb}, Generator: generator},
		Logger:   logger,
	}
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		worker.Run(ctx)
	}()

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("listening", "addr", cfg.HTTPAddr, "tz", cfg.Location.String())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("serve", "error", err)
			os.Exit(1)
		}
	}()

	// graceful shutdown
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	<-ch

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warn("shutdown", "error", err)
	}

	// stop the worker and let an in-flight job record its status
	cancel()
	wg.Wait()
}
