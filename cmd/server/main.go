package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"quoteservice/internal/api"
	"quoteservice/internal/app"
	"quoteservice/internal/config"
)

func main() {
	cfg, err := config.Load(os.Getenv("CONFIG_FILE"))
	if err != nil {
		logrus.WithError(err).Fatal("config")
	}
	log := cfg.Log.NewLogger(os.Stderr)

	a, err := app.New(cfg, log)
	if err != nil {
		log.WithError(err).Fatal("wiring")
	}
	// Cache and quota live in this process only; replicas do not share them.
	log.WithFields(logrus.Fields{
		"cache_ttl":   time.Duration(cfg.Cache.TTLSeconds) * time.Second,
		"daily_limit": a.Quota.Limit(),
		"upstream":    cfg.UpstreamActive(),
	}).Info("quote state is per instance")

	timeout := time.Duration(cfg.Server.RequestTimeoutSec) * time.Second
	handler := api.New(a.Service, api.Options{
		LegacyPrefix:    cfg.Server.LegacyPrefix,
		MaxBatchSymbols: cfg.Server.MaxBatchSymbols,
		RequestTimeout:  timeout,
		CORSAllowOrigin: cfg.Server.CORSAllowOrigin,
		Logger:          log,
	}).Handler()

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      timeout + 10*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.WithField("addr", srv.Addr).Info("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("server")
		}
	}()

	// graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()
	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Warn("shutdown")
	}
}
