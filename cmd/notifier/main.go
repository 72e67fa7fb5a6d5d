package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/tazhibayda/inventory-service/internal/config"
	"github.com/tazhibayda/inventory-service/internal/log"
	"github.com/tazhibayda/inventory-service/internal/mail"
	"github.com/tazhibayda/inventory-service/internal/metrics"
	"github.com/tazhibayda/inventory-service/internal/queue"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	logger, err := log.Init(cfg.IsProduction())
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	if cfg.RabbitURL == "" {
		logger.Fatal("RABBIT_URL is required for the notifier")
	}
	cons, err := queue.NewConsumer(cfg.RabbitURL, cfg.RabbitExchange, cfg.RabbitQueue, cfg.RabbitBindKey)
	if err != nil {
		logger.Fatal("rabbit consumer init failed", zap.Error(err))
	}
	defer cons.Close()

	sender, err := mail.NewSender(cfg)
	if err != nil {
		logger.Fatal("mail sender", zap.Error(err))
	}

	metrics.MustRegister(nil)
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	msrv := &http.Server{Addr: ":" + cfg.Port, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := msrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server", zap.Error(err))
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("notifier up",
		zap.String("exchange", cfg.RabbitExchange),
		zap.String("queue", cfg.RabbitQueue),
		zap.String("key", cfg.RabbitBindKey),
		zap.Int("workers", cfg.Concurrency),
	)

	if err := cons.Consume(ctx, cfg.Concurrency, mail.Handler(sender)); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("consumer stopped", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = msrv.Shutdown(shutdownCtx)
}
