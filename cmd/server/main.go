//go:generate swag init -d ../../ -g cmd/server/main.go -o ../../docs

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"gopkg.in/DataDog/dd-trace-go.v1/ddtrace/tracer"

	_ "github.com/tazhibayda/inventory-service/docs"
	"github.com/tazhibayda/inventory-service/internal/assets"
	"github.com/tazhibayda/inventory-service/internal/catalog"
	"github.com/tazhibayda/inventory-service/internal/config"
	"github.com/tazhibayda/inventory-service/internal/domain"
	api "github.com/tazhibayda/inventory-service/internal/http"
	"github.com/tazhibayda/inventory-service/internal/log"
	"github.com/tazhibayda/inventory-service/internal/metrics"
	"github.com/tazhibayda/inventory-service/internal/oauth"
	"github.com/tazhibayda/inventory-service/internal/queue"
	"github.com/tazhibayda/inventory-service/internal/repo"
	"github.com/tazhibayda/inventory-service/internal/session"
)

// @title Inventory Service API
// @version 1.0
// @description Inventory admin backend: auth, users, catalog lookups and products.
// @BasePath /api/v1
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

	if cfg.DDEnabled {
		tracer.Start(tracer.WithService(cfg.DDService), tracer.WithEnv(cfg.Env))
		defer tracer.Stop()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	store, err := repo.NewStore(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		logger.Fatal("mongo connect", zap.Error(err))
	}
	defer store.Close(context.Background())
	if err := store.EnsureIndexes(ctx); err != nil {
		logger.Fatal("mongo indexes", zap.Error(err))
	}

	rds := repo.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	defer rds.Close()
	if err := rds.Ping(ctx); err != nil {
		logger.Warn("redis not reachable yet", zap.Error(err))
	}

	var pub queue.Publisher = queue.NewNoop()
	if cfg.RabbitURL != "" {
		rp, err := queue.NewRabbit(cfg.RabbitURL, cfg.RabbitExchange)
		if err != nil {
			logger.Fatal("rabbit publisher", zap.Error(err))
		}
		pub = rp
	} else {
		logger.Warn("RABBIT_URL empty, mail events are dropped")
	}
	defer pub.Close()

	images, err := assets.New(ctx, cfg)
	if err != nil {
		logger.Fatal("asset store", zap.Error(err))
	}

	sessions := session.NewManager(cfg, store.Users(), rds.Sessions(cfg.RefreshTTL), pub, images)

	catalogs := make(map[domain.Kind]*catalog.Service, len(domain.Kinds))
	refs := make(map[domain.Kind]catalog.Referrer, len(domain.Kinds))
	for _, k := range domain.Kinds {
		svc := catalog.NewService(store.Catalog(k), images)
		catalogs[k] = svc
		refs[k] = svc
	}
	products := catalog.NewProductService(store.Products(), refs, images)

	metrics.MustRegister(nil)

	h := api.NewHandler(sessions, catalogs, products)
	h.Checks = map[string]api.Pinger{"mongo": store, "redis": rds}
	h.Secure = cfg.IsProduction()
	h.RateLimitPerMin = cfg.RateLimitPerMin
	h.CORSOrigins = cfg.CORSOrigins
	if cfg.DDEnabled {
		h.TraceService = cfg.DDService
	}
	if cfg.GoogleEnabled() {
		stateKey := cfg.OAuthStateSecret
		if stateKey == "" {
			stateKey = cfg.AccessSecret
		}
		h.Google = oauth.NewGoogle(cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.GoogleRedirectURL, stateKey)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           api.NewRouter(h),
		ReadHeaderTimeout: 10 * time.Second,
	}

	srvErr := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			srvErr <- err
		}
	}()
	logger.Info("inventory-service listening", zap.String("port", cfg.Port), zap.String("env", cfg.Env))

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	select {
	case s := <-sig:
		logger.Info("shutting down", zap.String("signal", s.String()))
	case err := <-srvErr:
		logger.Error("server error", zap.Error(err))
	}

	shutdownCtx, stop := context.WithTimeout(context.Background(), 10*time.Second)
	defer stop()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", zap.Error(err))
	}
}
