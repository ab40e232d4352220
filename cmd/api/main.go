package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/clickfit/clickfit/internal/cache"
	"github.com/clickfit/clickfit/internal/config"
	"github.com/clickfit/clickfit/internal/db"
	httpx "github.com/clickfit/clickfit/internal/http"
	"github.com/clickfit/clickfit/internal/observability"
	"github.com/clickfit/clickfit/internal/storage"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	cfg := config.Load()

	log := observability.NewLogger(cfg.Env)

	// tracing is opt-in
	if cfg.OTELEndpoint != "" {
		shutdownTracer, err := observability.InitTracer(context.Background(), "clickfit-api", cfg.OTELEndpoint)

		if err != nil {
			log.Error("tracer init failed", "err", err)
		} else {
			defer func() {
				ctx, cancel := config.WithTimeout(5 * time.Second)
				defer cancel()
				_ = shutdownTracer(ctx)
			}()
		}
	}

	// connection pool + migrations; nothing works without the database
	pool, err := db.NewPool(cfg.DBURL, int32(cfg.DBMaxConns))

	if err != nil {
		log.Error("database connection failed", "err", err)
		os.Exit(1)
	}

	defer pool.Close()

	log.Info("database connected", "max_conns", cfg.DBMaxConns)

	seedCtx, cancelSeed := config.WithTimeout(5 * time.Second)

	err = db.EnsureAdminUser(seedCtx, pool, cfg)

	cancelSeed()

	if err != nil {
		log.Error("admin seed failed", "err", err)
		os.Exit(1)
	}

	images, err := storage.NewImageStore(cfg.UploadDir, "/upload_images")

	if err != nil {
		log.Error("upload dir setup failed", "err", err, "dir", cfg.UploadDir)
		os.Exit(1)
	}

	log.Info("upload directory ready", "dir", cfg.UploadDir)

	var statsCache cache.Store

	if cfg.RedisAddr != "" {
		statsCache = cache.NewRedis(cfg.RedisAddr, cfg.StatsCacheTTL)
		log.Info("stats cache backed by redis", "addr", cfg.RedisAddr)
	} else {
		statsCache = cache.NewMemory(cfg.StatsCacheTTL)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	prom := observability.NewProm(reg)

	router := httpx.NewRouter(httpx.RouterDeps{
		Log:        log,
		Pool:       pool,
		Cfg:        cfg,
		Prom:       prom,
		Metrics:    promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
		Images:     images,
		StatsCache: statsCache,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info("server starting", "port", cfg.Port, "env", cfg.Env)
		err := srv.ListenAndServe()

		if err != nil && err != http.ErrServerClosed {
			log.Error("server failed", "err", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	log.Info("server shutting down")

	shutdownCh := make(chan struct{})

	go func() {
		defer close(shutdownCh)

		ctx, cancel := config.WithTimeout(10 * time.Second)

		defer cancel()

		err := srv.Shutdown(ctx)

		if err != nil {
			log.Error("graceful shutdown failed", "err", err)

			return
		}
	}()

	select {
	case <-shutdownCh:
		log.Info("shutdown complete")

	case <-time.After(12 * time.Second):
		log.Error("shutdown timed out")
	}
}
