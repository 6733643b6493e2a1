package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"parcel-kpi-service/internal/adapters/cache"
	"parcel-kpi-service/internal/api"
	"parcel-kpi-service/internal/config"
	"parcel-kpi-service/internal/platform/db"
	"parcel-kpi-service/internal/platform/obs"
	"parcel-kpi-service/internal/services"
	"syscall"
	"time"

	"github.com/joho/godotenv"
)

// main is the application composition root.
// It wires the configured record store (and optional batch cache) behind the
// RecordSource port and starts the HTTP server.
func main() {
	log := obs.Logger()
	if err := godotenv.Load(); err != nil {
		log.Info("No .env file found (using environment variables)")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	if err := obs.Init(obs.LogConfig{
		Level:      cfg.LogLevel,
		File:       cfg.LogFile,
		MaxSizeMB:  50,
		MaxBackups: 5,
		JSON:       cfg.LogJSON,
	}); err != nil {
		log.Fatal(err)
	}
	log = obs.Logger()

	rules, err := config.LoadRules(cfg.RulesPath)
	if err != nil {
		log.Fatal(err)
	}
	rulesStore := services.NewRulesStore(rules)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	src, closeStore, err := openRecordSource(ctx, cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer closeStore()

	// Batches are immutable once the day is closed, so a cache in front of the store
	// absorbs repeated report requests for the same date.
	switch {
	case cfg.RedisAddr != "":
		rdb, err := db.OpenRedis(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			log.Fatal(err)
		}
		defer rdb.Close()

		src = cache.NewCachedRecordSource(src, cache.NewRedisBatchCache(rdb, cfg.BatchCacheTTL()))
		log.WithField("addr", cfg.RedisAddr).Info("redis batch cache enabled")

	case cfg.BatchCachePath != "":
		cacheDB, err := db.OpenSQLite(cfg.BatchCachePath)
		if err != nil {
			log.Fatal(err)
		}
		defer cacheDB.Close()

		batchCache := cache.NewSqliteBatchCache(cacheDB, cfg.BatchCacheTTL())
		if err := batchCache.InitSchema(ctx); err != nil {
			log.Fatal(err)
		}
		src = cache.NewCachedRecordSource(src, batchCache)
		log.WithField("path", cfg.BatchCachePath).Info("sqlite batch cache enabled")
	}

	if cfg.RulesPath != "" {
		go func() {
			if err := config.WatchRules(ctx, cfg.RulesPath, rulesStore.Set); err != nil {
				log.WithError(err).Error("rules watcher stopped")
			}
		}()
	}

	router := api.NewRouter(src, rulesStore, api.Options{
		RateLimitRPS:   cfg.RateLimitRPS,
		RateLimitBurst: cfg.RateLimitBurst,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.WithField("store", cfg.RecordStore).Infof("Server listening addr=:%s", cfg.Port)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
}
