package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"kisan_backend/internal/directory/repository"
	apphttp "kisan_backend/internal/http"
	"kisan_backend/internal/http/router"
	"kisan_backend/internal/mandi"
	"kisan_backend/internal/mandi/scraper"
	"kisan_backend/internal/mandi/service"
	"kisan_backend/platform/cache"
	"kisan_backend/platform/config"
	"kisan_backend/platform/db"
	"kisan_backend/platform/logger"
	"kisan_backend/platform/validator"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)
	log.Info("starting mandi api", "env", cfg.Env, "addr", cfg.HTTPAddr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ========================================================================
	// Infrastructure Layer
	// ========================================================================

	mongo, err := db.ConnectWithRetry(ctx, cfg, log, 5, 2*time.Second)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		panic("failed to connect to database: " + err.Error())
	}
	defer func() { _ = mongo.Close() }()
	log.Info("database connection established", "database", cfg.GetMongoDatabase())

	layout, err := scraper.LoadLayout(cfg.GetMandiLayoutFile())
	if err != nil {
		log.Error("failed to load scraper layout", "error", err)
		panic("failed to load scraper layout: " + err.Error())
	}

	identifierCache, closeCache := initIdentifierCache(ctx, cfg, log)
	if closeCache != nil {
		defer closeCache()
	}

	val := validator.New()

	// ========================================================================
	// Domain Modules (Composition Root)
	// ========================================================================

	agmarknet := scraper.New(cfg, layout, log)
	identifiers := service.NewCachedIdentifiers(agmarknet, identifierCache, cfg.GetIdentifierCacheTTL(), log)
	directoryRepo := repository.New(mongo.Database(), cfg)
	mandiModule := mandi.NewModule(directoryRepo, identifiers, agmarknet, val, log)

	app := &apphttp.App{
		Name:    "Mandi Price API",
		Config:  cfg,
		Logger:  log,
		Health:  mongo,
		Modules: []apphttp.Module{mandiModule},
	}

	if err := apphttp.Serve(ctx, cfg.GetHTTPAddr(), router.New(app), log); err != nil {
		log.Error("server error", "error", err)
		panic("server error: " + err.Error())
	}
}

func initIdentifierCache(ctx context.Context, cfg config.CacheConfig, log *logger.Logger) (cache.Cache, func()) {
	if cfg.GetIdentifierCacheTTL() <= 0 {
		log.Info("identifier cache disabled")
		return nil, nil
	}
	if cfg.GetRedisURL() == "" {
		log.Info("identifier cache using process memory", "ttl", cfg.GetIdentifierCacheTTL())
		return cache.NewMemory(), nil
	}

	redisCache, err := cache.NewRedis(ctx, cfg.GetRedisURL(), "kisan:")
	if err != nil {
		log.Warn("redis unavailable; identifier cache using process memory", "error", err)
		return cache.NewMemory(), nil
	}
	log.Info("identifier cache using redis", "ttl", cfg.GetIdentifierCacheTTL())
	return redisCache, func() { _ = redisCache.Close() }
}
