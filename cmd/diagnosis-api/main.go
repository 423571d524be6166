package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"kisan_backend/internal/diagnosis"
	geminiclient "kisan_backend/internal/diagnosis/client"
	"kisan_backend/internal/directory/repository"
	apphttp "kisan_backend/internal/http"
	"kisan_backend/internal/http/router"
	"kisan_backend/internal/speech"
	speechclient "kisan_backend/internal/speech/client"
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
	if err := cfg.ValidateDiagnosis(); err != nil {
		panic("invalid diagnosis config: " + err.Error())
	}

	log := logger.New(cfg.Env)
	log.Info("starting diagnosis api", "env", cfg.Env, "addr", cfg.HTTPAddr)

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

	gemini, err := geminiclient.New(ctx, cfg, nil, log)
	if err != nil {
		log.Error("failed to initialize gemini client", "error", err)
		panic("failed to initialize gemini client: " + err.Error())
	}

	tts := speechclient.New(cfg, log)
	defer func() { _ = tts.Close() }()

	val := validator.New()

	// ========================================================================
	// Domain Modules (Composition Root)
	// ========================================================================

	directoryRepo := repository.New(mongo.Database(), cfg)
	diagnosisModule := diagnosis.NewModule(directoryRepo, gemini, cfg, log)
	speechModule := speech.NewModule(tts, cfg, val, log)

	app := &apphttp.App{
		Name:    "Crop Diagnosis API",
		Config:  cfg,
		Logger:  log,
		Health:  mongo,
		Modules: []apphttp.Module{diagnosisModule, speechModule},
	}

	if err := apphttp.Serve(ctx, cfg.GetHTTPAddr(), router.New(app), log); err != nil {
		log.Error("server error", "error", err)
		panic("server error: " + err.Error())
	}
}
