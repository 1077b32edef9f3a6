package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"spacemissions/internal/config"
	"spacemissions/internal/database"
	"spacemissions/internal/handler"
	"spacemissions/internal/ingest"
	"spacemissions/internal/middleware"
	"spacemissions/internal/queue"
	"spacemissions/internal/repository"
	"spacemissions/internal/router"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, relying on environment")
	}

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}
	defer db.Close()

	// Redis is optional. With no client the cache and rate limiter degrade
	// to pass-throughs.
	rdb := config.NewRedisClient()

	rockets := repository.NewRocketRepo(db)
	missions := repository.NewMissionRepo(db)
	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	importStore := repository.NewImportRepo(db)

	authH := handler.NewAuthHandler(cfg, users, tokens)
	missionH := handler.NewMissionHandler(missions, rockets)
	rocketH := handler.NewRocketHandler(rockets, missions)
	importH := handler.NewImportHandler(
		ingest.FileSource{Path: cfg.ImportCSVPath},
		ingest.NewImporter(importStore),
		cfg.ImportCSVPath,
	)

	cacheMW := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)
	limitMW := middleware.NewRateLimit(config.LoadRateLimitConfig(), rdb)

	// Background consumer for import.completed events. It reconnects on
	// broker failures and never takes the API down.
	go func() {
		if err := queue.StartImportConsumer(); err != nil {
			log.Printf("import consumer stopped: %v", err)
		}
	}()

	e := echo.New()
	e.HideBanner = true

	router.RegisterRoutes(e)
	router.RegisterAuth(e, authH, cfg.JWTSecret)
	router.RegisterCatalog(e, missionH, rocketH, cfg.JWTSecret, cacheMW, limitMW)
	router.RegisterImport(e, importH, cfg.JWTSecret)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
