package main // Entry point package

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/csemotors/motors/internal/config"
	"github.com/csemotors/motors/internal/database"
	"github.com/csemotors/motors/internal/handler"
	"github.com/csemotors/motors/internal/queue"
	"github.com/csemotors/motors/internal/repository"
	"github.com/csemotors/motors/internal/router"
	"github.com/csemotors/motors/internal/session"
	"github.com/csemotors/motors/internal/view"
)

func main() {
	// A .env file is optional; real deployments set the variables directly.
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := database.Bootstrap(ctx, db); err != nil {
		cancel()
		log.Fatalf("bootstrap schema: %v", err)
	}
	cancel()

	// Redis backs the flash store; nil falls back to the in-process store.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable, using in-process flash store")
	}
	flash := session.NewStore(rdb)

	classifications := repository.NewClassificationRepo(db)
	inventory := repository.NewInventoryRepo(db)
	accounts := repository.NewAccountRepo(db)

	renderer, err := view.NewRenderer()
	if err != nil {
		log.Fatalf("parse templates: %v", err)
	}

	e := echo.New()
	e.HideBanner = true
	e.Renderer = renderer
	e.HTTPErrorHandler = handler.NewHTTPErrorHandler(classifications)
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())
	e.Static("/css", "public/css")
	e.Static("/images", "public/images")

	base := handler.NewBaseHandler(classifications, flash)
	inv := handler.NewInventoryHandler(classifications, inventory, flash)
	acct := handler.NewAccountHandler(cfg, accounts, classifications, flash)

	router.RegisterRoutes(e)
	router.RegisterBase(e, base)
	router.RegisterInventory(e, inv)
	router.RegisterAccount(e, acct, cfg.JWTSecret, flash)
	router.RegisterError(e)

	// Audit consumer runs for the lifetime of the process and reconnects on
	// its own.
	go queue.StartInventoryConsumer()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
