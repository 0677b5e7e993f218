package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/boy52hz/OASIP-US-3-V2/internal/booking"
	"github.com/boy52hz/OASIP-US-3-V2/internal/config"
	"github.com/boy52hz/OASIP-US-3-V2/internal/database"
	"github.com/boy52hz/OASIP-US-3-V2/internal/filestore"
	"github.com/boy52hz/OASIP-US-3-V2/internal/handler"
	"github.com/boy52hz/OASIP-US-3-V2/internal/queue"
	"github.com/boy52hz/OASIP-US-3-V2/internal/repository"
	"github.com/boy52hz/OASIP-US-3-V2/internal/router"
	queuepublisher "github.com/boy52hz/OASIP-US-3-V2/internal/service"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	files, err := filestore.New(cfg.AttachmentDir)
	if err != nil {
		log.Fatalf("filestore: %v", err)
	}

	events := repository.NewEventRepo(db)
	categories := repository.NewCategoryRepo(db)
	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)

	svc := booking.NewService(events, categories, users, categories, files, queuepublisher.New(), nil)

	// The consumer turns booking.created messages into confirmation mail.
	go func() {
		if err := queue.StartBookingConsumer(); err != nil {
			log.Printf("booking consumer stopped: %v", err)
		}
	}()

	e := echo.New()
	rdb := config.NewRedisClient()
	router.Register(e, router.Handlers{
		Auth:       handler.NewAuthHandler(cfg, users, tokens),
		Events:     handler.NewEventHandler(svc, files),
		Categories: handler.NewCategoryHandler(categories),
	}, cfg, rdb)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
