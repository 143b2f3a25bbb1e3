package main // Entry point package

import (
	"log"  // Logging library
	"time" // timezone loading

	"github.com/joho/godotenv"    // .env loader for local development
	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/ucrs/court-reservation/internal/config"
	"github.com/ucrs/court-reservation/internal/database"
	"github.com/ucrs/court-reservation/internal/handler"
	"github.com/ucrs/court-reservation/internal/line"
	"github.com/ucrs/court-reservation/internal/lock"
	"github.com/ucrs/court-reservation/internal/middleware"
	"github.com/ucrs/court-reservation/internal/queue"
	"github.com/ucrs/court-reservation/internal/repository"
	"github.com/ucrs/court-reservation/internal/router"
)

func main() {
	// Load .env when present; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		log.Fatalf("invalid APP_TIMEZONE %q: %v", cfg.Timezone, err)
	}

	// Redis is optional: without it the join guard falls back to an
	// in-process one and rate limiting / response caching pass through.
	rdb := config.NewRedisClient()
	guard := lock.New(rdb)

	resRepo := repository.NewReservationRepo(db)
	memberRepo := repository.NewMemberRepo(db)
	eventRepo := repository.NewSpecialEventRepo(db)

	lineClient := line.NewClient(cfg.LineChannelToken)
	announce := lineClient != nil && cfg.LineGroupID != ""

	resHandler := handler.NewReservationHandler(resRepo, memberRepo, guard, loc, announce)
	memberHandler := handler.NewMemberHandler(memberRepo)
	eventHandler := handler.NewSpecialEventHandler(eventRepo)
	adminHandler := handler.NewAdminHandler(cfg.AdminPasswordHash, cfg.JWTSecret, cfg.AdminTokenTTLMin)
	webhookHandler := handler.NewWebhookHandler(cfg.LineChannelSecret, lineClient, resRepo, memberRepo, guard)
	contactHandler := handler.NewContactHandler(lineClient, cfg.LineAdminUserID)

	e := echo.New()
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
	e.Use(middleware.NewRedisCache(config.LoadCacheConfig(), rdb))

	router.RegisterRoutes(e)
	router.RegisterReservations(e, resHandler)
	router.RegisterMembers(e, memberHandler)
	router.RegisterSpecialEvents(e, eventHandler, cfg.JWTSecret)
	router.RegisterAdmin(e, adminHandler)
	router.RegisterLine(e, webhookHandler, contactHandler)

	if announce {
		go func() {
			if err := queue.StartNotifyConsumer(lineClient, cfg.LineGroupID, cfg.AppBaseURL); err != nil {
				log.Printf("notify consumer stopped: %v", err)
			}
		}()
	} else {
		log.Println("LINE announcements disabled (no channel token or group id)")
	}

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
