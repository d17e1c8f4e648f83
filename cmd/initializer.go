package main

import (
	"database/sql"
	"log"

	"github.com/redis/go-redis/v9"

	"diraBack/internal/config"
	"diraBack/internal/handlers"
	"diraBack/internal/models"
	"diraBack/internal/repositories"
	"diraBack/internal/services"
	"diraBack/utils"
)

type application struct {
	cfg      config.Config
	errorLog *log.Logger
	infoLog  *log.Logger

	apartmentHandler *handlers.ApartmentHandler
	likeHandler      *handlers.LikeHandler
	statsHandler     *handlers.StatsHandler
	openHouseHandler *handlers.OpenHouseHandler
	userHandler      *handlers.UserHandler

	userRepo  *repositories.UserRepository
	wsManager *WebSocketManager
	db        *sql.DB
}

func initializeApp(db *sql.DB, rdb *redis.Client, cfg config.Config, errorLog, infoLog *log.Logger) *application {
	// Repositories
	apartmentRepo := repositories.ApartmentRepository{DB: db}
	likeRepo := repositories.ApartmentLikeRepository{DB: db}
	openHouseRepo := repositories.OpenHouseRepository{DB: db}
	userRepo := repositories.UserRepository{DB: db}
	cache := &repositories.ApartmentCache{Client: rdb, TTL: cfg.Redis.CacheTTL}

	tokenManager, err := utils.NewManager(cfg.Auth.SigningKey)
	if err != nil {
		errorLog.Fatal(err)
	}

	// Services
	apartmentService := &services.ApartmentService{ApartmentRepo: &apartmentRepo, Cache: cache}
	likeService := &services.LikeService{LikeRepo: &likeRepo, ApartmentRepo: &apartmentRepo, Cache: cache}
	openHouseService := &services.OpenHouseService{OpenHouseRepo: &openHouseRepo, ApartmentRepo: &apartmentRepo, Cache: cache}
	statsService := &services.StatsService{}
	userService := &services.UserService{UserRepo: &userRepo, TokenManager: tokenManager, SigningKey: cfg.Auth.SigningKey}

	app := &application{
		cfg:      cfg,
		errorLog: errorLog,
		infoLog:  infoLog,
		userRepo: &userRepo,
		db:       db,
	}

	broadcast := func(event models.FeedEvent) {
		if app.wsManager != nil {
			app.wsManager.Broadcast(event)
		}
	}

	// Handlers
	app.apartmentHandler = &handlers.ApartmentHandler{Service: apartmentService, Events: broadcast}
	app.likeHandler = &handlers.LikeHandler{Service: likeService, Events: broadcast}
	app.statsHandler = &handlers.StatsHandler{ApartmentService: apartmentService, Stats: statsService}
	app.openHouseHandler = &handlers.OpenHouseHandler{Service: openHouseService}
	app.userHandler = &handlers.UserHandler{Service: userService}

	return app
}
