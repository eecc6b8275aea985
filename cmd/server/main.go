package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/arvind-ks/roomhub/internal/api"
	"github.com/arvind-ks/roomhub/internal/config"
	"github.com/arvind-ks/roomhub/internal/db"
	"github.com/arvind-ks/roomhub/internal/middleware"
	"github.com/arvind-ks/roomhub/internal/observ"
	"github.com/arvind-ks/roomhub/internal/repository/postgres"
	"github.com/arvind-ks/roomhub/internal/session"
	"github.com/arvind-ks/roomhub/internal/web"
)

// sessionTTL is how long a login lasts. Cookie and Redis key share it.
const sessionTTL = 7 * 24 * time.Hour

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := observ.NewLogger(cfg.Env, cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer logger.Sync()

	// Startup has no deadline: take as long as the database needs.
	// Per-request contexts begin once the server is up.
	database, err := db.New(context.Background(), cfg.DatabaseURL, logger)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer database.Close()

	if err := database.Migrate(context.Background()); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}

	redisOpts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return fmt.Errorf("parse redis URL: %w", err)
	}
	rdb := redis.NewClient(redisOpts)
	defer rdb.Close()
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return fmt.Errorf("ping redis: %w", err)
	}

	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		return fmt.Errorf("create upload dir: %w", err)
	}

	sessions := session.NewStore(rdb, cfg.SessionSecret, sessionTTL)

	pool := database.Pool()
	userRepo := postgres.NewUserStore(pool)
	topicRepo := postgres.NewTopicStore(pool)
	roomRepo := postgres.NewRoomStore(pool)
	messageRepo := postgres.NewMessageStore(pool)

	authHandler := web.NewAuthHandler(userRepo, sessions, logger)
	roomHandler := web.NewRoomHandler(roomRepo, topicRepo, messageRepo, logger)
	messageHandler := web.NewMessageHandler(messageRepo, logger)
	userHandler := web.NewUserHandler(userRepo, roomRepo, messageRepo, topicRepo, cfg.UploadDir, logger)
	feedHandler := web.NewFeedHandler(topicRepo, messageRepo, logger)
	apiHandler := api.NewRoomHandler(roomRepo, logger)

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	srv := gin.New()
	srv.Use(gin.Logger(), gin.Recovery())
	srv.LoadHTMLGlob("templates/*.html")
	srv.Static("/uploads", cfg.UploadDir)

	// Every request learns who it belongs to; only the mutating routes
	// below require that to be someone.
	srv.Use(middleware.CurrentUser(sessions, userRepo, logger))

	web.RegisterRoutes(srv, authHandler, roomHandler, messageHandler, userHandler, feedHandler)

	srv.GET("/api", apiHandler.Routes)
	srv.GET("/api/rooms", apiHandler.List)
	srv.GET("/api/rooms/:id", apiHandler.Get)

	logger.Info("starting RoomHub",
		zap.String("port", cfg.Port),
		zap.String("env", cfg.Env),
	)

	return srv.Run(":" + cfg.Port)
}
