package main

import (
	"net/http"
	"time"

	"cheese-shop/internal/api"
	"cheese-shop/internal/auth"
	"cheese-shop/internal/catalog"
	"cheese-shop/internal/config"
	"cheese-shop/internal/db"
	"cheese-shop/internal/mail"
	redisdb "cheese-shop/internal/redis"
	"cheese-shop/internal/user"

	"github.com/sirupsen/logrus"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}
	logLevel, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	gormDB, err := db.Init(cfg)
	if err != nil {
		logger.Fatalf("Failed to initialize database: %v", err)
	}

	users := user.NewStore(gormDB)
	cat := catalog.NewStore(gormDB)
	if err := catalog.Seed(cat); err != nil {
		logger.Fatalf("Failed to seed catalog: %v", err)
	}

	rdb := redisdb.NewClient(cfg)
	sessions := auth.NewRedisSessionStore(rdb)
	mailer := mail.NewDispatcher(cfg, logger)

	h := api.NewHandlers(cfg, users, cat, sessions, mailer, logger)
	r := api.SetupRouter(h)

	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	logger.Infof("Starting server on %s", cfg.Server.Addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatalf("Server failed: %v", err)
	}
}
