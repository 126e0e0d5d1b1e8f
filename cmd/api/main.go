package main

import (
	"os"

	"moviedeck/internal/config"
	"moviedeck/internal/pkg/logger"
	"moviedeck/internal/server"

	jwtsvc "moviedeck/internal/pkg/jwt"
)

func main() {
	cfg, err := config.LoadServer()
	if err != nil {
		logger.Default().Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	logger.Init(cfg.AppEnv, os.Getenv("DEBUG") == "true")
	log := logger.Default()

	j := jwtsvc.New(cfg.JWTSecret, cfg.TokenTTL)
	srv, err := server.Open(cfg.Database, j, log)
	if err != nil {
		log.Error("failed to start", "error", err)
		os.Exit(1)
	}

	router := srv.Router(cfg.RateLimit, cfg.RateBurst)
	log.Info("listening", "port", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
