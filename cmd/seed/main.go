package main

import (
	"os"

	"moviedeck/internal/config"
	"moviedeck/internal/database"
	"moviedeck/internal/pkg/logger"
	"moviedeck/internal/server"
)

func main() {
	cfg, err := config.LoadServer()
	if err != nil {
		logger.Default().Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	log := logger.Default()

	db, err := database.Connect(cfg.Database)
	if err != nil {
		log.Error("failed to connect", "error", err)
		os.Exit(1)
	}

	n, err := server.SeedCatalog(db)
	if err != nil {
		log.Error("seeding failed", "error", err)
		os.Exit(1)
	}
	log.Info("catalog seeded", "inserted", n)
}
