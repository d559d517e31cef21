package main

import (
	"log"

	"loves-api/internal/config"
	"loves-api/internal/database"
	"loves-api/internal/logger"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	l := logger.Get()
	defer l.Sync()

	db, err := database.NewSQLXSQLiteDB(cfg.GetDSN())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := database.RunMigrations(db, cfg.DB.MigrationsDir); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	l.Info("Migrations completed successfully")
}
