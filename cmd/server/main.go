package main

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/lib/pq"

	"github.com/kiranb/doc-checker/internal/api"
	"github.com/kiranb/doc-checker/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("Failed to ping database: %v", err)
	}

	server := api.NewServer(api.ServerConfig{
		DB:                       db,
		JWTSecret:                cfg.JWTSecret,
		Thresholds:               cfg.Thresholds,
		MaxConcurrentExtractions: cfg.MaxConcurrentExtractions,
	})

	fmt.Printf("Starting doc-checker server on port %s\n", cfg.Port)
	if err := server.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
