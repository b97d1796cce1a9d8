package main

import (
	"log"
	"os"

	"github.com/alumninet/alumninet/internal/bootstrap"
	"github.com/alumninet/alumninet/internal/config"
	"github.com/alumninet/alumninet/internal/server"
	"github.com/alumninet/alumninet/pkg/database"
	"github.com/redis/go-redis/v9"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	db := database.Connect()

	if err := bootstrap.Migrate(db); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	if err := bootstrap.SeedSuperadmin(db, os.Getenv("SUPERADMIN_EMAIL"), os.Getenv("SUPERADMIN_PASSWORD")); err != nil {
		log.Fatalf("failed to seed superadmin: %v", err)
	}

	if cfg.AppEnv == "development" {
		if err := bootstrap.SeedDevData(db); err != nil {
			log.Fatalf("failed to seed development data: %v", err)
		}
	}

	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Printf("invalid REDIS_URL, realtime notifications disabled: %v", err)
		} else {
			redisClient = redis.NewClient(opts)
		}
	}

	srv := server.NewServer(cfg, db, redisClient)

	log.Printf("listening on :%s", cfg.Port)
	if err := srv.Run(":" + cfg.Port); err != nil {
		log.Fatalf("server exited with error: %v", err)
	}
}
