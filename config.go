package main

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Config holds all environment variables for the catalog service.
type Config struct {
	Env          string        // "development" or "production"
	Port         string        // Service port (default: 8082)
	MongoURL     string        // MongoDB connection string
	MongoDB      string        // Database name
	RedisURL     string        // Redis connection string
	KafkaBrokers []string      // Kafka broker addresses; empty disables events
	KafkaTopic   string        // Storefront event topic
	CartTTL      time.Duration // Cart/wishlist expiry
	BulkDir      string        // Storage dir for queued CSV imports
}

// LoadConfig loads environment variables into a Config struct and validates
// required fields.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		Env:        os.Getenv("APP_ENV"),
		Port:       os.Getenv("PORT"),
		MongoURL:   os.Getenv("MONGO_URL"),
		MongoDB:    os.Getenv("MONGO_DB"),
		RedisURL:   os.Getenv("REDIS_URL"),
		KafkaTopic: os.Getenv("KAFKA_TOPIC"),
		BulkDir:    os.Getenv("BULK_IMPORT_DIR"),
	}

	if cfg.Env == "" {
		cfg.Env = "development"
	}
	if cfg.Port == "" {
		cfg.Port = "8082"
	}
	if cfg.MongoDB == "" {
		cfg.MongoDB = "prepfox"
	}
	if cfg.RedisURL == "" {
		cfg.RedisURL = "redis://localhost:6379"
	}
	if cfg.KafkaTopic == "" {
		cfg.KafkaTopic = "storefront-events"
	}
	if cfg.BulkDir == "" {
		cfg.BulkDir = "./data/bulk_imports"
	}

	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		for _, b := range strings.Split(brokers, ",") {
			if trimmed := strings.TrimSpace(b); trimmed != "" {
				cfg.KafkaBrokers = append(cfg.KafkaBrokers, trimmed)
			}
		}
	}

	cfg.CartTTL = 7 * 24 * time.Hour
	if ttl := os.Getenv("CART_TTL"); ttl != "" {
		parsed, err := time.ParseDuration(ttl)
		if err != nil {
			return nil, fmt.Errorf("invalid CART_TTL: %w", err)
		}
		cfg.CartTTL = parsed
	}

	// Validate required fields
	if cfg.MongoURL == "" {
		return nil, fmt.Errorf("MONGO_URL is required")
	}

	return cfg, nil
}
