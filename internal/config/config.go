package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Catalog modes.
const (
	ModeMock   = "mock"
	ModeRemote = "remote"
)

type Config struct {
	AppEnv          string
	AppPort         string
	CatalogMode     string
	CatalogURL      string
	StorefrontToken string
	SessionDBPath   string
	JWTSecret       string
}

func LoadConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		AppEnv:          os.Getenv("APP_ENV"),
		AppPort:         os.Getenv("APP_PORT"),
		CatalogMode:     os.Getenv("CATALOG_MODE"),
		CatalogURL:      os.Getenv("CATALOG_URL"),
		StorefrontToken: os.Getenv("STOREFRONT_TOKEN"),
		SessionDBPath:   os.Getenv("SESSION_DB_PATH"),
		JWTSecret:       os.Getenv("JWT_SECRET"),
	}

	if cfg.AppPort == "" {
		cfg.AppPort = "8080"
	}
	if cfg.CatalogMode == "" {
		cfg.CatalogMode = ModeMock
	}
	if cfg.SessionDBPath == "" {
		cfg.SessionDBPath = "session.db"
	}
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = "dev-secret"
	}

	if cfg.CatalogMode != ModeMock && cfg.CatalogMode != ModeRemote {
		log.Fatalf("CATALOG_MODE must be %q or %q, got %q", ModeMock, ModeRemote, cfg.CatalogMode)
	}
	if cfg.CatalogMode == ModeRemote && (cfg.CatalogURL == "" || cfg.StorefrontToken == "") {
		log.Fatal("CATALOG_URL and STOREFRONT_TOKEN are required in remote mode")
	}

	return cfg
}
