package main

import (
	"net/http"

	"go.uber.org/zap"

	"suxxus-store/internal/catalog/fixture"
	"suxxus-store/internal/catalogd"
	"suxxus-store/internal/config"
	"suxxus-store/internal/logger"
)

func main() {
	cfg := config.LoadConfig()
	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	backend := fixture.New(cfg.JWTSecret)
	server := catalogd.New(backend, cfg.StorefrontToken)

	logger.L().Info("catalogd listening",
		zap.String("port", cfg.AppPort),
		zap.Bool("token_required", cfg.StorefrontToken != ""),
	)
	if err := http.ListenAndServe(":"+cfg.AppPort, server.Handler()); err != nil {
		logger.L().Fatal("server stopped", zap.Error(err))
	}
}
