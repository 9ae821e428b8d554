package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/Felopater-Melika/Questly/config"
	"github.com/Felopater-Melika/Questly/db"
	"github.com/Felopater-Melika/Questly/internal/auth/handler"
	"github.com/Felopater-Melika/Questly/internal/auth/oauth"
	repo "github.com/Felopater-Melika/Questly/internal/auth/repository/postgres"
	"github.com/Felopater-Melika/Questly/internal/auth/service"
	"github.com/gofiber/fiber/v2"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	if err := db.RunMigrations(ctx, cfg.DBURL); err != nil {
		logger.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	pool, err := db.NewPostgresPool(ctx, cfg.DBURL)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	playerRepo := repo.NewPostgresRepository(pool)
	tokenService := service.NewTokenService(cfg.AccessTokenSecret, cfg.AccessTokenTTL, logger)
	generator := service.NewRefreshTokenGenerator(playerRepo, cfg.RefreshTokenTTL)
	rotation := service.NewRotationEngine(playerRepo, generator, cfg.TokenRetention, logger)
	playerService := service.NewPlayerService(playerRepo, tokenService, rotation, logger)

	google := oauth.NewGoogleProvider(oauth.Config{
		ClientID:     cfg.GoogleClientID,
		ClientSecret: cfg.GoogleClientSecret,
		RedirectURL:  cfg.GoogleRedirectURL,
	})

	authHandler := handler.NewAuthHandler(playerService, tokenService, google)

	app := fiber.New()
	handler.RegisterRoutes(app, authHandler)

	logger.Info("starting auth service", "port", cfg.Port, "env", cfg.Env)

	if err := app.Listen(":" + cfg.Port); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
