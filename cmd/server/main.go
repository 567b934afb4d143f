package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	_ "github.com/joho/godotenv/autoload"

	"github.com/mmynk/quicksplit/internal/api"
	"github.com/mmynk/quicksplit/internal/auth"
	"github.com/mmynk/quicksplit/internal/config"
	"github.com/mmynk/quicksplit/internal/service"
	"github.com/mmynk/quicksplit/internal/storage/sqlite"
	"github.com/mmynk/quicksplit/pkg/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logging.Setup(cfg.LogLevel, cfg.LogJSON)

	defaults, err := cfg.SplitDefaults()
	if err != nil {
		slog.Error("Invalid default split policy", "error", err)
		os.Exit(1)
	}

	tokenDuration, err := time.ParseDuration(cfg.TokenDuration)
	if err != nil {
		slog.Error("Invalid TOKEN_DURATION", "value", cfg.TokenDuration, "error", err)
		os.Exit(1)
	}

	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", cfg.DBPath)

	svc := service.NewReceiptService(store, defaults)
	authn := auth.NewPasswordAuthenticator(store)
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, tokenDuration)

	router := api.NewRouter(svc, authn, jwtManager)

	addr := fmt.Sprintf(":%d", cfg.Port)
	slog.Info("Server starting", "address", addr)
	if err := router.Run(addr); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}
