package main

import (
	"log"
	"log/slog"

	"github.com/vbonduro/foodventory/internal/auth"
	"github.com/vbonduro/foodventory/internal/config"
	"github.com/vbonduro/foodventory/internal/db"
	"github.com/vbonduro/foodventory/internal/logging"
	"github.com/vbonduro/foodventory/internal/photostore/local"
	"github.com/vbonduro/foodventory/internal/service"
	"github.com/vbonduro/foodventory/internal/store"
	"github.com/vbonduro/foodventory/internal/vision"
	claudevision "github.com/vbonduro/foodventory/internal/vision/claude"
	"github.com/vbonduro/foodventory/internal/web"
	"github.com/vbonduro/foodventory/internal/web/templates"
)

func main() {
	cfg := config.Load()

	logger, cleanup, err := logging.New(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer cleanup()

	if cfg.SessionSecret == "" {
		logger.Error("SESSION_SECRET is required")
		return
	}

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		return
	}
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error("failed to close database", "error", err)
		}
	}()

	userStore := store.NewUserStore(database)
	pantryStore := store.NewPantryStore(database)
	itemStore := store.NewItemStore(database)
	imageStore := store.NewImageStore(database)

	photoStg, err := local.NewLocalPhotoStore(cfg.PhotoPath)
	if err != nil {
		logger.Error("failed to initialize photo store", "error", err)
		return
	}

	sessions := auth.NewSessions(cfg.SessionSecret)
	gate := auth.NewGate(sessions, userStore)
	accounts := auth.NewService(userStore, cfg.BcryptCost)

	itemService := service.NewItemService(itemStore, userStore, logger)
	pantryService := service.NewPantryService(pantryStore, itemStore, userStore, imageStore, newVisionAnalyzer(cfg, logger), photoStg, logger)
	userService := service.NewUserService(userStore, pantryStore, imageStore, photoStg, logger)

	server := web.NewServer(itemService, pantryService, userService, accounts, sessions, gate, templates.FS, logger)

	if err := server.ListenAndServe(cfg.ListenAddr); err != nil {
		logger.Error("server error", "error", err)
	}
}

// newVisionAnalyzer returns nil when no API key is configured; pantry
// scanning is reported as unavailable in that case.
func newVisionAnalyzer(cfg *config.Config, logger *slog.Logger) vision.Analyzer {
	if cfg.ClaudeAPIKey == "" {
		logger.Info("pantry scanning disabled; CLAUDE_API_KEY is not set")
		return nil
	}
	logger.Info("pantry scanning enabled", "model", cfg.ClaudeModel)
	return claudevision.NewClaudeAnalyzer(cfg.ClaudeAPIKey, cfg.ClaudeModel)
}
