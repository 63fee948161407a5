// Command api serves the matcher over HTTP.
package main

import (
	"flag"
	"os"

	"github.com/joho/godotenv"

	"github.com/attachmatch/attachment-match-backend/internal/api"
	"github.com/attachmatch/attachment-match-backend/internal/domain/matcher"
	"github.com/attachmatch/attachment-match-backend/internal/infrastructure/config"
	"github.com/attachmatch/attachment-match-backend/internal/infrastructure/storage"
	"github.com/attachmatch/attachment-match-backend/internal/observability"
)

func main() {
	_ = godotenv.Load()

	configPath := flag.String("config", "config.yaml", "Path to config file")
	flag.Parse()

	cfg := config.LoadOrEnv(*configPath)
	logger := observability.NewLogger(cfg.Logging)

	matcherCfg, err := cfg.MatcherConfig()
	if err != nil {
		logger.Error("Invalid matching configuration", "error", err)
		os.Exit(1)
	}
	m, err := matcher.NewMatcher(matcherCfg)
	if err != nil {
		logger.Error("Failed to build matcher", "error", err)
		os.Exit(1)
	}

	var repo storage.Repository
	if cfg.Storage.DatabasePath != "" {
		store, err := storage.NewStorage(cfg.Storage.DatabasePath)
		if err != nil {
			logger.Error("Failed to initialize storage", "error", err)
			os.Exit(1)
		}
		defer store.Close()
		repo = store
	}

	server := api.NewServer(api.Config{
		Port:           cfg.Server.Port,
		AllowedOrigins: cfg.Server.AllowedOrigins,
	}, m, repo, logger)

	if err := server.Run(); err != nil {
		logger.Error("Failed to start server", "error", err)
		os.Exit(1)
	}
}
