// Command matchgen runs one matching-cache refresh and exits. It is the
// manual counterpart of the scheduled generate-matchings step.
package main

import (
	"context"
	"log"
	"os"

	"go.uber.org/zap"

	"github.com/prepmatch/backend/pkg/config"
	"github.com/prepmatch/backend/pkg/llm"
	"github.com/prepmatch/backend/pkg/llm/gemini"
	"github.com/prepmatch/backend/pkg/llm/openrouter"
	"github.com/prepmatch/backend/pkg/logger"
	"github.com/prepmatch/backend/pkg/matching"
	pgrepo "github.com/prepmatch/backend/pkg/repository/postgres"
	"github.com/prepmatch/backend/pkg/storage/postgres"
)

func main() {
	cfg := config.Load()

	zlog, err := logger.New(cfg.LogJSON, cfg.LogDebug)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer zlog.Sync() //nolint:errcheck

	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL non défini")
	}
	ctx := context.Background()
	pool, err := postgres.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("postgres connect: %v", err)
	}
	defer pool.Close()

	userRepo, err := pgrepo.NewUserRepository(pool)
	if err != nil {
		log.Fatalf("init user repo: %v", err)
	}
	postingRepo, err := pgrepo.NewJobPostingRepository(pool)
	if err != nil {
		log.Fatalf("init job posting repo: %v", err)
	}
	matchingRepo, err := pgrepo.NewMatchingRepository(pool)
	if err != nil {
		log.Fatalf("init matching repo: %v", err)
	}
	applicationRepo, err := pgrepo.NewApplicationRepository(pool)
	if err != nil {
		log.Fatalf("init application repo: %v", err)
	}

	var chat llm.ChatModel
	switch cfg.LLMProvider {
	case "gemini":
		chat, err = gemini.New(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			log.Fatalf("gemini client: %v", err)
		}
	case "openrouter":
		chat = openrouter.New(
			cfg.OpenRouterAPIKey,
			cfg.OpenRouterBase,
			cfg.OpenRouterModel,
			cfg.OpenRouterAppTitle,
			cfg.OpenRouterReferer,
		)
	}

	writer := matching.NewWriter(postingRepo, userRepo, applicationRepo, matchingRepo, nil, chat, zlog)

	report, err := writer.GenerateAll(ctx)
	zlog.Info("matching run",
		zap.Int("postings", report.Postings),
		zap.Int("failed", report.Failed),
		zap.Int("rows", report.Rows))
	if err != nil {
		zlog.Error("run failed", zap.Error(err))
		os.Exit(1)
	}
}
