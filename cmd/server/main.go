package main

import (
	"fmt"

	"github.com/joho/godotenv"

	"github.com/saleslens/backend/config"
	httpDelivery "github.com/saleslens/backend/internal/delivery/http"
	"github.com/saleslens/backend/internal/infrastructure/cache"
	"github.com/saleslens/backend/internal/infrastructure/catalog"
	"github.com/saleslens/backend/internal/infrastructure/insight"
	"github.com/saleslens/backend/internal/usecase"
	logx "github.com/saleslens/backend/pkg/logger"
)

func main() {
	// Local development convenience; missing .env is fine
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logx.Fatal().Err(err).Msg("failed to load configuration")
	}

	logx.Init(cfg.Server.Environment)
	logx.Info().
		Str("environment", cfg.Server.Environment).
		Str("port", cfg.Server.Port).
		Str("data_dir", cfg.Catalog.DataDir).
		Msg("starting saleslens backend")

	// Load the catalog once at startup; malformed data is fatal here rather
	// than undefined behavior per request
	snap, err := catalog.LoadDirectory(cfg.Catalog.DataDir, cfg.Catalog.BaselineFile)
	if err != nil {
		logx.Fatal().Err(err).Msg("failed to load catalog")
	}
	store := catalog.NewStore(snap)
	logx.Info().
		Int("baseline_rows", len(snap.Baseline())).
		Int("industries", len(snap.Industries())).
		Msg("catalog loaded")

	policy := usecase.MatchPolicy{
		FoldCase:  cfg.Matching.FoldCase,
		TrimSpace: cfg.Matching.TrimSpace,
	}
	recommendations := usecase.NewRecommendationService(store, policy)

	var insights *usecase.InsightService
	if cfg.Insight.Enabled {
		client := insight.NewClient(cfg.Insight.APIKey, cfg.Insight.BaseURL, cfg.Insight.Model, cfg.Insight.Timeout)
		insights = usecase.NewInsightService(client, cache.NewMemoryCache(), usecase.InsightServiceConfig{
			CacheTTL: cfg.Cache.TTL,
		})
		logx.Info().Str("model", cfg.Insight.Model).Dur("timeout", cfg.Insight.Timeout).Msg("insight enrichment enabled")
	} else {
		logx.Info().Msg("insight enrichment disabled")
	}

	reload := func() (int, error) {
		snap, err := catalog.LoadDirectory(cfg.Catalog.DataDir, cfg.Catalog.BaselineFile)
		if err != nil {
			return 0, err
		}
		store.Replace(snap)
		return len(snap.Industries()), nil
	}

	handler := httpDelivery.NewHandler(recommendations, insights, reload)
	router := httpDelivery.SetupRouter(cfg, handler)

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	logx.Info().Str("addr", addr).Msg("server listening")

	if err := router.Run(addr); err != nil {
		logx.Fatal().Err(err).Msg("server exited")
	}
}
