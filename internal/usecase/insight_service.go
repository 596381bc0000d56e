package usecase

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/saleslens/backend/internal/domain"
	logx "github.com/saleslens/backend/pkg/logger"
)

// Package-level compiled regex patterns for cache key normalization
var (
	nonAlphanumericRegex = regexp.MustCompile(`[^a-z0-9\s]`)
	multipleSpacesRegex  = regexp.MustCompile(`\s+`)
)

const insightPromptTemplate = `Assess the following resolved sales recommendation.

Product: %s
Industry: %s
Recommended Product: %s
Recommended Code: %s
Minimum Order Quantity: %d
Payment Terms: %s

Reply with exactly three lines in this format and nothing else:
Deal Probability: <estimated probability of closing the deal, 0-100>%%
Profitability: <Low, Medium or High>
Next Step: <one recommended next action for the sales team>`

// InsightServiceConfig holds configuration for the insight service
type InsightServiceConfig struct {
	CacheTTL time.Duration
}

// InsightService turns a resolved recommendation into a deal insight by
// prompting the generative backend and parsing its reply. Its failures are
// isolated from resolution: a caller always has the recommendation in hand
// before enrichment runs.
type InsightService struct {
	client   domain.InsightClient
	cache    domain.InsightCache
	cacheTTL time.Duration
}

// NewInsightService creates an insight service with dependencies
func NewInsightService(client domain.InsightClient, cache domain.InsightCache, config InsightServiceConfig) *InsightService {
	cacheTTL := config.CacheTTL
	if cacheTTL == 0 {
		cacheTTL = 24 * time.Hour
	}

	return &InsightService{
		client:   client,
		cache:    cache,
		cacheTTL: cacheTTL,
	}
}

// Enrich produces a deal insight for a resolved recommendation.
// Flow: check cache -> prompt backend -> parse labelled lines -> cache -> return.
// Partial insights are returned with ErrPartialInsight and never cached.
func (s *InsightService) Enrich(ctx context.Context, rec *domain.Recommendation) (*domain.DealInsight, error) {
	if rec == nil {
		return nil, domain.ErrInvalidRequest
	}

	cacheKey := s.generateCacheKey(rec)

	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, cacheKey); err == nil && cached != nil {
			cached.Source = "Cache"
			return cached, nil
		}
	}

	prompt := buildInsightPrompt(rec)
	content, err := s.client.Complete(ctx, prompt)
	if err != nil {
		return nil, err
	}

	insight, parseErr := parseInsightReply(content)
	insight.Source = "Model"
	if parseErr != nil {
		logx.Warn().
			Str("product", rec.Product).
			Str("industry", rec.Industry).
			Msg("insight reply incomplete")
		return insight, parseErr
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKey, insight, s.cacheTTL); err != nil {
			logx.Warn().Err(err).Str("key", cacheKey).Msg("failed to cache insight")
		}
	}

	return insight, nil
}

// buildInsightPrompt renders the deterministic enrichment prompt
func buildInsightPrompt(rec *domain.Recommendation) string {
	return fmt.Sprintf(insightPromptTemplate,
		rec.Product,
		rec.Industry,
		rec.RecommendedProduct,
		rec.RecommendedCode,
		rec.MinimumOrderQuantity,
		rec.PaymentTerms,
	)
}

// generateCacheKey creates a normalized cache key from a recommendation.
// Format: "insight:{normalized_product}:{normalized_industry}"
func (s *InsightService) generateCacheKey(rec *domain.Recommendation) string {
	return fmt.Sprintf("insight:%s:%s",
		normalizeForCacheKey(rec.Product),
		normalizeForCacheKey(rec.Industry))
}

// normalizeForCacheKey lowercases, strips special characters and collapses
// whitespace so equivalent requests share one cache entry
func normalizeForCacheKey(s string) string {
	if s == "" {
		return ""
	}
	result := strings.ToLower(s)
	result = nonAlphanumericRegex.ReplaceAllString(result, "")
	result = multipleSpacesRegex.ReplaceAllString(result, " ")
	return strings.TrimSpace(result)
}
