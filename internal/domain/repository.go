package domain

import (
	"context"
	"time"
)

// InsightCache defines the interface for caching deal insights
type InsightCache interface {
	Get(ctx context.Context, key string) (*DealInsight, error)
	Set(ctx context.Context, key string, insight *DealInsight, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// InsightClient defines the interface for the generative text backend.
// Complete sends one prompt as a single-turn request and returns the raw
// reply text.
type InsightClient interface {
	Complete(ctx context.Context, prompt string) (string, error)
}
