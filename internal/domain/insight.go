package domain

import (
	"strings"
	"time"
)

// Profitability is the model's qualitative rating of a deal
type Profitability string

const (
	ProfitabilityLow    Profitability = "Low"
	ProfitabilityMedium Profitability = "Medium"
	ProfitabilityHigh   Profitability = "High"
)

// ParseProfitability canonicalizes a free-text rating to one of the three
// allowed values. The second return is false for anything else.
func ParseProfitability(s string) (Profitability, bool) {
	switch {
	case strings.EqualFold(s, string(ProfitabilityLow)):
		return ProfitabilityLow, true
	case strings.EqualFold(s, string(ProfitabilityMedium)):
		return ProfitabilityMedium, true
	case strings.EqualFold(s, string(ProfitabilityHigh)):
		return ProfitabilityHigh, true
	}
	return "", false
}

// DealInsight is the advisory assessment produced by the generative backend.
// It is derived from free text and not guaranteed well-formed; a partial
// insight is surfaced together with ErrPartialInsight.
type DealInsight struct {
	DealProbabilityPercent float64       `json:"dealProbabilityPercent"`
	Profitability          Profitability `json:"profitability"`
	NextStep               string        `json:"nextStep"`
	Source                 string        `json:"source,omitempty"` // "Model" or "Cache"
	CachedAt               time.Time     `json:"cachedAt,omitzero"`
}
