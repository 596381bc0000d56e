package usecase

import (
	"strings"

	"github.com/saleslens/backend/internal/domain"
)

// MatchPolicy is the single normalization policy applied to every comparison
// the matcher performs. The source data used different normalization per
// lookup; this makes the choice explicit and uniform instead.
type MatchPolicy struct {
	FoldCase  bool
	TrimSpace bool
}

// Normalize applies the policy to an identifier
func (p MatchPolicy) Normalize(s string) string {
	if p.TrimSpace {
		s = strings.TrimSpace(s)
	}
	if p.FoldCase {
		s = strings.ToLower(s)
	}
	return s
}

// Matcher compares product identifiers against catalog tables
type Matcher struct {
	policy MatchPolicy
}

// NewMatcher creates a matcher with the given normalization policy
func NewMatcher(policy MatchPolicy) *Matcher {
	return &Matcher{policy: policy}
}

// MatchBaseline finds the baseline row whose name equals productName under
// the configured policy. Duplicate names resolve to the first occurrence in
// insertion order. Returns nil when nothing matches.
func (m *Matcher) MatchBaseline(table []domain.ProductRecord, productName string) *domain.ProductRecord {
	query := m.policy.Normalize(productName)
	for i := range table {
		if m.policy.Normalize(table[i].Name) == query {
			return &table[i]
		}
	}
	return nil
}

// MatchIndustryOverride finds the first row, in table order, whose product
// name starts with productName. Prefix matching lets one baseline product fan
// out to several industry SKU variants without the caller knowing the suffix;
// first match is the tie-break when variants share a prefix. Returns nil for
// an empty table or when no name carries the prefix.
func (m *Matcher) MatchIndustryOverride(table []domain.IndustryOverride, productName string) *domain.IndustryOverride {
	query := m.policy.Normalize(productName)
	if query == "" {
		return nil
	}
	for i := range table {
		if strings.HasPrefix(m.policy.Normalize(table[i].ProductName), query) {
			return &table[i]
		}
	}
	return nil
}
