package usecase

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/saleslens/backend/internal/domain"
	"github.com/saleslens/backend/internal/infrastructure/catalog"
	logx "github.com/saleslens/backend/pkg/logger"
)

// RecommendationService resolves (product, industry) requests against the
// catalog store. It is pure and reentrant: it only reads the snapshot current
// at call time, so any number of resolutions may run concurrently.
type RecommendationService struct {
	store   *catalog.Store
	matcher *Matcher
}

// NewRecommendationService creates a resolver over the given store
func NewRecommendationService(store *catalog.Store, policy MatchPolicy) *RecommendationService {
	return &RecommendationService{
		store:   store,
		matcher: NewMatcher(policy),
	}
}

// Resolve produces the recommendation for a (product, industry) pair.
// Precedence: an industry override that prefix-matches the product replaces
// all four recommended fields at once; otherwise the baseline values stand.
// An industry without a registered table, or without a matching variant, is
// not an error.
func (s *RecommendationService) Resolve(product, industry string) (*domain.Recommendation, error) {
	if strings.TrimSpace(product) == "" || strings.TrimSpace(industry) == "" {
		return nil, domain.ErrInvalidRequest
	}

	snap := s.store.Snapshot()

	baseline := s.matcher.MatchBaseline(snap.Baseline(), product)
	if baseline == nil {
		return nil, fmt.Errorf("%w: %q", domain.ErrProductNotFound, product)
	}

	moq, err := coerceQuantity(baseline.MinimumOrderQuantity)
	if err != nil {
		return nil, fmt.Errorf("%w: baseline %q min order qty %q", domain.ErrInvalidData, baseline.Name, baseline.MinimumOrderQuantity)
	}

	result := &domain.Recommendation{
		Product:              product,
		Industry:             industry,
		RecommendedProduct:   baseline.Name,
		RecommendedCode:      baseline.Code,
		MinimumOrderQuantity: moq,
		PaymentTerms:         baseline.PaymentTerms,
	}

	if table, ok := snap.IndustryTable(industry); ok {
		if override := s.matcher.MatchIndustryOverride(table, product); override != nil {
			moq, err := coerceQuantity(override.MinimumOrderQuantity)
			if err != nil {
				return nil, fmt.Errorf("%w: industry %q override %q min order qty %q",
					domain.ErrInvalidData, industry, override.ProductName, override.MinimumOrderQuantity)
			}
			result.RecommendedProduct = override.ProductName
			result.RecommendedCode = override.ProductCode
			result.MinimumOrderQuantity = moq
			result.PaymentTerms = override.PaymentTerms

			logx.Debug().
				Str("product", product).
				Str("industry", industry).
				Str("override", override.ProductName).
				Msg("industry override applied")
		}
	}

	return result, nil
}

// coerceQuantity converts a raw tabular quantity to an integer
func coerceQuantity(raw string) (int, error) {
	return strconv.Atoi(strings.TrimSpace(raw))
}
