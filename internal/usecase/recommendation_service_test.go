package usecase

import (
	"errors"
	"reflect"
	"testing"

	"github.com/saleslens/backend/internal/domain"
	"github.com/saleslens/backend/internal/infrastructure/catalog"
)

// testStore builds a store with the widget/gadget fixture used across the
// resolver tests
func testStore(t *testing.T) *catalog.Store {
	t.Helper()

	snap := catalog.NewSnapshot()
	err := snap.LoadBaseline([]domain.ProductRecord{
		{Name: "Widget", Code: "W1", MinimumOrderQuantity: "50", PaymentTerms: "Net 30"},
		{Name: "Gadget", Code: "G1", MinimumOrderQuantity: "10", PaymentTerms: "Net 60"},
		{Name: "Broken", Code: "B1", MinimumOrderQuantity: "lots", PaymentTerms: "Net 30"},
	})
	if err != nil {
		t.Fatalf("LoadBaseline() error = %v", err)
	}

	err = snap.LoadIndustry("Apparel", []domain.IndustryOverride{
		{ProductName: "Widget-A", ProductCode: "W1-A", MinimumOrderQuantity: "20", PaymentTerms: "Net 15"},
		{ProductName: "Widget-B", ProductCode: "W1-B", MinimumOrderQuantity: "25", PaymentTerms: "Net 20"},
	})
	if err != nil {
		t.Fatalf("LoadIndustry() error = %v", err)
	}

	err = snap.LoadIndustry("Mining", []domain.IndustryOverride{
		{ProductName: "Gadget-Heavy", ProductCode: "G1-H", MinimumOrderQuantity: "not-a-number", PaymentTerms: "Net 45"},
	})
	if err != nil {
		t.Fatalf("LoadIndustry() error = %v", err)
	}

	return catalog.NewStore(snap)
}

func TestResolve(t *testing.T) {
	svc := NewRecommendationService(testStore(t), MatchPolicy{})

	t.Run("baseline values when industry has no table", func(t *testing.T) {
		got, err := svc.Resolve("Widget", "Unknown-Industry")
		if err != nil {
			t.Fatalf("Resolve() error = %v", err)
		}
		want := &domain.Recommendation{
			Product:              "Widget",
			Industry:             "Unknown-Industry",
			RecommendedProduct:   "Widget",
			RecommendedCode:      "W1",
			MinimumOrderQuantity: 50,
			PaymentTerms:         "Net 30",
		}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("Resolve() = %+v, want %+v", got, want)
		}
	})

	t.Run("baseline values when table has no matching variant", func(t *testing.T) {
		got, err := svc.Resolve("Gadget", "Apparel")
		if err != nil {
			t.Fatalf("Resolve() error = %v", err)
		}
		if got.RecommendedCode != "G1" || got.MinimumOrderQuantity != 10 || got.PaymentTerms != "Net 60" {
			t.Errorf("Resolve() = %+v, want baseline Gadget values", got)
		}
		if got.OverrideApplied() {
			t.Error("OverrideApplied() = true, want false")
		}
	})

	t.Run("override replaces all recommended fields at once", func(t *testing.T) {
		got, err := svc.Resolve("Widget", "Apparel")
		if err != nil {
			t.Fatalf("Resolve() error = %v", err)
		}
		want := &domain.Recommendation{
			Product:              "Widget",
			Industry:             "Apparel",
			RecommendedProduct:   "Widget-A",
			RecommendedCode:      "W1-A",
			MinimumOrderQuantity: 20,
			PaymentTerms:         "Net 15",
		}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("Resolve() = %+v, want %+v", got, want)
		}
		if !got.OverrideApplied() {
			t.Error("OverrideApplied() = false, want true")
		}
	})

	t.Run("unknown product fails with ProductNotFound", func(t *testing.T) {
		_, err := svc.Resolve("Unknown", "Apparel")
		if !errors.Is(err, domain.ErrProductNotFound) {
			t.Errorf("error = %v, want ErrProductNotFound", err)
		}
	})

	t.Run("missing product fails with InvalidRequest", func(t *testing.T) {
		_, err := svc.Resolve("", "Apparel")
		if !errors.Is(err, domain.ErrInvalidRequest) {
			t.Errorf("error = %v, want ErrInvalidRequest", err)
		}
	})

	t.Run("missing industry fails with InvalidRequest", func(t *testing.T) {
		_, err := svc.Resolve("Widget", "   ")
		if !errors.Is(err, domain.ErrInvalidRequest) {
			t.Errorf("error = %v, want ErrInvalidRequest", err)
		}
	})

	t.Run("non-integer baseline quantity fails with InvalidData", func(t *testing.T) {
		_, err := svc.Resolve("Broken", "Apparel")
		if !errors.Is(err, domain.ErrInvalidData) {
			t.Errorf("error = %v, want ErrInvalidData", err)
		}
	})

	t.Run("non-integer override quantity fails with InvalidData", func(t *testing.T) {
		_, err := svc.Resolve("Gadget", "Mining")
		if !errors.Is(err, domain.ErrInvalidData) {
			t.Errorf("error = %v, want ErrInvalidData", err)
		}
	})

	t.Run("industry labels are case-sensitive", func(t *testing.T) {
		got, err := svc.Resolve("Widget", "apparel")
		if err != nil {
			t.Fatalf("Resolve() error = %v", err)
		}
		// no table registered under "apparel", so baseline values stand
		if got.RecommendedCode != "W1" {
			t.Errorf("RecommendedCode = %s, want baseline W1", got.RecommendedCode)
		}
	})

	t.Run("identical inputs yield identical results", func(t *testing.T) {
		first, err := svc.Resolve("Widget", "Apparel")
		if err != nil {
			t.Fatalf("Resolve() error = %v", err)
		}
		second, err := svc.Resolve("Widget", "Apparel")
		if err != nil {
			t.Fatalf("Resolve() error = %v", err)
		}
		if !reflect.DeepEqual(first, second) {
			t.Errorf("repeated Resolve() differs: %+v vs %+v", first, second)
		}
	})
}

func TestResolveWithFoldCasePolicy(t *testing.T) {
	svc := NewRecommendationService(testStore(t), MatchPolicy{FoldCase: true, TrimSpace: true})

	got, err := svc.Resolve(" widget ", "Apparel")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if got.RecommendedCode != "W1-A" {
		t.Errorf("RecommendedCode = %s, want W1-A under folded policy", got.RecommendedCode)
	}
	// the caller's raw input is still echoed back untouched
	if got.Product != " widget " {
		t.Errorf("Product = %q, want raw input echoed", got.Product)
	}
}

func TestResolveAfterReplace(t *testing.T) {
	store := testStore(t)
	svc := NewRecommendationService(store, MatchPolicy{})

	snap := catalog.NewSnapshot()
	if err := snap.LoadBaseline([]domain.ProductRecord{
		{Name: "Widget", Code: "W2", MinimumOrderQuantity: "75", PaymentTerms: "Net 45"},
	}); err != nil {
		t.Fatalf("LoadBaseline() error = %v", err)
	}
	store.Replace(snap)

	got, err := svc.Resolve("Widget", "Apparel")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if got.RecommendedCode != "W2" || got.MinimumOrderQuantity != 75 {
		t.Errorf("Resolve() = %+v, want values from replaced snapshot", got)
	}
}
