package domain

// ProductRecord is one row of the baseline catalog. Name is the natural key
// and is assumed unique; MinimumOrderQuantity stays a string until the
// resolver coerces it, because rows arrive as raw tabular data.
type ProductRecord struct {
	Name                 string `json:"name"`
	Code                 string `json:"code"`
	MinimumOrderQuantity string `json:"minimumOrderQuantity"`
	PaymentTerms         string `json:"paymentTerms"`
}

// IndustryOverride is one row of an industry-scoped override table.
// ProductName frequently extends a baseline name with an industry suffix
// (e.g. "Widget-A" for the Apparel variant of "Widget").
type IndustryOverride struct {
	ProductName          string `json:"industryProductName"`
	ProductCode          string `json:"industryProductCode"`
	MinimumOrderQuantity string `json:"minimumOrderQuantity"`
	PaymentTerms         string `json:"paymentTerms"`
}

// RecommendRequest is a recommendation lookup request
type RecommendRequest struct {
	Product        string `json:"product" binding:"required"`
	Industry       string `json:"industry" binding:"required"`
	IncludeInsight bool   `json:"include_insight"`
}

// Recommendation is the resolved, user-facing answer. Product and Industry
// always echo the caller's request; the recommended fields come either all
// from the baseline or all from a matched override, never mixed.
type Recommendation struct {
	Product              string `json:"product"`
	Industry             string `json:"industry"`
	RecommendedProduct   string `json:"recommendedProduct"`
	RecommendedCode      string `json:"recommendedCode"`
	MinimumOrderQuantity int    `json:"minimumOrderQuantity"`
	PaymentTerms         string `json:"paymentTerms"`
}

// OverrideApplied reports whether the recommendation carries override values
// rather than baseline ones.
func (r *Recommendation) OverrideApplied() bool {
	return r.RecommendedProduct != r.Product
}
