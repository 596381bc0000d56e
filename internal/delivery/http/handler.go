package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/saleslens/backend/internal/domain"
	"github.com/saleslens/backend/internal/usecase"
	logx "github.com/saleslens/backend/pkg/logger"
)

// ReloadFunc rebuilds the catalog from its external source and swaps it into
// the store. Wired in main so the handler stays ignorant of file layout.
type ReloadFunc func() (industries int, err error)

// Handler holds dependencies for HTTP handlers
type Handler struct {
	recommendations *usecase.RecommendationService
	insights        *usecase.InsightService
	reload          ReloadFunc
}

// NewHandler creates a new HTTP handler. insights may be nil when enrichment
// is disabled; reload may be nil when hot reload is not wired.
func NewHandler(recommendations *usecase.RecommendationService, insights *usecase.InsightService, reload ReloadFunc) *Handler {
	return &Handler{
		recommendations: recommendations,
		insights:        insights,
		reload:          reload,
	}
}

// recommendResponse is the wire shape of a successful recommendation
type recommendResponse struct {
	domain.Recommendation
	Insight        *domain.DealInsight `json:"insight,omitempty"`
	InsightWarning string              `json:"insightWarning,omitempty"`
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "saleslens-backend",
		"version": "1.0.0",
	})
}

// Recommend resolves a (product, industry) pair and optionally enriches the
// result with a deal insight. Enrichment failures never fail the request;
// the resolved recommendation is returned with a warning instead.
func (h *Handler) Recommend(c *gin.Context) {
	var req domain.RecommendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "both 'product' and 'industry' fields are required",
		})
		return
	}

	result, err := h.recommendations.Resolve(req.Product, req.Industry)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidRequest):
			c.JSON(http.StatusBadRequest, gin.H{"error": "both 'product' and 'industry' fields are required"})
		case errors.Is(err, domain.ErrProductNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "no matching product found"})
		default:
			logx.Error().Err(err).Str("product", req.Product).Str("industry", req.Industry).Msg("resolution failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		}
		return
	}

	resp := recommendResponse{Recommendation: *result}

	if req.IncludeInsight && h.insights != nil {
		insight, err := h.insights.Enrich(c.Request.Context(), result)
		switch {
		case err == nil:
			resp.Insight = insight
		case errors.Is(err, domain.ErrPartialInsight):
			resp.Insight = insight
			resp.InsightWarning = "insight is incomplete"
		default:
			logx.Warn().Err(err).Str("product", req.Product).Msg("insight enrichment failed")
			resp.InsightWarning = "insight unavailable"
		}
	}

	c.JSON(http.StatusOK, resp)
}

// ReloadCatalog rebuilds the catalog snapshot from disk and swaps it in
// atomically, so in-flight resolutions keep reading the old snapshot.
func (h *Handler) ReloadCatalog(c *gin.Context) {
	if h.reload == nil {
		c.JSON(http.StatusNotImplemented, gin.H{"error": "catalog reload is not configured"})
		return
	}

	industries, err := h.reload()
	if err != nil {
		logx.Error().Err(err).Msg("catalog reload failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "catalog reload failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     "reloaded",
		"industries": industries,
	})
}
