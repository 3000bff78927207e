package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/productlens/backend/internal/domain"
)

type compareProductsRequest struct {
	Products []domain.ComparableProduct `json:"products"`
}

type marketShareRequest struct {
	Category string `json:"category"`
	Region   string `json:"region"`
}

// AnalyzeCompetitors handles POST /competitors/analyze
func (h *Handler) AnalyzeCompetitors(c *gin.Context) {
	var req domain.CompetitorQuery
	if !h.bind(c, &req) {
		return
	}

	report, err := h.services.Competitors.Analyze(c.Request.Context(), &req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, report)
}

// GetCompetitor handles GET /competitors/:id
func (h *Handler) GetCompetitor(c *gin.Context) {
	profile, err := h.services.Competitors.Profile(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, profile)
}

// CompareProducts handles POST /competitors/compare
func (h *Handler) CompareProducts(c *gin.Context) {
	var req compareProductsRequest
	if !h.bind(c, &req) {
		return
	}

	comparison, err := h.services.Comparison.Compare(req.Products)
	if err != nil {
		h.respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, comparison)
}

// MarketShare handles POST /competitors/market-share
func (h *Handler) MarketShare(c *gin.Context) {
	var req marketShareRequest
	if !h.bind(c, &req) {
		return
	}

	share, err := h.services.Competitors.MarketShare(c.Request.Context(), req.Category, req.Region)
	if err != nil {
		h.respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, share)
}
