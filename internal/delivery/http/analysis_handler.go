package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/productlens/backend/internal/domain"
)

// AnalyzeSentiment handles POST /analysis/sentiment
func (h *Handler) AnalyzeSentiment(c *gin.Context) {
	var req domain.SentimentRequest
	if !h.bind(c, &req) {
		return
	}

	result, err := h.services.Sentiment.Analyze(&req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, result)
}

// AnalyzePerformance handles POST /analysis/performance
func (h *Handler) AnalyzePerformance(c *gin.Context) {
	var req domain.PerformanceRequest
	if !h.bind(c, &req) {
		return
	}

	result, err := h.services.Performance.Analyze(&req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, result)
}

// MarketTrends handles POST /analysis/market-trends
func (h *Handler) MarketTrends(c *gin.Context) {
	var req domain.MarketTrendRequest
	if !h.bind(c, &req) {
		return
	}

	result, err := h.services.Competitors.MarketTrends(c.Request.Context(), &req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, result)
}
