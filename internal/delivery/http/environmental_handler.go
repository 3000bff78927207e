package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/productlens/backend/internal/domain"
	"github.com/productlens/backend/internal/usecase"
)

type compareHazardsRequest struct {
	Products []domain.HazardRequest `json:"products"`
}

// AnalyzeHazards handles POST /environmental/analyze-hazards
func (h *Handler) AnalyzeHazards(c *gin.Context) {
	var req domain.HazardRequest
	if !h.bind(c, &req) {
		return
	}

	assessment, err := h.services.Hazard.Assess(c.Request.Context(), &req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, assessment)
}

// CompareHazards handles POST /environmental/compare-products
func (h *Handler) CompareHazards(c *gin.Context) {
	var req compareHazardsRequest
	if !h.bind(c, &req) {
		return
	}

	comparison, err := h.services.Hazard.Compare(req.Products)
	if err != nil {
		h.respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, comparison)
}

// ComplianceChecklist handles GET /environmental/compliance-checklist
func (h *Handler) ComplianceChecklist(c *gin.Context) {
	checklist, err := usecase.ComplianceChecklist()
	if err != nil {
		h.respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, checklist)
}
