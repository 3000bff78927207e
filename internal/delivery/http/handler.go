package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/productlens/backend/internal/domain"
	"github.com/productlens/backend/internal/usecase"
)

const (
	serviceName    = "productlens-backend"
	serviceVersion = "1.0.0"
)

// Services bundles the usecases the handlers delegate to
type Services struct {
	Sentiment   *usecase.SentimentService
	Performance *usecase.PerformanceService
	Competitors *usecase.CompetitorService
	Comparison  *usecase.ComparisonService
	Hazard      *usecase.HazardService
	Products    *usecase.ProductService
}

// Handler holds dependencies for HTTP handlers
type Handler struct {
	services   Services
	production bool
	logger     *zap.Logger
}

// NewHandler creates a new HTTP handler. In production error details are
// never sent to clients.
func NewHandler(services Services, production bool, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		services:   services,
		production: production,
		logger:     logger,
	}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"service":   serviceName,
		"version":   serviceVersion,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func respondOK(c *gin.Context, status int, data any) {
	c.JSON(status, gin.H{"success": true, "data": data})
}

// bind decodes the JSON body into dst and answers 400 on malformed input
func (h *Handler) bind(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		resp := errorResponse{Error: "Invalid request body"}
		if !h.production {
			resp.Details = err.Error()
		}
		c.AbortWithStatusJSON(http.StatusBadRequest, resp)
		return false
	}
	return true
}

// respondError maps domain errors onto HTTP statuses
func (h *Handler) respondError(c *gin.Context, err error) {
	var validation *domain.ValidationError
	switch {
	case errors.As(err, &validation):
		c.AbortWithStatusJSON(http.StatusBadRequest, errorResponse{Error: validation.Message})
	case errors.Is(err, domain.ErrProductNotFound):
		c.AbortWithStatusJSON(http.StatusNotFound, errorResponse{Error: "Product not found"})
	case errors.Is(err, domain.ErrCompetitorNotFound):
		c.AbortWithStatusJSON(http.StatusNotFound, errorResponse{Error: "Competitor not found"})
	case errors.Is(err, domain.ErrRateLimited):
		c.AbortWithStatusJSON(http.StatusTooManyRequests, errorResponse{Error: "Too many requests"})
	default:
		h.logger.Error("request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Error(err))
		resp := errorResponse{Error: "Internal server error"}
		if !h.production {
			resp.Details = err.Error()
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, resp)
	}
}
