package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/productlens/backend/internal/domain"
)

// ListProducts handles GET /products
func (h *Handler) ListProducts(c *gin.Context) {
	products, err := h.services.Products.List(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, products)
}

// SearchProducts handles GET /products/search?q=
func (h *Handler) SearchProducts(c *gin.Context) {
	products, err := h.services.Products.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, products)
}

// GetProduct handles GET /products/:id
func (h *Handler) GetProduct(c *gin.Context) {
	product, err := h.services.Products.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, product)
}

// CreateProduct handles POST /products
func (h *Handler) CreateProduct(c *gin.Context) {
	var req domain.Product
	if !h.bind(c, &req) {
		return
	}

	product, err := h.services.Products.Create(c.Request.Context(), &req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, product)
}

// UpdateProduct handles PUT /products/:id
func (h *Handler) UpdateProduct(c *gin.Context) {
	var patch domain.ProductPatch
	if !h.bind(c, &patch) {
		return
	}

	product, err := h.services.Products.Update(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		h.respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, product)
}

// DeleteProduct handles DELETE /products/:id
func (h *Handler) DeleteProduct(c *gin.Context) {
	product, err := h.services.Products.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, product)
}

// AnalyzeProduct handles GET /products/:id/analysis
func (h *Handler) AnalyzeProduct(c *gin.Context) {
	analysis, err := h.services.Products.Analyze(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, analysis)
}
