package domain

import "time"

// Event subjects
const (
	SubjectProductCreated   = "product.created"
	SubjectProductUpdated   = "product.updated"
	SubjectProductDeleted   = "product.deleted"
	SubjectHazardHighRisk   = "analysis.hazard.high_risk"
	SubjectAnalysisComplete = "analysis.product.completed"
)

// ProductEvent is published on product lifecycle changes
type ProductEvent struct {
	ProductID string    `json:"product_id"`
	Name      string    `json:"name"`
	Category  string    `json:"category"`
	Price     float64   `json:"price"`
	Timestamp time.Time `json:"timestamp"`
}

// AnalysisEvent is published when an aggregated analysis finishes
type AnalysisEvent struct {
	ProductID    string    `json:"product_id"`
	RiskScore    *float64  `json:"risk_score,omitempty"`
	FailedFacets []string  `json:"failed_facets,omitempty"`
	Timestamp    time.Time `json:"timestamp"`
}
