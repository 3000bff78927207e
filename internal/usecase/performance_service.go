package usecase

import (
	"math"

	"github.com/productlens/backend/internal/domain"
)

// Performance score weights
const (
	conversionWeight  = 0.3
	ratingWeight      = 10.0
	reviewWeight      = 0.1
	reviewCountCap    = 100
	competitiveBonus  = 20.0
	averagePriceBonus = 10.0
	maxPerformance    = 100.0
	maxRating         = 5.0
)

// PerformanceService scores a product's commercial performance
type PerformanceService struct {
	rules RuleSet[PerformanceMetrics]
}

// NewPerformanceService creates a performance scorer using PerformanceRules
func NewPerformanceService() *PerformanceService {
	return &PerformanceService{rules: PerformanceRules}
}

// Analyze computes the performance score, price position and advice.
// Without competitor prices the subject price is its own reference, so the
// position is always "average".
func (s *PerformanceService) Analyze(request *domain.PerformanceRequest) (*domain.PerformanceResult, error) {
	if err := validatePerformanceRequest(request); err != nil {
		return nil, err
	}

	conversionRate := 0.0
	if request.Views > 0 {
		conversionRate = float64(request.Sales) / float64(request.Views) * 100
	}

	reviewCount := len(request.Reviews)

	reference := request.Price
	if len(request.CompetitorPrices) > 0 {
		reference = mean(request.CompetitorPrices)
	}
	priceAnalysis := analyzePrice(request.Price, reference)

	score := calculatePerformanceScore(conversionRate, request.Rating, reviewCount, priceAnalysis.Position)

	return &domain.PerformanceResult{
		PerformanceScore: score,
		ConversionRate:   round2(conversionRate),
		AvgRating:        request.Rating,
		ReviewCount:      reviewCount,
		PriceAnalysis:    priceAnalysis,
		Recommendations: s.rules.Evaluate(PerformanceMetrics{
			ConversionRate: conversionRate,
			AvgRating:      request.Rating,
			PricePosition:  priceAnalysis.Position,
			ReviewCount:    reviewCount,
		}),
	}, nil
}

// calculatePerformanceScore blends conversion, rating, review volume and price
// position into an integer in [0, 100]
func calculatePerformanceScore(conversionRate, rating float64, reviewCount int, position string) int {
	bonus := 0.0
	switch position {
	case domain.PositionCompetitive:
		bonus = competitiveBonus
	case domain.PositionAverage:
		bonus = averagePriceBonus
	}

	score := conversionRate*conversionWeight +
		rating*ratingWeight +
		float64(min(reviewCount, reviewCountCap))*reviewWeight +
		bonus

	score = math.Max(0, math.Min(maxPerformance, score))
	return int(math.Round(score))
}

func validatePerformanceRequest(request *domain.PerformanceRequest) error {
	if request == nil || request.Price <= 0 {
		return domain.NewValidationError("price", "Price is required")
	}
	if request.Views < 0 {
		return domain.NewValidationError("views", "Views cannot be negative")
	}
	if request.Sales < 0 {
		return domain.NewValidationError("sales", "Sales cannot be negative")
	}
	if request.Rating < 0 || request.Rating > maxRating {
		return domain.NewValidationError("rating", "Rating must be between 0 and 5")
	}
	for _, p := range request.CompetitorPrices {
		if p <= 0 {
			return domain.NewValidationError("competitorPrices", "Competitor prices must be greater than zero")
		}
	}
	return nil
}
