package usecase

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/productlens/backend/internal/domain"
)

// roundTo rounds half away from zero to the given number of decimal places
func roundTo(v float64, places int32) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	return decimal.NewFromFloat(v).Round(places).InexactFloat64()
}

func round2(v float64) float64 { return roundTo(v, 2) }

func round1(v float64) float64 { return roundTo(v, 1) }

// mean returns the arithmetic mean of values, or 0 for an empty slice
func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// classifyPrice places price relative to reference. Equality maps to average.
func classifyPrice(price, reference float64) string {
	switch {
	case price < reference:
		return domain.PositionCompetitive
	case price > reference:
		return domain.PositionPremium
	default:
		return domain.PositionAverage
	}
}

// priceDifferencePct is the signed percentage by which price deviates from reference
func priceDifferencePct(price, reference float64) float64 {
	return (price - reference) / reference * 100
}

// analyzePrice builds the rounded PriceAnalysis of price against reference
func analyzePrice(price, reference float64) domain.PriceAnalysis {
	return domain.PriceAnalysis{
		Position:           classifyPrice(price, reference),
		Difference:         round2(priceDifferencePct(price, reference)),
		AvgCompetitorPrice: round2(reference),
	}
}
