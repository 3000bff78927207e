package usecase

import (
	"sort"
	"strings"

	"github.com/productlens/backend/internal/domain"
)

// minComparedProducts is the smallest group a comparison accepts
const minComparedProducts = 2

// ComparisonService compares a group of products on price, features and market position
type ComparisonService struct {
	productRules RuleSet[ComparedProductMetrics]
	spreadRules  RuleSet[PriceSpreadMetrics]
}

// NewComparisonService creates an aggregator using ComparisonRules and PriceSpreadRules
func NewComparisonService() *ComparisonService {
	return &ComparisonService{
		productRules: ComparisonRules,
		spreadRules:  PriceSpreadRules,
	}
}

// Compare builds the comparison of at least two products. Item order in every
// facet follows input order; only Rank reflects the composite-score ordering.
func (s *ComparisonService) Compare(products []domain.ComparableProduct) (*domain.ProductComparison, error) {
	if err := validateComparableProducts(products); err != nil {
		return nil, err
	}

	priceComparison := s.comparePrices(products)

	return &domain.ProductComparison{
		PriceComparison:   priceComparison,
		FeatureComparison: compareFeatures(products),
		MarketPosition:    compareMarketPosition(products),
		Recommendations:   s.recommend(products, priceComparison.PriceRange.Average),
	}, nil
}

func (s *ComparisonService) comparePrices(products []domain.ComparableProduct) domain.PriceComparison {
	prices := make([]float64, len(products))
	minPrice, maxPrice := products[0].Price, products[0].Price
	for i, p := range products {
		prices[i] = p.Price
		if p.Price < minPrice {
			minPrice = p.Price
		}
		if p.Price > maxPrice {
			maxPrice = p.Price
		}
	}

	return domain.PriceComparison{
		PriceRange: domain.PriceRange{
			Min:     minPrice,
			Max:     maxPrice,
			Average: mean(prices),
		},
		PriceDifference: round1((maxPrice - minPrice) / minPrice * 100),
		Recommendations: s.spreadRules.Evaluate(PriceSpreadMetrics{Min: minPrice, Max: maxPrice}),
	}
}

// compareFeatures builds the presence matrix over the union of declared
// features, in first-seen order
func compareFeatures(products []domain.ComparableProduct) []domain.FeatureRow {
	var features []string
	seen := make(map[string]bool)
	for _, p := range products {
		for _, f := range p.Features {
			if !seen[f] {
				seen[f] = true
				features = append(features, f)
			}
		}
	}

	rows := make([]domain.FeatureRow, 0, len(features))
	for _, feature := range features {
		availability := make([]domain.FeatureAvailability, len(products))
		for i, p := range products {
			availability[i] = domain.FeatureAvailability{
				Product:    p.Name,
				HasFeature: hasFeature(p.Features, feature),
			}
		}
		rows = append(rows, domain.FeatureRow{Feature: feature, Availability: availability})
	}
	return rows
}

func hasFeature(features []string, feature string) bool {
	for _, f := range features {
		if f == feature {
			return true
		}
	}
	return false
}

// compareMarketPosition scores each product and ranks by composite score,
// highest first, ties in input order
func compareMarketPosition(products []domain.ComparableProduct) []domain.MarketPosition {
	positions := make([]domain.MarketPosition, len(products))
	for i, p := range products {
		positions[i] = domain.MarketPosition{
			Name:             p.Name,
			MarketShare:      p.MarketShare,
			Rating:           p.Rating,
			ReviewCount:      p.ReviewCount,
			CompetitiveScore: CompetitiveScore(p.Rating, p.MarketShare, p.ReviewCount),
		}
	}

	order := make([]int, len(positions))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return positions[order[a]].CompetitiveScore > positions[order[b]].CompetitiveScore
	})
	for rank, idx := range order {
		positions[idx].Rank = rank + 1
	}
	return positions
}

func (s *ComparisonService) recommend(products []domain.ComparableProduct, averagePrice float64) []domain.Recommendation {
	bundles := make([]ComparedProductMetrics, len(products))
	for i, p := range products {
		bundles[i] = ComparedProductMetrics{
			Name:              p.Name,
			Price:             p.Price,
			GroupAveragePrice: averagePrice,
			Rating:            p.Rating,
		}
	}
	return s.productRules.EvaluateAcross(bundles, func(m ComparedProductMetrics) string { return m.Name })
}

func validateComparableProducts(products []domain.ComparableProduct) error {
	if len(products) < minComparedProducts {
		return domain.NewValidationError("products", "At least 2 products are required for comparison")
	}
	for i, p := range products {
		if strings.TrimSpace(p.Name) == "" {
			return domain.NewValidationError("products", "Product %d is missing a name", i+1)
		}
		if p.Price <= 0 {
			return domain.NewValidationError("products", "Product %q must have a price greater than zero", p.Name)
		}
	}
	return nil
}
