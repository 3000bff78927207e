package usecase

import (
	"strings"

	"github.com/productlens/backend/internal/domain"
)

// Rule pairs a predicate over a metrics bundle with the advice it produces
type Rule[M any] struct {
	Name           string
	When           func(M) bool
	Recommendation domain.Recommendation
}

// RuleSet is an ordered rule table. Rules are independent: every matching rule
// is emitted once, in declaration order.
type RuleSet[M any] []Rule[M]

// Evaluate returns the recommendations of all rules matching the bundle
func (rs RuleSet[M]) Evaluate(metrics M) []domain.Recommendation {
	recommendations := []domain.Recommendation{}
	for _, rule := range rs {
		if rule.When(metrics) {
			recommendations = append(recommendations, rule.Recommendation)
		}
	}
	return recommendations
}

// EvaluateAcross applies each rule to every bundle in turn and tags each match
// with the bundle's label. Output is grouped by rule, then by input order.
func (rs RuleSet[M]) EvaluateAcross(bundles []M, label func(M) string) []domain.Recommendation {
	recommendations := []domain.Recommendation{}
	for _, rule := range rs {
		for _, m := range bundles {
			if rule.When(m) {
				rec := rule.Recommendation
				rec.Product = label(m)
				recommendations = append(recommendations, rec)
			}
		}
	}
	return recommendations
}

// Names lists rule names in declaration order
func (rs RuleSet[M]) Names() []string {
	names := make([]string, 0, len(rs))
	for _, rule := range rs {
		names = append(names, rule.Name)
	}
	return names
}

// PerformanceMetrics is the bundle evaluated by PerformanceRules
type PerformanceMetrics struct {
	ConversionRate float64
	AvgRating      float64
	PricePosition  string
	ReviewCount    int
}

// PerformanceRules advise on a single product's engagement metrics
var PerformanceRules = RuleSet[PerformanceMetrics]{
	{
		Name: "low-conversion",
		When: func(m PerformanceMetrics) bool { return m.ConversionRate < 2 },
		Recommendation: domain.Recommendation{
			Type:       "conversion",
			Priority:   domain.PriorityHigh,
			Suggestion: "Improve product presentation and call-to-action elements",
			Impact:     "Increase conversion rate by 20-30%",
		},
	},
	{
		Name: "low-rating",
		When: func(m PerformanceMetrics) bool { return m.AvgRating < 4 },
		Recommendation: domain.Recommendation{
			Type:       "quality",
			Priority:   domain.PriorityHigh,
			Suggestion: "Address customer feedback and improve product quality",
			Impact:     "Boost customer satisfaction and ratings",
		},
	},
	{
		Name: "premium-low-conversion",
		When: func(m PerformanceMetrics) bool {
			return m.PricePosition == domain.PositionPremium && m.ConversionRate < 3
		},
		Recommendation: domain.Recommendation{
			Type:       "pricing",
			Priority:   domain.PriorityMedium,
			Suggestion: "Consider competitive pricing strategy or value proposition",
			Impact:     "Improve market competitiveness",
		},
	},
	{
		Name: "few-reviews",
		When: func(m PerformanceMetrics) bool { return m.ReviewCount < 10 },
		Recommendation: domain.Recommendation{
			Type:       "engagement",
			Priority:   domain.PriorityMedium,
			Suggestion: "Encourage customer reviews and feedback",
			Impact:     "Build social proof and trust",
		},
	},
}

// CompetitiveMetrics is the bundle evaluated by CompetitiveRules
type CompetitiveMetrics struct {
	Price               float64
	AvgCompetitorPrice  float64
	MaxCompetitorRating float64
}

// CompetitiveRules advise on a price against a competitor set
var CompetitiveRules = RuleSet[CompetitiveMetrics]{
	{
		Name: "overpriced",
		When: func(m CompetitiveMetrics) bool { return m.Price > m.AvgCompetitorPrice*1.2 },
		Recommendation: domain.Recommendation{
			Type:       "pricing",
			Priority:   domain.PriorityHigh,
			Suggestion: "Consider price optimization to improve competitiveness",
			Impact:     "Potential 15-25% increase in market share",
		},
	},
	{
		Name: "highly-rated-competitor",
		When: func(m CompetitiveMetrics) bool { return m.MaxCompetitorRating > 4.5 },
		Recommendation: domain.Recommendation{
			Type:       "quality",
			Priority:   domain.PriorityMedium,
			Suggestion: "Focus on product quality and customer satisfaction",
			Impact:     "Improve brand reputation and customer loyalty",
		},
	},
}

// HazardMetrics is the bundle evaluated by HazardRules
type HazardMetrics struct {
	Toxicity            float64
	ChemicalRisks       float64
	EnvironmentalImpact float64
	Category            string
}

func categoryIs(name string) func(HazardMetrics) bool {
	return func(m HazardMetrics) bool {
		return strings.EqualFold(strings.TrimSpace(m.Category), name)
	}
}

// HazardRules advise on a single product's hazard scores and category
var HazardRules = RuleSet[HazardMetrics]{
	{
		Name: "toxicity",
		When: func(m HazardMetrics) bool { return m.Toxicity > 0.5 },
		Recommendation: domain.Recommendation{
			Type:        "warning",
			Priority:    domain.PriorityHigh,
			Title:       "Toxicity Risk Detected",
			Description: "This product may contain toxic substances. Consider alternatives with natural ingredients.",
		},
	},
	{
		Name: "chemical-risks",
		When: func(m HazardMetrics) bool { return m.ChemicalRisks > 0.5 },
		Recommendation: domain.Recommendation{
			Type:        "info",
			Priority:    domain.PriorityMedium,
			Title:       "Chemical Composition Alert",
			Description: "Product contains synthetic chemicals. Look for organic or natural alternatives.",
		},
	},
	{
		Name: "environmental-impact",
		When: func(m HazardMetrics) bool { return m.EnvironmentalImpact > 0.5 },
		Recommendation: domain.Recommendation{
			Type:        "warning",
			Priority:    domain.PriorityHigh,
			Title:       "Environmental Impact High",
			Description: "This product may have significant environmental impact. Consider eco-friendly alternatives.",
		},
	},
	{
		Name: "electronics-e-waste",
		When: categoryIs("electronics"),
		Recommendation: domain.Recommendation{
			Type:        "info",
			Priority:    domain.PriorityMedium,
			Title:       "E-Waste Consideration",
			Description: "Ensure proper disposal and recycling of electronic components.",
		},
	},
	{
		Name: "cosmetics-skin-safety",
		When: categoryIs("cosmetics"),
		Recommendation: domain.Recommendation{
			Type:        "info",
			Priority:    domain.PriorityMedium,
			Title:       "Skin Safety",
			Description: "Check for hypoallergenic and dermatologically tested alternatives.",
		},
	},
}

// HazardComparisonMetrics is the bundle evaluated by HazardComparisonRules
type HazardComparisonMetrics struct {
	AvgRiskScore float64
}

// HazardComparisonRules advise on a group of hazard assessments
var HazardComparisonRules = RuleSet[HazardComparisonMetrics]{
	{
		Name: "high-average-risk",
		When: func(m HazardComparisonMetrics) bool { return m.AvgRiskScore > 0.6 },
		Recommendation: domain.Recommendation{
			Type:        "warning",
			Priority:    domain.PriorityHigh,
			Title:       "High Average Risk",
			Description: "The compared products have high environmental risk scores. Consider more eco-friendly alternatives.",
		},
	},
}

// PriceSpreadMetrics is the bundle evaluated by PriceSpreadRules
type PriceSpreadMetrics struct {
	Min float64
	Max float64
}

// PriceSpreadRules advise on the price range of a compared group
var PriceSpreadRules = RuleSet[PriceSpreadMetrics]{
	{
		Name: "wide-price-variation",
		When: func(m PriceSpreadMetrics) bool { return m.Min > 0 && m.Max/m.Min > 2 },
		Recommendation: domain.Recommendation{
			Type:       "pricing",
			Priority:   domain.PriorityHigh,
			Suggestion: "Significant price variation detected. Consider market positioning strategy.",
			Impact:     "High",
		},
	},
}

// ComparedProductMetrics is the per-product bundle evaluated by ComparisonRules
type ComparedProductMetrics struct {
	Name              string
	Price             float64
	GroupAveragePrice float64
	Rating            float64
}

// ComparisonRules advise on each product of a compared group
var ComparisonRules = RuleSet[ComparedProductMetrics]{
	{
		Name: "priced-above-group",
		When: func(m ComparedProductMetrics) bool { return m.Price > m.GroupAveragePrice*1.3 },
		Recommendation: domain.Recommendation{
			Type:       "pricing",
			Priority:   domain.PriorityMedium,
			Suggestion: "Consider price optimization for better market positioning",
		},
	},
	{
		Name: "rated-below-four",
		When: func(m ComparedProductMetrics) bool { return m.Rating > 0 && m.Rating < 4.0 },
		Recommendation: domain.Recommendation{
			Type:       "quality",
			Priority:   domain.PriorityMedium,
			Suggestion: "Focus on improving product quality and customer satisfaction",
		},
	},
}
