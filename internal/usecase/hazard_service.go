package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/productlens/backend/internal/domain"
)

// FacetModelToxicity names the optional classifier facet of a hazard assessment
const FacetModelToxicity = "modelToxicity"

const (
	defaultClassifierTimeout = 5 * time.Second
	minComparedHazards       = 2
)

// Risk level bands on the overall risk score
const (
	highRiskThreshold     = 0.6
	moderateRiskThreshold = 0.4
)

// hazardCategory is a keyword list with the fixed scores of its two-level step function
type hazardCategory struct {
	keywords  []string
	highScore float64
	highLabel string
	lowScore  float64
	lowLabel  string
}

var (
	toxicityCategory = hazardCategory{
		keywords:  []string{"toxic", "hazardous", "dangerous", "poison", "carcinogen"},
		highScore: 0.7,
		highLabel: domain.RiskHigh,
		lowScore:  0.2,
		lowLabel:  domain.RiskLow,
	}
	chemicalCategory = hazardCategory{
		keywords:  []string{"chemical", "synthetic", "artificial", "preservative"},
		highScore: 0.6,
		highLabel: domain.RiskModerate,
		lowScore:  0.3,
		lowLabel:  domain.RiskLow,
	}
	environmentalCategory = hazardCategory{
		keywords:  []string{"non-biodegradable", "plastic", "pollution", "waste"},
		highScore: 0.8,
		highLabel: domain.RiskHigh,
		lowScore:  0.2,
		lowLabel:  domain.RiskLow,
	}
)

// score reports the category score for a lower-cased blob. Any keyword
// occurring as a substring triggers the high value.
func (c hazardCategory) score(blob string) domain.HazardScore {
	var matched []string
	for _, kw := range c.keywords {
		if strings.Contains(blob, kw) {
			matched = append(matched, kw)
		}
	}
	if len(matched) == 0 {
		return domain.HazardScore{Score: c.lowScore, Label: c.lowLabel}
	}
	return domain.HazardScore{Score: c.highScore, Label: c.highLabel, MatchedKeywords: matched}
}

// HazardService scores products for environmental and safety hazards
type HazardService struct {
	classifier        domain.TextClassifier
	classifierTimeout time.Duration
	rules             RuleSet[HazardMetrics]
	comparisonRules   RuleSet[HazardComparisonMetrics]
	logger            *zap.Logger
}

// NewHazardService creates a hazard scorer. classifier may be nil, in which case
// assessments never carry a model toxicity facet.
func NewHazardService(classifier domain.TextClassifier, classifierTimeout time.Duration, logger *zap.Logger) *HazardService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if classifierTimeout <= 0 {
		classifierTimeout = defaultClassifierTimeout
	}
	return &HazardService{
		classifier:        classifier,
		classifierTimeout: classifierTimeout,
		rules:             HazardRules,
		comparisonRules:   HazardComparisonRules,
		logger:            logger,
	}
}

// Assess scores a single product and, when a classifier is configured, enriches
// the result with model toxicity labels. Enrichment failures never fail the call.
func (s *HazardService) Assess(ctx context.Context, request *domain.HazardRequest) (*domain.HazardAssessment, error) {
	if err := validateHazardRequest(request); err != nil {
		return nil, err
	}

	assessment := s.score(request)

	if s.classifier != nil {
		labels, err := s.classify(ctx, hazardText(request))
		if err != nil {
			s.logger.Warn("hazard classifier unavailable",
				zap.String("product", request.ProductName),
				zap.Error(err))
			assessment.UnavailableFacets = append(assessment.UnavailableFacets, FacetModelToxicity)
		} else {
			assessment.ModelToxicity = labels
		}
	}

	return assessment, nil
}

func (s *HazardService) classify(ctx context.Context, text string) ([]domain.ClassificationLabel, error) {
	ctx, cancel := context.WithTimeout(ctx, s.classifierTimeout)
	defer cancel()

	labels, err := s.classifier.Classify(ctx, text)
	if err != nil {
		if errors.Is(err, domain.ErrUpstreamUnavailable) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrUpstreamUnavailable, err)
	}
	return labels, nil
}

// score computes the deterministic keyword assessment
func (s *HazardService) score(request *domain.HazardRequest) *domain.HazardAssessment {
	blob := strings.ToLower(hazardText(request))

	toxicity := toxicityCategory.score(blob)
	chemical := chemicalCategory.score(blob)
	environmental := environmentalCategory.score(blob)

	riskScore := roundTo((toxicity.Score+chemical.Score+environmental.Score)/3, 4)

	return &domain.HazardAssessment{
		Toxicity:            toxicity,
		ChemicalRisks:       chemical,
		EnvironmentalImpact: environmental,
		RiskScore:           riskScore,
		RiskLevel:           riskLevel(riskScore),
		Recommendations: s.rules.Evaluate(HazardMetrics{
			Toxicity:            toxicity.Score,
			ChemicalRisks:       chemical.Score,
			EnvironmentalImpact: environmental.Score,
			Category:            request.Category,
		}),
	}
}

// Compare scores every product on keywords alone and highlights the lowest and
// highest risk. Ties keep input order.
func (s *HazardService) Compare(products []domain.HazardRequest) (*domain.HazardComparison, error) {
	if len(products) < minComparedHazards {
		return nil, domain.NewValidationError("products", "At least 2 products are required for comparison")
	}
	for i := range products {
		if err := validateHazardRequest(&products[i]); err != nil {
			return nil, domain.NewValidationError("products", "Product %d: %s", i+1, err.Error())
		}
	}

	results := make([]domain.ProductHazard, len(products))
	var total float64
	for i := range products {
		p := &products[i]
		assessment := s.score(p)
		results[i] = domain.ProductHazard{
			ProductID:   p.ID,
			ProductName: p.ProductName,
			Analysis:    *assessment,
		}
		total += assessment.RiskScore
	}

	sorted := make([]domain.ProductHazard, len(results))
	copy(sorted, results)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Analysis.RiskScore < sorted[j].Analysis.RiskScore
	})
	best, worst := sorted[0], sorted[len(sorted)-1]

	return &domain.HazardComparison{
		Products: results,
		Insights: []domain.HazardInsight{
			{
				Type:        "best_choice",
				Title:       "Most Environmentally Friendly",
				Description: fmt.Sprintf("%s has the lowest environmental risk score.", best.ProductName),
				Product:     best,
			},
			{
				Type:        "warning",
				Title:       "Highest Environmental Risk",
				Description: fmt.Sprintf("%s has the highest environmental risk score.", worst.ProductName),
				Product:     worst,
			},
		},
		Recommendations: s.comparisonRules.Evaluate(HazardComparisonMetrics{
			AvgRiskScore: total / float64(len(results)),
		}),
	}, nil
}

// hazardText is "name - description" with an "Ingredients:" suffix when present
func hazardText(request *domain.HazardRequest) string {
	text := request.ProductName + " - " + request.Description
	if request.Ingredients != "" {
		text += " Ingredients: " + request.Ingredients
	}
	return text
}

func riskLevel(score float64) string {
	switch {
	case score >= highRiskThreshold:
		return domain.RiskHigh
	case score >= moderateRiskThreshold:
		return domain.RiskModerate
	default:
		return domain.RiskLow
	}
}

func validateHazardRequest(request *domain.HazardRequest) error {
	if request == nil || strings.TrimSpace(request.ProductName) == "" || strings.TrimSpace(request.Description) == "" {
		return domain.NewValidationError("productName", "Product name and description are required")
	}
	return nil
}
