package usecase

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/productlens/backend/internal/domain"
)

// Composite score scaling
const (
	ratingScale           = 20.0 // 0-5 stars -> 0-100
	marketShareScale      = 2.0  // 0-50% share -> 0-100
	reviewCountDivisor    = 10.0 // 0-1000 reviews -> 0-100
	compositeComponentCap = 100.0
)

// CompetitorService analyzes a product's position against its competitors
type CompetitorService struct {
	source domain.CompetitorSource
	market domain.MarketDataSource
	rules  RuleSet[CompetitiveMetrics]
	logger *zap.Logger
}

// NewCompetitorService creates a competitor service. source and market may be nil
// when only the pure analysis methods are used.
func NewCompetitorService(source domain.CompetitorSource, market domain.MarketDataSource, logger *zap.Logger) *CompetitorService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CompetitorService{
		source: source,
		market: market,
		rules:  CompetitiveRules,
		logger: logger,
	}
}

// CompetitiveScore blends rating, market share and review volume into a 0-100 value
func CompetitiveScore(rating, marketShare float64, reviewCount int) int {
	ratingScore := rating * ratingScale
	shareScore := math.Min(marketShare*marketShareScale, compositeComponentCap)
	reviewScore := math.Min(float64(reviewCount)/reviewCountDivisor, compositeComponentCap)
	return int(math.Round((ratingScore + shareScore + reviewScore) / 3))
}

// AnalyzePosition compares price against the competitor set
func (s *CompetitorService) AnalyzePosition(price float64, competitors []domain.CompetitorRecord) (*domain.CompetitiveAnalysis, error) {
	if price <= 0 {
		return nil, domain.NewValidationError("price", "Price must be greater than zero")
	}
	if len(competitors) == 0 {
		return nil, domain.NewValidationError("competitors", "At least one competitor is required")
	}

	prices := make([]float64, len(competitors))
	maxRating := 0.0
	for i, c := range competitors {
		if c.Price <= 0 {
			return nil, domain.NewValidationError("competitors", "Competitor %q must have a price greater than zero", c.Name)
		}
		prices[i] = c.Price
		maxRating = math.Max(maxRating, c.Rating)
	}
	avg := mean(prices)

	advantage := domain.AdvantageQuality
	if price < avg {
		advantage = domain.AdvantagePrice
	}

	return &domain.CompetitiveAnalysis{
		PricePosition:        classifyPrice(price, avg),
		PriceDifference:      round2(priceDifferencePct(price, avg)),
		AvgCompetitorPrice:   round2(avg),
		CompetitiveAdvantage: advantage,
		Ranking:              rankCompetitors(competitors),
		Recommendations: s.rules.Evaluate(CompetitiveMetrics{
			Price:               price,
			AvgCompetitorPrice:  avg,
			MaxCompetitorRating: maxRating,
		}),
	}, nil
}

// rankCompetitors orders competitors by composite score, highest first.
// Ties keep input order.
func rankCompetitors(competitors []domain.CompetitorRecord) []domain.CompetitorRank {
	ranking := make([]domain.CompetitorRank, len(competitors))
	for i, c := range competitors {
		ranking[i] = domain.CompetitorRank{
			ID:               c.ID,
			Name:             c.Name,
			CompetitiveScore: CompetitiveScore(c.Rating, c.MarketShare, c.ReviewCount),
		}
	}
	sort.SliceStable(ranking, func(i, j int) bool {
		return ranking[i].CompetitiveScore > ranking[j].CompetitiveScore
	})
	for i := range ranking {
		ranking[i].Rank = i + 1
	}
	return ranking
}

// Analyze fetches competitors for the query and analyzes the subject's position.
// Market insights are optional: when the market source fails they are left nil.
func (s *CompetitorService) Analyze(ctx context.Context, query *domain.CompetitorQuery) (*domain.CompetitorReport, error) {
	if err := validateCompetitorQuery(query); err != nil {
		return nil, err
	}
	if s.source == nil {
		return nil, fmt.Errorf("competitor source not configured")
	}

	competitors, err := s.source.Competitors(ctx, *query)
	if err != nil {
		return nil, fmt.Errorf("failed to load competitors: %w", err)
	}

	for i := range competitors {
		c := &competitors[i]
		c.CompetitiveScore = CompetitiveScore(c.Rating, c.MarketShare, c.ReviewCount)
	}
	sort.SliceStable(competitors, func(i, j int) bool {
		return competitors[i].MarketShare > competitors[j].MarketShare
	})

	analysis, err := s.AnalyzePosition(query.Price, competitors)
	if err != nil {
		return nil, err
	}

	report := &domain.CompetitorReport{
		Competitors: competitors,
		Analysis:    *analysis,
	}

	if s.market != nil {
		market := query.Market
		if market == "" {
			market = "global"
		}
		insights, err := s.market.Insights(ctx, query.Category, market)
		if err != nil {
			s.logger.Warn("market insights unavailable",
				zap.String("category", query.Category),
				zap.Error(err))
		} else {
			report.MarketInsights = insights
		}
	}

	s.logger.Debug("competitor analysis complete",
		zap.String("product", query.ProductName),
		zap.Int("competitors", len(competitors)),
		zap.String("position", analysis.PricePosition))

	return report, nil
}

// Profile returns the detailed profile of a single competitor
func (s *CompetitorService) Profile(ctx context.Context, id string) (*domain.CompetitorProfile, error) {
	if strings.TrimSpace(id) == "" {
		return nil, domain.NewValidationError("id", "Competitor ID is required")
	}
	if s.source == nil {
		return nil, fmt.Errorf("competitor source not configured")
	}

	profile, err := s.source.Profile(ctx, id)
	if err != nil {
		return nil, err
	}
	profile.CompetitiveScore = CompetitiveScore(profile.Rating, profile.MarketShare, profile.ReviewCount)
	return profile, nil
}

// MarketShare returns the market share table for a category
func (s *CompetitorService) MarketShare(ctx context.Context, category, region string) (*domain.MarketShare, error) {
	if strings.TrimSpace(category) == "" {
		return nil, domain.NewValidationError("category", "Category is required")
	}
	if s.market == nil {
		return nil, fmt.Errorf("market data source not configured")
	}
	if region == "" {
		region = "Global"
	}
	return s.market.Share(ctx, category, region)
}

// MarketTrends returns the trend bundle for a category
func (s *CompetitorService) MarketTrends(ctx context.Context, request *domain.MarketTrendRequest) (*domain.MarketTrend, error) {
	if request == nil || strings.TrimSpace(request.Category) == "" {
		return nil, domain.NewValidationError("category", "Category is required")
	}
	if s.market == nil {
		return nil, fmt.Errorf("market data source not configured")
	}
	return s.market.Trends(ctx, *request)
}

func validateCompetitorQuery(query *domain.CompetitorQuery) error {
	if query == nil || strings.TrimSpace(query.ProductName) == "" || strings.TrimSpace(query.Category) == "" {
		return domain.NewValidationError("productName", "Product name and category are required")
	}
	if query.Price <= 0 {
		return domain.NewValidationError("price", "Price must be greater than zero")
	}
	return nil
}
