package simulation

import (
	"context"
	"encoding/binary"
	"fmt"
	"hash/fnv"
	"sort"
	"strings"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/shopspring/decimal"

	"github.com/productlens/backend/internal/domain"
)

const competitorIDPrefix = "comp_"

// minCompetitorPrice keeps generated prices positive for sub-cent subjects
const minCompetitorPrice = 0.01

var competitorNames = []string{
	"PremiumTech Pro",
	"SmartSolutions Elite",
	"InnovateMax Plus",
	"FutureTech Advanced",
	"NextGen Premium",
}

var (
	featurePool = []string{
		"AI-powered analytics", "Cloud integration", "Mobile app", "Real-time monitoring",
		"Customizable dashboard", "API access", "24/7 support", "Advanced security",
		"Scalable architecture", "Multi-language support",
	}
	strengthPool = []string{
		"Strong brand recognition", "Wide distribution network", "Innovative technology",
		"Excellent customer service", "Competitive pricing", "Product reliability",
		"Market expertise", "Strong partnerships",
	}
	weaknessPool = []string{
		"Limited customization", "Higher price point", "Slower innovation cycle",
		"Limited market presence", "Customer service delays", "Complex implementation",
		"Limited integrations", "Resource constraints",
	}
	quarters = []string{"Q1", "Q2", "Q3", "Q4"}
)

// Simulator is a seedable stand-in for real competitor and market feeds.
// Every answer is derived from the seed and the request, so identical
// requests always produce identical data.
type Simulator struct {
	seed int64
}

// NewSimulator creates a simulator with the given base seed
func NewSimulator(seed int64) *Simulator {
	return &Simulator{seed: seed}
}

// faker returns a generator seeded from the base seed and the request parts
func (s *Simulator) faker(parts ...string) *gofakeit.Faker {
	h := fnv.New64a()
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(s.seed))
	_, _ = h.Write(buf[:])
	for _, p := range parts {
		_, _ = h.Write([]byte(strings.ToLower(p)))
		_, _ = h.Write([]byte{0})
	}
	seed := int64(h.Sum64() & (1<<63 - 1))
	if seed == 0 {
		// gofakeit treats a zero seed as "seed from crypto/rand"
		seed = 1
	}
	return gofakeit.New(seed)
}

func round(v float64, places int32) float64 {
	return decimal.NewFromFloat(v).Round(places).InexactFloat64()
}

func pick(f *gofakeit.Faker, pool []string, min, max int) []string {
	shuffled := append([]string(nil), pool...)
	f.ShuffleStrings(shuffled)
	return shuffled[:f.IntRange(min, max)]
}

// Competitors generates five competitors priced around the subject, sorted by
// market share descending
func (s *Simulator) Competitors(ctx context.Context, query domain.CompetitorQuery) ([]domain.CompetitorRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f := s.faker("competitors", query.ProductName, query.Category, query.Brand, fmt.Sprintf("%.2f", query.Price))

	competitors := make([]domain.CompetitorRecord, len(competitorNames))
	for i, name := range competitorNames {
		competitors[i] = domain.CompetitorRecord{
			ID:          fmt.Sprintf("%s%d", competitorIDPrefix, i+1),
			Name:        name,
			Brand:       name + " Brand",
			Price:       max(round(query.Price*f.Float64Range(0.8, 1.4), 2), minCompetitorPrice),
			Rating:      round(f.Float64Range(3, 5), 1),
			ReviewCount: f.IntRange(100, 2099),
			MarketShare: round(f.Float64Range(5, 25), 1),
			Features:    pick(f, featurePool, 3, 7),
			Strengths:   pick(f, strengthPool, 2, 4),
			Weaknesses:  pick(f, weaknessPool, 1, 3),
		}
	}

	sort.SliceStable(competitors, func(i, j int) bool {
		return competitors[i].MarketShare > competitors[j].MarketShare
	})
	return competitors, nil
}

// Profile returns the SWOT profile of one of the simulated competitors
func (s *Simulator) Profile(ctx context.Context, id string) (*domain.CompetitorProfile, error) {
	var index int
	if _, err := fmt.Sscanf(id, competitorIDPrefix+"%d", &index); err != nil ||
		index < 1 || index > len(competitorNames) || id != fmt.Sprintf("%s%d", competitorIDPrefix, index) {
		return nil, fmt.Errorf("%w: %s", domain.ErrCompetitorNotFound, id)
	}

	f := s.faker("profile", id)
	name := competitorNames[index-1]

	return &domain.CompetitorProfile{
		CompetitorRecord: domain.CompetitorRecord{
			ID:          id,
			Name:        name,
			Brand:       name + " Brand",
			Price:       round(f.Float64Range(50, 250), 2),
			Rating:      round(f.Float64Range(3, 5), 1),
			ReviewCount: f.IntRange(50, 1049),
			MarketShare: round(f.Float64Range(2, 17), 1),
			Features:    pick(f, featurePool, 3, 7),
			Strengths:   pick(f, strengthPool, 2, 4),
			Weaknesses:  pick(f, weaknessPool, 1, 3),
		},
		Opportunities: []string{"Market expansion", "Product innovation", "Digital transformation"},
		Threats:       []string{"New market entrants", "Changing regulations", "Economic uncertainty"},
	}, nil
}

func (s *Simulator) seasonality(f *gofakeit.Faker) []domain.QuarterDemand {
	out := make([]domain.QuarterDemand, len(quarters))
	for i, q := range quarters {
		out[i] = domain.QuarterDemand{Quarter: q, Demand: round(f.Float64Range(50, 150), 1)}
	}
	return out
}

// Trends simulates a market trend bundle for the category
func (s *Simulator) Trends(ctx context.Context, request domain.MarketTrendRequest) (*domain.MarketTrend, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f := s.faker("trends", request.Category)

	return &domain.MarketTrend{
		MarketGrowth: round(f.Float64Range(5, 25), 1),
		Seasonality:  s.seasonality(f),
		KeyDrivers:   []string{"Digital transformation", "Sustainability focus", "Consumer preferences", "Technology adoption"},
		Opportunities: []string{
			"E-commerce expansion", "Product innovation", "Market penetration", "Customer experience",
		},
		Threats: []string{"Competition increase", "Economic uncertainty", "Regulatory changes", "Supply chain issues"},
	}, nil
}

// Insights simulates market context for a category and market
func (s *Simulator) Insights(ctx context.Context, category, market string) (*domain.MarketInsights, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f := s.faker("insights", category, market)

	return &domain.MarketInsights{
		MarketSize: f.IntRange(1000000, 5999999),
		GrowthRate: round(f.Float64Range(8, 23), 1),
		KeyTrends: []string{
			"Digital transformation acceleration", "Sustainability focus", "Personalization demand",
			"AI/ML integration", "Mobile-first approach",
		},
		Opportunities: []string{
			"Emerging markets expansion", "Product innovation", "Partnership opportunities", "Digital marketing growth",
		},
		Threats: []string{
			"Economic uncertainty", "Regulatory changes", "Supply chain disruptions", "Competition intensification",
		},
	}, nil
}

// Share simulates a market share table for a category and region
func (s *Simulator) Share(ctx context.Context, category, region string) (*domain.MarketShare, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f := s.faker("share", category, region)

	return &domain.MarketShare{
		Category:        category,
		Region:          region,
		TotalMarketSize: f.IntRange(100000, 1099999),
		Competitors: []domain.MarketShareEntry{
			{Name: "Market Leader", Share: 25.5, Revenue: 250000},
			{Name: "Strong Competitor", Share: 18.2, Revenue: 182000},
			{Name: "Your Product", Share: 12.8, Revenue: 128000},
			{Name: "Emerging Player", Share: 8.9, Revenue: 89000},
			{Name: "Others", Share: 34.6, Revenue: 346000},
		},
		Trends: domain.MarketShareTrend{
			GrowthRate:  round(f.Float64Range(5, 15), 1),
			Seasonality: s.seasonality(f),
		},
	}, nil
}
