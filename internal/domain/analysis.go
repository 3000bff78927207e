package domain

import (
	"encoding/json"
	"time"
)

// Sentiment labels
const (
	SentimentPositive = "positive"
	SentimentNeutral  = "neutral"
	SentimentNegative = "negative"
)

// Price positions relative to a reference average
const (
	PositionCompetitive = "competitive"
	PositionAverage     = "average"
	PositionPremium     = "premium"
)

// Competitive advantages
const (
	AdvantagePrice   = "Price"
	AdvantageQuality = "Quality/Features"
)

// Risk bands
const (
	RiskLow      = "LOW"
	RiskModerate = "MODERATE"
	RiskHigh     = "HIGH"
)

// Recommendation priorities
const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

// Recommendation is a single piece of typed, prioritized advice
type Recommendation struct {
	Type        string `json:"type"`
	Priority    string `json:"priority,omitempty"`
	Title       string `json:"title,omitempty"`
	Suggestion  string `json:"suggestion,omitempty"`
	Description string `json:"description,omitempty"`
	Impact      string `json:"impact,omitempty"`
	Product     string `json:"product,omitempty"`
}

// SentimentRequest is the input of the text signal extractor
type SentimentRequest struct {
	Text    string   `json:"text"`
	Reviews []Review `json:"reviews"`
}

// SentimentResult is the output of the text signal extractor
type SentimentResult struct {
	Sentiment  string   `json:"sentiment"`
	Score      float64  `json:"score"`
	Keywords   []string `json:"keywords"`
	TextLength int      `json:"textLength"`
	WordCount  int      `json:"wordCount"`
}

// PerformanceRequest is the input of the performance scorer
type PerformanceRequest struct {
	Price            float64   `json:"price"`
	Views            int       `json:"views"`
	Sales            int       `json:"sales"`
	Reviews          []Review  `json:"reviews"`
	Rating           float64   `json:"rating"`
	CompetitorPrices []float64 `json:"competitorPrices"`
}

// PriceAnalysis classifies a price against a reference average
type PriceAnalysis struct {
	Position           string  `json:"position"`
	Difference         float64 `json:"difference"`
	AvgCompetitorPrice float64 `json:"avgCompetitorPrice"`
}

// PerformanceResult is the output of the performance scorer
type PerformanceResult struct {
	PerformanceScore int              `json:"performanceScore"`
	ConversionRate   float64          `json:"conversionRate"`
	AvgRating        float64          `json:"avgRating"`
	ReviewCount      int              `json:"reviewCount"`
	PriceAnalysis    PriceAnalysis    `json:"priceAnalysis"`
	Recommendations  []Recommendation `json:"recommendations"`
}

// CompetitorRecord describes one competing product
type CompetitorRecord struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	Brand            string   `json:"brand"`
	Price            float64  `json:"price"`
	Rating           float64  `json:"rating"`
	ReviewCount      int      `json:"reviewCount"`
	MarketShare      float64  `json:"marketShare"`
	Features         []string `json:"features"`
	Strengths        []string `json:"strengths"`
	Weaknesses       []string `json:"weaknesses"`
	CompetitiveScore int      `json:"competitiveScore"`
}

// CompetitorProfile is a competitor record with a SWOT-style breakdown
type CompetitorProfile struct {
	CompetitorRecord
	Opportunities []string `json:"opportunities"`
	Threats       []string `json:"threats"`
}

// CompetitorQuery identifies the subject product for competitor lookups
type CompetitorQuery struct {
	ProductName string  `json:"productName"`
	Category    string  `json:"category"`
	Price       float64 `json:"price"`
	Brand       string  `json:"brand,omitempty"`
	Market      string  `json:"market,omitempty"`
}

// CompetitorRank orders competitors by composite score
type CompetitorRank struct {
	Rank             int    `json:"rank"`
	ID               string `json:"id"`
	Name             string `json:"name"`
	CompetitiveScore int    `json:"competitiveScore"`
}

// CompetitiveAnalysis is the output of the competitive position analyzer
type CompetitiveAnalysis struct {
	PricePosition        string           `json:"pricePosition"`
	PriceDifference      float64          `json:"priceDifference"`
	AvgCompetitorPrice   float64          `json:"avgCompetitorPrice"`
	CompetitiveAdvantage string           `json:"competitiveAdvantage"`
	Ranking              []CompetitorRank `json:"ranking"`
	Recommendations      []Recommendation `json:"recommendations"`
}

// CompetitorReport bundles competitors, their analysis and market context
type CompetitorReport struct {
	Competitors    []CompetitorRecord  `json:"competitors"`
	Analysis       CompetitiveAnalysis `json:"analysis"`
	MarketInsights *MarketInsights     `json:"marketInsights"`
}

// ComparableProduct is one entry of a multi-product comparison
type ComparableProduct struct {
	ID          string   `json:"id,omitempty"`
	Name        string   `json:"name"`
	Price       float64  `json:"price"`
	Rating      float64  `json:"rating"`
	ReviewCount int      `json:"reviewCount"`
	MarketShare float64  `json:"marketShare"`
	Features    []string `json:"features"`
}

// PriceRange summarizes the spread of a set of prices
type PriceRange struct {
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Average float64 `json:"average"`
}

// PriceComparison is the price facet of a comparison
type PriceComparison struct {
	PriceRange      PriceRange       `json:"priceRange"`
	PriceDifference float64          `json:"priceDifference"`
	Recommendations []Recommendation `json:"recommendations"`
}

// FeatureAvailability records whether one product has a feature
type FeatureAvailability struct {
	Product    string `json:"product"`
	HasFeature bool   `json:"hasFeature"`
}

// FeatureRow is one row of the feature presence matrix
type FeatureRow struct {
	Feature      string                `json:"feature"`
	Availability []FeatureAvailability `json:"availability"`
}

// MarketPosition is the composite standing of one compared product
type MarketPosition struct {
	Name             string  `json:"name"`
	MarketShare      float64 `json:"marketShare"`
	Rating           float64 `json:"rating"`
	ReviewCount      int     `json:"reviewCount"`
	CompetitiveScore int     `json:"competitiveScore"`
	Rank             int     `json:"rank"`
}

// ProductComparison is the output of the multi-product aggregator
type ProductComparison struct {
	PriceComparison   PriceComparison  `json:"priceComparison"`
	FeatureComparison []FeatureRow     `json:"featureComparison"`
	MarketPosition    []MarketPosition `json:"marketPosition"`
	Recommendations   []Recommendation `json:"recommendations"`
}

// HazardRequest is the input of the environmental hazard scorer
type HazardRequest struct {
	ID          string `json:"id,omitempty"`
	ProductName string `json:"productName"`
	Description string `json:"description"`
	Ingredients string `json:"ingredients,omitempty"`
	Category    string `json:"category,omitempty"`
}

// UnmarshalJSON also accepts catalog products, whose display name is keyed
// "name". productName wins when both are present.
func (r *HazardRequest) UnmarshalJSON(data []byte) error {
	type plain HazardRequest
	var aux struct {
		plain
		Name string `json:"name"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*r = HazardRequest(aux.plain)
	if r.ProductName == "" {
		r.ProductName = aux.Name
	}
	return nil
}

// HazardScore is one category score with its risk band
type HazardScore struct {
	Score           float64  `json:"score"`
	Label           string   `json:"label"`
	MatchedKeywords []string `json:"matchedKeywords,omitempty"`
}

// ClassificationLabel is one label returned by an external text classifier
type ClassificationLabel struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// HazardAssessment is the output of the environmental hazard scorer
type HazardAssessment struct {
	Toxicity            HazardScore           `json:"toxicity"`
	ChemicalRisks       HazardScore           `json:"chemicalRisks"`
	EnvironmentalImpact HazardScore           `json:"environmentalImpact"`
	RiskScore           float64               `json:"riskScore"`
	RiskLevel           string                `json:"riskLevel"`
	Recommendations     []Recommendation      `json:"recommendations"`
	ModelToxicity       []ClassificationLabel `json:"modelToxicity"`
	UnavailableFacets   []string              `json:"unavailableFacets,omitempty"`
}

// ProductHazard pairs a compared product with its assessment
type ProductHazard struct {
	ProductID   string           `json:"productId,omitempty"`
	ProductName string           `json:"productName"`
	Analysis    HazardAssessment `json:"analysis"`
}

// HazardInsight highlights the best or worst product of a comparison
type HazardInsight struct {
	Type        string        `json:"type"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Product     ProductHazard `json:"product"`
}

// HazardComparison is the output of the multi-product hazard comparison
type HazardComparison struct {
	Products        []ProductHazard  `json:"products"`
	Insights        []HazardInsight  `json:"insights"`
	Recommendations []Recommendation `json:"recommendations"`
}

// MarketTrendRequest is the input of the simulated market trend analysis
type MarketTrendRequest struct {
	Category       string    `json:"category"`
	HistoricalData []float64 `json:"historicalData,omitempty"`
	MarketSize     float64   `json:"marketSize,omitempty"`
}

// QuarterDemand is the simulated demand index for one quarter
type QuarterDemand struct {
	Quarter string  `json:"quarter"`
	Demand  float64 `json:"demand"`
}

// MarketTrend is a simulated trend bundle for a category
type MarketTrend struct {
	MarketGrowth  float64         `json:"marketGrowth"`
	Seasonality   []QuarterDemand `json:"seasonality"`
	KeyDrivers    []string        `json:"keyDrivers"`
	Opportunities []string        `json:"opportunities"`
	Threats       []string        `json:"threats"`
}

// MarketInsights is simulated market context attached to competitor analysis
type MarketInsights struct {
	MarketSize    int      `json:"marketSize"`
	GrowthRate    float64  `json:"growthRate"`
	KeyTrends     []string `json:"keyTrends"`
	Opportunities []string `json:"opportunities"`
	Threats       []string `json:"threats"`
}

// MarketShareEntry is one row of a market share table
type MarketShareEntry struct {
	Name    string  `json:"name"`
	Share   float64 `json:"share"`
	Revenue float64 `json:"revenue"`
}

// MarketShareTrend is the growth outlook of a market share table
type MarketShareTrend struct {
	GrowthRate  float64         `json:"growthRate"`
	Seasonality []QuarterDemand `json:"seasonality"`
}

// MarketShare is a simulated market share table for a category and region
type MarketShare struct {
	Category        string             `json:"category"`
	Region          string             `json:"region"`
	TotalMarketSize int                `json:"totalMarketSize"`
	Competitors     []MarketShareEntry `json:"competitors"`
	Trends          MarketShareTrend   `json:"trends"`
}

// ComplianceCategory groups checklist items
type ComplianceCategory struct {
	Name  string   `json:"name" yaml:"name"`
	Items []string `json:"items" yaml:"items"`
}

// ComplianceChecklist is the static environmental compliance checklist
type ComplianceChecklist struct {
	Categories []ComplianceCategory `json:"categories" yaml:"categories"`
}

// ProductAnalysis is the aggregated per-product report. Facets that failed are
// nil and their error message is listed under Errors.
type ProductAnalysis struct {
	ProductID   string               `json:"productId"`
	Sentiment   *SentimentResult     `json:"sentiment"`
	Performance *PerformanceResult   `json:"performance"`
	Hazard      *HazardAssessment    `json:"hazard"`
	Competitive *CompetitiveAnalysis `json:"competitive"`
	Errors      map[string]string    `json:"errors,omitempty"`
	GeneratedAt time.Time            `json:"generatedAt"`
}
