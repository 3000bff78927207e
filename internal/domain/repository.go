package domain

import (
	"context"
	"time"
)

// CacheRepository defines the interface for caching operations.
// Values are opaque byte payloads so memory and Redis backends behave the same.
type CacheRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// ProductRepository defines catalog persistence. The scoring engine never uses it
// directly; handlers resolve products and pass facts to the usecases.
type ProductRepository interface {
	Create(ctx context.Context, product *Product) error
	GetByID(ctx context.Context, id string) (*Product, error)
	List(ctx context.Context) ([]*Product, error)
	Update(ctx context.Context, product *Product) error
	Delete(ctx context.Context, id string) (*Product, error)
	Search(ctx context.Context, query string) ([]*Product, error)
}

// CompetitorSource supplies competitor records for a subject product
type CompetitorSource interface {
	Competitors(ctx context.Context, query CompetitorQuery) ([]CompetitorRecord, error)
	Profile(ctx context.Context, id string) (*CompetitorProfile, error)
}

// MarketDataSource supplies market context for a category
type MarketDataSource interface {
	Trends(ctx context.Context, request MarketTrendRequest) (*MarketTrend, error)
	Insights(ctx context.Context, category, market string) (*MarketInsights, error)
	Share(ctx context.Context, category, region string) (*MarketShare, error)
}

// TextClassifier is an optional external text classification service
type TextClassifier interface {
	Classify(ctx context.Context, text string) ([]ClassificationLabel, error)
}

// KeywordExtractor pulls noun-like keywords out of free text
type KeywordExtractor interface {
	Keywords(text string) ([]string, error)
}

// EventPublisher publishes domain events to a message bus
type EventPublisher interface {
	Publish(ctx context.Context, subject string, payload any) error
}
