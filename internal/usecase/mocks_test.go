package usecase

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/productlens/backend/internal/domain"
)

// MockCacheRepository is a mock implementation of domain.CacheRepository
type MockCacheRepository struct {
	mu       sync.Mutex
	data     map[string][]byte
	getError error
	setError error
	getCalls int
	setCalls int
}

func NewMockCacheRepository() *MockCacheRepository {
	return &MockCacheRepository{
		data: make(map[string][]byte),
	}
}

func (m *MockCacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.getCalls++
	if m.getError != nil {
		return nil, m.getError
	}
	if value, ok := m.data[key]; ok {
		return value, nil
	}
	return nil, domain.ErrCacheMiss
}

func (m *MockCacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.setCalls++
	if m.setError != nil {
		return m.setError
	}
	m.data[key] = value
	return nil
}

func (m *MockCacheRepository) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func (m *MockCacheRepository) Exists(ctx context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.data[key]
	return ok, nil
}

func (m *MockCacheRepository) keys() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	keys := make([]string, 0, len(m.data))
	for k := range m.data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// MockProductRepository is a map-backed domain.ProductRepository
type MockProductRepository struct {
	mu          sync.Mutex
	products    map[string]*domain.Product
	createError error
}

func NewMockProductRepository() *MockProductRepository {
	return &MockProductRepository{products: make(map[string]*domain.Product)}
}

func (m *MockProductRepository) Create(ctx context.Context, product *domain.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createError != nil {
		return m.createError
	}
	m.products[product.ID] = product.Clone()
	return nil
}

func (m *MockProductRepository) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.products[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	return p.Clone(), nil
}

func (m *MockProductRepository) List(ctx context.Context) ([]*domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*domain.Product, 0, len(m.products))
	for _, p := range m.products {
		out = append(out, p.Clone())
	}
	return out, nil
}

func (m *MockProductRepository) Update(ctx context.Context, product *domain.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.products[product.ID]; !ok {
		return domain.ErrProductNotFound
	}
	m.products[product.ID] = product.Clone()
	return nil
}

func (m *MockProductRepository) Delete(ctx context.Context, id string) (*domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.products[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	delete(m.products, id)
	return p, nil
}

func (m *MockProductRepository) Search(ctx context.Context, query string) ([]*domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*domain.Product
	for _, p := range m.products {
		if p.Matches(query) {
			out = append(out, p.Clone())
		}
	}
	return out, nil
}

// MockCompetitorSource returns fixed competitor records
type MockCompetitorSource struct {
	records    []domain.CompetitorRecord
	profile    *domain.CompetitorProfile
	err        error
	lastQuery  domain.CompetitorQuery
	queryCalls int
}

func (m *MockCompetitorSource) Competitors(ctx context.Context, query domain.CompetitorQuery) ([]domain.CompetitorRecord, error) {
	m.lastQuery = query
	m.queryCalls++
	if m.err != nil {
		return nil, m.err
	}
	out := make([]domain.CompetitorRecord, len(m.records))
	copy(out, m.records)
	return out, nil
}

func (m *MockCompetitorSource) Profile(ctx context.Context, id string) (*domain.CompetitorProfile, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.profile == nil || m.profile.ID != id {
		return nil, domain.ErrCompetitorNotFound
	}
	p := *m.profile
	return &p, nil
}

// MockMarketDataSource returns fixed market data
type MockMarketDataSource struct {
	trend    *domain.MarketTrend
	insights *domain.MarketInsights
	share    *domain.MarketShare
	err      error
}

func (m *MockMarketDataSource) Trends(ctx context.Context, request domain.MarketTrendRequest) (*domain.MarketTrend, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.trend, nil
}

func (m *MockMarketDataSource) Insights(ctx context.Context, category, market string) (*domain.MarketInsights, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.insights, nil
}

func (m *MockMarketDataSource) Share(ctx context.Context, category, region string) (*domain.MarketShare, error) {
	if m.err != nil {
		return nil, m.err
	}
	share := *m.share
	share.Region = region
	return &share, nil
}

// MockClassifier is a mock implementation of domain.TextClassifier
type MockClassifier struct {
	labels []domain.ClassificationLabel
	err    error
	block  bool
	calls  int
}

func (m *MockClassifier) Classify(ctx context.Context, text string) ([]domain.ClassificationLabel, error) {
	m.calls++
	if m.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if m.err != nil {
		return nil, m.err
	}
	return m.labels, nil
}

// MockKeywordExtractor is a mock implementation of domain.KeywordExtractor
type MockKeywordExtractor struct {
	keywords []string
	err      error
}

func (m *MockKeywordExtractor) Keywords(text string) ([]string, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.keywords, nil
}

type publishedEvent struct {
	subject string
	payload any
}

// MockPublisher records published events
type MockPublisher struct {
	mu     sync.Mutex
	events []publishedEvent
	err    error
}

func (m *MockPublisher) Publish(ctx context.Context, subject string, payload any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.events = append(m.events, publishedEvent{subject: subject, payload: payload})
	return nil
}

func (m *MockPublisher) subjects() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	subjects := make([]string, len(m.events))
	for i, e := range m.events {
		subjects[i] = e.subject
	}
	return subjects
}
