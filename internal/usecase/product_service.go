package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/productlens/backend/internal/domain"
)

// Facet names used in ProductAnalysis.Errors and analysis events
const (
	FacetSentiment   = "sentiment"
	FacetPerformance = "performance"
	FacetHazard      = "hazard"
	FacetCompetitive = "competitive"
)

const defaultCategory = "General"

// ProductServiceConfig holds configuration for the product service
type ProductServiceConfig struct {
	CacheTTL time.Duration
}

// ProductService manages the catalog and builds aggregated per-product analyses
type ProductService struct {
	repo        domain.ProductRepository
	cache       domain.CacheRepository
	publisher   domain.EventPublisher
	sentiment   *SentimentService
	performance *PerformanceService
	hazard      *HazardService
	competitor  *CompetitorService
	cacheTTL    time.Duration
	logger      *zap.Logger
	now         func() time.Time
}

// NewProductService creates a new product service with dependencies.
// cache and publisher may be nil.
func NewProductService(
	repo domain.ProductRepository,
	cache domain.CacheRepository,
	publisher domain.EventPublisher,
	sentiment *SentimentService,
	performance *PerformanceService,
	hazard *HazardService,
	competitor *CompetitorService,
	config ProductServiceConfig,
	logger *zap.Logger,
) *ProductService {
	if logger == nil {
		logger = zap.NewNop()
	}
	cacheTTL := config.CacheTTL
	if cacheTTL == 0 {
		cacheTTL = time.Hour
	}
	return &ProductService{
		repo:        repo,
		cache:       cache,
		publisher:   publisher,
		sentiment:   sentiment,
		performance: performance,
		hazard:      hazard,
		competitor:  competitor,
		cacheTTL:    cacheTTL,
		logger:      logger,
		now:         time.Now,
	}
}

// Create validates and stores a new product, assigning its id and timestamps
func (s *ProductService) Create(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	if product == nil || strings.TrimSpace(product.Name) == "" || product.Price <= 0 {
		return nil, domain.NewValidationError("name", "Name and price are required")
	}

	p := product.Clone()
	p.ID = uuid.NewString()
	if p.Category == "" {
		p.Category = defaultCategory
	}
	if p.Specifications == nil {
		p.Specifications = map[string]string{}
	}
	now := s.now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	s.publish(ctx, domain.SubjectProductCreated, productEvent(p, now))
	return p, nil
}

// Get returns a product by id
func (s *ProductService) Get(ctx context.Context, id string) (*domain.Product, error) {
	return s.repo.GetByID(ctx, id)
}

// List returns every product in the catalog
func (s *ProductService) List(ctx context.Context) ([]*domain.Product, error) {
	return s.repo.List(ctx)
}

// Search returns products whose searchable fields contain the query
func (s *ProductService) Search(ctx context.Context, query string) ([]*domain.Product, error) {
	if strings.TrimSpace(query) == "" {
		return nil, domain.NewValidationError("q", "Search query is required")
	}
	return s.repo.Search(ctx, query)
}

// Update applies a partial update. The id and creation time never change.
func (s *ProductService) Update(ctx context.Context, id string, patch domain.ProductPatch) (*domain.Product, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	updated := patch.Apply(existing, now)
	if err := s.repo.Update(ctx, updated); err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	s.publish(ctx, domain.SubjectProductUpdated, productEvent(updated, now))
	return updated, nil
}

// Delete removes a product and returns it
func (s *ProductService) Delete(ctx context.Context, id string) (*domain.Product, error) {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, domain.SubjectProductDeleted, productEvent(deleted, s.now().UTC()))
	return deleted, nil
}

// Analyze builds the aggregated analysis of a stored product.
// Flow: load product -> check cache -> run facets concurrently -> cache -> publish
func (s *ProductService) Analyze(ctx context.Context, id string) (*domain.ProductAnalysis, error) {
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	cacheKey := analysisCacheKey(product)
	if cached, err := s.getFromCache(ctx, cacheKey); err == nil {
		return cached, nil
	}

	analysis, degraded := s.runFacets(ctx, product)

	// degraded results are recomputed on the next request
	if !degraded {
		if err := s.setInCache(ctx, cacheKey, analysis); err != nil {
			s.logger.Warn("failed to cache product analysis",
				zap.String("product_id", product.ID),
				zap.Error(err))
		}
	}

	s.publishAnalysis(ctx, analysis)
	return analysis, nil
}

// runFacets computes every facet concurrently. A failing facet is recorded in
// Errors and never cancels the others. degraded reports a failure that is not
// a property of the product itself: an upstream error or an unavailable classifier.
func (s *ProductService) runFacets(ctx context.Context, product *domain.Product) (analysis *domain.ProductAnalysis, degraded bool) {
	analysis = &domain.ProductAnalysis{ProductID: product.ID}

	var mu sync.Mutex
	record := func(facet string, err error) {
		s.logger.Warn("analysis facet failed",
			zap.String("product_id", product.ID),
			zap.String("facet", facet),
			zap.Error(err))
		mu.Lock()
		defer mu.Unlock()
		if !errors.Is(err, domain.ErrValidation) {
			degraded = true
		}
		if analysis.Errors == nil {
			analysis.Errors = make(map[string]string)
		}
		analysis.Errors[facet] = facetErrorMessage(err)
	}

	var g errgroup.Group

	g.Go(func() error {
		result, err := s.sentiment.Analyze(&domain.SentimentRequest{
			Text:    product.Description,
			Reviews: product.Analytics.Reviews,
		})
		if err != nil {
			record(FacetSentiment, err)
			return nil
		}
		analysis.Sentiment = result
		return nil
	})

	g.Go(func() error {
		result, err := s.performance.Analyze(&domain.PerformanceRequest{
			Price:   product.Price,
			Views:   product.Analytics.Views,
			Sales:   product.Analytics.Sales,
			Reviews: product.Analytics.Reviews,
			Rating:  product.Analytics.Rating,
		})
		if err != nil {
			record(FacetPerformance, err)
			return nil
		}
		analysis.Performance = result
		return nil
	})

	g.Go(func() error {
		result, err := s.hazard.Assess(ctx, &domain.HazardRequest{
			ID:          product.ID,
			ProductName: product.Name,
			Description: product.Description,
			Ingredients: product.Ingredients,
			Category:    product.Category,
		})
		if err != nil {
			record(FacetHazard, err)
			return nil
		}
		if len(result.UnavailableFacets) > 0 {
			mu.Lock()
			degraded = true
			mu.Unlock()
		}
		analysis.Hazard = result
		return nil
	})

	g.Go(func() error {
		report, err := s.competitor.Analyze(ctx, &domain.CompetitorQuery{
			ProductName: product.Name,
			Category:    product.Category,
			Price:       product.Price,
			Brand:       product.Brand,
		})
		if err != nil {
			record(FacetCompetitive, err)
			return nil
		}
		analysis.Competitive = &report.Analysis
		return nil
	})

	_ = g.Wait()

	analysis.GeneratedAt = s.now().UTC()
	return analysis, degraded
}

// facetErrorMessage exposes validation messages and hides internal error text
func facetErrorMessage(err error) string {
	var validationErr *domain.ValidationError
	if errors.As(err, &validationErr) {
		return validationErr.Message
	}
	if errors.Is(err, domain.ErrUpstreamUnavailable) {
		return domain.ErrUpstreamUnavailable.Error()
	}
	return "analysis failed"
}

// analysisCacheKey changes whenever the product is updated.
// Format: "analysis:{id}:{updatedAt unix nanos}"
func analysisCacheKey(p *domain.Product) string {
	return fmt.Sprintf("analysis:%s:%d", p.ID, p.UpdatedAt.UnixNano())
}

// getFromCache retrieves an analysis from cache
func (s *ProductService) getFromCache(ctx context.Context, key string) (*domain.ProductAnalysis, error) {
	if s.cache == nil {
		return nil, domain.ErrCacheMiss
	}
	value, err := s.cache.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	var analysis domain.ProductAnalysis
	if err := json.Unmarshal(value, &analysis); err != nil {
		return nil, domain.ErrCacheMiss
	}
	return &analysis, nil
}

// setInCache stores an analysis in cache
func (s *ProductService) setInCache(ctx context.Context, key string, analysis *domain.ProductAnalysis) error {
	if s.cache == nil {
		return nil
	}
	data, err := json.Marshal(analysis)
	if err != nil {
		return fmt.Errorf("failed to encode analysis: %w", err)
	}
	return s.cache.Set(ctx, key, data, s.cacheTTL)
}

func (s *ProductService) publishAnalysis(ctx context.Context, analysis *domain.ProductAnalysis) {
	event := domain.AnalysisEvent{
		ProductID: analysis.ProductID,
		Timestamp: analysis.GeneratedAt,
	}
	for facet := range analysis.Errors {
		event.FailedFacets = append(event.FailedFacets, facet)
	}
	sort.Strings(event.FailedFacets)
	if analysis.Hazard != nil {
		risk := analysis.Hazard.RiskScore
		event.RiskScore = &risk
		if analysis.Hazard.RiskLevel == domain.RiskHigh {
			s.publish(ctx, domain.SubjectHazardHighRisk, event)
		}
	}
	s.publish(ctx, domain.SubjectAnalysisComplete, event)
}

// publish sends an event; failures are logged and never surface to callers
func (s *ProductService) publish(ctx context.Context, subject string, payload any) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, subject, payload); err != nil {
		s.logger.Warn("failed to publish event",
			zap.String("subject", subject),
			zap.Error(err))
	}
}

func productEvent(p *domain.Product, at time.Time) domain.ProductEvent {
	return domain.ProductEvent{
		ProductID: p.ID,
		Name:      p.Name,
		Category:  p.Category,
		Price:     p.Price,
		Timestamp: at,
	}
}
