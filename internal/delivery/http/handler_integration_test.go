package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/productlens/backend/config"
	"github.com/productlens/backend/internal/domain"
	"github.com/productlens/backend/internal/infrastructure/cache"
	"github.com/productlens/backend/internal/infrastructure/events"
	"github.com/productlens/backend/internal/infrastructure/repository"
	"github.com/productlens/backend/internal/infrastructure/simulation"
	"github.com/productlens/backend/internal/usecase"
)

// TestMain sets up test environment before running tests
func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func testConfig(env string) *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Port:           "8080",
			Environment:    env,
			AllowedOrigins: []string{"http://localhost:3000"},
		},
		Cache:     config.CacheConfig{Type: "memory", TTL: time.Minute},
		RateLimit: config.RateLimitConfig{PerIP: 1000},
	}
}

func testServices(t *testing.T) Services {
	t.Helper()
	memoryCache := cache.NewMemoryCache(time.Minute)
	t.Cleanup(func() { _ = memoryCache.Close() })

	sim := simulation.NewSimulator(1)
	sentiment := usecase.NewSentimentService(nil, nil)
	performance := usecase.NewPerformanceService()
	hazard := usecase.NewHazardService(nil, 0, nil)
	competitors := usecase.NewCompetitorService(sim, sim, nil)

	return Services{
		Sentiment:   sentiment,
		Performance: performance,
		Competitors: competitors,
		Comparison:  usecase.NewComparisonService(),
		Hazard:      hazard,
		Products: usecase.NewProductService(
			repository.NewMemoryProductRepository(),
			memoryCache,
			events.NoopPublisher{},
			sentiment, performance, hazard, competitors,
			usecase.ProductServiceConfig{CacheTTL: time.Minute},
			nil,
		),
	}
}

// setupTestRouter creates a test router wired to real services
func setupTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	return SetupRouter(testConfig("test"), NewHandler(testServices(t), false, nil), nil)
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
	Details string          `json:"details"`
}

func do(t *testing.T, router *gin.Engine, method, path, body string) (int, envelope) {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return w.Code, env
}

func TestHealthCheckEndpoint(t *testing.T) {
	router := setupTestRouter(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "healthy", response["status"])
	assert.Equal(t, serviceName, response["service"])

	for _, method := range []string{"POST", "PUT", "DELETE"} {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(method, "/health", nil))
		assert.Equal(t, http.StatusNotFound, w.Code, method)
	}
}

func TestSentimentEndpoint(t *testing.T) {
	router := setupTestRouter(t)

	code, env := do(t, router, "POST", "/api/v1/analysis/sentiment", `{"text":"Great quality, love it!"}`)
	require.Equal(t, http.StatusOK, code)
	assert.True(t, env.Success)

	var result domain.SentimentResult
	require.NoError(t, json.Unmarshal(env.Data, &result))
	assert.Equal(t, domain.SentimentPositive, result.Sentiment)
	assert.Equal(t, 8.0, result.Score)

	code, env = do(t, router, "POST", "/api/v1/analysis/sentiment", `{"text":""}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.False(t, env.Success)
	assert.Equal(t, "Text is required for sentiment analysis", env.Error)
}

func TestPerformanceEndpoint(t *testing.T) {
	router := setupTestRouter(t)

	body := `{"price":100,"views":1000,"sales":50,"rating":4.5,"reviews":["good","ok"],"competitorPrices":[80,100,100]}`
	code, env := do(t, router, "POST", "/api/v1/analysis/performance", body)
	require.Equal(t, http.StatusOK, code)

	var result domain.PerformanceResult
	require.NoError(t, json.Unmarshal(env.Data, &result))
	assert.Equal(t, 5.0, result.ConversionRate)
	assert.Equal(t, 93.33, result.PriceAnalysis.AvgCompetitorPrice)
	assert.Equal(t, domain.PositionPremium, result.PriceAnalysis.Position)

	code, env = do(t, router, "POST", "/api/v1/analysis/performance", `{"price":0}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Price is required", env.Error)
}

func TestMalformedBody(t *testing.T) {
	t.Run("details outside production", func(t *testing.T) {
		router := setupTestRouter(t)
		code, env := do(t, router, "POST", "/api/v1/analysis/performance", `{"price":`)
		assert.Equal(t, http.StatusBadRequest, code)
		assert.Equal(t, "Invalid request body", env.Error)
		assert.NotEmpty(t, env.Details)
	})

	t.Run("no details in production", func(t *testing.T) {
		router := SetupRouter(testConfig("production"), NewHandler(testServices(t), true, nil), nil)
		gin.SetMode(gin.TestMode)
		code, env := do(t, router, "POST", "/api/v1/analysis/performance", `{"price":`)
		assert.Equal(t, http.StatusBadRequest, code)
		assert.Empty(t, env.Details)
	})
}

func TestMarketTrendsEndpoint(t *testing.T) {
	router := setupTestRouter(t)

	code, env := do(t, router, "POST", "/api/v1/analysis/market-trends", `{"category":"kitchen"}`)
	require.Equal(t, http.StatusOK, code)

	var trend domain.MarketTrend
	require.NoError(t, json.Unmarshal(env.Data, &trend))
	assert.Len(t, trend.Seasonality, 4)

	code, _ = do(t, router, "POST", "/api/v1/analysis/market-trends", `{}`)
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestCompetitorEndpoints(t *testing.T) {
	router := setupTestRouter(t)

	t.Run("analyze", func(t *testing.T) {
		code, env := do(t, router, "POST", "/api/v1/competitors/analyze",
			`{"productName":"Blender","category":"kitchen","price":100}`)
		require.Equal(t, http.StatusOK, code)

		var report domain.CompetitorReport
		require.NoError(t, json.Unmarshal(env.Data, &report))
		assert.Len(t, report.Competitors, 5)
		assert.Len(t, report.Analysis.Ranking, 5)
		assert.NotNil(t, report.MarketInsights)
	})

	t.Run("analyze sub-cent price", func(t *testing.T) {
		code, env := do(t, router, "POST", "/api/v1/competitors/analyze",
			`{"productName":"Pin","category":"misc","price":0.003}`)
		require.Equal(t, http.StatusOK, code)
		require.True(t, env.Success)

		var report domain.CompetitorReport
		require.NoError(t, json.Unmarshal(env.Data, &report))
		assert.Equal(t, 0.01, report.Analysis.AvgCompetitorPrice)
		assert.Equal(t, -70.0, report.Analysis.PriceDifference)
		assert.Equal(t, domain.PositionCompetitive, report.Analysis.PricePosition)
	})

	t.Run("profile", func(t *testing.T) {
		code, env := do(t, router, "GET", "/api/v1/competitors/comp_1", "")
		require.Equal(t, http.StatusOK, code)

		var profile domain.CompetitorProfile
		require.NoError(t, json.Unmarshal(env.Data, &profile))
		assert.Equal(t, "PremiumTech Pro", profile.Name)

		code, env = do(t, router, "GET", "/api/v1/competitors/unknown", "")
		assert.Equal(t, http.StatusNotFound, code)
		assert.Equal(t, "Competitor not found", env.Error)
	})

	t.Run("compare", func(t *testing.T) {
		body := `{"products":[
			{"name":"A","price":100,"rating":4.5,"reviewCount":500,"marketShare":20,"features":["x","y"]},
			{"name":"B","price":150,"rating":3.5,"reviewCount":100,"marketShare":10,"features":["y","z"]}
		]}`
		code, env := do(t, router, "POST", "/api/v1/competitors/compare", body)
		require.Equal(t, http.StatusOK, code)

		var comparison domain.ProductComparison
		require.NoError(t, json.Unmarshal(env.Data, &comparison))
		assert.Equal(t, 50.0, comparison.PriceComparison.PriceDifference)
		assert.Len(t, comparison.FeatureComparison, 3)

		code, env = do(t, router, "POST", "/api/v1/competitors/compare", `{"products":[{"name":"A","price":1}]}`)
		assert.Equal(t, http.StatusBadRequest, code)
		assert.Equal(t, "At least 2 products are required for comparison", env.Error)
	})

	t.Run("market share", func(t *testing.T) {
		code, env := do(t, router, "POST", "/api/v1/competitors/market-share", `{"category":"kitchen"}`)
		require.Equal(t, http.StatusOK, code)

		var share domain.MarketShare
		require.NoError(t, json.Unmarshal(env.Data, &share))
		assert.Equal(t, "Global", share.Region)
	})
}

func TestEnvironmentalEndpoints(t *testing.T) {
	router := setupTestRouter(t)

	t.Run("analyze hazards", func(t *testing.T) {
		body := `{"productName":"Cleaner","description":"Toxic chemical formula in plastic bottle","category":"household"}`
		code, env := do(t, router, "POST", "/api/v1/environmental/analyze-hazards", body)
		require.Equal(t, http.StatusOK, code)

		var assessment domain.HazardAssessment
		require.NoError(t, json.Unmarshal(env.Data, &assessment))
		assert.Equal(t, 0.7, assessment.RiskScore)
		assert.Equal(t, domain.RiskHigh, assessment.RiskLevel)

		code, env = do(t, router, "POST", "/api/v1/environmental/analyze-hazards", `{"productName":"X"}`)
		assert.Equal(t, http.StatusBadRequest, code)
		assert.Equal(t, "Product name and description are required", env.Error)
	})

	t.Run("compare", func(t *testing.T) {
		body := `{"products":[
			{"productName":"Clean","description":"natural soap"},
			{"productName":"Dirty","description":"toxic plastic"}
		]}`
		code, env := do(t, router, "POST", "/api/v1/environmental/compare-products", body)
		require.Equal(t, http.StatusOK, code)

		var comparison domain.HazardComparison
		require.NoError(t, json.Unmarshal(env.Data, &comparison))
		require.Len(t, comparison.Insights, 2)
		assert.Equal(t, "Clean", comparison.Insights[0].Product.ProductName)
		assert.Equal(t, "Dirty", comparison.Insights[1].Product.ProductName)
	})

	t.Run("compare catalog products", func(t *testing.T) {
		body := `{"products":[
			{"id":"1","name":"Soap","description":"bar soap","price":3},
			{"id":"2","name":"Bag","description":"plastic bag","price":1}
		]}`
		code, env := do(t, router, "POST", "/api/v1/environmental/compare-products", body)
		require.Equal(t, http.StatusOK, code, env.Error)

		var comparison domain.HazardComparison
		require.NoError(t, json.Unmarshal(env.Data, &comparison))
		require.Len(t, comparison.Insights, 2)
		assert.Equal(t, "Soap", comparison.Insights[0].Product.ProductName)
		assert.Equal(t, "Bag", comparison.Insights[1].Product.ProductName)
		assert.Equal(t, "2", comparison.Insights[1].Product.ProductID)
	})

	t.Run("checklist", func(t *testing.T) {
		code, env := do(t, router, "GET", "/api/v1/environmental/compliance-checklist", "")
		require.Equal(t, http.StatusOK, code)

		var checklist domain.ComplianceChecklist
		require.NoError(t, json.Unmarshal(env.Data, &checklist))
		assert.Len(t, checklist.Categories, 4)
	})
}

func TestProductEndpoints(t *testing.T) {
	router := setupTestRouter(t)

	code, env := do(t, router, "POST", "/api/v1/products",
		`{"name":"Eco Bottle","description":"Great durable bottle","category":"kitchen","price":25,"tags":["reusable"],
		  "analytics":{"views":500,"sales":20,"rating":4.4,"reviews":["love it"]}}`)
	require.Equal(t, http.StatusCreated, code)

	var created domain.Product
	require.NoError(t, json.Unmarshal(env.Data, &created))
	require.NotEmpty(t, created.ID)

	code, env = do(t, router, "GET", "/api/v1/products", "")
	require.Equal(t, http.StatusOK, code)
	var list []domain.Product
	require.NoError(t, json.Unmarshal(env.Data, &list))
	assert.Len(t, list, 1)

	code, env = do(t, router, "GET", "/api/v1/products/search?q=reusable", "")
	require.Equal(t, http.StatusOK, code)
	require.NoError(t, json.Unmarshal(env.Data, &list))
	assert.Len(t, list, 1)

	code, _ = do(t, router, "GET", "/api/v1/products/search", "")
	assert.Equal(t, http.StatusBadRequest, code)

	code, env = do(t, router, "PUT", "/api/v1/products/"+created.ID, `{"price":30}`)
	require.Equal(t, http.StatusOK, code)
	var updated domain.Product
	require.NoError(t, json.Unmarshal(env.Data, &updated))
	assert.Equal(t, 30.0, updated.Price)
	assert.Equal(t, created.Name, updated.Name)

	code, env = do(t, router, "GET", "/api/v1/products/"+created.ID+"/analysis", "")
	require.Equal(t, http.StatusOK, code)
	var analysis domain.ProductAnalysis
	require.NoError(t, json.Unmarshal(env.Data, &analysis))
	assert.Equal(t, created.ID, analysis.ProductID)
	assert.NotNil(t, analysis.Sentiment)
	assert.NotNil(t, analysis.Performance)
	assert.NotNil(t, analysis.Hazard)
	assert.NotNil(t, analysis.Competitive)

	code, _ = do(t, router, "DELETE", "/api/v1/products/"+created.ID, "")
	assert.Equal(t, http.StatusOK, code)

	code, env = do(t, router, "GET", "/api/v1/products/"+created.ID, "")
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "Product not found", env.Error)
}

func TestRespondError(t *testing.T) {
	tests := []struct {
		name        string
		production  bool
		err         error
		wantStatus  int
		wantError   string
		wantDetails string
	}{
		{name: "validation", err: domain.NewValidationError("f", "bad field"), wantStatus: http.StatusBadRequest, wantError: "bad field"},
		{name: "not found", err: domain.ErrProductNotFound, wantStatus: http.StatusNotFound, wantError: "Product not found"},
		{name: "rate limited", err: domain.ErrRateLimited, wantStatus: http.StatusTooManyRequests, wantError: "Too many requests"},
		{name: "internal", err: errors.New("db exploded"), wantStatus: http.StatusInternalServerError, wantError: "Internal server error", wantDetails: "db exploded"},
		{name: "internal in production", production: true, err: errors.New("db exploded"), wantStatus: http.StatusInternalServerError, wantError: "Internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(Services{}, tt.production, nil)
			router := gin.New()
			router.GET("/x", func(c *gin.Context) { h.respondError(c, tt.err) })

			code, env := do(t, router, "GET", "/x", "")
			assert.Equal(t, tt.wantStatus, code)
			assert.False(t, env.Success)
			assert.Equal(t, tt.wantError, env.Error)
			assert.Equal(t, tt.wantDetails, env.Details)
		})
	}
}
