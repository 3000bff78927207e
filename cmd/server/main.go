package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/productlens/backend/config"
	httpDelivery "github.com/productlens/backend/internal/delivery/http"
	"github.com/productlens/backend/internal/domain"
	"github.com/productlens/backend/internal/infrastructure/cache"
	"github.com/productlens/backend/internal/infrastructure/events"
	"github.com/productlens/backend/internal/infrastructure/huggingface"
	"github.com/productlens/backend/internal/infrastructure/nlp"
	"github.com/productlens/backend/internal/infrastructure/repository"
	"github.com/productlens/backend/internal/infrastructure/simulation"
	"github.com/productlens/backend/internal/logger"
	"github.com/productlens/backend/internal/usecase"
)

func main() {
	if os.Getenv("PRODUCTLENS_SERVER_ENVIRONMENT") != "production" {
		if err := config.LoadEnvFile(); err != nil {
			log.Fatalf("Failed to load .env file: %v", err)
		}
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zapLogger, err := logger.New(cfg.Server.Environment, cfg.Logging.Level)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = zapLogger.Sync() }()

	zapLogger.Info("Starting ProductLens Backend",
		zap.String("version", "1.0.0"),
		zap.String("environment", cfg.Server.Environment),
		zap.String("port", cfg.Server.Port),
		zap.String("cache", cfg.Cache.Type))

	// Infrastructure
	analysisCache, closeCache := newCache(cfg, zapLogger)
	defer closeCache()

	publisher, closePublisher := newPublisher(cfg, zapLogger)
	defer closePublisher()

	var classifier domain.TextClassifier
	if cfg.Classifier.Enabled {
		classifier = huggingface.NewClient(cfg.Classifier.APIKey, cfg.Classifier.BaseURL, cfg.Classifier.Model, zapLogger)
		zapLogger.Info("Text classifier enabled",
			zap.String("model", cfg.Classifier.Model),
			zap.Duration("timeout", cfg.Classifier.Timeout))
	}

	simulator := simulation.NewSimulator(cfg.Simulation.Seed)
	productRepo := repository.NewMemoryProductRepository()

	// Usecases
	sentimentService := usecase.NewSentimentService(nlp.NewKeywordExtractor(), zapLogger)
	performanceService := usecase.NewPerformanceService()
	hazardService := usecase.NewHazardService(classifier, cfg.Classifier.Timeout, zapLogger)
	competitorService := usecase.NewCompetitorService(simulator, simulator, zapLogger)
	productService := usecase.NewProductService(
		productRepo,
		analysisCache,
		publisher,
		sentimentService,
		performanceService,
		hazardService,
		competitorService,
		usecase.ProductServiceConfig{CacheTTL: cfg.Cache.TTL},
		zapLogger,
	)

	handler := httpDelivery.NewHandler(httpDelivery.Services{
		Sentiment:   sentimentService,
		Performance: performanceService,
		Competitors: competitorService,
		Comparison:  usecase.NewComparisonService(),
		Hazard:      hazardService,
		Products:    productService,
	}, cfg.Server.IsProduction(), zapLogger)

	router := httpDelivery.SetupRouter(cfg, handler, zapLogger)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		zapLogger.Info("Server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zapLogger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zapLogger.Error("Server forced to shutdown", zap.Error(err))
	}

	zapLogger.Info("Server exited")
}

// newCache builds the configured analysis cache, falling back to memory when
// Redis is unreachable
func newCache(cfg *config.Config, logger *zap.Logger) (domain.CacheRepository, func()) {
	if cfg.Cache.Type == "redis" {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		redisCache, err := cache.NewRedisCache(ctx, cfg.Cache.RedisURL)
		if err == nil {
			logger.Info("Connected to Redis cache")
			return redisCache, func() { _ = redisCache.Close() }
		}
		logger.Warn("Failed to connect to Redis, using in-memory cache", zap.Error(err))
	}

	memoryCache := cache.NewMemoryCache(0)
	return memoryCache, func() { _ = memoryCache.Close() }
}

// newPublisher connects to NATS when configured; events are dropped otherwise
func newPublisher(cfg *config.Config, logger *zap.Logger) (domain.EventPublisher, func()) {
	if cfg.NATS.URL == "" {
		return events.NoopPublisher{}, func() {}
	}

	nc, err := events.Connect(cfg.NATS.URL, logger)
	if err != nil {
		logger.Warn("Failed to connect to NATS, events disabled", zap.Error(err))
		return events.NoopPublisher{}, func() {}
	}
	logger.Info("Connected to NATS", zap.String("url", cfg.NATS.URL))

	publisher := events.NewPublisher(nc, logger)
	return publisher, func() { _ = publisher.Close() }
}
