package huggingface

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/productlens/backend/internal/domain"
)

const (
	DefaultBaseURL = "https://api-inference.huggingface.co"
	DefaultModel   = "martin-ha/toxic-comment-model"

	maxAttempts = 3
)

// Client calls the Hugging Face inference API for text classification
type Client struct {
	httpClient  *http.Client
	apiKey      string
	baseURL     string
	model       string
	rateLimiter *rate.Limiter
	logger      *zap.Logger
}

// NewClient creates a new inference API client
func NewClient(apiKey, baseURL, model string, logger *zap.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if model == "" {
		model = DefaultModel
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	// The free inference tier tolerates a few requests per second
	limiter := rate.NewLimiter(rate.Limit(5), 10)

	return &Client{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		apiKey:      apiKey,
		baseURL:     baseURL,
		model:       model,
		rateLimiter: limiter,
		logger:      logger.Named("huggingface"),
	}
}

type classifyRequest struct {
	Inputs string `json:"inputs"`
}

// exponentialBackoff returns the delay before retrying after the given attempt
func exponentialBackoff(attempt int) time.Duration {
	return time.Duration(500*(1<<(attempt-1))) * time.Millisecond
}

// doRequest executes a POST request with auth headers
func (c *Client) doRequest(ctx context.Context, reqURL string, body []byte) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "ProductLens/1.0")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUpstreamUnavailable, err)
	}
	return resp, nil
}

// Classify returns the classifier labels for text, highest score first
func (c *Client) Classify(ctx context.Context, text string) ([]domain.ClassificationLabel, error) {
	payload, err := json.Marshal(classifyRequest{Inputs: text})
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}
	reqURL := fmt.Sprintf("%s/models/%s", c.baseURL, c.model)

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("%w: rate limiter: %v", domain.ErrUpstreamUnavailable, err)
		}

		resp, err := c.doRequest(ctx, reqURL, payload)
		if err != nil {
			c.logger.Warn("classifier request failed", zap.Int("attempt", attempt), zap.Error(err))
			lastErr = err
			if !c.sleep(ctx, attempt) {
				break
			}
			continue
		}

		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			c.logger.Warn("classifier returned error status",
				zap.Int("attempt", attempt),
				zap.Int("status", resp.StatusCode),
				zap.ByteString("body", truncate(body, 256)),
			)
			lastErr = fmt.Errorf("%w: status %d", domain.ErrUpstreamUnavailable, resp.StatusCode)
			// only server errors and model warm-up are worth retrying
			if resp.StatusCode < http.StatusInternalServerError && resp.StatusCode != http.StatusTooManyRequests {
				return nil, lastErr
			}
			if !c.sleep(ctx, attempt) {
				break
			}
			continue
		}

		labels, err := MapLabels(body)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrUpstreamUnavailable, err)
		}
		c.logger.Debug("classified text", zap.String("model", c.model), zap.Int("labels", len(labels)))
		return labels, nil
	}

	return nil, lastErr
}

// sleep waits for the backoff delay; false when ctx ends first or no attempts remain
func (c *Client) sleep(ctx context.Context, attempt int) bool {
	if attempt >= maxAttempts {
		return false
	}
	timer := time.NewTimer(exponentialBackoff(attempt))
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

func truncate(b []byte, n int) []byte {
	if len(b) > n {
		return b[:n]
	}
	return b
}
