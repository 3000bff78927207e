package usecase

import (
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/productlens/backend/internal/domain"
)

// Label thresholds on the raw valence sum
const (
	positiveThreshold = 0.5
	negativeThreshold = -0.5
)

// SentimentService extracts sentiment and keywords from product text and reviews
type SentimentService struct {
	keywords domain.KeywordExtractor
	fallback domain.KeywordExtractor
	logger   *zap.Logger
}

// NewSentimentService creates a sentiment service. A nil extractor uses the
// heuristic stop-word extractor.
func NewSentimentService(keywords domain.KeywordExtractor, logger *zap.Logger) *SentimentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if keywords == nil {
		keywords = heuristicKeywords{}
	}
	return &SentimentService{
		keywords: keywords,
		fallback: heuristicKeywords{},
		logger:   logger,
	}
}

// Analyze classifies the combined text and reviews. The score is the raw
// valence sum and grows with text length.
func (s *SentimentService) Analyze(request *domain.SentimentRequest) (*domain.SentimentResult, error) {
	if request == nil || (request.Text == "" && len(request.Reviews) == 0) {
		return nil, domain.NewValidationError("text", "Text is required for sentiment analysis")
	}

	text := analysisText(request.Text, request.Reviews)
	score := valence(text)

	return &domain.SentimentResult{
		Sentiment:  sentimentLabel(score),
		Score:      score,
		Keywords:   s.extractKeywords(text),
		TextLength: utf8.RuneCountInString(text),
		WordCount:  wordCount(text),
	}, nil
}

// analysisText joins the non-empty text and every review text with single spaces
func analysisText(text string, reviews []domain.Review) string {
	parts := make([]string, 0, len(reviews)+1)
	if text != "" {
		parts = append(parts, text)
	}
	for _, r := range reviews {
		parts = append(parts, r.Text)
	}
	return strings.Join(parts, " ")
}

// valence sums the lexicon score of every stemmed token
func valence(text string) float64 {
	var sum int
	for _, token := range sentimentTokens(text) {
		sum += afinnStems[token]
	}
	return float64(sum)
}

func sentimentLabel(score float64) string {
	switch {
	case score > positiveThreshold:
		return domain.SentimentPositive
	case score < negativeThreshold:
		return domain.SentimentNegative
	default:
		return domain.SentimentNeutral
	}
}

func (s *SentimentService) extractKeywords(text string) []string {
	keywords, err := s.keywords.Keywords(text)
	if err != nil {
		s.logger.Warn("keyword extraction failed, using heuristic extractor", zap.Error(err))
		keywords, _ = s.fallback.Keywords(text)
	}
	if len(keywords) > maxKeywords {
		keywords = keywords[:maxKeywords]
	}
	if keywords == nil {
		keywords = []string{}
	}
	return keywords
}
