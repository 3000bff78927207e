package nlp

import (
	"fmt"
	"strings"

	"github.com/jdkato/prose/v2"
)

const maxKeywords = 10

// KeywordExtractor pulls noun phrases out of text with a part-of-speech tagger
type KeywordExtractor struct{}

// NewKeywordExtractor creates a tagger-backed keyword extractor
func NewKeywordExtractor() *KeywordExtractor {
	return &KeywordExtractor{}
}

func isNoun(tag string) bool {
	return strings.HasPrefix(tag, "NN")
}

// Keywords returns up to ten noun phrases in order of appearance.
// Adjacent nouns are merged into one phrase; duplicates are kept.
func (e *KeywordExtractor) Keywords(text string) ([]string, error) {
	doc, err := prose.NewDocument(text,
		prose.WithSegmentation(false),
		prose.WithExtraction(false),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to tag text: %w", err)
	}

	keywords := make([]string, 0, maxKeywords)
	var phrase []string
	flush := func() {
		if len(phrase) > 0 {
			keywords = append(keywords, strings.Join(phrase, " "))
			phrase = phrase[:0]
		}
	}

	for _, tok := range doc.Tokens() {
		if len(keywords) >= maxKeywords {
			break
		}
		if isNoun(tok.Tag) && strings.IndexFunc(tok.Text, isWordRune) >= 0 {
			phrase = append(phrase, tok.Text)
			continue
		}
		flush()
	}
	if len(keywords) < maxKeywords {
		flush()
	}

	return keywords, nil
}

func isWordRune(r rune) bool {
	return r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9'
}
