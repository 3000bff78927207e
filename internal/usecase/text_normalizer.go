package usecase

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/kljensen/snowball/english"
)

// Package-level compiled regex pattern for performance
var punctuationRegex = regexp.MustCompile(`[^\w\s-]`)

// maxKeywords caps the keyword list of a sentiment result
const maxKeywords = 10

// stopWords includes basic English stop words plus review noise
var stopWords = map[string]bool{
	// Basic English stop words
	"a": true, "an": true, "the": true, "and": true, "or": true,
	"of": true, "in": true, "on": true, "at": true, "to": true,
	"for": true, "with": true, "by": true, "from": true, "is": true,
	"it": true, "as": true, "be": true, "was": true, "are": true,
	"this": true, "that": true, "these": true, "those": true, "but": true,
	"i": true, "me": true, "my": true, "we": true, "our": true,
	"you": true, "your": true, "he": true, "she": true, "they": true,
	"them": true, "its": true, "has": true, "have": true, "had": true,
	"do": true, "does": true, "did": true, "not": true, "no": true,
	"so": true, "very": true, "too": true, "just": true, "than": true,
	"then": true, "if": true, "all": true, "any": true, "been": true,
	"will": true, "would": true, "could": true, "should": true, "can": true,
	"there": true, "here": true, "what": true, "which": true, "who": true,
	"when": true, "where": true, "how": true, "about": true, "after": true,
	"really": true, "also": true, "much": true, "more": true, "most": true,
	// Review noise
	"product": true, "item": true, "bought": true, "buy": true, "got": true,
	"one": true, "get": true, "use": true, "used": true, "using": true,
	"thing": true, "things": true, "stars": true, "star": true,
}

// sentimentTokens splits on single spaces, lower-cases each piece, strips
// non-letters and stems the result. Pieces left empty are dropped.
func sentimentTokens(text string) []string {
	pieces := strings.Split(text, " ")
	tokens := make([]string, 0, len(pieces))
	for _, piece := range pieces {
		word := lettersOnly(strings.ToLower(piece))
		if word == "" {
			continue
		}
		tokens = append(tokens, english.Stem(word, false))
	}
	return tokens
}

func lettersOnly(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) {
			return r
		}
		return -1
	}, s)
}

// wordCount counts the pieces of a single-space split, empty pieces included
func wordCount(text string) int {
	return len(strings.Split(text, " "))
}

// tokenize splits a string into normalized lowercase tokens.
// Removes punctuation, stop words, and pure numeric tokens.
func tokenize(s string) []string {
	cleaned := punctuationRegex.ReplaceAllString(strings.ToLower(s), " ")

	var tokens []string
	for _, word := range strings.Fields(cleaned) {
		word = strings.Trim(word, "-_")
		// Skip short tokens (1 char or less)
		if len(word) <= 1 {
			continue
		}
		if stopWords[word] {
			continue
		}
		// Skip pure numeric tokens (e.g., "128", "12")
		if isNumeric(word) {
			continue
		}
		tokens = append(tokens, word)
	}

	return tokens
}

// isNumeric checks if a string contains only digits
func isNumeric(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return len(s) > 0
}

// heuristicKeywords is the fallback keyword extractor used when no
// part-of-speech tagger is available: the first non-stop-word tokens in order.
type heuristicKeywords struct{}

func (heuristicKeywords) Keywords(text string) ([]string, error) {
	tokens := tokenize(text)
	if len(tokens) > maxKeywords {
		tokens = tokens[:maxKeywords]
	}
	if tokens == nil {
		tokens = []string{}
	}
	return tokens, nil
}
