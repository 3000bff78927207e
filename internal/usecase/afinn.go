package usecase

import (
	"bufio"
	_ "embed"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/kljensen/snowball/english"
)

//go:embed afinn-165.txt
var afinnData string

// afinnWords is the AFINN-165 valence lexicon, one "word<TAB>valence" entry
// per line. Valence ranges from -5 to +5.
var afinnWords = mustParseLexicon(afinnData)

// afinnStems maps the Porter2 stem of every lexicon word to its valence.
// When two words share a stem the alphabetically first one wins.
var afinnStems = buildStemmedLexicon(afinnWords)

func buildStemmedLexicon(words map[string]int) map[string]int {
	keys := make([]string, 0, len(words))
	for w := range words {
		keys = append(keys, w)
	}
	sort.Strings(keys)

	stems := make(map[string]int, len(keys))
	for _, w := range keys {
		stem := english.Stem(w, false)
		if _, taken := stems[stem]; !taken {
			stems[stem] = words[w]
		}
	}
	return stems
}

// parseLexicon reads tab-separated AFINN entries. Multi-word phrases are
// skipped since tokens are single words.
func parseLexicon(data string) (map[string]int, error) {
	words := make(map[string]int)
	scanner := bufio.NewScanner(strings.NewReader(data))
	line := 0
	for scanner.Scan() {
		line++
		entry := strings.TrimSpace(scanner.Text())
		if entry == "" {
			continue
		}
		tab := strings.LastIndexByte(entry, '\t')
		if tab <= 0 {
			return nil, fmt.Errorf("lexicon line %d: missing valence", line)
		}
		word := strings.TrimSpace(entry[:tab])
		valence, err := strconv.Atoi(strings.TrimSpace(entry[tab+1:]))
		if err != nil {
			return nil, fmt.Errorf("lexicon line %d: %w", line, err)
		}
		if valence < -5 || valence > 5 {
			return nil, fmt.Errorf("lexicon line %d: valence %d out of range", line, valence)
		}
		if strings.Contains(word, " ") {
			continue
		}
		words[word] = valence
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return words, nil
}

func mustParseLexicon(data string) map[string]int {
	words, err := parseLexicon(data)
	if err != nil {
		panic(err)
	}
	return words
}
