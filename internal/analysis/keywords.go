package analysis

import (
	"regexp"
	"sort"
	"strings"
)

const maxKeywords = 5

var alphaPattern = regexp.MustCompile(`[a-z]+`)

// Extractor derives salient topic keywords from message text.
type Extractor struct {
	stopWords map[string]bool
}

// NewExtractor returns an Extractor using the lexicon's stop-word set.
func NewExtractor(lexicon *Lexicon) *Extractor {
	if lexicon == nil {
		lexicon = DefaultLexicon()
	}
	return &Extractor{stopWords: lexicon.StopWords}
}

// Extract returns up to 5 keywords ranked by frequency, ties broken by first
// occurrence. Pure and deterministic: the same text always yields the same slice.
func (e *Extractor) Extract(text string) []string {
	words := alphaPattern.FindAllString(strings.ToLower(text), -1)

	counts := make(map[string]int)
	firstSeen := make(map[string]int)
	for i, word := range words {
		if len(word) <= 2 || e.stopWords[word] {
			continue
		}
		if _, ok := counts[word]; !ok {
			firstSeen[word] = i
		}
		counts[word]++
	}
	if len(counts) == 0 {
		return nil
	}

	keywords := make([]string, 0, len(counts))
	for word := range counts {
		keywords = append(keywords, word)
	}
	sort.Slice(keywords, func(i, j int) bool {
		if counts[keywords[i]] != counts[keywords[j]] {
			return counts[keywords[i]] > counts[keywords[j]]
		}
		return firstSeen[keywords[i]] < firstSeen[keywords[j]]
	})

	if len(keywords) > maxKeywords {
		keywords = keywords[:maxKeywords]
	}
	return keywords
}
