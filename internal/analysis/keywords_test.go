package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractRanksByFrequency(t *testing.T) {
	extractor := NewExtractor(nil)

	keywords := extractor.Extract("work work work deadline stress deadline manager")

	assert.Equal(t, []string{"work", "deadline", "stress", "manager"}, keywords)
}

func TestExtractIsDeterministic(t *testing.T) {
	extractor := NewExtractor(nil)
	text := "my manager keeps piling work onto my desk and the deadline pressure never stops"

	first := extractor.Extract(text)
	second := extractor.Extract(text)

	assert.Equal(t, first, second)
	assert.LessOrEqual(t, len(first), 5)
}

func TestExtractDropsStopWordsAndShortWords(t *testing.T) {
	extractor := NewExtractor(nil)

	keywords := extractor.Extract("I am so so so very happy about the new job")

	for _, kw := range keywords {
		assert.Greater(t, len(kw), 2)
		assert.False(t, DefaultLexicon().StopWords[kw], "stop word %q leaked", kw)
	}
	assert.NotContains(t, keywords, "the")
	assert.NotContains(t, keywords, "am")
}

func TestExtractTieBreaksByFirstOccurrence(t *testing.T) {
	extractor := NewExtractor(nil)

	keywords := extractor.Extract("ocean forest ocean forest mountain")

	assert.Equal(t, []string{"ocean", "forest", "mountain"}, keywords)
}

func TestExtractEmptyInput(t *testing.T) {
	assert.Empty(t, NewExtractor(nil).Extract(""))
	assert.Empty(t, NewExtractor(nil).Extract("a an it"))
}
