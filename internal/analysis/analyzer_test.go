package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLabelForBoundaries(t *testing.T) {
	cases := []struct {
		score float64
		want  SentimentLabel
	}{
		{0.5, SentimentVeryPositive},
		{0.1, SentimentPositive},
		{-0.1, SentimentNegative},
		{-0.5, SentimentVeryNegative},
		{0.49, SentimentPositive},
		{-0.49, SentimentNegative},
		{0.09, SentimentNeutral},
		{-0.09, SentimentNeutral},
		{0, SentimentNeutral},
		{1, SentimentVeryPositive},
		{-1, SentimentVeryNegative},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, labelFor(tc.score), "score %v", tc.score)
	}
}

func TestAnalyzeEmptyText(t *testing.T) {
	result := NewAnalyzer(nil).Analyze("")

	assert.Equal(t, SentimentNeutral, result.SentimentLabel)
	assert.Zero(t, result.SentimentScore)
	assert.Empty(t, result.Emotions)
	assert.Equal(t, CrisisNone, result.CrisisLevel)
	assert.Equal(t, 0.5, result.Confidence)
}

func TestAnalyzeScoreStaysInRange(t *testing.T) {
	analyzer := NewAnalyzer(nil)
	for _, text := range []string{
		"hopeless", "hopeless worthless miserable",
		"love amazing wonderful", "the quick brown fox", "!!!", "12345",
	} {
		result := analyzer.Analyze(text)
		assert.GreaterOrEqual(t, result.SentimentScore, -1.0, "text %q", text)
		assert.LessOrEqual(t, result.SentimentScore, 1.0, "text %q", text)
	}
}

func TestAnalyzeCrisisHighTierWinsOverLow(t *testing.T) {
	// Contains a high-tier phrase ("want to die") and a low-tier one ("falling apart").
	result := NewAnalyzer(nil).Analyze("I am falling apart and I want to die")

	assert.Equal(t, CrisisHigh, result.CrisisLevel)
	assert.Equal(t, 0.9, result.CrisisConfidence)
}

func TestAnalyzeHopelessMessage(t *testing.T) {
	result := NewAnalyzer(nil).Analyze("I feel hopeless and want to die")

	assert.Equal(t, CrisisHigh, result.CrisisLevel)
	assert.Equal(t, 0.9, result.CrisisConfidence)
	assert.Contains(t, result.Emotions, EmotionDepression)
}

func TestAnalyzeGratefulMessage(t *testing.T) {
	result := NewAnalyzer(nil).Analyze("I'm so grateful for my friends today")

	require.Contains(t, result.Emotions, EmotionGratitude)
	assert.Greater(t, result.Emotions[EmotionGratitude], 0.0)
	assert.Equal(t, EmotionGratitude, result.DominantEmotion)
	assert.Contains(t, []SentimentLabel{SentimentPositive, SentimentVeryPositive}, result.SentimentLabel)
}

func TestAnalyzeMediumCrisisTier(t *testing.T) {
	result := NewAnalyzer(nil).Analyze("everything feels hopeless, nothing matters")

	assert.Equal(t, CrisisMedium, result.CrisisLevel)
	assert.Equal(t, 0.7, result.CrisisConfidence)
}

func TestAnalyzeEmotionSubstringContainment(t *testing.T) {
	// "mad" matches inside "admit" because emotion matching is substring
	// containment, not whole-word.
	result := NewAnalyzer(nil).Analyze("I admit it was fine")

	assert.Contains(t, result.Emotions, EmotionAnger)
}

func TestAnalyzeDominantEmotionTieBreak(t *testing.T) {
	lex := DefaultLexicon()
	lex.EmotionKeyword = map[Emotion][]string{
		EmotionAnxiety:    {"worried"},
		EmotionDepression: {"lonely"},
	}
	result := NewAnalyzer(lex).Analyze("worried and lonely")

	// Both at intensity 1.0; anxiety comes first in EmotionOrder.
	assert.Equal(t, EmotionAnxiety, result.DominantEmotion)
}

func TestAnalyzeConfidenceTracksSentiment(t *testing.T) {
	analyzer := NewAnalyzer(nil)

	neutral := analyzer.Analyze("the weather report said rain")
	assert.Equal(t, 0.5, neutral.Confidence)

	negative := analyzer.Analyze("hopeless")
	assert.Equal(t, 1.0, negative.Confidence)
}
