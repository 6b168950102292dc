// Package analysis implements the deterministic message triage pipeline: sentiment
// scoring, emotion detection, crisis screening, and keyword extraction. Everything in
// this package is pure computation over the lexicon tables.
package analysis

import (
	"regexp"
	"strings"
)

// SentimentLabel is the five-way polarity classification of a message.
type SentimentLabel string

const (
	SentimentVeryNegative SentimentLabel = "very_negative"
	SentimentNegative     SentimentLabel = "negative"
	SentimentNeutral      SentimentLabel = "neutral"
	SentimentPositive     SentimentLabel = "positive"
	SentimentVeryPositive SentimentLabel = "very_positive"
)

// CrisisLevel is the severity classification of self-harm risk language.
type CrisisLevel string

const (
	CrisisNone   CrisisLevel = "none"
	CrisisLow    CrisisLevel = "low"
	CrisisMedium CrisisLevel = "medium"
	CrisisHigh   CrisisLevel = "high"
)

// Result is the full analysis of one message. It is produced fresh per message and
// never mutated afterwards.
type Result struct {
	SentimentScore   float64             `json:"sentiment_score"`
	SentimentLabel   SentimentLabel      `json:"sentiment_label"`
	Emotions         map[Emotion]float64 `json:"emotions,omitempty"`
	DominantEmotion  Emotion             `json:"dominant_emotion,omitempty"`
	CrisisLevel      CrisisLevel         `json:"crisis_level"`
	CrisisConfidence float64             `json:"crisis_confidence"`
	Confidence       float64             `json:"confidence"`
}

var wordPattern = regexp.MustCompile(`[a-z0-9]+`)

// Analyzer classifies message text against the lexicon tables.
type Analyzer struct {
	lexicon *Lexicon
}

// NewAnalyzer returns an Analyzer over the given lexicon.
func NewAnalyzer(lexicon *Lexicon) *Analyzer {
	if lexicon == nil {
		lexicon = DefaultLexicon()
	}
	return &Analyzer{lexicon: lexicon}
}

// Analyze classifies text. It never fails: empty or non-word input yields the neutral
// result with confidence 0.5.
func (a *Analyzer) Analyze(text string) Result {
	normalized := strings.ToLower(text)
	tokens := wordPattern.FindAllString(normalized, -1)

	result := Result{
		SentimentLabel: SentimentNeutral,
		CrisisLevel:    CrisisNone,
		Confidence:     0.5,
	}

	var sum float64
	for _, token := range tokens {
		if w, ok := a.lexicon.PositiveWords[token]; ok {
			sum += w
		}
		if w, ok := a.lexicon.NegativeWords[token]; ok {
			sum += w
		}
	}
	count := len(tokens)
	if count == 0 {
		count = 1
	}
	result.SentimentScore = clamp(sum/float64(count), -1, 1)
	result.SentimentLabel = labelFor(result.SentimentScore)

	result.Emotions, result.DominantEmotion = a.detectEmotions(normalized)
	result.CrisisLevel, result.CrisisConfidence = a.detectCrisis(normalized)

	if result.SentimentScore != 0 {
		result.Confidence = abs(result.SentimentScore)
	}
	return result
}

// labelFor maps a normalized score onto the label thresholds. The boundaries are
// inclusive and checked in this exact order.
func labelFor(score float64) SentimentLabel {
	switch {
	case score >= 0.5:
		return SentimentVeryPositive
	case score >= 0.1:
		return SentimentPositive
	case score <= -0.5:
		return SentimentVeryNegative
	case score <= -0.1:
		return SentimentNegative
	default:
		return SentimentNeutral
	}
}

// detectEmotions counts keyword phrase hits per category. Matching is substring
// containment on the normalized text, not whole-word: "mad" inside "admit" counts.
func (a *Analyzer) detectEmotions(normalized string) (map[Emotion]float64, Emotion) {
	var (
		emotions map[Emotion]float64
		dominant Emotion
		best     float64
	)
	for _, emotion := range EmotionOrder {
		keywords := a.lexicon.EmotionKeyword[emotion]
		if len(keywords) == 0 {
			continue
		}
		matches := 0
		for _, kw := range keywords {
			if strings.Contains(normalized, kw) {
				matches++
			}
		}
		if matches == 0 {
			continue
		}
		intensity := float64(matches) / float64(len(keywords))
		if intensity > 1 {
			intensity = 1
		}
		if emotions == nil {
			emotions = make(map[Emotion]float64)
		}
		emotions[emotion] = intensity
		// Strictly-greater keeps the first category in EmotionOrder on ties.
		if intensity > best {
			best = intensity
			dominant = emotion
		}
	}
	return emotions, dominant
}

// detectCrisis scans the tiers in severity order; the first tier with any phrase hit
// wins, so a message containing both a high- and a low-tier phrase classifies high.
func (a *Analyzer) detectCrisis(normalized string) (CrisisLevel, float64) {
	tiers := []struct {
		level      CrisisLevel
		phrases    []string
		confidence float64
	}{
		{CrisisHigh, a.lexicon.CrisisHigh, 0.9},
		{CrisisMedium, a.lexicon.CrisisMedium, 0.7},
		{CrisisLow, a.lexicon.CrisisLow, 0.5},
	}
	for _, tier := range tiers {
		for _, phrase := range tier.phrases {
			if strings.Contains(normalized, phrase) {
				return tier.level, tier.confidence
			}
		}
	}
	return CrisisNone, 0
}

func clamp(v, lo, hi float64) float64 {
	switch {
	case v < lo:
		return lo
	case v > hi:
		return hi
	default:
		return v
	}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
