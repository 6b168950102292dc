// Package chat implements the conversational support engine: conversation context,
// reply generation, literal trigger overrides, and the message-send orchestration.
package chat

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/bloomwell/bloom/internal/analysis"
	"github.com/bloomwell/bloom/internal/types"
)

// Intensity thresholds above which anxiety and anger get the stronger template set.
const (
	anxietyStrongThreshold = 0.7
	angerStrongThreshold   = 0.6
)

const maxCrisisResources = 3

// ResourceLister provides active crisis resources in priority order.
type ResourceLister interface {
	ListActive(ctx context.Context, limit int) ([]types.CrisisResource, error)
}

// Reply is the generated bot response before persistence.
type Reply struct {
	Text     string
	Category types.Category
	Metadata map[string]any
}

// Generator turns a message analysis into a reply. It is a pure function of its
// inputs apart from the crisis branch, which reads the crisis resource list.
type Generator struct {
	resources ResourceLister

	mu  sync.Mutex
	rng *rand.Rand
}

// NewGenerator returns a Generator. A nil rng gets a time-seeded source; tests
// pass a fixed-seed rand to pin the template draw.
func NewGenerator(resources ResourceLister, rng *rand.Rand) *Generator {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Generator{resources: resources, rng: rng}
}

// Generate produces the reply for an analyzed message. Decision order: crisis,
// then dominant emotion, then sentiment; crisis language wins over everything
// else.
func (g *Generator) Generate(ctx context.Context, message string, conv Context, result analysis.Result, personality *types.BotPersonality) Reply {
	if result.CrisisLevel != analysis.CrisisNone {
		return g.crisisReply(ctx, conv, result, personality)
	}
	if len(result.Emotions) > 0 {
		return g.emotionReply(conv, result)
	}
	return g.sentimentReply(message, conv, result)
}

// crisisReply builds the intervention response. Only the high and medium tiers
// have distinct template sets; low falls back to the high set. A personality
// with its own crisis template replaces the high-tier pool.
func (g *Generator) crisisReply(ctx context.Context, conv Context, result analysis.Result, personality *types.BotPersonality) Reply {
	templates := crisisHighTemplates
	if personality != nil && personality.CrisisResponse != "" {
		templates = []string{personality.CrisisResponse}
	}
	if result.CrisisLevel == analysis.CrisisMedium {
		templates = crisisMediumTemplates
	}

	resourceText, used := g.resourceLines(ctx)
	text := g.choose(templates)
	text = renderName(text, conv.UserName)
	text = strings.ReplaceAll(text, "{resources}", resourceText)

	return Reply{
		Text:     text,
		Category: types.CategoryCrisis,
		Metadata: map[string]any{
			"crisis_level":      string(result.CrisisLevel),
			"crisis_confidence": result.CrisisConfidence,
			"resources":         used,
		},
	}
}

// resourceLines fetches up to 3 active resources and formats them one per line.
// With nothing configured (or a store failure) it falls back to the default
// hotline so a crisis reply never ships without a usable contact.
func (g *Generator) resourceLines(ctx context.Context) (string, []string) {
	var resources []types.CrisisResource
	if g.resources != nil {
		if listed, err := g.resources.ListActive(ctx, maxCrisisResources); err == nil {
			resources = listed
		}
	}
	if len(resources) == 0 {
		return defaultCrisisResourceLine, []string{defaultCrisisResourceLine}
	}

	lines := make([]string, 0, len(resources))
	for _, r := range resources {
		lines = append(lines, fmt.Sprintf("%s: %s", r.Name, r.PhoneNumber))
	}
	return strings.Join(lines, "\n"), lines
}

// emotionReply routes on the dominant detected emotion.
func (g *Generator) emotionReply(conv Context, result analysis.Result) Reply {
	emotion := result.DominantEmotion
	intensity := result.Emotions[emotion]

	var (
		templates []string
		category  types.Category
	)
	switch emotion {
	case analysis.EmotionAnxiety:
		templates = anxietyMildTemplates
		if intensity >= anxietyStrongThreshold {
			templates = anxietyStrongTemplates
		}
		category = types.CategoryBreathing
	case analysis.EmotionDepression:
		templates = depressionTemplates
		category = types.CategoryTherapy
	case analysis.EmotionAnger:
		templates = angerMildTemplates
		if intensity >= angerStrongThreshold {
			templates = angerStrongTemplates
		}
		category = types.CategoryGeneral
	case analysis.EmotionJoy:
		templates = joyTemplates
		category = types.CategoryGeneral
	case analysis.EmotionGratitude:
		templates = gratitudeTemplates
		category = types.CategoryGratitude
	default:
		templates = neutralStatementTemplates
		category = types.CategoryGeneral
	}

	return Reply{
		Text:     renderName(g.choose(templates), conv.UserName),
		Category: category,
		Metadata: map[string]any{
			"emotion":   string(emotion),
			"intensity": intensity,
		},
	}
}

// sentimentReply handles messages with no emotion hit, branching purely on the
// sentiment label.
func (g *Generator) sentimentReply(message string, conv Context, result analysis.Result) Reply {
	var text string
	switch result.SentimentLabel {
	case analysis.SentimentNegative, analysis.SentimentVeryNegative:
		text = g.choose(negativeSentimentTemplates) + g.choose(topicFollowUps(message))
	case analysis.SentimentPositive, analysis.SentimentVeryPositive:
		text = g.choose(positiveSentimentTemplates)
	default:
		if isQuestion(message) {
			text = g.choose(neutralQuestionTemplates)
		} else {
			text = g.choose(neutralStatementTemplates)
		}
	}

	return Reply{
		Text:     renderName(text, conv.UserName),
		Category: types.CategoryGeneral,
		Metadata: map[string]any{
			"sentiment_label": string(result.SentimentLabel),
			"sentiment_score": result.SentimentScore,
		},
	}
}

// topicFollowUps keys the empathetic follow-up clause off a simple substring
// check of the message.
func topicFollowUps(message string) []string {
	lowered := strings.ToLower(message)
	switch {
	case strings.Contains(lowered, "work") || strings.Contains(lowered, "job"):
		return workFollowUps
	case strings.Contains(lowered, "relationship") || strings.Contains(lowered, "friend"):
		return relationshipFollowUps
	default:
		return genericFollowUps
	}
}

var questionWords = []string{"what", "why", "how", "when", "where", "who", "which"}

// isQuestion distinguishes WH-question input from statements.
func isQuestion(message string) bool {
	lowered := strings.ToLower(strings.TrimSpace(message))
	if strings.HasSuffix(lowered, "?") {
		return true
	}
	for _, w := range questionWords {
		if strings.HasPrefix(lowered, w+" ") || lowered == w {
			return true
		}
	}
	return false
}

func (g *Generator) choose(templates []string) string {
	if len(templates) == 0 {
		return ""
	}
	g.mu.Lock()
	idx := g.rng.Intn(len(templates))
	g.mu.Unlock()
	return templates[idx]
}
