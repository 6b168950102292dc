package chat

import (
	"regexp"
	"strings"
	"time"

	"github.com/bloomwell/bloom/internal/types"
)

// Literal trigger words checked against the lowercased raw message after the
// generator runs. The first matching group overrides the reply text and category
// once. Single words match on word boundaries so "hi" does not fire inside
// "nothing"; multi-word phrases match by containment.
var triggerGroups = []struct {
	kind  string
	words []string
}{
	{"greeting", []string{"hello", "hi", "hey"}},
	{"farewell", []string{"bye", "goodbye", "see you", "good night"}},
	{"breathing", []string{"breathe", "breathing", "panic attack"}},
	{"joke", []string{"joke", "funny", "laugh"}},
	{"quote", []string{"motivate", "motivation", "quote", "inspire"}},
	{"gratitude", []string{"grateful", "gratitude", "thankful"}},
}

var wordBoundaryCache = map[string]*regexp.Regexp{}

func init() {
	for _, group := range triggerGroups {
		for _, w := range group.words {
			if !strings.Contains(w, " ") {
				wordBoundaryCache[w] = regexp.MustCompile(`\b` + regexp.QuoteMeta(w) + `\b`)
			}
		}
	}
}

// Overrider applies the literal-trigger overrides on top of a generated reply.
type Overrider struct {
	generator *Generator
	now       func() time.Time
}

// NewOverrider returns an Overrider. A nil clock defaults to time.Now.
func NewOverrider(generator *Generator, now func() time.Time) *Overrider {
	if now == nil {
		now = time.Now
	}
	return &Overrider{generator: generator, now: now}
}

// Apply checks the raw message for trigger words and replaces the reply when one
// fires. The reply passes through untouched when nothing matches.
func (o *Overrider) Apply(rawMessage string, reply Reply, conv Context, personality *types.BotPersonality) Reply {
	lowered := strings.ToLower(rawMessage)

	for _, group := range triggerGroups {
		if !matchesAny(lowered, group.words) {
			continue
		}
		switch group.kind {
		case "greeting":
			reply.Text = renderName(o.greetingTemplate(personality), conv.UserName)
			reply.Category = types.CategoryGeneral
		case "farewell":
			reply.Text = renderName(farewellTemplate(personality), conv.UserName)
			reply.Category = types.CategoryGeneral
		case "breathing":
			reply.Text = renderName(breathingTemplate(personality), conv.UserName)
			reply.Category = types.CategoryBreathing
		case "joke":
			reply.Text = o.generator.choose(jokePool)
			reply.Category = types.CategoryHumor
		case "quote":
			reply.Text = o.generator.choose(quotePool)
			reply.Category = types.CategoryMotivation
		case "gratitude":
			reply.Text = renderName(gratitudeTemplate(personality), conv.UserName)
			reply.Category = types.CategoryGratitude
		}
		reply.Metadata = map[string]any{"trigger": group.kind}
		return reply
	}
	return reply
}

func matchesAny(lowered string, words []string) bool {
	for _, w := range words {
		if re, ok := wordBoundaryCache[w]; ok {
			if re.MatchString(lowered) {
				return true
			}
			continue
		}
		if strings.Contains(lowered, w) {
			return true
		}
	}
	return false
}

// greetingTemplate picks the time-appropriate greeting from the personality.
func (o *Overrider) greetingTemplate(p *types.BotPersonality) string {
	hour := o.now().Hour()
	switch {
	case p != nil && hour < 12 && p.GreetingMorning != "":
		return p.GreetingMorning
	case p != nil && hour >= 12 && hour < 18 && p.GreetingAfternoon != "":
		return p.GreetingAfternoon
	case p != nil && hour >= 18 && p.GreetingEvening != "":
		return p.GreetingEvening
	}
	return "Hey {name}! I'm Bloom, here to chat anytime."
}

func farewellTemplate(p *types.BotPersonality) string {
	if p != nil && p.FarewellMessage != "" {
		return p.FarewellMessage
	}
	return "Take care, {name}! Come back whenever you want to talk."
}

func breathingTemplate(p *types.BotPersonality) string {
	if p != nil && p.BreathingPrompt != "" {
		return p.BreathingPrompt
	}
	return "Let's breathe together, {name}. In for 4... hold for 4... out for 4. Repeat with me a few times."
}

func gratitudeTemplate(p *types.BotPersonality) string {
	if p != nil && p.GratitudePrompt != "" {
		return p.GratitudePrompt
	}
	return "I love that, {name}. What are three things you're grateful for today?"
}
