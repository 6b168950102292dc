package chat

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/bloomwell/bloom/internal/types"
)

func fixedClock(hour int) func() time.Time {
	return func() time.Time {
		return time.Date(2025, 6, 1, hour, 0, 0, 0, time.UTC)
	}
}

func testPersonality() *types.BotPersonality {
	return DefaultPersonality()
}

func passthroughReply() Reply {
	return Reply{Text: "generated", Category: types.CategoryGeneral}
}

func TestApplyGreetingUsesTimeOfDay(t *testing.T) {
	gen := NewGenerator(&fakeResources{}, fixedRand())

	morning := NewOverrider(gen, fixedClock(9)).
		Apply("hello", passthroughReply(), Context{UserName: "Ana"}, testPersonality())
	assert.Equal(t, "Good morning, Ana! How are you feeling today?", morning.Text)
	assert.Equal(t, types.CategoryGeneral, morning.Category)

	evening := NewOverrider(gen, fixedClock(20)).
		Apply("hello", passthroughReply(), Context{UserName: "Ana"}, testPersonality())
	assert.Equal(t, "Good evening, Ana! How was your day?", evening.Text)
}

func TestApplyFarewell(t *testing.T) {
	gen := NewGenerator(&fakeResources{}, fixedRand())
	reply := NewOverrider(gen, fixedClock(9)).
		Apply("ok bye now", passthroughReply(), Context{UserName: "Ana"}, testPersonality())

	assert.Equal(t, "Take care, Ana! Come back whenever you want to talk.", reply.Text)
}

func TestApplyJokeOverridesCategory(t *testing.T) {
	gen := NewGenerator(&fakeResources{}, fixedRand())
	reply := NewOverrider(gen, fixedClock(9)).
		Apply("tell me a joke", passthroughReply(), Context{}, testPersonality())

	assert.Equal(t, types.CategoryHumor, reply.Category)
	assert.Contains(t, jokePool, reply.Text)
}

func TestApplyQuote(t *testing.T) {
	gen := NewGenerator(&fakeResources{}, fixedRand())
	reply := NewOverrider(gen, fixedClock(9)).
		Apply("I need some motivation", passthroughReply(), Context{}, testPersonality())

	assert.Equal(t, types.CategoryMotivation, reply.Category)
	assert.Contains(t, quotePool, reply.Text)
}

func TestApplyGratitudeTrigger(t *testing.T) {
	gen := NewGenerator(&fakeResources{}, fixedRand())
	reply := NewOverrider(gen, fixedClock(9)).
		Apply("feeling thankful", passthroughReply(), Context{UserName: "Ana"}, testPersonality())

	assert.Equal(t, types.CategoryGratitude, reply.Category)
	assert.Contains(t, reply.Text, "grateful")
}

func TestApplyNoTriggerPassesThrough(t *testing.T) {
	gen := NewGenerator(&fakeResources{}, fixedRand())
	reply := NewOverrider(gen, fixedClock(9)).
		Apply("nothing much happened today", passthroughReply(), Context{}, testPersonality())

	assert.Equal(t, "generated", reply.Text)
}

func TestApplyWordBoundaryOnShortTriggers(t *testing.T) {
	gen := NewGenerator(&fakeResources{}, fixedRand())

	// "hi" must not fire inside "nothing", "hey" not inside "they".
	reply := NewOverrider(gen, fixedClock(9)).
		Apply("nothing they said helped", passthroughReply(), Context{}, testPersonality())

	assert.Equal(t, "generated", reply.Text)
}

func TestApplyFirstMatchingGroupWins(t *testing.T) {
	gen := NewGenerator(&fakeResources{}, fixedRand())

	// Contains both a greeting and a joke trigger; greeting is checked first.
	reply := NewOverrider(gen, fixedClock(9)).
		Apply("hello, tell me a joke", passthroughReply(), Context{UserName: "Ana"}, testPersonality())

	assert.Equal(t, "Good morning, Ana! How are you feeling today?", reply.Text)
}
