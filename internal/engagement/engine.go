// Package engagement evaluates achievement definitions against user statistics and
// awards newly satisfied ones.
package engagement

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/bloomwell/bloom/internal/types"
)

// Event is a discrete user action that may unlock achievements.
type Event string

const (
	EventMoodEntry         Event = "mood_entry"
	EventConversationStart Event = "conversation_start"
	EventGratitudePractice Event = "gratitude_practice"
	EventWellnessMilestone Event = "wellness_milestone"
	EventLongConversation  Event = "long_conversation"
)

// longConversationMessages is the session message count behind the
// "long_conversation" symbolic requirement.
const longConversationMessages = 20

// Extra carries event-specific inputs that are not part of the stats snapshot.
type Extra struct {
	SessionMessageCount int
}

// DefinitionSource lists active achievement definitions.
type DefinitionSource interface {
	ListActive(ctx context.Context) ([]types.Achievement, error)
}

// AwardStore reads and records earned achievements. RecordEarned must be atomic
// across the given IDs and idempotent per (user, achievement) pair: replaying an
// award is a no-op, never an error.
type AwardStore interface {
	EarnedIDs(ctx context.Context, userID string) (map[int]bool, error)
	RecordEarned(ctx context.Context, userID string, achievementIDs []int) error
}

// GratitudeCounter counts a user's prior gratitude-category messages.
type GratitudeCounter interface {
	CountGratitudeMessages(ctx context.Context, userID string) (int, error)
}

// Engine evaluates achievement definitions for behavioral events.
type Engine struct {
	definitions DefinitionSource
	awards      AwardStore
	gratitude   GratitudeCounter
	log         zerolog.Logger
}

// NewEngine returns an Engine.
func NewEngine(definitions DefinitionSource, awards AwardStore, gratitude GratitudeCounter, log zerolog.Logger) *Engine {
	return &Engine{definitions: definitions, awards: awards, gratitude: gratitude, log: log}
}

// Evaluate checks every unlocked-but-not-earned active definition against the
// event and stats snapshot, records all newly qualifying ones in a single atomic
// write, and returns them in definition iteration order. An achievement can only
// move locked -> earned; there is no un-earning.
func (e *Engine) Evaluate(ctx context.Context, userID string, event Event, stats *types.UserProfile, extra Extra) ([]types.Achievement, error) {
	if stats == nil {
		return nil, fmt.Errorf("stats snapshot is required")
	}

	definitions, err := e.definitions.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list achievement definitions: %w", err)
	}
	earned, err := e.awards.EarnedIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load earned achievements: %w", err)
	}

	gratitudeCount := -1 // fetched lazily, only gratitude definitions need it
	var newlyEarned []types.Achievement
	newlyEarnedIDs := make(map[int]bool)

	for _, def := range definitions {
		if !def.IsActive || earned[def.ID] || newlyEarnedIDs[def.ID] {
			continue
		}
		if def.PrerequisiteID != 0 && !earned[def.PrerequisiteID] && !newlyEarnedIDs[def.PrerequisiteID] {
			continue
		}

		satisfied := false
		switch {
		case event == EventMoodEntry && def.Type == types.AchievementStreak:
			satisfied = stats.DailyStreak >= def.RequirementValue
		case event == EventConversationStart && def.Type == types.AchievementConversation:
			satisfied = stats.TotalConversations >= def.RequirementValue
		case event == EventGratitudePractice && def.Type == types.AchievementGratitude:
			if gratitudeCount < 0 {
				gratitudeCount, err = e.gratitude.CountGratitudeMessages(ctx, userID)
				if err != nil {
					return nil, fmt.Errorf("failed to count gratitude messages: %w", err)
				}
			}
			satisfied = gratitudeCount >= def.RequirementValue
		case event == EventWellnessMilestone && def.Type == types.AchievementWellness:
			satisfied = stats.WellnessScore >= float64(def.RequirementValue)
		case event == EventLongConversation && def.Type == types.AchievementEngagement:
			satisfied = def.RequirementString == "long_conversation" &&
				extra.SessionMessageCount >= longConversationMessages
		}
		if !satisfied {
			continue
		}

		newlyEarned = append(newlyEarned, def)
		newlyEarnedIDs[def.ID] = true
	}

	if len(newlyEarned) == 0 {
		return nil, nil
	}

	ids := make([]int, 0, len(newlyEarned))
	for _, def := range newlyEarned {
		ids = append(ids, def.ID)
	}
	// All-or-nothing: either every new award lands or none do. Duplicate inserts
	// racing from a concurrent evaluation are swallowed by the store.
	if err := e.awards.RecordEarned(ctx, userID, ids); err != nil {
		return nil, fmt.Errorf("failed to record earned achievements: %w", err)
	}

	e.log.Info().
		Str("user_id", userID).
		Str("event", string(event)).
		Int("earned", len(newlyEarned)).
		Msg("achievements awarded")
	return newlyEarned, nil
}
