package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/bloomwell/bloom/internal/analysis"
	"github.com/bloomwell/bloom/internal/engagement"
	"github.com/bloomwell/bloom/internal/types"
)

// maxMessageRunes caps inbound message length at the orchestration boundary.
const maxMessageRunes = 2000

const patternContextRunes = 200

var (
	// ErrEmptyMessage rejects blank input before it reaches the pipeline.
	ErrEmptyMessage = errors.New("message is empty")
	// ErrMessageTooLong rejects oversized input.
	ErrMessageTooLong = errors.New("message exceeds length limit")
)

// MessageStore persists and reads chat messages.
type MessageStore interface {
	Add(ctx context.Context, msg *types.ChatMessage) error
	Recent(ctx context.Context, sessionID string, limit int) ([]types.ChatMessage, error)
	HistoryForUser(ctx context.Context, userID string) ([]types.ChatMessage, error)
	ClearForUser(ctx context.Context, userID string) error
	CountGratitudeMessages(ctx context.Context, userID string) (int, error)
}

// SessionStore manages conversation sessions and their counters.
type SessionStore interface {
	// GetOrCreate returns the session, creating it when absent. The second
	// return reports whether this call created it.
	GetOrCreate(ctx context.Context, userID, sessionID string) (*types.ConversationSession, bool, error)
	// AddMessages bumps the session message counter and returns the new count.
	AddMessages(ctx context.Context, sessionID string, delta int) (int, error)
	// End marks the session inactive.
	End(ctx context.Context, sessionID string) error
}

// ProfileStore reads and updates user engagement statistics.
type ProfileStore interface {
	Get(ctx context.Context, userID string) (*types.UserProfile, error)
	// RecordActivity bumps total_messages and, for a new session,
	// total_conversations.
	RecordActivity(ctx context.Context, userID string, newConversation bool, messages int) error
	// UpdateStreak stores a daily check-in streak value.
	UpdateStreak(ctx context.Context, userID string, streak int) error
	// RecalculateWellness recomputes and stores the wellness score, returning it.
	RecalculateWellness(ctx context.Context, userID string, gratitudeCount int) (float64, error)
}

// PersonalityStore resolves the bot personality for a user.
type PersonalityStore interface {
	ForUser(ctx context.Context, userID string) (*types.BotPersonality, error)
}

// PatternStore records observed emotion patterns with their per-emotion
// intensity vector.
type PatternStore interface {
	Add(ctx context.Context, pattern *types.EmotionPattern, intensities map[analysis.Emotion]float64) error
}

// Evaluator runs achievement evaluation for a behavioral event.
type Evaluator interface {
	Evaluate(ctx context.Context, userID string, event engagement.Event, stats *types.UserProfile, extra engagement.Extra) ([]types.Achievement, error)
}

// Response is what a message-send returns to the caller.
type Response struct {
	Text               string              `json:"reply"`
	Category           types.Category      `json:"category"`
	Metadata           map[string]any      `json:"metadata,omitempty"`
	Analysis           analysis.Result     `json:"analysis"`
	EarnedAchievements []types.Achievement `json:"earned_achievements,omitempty"`
	ResponseTimeMS     int64               `json:"response_time_ms"`
}

// Service orchestrates the message-send use case. It is the only component that
// touches the persistence and notification collaborators; the analyzer,
// extractor, and generator underneath it stay pure.
type Service struct {
	analyzer      *analysis.Analyzer
	extractor     *analysis.Extractor
	contexts      *ContextBuilder
	generator     *Generator
	overrider     *Overrider
	messages      MessageStore
	sessions      SessionStore
	profiles      ProfileStore
	personalities PersonalityStore
	patterns      PatternStore
	achievements  Evaluator
	now           func() time.Time
	log           zerolog.Logger
}

// ServiceParams collects the orchestrator dependencies.
type ServiceParams struct {
	Analyzer      *analysis.Analyzer
	Extractor     *analysis.Extractor
	Contexts      *ContextBuilder
	Generator     *Generator
	Overrider     *Overrider
	Messages      MessageStore
	Sessions      SessionStore
	Profiles      ProfileStore
	Personalities PersonalityStore
	Patterns      PatternStore
	Achievements  Evaluator
	Now           func() time.Time
	Log           zerolog.Logger
}

// NewService returns the message-send orchestrator.
func NewService(p ServiceParams) *Service {
	if p.Now == nil {
		p.Now = time.Now
	}
	return &Service{
		analyzer:      p.Analyzer,
		extractor:     p.Extractor,
		contexts:      p.Contexts,
		generator:     p.Generator,
		overrider:     p.Overrider,
		messages:      p.Messages,
		sessions:      p.Sessions,
		profiles:      p.Profiles,
		personalities: p.Personalities,
		patterns:      p.Patterns,
		achievements:  p.Achievements,
		now:           p.Now,
		log:           p.Log,
	}
}

// SendMessage runs the full pipeline for one inbound message. Persistence and
// achievement side effects are best-effort: the reply is always produced even
// when collaborators fail, with failures logged as warnings.
func (s *Service) SendMessage(ctx context.Context, userID, sessionID, text string) (*Response, error) {
	started := s.now()

	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyMessage
	}
	if utf8.RuneCountInString(text) > maxMessageRunes {
		return nil, ErrMessageTooLong
	}

	session, created, err := s.sessions.GetOrCreate(ctx, userID, sessionID)
	if err != nil {
		s.log.Warn().Err(err).Str("session_id", sessionID).Msg("failed to resolve session, continuing without persistence")
		session = nil
	}

	profile := s.loadProfile(ctx, userID)
	personality := s.loadPersonality(ctx, userID)

	result := s.analyzer.Analyze(text)
	keywords := s.extractor.Extract(text)
	conv := s.contexts.Build(ctx, sessionID)
	conv.UserName = profile.PreferredName

	if session != nil {
		inbound := &types.ChatMessage{
			UserID:    userID,
			SessionID: sessionID,
			Sender:    types.SenderUser,
			Message:   text,
			Category:  types.CategoryGeneral,
			Sentiment: result.SentimentScore,
			Emotions:  emotionNames(result.Emotions),
			Keywords:  keywords,
			Timestamp: s.now(),
		}
		if err := s.messages.Add(ctx, inbound); err != nil {
			s.log.Warn().Err(err).Msg("failed to persist inbound message")
		}
	}

	reply := s.generator.Generate(ctx, text, conv, result, personality)
	// Literal triggers replace the generated reply, but never a crisis
	// intervention: safety text always wins.
	if result.CrisisLevel == analysis.CrisisNone {
		reply = s.overrider.Apply(text, reply, conv, personality)
	}

	elapsed := s.now().Sub(started)
	response := &Response{
		Text:           reply.Text,
		Category:       reply.Category,
		Metadata:       reply.Metadata,
		Analysis:       result,
		ResponseTimeMS: elapsed.Milliseconds(),
	}

	if session == nil {
		return response, nil
	}

	outbound := &types.ChatMessage{
		UserID:         userID,
		SessionID:      sessionID,
		Sender:         types.SenderBot,
		Message:        reply.Text,
		Category:       reply.Category,
		ResponseTimeMS: elapsed.Milliseconds(),
		Timestamp:      s.now(),
	}
	if err := s.messages.Add(ctx, outbound); err != nil {
		s.log.Warn().Err(err).Msg("failed to persist outbound message")
	}

	messageCount, err := s.sessions.AddMessages(ctx, sessionID, 2)
	if err != nil {
		s.log.Warn().Err(err).Msg("failed to update session counters")
		messageCount = session.MessageCount + 2
	}
	if err := s.profiles.RecordActivity(ctx, userID, created, 1); err != nil {
		s.log.Warn().Err(err).Msg("failed to update profile counters")
	}

	// Keep the snapshot consistent with the counters just written.
	profile.TotalMessages++
	if created {
		profile.TotalConversations++
	}

	response.EarnedAchievements = s.fireAchievements(ctx, userID, profile, reply.Category, messageCount)
	s.recordEmotionPattern(ctx, userID, text, result, keywords)

	return response, nil
}

// CheckInResult is what a daily check-in returns.
type CheckInResult struct {
	Streak             int                 `json:"streak"`
	LongestStreak      int                 `json:"longest_streak"`
	WellnessScore      float64             `json:"wellness_score"`
	EarnedAchievements []types.Achievement `json:"earned_achievements,omitempty"`
}

// CheckIn records a daily check-in and returns the resulting streak. Checking
// in the day after the last check-in extends the streak, a same-day repeat
// keeps it, and a longer gap resets it to 1. The wellness score is refreshed
// and the streak and wellness achievements evaluated on the way out.
func (s *Service) CheckIn(ctx context.Context, userID string) (*CheckInResult, error) {
	profile := s.loadProfile(ctx, userID)
	now := s.now()

	streak := 1
	switch {
	case sameDay(profile.LastCheckIn, now):
		if profile.DailyStreak > 0 {
			streak = profile.DailyStreak
		}
	case sameDay(profile.LastCheckIn, now.AddDate(0, 0, -1)):
		streak = profile.DailyStreak + 1
	}

	if err := s.profiles.UpdateStreak(ctx, userID, streak); err != nil {
		return nil, fmt.Errorf("failed to update streak: %w", err)
	}
	profile.DailyStreak = streak
	if streak > profile.LongestStreak {
		profile.LongestStreak = streak
	}
	profile.LastCheckIn = now

	// The wellness refresh is best-effort; the check-in itself already stuck.
	if gratitude, err := s.messages.CountGratitudeMessages(ctx, userID); err != nil {
		s.log.Warn().Err(err).Str("user_id", userID).Msg("failed to count gratitude messages")
	} else if score, err := s.profiles.RecalculateWellness(ctx, userID, gratitude); err != nil {
		s.log.Warn().Err(err).Str("user_id", userID).Msg("failed to recalculate wellness score")
	} else {
		profile.WellnessScore = score
	}

	result := &CheckInResult{
		Streak:        profile.DailyStreak,
		LongestStreak: profile.LongestStreak,
		WellnessScore: profile.WellnessScore,
	}
	run := func(event engagement.Event) {
		awarded, err := s.achievements.Evaluate(ctx, userID, event, profile, engagement.Extra{})
		if err != nil {
			s.log.Warn().Err(err).Str("event", string(event)).Msg("achievement evaluation failed")
			return
		}
		result.EarnedAchievements = append(result.EarnedAchievements, awarded...)
	}
	run(engagement.EventMoodEntry)
	run(engagement.EventWellnessMilestone)

	return result, nil
}

// EndSession marks a conversation session inactive.
func (s *Service) EndSession(ctx context.Context, sessionID string) error {
	return s.sessions.End(ctx, sessionID)
}

// History returns the user's full chat history, oldest first.
func (s *Service) History(ctx context.Context, userID string) ([]types.ChatMessage, error) {
	return s.messages.HistoryForUser(ctx, userID)
}

// Clear deletes the user's chat history.
func (s *Service) Clear(ctx context.Context, userID string) error {
	return s.messages.ClearForUser(ctx, userID)
}

// fireAchievements runs the event evaluations for a completed message exchange.
// Failures downgrade to warnings; the reply has already been produced.
func (s *Service) fireAchievements(ctx context.Context, userID string, profile *types.UserProfile, category types.Category, messageCount int) []types.Achievement {
	var earned []types.Achievement

	run := func(event engagement.Event, extra engagement.Extra) {
		awarded, err := s.achievements.Evaluate(ctx, userID, event, profile, extra)
		if err != nil {
			s.log.Warn().Err(err).Str("event", string(event)).Msg("achievement evaluation failed")
			return
		}
		earned = append(earned, awarded...)
	}

	run(engagement.EventConversationStart, engagement.Extra{})
	if category == types.CategoryGratitude {
		run(engagement.EventGratitudePractice, engagement.Extra{})
	}
	// Fire only when this exchange pushed the session across the threshold.
	if messageCount >= 20 && messageCount-2 < 20 {
		run(engagement.EventLongConversation, engagement.Extra{SessionMessageCount: messageCount})
	}
	return earned
}

// recordEmotionPattern stores one pattern entry for the dominant emotion.
// Best-effort: a failure never affects the reply.
func (s *Service) recordEmotionPattern(ctx context.Context, userID, text string, result analysis.Result, keywords []string) {
	if len(result.Emotions) == 0 || s.patterns == nil {
		return
	}

	snippet := text
	if utf8.RuneCountInString(snippet) > patternContextRunes {
		snippet = string([]rune(snippet)[:patternContextRunes])
	}
	triggers := keywords
	if len(triggers) > 3 {
		triggers = triggers[:3]
	}

	pattern := &types.EmotionPattern{
		UserID:    userID,
		Emotion:   string(result.DominantEmotion),
		Intensity: result.Emotions[result.DominantEmotion],
		Context:   snippet,
		Triggers:  triggers,
		Timestamp: s.now(),
	}
	if err := s.patterns.Add(ctx, pattern, result.Emotions); err != nil {
		s.log.Warn().Err(err).Msg("failed to record emotion pattern")
	}
}

func (s *Service) loadProfile(ctx context.Context, userID string) *types.UserProfile {
	profile, err := s.profiles.Get(ctx, userID)
	if err != nil || profile == nil {
		if err != nil {
			s.log.Warn().Err(err).Str("user_id", userID).Msg("failed to load profile, using defaults")
		}
		return &types.UserProfile{UserID: userID, PreferredName: "friend"}
	}
	if profile.PreferredName == "" {
		profile.PreferredName = "friend"
	}
	return profile
}

func (s *Service) loadPersonality(ctx context.Context, userID string) *types.BotPersonality {
	personality, err := s.personalities.ForUser(ctx, userID)
	if err != nil || personality == nil {
		if err != nil {
			s.log.Warn().Err(err).Str("user_id", userID).Msg("failed to load personality, using default")
		}
		return DefaultPersonality()
	}
	return personality
}

func sameDay(a, b time.Time) bool {
	if a.IsZero() {
		return false
	}
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func emotionNames(emotions map[analysis.Emotion]float64) []string {
	if len(emotions) == 0 {
		return nil
	}
	names := make([]string, 0, len(emotions))
	for _, emotion := range analysis.EmotionOrder {
		if _, ok := emotions[emotion]; ok {
			names = append(names, string(emotion))
		}
	}
	return names
}

// DefaultPersonality is the hardcoded fallback used when no personality row is
// configured for the user and no default exists.
func DefaultPersonality() *types.BotPersonality {
	return &types.BotPersonality{
		Name:              "Bloom",
		Description:       "Empathetic and supportive wellness companion",
		IsDefault:         true,
		EmpathyLevel:      0.9,
		HumorLevel:        0.4,
		FormalityLevel:    0.2,
		ProactivityLevel:  0.7,
		GreetingMorning:   "Good morning, {name}! How are you feeling today?",
		GreetingAfternoon: "Good afternoon, {name}! How's your day going?",
		GreetingEvening:   "Good evening, {name}! How was your day?",
		FarewellMessage:   "Take care, {name}! Come back whenever you want to talk.",
		CrisisResponse:    "{name}, I'm concerned about you. Please reach out for support:\n{resources}",
		BreathingPrompt:   "Let's breathe together, {name}. In for 4... hold for 4... out for 4.",
		GratitudePrompt:   "I love that, {name}. What are three things you're grateful for today?",
	}
}
