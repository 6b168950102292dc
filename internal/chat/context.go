package chat

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/bloomwell/bloom/internal/analysis"
	"github.com/bloomwell/bloom/internal/types"
)

// historyLimit is how many prior messages a conversation context carries.
const historyLimit = 10

// SentimentTrend summarizes where recent sentiment is heading.
type SentimentTrend string

const (
	TrendImproving SentimentTrend = "improving"
	TrendDeclining SentimentTrend = "declining"
	TrendSteady    SentimentTrend = "steady"
)

// Context is the per-request view of a conversation. It is rebuilt for every
// message and discarded afterwards.
type Context struct {
	UserName        string
	RecentMessages  []types.ChatMessage
	TopicsDiscussed []string
	Trend           SentimentTrend
}

// MessageSource loads recent messages for a session.
type MessageSource interface {
	Recent(ctx context.Context, sessionID string, limit int) ([]types.ChatMessage, error)
}

// ContextBuilder assembles conversation contexts from the message store.
type ContextBuilder struct {
	messages  MessageSource
	extractor *analysis.Extractor
	log       zerolog.Logger
}

// NewContextBuilder returns a ContextBuilder.
func NewContextBuilder(messages MessageSource, extractor *analysis.Extractor, log zerolog.Logger) *ContextBuilder {
	return &ContextBuilder{messages: messages, extractor: extractor, log: log}
}

// Build loads the recent history for a session. A store failure degrades to an
// empty context (new-conversation semantics) instead of failing the request.
func (b *ContextBuilder) Build(ctx context.Context, sessionID string) Context {
	result := Context{Trend: TrendSteady}
	if b.messages == nil {
		return result
	}

	recent, err := b.messages.Recent(ctx, sessionID, historyLimit)
	if err != nil {
		b.log.Warn().Err(err).Str("session_id", sessionID).Msg("failed to load recent messages, using empty context")
		return result
	}

	result.RecentMessages = recent
	result.TopicsDiscussed = b.collectTopics(recent)
	result.Trend = sentimentTrend(recent)
	return result
}

// collectTopics unions the stored keywords of recent user messages, extracting
// them on the fly for messages persisted without any.
func (b *ContextBuilder) collectTopics(messages []types.ChatMessage) []string {
	seen := make(map[string]bool)
	var topics []string
	add := func(kw string) {
		if kw == "" || seen[kw] {
			return
		}
		seen[kw] = true
		topics = append(topics, kw)
	}

	for _, msg := range messages {
		if msg.Sender != types.SenderUser {
			continue
		}
		keywords := msg.Keywords
		if len(keywords) == 0 && b.extractor != nil {
			keywords = b.extractor.Extract(msg.Message)
		}
		for _, kw := range keywords {
			add(kw)
		}
	}
	return topics
}

// sentimentTrend compares the average sentiment of the older half of the window
// against the newer half.
func sentimentTrend(messages []types.ChatMessage) SentimentTrend {
	var scores []float64
	for _, msg := range messages {
		if msg.Sender == types.SenderUser {
			scores = append(scores, msg.Sentiment)
		}
	}
	if len(scores) < 2 {
		return TrendSteady
	}

	mid := len(scores) / 2
	older := average(scores[:mid])
	newer := average(scores[mid:])
	switch {
	case newer-older > 0.1:
		return TrendImproving
	case older-newer > 0.1:
		return TrendDeclining
	default:
		return TrendSteady
	}
}

func average(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
