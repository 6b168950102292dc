package chat

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/bloomwell/bloom/internal/analysis"
	"github.com/bloomwell/bloom/internal/types"
)

type fakeMessageSource struct {
	messages []types.ChatMessage
	err      error
}

func (f *fakeMessageSource) Recent(ctx context.Context, sessionID string, limit int) ([]types.ChatMessage, error) {
	if f.err != nil {
		return nil, f.err
	}
	if len(f.messages) > limit {
		return f.messages[len(f.messages)-limit:], nil
	}
	return f.messages, nil
}

func TestBuildCollectsTopicsFromUserMessages(t *testing.T) {
	source := &fakeMessageSource{messages: []types.ChatMessage{
		{Sender: types.SenderUser, Message: "work deadline", Keywords: []string{"work", "deadline"}},
		{Sender: types.SenderBot, Message: "that sounds hard", Keywords: []string{"sounds"}},
		{Sender: types.SenderUser, Message: "deadline again", Keywords: []string{"deadline"}},
	}}
	builder := NewContextBuilder(source, analysis.NewExtractor(nil), zerolog.Nop())

	conv := builder.Build(context.Background(), "s1")

	assert.Equal(t, []string{"work", "deadline"}, conv.TopicsDiscussed)
	assert.Len(t, conv.RecentMessages, 3)
}

func TestBuildExtractsKeywordsWhenMissing(t *testing.T) {
	source := &fakeMessageSource{messages: []types.ChatMessage{
		{Sender: types.SenderUser, Message: "my manager keeps adding deadlines"},
	}}
	builder := NewContextBuilder(source, analysis.NewExtractor(nil), zerolog.Nop())

	conv := builder.Build(context.Background(), "s1")

	assert.Contains(t, conv.TopicsDiscussed, "manager")
}

func TestBuildFallsBackToEmptyContext(t *testing.T) {
	builder := NewContextBuilder(&fakeMessageSource{err: errors.New("store down")}, nil, zerolog.Nop())

	conv := builder.Build(context.Background(), "s1")

	assert.Empty(t, conv.RecentMessages)
	assert.Empty(t, conv.TopicsDiscussed)
	assert.Equal(t, TrendSteady, conv.Trend)
}

func TestSentimentTrend(t *testing.T) {
	improving := []types.ChatMessage{
		{Sender: types.SenderUser, Sentiment: -0.5},
		{Sender: types.SenderUser, Sentiment: -0.4},
		{Sender: types.SenderUser, Sentiment: 0.3},
		{Sender: types.SenderUser, Sentiment: 0.5},
	}
	assert.Equal(t, TrendImproving, sentimentTrend(improving))

	declining := []types.ChatMessage{
		{Sender: types.SenderUser, Sentiment: 0.5},
		{Sender: types.SenderUser, Sentiment: 0.4},
		{Sender: types.SenderUser, Sentiment: -0.3},
		{Sender: types.SenderUser, Sentiment: -0.5},
	}
	assert.Equal(t, TrendDeclining, sentimentTrend(declining))

	steady := []types.ChatMessage{
		{Sender: types.SenderUser, Sentiment: 0.1},
		{Sender: types.SenderUser, Sentiment: 0.15},
	}
	assert.Equal(t, TrendSteady, sentimentTrend(steady))

	single := []types.ChatMessage{{Sender: types.SenderUser, Sentiment: 0.9}}
	assert.Equal(t, TrendSteady, sentimentTrend(single))
}
