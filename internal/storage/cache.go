package storage

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/bloomwell/bloom/internal/types"
)

const (
	recentCacheTTL = 10 * time.Minute

	// recentCacheWindow is the only window size the cache stores. It matches
	// the recent-history window the conversation context reads on every send;
	// other limits go straight to the database.
	recentCacheWindow = 10
)

// messageBackend is the persistent store behind the cache.
type messageBackend interface {
	Add(ctx context.Context, msg *types.ChatMessage) error
	Recent(ctx context.Context, sessionID string, limit int) ([]types.ChatMessage, error)
	HistoryForUser(ctx context.Context, userID string) ([]types.ChatMessage, error)
	ClearForUser(ctx context.Context, userID string) error
	CountGratitudeMessages(ctx context.Context, userID string) (int, error)
}

// redisCommands is the slice of the redis client the cache uses.
type redisCommands interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// CachedMessages wraps a MessageRepo with a read-through redis cache for the
// hot path, the recent-messages window read on every send. Cache failures are
// logged and degrade to direct database reads; they never fail the caller.
type CachedMessages struct {
	repo   messageBackend
	client redisCommands
	ttl    time.Duration
	log    zerolog.Logger
}

// NewCachedMessages returns a cache-backed message store. A nil client disables
// caching and passes everything straight through.
func NewCachedMessages(repo *MessageRepo, client *redis.Client, log zerolog.Logger) *CachedMessages {
	c := &CachedMessages{
		repo: repo,
		ttl:  recentCacheTTL,
		log:  log,
	}
	if client != nil {
		c.client = client
	}
	return c
}

// Add inserts the message and drops the session's cached window. The key is
// deterministic, so invalidation is a single DEL with no keyspace scan.
func (c *CachedMessages) Add(ctx context.Context, msg *types.ChatMessage) error {
	if err := c.repo.Add(ctx, msg); err != nil {
		return err
	}
	c.invalidate(ctx, msg.SessionID)
	return nil
}

// Recent returns the last messages of a session, oldest first, serving from
// cache when the standard window is present.
func (c *CachedMessages) Recent(ctx context.Context, sessionID string, limit int) ([]types.ChatMessage, error) {
	if limit != recentCacheWindow {
		return c.repo.Recent(ctx, sessionID, limit)
	}
	if cached, ok := c.load(ctx, sessionID); ok {
		return cached, nil
	}

	results, err := c.repo.Recent(ctx, sessionID, limit)
	if err != nil {
		return nil, err
	}
	c.store(ctx, sessionID, results)
	return results, nil
}

// HistoryForUser returns every message of a user, oldest first.
func (c *CachedMessages) HistoryForUser(ctx context.Context, userID string) ([]types.ChatMessage, error) {
	return c.repo.HistoryForUser(ctx, userID)
}

// ClearForUser deletes a user's chat history. Cached windows for the user's
// sessions expire on their own TTL rather than being tracked per user.
func (c *CachedMessages) ClearForUser(ctx context.Context, userID string) error {
	return c.repo.ClearForUser(ctx, userID)
}

// CountGratitudeMessages counts a user's gratitude-category messages.
func (c *CachedMessages) CountGratitudeMessages(ctx context.Context, userID string) (int, error) {
	return c.repo.CountGratitudeMessages(ctx, userID)
}

func (c *CachedMessages) load(ctx context.Context, sessionID string) ([]types.ChatMessage, bool) {
	if c.client == nil {
		return nil, false
	}
	data, err := c.client.Get(ctx, recentCacheKey(sessionID)).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.Warn().Err(err).Str("session_id", sessionID).Msg("failed to read message cache")
		}
		return nil, false
	}

	var results []types.ChatMessage
	if err := json.Unmarshal([]byte(data), &results); err != nil {
		c.log.Warn().Err(err).Str("session_id", sessionID).Msg("failed to decode message cache")
		return nil, false
	}
	return results, true
}

func (c *CachedMessages) store(ctx context.Context, sessionID string, results []types.ChatMessage) {
	if c.client == nil {
		return
	}
	data, err := json.Marshal(results)
	if err != nil {
		c.log.Warn().Err(err).Str("session_id", sessionID).Msg("failed to encode message cache")
		return
	}
	if err := c.client.Set(ctx, recentCacheKey(sessionID), data, c.ttl).Err(); err != nil {
		c.log.Warn().Err(err).Str("session_id", sessionID).Msg("failed to write message cache")
	}
}

func (c *CachedMessages) invalidate(ctx context.Context, sessionID string) {
	if c.client == nil {
		return
	}
	if err := c.client.Del(ctx, recentCacheKey(sessionID)).Err(); err != nil {
		c.log.Warn().Err(err).Str("session_id", sessionID).Msg("failed to invalidate message cache")
	}
}

func recentCacheKey(sessionID string) string {
	return "messages:recent:" + sessionID
}
