package storage

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/bloomwell/bloom/internal/types"
)

type fakeMessageBackend struct {
	recent      []types.ChatMessage
	recentCalls int
	added       []*types.ChatMessage
}

func (f *fakeMessageBackend) Add(ctx context.Context, msg *types.ChatMessage) error {
	f.added = append(f.added, msg)
	return nil
}

func (f *fakeMessageBackend) Recent(ctx context.Context, sessionID string, limit int) ([]types.ChatMessage, error) {
	f.recentCalls++
	return f.recent, nil
}

func (f *fakeMessageBackend) HistoryForUser(ctx context.Context, userID string) ([]types.ChatMessage, error) {
	return f.recent, nil
}

func (f *fakeMessageBackend) ClearForUser(ctx context.Context, userID string) error {
	return nil
}

func (f *fakeMessageBackend) CountGratitudeMessages(ctx context.Context, userID string) (int, error) {
	return 0, nil
}

type fakeRedis struct {
	store   map[string]string
	deleted []string
	err     error
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{store: make(map[string]string)}
}

func (f *fakeRedis) Get(ctx context.Context, key string) *redis.StringCmd {
	if f.err != nil {
		return redis.NewStringResult("", f.err)
	}
	if value, ok := f.store[key]; ok {
		return redis.NewStringResult(value, nil)
	}
	return redis.NewStringResult("", redis.Nil)
}

func (f *fakeRedis) Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd {
	if f.err != nil {
		return redis.NewStatusResult("", f.err)
	}
	data, _ := value.([]byte)
	f.store[key] = string(data)
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeRedis) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	f.deleted = append(f.deleted, keys...)
	for _, key := range keys {
		delete(f.store, key)
	}
	return redis.NewIntResult(int64(len(keys)), f.err)
}

func newTestCache(backend *fakeMessageBackend, client *fakeRedis) *CachedMessages {
	return &CachedMessages{
		repo:   backend,
		client: client,
		ttl:    time.Minute,
		log:    zerolog.Nop(),
	}
}

func TestCachedRecentServesRepeatReadsFromCache(t *testing.T) {
	backend := &fakeMessageBackend{
		recent: []types.ChatMessage{{SessionID: "s1", Message: "hello"}},
	}
	cache := newTestCache(backend, newFakeRedis())
	ctx := context.Background()

	first, err := cache.Recent(ctx, "s1", recentCacheWindow)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	second, err := cache.Recent(ctx, "s1", recentCacheWindow)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if backend.recentCalls != 1 {
		t.Fatalf("expected one backend read, got %d", backend.recentCalls)
	}
	if len(first) != 1 || len(second) != 1 || second[0].Message != "hello" {
		t.Fatalf("expected cached window to match, got %#v", second)
	}
}

func TestCachedAddDeletesOnlyTheSessionKey(t *testing.T) {
	backend := &fakeMessageBackend{}
	client := newFakeRedis()
	cache := newTestCache(backend, client)
	ctx := context.Background()

	if _, err := cache.Recent(ctx, "s1", recentCacheWindow); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if err := cache.Add(ctx, &types.ChatMessage{SessionID: "s1", Message: "hi"}); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if len(client.deleted) != 1 || client.deleted[0] != recentCacheKey("s1") {
		t.Fatalf("expected a single deterministic key delete, got %#v", client.deleted)
	}
	if _, ok := client.store[recentCacheKey("s1")]; ok {
		t.Fatal("expected the cached window to be gone after an insert")
	}
}

func TestCachedRecentBypassesCacheForOtherWindows(t *testing.T) {
	backend := &fakeMessageBackend{}
	client := newFakeRedis()
	cache := newTestCache(backend, client)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if _, err := cache.Recent(ctx, "s1", 3); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	}

	if backend.recentCalls != 2 {
		t.Fatalf("expected every non-standard window to hit the backend, got %d calls", backend.recentCalls)
	}
	if len(client.store) != 0 {
		t.Fatalf("expected nothing cached for non-standard windows, got %#v", client.store)
	}
}

func TestCachedRecentDegradesWhenRedisFails(t *testing.T) {
	backend := &fakeMessageBackend{
		recent: []types.ChatMessage{{SessionID: "s1", Message: "still here"}},
	}
	client := newFakeRedis()
	client.err = errors.New("redis down")
	cache := newTestCache(backend, client)

	results, err := cache.Recent(context.Background(), "s1", recentCacheWindow)
	if err != nil {
		t.Fatalf("expected cache failure to degrade to the backend, got %v", err)
	}
	if len(results) != 1 || results[0].Message != "still here" {
		t.Fatalf("expected backend results, got %#v", results)
	}
}
