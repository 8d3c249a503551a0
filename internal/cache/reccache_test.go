package cache

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"contentrec/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memStore implementa Store sobre un mapa, registrando el TTL de cada set
// para poder verificar la política por origen.
type memStore struct {
	data map[string][]byte
	ttls map[string]time.Duration
}

func newMemStore() *memStore {
	return &memStore{
		data: make(map[string][]byte),
		ttls: make(map[string]time.Duration),
	}
}

func (s *memStore) GetJSON(_ context.Context, key string, dest any) (bool, error) {
	raw, ok := s.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dest)
}

func (s *memStore) SetJSON(_ context.Context, key string, value any, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	s.data[key] = raw
	s.ttls[key] = ttl
	return nil
}

func (s *memStore) DeleteByPattern(_ context.Context, pattern string) (int, error) {
	prefix := strings.TrimSuffix(pattern, "*")
	var n int
	for key := range s.data {
		if strings.HasPrefix(key, prefix) {
			delete(s.data, key)
			delete(s.ttls, key)
			n++
		}
	}
	return n, nil
}

func fixedClock(at time.Time) func() time.Time {
	return func() time.Time { return at }
}

func someItems() []models.RecItem {
	return []models.RecItem{
		{ContentID: 10, Score: 0.9},
		{ContentID: 20, Score: 0.4},
	}
}

func TestRecCacheRoundTrip(t *testing.T) {
	store := newMemStore()
	now := time.Date(2026, 6, 1, 14, 30, 0, 0, time.UTC)
	c := NewRecCache(store, DefaultTTLPolicy(), fixedClock(now))

	ctx := context.Background()
	_, ok := c.Get(ctx, 1, 10)
	assert.False(t, ok)

	c.Set(ctx, 1, 10, someItems(), ResultPersonalized)

	got, ok := c.Get(ctx, 1, 10)
	require.True(t, ok)
	assert.Equal(t, someItems(), got)
}

func TestRecCacheBucketRotation(t *testing.T) {
	store := newMemStore()
	at := time.Date(2026, 6, 1, 14, 59, 0, 0, time.UTC)
	c := NewRecCache(store, DefaultTTLPolicy(), func() time.Time { return at })

	ctx := context.Background()
	c.Set(ctx, 1, 10, someItems(), ResultPersonalized)

	// mismo bucket de hora: hit
	at = time.Date(2026, 6, 1, 14, 59, 59, 0, time.UTC)
	_, ok := c.Get(ctx, 1, 10)
	assert.True(t, ok)

	// pasó al bucket siguiente: la key vieja ya no aplica
	at = time.Date(2026, 6, 1, 15, 0, 1, 0, time.UTC)
	_, ok = c.Get(ctx, 1, 10)
	assert.False(t, ok)
}

func TestRecCacheKeyIncludesK(t *testing.T) {
	store := newMemStore()
	now := time.Date(2026, 6, 1, 14, 0, 0, 0, time.UTC)
	c := NewRecCache(store, DefaultTTLPolicy(), fixedClock(now))

	ctx := context.Background()
	c.Set(ctx, 1, 10, someItems(), ResultPersonalized)

	_, ok := c.Get(ctx, 1, 25)
	assert.False(t, ok)
}

func TestRecCacheTTLByKind(t *testing.T) {
	store := newMemStore()
	now := time.Date(2026, 6, 1, 14, 0, 0, 0, time.UTC)
	ttl := DefaultTTLPolicy()
	c := NewRecCache(store, ttl, fixedClock(now))

	ctx := context.Background()
	c.Set(ctx, 1, 10, someItems(), ResultPersonalized)
	c.Set(ctx, 2, 10, someItems(), ResultFallback)
	c.Set(ctx, 3, 10, someItems(), ResultForced)

	assert.Equal(t, ttl.Personalized, store.ttls[c.key(1, 10)])
	assert.Equal(t, ttl.Fallback, store.ttls[c.key(2, 10)])
	assert.Equal(t, ttl.Forced, store.ttls[c.key(3, 10)])
}

func TestRecCachePurgeUser(t *testing.T) {
	store := newMemStore()
	now := time.Date(2026, 6, 1, 14, 0, 0, 0, time.UTC)
	c := NewRecCache(store, DefaultTTLPolicy(), fixedClock(now))

	ctx := context.Background()
	c.Set(ctx, 1, 10, someItems(), ResultPersonalized)
	c.Set(ctx, 1, 25, someItems(), ResultPersonalized)
	c.Set(ctx, 2, 10, someItems(), ResultPersonalized)

	n := c.PurgeUser(ctx, 1)
	assert.Equal(t, 2, n)

	_, ok := c.Get(ctx, 1, 10)
	assert.False(t, ok)
	_, ok = c.Get(ctx, 1, 25)
	assert.False(t, ok)

	// el otro usuario no se toca
	_, ok = c.Get(ctx, 2, 10)
	assert.True(t, ok)
}
