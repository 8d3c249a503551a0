package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"contentrec/internal/cache"
	"contentrec/internal/engine"
	"contentrec/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ================== fakes ==================

type memStore struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMemStore() *memStore {
	return &memStore{data: make(map[string][]byte)}
}

func (s *memStore) GetJSON(_ context.Context, key string, dest any) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	raw, ok := s.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dest)
}

func (s *memStore) SetJSON(_ context.Context, key string, value any, _ time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = raw
	return nil
}

func (s *memStore) DeleteByPattern(_ context.Context, pattern string) (int, error) {
	prefix := strings.TrimSuffix(pattern, "*")
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int
	for key := range s.data {
		if strings.HasPrefix(key, prefix) {
			delete(s.data, key)
			n++
		}
	}
	return n, nil
}

type fakeCatalog struct {
	mu        sync.Mutex
	published []models.ContentDoc
	top       []models.ContentDoc

	publishedErr   error
	topErr         error
	publishedDelay time.Duration

	publishedCalls int
	topCalls       int
	lastTopN       int
}

func (f *fakeCatalog) ListPublished(ctx context.Context) ([]models.ContentDoc, error) {
	f.mu.Lock()
	delay := f.publishedDelay
	f.publishedCalls++
	f.mu.Unlock()

	if delay > 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delay):
		}
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	return f.published, f.publishedErr
}

func (f *fakeCatalog) ListTopByPopularity(_ context.Context, n int) ([]models.ContentDoc, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.topCalls++
	f.lastTopN = n
	if f.topErr != nil {
		return nil, f.topErr
	}
	if len(f.top) > n {
		return f.top[:n], nil
	}
	return f.top, nil
}

type fakeInteractions struct {
	inters  []models.Interaction
	userIDs []int
	err     error
}

func (f *fakeInteractions) ListInteractions(context.Context) ([]models.Interaction, error) {
	return f.inters, f.err
}

func (f *fakeInteractions) ListUserIDs(context.Context) ([]int, error) {
	return f.userIDs, f.err
}

type fakeHistory struct {
	mu   sync.Mutex
	recs []*models.Recommendation
}

func (f *fakeHistory) Insert(_ context.Context, rec *models.Recommendation) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.recs = append(f.recs, rec)
	return nil
}

func (f *fakeHistory) FindByUser(_ context.Context, userID int, limit int64) ([]models.Recommendation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Recommendation
	for i := len(f.recs) - 1; i >= 0 && int64(len(out)) < limit; i-- {
		if f.recs[i].UserID == userID {
			out = append(out, *f.recs[i])
		}
	}
	return out, nil
}

func (f *fakeHistory) last() *models.Recommendation {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.recs) == 0 {
		return nil
	}
	return f.recs[len(f.recs)-1]
}

// ================== helpers ==================

func fptr(f float64) *float64 { return &f }

func catalogDocs() []models.ContentDoc {
	return []models.ContentDoc{
		{ContentID: 10, Title: "redes neuronales", Summary: "embeddings y gradientes", AuthorName: "garcia", IsPublished: true},
		{ContentID: 20, Title: "cocina italiana", Summary: "pastas y salsas", AuthorName: "rossi", IsPublished: true},
		{ContentID: 30, Title: "historia romana", Summary: "republica e imperio", AuthorName: "bruno", IsPublished: true},
	}
}

func popularDocs() []models.ContentDoc {
	return []models.ContentDoc{
		{ContentID: 30, FavoritesCount: 9, RatingStats: &models.RatingStats{Average: 4.8}},
		{ContentID: 10, FavoritesCount: 5, RatingStats: &models.RatingStats{Average: 4.1}},
		{ContentID: 20, FavoritesCount: 1},
	}
}

func interactionsFixture(now time.Time) []models.Interaction {
	ts := now.Unix()
	return []models.Interaction{
		{UserID: 1, ContentID: 10, Rating: fptr(5), Timestamp: ts},
		{UserID: 1, ContentID: 20, Rating: fptr(2), Timestamp: ts},
		{UserID: 2, ContentID: 10, Rating: fptr(4), Timestamp: ts},
		{UserID: 2, ContentID: 30, Rating: nil, Timestamp: ts},
	}
}

func newTestService(catalog *fakeCatalog, inters *fakeInteractions, history *fakeHistory) *RecommendService {
	return newTestServiceTimeout(catalog, inters, history, 10*time.Second)
}

func newTestServiceTimeout(catalog *fakeCatalog, inters *fakeInteractions, history *fakeHistory, timeout time.Duration) *RecommendService {
	cfg := engine.TrainConfig{
		EmbeddingDim:    4,
		Hidden1:         8,
		Hidden2:         4,
		Epochs:          20,
		LearningRate:    0.05,
		ValidationSplit: 0.2,
		Seed:            1,
	}
	recCache := cache.NewRecCache(newMemStore(), cache.DefaultTTLPolicy(), nil)
	return NewRecommendService(catalog, inters, history, recCache, cfg, 5, timeout)
}

// ================== tests ==================

func TestRecommendPersonalized(t *testing.T) {
	catalog := &fakeCatalog{published: catalogDocs(), top: popularDocs()}
	inters := &fakeInteractions{inters: interactionsFixture(time.Now())}
	history := &fakeHistory{}
	svc := newTestService(catalog, inters, history)

	items, err := svc.Recommend(context.Background(), RecRequest{UserID: 1, K: 2})
	require.NoError(t, err)
	require.NotEmpty(t, items)
	assert.LessOrEqual(t, len(items), 2)

	rec := history.last()
	require.NotNil(t, rec)
	assert.Equal(t, models.AlgoEmbedding, rec.Algo)
	assert.Equal(t, 1, rec.UserID)

	recs, err := svc.History(context.Background(), 1, 10)
	require.NoError(t, err)
	assert.Len(t, recs, 1)
}

func TestRecommendColdStartFallsBack(t *testing.T) {
	catalog := &fakeCatalog{published: catalogDocs(), top: popularDocs()}
	inters := &fakeInteractions{inters: interactionsFixture(time.Now())}
	history := &fakeHistory{}
	svc := newTestService(catalog, inters, history)

	// el usuario 99 no tiene ninguna interacción
	items, err := svc.Recommend(context.Background(), RecRequest{UserID: 99, K: 3})
	require.NoError(t, err)
	require.Len(t, items, 3)

	// ranking por popularidad, score = rating promedio
	assert.Equal(t, 30, items[0].ContentID)
	assert.InDelta(t, 4.8, items[0].Score, 1e-9)

	rec := history.last()
	require.NotNil(t, rec)
	assert.Equal(t, models.AlgoPopularity, rec.Algo)
}

func TestRecommendNoInteractionsFallsBack(t *testing.T) {
	catalog := &fakeCatalog{published: catalogDocs(), top: popularDocs()}
	inters := &fakeInteractions{}
	svc := newTestService(catalog, inters, &fakeHistory{})

	items, err := svc.Recommend(context.Background(), RecRequest{UserID: 1, K: 5})
	require.NoError(t, err)
	assert.NotEmpty(t, items)
	assert.Equal(t, 1, catalog.topCalls)
}

func TestRecommendCatalogErrorIsFatal(t *testing.T) {
	boom := errors.New("mongo caído")
	catalog := &fakeCatalog{publishedErr: boom, topErr: boom}
	inters := &fakeInteractions{inters: interactionsFixture(time.Now())}
	svc := newTestService(catalog, inters, &fakeHistory{})

	_, err := svc.Recommend(context.Background(), RecRequest{UserID: 1, K: 5})
	assert.ErrorIs(t, err, boom)
}

func TestRecommendCacheHitSkipsRecompute(t *testing.T) {
	catalog := &fakeCatalog{published: catalogDocs(), top: popularDocs()}
	inters := &fakeInteractions{}
	svc := newTestService(catalog, inters, &fakeHistory{})

	ctx := context.Background()
	first, err := svc.Recommend(ctx, RecRequest{UserID: 99, K: 3})
	require.NoError(t, err)

	second, err := svc.Recommend(ctx, RecRequest{UserID: 99, K: 3})
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, catalog.topCalls)      // la segunda salió del caché
	assert.Equal(t, 1, catalog.publishedCalls)
}

func TestRecommendHookInvalidatesCache(t *testing.T) {
	catalog := &fakeCatalog{published: catalogDocs(), top: popularDocs()}
	inters := &fakeInteractions{}
	svc := newTestService(catalog, inters, &fakeHistory{})

	ctx := context.Background()
	_, err := svc.Recommend(ctx, RecRequest{UserID: 99, K: 3})
	require.NoError(t, err)
	require.Equal(t, 1, catalog.topCalls)

	svc.OnFavoriteChanged(ctx, 99)

	_, err = svc.Recommend(ctx, RecRequest{UserID: 99, K: 3})
	require.NoError(t, err)
	assert.Equal(t, 2, catalog.topCalls) // el hook forzó el recálculo
}

func TestRecommendClampsK(t *testing.T) {
	catalog := &fakeCatalog{published: catalogDocs(), top: popularDocs()}
	inters := &fakeInteractions{}
	svc := newTestService(catalog, inters, &fakeHistory{})

	ctx := context.Background()
	_, err := svc.Recommend(ctx, RecRequest{UserID: 99, K: 5000})
	require.NoError(t, err)
	assert.Equal(t, MaxK, catalog.lastTopN)

	_, err = svc.Recommend(ctx, RecRequest{UserID: 98, K: 0})
	require.NoError(t, err)
	assert.Equal(t, DefaultK, catalog.lastTopN)
}

func TestRecommendTimeoutFallsBack(t *testing.T) {
	catalog := &fakeCatalog{
		published:      catalogDocs(),
		top:            popularDocs(),
		publishedDelay: 500 * time.Millisecond,
	}
	inters := &fakeInteractions{inters: interactionsFixture(time.Now())}
	history := &fakeHistory{}
	svc := newTestServiceTimeout(catalog, inters, history, 20*time.Millisecond)

	// el tier personalizado se pasa del tope: responde popularidad, no error
	items, err := svc.Recommend(context.Background(), RecRequest{UserID: 1, K: 3})
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, 30, items[0].ContentID)

	rec := history.last()
	require.NotNil(t, rec)
	assert.Equal(t, models.AlgoPopularity, rec.Algo)
}

func TestRecommendSurvivesCallerDisconnect(t *testing.T) {
	catalog := &fakeCatalog{published: catalogDocs(), top: popularDocs()}
	inters := &fakeInteractions{inters: interactionsFixture(time.Now())}
	svc := newTestService(catalog, inters, &fakeHistory{})

	// el contexto del caller ya está cancelado (se desconectó); el cómputo
	// coalescido no hereda esa cancelación
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	items, err := svc.Recommend(ctx, RecRequest{UserID: 1, K: 3})
	require.NoError(t, err)
	assert.NotEmpty(t, items)
}

func TestRecommendConcurrentSameUser(t *testing.T) {
	catalog := &fakeCatalog{published: catalogDocs(), top: popularDocs()}
	inters := &fakeInteractions{inters: interactionsFixture(time.Now())}
	svc := newTestService(catalog, inters, &fakeHistory{})

	var wg sync.WaitGroup
	results := make([][]models.RecItem, 8)
	errs := make([]error, 8)
	for i := 0; i < 8; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i], errs[i] = svc.Recommend(context.Background(), RecRequest{UserID: 1, K: 3})
		}()
	}
	wg.Wait()

	for i := 0; i < 8; i++ {
		require.NoError(t, errs[i])
		// los misses coalescidos comparten resultado
		assert.Equal(t, results[0], results[i])
	}
}

func TestRefreshUsers(t *testing.T) {
	catalog := &fakeCatalog{published: catalogDocs(), top: popularDocs()}
	inters := &fakeInteractions{
		inters:  interactionsFixture(time.Now()),
		userIDs: []int{1, 2},
	}
	svc := newTestService(catalog, inters, &fakeHistory{})

	processed, failed := svc.RefreshAll(context.Background(), 3)
	assert.Equal(t, 2, processed)
	assert.Zero(t, failed)
}

func TestRefreshUsersHonorsCancel(t *testing.T) {
	catalog := &fakeCatalog{published: catalogDocs(), top: popularDocs()}
	inters := &fakeInteractions{inters: interactionsFixture(time.Now())}
	svc := newTestService(catalog, inters, &fakeHistory{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	processed, failed := svc.RefreshUsers(ctx, []int{1, 2}, 3)
	assert.Zero(t, processed)
	assert.Zero(t, failed)
}
