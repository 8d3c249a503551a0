package service

import (
	"context"
	"testing"

	"contentrec/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRatingStore struct {
	docs map[[2]int]models.RatingDoc
}

func newFakeRatingStore() *fakeRatingStore {
	return &fakeRatingStore{docs: make(map[[2]int]models.RatingDoc)}
}

func (f *fakeRatingStore) GetOne(_ context.Context, userID, contentID int) (*models.RatingDoc, error) {
	if d, ok := f.docs[[2]int{userID, contentID}]; ok {
		return &d, nil
	}
	return nil, nil
}

func (f *fakeRatingStore) Upsert(_ context.Context, userID, contentID int, rating float64, text string) error {
	f.docs[[2]int{userID, contentID}] = models.RatingDoc{
		UserID: userID, ContentID: contentID, Rating: rating, Text: text,
	}
	return nil
}

func (f *fakeRatingStore) GetByUser(_ context.Context, userID, _, _ int) ([]models.RatingDoc, error) {
	var out []models.RatingDoc
	for _, d := range f.docs {
		if d.UserID == userID {
			out = append(out, d)
		}
	}
	return out, nil
}

type statsDelta struct {
	sum   float64
	count int
}

type fakeStatsWriter struct {
	content *models.ContentDoc
	deltas  []statsDelta
}

func (f *fakeStatsWriter) GetByID(context.Context, int) (*models.ContentDoc, error) {
	return f.content, nil
}

func (f *fakeStatsWriter) ApplyRatingDelta(_ context.Context, _ int, sumDelta float64, countDelta int, _ string) error {
	f.deltas = append(f.deltas, statsDelta{sum: sumDelta, count: countDelta})
	return nil
}

type fakeHooks struct {
	ratingChanged []int
}

func (f *fakeHooks) OnFavoriteChanged(context.Context, int) {}
func (f *fakeHooks) OnVoteChanged(context.Context, int)     {}
func (f *fakeHooks) OnRatingChanged(_ context.Context, userID int) {
	f.ratingChanged = append(f.ratingChanged, userID)
}

func TestAddOrUpdateRatingDeltas(t *testing.T) {
	store := newFakeRatingStore()
	stats := &fakeStatsWriter{content: &models.ContentDoc{ContentID: 10, IsPublished: true}}
	hooks := &fakeHooks{}
	svc := NewRatingService(store, stats, hooks)

	ctx := context.Background()

	// rating nuevo: entra el valor entero y un conteo
	require.NoError(t, svc.AddOrUpdate(ctx, 1, 10, 5, "excelente"))
	require.Len(t, stats.deltas, 1)
	assert.Equal(t, statsDelta{sum: 5, count: 1}, stats.deltas[0])

	// edición: solo la diferencia, el conteo no se mueve
	require.NoError(t, svc.AddOrUpdate(ctx, 1, 10, 3, "lo pensé mejor"))
	require.Len(t, stats.deltas, 2)
	assert.Equal(t, statsDelta{sum: -2, count: 0}, stats.deltas[1])

	// cada mutación purga el caché del usuario
	assert.Equal(t, []int{1, 1}, hooks.ratingChanged)
}

func TestAddOrUpdateRatingValidation(t *testing.T) {
	store := newFakeRatingStore()
	stats := &fakeStatsWriter{content: &models.ContentDoc{ContentID: 10}}
	svc := NewRatingService(store, stats, &fakeHooks{})

	assert.Error(t, svc.AddOrUpdate(context.Background(), 1, 10, 0, ""))
	assert.Error(t, svc.AddOrUpdate(context.Background(), 1, 10, 6, ""))
	assert.Empty(t, stats.deltas)
}

func TestAddOrUpdateRatingUnknownContent(t *testing.T) {
	store := newFakeRatingStore()
	stats := &fakeStatsWriter{content: nil}
	svc := NewRatingService(store, stats, &fakeHooks{})

	err := svc.AddOrUpdate(context.Background(), 1, 999, 4, "")
	assert.Error(t, err)
	assert.Empty(t, stats.deltas)
}
