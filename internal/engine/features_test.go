package engine

import (
	"testing"

	"contentrec/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func doc(id int, title, summary, author string) models.ContentDoc {
	return models.ContentDoc{ContentID: id, Title: title, Summary: summary, AuthorName: author}
}

func TestSimilarExcludesSelf(t *testing.T) {
	ix := BuildFeatureIndex([]models.ContentDoc{
		doc(1, "redes neuronales", "introduccion practica", "garcia"),
		doc(2, "redes neuronales", "introduccion practica", "garcia"),
		doc(3, "cocina italiana", "pastas y salsas", "rossi"),
	})

	got, err := ix.Similar(1, 10)
	require.NoError(t, err)
	assert.NotContains(t, got, 1)
}

func TestSimilarIdenticalDocsScoreOne(t *testing.T) {
	ix := BuildFeatureIndex([]models.ContentDoc{
		doc(1, "machine learning basics", "gradient descent explained", "smith"),
		doc(2, "machine learning basics", "gradient descent explained", "smith"),
		doc(3, "machine learning basics", "gradient descent explained", "smith"),
	})

	got, err := ix.Similar(1, 10)
	require.NoError(t, err)
	require.Len(t, got, 2)

	for _, other := range got {
		s, err := ix.Score(1, other)
		require.NoError(t, err)
		assert.InDelta(t, 1.0, s, 1e-9)
	}
}

func TestSimilarDescendingOrder(t *testing.T) {
	ix := BuildFeatureIndex([]models.ContentDoc{
		doc(1, "deep learning neural networks", "training deep neural networks", "lee"),
		doc(2, "deep learning neural networks", "tutorial about neural networks", "lee"),
		doc(3, "italian cooking recipes", "pasta pizza risotto", "rossi"),
		doc(4, "gardening tips", "flowers vegetables soil", "green"),
	})

	got, err := ix.Similar(1, 10)
	require.NoError(t, err)
	require.NotEmpty(t, got)

	// el doc que comparte vocabulario va primero
	assert.Equal(t, 2, got[0])

	for i := 1; i < len(got); i++ {
		prev, err := ix.Score(1, got[i-1])
		require.NoError(t, err)
		cur, err := ix.Score(1, got[i])
		require.NoError(t, err)
		assert.GreaterOrEqual(t, prev, cur)
	}
}

func TestSimilarTopNTruncates(t *testing.T) {
	ix := BuildFeatureIndex([]models.ContentDoc{
		doc(1, "uno dos", "tres", "a"),
		doc(2, "uno dos", "tres", "a"),
		doc(3, "uno dos", "tres", "a"),
		doc(4, "uno dos", "tres", "a"),
	})

	got, err := ix.Similar(1, 2)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestSimilarUnknownIDReturnsEmpty(t *testing.T) {
	ix := BuildFeatureIndex([]models.ContentDoc{
		doc(1, "algo", "cualquiera", "x"),
		doc(2, "otra", "cosa", "y"),
	})

	got, err := ix.Similar(999, 10)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSimilarTinyCorpus(t *testing.T) {
	single := BuildFeatureIndex([]models.ContentDoc{doc(1, "solo", "un documento", "x")})
	got, err := single.Similar(1, 10)
	require.NoError(t, err)
	assert.Empty(t, got)

	empty := BuildFeatureIndex(nil)
	got, err = empty.Similar(1, 10)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSimilarNotBuilt(t *testing.T) {
	var ix *FeatureIndex
	_, err := ix.Similar(1, 10)
	assert.ErrorIs(t, err, ErrNotBuilt)
}

func TestTokenizeDropsStopWordsAndShortTokens(t *testing.T) {
	got := tokenize("The quick brown fox, a 1 X!")
	assert.Equal(t, []string{"quick", "brown", "fox"}, got)
}
