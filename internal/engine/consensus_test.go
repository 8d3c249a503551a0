package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConsensusNormalizedShares(t *testing.T) {
	got := Consensus([]CategoryVote{
		{Category: "Books", Vote: 1},
		{Category: "Books", Vote: 1},
		{Category: "Books", Vote: -1},
		{Category: "Toys", Vote: 1},
	})

	// Books suma 1, Toys suma 1: mitad y mitad
	assert.InDelta(t, 0.5, got["Books"], 1e-9)
	assert.InDelta(t, 0.5, got["Toys"], 1e-9)
}

func TestConsensusDropsNonPositive(t *testing.T) {
	got := Consensus([]CategoryVote{
		{Category: "Books", Vote: 1},
		{Category: "Toys", Vote: -1},
		{Category: "Games", Vote: 1},
		{Category: "Games", Vote: -1},
	})

	assert.NotContains(t, got, "Toys")  // suma negativa
	assert.NotContains(t, got, "Games") // suma cero
	assert.InDelta(t, 1.0, got["Books"], 1e-9)
}

func TestConsensusEmptyWhenNoPositive(t *testing.T) {
	assert.Empty(t, Consensus(nil))
	assert.Empty(t, Consensus([]CategoryVote{
		{Category: "Books", Vote: -1},
		{Category: "Toys", Vote: 0},
	}))
}

func TestConsensusSharesSumToOne(t *testing.T) {
	got := Consensus([]CategoryVote{
		{Category: "A", Vote: 1},
		{Category: "A", Vote: 1},
		{Category: "B", Vote: 1},
		{Category: "C", Vote: 1},
		{Category: "C", Vote: 1},
		{Category: "C", Vote: 1},
	})

	var sum float64
	for _, share := range got {
		sum += share
	}
	// por el redondeo a 4 decimales puede no dar 1 exacto
	assert.InDelta(t, 1.0, sum, 1e-3)

	assert.InDelta(t, 0.3333, got["A"], 1e-9)
	assert.InDelta(t, 0.1667, got["B"], 1e-9)
	assert.InDelta(t, 0.5, got["C"], 1e-9)
}
