package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRNG_Deterministic(t *testing.T) {
	a := NewRNG(1)
	b := NewRNG(1)

	require.Equal(t, a.Document(), b.Document())
	require.Equal(t, a.String(10), b.String(10))
	require.Equal(t, int64(1), a.Seed())
}

func TestRNG_DocumentsHaveDistinctIDs(t *testing.T) {
	rng := NewRNG(7)
	docs := rng.Documents(100)

	seen := make(map[string]struct{}, len(docs))
	for _, doc := range docs {
		id, ok := doc.ID()
		require.True(t, ok)
		seen[id] = struct{}{}
	}
	require.Len(t, seen, 100)
}

func TestRNG_StringLength(t *testing.T) {
	rng := NewRNG(3)
	for i := 0; i < 30; i++ {
		require.Len(t, []rune(rng.String(i)), i)
	}
}
