package exercise

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/writerpro-api/internal/scoring"
)

func TestDefaultCatalogueIndexesEachLevelFromZero(t *testing.T) {
	catalogue := DefaultCatalogue()
	require.NotEmpty(t, catalogue)

	next := map[scoring.Level]int{}
	for _, ex := range catalogue {
		require.True(t, ex.Level.Valid(), ex.Level)
		require.Equal(t, next[ex.Level], ex.Index, "%s index gap at %q", ex.Level, ex.Title)
		next[ex.Level]++

		require.NotEmpty(t, ex.Prompt)
		require.Less(t, ex.MinWords, ex.MaxWords)
		require.Positive(t, ex.TimeLimitMinutes)
	}

	for _, level := range scoring.Levels() {
		require.Positive(t, next[level], "no exercises for %s", level)
	}
}

func TestDefaultCatalogueIsStable(t *testing.T) {
	require.Equal(t, DefaultCatalogue(), DefaultCatalogue())
}
