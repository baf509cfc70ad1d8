package note

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_SearchFoldsCase(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	owner := uuid.New()
	m := NewMemoryStore()
	for _, n := range []Note{
		{OwnerID: owner, Title: "ſtop words"},
		{OwnerID: owner, Title: "κόσμος"},
		{OwnerID: owner, Title: "Straße"},
	} {
		n := n
		require.NoError(t, m.Insert(ctx, &n))
	}

	tests := []struct {
		search string
		want   int64
	}{
		{"STOP", 1},
		{"ΚΌΣΜΟΣ", 1},
		{"STRASSE", 0},
		{"straSSE", 0},
		{"STRAẞE", 1},
		{"ße", 1},
	}

	for _, tt := range tests {
		t.Run(tt.search, func(t *testing.T) {
			_, total, err := m.Search(ctx, Filter{OwnerID: owner, Search: tt.search, Limit: 10})
			require.NoError(t, err)
			assert.Equal(t, tt.want, total)
		})
	}
}

func TestFoldRune(t *testing.T) {
	t.Parallel()

	assert.Equal(t, foldRune('Σ'), foldRune('ς'))
	assert.Equal(t, foldRune('σ'), foldRune('ς'))
	assert.Equal(t, foldRune('k'), foldRune('K'))
	assert.Equal(t, '7', foldRune('7'))
}
