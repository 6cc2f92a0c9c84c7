package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobclean/internal/domain"
)

func TestMemoryTracksWrites(t *testing.T) {
	m := NewMemory(
		domain.Listing{ID: 2, Title: "B"},
		domain.Listing{ID: 1, Title: "A"},
		domain.Listing{ID: 3, Title: "C", Status: domain.StatusClosed},
	)
	m.Now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }
	ctx := context.Background()

	active, err := m.Active(ctx)
	require.NoError(t, err)
	require.Len(t, active, 2)
	assert.Equal(t, int64(1), active[0].ID)

	title := "AA"
	require.NoError(t, m.Update(ctx, 1, domain.Change{Title: &title}))
	require.NoError(t, m.Update(ctx, 1, domain.Change{}))
	require.Error(t, m.Update(ctx, 99, domain.Change{Title: &title}))

	got, ok := m.Get(1)
	require.True(t, ok)
	assert.Equal(t, "AA", got.Title)
	assert.Equal(t, "2026-01-02 03:04:05", got.UpdatedAt)
	assert.Equal(t, 1, m.TotalWrites())

	n, err := m.CountActive(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}
