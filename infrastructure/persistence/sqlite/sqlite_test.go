package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"beadloom/domain/core/aggregates"
	pkgerrors "beadloom/pkg/errors"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func testSnapshot(id string) *aggregates.MatchSnapshot {
	return &aggregates.MatchSnapshot{
		ID:        id,
		Round:     1,
		Phase:     "Play",
		Beads:     map[string]aggregates.BeadSnapshot{},
		CreatedAt: 100,
		UpdatedAt: 200,
	}
}

func TestArchiveRoundTrip(t *testing.T) {
	repo := NewArchiveRepository(openTestStore(t), zap.NewNop())
	ctx := context.Background()

	require.NoError(t, repo.Archive(ctx, testSnapshot("a1")))

	loaded, err := repo.Load(ctx, "a1")
	require.NoError(t, err)
	assert.Equal(t, "a1", loaded.ID)
	assert.Equal(t, "Play", loaded.Phase)
	assert.Equal(t, int64(200), loaded.UpdatedAt)
}

func TestArchiveReplacesExisting(t *testing.T) {
	repo := NewArchiveRepository(openTestStore(t), zap.NewNop())
	ctx := context.Background()

	require.NoError(t, repo.Archive(ctx, testSnapshot("a2")))
	updated := testSnapshot("a2")
	updated.Round = 4
	require.NoError(t, repo.Archive(ctx, updated))

	loaded, err := repo.Load(ctx, "a2")
	require.NoError(t, err)
	assert.Equal(t, 4, loaded.Round)

	_, total, err := repo.ListIDs(ctx, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
}

func TestArchiveLoadUnknown(t *testing.T) {
	repo := NewArchiveRepository(openTestStore(t), zap.NewNop())
	_, err := repo.Load(context.Background(), "ghost")
	require.Error(t, err)
	assert.True(t, pkgerrors.IsNotFound(err))
}

func TestArchiveListPages(t *testing.T) {
	repo := NewArchiveRepository(openTestStore(t), zap.NewNop())
	ctx := context.Background()

	for _, id := range []string{"m1", "m2", "m3"} {
		require.NoError(t, repo.Archive(ctx, testSnapshot(id)))
	}

	ids, total, err := repo.ListIDs(ctx, 2, 0)
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	assert.Len(t, ids, 2)

	rest, _, err := repo.ListIDs(ctx, 2, 2)
	require.NoError(t, err)
	assert.Len(t, rest, 1)
}

func TestRatingsUpsert(t *testing.T) {
	repo := NewRatingRepository(openTestStore(t), zap.NewNop())
	ctx := context.Background()

	require.NoError(t, repo.RecordResult(ctx, "Ada", true))
	require.NoError(t, repo.RecordResult(ctx, "Ada", true))
	require.NoError(t, repo.RecordResult(ctx, "Ada", false))
	require.NoError(t, repo.RecordResult(ctx, "Blaise", false))

	standings, total, err := repo.Standings(ctx, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, total)

	require.Len(t, standings, 2)
	assert.Equal(t, "Ada", standings[0].Handle)
	assert.Equal(t, 2, standings[0].Wins)
	assert.Equal(t, 1, standings[0].Losses)
	assert.Equal(t, "Blaise", standings[1].Handle)
	assert.Equal(t, 1, standings[1].Losses)
}

func TestRatingsOrderBreaksTiesByHandle(t *testing.T) {
	repo := NewRatingRepository(openTestStore(t), zap.NewNop())
	ctx := context.Background()

	require.NoError(t, repo.RecordResult(ctx, "Zoe", true))
	require.NoError(t, repo.RecordResult(ctx, "Ada", true))

	standings, _, err := repo.Standings(ctx, 10, 0)
	require.NoError(t, err)
	require.Len(t, standings, 2)
	assert.Equal(t, "Ada", standings[0].Handle)
	assert.Equal(t, "Zoe", standings[1].Handle)
}

func TestRatingsRejectEmptyHandle(t *testing.T) {
	repo := NewRatingRepository(openTestStore(t), zap.NewNop())
	require.Error(t, repo.RecordResult(context.Background(), "", true))
}

func TestRatingsPageBeyondEnd(t *testing.T) {
	repo := NewRatingRepository(openTestStore(t), zap.NewNop())
	standings, total, err := repo.Standings(context.Background(), 10, 50)
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, standings)
}
