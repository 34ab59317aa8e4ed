package memory

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"beadloom/domain/core/aggregates"
	"beadloom/domain/core/entities"
	pkgerrors "beadloom/pkg/errors"
	"beadloom/pkg/observability"
)

func newStore(t *testing.T) *MatchRepository {
	t.Helper()
	return NewMatchRepository(observability.NewMetrics(), zap.NewNop()).(*MatchRepository)
}

func newMatch(t *testing.T, id string) *aggregates.Match {
	t.Helper()
	m, err := aggregates.NewMatch(id, entities.SampleSeeds(), 100)
	require.NoError(t, err)
	return m
}

func TestSaveAndGetReturnsCopy(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()
	m := newMatch(t, "s1")
	require.NoError(t, store.Save(ctx, m))

	got, err := store.GetByID(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "s1", got.ID())

	// mutating the returned copy leaves the store untouched
	p, err := entities.NewPlayer("p1", "Ada")
	require.NoError(t, err)
	require.NoError(t, got.Join(p, 200))

	again, err := store.GetByID(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, again.Players())
}

func TestGetUnknownMatch(t *testing.T) {
	store := newStore(t)
	_, err := store.GetByID(context.Background(), "ghost")
	require.Error(t, err)
	assert.True(t, pkgerrors.IsNotFound(err))
}

func TestDeleteRemovesMatch(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, newMatch(t, "s2")))
	require.NoError(t, store.Delete(ctx, "s2"))

	_, err := store.GetByID(ctx, "s2")
	require.Error(t, err)
	require.Error(t, store.Delete(ctx, "s2"))
}

func TestListIDsKeepsCreationOrder(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()
	for _, id := range []string{"c", "a", "b"} {
		require.NoError(t, store.Save(ctx, newMatch(t, id)))
	}
	// re-save must not duplicate
	require.NoError(t, store.Save(ctx, newMatch(t, "a")))

	ids, err := store.ListIDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "a", "b"}, ids)
}

func TestSaveNilMatch(t *testing.T) {
	store := newStore(t)
	require.Error(t, store.Save(context.Background(), nil))
}

func TestLockerSerializesPerMatch(t *testing.T) {
	locker := NewMatchLocker()

	var mu sync.Mutex
	order := make([]int, 0, 4)
	record := func(v int) {
		mu.Lock()
		order = append(order, v)
		mu.Unlock()
	}

	release := locker.Acquire("m1")
	record(1)

	done := make(chan struct{})
	go func() {
		r := locker.Acquire("m1")
		record(3)
		r()
		close(done)
	}()

	// a different match is never blocked
	other := locker.Acquire("m2")
	record(2)
	other()

	release()
	<-done

	assert.Equal(t, []int{1, 2, 3}, order)
}
