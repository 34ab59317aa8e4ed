package bus

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testQuery struct {
	Key     string
	invalid bool
}

func (q testQuery) Validate() error {
	if q.invalid {
		return errors.New("bad query")
	}
	return nil
}

type mapCache struct {
	entries map[string]interface{}
}

func newMapCache() *mapCache { return &mapCache{entries: make(map[string]interface{})} }

func (c *mapCache) Get(_ context.Context, key string) (interface{}, bool) {
	v, ok := c.entries[key]
	return v, ok
}

func (c *mapCache) Set(_ context.Context, key string, value interface{}, _ int) error {
	c.entries[key] = value
	return nil
}

func TestAskReturnsHandlerResult(t *testing.T) {
	b := NewQueryBus()
	require.NoError(t, b.Register(testQuery{}, QueryHandlerFunc(
		func(ctx context.Context, q Query) (interface{}, error) {
			return "result:" + q.(testQuery).Key, nil
		})))

	result, err := b.Ask(context.Background(), testQuery{Key: "k"})
	require.NoError(t, err)
	assert.Equal(t, "result:k", result)
}

func TestAskRejectsInvalidQuery(t *testing.T) {
	b := NewQueryBus()
	require.NoError(t, b.Register(testQuery{}, QueryHandlerFunc(
		func(ctx context.Context, q Query) (interface{}, error) { return nil, nil })))

	_, err := b.Ask(context.Background(), testQuery{invalid: true})
	assert.Error(t, err)
}

func TestAskUnregisteredQuery(t *testing.T) {
	b := NewQueryBus()
	_, err := b.Ask(context.Background(), testQuery{})
	assert.Error(t, err)
}

func TestCachingMiddlewareServesSecondAskFromCache(t *testing.T) {
	calls := 0
	handler := QueryHandlerFunc(func(ctx context.Context, q Query) (interface{}, error) {
		calls++
		return calls, nil
	})

	wrapped := NewCachingMiddleware(newMapCache(), 30).Wrap(handler)

	first, err := wrapped.Handle(context.Background(), testQuery{Key: "a"})
	require.NoError(t, err)
	second, err := wrapped.Handle(context.Background(), testQuery{Key: "a"})
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, calls)
}

func TestCachingMiddlewareKeysOnQueryValue(t *testing.T) {
	calls := 0
	wrapped := NewCachingMiddleware(newMapCache(), 30).Wrap(QueryHandlerFunc(
		func(ctx context.Context, q Query) (interface{}, error) {
			calls++
			return q.(testQuery).Key, nil
		}))

	_, err := wrapped.Handle(context.Background(), testQuery{Key: "a"})
	require.NoError(t, err)
	_, err = wrapped.Handle(context.Background(), testQuery{Key: "b"})
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestCachingMiddlewareSkipsErrors(t *testing.T) {
	cache := newMapCache()
	wrapped := NewCachingMiddleware(cache, 30).Wrap(QueryHandlerFunc(
		func(ctx context.Context, q Query) (interface{}, error) {
			return nil, errors.New("boom")
		}))

	_, err := wrapped.Handle(context.Background(), testQuery{})
	require.Error(t, err)
	assert.Empty(t, cache.entries)
}
