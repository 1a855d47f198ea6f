package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/zein-dev/kelasku-api/pkg/errors"
)

type cacheRepoMock struct {
	store       map[string][]byte
	invalidated []string
}

func newCacheRepoMock() *cacheRepoMock {
	return &cacheRepoMock{store: map[string][]byte{}}
}

func (m *cacheRepoMock) Get(_ context.Context, key string, dest interface{}) error {
	raw, ok := m.store[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	return json.Unmarshal(raw, dest)
}

func (m *cacheRepoMock) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.store[key] = raw
	return nil
}

func (m *cacheRepoMock) DeleteByPattern(_ context.Context, pattern string) error {
	m.invalidated = append(m.invalidated, pattern)
	m.store = map[string][]byte{}
	return nil
}

func TestCacheServiceRoundTrip(t *testing.T) {
	repo := newCacheRepoMock()
	svc := NewCacheService(repo, nil, time.Minute, nil, true)

	require.NoError(t, svc.Set(context.Background(), "schedules:class=A", []string{"a", "b"}, 0))

	var out []string
	hit, err := svc.Get(context.Background(), "schedules:class=A", &out)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, []string{"a", "b"}, out)
}

func TestCacheServiceMissIsNotAnError(t *testing.T) {
	svc := NewCacheService(newCacheRepoMock(), nil, time.Minute, nil, true)

	var out []string
	hit, err := svc.Get(context.Background(), "schedules:class=B", &out)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestCacheServiceInvalidate(t *testing.T) {
	repo := newCacheRepoMock()
	svc := NewCacheService(repo, nil, time.Minute, nil, true)

	require.NoError(t, svc.Set(context.Background(), "schedules:class=A", []string{"a"}, 0))
	require.NoError(t, svc.Invalidate(context.Background(), "schedules:*"))

	var out []string
	hit, _ := svc.Get(context.Background(), "schedules:class=A", &out)
	assert.False(t, hit)
	assert.Equal(t, []string{"schedules:*"}, repo.invalidated)
}

func TestCacheServiceDisabled(t *testing.T) {
	repo := newCacheRepoMock()
	svc := NewCacheService(repo, nil, time.Minute, nil, false)

	require.NoError(t, svc.Set(context.Background(), "key", "value", 0))
	assert.Empty(t, repo.store)

	var out string
	hit, err := svc.Get(context.Background(), "key", &out)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestCacheServiceNilReceiverIsSafe(t *testing.T) {
	var svc *CacheService

	assert.False(t, svc.Enabled())
	hit, err := svc.Get(context.Background(), "key", nil)
	require.NoError(t, err)
	assert.False(t, hit)
	require.NoError(t, svc.Set(context.Background(), "key", "value", 0))
	require.NoError(t, svc.Invalidate(context.Background(), "*"))
}
