package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	domrepo "Tickfunds/internal/domain/repository"
	"Tickfunds/pkg/cache"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type wizardState struct {
	Step string `json:"step"`
}

func TestSessionStoreSaveLoad(t *testing.T) {
	mc := cache.NewMemoryCache()
	defer mc.Close()
	s := NewCacheSessionStore(mc, time.Minute)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, "kyc", "abc", wizardState{Step: "pan"}))
	var got wizardState
	require.NoError(t, s.Load(ctx, "kyc", "abc", &got))
	assert.Equal(t, "pan", got.Step)

	err := s.Load(ctx, "pms", "abc", &got)
	assert.True(t, errors.Is(err, domrepo.ErrSessionNotFound))
}

func TestSessionStoreExpires(t *testing.T) {
	mc := cache.NewMemoryCache()
	defer mc.Close()
	s := NewCacheSessionStore(mc, 20*time.Millisecond)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, "kyc", "abc", wizardState{Step: "pan"}))
	time.Sleep(40 * time.Millisecond)
	var got wizardState
	assert.True(t, errors.Is(s.Load(ctx, "kyc", "abc", &got), domrepo.ErrSessionNotFound))
}

func TestSessionStoreLock(t *testing.T) {
	mc := cache.NewMemoryCache()
	defer mc.Close()
	s := NewCacheSessionStore(mc, time.Minute)
	ctx := context.Background()

	unlock, err := s.Lock(ctx, "kyc", "abc")
	require.NoError(t, err)

	_, err = s.Lock(ctx, "kyc", "abc")
	assert.True(t, errors.Is(err, domrepo.ErrSessionBusy))

	other, err := s.Lock(ctx, "kyc", "other")
	require.NoError(t, err)
	other()

	unlock()
	again, err := s.Lock(ctx, "kyc", "abc")
	require.NoError(t, err)
	again()
}

func TestSessionStoreLockHonoursContext(t *testing.T) {
	mc := cache.NewMemoryCache()
	defer mc.Close()
	s := NewCacheSessionStore(mc, time.Minute)

	unlock, err := s.Lock(context.Background(), "kyc", "abc")
	require.NoError(t, err)
	defer unlock()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = s.Lock(ctx, "kyc", "abc")
	assert.True(t, errors.Is(err, context.Canceled))
}
