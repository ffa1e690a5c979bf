package session_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xtding233/forgewheel/internal/cycle"
	"github.com/xtding233/forgewheel/internal/reel"
	"github.com/xtding233/forgewheel/internal/session"
)

func TestManagerLifecycle(t *testing.T) {
	m, err := session.NewManager(cycle.DefaultConfig())
	require.NoError(t, err)

	id, machine, err := m.Create()
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	got, err := m.Get(id)
	require.NoError(t, err)
	assert.Same(t, machine, got)
	assert.Equal(t, []string{id}, m.List())

	require.NoError(t, m.Delete(id))
	_, err = m.Get(id)
	assert.ErrorIs(t, err, session.ErrNotFound)
	assert.ErrorIs(t, m.Delete(id), session.ErrNotFound)
	assert.Zero(t, m.Len())
}

func TestSessionsAreIndependent(t *testing.T) {
	var seed uint64
	var mu sync.Mutex
	m, err := session.NewManager(cycle.DefaultConfig(), session.WithRandomSources(func() reel.RandomSource {
		mu.Lock()
		defer mu.Unlock()
		seed++
		return reel.NewSeededRNG(seed)
	}))
	require.NoError(t, err)

	_, a, err := m.Create()
	require.NoError(t, err)
	_, b, err := m.Create()
	require.NoError(t, err)

	require.True(t, a.BuySpins())
	assert.Equal(t, int64(80), a.Coins())
	assert.Equal(t, int64(100), b.Coins())
	assert.Equal(t, cycle.PhaseBetweenRounds, b.Phase())
}

func TestConcurrentSessions(t *testing.T) {
	m, err := session.NewManager(cycle.DefaultConfig())
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, machine, err := m.Create()
			if !assert.NoError(t, err) {
				return
			}
			machine.BuySpins()
			for machine.CanSpin() {
				machine.Spin()
			}
			machine.PayTribute()
		}()
	}
	wg.Wait()
	assert.Equal(t, 16, m.Len())
	assert.Len(t, m.List(), 16)
}

func TestSetConfig(t *testing.T) {
	m, err := session.NewManager(cycle.DefaultConfig())
	require.NoError(t, err)
	_, before, err := m.Create()
	require.NoError(t, err)

	cfg := cycle.DefaultConfig()
	cfg.StartingCoins = 500
	require.NoError(t, m.SetConfig(cfg))
	_, after, err := m.Create()
	require.NoError(t, err)

	assert.Equal(t, int64(100), before.Coins())
	assert.Equal(t, int64(500), after.Coins())

	cfg.BatchCost = 0
	assert.ErrorIs(t, m.SetConfig(cfg), cycle.ErrInvalidConfig)
	_, err = session.NewManager(cfg)
	assert.ErrorIs(t, err, cycle.ErrInvalidConfig)
}
