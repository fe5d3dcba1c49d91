package corepool

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/incentive-core/coin"
	"github.com/vechain/incentive-core/internal/metrics"
)

func TestNewManager_DefaultsClockAndMetrics(t *testing.T) {
	mgr := NewManager(nil, nil, nil)
	assert.NotNil(t, mgr.clock)
	assert.NotNil(t, mgr.metrics)
}

func TestCreatePool_RegistersPoolForLookup(t *testing.T) {
	mgr := NewManager(clockwork.NewFakeClock(), metrics.Default(), nil)
	id, _, ev, err := mgr.CreatePool("SUI", testCountdown)
	require.NoError(t, err)
	assert.Equal(t, id.String(), ev.PoolID)

	pool, err := mgr.Pool(id)
	require.NoError(t, err)
	assert.Equal(t, id, pool.ID())
}

func TestPool_UnknownIDRejected(t *testing.T) {
	mgr := NewManager(clockwork.NewFakeClock(), metrics.Default(), nil)
	_, err := mgr.Pool(newPoolID())
	assert.ErrorIs(t, err, ErrPoolNotFound)
}

func TestBroadcast_RunsAgainstEveryRegisteredPool(t *testing.T) {
	mgr := NewManager(clockwork.NewFakeClock(), metrics.Default(), nil)
	_, _, _, err := mgr.CreatePool("SUI", testCountdown)
	require.NoError(t, err)
	_, _, _, err = mgr.CreatePool("ETH", testCountdown)
	require.NoError(t, err)

	var visited atomic.Int64
	err = mgr.Broadcast(context.Background(), func(p *Pool) error {
		visited.Add(1)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), visited.Load())
}

func TestBroadcast_PropagatesFirstError(t *testing.T) {
	mgr := NewManager(clockwork.NewFakeClock(), metrics.Default(), nil)
	_, _, _, err := mgr.CreatePool("SUI", testCountdown)
	require.NoError(t, err)

	sentinel := ErrZeroCoin
	err = mgr.Broadcast(context.Background(), func(p *Pool) error {
		return sentinel
	})
	assert.ErrorIs(t, err, sentinel)
}

func TestStartMetricsExporter_StopWaitsForExporterToReturn(t *testing.T) {
	mgr := NewManager(clockwork.NewFakeClock(), metrics.Default(), nil)
	id, _, _, err := mgr.CreatePool("SUI", testCountdown)
	require.NoError(t, err)
	pool, err := mgr.Pool(id)
	require.NoError(t, err)
	_, err = pool.Stake(coin.New("SUI", 10), "alice")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	tick := make(chan struct{}, 1)
	stop := mgr.StartMetricsExporter(ctx, tick)

	tick <- struct{}{}
	time.Sleep(10 * time.Millisecond)

	cancel()
	stop()
}
