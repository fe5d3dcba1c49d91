package corepool

import (
	"context"
	"log/slog"
	"sync"

	"github.com/jonboulle/clockwork"
	pkgerrors "github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/vechain/incentive-core/event"
	"github.com/vechain/incentive-core/internal/metrics"
)

// Manager is the process-level registry of pools and the concurrency
// boundary between them: every pool is internally single-threaded (its
// own mutex), but distinct pools proceed fully in parallel.
type Manager struct {
	mu      sync.RWMutex
	pools   map[PoolID]*Pool
	clock   clockwork.Clock
	metrics metrics.Metrics
	log     *slog.Logger
}

// NewManager constructs an empty pool manager. clock is the injected
// monotonic millisecond source every pool created by this manager will
// share; m is the metrics sink (pass a no-op implementation when metrics
// aren't wanted).
func NewManager(clock clockwork.Clock, m metrics.Metrics, logger *slog.Logger) *Manager {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if m == nil {
		m = metrics.Default()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		pools:   make(map[PoolID]*Pool),
		clock:   clock,
		metrics: m,
		log:     logger,
	}
}

// CreatePool mints a new pool and its first admin capability token.
func (m *Manager) CreatePool(stakeTokenType string, unlockCountdownMs uint64) (PoolID, AdminCap, event.NewPool, error) {
	pool, id, cap, err := newPool(stakeTokenType, unlockCountdownMs, m.clock, m.metrics, m.log)
	if err != nil {
		return PoolID{}, AdminCap{}, event.NewPool{}, err
	}

	m.mu.Lock()
	m.pools[id] = pool
	m.mu.Unlock()

	m.log.Info("pool created", "pool", id.String(), "stake_token_type", stakeTokenType, "unlock_countdown_ms", unlockCountdownMs)
	m.metrics.GetOrCreateCountMeter("pool_created_total").Add(1)

	return id, cap, event.NewPool{PoolID: id.String(), StakeTokenType: stakeTokenType, UnlockMs: unlockCountdownMs}, nil
}

// Pool looks up a pool by id.
func (m *Manager) Pool(id PoolID) (*Pool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.pools[id]
	if !ok {
		return nil, pkgerrors.Wrapf(ErrPoolNotFound, "pool %s", id)
	}
	return p, nil
}

// Broadcast runs fn against every registered pool concurrently via
// errgroup, used for read-only aggregate queries (e.g. "sum of
// outstanding program balances across every pool"). It must never be
// used for mutating calls: those always go through a single pool's own
// serialized entry points (Stake, Unsubscribe, Unstake, Harvest, and the
// admin methods), not through Broadcast.
func (m *Manager) Broadcast(ctx context.Context, fn func(*Pool) error) error {
	m.mu.RLock()
	pools := make([]*Pool, 0, len(m.pools))
	for _, p := range m.pools {
		pools = append(pools, p)
	}
	m.mu.RUnlock()

	g, _ := errgroup.WithContext(ctx)
	for _, p := range pools {
		p := p
		g.Go(func() error {
			return fn(p)
		})
	}
	return g.Wait()
}

// StartMetricsExporter launches a background goroutine, tracked by its
// own errgroup.Group (the same mechanism Broadcast uses), that snapshots every pool's gauges
// -- total active shares, and each program's price index and balance --
// into m.metrics on every tick, until ctx is cancelled. The caller must
// cancel ctx first; stop then blocks until the exporter goroutine has
// actually returned, so callers can rely on no further writes to
// m.metrics happening once stop returns.
func (m *Manager) StartMetricsExporter(ctx context.Context, tick <-chan struct{}) (stop func()) {
	var g errgroup.Group
	g.Go(func() error {
		for {
			select {
			case <-ctx.Done():
				return nil
			case <-tick:
				_ = m.Broadcast(ctx, func(p *Pool) error {
					p.exportGauges(m.metrics)
					return nil
				})
			}
		}
	})
	return func() {
		_ = g.Wait()
	}
}
