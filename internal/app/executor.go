package app

import (
	"github.com/sourcegraph/conc/pool"

	"github.com/dkeye/portal/internal/core"
)

// SpawnExecutor runs every task on its own goroutine.
type SpawnExecutor struct{}

func (SpawnExecutor) Go(fn func()) { go fn() }

// PoolExecutor runs tasks on a bounded worker pool. Note that each open
// connection pins two workers for its lifetime and each pending timer pins
// one, so the pool must be sized for the expected number of live resources.
type PoolExecutor struct {
	p *pool.Pool
}

func NewPoolExecutor(size int) *PoolExecutor {
	p := pool.New()
	if size > 0 {
		p = p.WithMaxGoroutines(size)
	}
	return &PoolExecutor{p: p}
}

func (e *PoolExecutor) Go(fn func()) { e.p.Go(fn) }

// Wait blocks until all submitted tasks have finished.
func (e *PoolExecutor) Wait() { e.p.Wait() }

var (
	_ core.Executor = SpawnExecutor{}
	_ core.Executor = (*PoolExecutor)(nil)
)
