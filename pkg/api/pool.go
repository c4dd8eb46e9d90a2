package api

import (
	"context"
	"sync/atomic"
)

// WorkerPool bounds concurrent request processing. Decision requests (bid,
// play, contract, score, review) are fast; self-play runs are slow and get
// a much smaller pool so they cannot starve decisions.
type WorkerPool struct {
	fastSem chan struct{}
	slowSem chan struct{}

	queuedFast atomic.Int64
	queuedSlow atomic.Int64
	activeFast atomic.Int64
	activeSlow atomic.Int64
	totalFast  atomic.Int64
	totalSlow  atomic.Int64
}

// PoolConfig sizes the worker pool.
type PoolConfig struct {
	MaxFastWorkers int // concurrent decision requests (default 100)
	MaxSlowWorkers int // concurrent self-play runs (default 2)
}

// DefaultPoolConfig returns the default sizes.
func DefaultPoolConfig() PoolConfig {
	return PoolConfig{MaxFastWorkers: 100, MaxSlowWorkers: 2}
}

// NewWorkerPool creates a pool with the given limits.
func NewWorkerPool(config PoolConfig) *WorkerPool {
	if config.MaxFastWorkers <= 0 {
		config.MaxFastWorkers = 100
	}
	if config.MaxSlowWorkers <= 0 {
		config.MaxSlowWorkers = 2
	}
	return &WorkerPool{
		fastSem: make(chan struct{}, config.MaxFastWorkers),
		slowSem: make(chan struct{}, config.MaxSlowWorkers),
	}
}

// AcquireFast takes a decision slot, waiting until one frees or the
// context ends.
func (p *WorkerPool) AcquireFast(ctx context.Context) error {
	p.queuedFast.Add(1)
	defer p.queuedFast.Add(-1)

	select {
	case p.fastSem <- struct{}{}:
		p.activeFast.Add(1)
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// ReleaseFast returns a decision slot.
func (p *WorkerPool) ReleaseFast() {
	p.activeFast.Add(-1)
	p.totalFast.Add(1)
	<-p.fastSem
}

// AcquireSlow takes a self-play slot.
func (p *WorkerPool) AcquireSlow(ctx context.Context) error {
	p.queuedSlow.Add(1)
	defer p.queuedSlow.Add(-1)

	select {
	case p.slowSem <- struct{}{}:
		p.activeSlow.Add(1)
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// ReleaseSlow returns a self-play slot.
func (p *WorkerPool) ReleaseSlow() {
	p.activeSlow.Add(-1)
	p.totalSlow.Add(1)
	<-p.slowSem
}

// TryAcquireSlow takes a self-play slot without waiting.
func (p *WorkerPool) TryAcquireSlow() bool {
	select {
	case p.slowSem <- struct{}{}:
		p.activeSlow.Add(1)
		return true
	default:
		return false
	}
}

// PoolStats is a snapshot of pool load.
type PoolStats struct {
	ActiveFast int64 `json:"active_fast"`
	ActiveSlow int64 `json:"active_slow"`
	QueuedFast int64 `json:"queued_fast"`
	QueuedSlow int64 `json:"queued_slow"`
	TotalFast  int64 `json:"total_fast"`
	TotalSlow  int64 `json:"total_slow"`
	MaxFast    int   `json:"max_fast"`
	MaxSlow    int   `json:"max_slow"`
}

// Stats snapshots the pool counters.
func (p *WorkerPool) Stats() PoolStats {
	return PoolStats{
		ActiveFast: p.activeFast.Load(),
		ActiveSlow: p.activeSlow.Load(),
		QueuedFast: p.queuedFast.Load(),
		QueuedSlow: p.queuedSlow.Load(),
		TotalFast:  p.totalFast.Load(),
		TotalSlow:  p.totalSlow.Load(),
		MaxFast:    cap(p.fastSem),
		MaxSlow:    cap(p.slowSem),
	}
}
