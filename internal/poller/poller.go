// Package poller keeps a session's conversation list fresh: an initial
// snapshot primes it, a mutation-triggered refresh and a periodic background
// poll both replace it wholesale. Each issued refresh carries a monotonically
// increasing sequence number and a result is applied only while its sequence
// is still the latest, so a slow stale response can never overwrite a newer
// one even though refreshes run on real goroutines.
package poller

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/d60-Lab/tripmarket/pkg/logger"
)

var ErrStopped = errors.New("poller stopped")

// Fetch retrieves the current list from the refresh endpoint.
type Fetch[T any] func(ctx context.Context) ([]T, error)

// Options control the background poll cadence and per-request bound.
type Options struct {
	Interval       time.Duration // tick period, default 60s
	RequestTimeout time.Duration // bound on one refresh, default 15s
}

// Poller owns the authoritative list for one session. One instance per
// controller; nothing else writes the list.
type Poller[T any] struct {
	fetch    Fetch[T]
	interval time.Duration
	timeout  time.Duration

	mu       sync.Mutex
	list     []T
	seq      uint64 // last issued refresh sequence
	polling  bool   // background poll outstanding
	mutating bool   // mutation-triggered refresh in flight
	stopped  bool

	stopCh   chan struct{}
	stopOnce sync.Once
}

func New[T any](fetch Fetch[T], opts Options) *Poller[T] {
	if opts.Interval <= 0 {
		opts.Interval = 60 * time.Second
	}
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = 15 * time.Second
	}
	return &Poller[T]{
		fetch:    fetch,
		interval: opts.Interval,
		timeout:  opts.RequestTimeout,
		stopCh:   make(chan struct{}),
	}
}

// Prime unconditionally overwrites the list with a fresh page-load snapshot.
// It also advances the sequence so any in-flight refresh result is discarded
// as stale when it lands.
func (p *Poller[T]) Prime(list []T) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.stopped {
		return
	}
	p.seq++
	p.list = append([]T(nil), list...)
}

// Start launches the background ticker. Call Stop to tear down.
func (p *Poller[T]) Start() {
	go p.loop()
}

func (p *Poller[T]) loop() {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()
	for {
		select {
		case <-p.stopCh:
			return
		case <-ticker.C:
			p.Tick()
		}
	}
}

// Tick runs one guarded poll cycle. The tick is a no-op unless both guards
// hold: no poll already outstanding and no mutation refresh in flight. Poll
// failures are silent; prior state stays intact.
func (p *Poller[T]) Tick() {
	p.mu.Lock()
	if p.stopped || p.polling || p.mutating {
		p.mu.Unlock()
		return
	}
	p.polling = true
	p.seq++
	mySeq := p.seq
	p.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
	list, err := p.fetch(ctx)
	cancel()

	p.mu.Lock()
	p.polling = false
	if err != nil {
		p.mu.Unlock()
		logger.Debug("background poll failed", zap.Error(err))
		return
	}
	p.applyLocked(mySeq, list)
	p.mu.Unlock()
}

// RefreshNow issues a mutation-triggered refresh (e.g. after sending a
// message). Unlike the background poll its error is returned to the caller.
func (p *Poller[T]) RefreshNow(ctx context.Context) error {
	p.mu.Lock()
	if p.stopped {
		p.mu.Unlock()
		return ErrStopped
	}
	p.mutating = true
	p.seq++
	mySeq := p.seq
	p.mu.Unlock()

	rctx, cancel := context.WithTimeout(ctx, p.timeout)
	list, err := p.fetch(rctx)
	cancel()

	p.mu.Lock()
	p.mutating = false
	if err != nil {
		p.mu.Unlock()
		return err
	}
	p.applyLocked(mySeq, list)
	p.mu.Unlock()
	return nil
}

// applyLocked replaces the list wholesale when seq is still the latest
// issued. Caller holds p.mu.
func (p *Poller[T]) applyLocked(seq uint64, list []T) {
	if p.stopped || seq != p.seq {
		return
	}
	p.list = list
}

// Snapshot returns a copy of the authoritative list for readers.
func (p *Poller[T]) Snapshot() []T {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]T(nil), p.list...)
}

// Stop clears the timer and flips the liveness flag; an outstanding request
// is allowed to complete but its result is discarded by the apply check.
func (p *Poller[T]) Stop() {
	p.mu.Lock()
	p.stopped = true
	p.mu.Unlock()
	p.stopOnce.Do(func() { close(p.stopCh) })
}
