// Package scheduler drives the periodic refresh cycles. Each data kind
// runs its own repeating job; cycles for different kinds may overlap but
// two cycles of the same kind never do.
package scheduler

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Rishi5377/NagaraTrackLite/fleet"
)

// FetchFunc performs one fetch cycle. seq is the cycle's sequence number;
// implementations pass it to the snapshot store so that late completions
// are discarded. The context is cancelled when the job is stopped, and a
// cancelled cycle must not apply its result.
type FetchFunc func(ctx context.Context, seq uint64) error

type job struct {
	kind     fleet.Kind
	interval time.Duration
	fn       FetchFunc
	ctx      context.Context
	cancel   context.CancelFunc
	inFlight atomic.Bool
	seq      *atomic.Uint64
	kick     chan struct{}
}

// Scheduler owns one repeating job per data kind.
type Scheduler struct {
	logger *slog.Logger

	mu   sync.Mutex
	jobs map[fleet.Kind]*job
	seqs map[fleet.Kind]*atomic.Uint64
	wg   sync.WaitGroup
}

func New(logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{
		logger: logger,
		jobs:   map[fleet.Kind]*job{},
		seqs:   map[fleet.Kind]*atomic.Uint64{},
	}
}

// Start begins a repeating job for kind. The first cycle fires
// immediately, subsequent cycles at interval. Starting a kind that is
// already running restarts it with the new interval and fetch function.
// Sequence numbers survive the restart so a restarted kind cannot be
// overwritten by a cycle from its previous incarnation.
func (s *Scheduler) Start(kind fleet.Kind, interval time.Duration, fn FetchFunc) {
	s.mu.Lock()
	if old, ok := s.jobs[kind]; ok {
		old.cancel()
		delete(s.jobs, kind)
	}
	seq, ok := s.seqs[kind]
	if !ok {
		seq = &atomic.Uint64{}
		s.seqs[kind] = seq
	}
	ctx, cancel := context.WithCancel(context.Background())
	j := &job{
		kind:     kind,
		interval: interval,
		fn:       fn,
		ctx:      ctx,
		cancel:   cancel,
		seq:      seq,
		kick:     make(chan struct{}, 1),
	}
	s.jobs[kind] = j
	s.wg.Add(1)
	s.mu.Unlock()

	go s.run(j)
}

// Stop cancels the job for kind. An in-flight cycle is allowed to finish
// but its context is cancelled, so its result is dropped on arrival.
func (s *Scheduler) Stop(kind fleet.Kind) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if j, ok := s.jobs[kind]; ok {
		j.cancel()
		delete(s.jobs, kind)
	}
}

// StopAll cancels every job and waits for the job loops to exit.
func (s *Scheduler) StopAll() {
	s.mu.Lock()
	for kind, j := range s.jobs {
		j.cancel()
		delete(s.jobs, kind)
	}
	s.mu.Unlock()
	s.wg.Wait()
}

// RefreshNow triggers one out-of-band cycle for kind without disturbing
// the timer schedule. It is a no-op if the kind is not running; a cycle
// already in flight absorbs the request.
func (s *Scheduler) RefreshNow(kind fleet.Kind) {
	s.mu.Lock()
	j, ok := s.jobs[kind]
	s.mu.Unlock()
	if !ok {
		return
	}
	select {
	case j.kick <- struct{}{}:
	default:
	}
}

// Running reports whether a job exists for kind.
func (s *Scheduler) Running(kind fleet.Kind) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.jobs[kind]
	return ok
}

func (s *Scheduler) run(j *job) {
	defer s.wg.Done()
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	s.cycle(j)
	for {
		select {
		case <-j.ctx.Done():
			return
		case <-ticker.C:
			s.cycle(j)
		case <-j.kick:
			s.cycle(j)
		}
	}
}

// cycle launches one fetch unless the previous one for this kind is
// still in flight, in which case the tick is skipped to prevent request
// pile-up. A failed fetch is logged and retried at the next tick; there
// is no backoff.
func (s *Scheduler) cycle(j *job) {
	if !j.inFlight.CompareAndSwap(false, true) {
		s.logger.Debug("skipping tick, previous cycle still in flight", "kind", j.kind)
		return
	}
	seq := j.seq.Add(1)
	go func() {
		defer j.inFlight.Store(false)
		if err := j.fn(j.ctx, seq); err != nil {
			if errors.Is(err, context.Canceled) {
				return
			}
			s.logger.Warn("fetch cycle failed", "kind", j.kind, "seq", seq, "error", err)
		}
	}()
}
