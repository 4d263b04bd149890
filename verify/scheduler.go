package verify

import (
	"context"
	"sync"
	"time"

	"github.com/spf13/viper"
	"github.com/vidmux/vidmux/key"
	"github.com/vidmux/vidmux/source"
)

// CheckFunc is the probe executed for each candidate. It mirrors
// (*Checker).Check so tests can substitute instrumented probes.
type CheckFunc func(ctx context.Context, cand *source.Candidate) (available bool, latency time.Duration)

// Verdict is one completed probe. Every scheduled candidate produces exactly
// one verdict, in completion order.
type Verdict struct {
	Candidate *source.Candidate
	Available bool
	Latency   time.Duration
}

// Scheduler verifies a candidate list under a fixed concurrency cap. Verdicts
// are emitted as each probe completes; the next queued candidate is admitted
// immediately, so exactly cap probes are in flight until the queue drains.
type Scheduler struct {
	check CheckFunc
	cap   int
}

// NewScheduler returns a scheduler running the given probe. A non-positive cap
// falls back to the configured verification concurrency.
func NewScheduler(check CheckFunc, cap int) *Scheduler {
	if cap <= 0 {
		cap = viper.GetInt(key.VerifyConcurrency)
	}
	if cap <= 0 {
		cap = 8
	}
	return &Scheduler{check: check, cap: cap}
}

// Verify probes every candidate and streams verdicts in completion order. The
// returned channel closes once all candidates are processed or the context is
// cancelled; on cancellation, queued candidates are never admitted. The channel
// is buffered to the candidate count, so workers never block on the consumer.
func (s *Scheduler) Verify(ctx context.Context, candidates []*source.Candidate) <-chan Verdict {
	verdicts := make(chan Verdict, len(candidates))

	jobs := make(chan *source.Candidate)
	go func() {
		defer close(jobs)
		for _, cand := range candidates {
			select {
			case jobs <- cand:
			case <-ctx.Done():
				return
			}
		}
	}()

	workers := s.cap
	if len(candidates) < workers {
		workers = len(candidates)
	}

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for cand := range jobs {
				available, latency := s.check(ctx, cand)
				if ctx.Err() != nil {
					return
				}
				verdicts <- Verdict{Candidate: cand, Available: available, Latency: latency}
			}
		}()
	}

	go func() {
		wg.Wait()
		close(verdicts)
	}()

	return verdicts
}
