package search

import (
	"context"
	"sync"
	"time"

	"github.com/vidmux/vidmux/log"
	"github.com/vidmux/vidmux/source"
)

// Outcome is one source's contribution to a run. A failed source still yields
// an outcome: zero candidates, zero latency, and the swallowed error for the
// per-source statistics. Failure of one source never aborts the others.
type Outcome struct {
	Source     *source.Descriptor
	Candidates []*source.Candidate
	Elapsed    time.Duration
	Err        error
}

// Aggregator fans a query out to every requested source concurrently and
// streams per-source outcomes in completion order.
type Aggregator struct {
	client *Client
}

// NewAggregator returns an aggregator using the given search client.
func NewAggregator(client *Client) *Aggregator {
	if client == nil {
		client = NewClient(nil)
	}
	return &Aggregator{client: client}
}

// Search queries all sources concurrently. The returned channel delivers one
// outcome per source as each completes and closes once every source has
// reported. Completion order is non-deterministic. The channel is buffered to
// the source count, so workers never block on an abandoned consumer.
func (a *Aggregator) Search(ctx context.Context, query string, sources []*source.Descriptor) <-chan Outcome {
	outcomes := make(chan Outcome, len(sources))

	var wg sync.WaitGroup
	for _, desc := range sources {
		wg.Add(1)
		go func(desc *source.Descriptor) {
			defer wg.Done()

			candidates, elapsed, err := a.client.Search(ctx, desc, query, 1)
			if err != nil {
				// Partial-failure policy: a dead or garbled source is a
				// zero-result contributor, logged and swallowed.
				log.Warnf("source %s failed: %v", desc.ID, err)
				outcomes <- Outcome{Source: desc, Err: err}
				return
			}

			log.Debugf("source %s returned %d candidates in %s", desc.ID, len(candidates), elapsed)
			outcomes <- Outcome{Source: desc, Candidates: candidates, Elapsed: elapsed}
		}(desc)
	}

	go func() {
		wg.Wait()
		close(outcomes)
	}()

	return outcomes
}
