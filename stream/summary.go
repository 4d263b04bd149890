package stream

import (
	"context"
	"errors"

	"github.com/vidmux/vidmux/source"
)

// Summary is the folded outcome of one complete run, consumed by the batch
// endpoint and the one-shot CLI mode.
type Summary struct {
	Query   string                      `json:"query"`
	Results []*source.VerifiedCandidate `json:"results"`
	Stats   []*source.Stat              `json:"stats"`
}

// Collect runs the pipeline to completion and folds the event stream into a
// summary. Structural failures come back as the matching sentinel error;
// cancellation comes back as the context error.
func (s *Streamer) Collect(ctx context.Context, req Request) (*Summary, error) {
	var summary *Summary

	for event := range s.Run(ctx, req) {
		switch event.Type {
		case EventComplete:
			summary = &Summary{
				Query:   req.Query,
				Results: event.Results,
				Stats:   event.Stats,
			}
		case EventError:
			return nil, asSentinel(event.Error)
		}
	}

	if summary == nil {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return nil, errors.New("event stream ended without a terminal event")
	}

	return summary, nil
}

func asSentinel(message string) error {
	for _, sentinel := range []error{ErrEmptyQuery, ErrNoSources} {
		if message == sentinel.Error() {
			return sentinel
		}
	}
	return errors.New(message)
}
