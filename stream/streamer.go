package stream

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/spf13/viper"
	"github.com/vidmux/vidmux/key"
	"github.com/vidmux/vidmux/log"
	"github.com/vidmux/vidmux/provider"
	"github.com/vidmux/vidmux/search"
	"github.com/vidmux/vidmux/source"
	"github.com/vidmux/vidmux/util"
	"github.com/vidmux/vidmux/verify"
)

// Structural request failures. These abort before any pipeline work starts;
// everything else is recovered per source or per item.
var (
	ErrEmptyQuery = errors.New("empty query")
	ErrNoSources  = errors.New("no valid sources")
)

// Request describes one pipeline run.
type Request struct {
	// Query is the user-supplied search term; it must be non-empty after trimming.
	Query string

	// SourceIDs selects the sources to query. Empty means every enabled source.
	SourceIDs []string
}

// Streamer orchestrates one search-and-verify run per invocation:
// Searching → Checking → Complete, or Failed on a structural error. It is the
// sole consumer of the aggregator and scheduler channels and the sole producer
// of the caller-facing event sequence.
type Streamer struct {
	aggregator *search.Aggregator
	checker    *verify.Checker
}

// New returns a streamer wired to the shared network clients.
func New() *Streamer {
	return &Streamer{
		aggregator: search.NewAggregator(nil),
		checker:    verify.NewChecker(nil),
	}
}

// NewWith returns a streamer using the given collaborators; tests substitute
// instrumented ones.
func NewWith(aggregator *search.Aggregator, checker *verify.Checker) *Streamer {
	return &Streamer{aggregator: aggregator, checker: checker}
}

// Run executes the pipeline and emits ordered events on the returned channel.
// The channel closes after the terminal event, or silently once cancellation
// is observed: a cancelled run discards its partial results and emits nothing
// further.
func (s *Streamer) Run(ctx context.Context, req Request) <-chan Event {
	events := make(chan Event)

	go func() {
		defer close(events)

		emit := func(e Event) bool {
			if ctx.Err() != nil {
				return false
			}
			select {
			case events <- e:
				return true
			case <-ctx.Done():
				return false
			}
		}

		runID := uuid.NewString()

		query := strings.TrimSpace(req.Query)
		if query == "" {
			emit(newError(ErrEmptyQuery.Error()))
			return
		}

		descriptors := s.resolveSources(req.SourceIDs)
		if len(descriptors) == 0 {
			emit(newError(ErrNoSources.Error()))
			return
		}

		log.Infof("run %s: query %q against %s", runID, query, util.Quantify(len(descriptors), "source", "sources"))

		// Searching stage: fan out, report each source as it completes.
		totalSources := len(descriptors)
		checkedSources := 0
		elapsed := make(map[string]int64, totalSources) // source ID → ms, -1 on failure

		var merged []*source.Candidate
		for outcome := range s.aggregator.Search(ctx, query, descriptors) {
			checkedSources++
			if outcome.Err != nil {
				elapsed[outcome.Source.ID] = -1
			} else {
				elapsed[outcome.Source.ID] = outcome.Elapsed.Milliseconds()
				merged = append(merged, outcome.Candidates...)
			}

			if !emit(newProgress(StageSearching, checkedSources, totalSources)) {
				return
			}
		}

		if ctx.Err() != nil {
			return
		}

		// Checking stage: the candidate total is fixed here and never changes
		// mid-stage. Duplicate (source, vod) pairs are dropped before probing.
		candidates := lo.UniqBy(merged, func(c *source.Candidate) string { return c.Key() })
		totalVideos := len(candidates)
		log.Debugf("run %s: %d candidates after merge", runID, totalVideos)

		var verified []*source.VerifiedCandidate

		if !viper.GetBool(key.VerifyEnabled) {
			// Verification disabled: trust every candidate.
			verified = lo.Map(candidates, func(c *source.Candidate, _ int) *source.VerifiedCandidate {
				return &source.VerifiedCandidate{Candidate: c, Available: true}
			})
			if totalVideos > 0 {
				if !emit(newVideos(verified, totalVideos, totalVideos)) {
					return
				}
				if !emit(newProgress(StageChecking, totalVideos, totalVideos)) {
					return
				}
			}
		} else {
			scheduler := verify.NewScheduler(s.checker.Check, 0)
			checkedVideos := 0
			for verdict := range scheduler.Verify(ctx, candidates) {
				checkedVideos++
				if verdict.Available {
					vc := &source.VerifiedCandidate{
						Candidate: verdict.Candidate,
						Available: true,
						Latency:   verdict.Latency,
					}
					verified = append(verified, vc)
					if !emit(newVideos([]*source.VerifiedCandidate{vc}, checkedVideos, totalVideos)) {
						return
					}
				}
				if !emit(newProgress(StageChecking, checkedVideos, totalVideos)) {
					return
				}
			}

			if ctx.Err() != nil {
				return
			}
		}

		stats := buildStats(descriptors, verified, elapsed)
		log.Infof("run %s: complete, %d of %d candidates verified", runID, len(verified), totalVideos)
		emit(newComplete(verified, stats))
	}()

	return events
}

// resolveSources maps requested IDs to descriptors, skipping unknown ones.
// Without explicit IDs, the configured defaults apply, then every enabled source.
func (s *Streamer) resolveSources(ids []string) []*source.Descriptor {
	if len(ids) == 0 {
		ids = viper.GetStringSlice(key.SourcesDefault)
	}
	if len(ids) == 0 {
		return provider.Enabled()
	}

	var descriptors []*source.Descriptor
	for _, id := range ids {
		desc, ok := provider.Get(id)
		if !ok {
			log.Warnf("unknown source id %q requested, skipping", id)
			continue
		}
		descriptors = append(descriptors, desc)
	}
	return descriptors
}

// buildStats derives the per-source aggregates from the final verified set.
func buildStats(descriptors []*source.Descriptor, verified []*source.VerifiedCandidate, elapsed map[string]int64) []*source.Stat {
	counts := lo.CountValuesBy(verified, func(vc *source.VerifiedCandidate) string {
		return vc.SourceID
	})

	stats := make([]*source.Stat, 0, len(descriptors))
	for _, desc := range descriptors {
		ms, ok := elapsed[desc.ID]
		if !ok {
			ms = -1
		}
		stats = append(stats, &source.Stat{
			SourceID:     desc.ID,
			SourceName:   desc.Name,
			Count:        counts[desc.ID],
			ResponseTime: ms,
		})
	}
	return stats
}
