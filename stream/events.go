// Package stream drives the search-and-verify pipeline and emits a strictly
// ordered sequence of progress events to the caller as work completes.
package stream

import "github.com/vidmux/vidmux/source"

// Stage is the coarse pipeline phase reported to the caller.
type Stage string

const (
	StageSearching Stage = "searching"
	StageChecking  Stage = "checking"
)

// EventType tags the progress event variants on the wire.
type EventType string

const (
	EventProgress EventType = "progress"
	EventVideos   EventType = "videos"
	EventComplete EventType = "complete"
	EventError    EventType = "error"
)

// Event is one record of the progress stream. Exactly one terminal event is
// emitted per run: Complete on success, Error on structural failure. Counts
// never regress between events of one run.
type Event struct {
	Type  EventType `json:"type"`
	Stage Stage     `json:"stage,omitempty"`

	// Processed and Total report stage progress: sources during searching,
	// candidates during checking.
	Processed int `json:"processed,omitempty"`
	Total     int `json:"total,omitempty"`

	// Videos carries the newly verified candidates of a videos event.
	Videos []*source.VerifiedCandidate `json:"videos,omitempty"`

	// Results and Stats carry the full verified set and per-source statistics
	// of the terminal complete event.
	Results []*source.VerifiedCandidate `json:"results,omitempty"`
	Stats   []*source.Stat              `json:"stats,omitempty"`

	Error string `json:"error,omitempty"`
}

func newProgress(stage Stage, processed, total int) Event {
	return Event{Type: EventProgress, Stage: stage, Processed: processed, Total: total}
}

func newVideos(batch []*source.VerifiedCandidate, processed, total int) Event {
	return Event{Type: EventVideos, Stage: StageChecking, Videos: batch, Processed: processed, Total: total}
}

func newComplete(results []*source.VerifiedCandidate, stats []*source.Stat) Event {
	return Event{Type: EventComplete, Total: len(results), Results: results, Stats: stats}
}

func newError(message string) Event {
	return Event{Type: EventError, Error: message}
}

// Terminal reports whether the event ends the stream.
func (e Event) Terminal() bool {
	return e.Type == EventComplete || e.Type == EventError
}
