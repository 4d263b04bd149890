// Package source defines the domain models for content sources and their search results.
package source

import (
	"time"

	"github.com/samber/mo"
)

// Episode is a single playable entry of a candidate: a display name and its stream URL.
type Episode struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Candidate is one unverified search result produced by a source.
// Identity is the (SourceID, VodID) pair; the same video returned by two
// sources is two distinct candidates.
type Candidate struct {
	SourceID   string    `json:"sourceId"`
	SourceName string    `json:"sourceName"`
	VodID      string    `json:"vodId"`
	Title      string    `json:"title"`
	Poster     string    `json:"poster,omitempty"`
	Remarks    string    `json:"remarks,omitempty"`
	TypeName   string    `json:"typeName,omitempty"`
	Year       string    `json:"year,omitempty"`
	Episodes   []Episode `json:"episodes"`
}

// Key returns the identity of the candidate used for de-duplication.
func (c *Candidate) Key() string {
	return c.SourceID + "/" + c.VodID
}

// FirstPlayable returns the episode probed during verification: the first of
// the candidate's stream list, or None when the source returned no episodes.
func (c *Candidate) FirstPlayable() mo.Option[Episode] {
	if len(c.Episodes) == 0 {
		return mo.None[Episode]()
	}
	return mo.Some(c.Episodes[0])
}

// VerifiedCandidate annotates a candidate with its availability verdict and probe latency.
type VerifiedCandidate struct {
	*Candidate

	Available bool          `json:"available"`
	Latency   time.Duration `json:"latency,omitempty"`
}

// Stat is the per-source aggregate computed from the final verified set.
type Stat struct {
	SourceID   string `json:"sourceId"`
	SourceName string `json:"sourceName"`
	Count      int    `json:"count"`

	// ResponseTime echoes the source's search latency in milliseconds, -1 when the source failed.
	ResponseTime int64 `json:"responseTime"`
}
