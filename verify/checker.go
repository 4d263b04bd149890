// Package verify implements the availability stage: a lightweight probe per
// candidate and a scheduler that drains the candidate list under a fixed
// concurrency cap.
package verify

import (
	"context"
	"net/http"
	"time"

	"github.com/spf13/viper"
	"github.com/vidmux/vidmux/constant"
	"github.com/vidmux/vidmux/key"
	"github.com/vidmux/vidmux/log"
	"github.com/vidmux/vidmux/network"
	"github.com/vidmux/vidmux/source"
	"github.com/vidmux/vidmux/util"
)

// probeByteRange keeps the probe cheap: the first kilobyte is enough to know
// the resource answers.
const probeByteRange = "bytes=0-1023"

// Checker probes one candidate's primary playable URL. A probe verdict is a
// policy decision, never a pipeline error: timeouts and network failures all
// come back as unavailable.
type Checker struct {
	http *http.Client
}

// NewChecker returns a checker backed by the given HTTP client, or the shared
// probe client when nil.
func NewChecker(httpClient *http.Client) *Checker {
	if httpClient == nil {
		httpClient = network.Probe
	}
	return &Checker{http: httpClient}
}

// Check issues a ranged GET against the candidate's first play URL and reports
// whether it answered. The configured per-item timeout bounds the probe so a
// hung source cannot stall the scheduler.
func (c *Checker) Check(ctx context.Context, cand *source.Candidate) (available bool, latency time.Duration) {
	episode, ok := cand.FirstPlayable().Get()
	if !ok {
		return false, 0
	}

	timeout := time.Duration(viper.GetInt(key.VerifyTimeout)) * time.Second
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, episode.URL, nil)
	if err != nil {
		return false, 0
	}
	req.Header.Set("User-Agent", constant.UserAgent)
	req.Header.Set("Range", probeByteRange)

	start := time.Now()
	resp, err := c.http.Do(req)
	latency = time.Since(start)
	if err != nil {
		log.Debugf("probe %s failed: %v", cand.Key(), err)
		return false, latency
	}
	defer util.Ignore(resp.Body.Close)

	return resp.StatusCode < http.StatusBadRequest, latency
}
