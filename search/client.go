// Package search implements the fan-out search stage: one client per external
// source API and an aggregator that queries every requested source concurrently.
package search

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
	"github.com/vidmux/vidmux/constant"
	"github.com/vidmux/vidmux/key"
	"github.com/vidmux/vidmux/network"
	"github.com/vidmux/vidmux/source"
	"github.com/vidmux/vidmux/util"
)

// Sentinel errors distinguishing a dead source from one that answered garbage.
// Both are recovered one layer up; neither ever aborts a run.
var (
	ErrSourceUnavailable = errors.New("source unavailable")
	ErrMalformedResponse = errors.New("malformed source response")
)

// Client performs a single search call against one source's videolist API and
// translates the per-source payload into the common candidate shape. It holds
// no state between calls.
type Client struct {
	http *http.Client
}

// NewClient returns a client backed by the given HTTP client, or the shared
// tuned network client when nil.
func NewClient(httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = network.Client
	}
	return &Client{http: httpClient}
}

// Search queries one source for the given term and page. It returns the
// normalized candidates and the time the source took to answer. Every call
// bounds itself with the configured per-source timeout; there is no deadline
// shared across sources.
func (c *Client) Search(ctx context.Context, desc *source.Descriptor, query string, page int) ([]*source.Candidate, time.Duration, error) {
	endpoint, err := buildURL(desc.API, query, page)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %s: %v", ErrSourceUnavailable, desc.ID, err)
	}

	timeout := time.Duration(viper.GetInt(key.SearchTimeout)) * time.Second
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %s: %v", ErrSourceUnavailable, desc.ID, err)
	}
	req.Header.Set("User-Agent", constant.UserAgent)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	elapsed := time.Since(start)
	if err != nil {
		return nil, elapsed, fmt.Errorf("%w: %s: %v", ErrSourceUnavailable, desc.ID, err)
	}
	defer util.Ignore(resp.Body.Close)

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, elapsed, fmt.Errorf("%w: %s: status %d", ErrSourceUnavailable, desc.ID, resp.StatusCode)
	}

	var payload apiResponse
	if err = json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, elapsed, fmt.Errorf("%w: %s: %v", ErrMalformedResponse, desc.ID, err)
	}

	candidates := make([]*source.Candidate, 0, len(payload.List))
	for _, item := range payload.List {
		if cand := item.toCandidate(desc); cand != nil {
			candidates = append(candidates, cand)
		}
	}

	// Clamp runaway sources to the configured page size.
	if limit := viper.GetInt(key.SearchPageSize); limit > 0 && len(candidates) > limit {
		candidates = candidates[:limit]
	}

	return candidates, elapsed, nil
}

// buildURL assembles the maccms videolist query for the source endpoint.
func buildURL(api, query string, page int) (string, error) {
	u, err := url.Parse(api)
	if err != nil {
		return "", err
	}

	params := u.Query()
	params.Set("ac", "videolist")
	params.Set("wd", query)
	if page > 1 {
		params.Set("pg", strconv.Itoa(page))
	}
	u.RawQuery = params.Encode()

	return u.String(), nil
}

// apiResponse is the maccms search payload. Only the fields the pipeline
// consumes are declared; everything else in the payload is ignored.
type apiResponse struct {
	Code flexString   `json:"code"`
	List []apiVodItem `json:"list"`
}

type apiVodItem struct {
	ID       flexString `json:"vod_id"`
	Name     string     `json:"vod_name"`
	Pic      string     `json:"vod_pic"`
	Remarks  string     `json:"vod_remarks"`
	TypeName string     `json:"type_name"`
	Year     flexString `json:"vod_year"`
	PlayURL  string     `json:"vod_play_url"`
}

// toCandidate translates one vod item into the common candidate shape.
// Items without an id or a title are dropped; they cannot be identified or shown.
func (v *apiVodItem) toCandidate(desc *source.Descriptor) *source.Candidate {
	if v.ID == "" || v.Name == "" {
		return nil
	}

	return &source.Candidate{
		SourceID:   desc.ID,
		SourceName: desc.Name,
		VodID:      string(v.ID),
		Title:      strings.TrimSpace(v.Name),
		Poster:     v.Pic,
		Remarks:    v.Remarks,
		TypeName:   v.TypeName,
		Year:       string(v.Year),
		Episodes:   parsePlayURL(v.PlayURL),
	}
}

// parsePlayURL splits a maccms play-url blob into episodes. The blob packs
// routes separated by "$$$"; within a route, episodes are separated by "#" and
// each episode is "name$url". Only the first route is used.
func parsePlayURL(raw string) []source.Episode {
	if raw == "" {
		return nil
	}

	route, _, _ := strings.Cut(raw, "$$$")

	var episodes []source.Episode
	for i, entry := range strings.Split(route, "#") {
		name, addr, found := strings.Cut(entry, "$")
		if !found {
			addr = name
			name = fmt.Sprintf("第%d集", i+1)
		}

		addr = strings.TrimSpace(addr)
		if !strings.HasPrefix(addr, "http") {
			continue
		}

		episodes = append(episodes, source.Episode{
			Name: strings.TrimSpace(name),
			URL:  addr,
		})
	}

	return episodes
}

// flexString decodes JSON values that sources emit inconsistently as either
// strings or numbers (vod ids, years, status codes).
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	if len(data) == 0 || string(data) == "null" {
		*f = ""
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = flexString(n.String())
	return nil
}
