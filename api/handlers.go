// Package api exposes the pipeline over HTTP: a progressive event-stream
// endpoint, a batch search endpoint, and registry/health lookups.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/vidmux/vidmux/constant"
	"github.com/vidmux/vidmux/log"
	"github.com/vidmux/vidmux/provider"
	"github.com/vidmux/vidmux/source"
	"github.com/vidmux/vidmux/stream"
)

// Handler holds the HTTP request handlers.
type Handler struct {
	streamer *stream.Streamer
}

// NewHandler creates a new handler instance around the given streamer.
func NewHandler(streamer *stream.Streamer) *Handler {
	return &Handler{streamer: streamer}
}

// SearchRequest is the inbound search payload, accepted as JSON (POST) or
// query parameters (GET).
type SearchRequest struct {
	Query   string   `json:"query" form:"q"`
	Sources []string `json:"sources" form:"sources"`
}

// ErrorResponse is the uniform failure payload.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// SourceResult summarizes one source's contribution in the batch response.
type SourceResult struct {
	Source       string `json:"source"`
	Results      int    `json:"results"`
	ResponseTime int64  `json:"responseTime"`
}

// SourceStat is the per-source aggregate of the batch response.
type SourceStat struct {
	SourceID   string `json:"sourceId"`
	SourceName string `json:"sourceName"`
	Count      int    `json:"count"`
}

// SearchResponse is the batch (non-streaming) search payload.
type SearchResponse struct {
	Success      bool                        `json:"success"`
	Query        string                      `json:"query"`
	Sources      []SourceResult              `json:"sources"`
	TotalResults int                         `json:"totalResults"`
	Results      []*source.VerifiedCandidate `json:"results"`
	SourceStats  []SourceStat                `json:"sourceStats"`
}

// parseRequest extracts the search request from either transport shape.
func parseRequest(c *gin.Context) (SearchRequest, error) {
	var req SearchRequest

	if c.Request.Method == http.MethodGet {
		req.Query = c.Query("q")
		if raw := c.Query("sources"); raw != "" {
			req.Sources = strings.Split(raw, ",")
		}
		return req, nil
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		return req, fmt.Errorf("invalid request body: %w", err)
	}
	return req, nil
}

// Search handles the batch variant: it runs the whole pipeline and answers
// once with the folded result.
func (h *Handler) Search(c *gin.Context) {
	req, err := parseRequest(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	if strings.TrimSpace(req.Query) == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: stream.ErrEmptyQuery.Error()})
		return
	}

	summary, err := h.streamer.Collect(c.Request.Context(), stream.Request{
		Query:     req.Query,
		SourceIDs: req.Sources,
	})
	if err != nil {
		switch {
		case errors.Is(err, stream.ErrEmptyQuery), errors.Is(err, stream.ErrNoSources):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		case c.Request.Context().Err() != nil:
			// The client went away; nothing sensible to answer.
			c.Abort()
		default:
			log.Errorf("batch search failed: %v", err)
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		}
		return
	}

	response := SearchResponse{
		Success:      true,
		Query:        summary.Query,
		TotalResults: len(summary.Results),
		Results:      summary.Results,
	}
	for _, st := range summary.Stats {
		response.Sources = append(response.Sources, SourceResult{
			Source:       st.SourceName,
			Results:      st.Count,
			ResponseTime: st.ResponseTime,
		})
		response.SourceStats = append(response.SourceStats, SourceStat{
			SourceID:   st.SourceID,
			SourceName: st.SourceName,
			Count:      st.Count,
		})
	}

	c.JSON(http.StatusOK, response)
}

// SearchStream handles the progressive variant: every pipeline event is
// written as a `data: `-prefixed JSON line and flushed immediately.
func (h *Handler) SearchStream(c *gin.Context) {
	req, err := parseRequest(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	if strings.TrimSpace(req.Query) == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: stream.ErrEmptyQuery.Error()})
		return
	}

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")
	c.Status(http.StatusOK)

	flusher, _ := c.Writer.(http.Flusher)

	events := h.streamer.Run(c.Request.Context(), stream.Request{
		Query:     req.Query,
		SourceIDs: req.Sources,
	})
	for event := range events {
		payload, err := json.Marshal(event)
		if err != nil {
			log.Errorf("event marshal failed: %v", err)
			return
		}
		if _, err = fmt.Fprintf(c.Writer, "data: %s\n\n", payload); err != nil {
			// Writing failed, the consumer is gone. The request context
			// cancellation reaches the pipeline on its own.
			return
		}
		if flusher != nil {
			flusher.Flush()
		}
	}
}

// Sources lists the enabled source registry entries for the client.
func (h *Handler) Sources(c *gin.Context) {
	type entry struct {
		ID     string `json:"id"`
		Name   string `json:"name"`
		Weight int    `json:"weight"`
	}

	enabled := provider.Enabled()
	entries := make([]entry, 0, len(enabled))
	for _, d := range enabled {
		entries = append(entries, entry{ID: d.ID, Name: d.Name, Weight: d.Weight})
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "sources": entries})
}

// Health reports service liveness.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "version": constant.Version})
}
