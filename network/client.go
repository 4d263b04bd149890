// Package network provides pre-configured, optimized HTTP clients for concurrent source communication.
package network

import (
	"net/http"
	"time"
)

// Client is the singleton HTTP client shared across the application for efficient resource utilization.
// It is configured with increased concurrency limits and reasonable timeouts tailored for aggregation workloads.
var Client = &http.Client{
	Timeout:   time.Minute,
	Transport: newTransport(),
}

// Probe is the HTTP client used for availability probes. It shares the tuned transport with Client
// but never follows redirects into full media downloads and carries no client-level timeout:
// the per-item deadline is supplied through the request context by the verification scheduler.
var Probe = &http.Client{
	Transport: newTransport(),
}

// newTransport initializes a tuned http.Transport with optimized pool and timeout parameters.
func newTransport() *http.Transport {
	t := http.DefaultTransport.(*http.Transport).Clone()
	t.MaxIdleConns = 100
	t.MaxIdleConnsPerHost = 100
	t.MaxConnsPerHost = 200
	t.IdleConnTimeout = 30 * time.Second
	t.ResponseHeaderTimeout = 30 * time.Second
	t.ExpectContinueTimeout = 30 * time.Second
	return t
}
