package metrics

import (
	"sync"
	"time"
)

type providerStats struct {
	calls           int
	errors          int
	rateLimitHits   int
	lastRetryAfter  time.Duration
	lastCallLatency time.Duration
}

type broadcastStats struct {
	cycles            int
	cycleErrors       int
	narrations        int
	narrationFailures int
	lookupFailures    map[string]int
	activeSessions    int
}

// Recorder captures lightweight, in-memory metrics and forwards them to OpenTelemetry when configured.
type Recorder struct {
	mu        sync.Mutex
	stats     map[string]*providerStats
	broadcast broadcastStats
	otel      *otelInstruments
}

func NewRecorder() *Recorder {
	return newRecorder(nil)
}

func newRecorder(otel *otelInstruments) *Recorder {
	return &Recorder{
		stats:     make(map[string]*providerStats),
		broadcast: broadcastStats{lookupFailures: make(map[string]int)},
		otel:      otel,
	}
}

// RecordProviderAttempt increments counters for a provider call and stores the last observed latency.
func (r *Recorder) RecordProviderAttempt(provider string, duration time.Duration, err error) {
	if r == nil {
		return
	}

	r.mu.Lock()
	stats := r.ensureStats(provider)
	stats.calls++
	stats.lastCallLatency = duration
	if err != nil {
		stats.errors++
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordProviderAttempt(provider, duration, err)
	}
}

// RecordRateLimit tracks that a provider response hit a rate limit and stores the last Retry-After.
func (r *Recorder) RecordRateLimit(provider string, retryAfter time.Duration) {
	if r == nil {
		return
	}

	r.mu.Lock()
	stats := r.ensureStats(provider)
	stats.rateLimitHits++
	if retryAfter > 0 {
		stats.lastRetryAfter = retryAfter
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordRateLimit(provider, retryAfter)
	}
}

// ProviderCalls returns the total attempts recorded for a provider.
func (r *Recorder) ProviderCalls(provider string) int {
	return r.Snapshot(provider).Calls
}

// ProviderErrors returns the total failed attempts recorded for a provider.
func (r *Recorder) ProviderErrors(provider string) int {
	return r.Snapshot(provider).Errors
}

// RateLimitHits returns the number of rate limit events seen for a provider.
func (r *Recorder) RateLimitHits(provider string) int {
	return r.Snapshot(provider).RateLimitHits
}

// LastRetryAfter returns the most recent Retry-After recorded for a provider.
func (r *Recorder) LastRetryAfter(provider string) time.Duration {
	return r.Snapshot(provider).LastRetryAfter
}

// LastCallLatency returns the last recorded latency for a provider call.
func (r *Recorder) LastCallLatency(provider string) time.Duration {
	return r.Snapshot(provider).LastCallLatency
}

// Snapshot returns a copy of the current stats for the provider.
type Snapshot struct {
	Calls           int
	Errors          int
	RateLimitHits   int
	LastRetryAfter  time.Duration
	LastCallLatency time.Duration
}

func (r *Recorder) Snapshot(provider string) Snapshot {
	if r == nil {
		return Snapshot{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	stats, ok := r.stats[provider]
	if !ok || stats == nil {
		return Snapshot{}
	}
	return Snapshot{
		Calls:           stats.calls,
		Errors:          stats.errors,
		RateLimitHits:   stats.rateLimitHits,
		LastRetryAfter:  stats.lastRetryAfter,
		LastCallLatency: stats.lastCallLatency,
	}
}

// RecordHTTPRequest tracks basic HTTP metrics.
func (r *Recorder) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	if r == nil || r.otel == nil {
		return
	}
	r.otel.recordHTTPRequest(method, path, status, duration)
}

// RecordBroadcastCycle tracks one poll cycle of a running broadcast session.
func (r *Recorder) RecordBroadcastCycle(duration time.Duration, err error) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.broadcast.cycles++
	if err != nil {
		r.broadcast.cycleErrors++
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordCycle(duration, err)
	}
}

// RecordNarration tracks one narration attempt; failed marks a sentinel result.
func (r *Recorder) RecordNarration(model string, duration time.Duration, failed bool) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.broadcast.narrations++
	if failed {
		r.broadcast.narrationFailures++
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordNarration(model, duration, failed)
	}
}

// RecordLookupFailure counts a degraded context lookup (box score, season stats, props, odds).
func (r *Recorder) RecordLookupFailure(lookup string) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.broadcast.lookupFailures[lookup]++
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordLookupFailure(lookup)
	}
}

// SessionStarted and SessionStopped maintain the running-sessions gauge.
func (r *Recorder) SessionStarted() {
	r.adjustSessions(1)
}

func (r *Recorder) SessionStopped() {
	r.adjustSessions(-1)
}

func (r *Recorder) adjustSessions(delta int) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.broadcast.activeSessions += delta
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordActiveSessions(int64(delta))
	}
}

// BroadcastSnapshot is a copy of the broadcast counters.
type BroadcastSnapshot struct {
	Cycles            int
	CycleErrors       int
	Narrations        int
	NarrationFailures int
	LookupFailures    map[string]int
	ActiveSessions    int
}

// Broadcast returns a copy of the broadcast counters.
func (r *Recorder) Broadcast() BroadcastSnapshot {
	if r == nil {
		return BroadcastSnapshot{LookupFailures: map[string]int{}}
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	lookups := make(map[string]int, len(r.broadcast.lookupFailures))
	for k, v := range r.broadcast.lookupFailures {
		lookups[k] = v
	}
	return BroadcastSnapshot{
		Cycles:            r.broadcast.cycles,
		CycleErrors:       r.broadcast.cycleErrors,
		Narrations:        r.broadcast.narrations,
		NarrationFailures: r.broadcast.narrationFailures,
		LookupFailures:    lookups,
		ActiveSessions:    r.broadcast.activeSessions,
	}
}

// ensureStats must be called with r.mu held.
func (r *Recorder) ensureStats(provider string) *providerStats {
	stats, ok := r.stats[provider]
	if !ok {
		stats = &providerStats{}
		r.stats[provider] = stats
	}
	return stats
}
