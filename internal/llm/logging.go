package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Aditi-N-28/ArthaMind/internal/docstore"
)

// UsageLog records the outcome of every LLM request. Implementations
// must tolerate concurrent calls.
type UsageLog interface {
	RecordRequest(ctx context.Context, stats RequestStats) error
}

// RequestStats summarizes a single LLM request for accounting.
type RequestStats struct {
	Model        string
	Purpose      string
	LatencyMs    int64
	Success      bool
	InputTokens  int64
	OutputTokens int64
}

// LoggingProvider is a decorator that records every LLM request
// in a usage log.
type LoggingProvider struct {
	inner Provider
	log   UsageLog
}

// WithLogging wraps a Provider with usage accounting.
func WithLogging(p Provider, log UsageLog) Provider {
	return &LoggingProvider{inner: p, log: log}
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()

	resp, err := l.inner.Generate(ctx, req)

	stats := RequestStats{
		Model:     l.inner.ModelID(),
		Purpose:   PurposeFrom(ctx),
		LatencyMs: time.Since(start).Milliseconds(),
		Success:   err == nil,
	}
	if resp != nil {
		stats.Model = resp.Model
		stats.InputTokens = int64(resp.Usage.InputTokens)
		stats.OutputTokens = int64(resp.Usage.OutputTokens)
	}

	// Record the request but don't fail it if accounting fails.
	if logErr := l.log.RecordRequest(ctx, stats); logErr != nil {
		slog.Warn("failed to record llm usage", "error", logErr)
	}

	return resp, err
}

func (l *LoggingProvider) ModelID() string {
	return l.inner.ModelID()
}

// usageUserID is the pseudo-user under which aggregate LLM usage
// counters are stored.
const usageUserID = "_system"

// StoreUsageLog persists aggregate usage counters in the document store
// under the system/llmlog document. Counters are incremented atomically
// so concurrent requests never lose updates.
type StoreUsageLog struct {
	store docstore.Store
}

// NewStoreUsageLog returns a UsageLog backed by the given document store.
func NewStoreUsageLog(s docstore.Store) *StoreUsageLog {
	return &StoreUsageLog{store: s}
}

func (s *StoreUsageLog) RecordRequest(ctx context.Context, stats RequestStats) error {
	deltas := map[string]int64{
		"calls":        1,
		"inputTokens":  stats.InputTokens,
		"outputTokens": stats.OutputTokens,
		"latencyMs":    stats.LatencyMs,
	}
	if !stats.Success {
		deltas["failures"] = 1
	}
	if p := sanitizeCounterKey(stats.Purpose); p != "" {
		deltas["byPurpose."+p+".calls"] = 1
		deltas["byPurpose."+p+".outputTokens"] = stats.OutputTokens
	}
	return s.store.Increment(ctx, usageUserID, docstore.PathLLMLog, deltas)
}

// UsageStats is the aggregate view of recorded LLM usage.
type UsageStats struct {
	Calls        int64                      `json:"calls"`
	Failures     int64                      `json:"failures"`
	InputTokens  int64                      `json:"inputTokens"`
	OutputTokens int64                      `json:"outputTokens"`
	LatencyMs    int64                      `json:"latencyMs"`
	ByPurpose    map[string]PurposeCounters `json:"byPurpose"`
}

// PurposeCounters holds the per-purpose slice of usage counters.
type PurposeCounters struct {
	Calls        int64 `json:"calls"`
	OutputTokens int64 `json:"outputTokens"`
}

// Stats loads the aggregate usage counters. A missing document yields
// zero stats, not an error.
func (s *StoreUsageLog) Stats(ctx context.Context) (UsageStats, error) {
	var stats UsageStats
	raw, err := s.store.Get(ctx, usageUserID, docstore.PathLLMLog)
	if err != nil {
		if err == docstore.ErrNotFound {
			return stats, nil
		}
		return stats, fmt.Errorf("loading llm usage: %w", err)
	}
	if err := json.Unmarshal(raw, &stats); err != nil {
		return stats, fmt.Errorf("decoding llm usage: %w", err)
	}
	return stats, nil
}

// sanitizeCounterKey makes a purpose label safe for use as a counter
// field segment. Dots would be parsed as path separators.
func sanitizeCounterKey(s string) string {
	s = strings.TrimSpace(s)
	return strings.ReplaceAll(s, ".", "-")
}

// NopUsageLog discards all usage records.
type NopUsageLog struct{}

func (NopUsageLog) RecordRequest(context.Context, RequestStats) error { return nil }
