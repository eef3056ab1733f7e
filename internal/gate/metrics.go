package gate

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/epy0n0ff/trigger-guard/internal/config"
)

// MetricsEvent represents structured metrics data for observability
type MetricsEvent struct {
	// EventType is always "trigger_gate_evaluated"
	EventType string `json:"event_type"`

	// Timestamp is the event timestamp in ISO 8601 UTC format
	Timestamp string `json:"timestamp"`

	RunID     string `json:"run_id,omitempty"`
	EventName string `json:"event_name,omitempty"`

	Actor      string `json:"actor"`
	Repository string `json:"repository"`

	// Bypassed is true when the actor was allow-listed
	Bypassed bool `json:"bypassed"`

	// Allowed indicates whether the assistant may proceed
	Allowed bool `json:"allowed"`

	// Reason classifies the abort (empty when allowed)
	Reason string `json:"reason,omitempty"`

	// DurationSeconds is the total evaluation time
	DurationSeconds float64 `json:"duration_seconds"`
}

// NewMetricsEvent creates a MetricsEvent from a Decision
func NewMetricsEvent(d *Decision, cfg *config.Config) *MetricsEvent {
	return &MetricsEvent{
		EventType:       "trigger_gate_evaluated",
		Timestamp:       d.CompletedAt.UTC().Format(time.RFC3339),
		RunID:           cfg.RunID,
		EventName:       cfg.EventName,
		Actor:           d.Actor,
		Repository:      d.Repository.FullName,
		Bypassed:        d.Bypassed,
		Allowed:         d.Allowed,
		Reason:          d.Reason,
		DurationSeconds: d.Duration,
	}
}

// logMetrics outputs structured JSON metrics to stdout for external monitoring systems
// Format: ::notice::METRICS:{json}
func logMetrics(event *MetricsEvent) error {
	jsonBytes, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal metrics: %w", err)
	}

	fmt.Printf("::notice::METRICS:%s\n", string(jsonBytes))
	return nil
}
