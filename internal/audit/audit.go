// Package audit records which decision the service took for each request.
// Events carry decision metadata only; assessment answers and crisis
// signals never leave the request.
package audit

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/loverescue/coachcore/internal/crisis"
	"github.com/loverescue/coachcore/internal/insight"
	"github.com/loverescue/coachcore/internal/redact"
	"github.com/loverescue/coachcore/internal/ritual"
)

// Operation names the decision surface an event came from.
type Operation string

const (
	OpInsights     Operation = "insights"
	OpActionPlan   Operation = "action_plan"
	OpCrisisAssess Operation = "crisis_assess"
	OpIntervention Operation = "intervention"
	OpRituals      Operation = "rituals"
)

const eventVersion = "1"

// Outcome is the decision taken. Only the fields relevant to the operation
// are set.
type Outcome struct {
	InsightIDs    []string `json:"insight_ids,omitempty"`
	HighCount     int      `json:"high_count,omitempty"`
	ModerateCount int      `json:"moderate_count,omitempty"`
	Level         string   `json:"level,omitempty"`
	Pathway       string   `json:"pathway,omitempty"`
	Fallback      bool     `json:"fallback,omitempty"`
	Week          int      `json:"week,omitempty"`
	RitualCount   int      `json:"ritual_count,omitempty"`
}

// Event is one audit record.
type Event struct {
	Version   string    `json:"version"`
	Timestamp time.Time `json:"timestamp"`
	RequestID string    `json:"request_id"`
	ProjectID string    `json:"project_id"`
	Operation Operation `json:"operation"`
	LatencyMs float64   `json:"latency_ms"`
	Outcome   Outcome   `json:"outcome"`
}

// NewRequestID returns a random request identifier.
func NewRequestID() string {
	return uuid.NewString()
}

// NewEvent stamps an outcome with request metadata. An empty requestID is
// replaced with a fresh one.
func NewEvent(op Operation, projectID, requestID string, started time.Time, out Outcome) *Event {
	if requestID == "" {
		requestID = NewRequestID()
	}
	now := time.Now().UTC()
	latency := 0.0
	if !started.IsZero() {
		latency = float64(now.Sub(started)) / float64(time.Millisecond)
	}
	return &Event{
		Version:   eventVersion,
		Timestamp: now,
		RequestID: requestID,
		ProjectID: projectID,
		Operation: op,
		LatencyMs: latency,
		Outcome:   out,
	}
}

// InsightsOutcome summarizes generated insights by id and severity.
func InsightsOutcome(insights []insight.Insight) Outcome {
	out := PlanOutcome(insights)
	out.InsightIDs = make([]string, 0, len(insights))
	for _, in := range insights {
		out.InsightIDs = append(out.InsightIDs, in.ID)
	}
	return out
}

// PlanOutcome counts the insights a plan was built from by severity. The
// counts are taken before the weekly tier cap.
func PlanOutcome(insights []insight.Insight) Outcome {
	var out Outcome
	for _, in := range insights {
		switch in.Severity {
		case insight.SeverityHigh:
			out.HighCount++
		case insight.SeverityModerate:
			out.ModerateCount++
		}
	}
	return out
}

// TriageOutcome records the level and pathway of a crisis assessment.
func TriageOutcome(a crisis.Assessment) Outcome {
	return Outcome{Level: string(a.Level), Pathway: string(a.Pathway)}
}

// InterventionOutcome records which pathway was requested and whether the
// standard repair program stood in for it.
func InterventionOutcome(pathway string, fallback bool) Outcome {
	return Outcome{Pathway: pathway, Fallback: fallback}
}

// RitualsOutcome records the week asked for and the number unlocked.
func RitualsOutcome(week int, rituals []ritual.Ritual) Outcome {
	return Outcome{Week: week, RitualCount: len(rituals)}
}

// LogEvent prints a redacted JSON representation of the event.
func LogEvent(ev *Event) {
	if ev == nil {
		return
	}
	data, err := json.Marshal(ev)
	if err != nil {
		redact.Logf("audit: failed to marshal event: %v", err)
		return
	}
	redact.Logf("audit: %s", string(data))
}
