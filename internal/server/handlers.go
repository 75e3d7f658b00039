package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.opentelemetry.io/otel/trace"

	"github.com/loverescue/coachcore/internal/assessment"
	"github.com/loverescue/coachcore/internal/audit"
	"github.com/loverescue/coachcore/internal/crisis"
	"github.com/loverescue/coachcore/internal/insight"
	"github.com/loverescue/coachcore/internal/intervention"
	"github.com/loverescue/coachcore/internal/ritual"
	"github.com/loverescue/coachcore/internal/telemetry"
)

var validate = validator.New()

// --- Request/response types for the HTTP layer ---

type insightsRequest struct {
	Assessments map[string]json.RawMessage `json:"assessments" validate:"required"`
}

type insightsResponse struct {
	RequestID  string             `json:"request_id"`
	Insights   []insight.Insight  `json:"insights"`
	ActionPlan insight.ActionPlan `json:"action_plan"`
}

type actionPlanRequest struct {
	Insights []planInsight `json:"insights" validate:"required,dive"`
}

// planInsight is an insight as a client sends it back for planning.
type planInsight struct {
	ID        string `json:"id"`
	Title     string `json:"title" validate:"required"`
	Expert    string `json:"expert"`
	Severity  string `json:"severity" validate:"required,oneof=high moderate"`
	Insight   string `json:"insight"`
	Action    string `json:"action"`
	Framework string `json:"framework"`
}

type actionPlanResponse struct {
	RequestID  string             `json:"request_id"`
	ActionPlan insight.ActionPlan `json:"action_plan"`
}

type crisisResponse struct {
	RequestID    string                `json:"request_id"`
	Assessment   crisis.Assessment     `json:"assessment"`
	Intervention *intervention.Program `json:"intervention,omitempty"`
}

type interventionResponse struct {
	Pathway  string               `json:"pathway"`
	Fallback bool                 `json:"fallback"`
	Program  intervention.Program `json:"program"`
}

type ritualsResponse struct {
	Week    int             `json:"week"`
	Rituals []ritual.Ritual `json:"rituals"`
}

func (s *Server) handleInsights(r *http.Request, c *call) (any, audit.Outcome, error) {
	var req insightsRequest
	if err := decodeAndValidate(r, &req); err != nil {
		return nil, audit.Outcome{}, err
	}

	insights := insight.Generate(assessment.FromRaw(req.Assessments))
	for _, in := range insights {
		s.tel.RecordInsight(r.Context(), in.ID, string(in.Severity))
	}

	return insightsResponse{
		RequestID:  c.requestID,
		Insights:   insights,
		ActionPlan: insight.BuildActionPlan(insights),
	}, audit.InsightsOutcome(insights), nil
}

func (s *Server) handleActionPlan(r *http.Request, c *call) (any, audit.Outcome, error) {
	var req actionPlanRequest
	if err := decodeAndValidate(r, &req); err != nil {
		return nil, audit.Outcome{}, err
	}

	insights := make([]insight.Insight, 0, len(req.Insights))
	for _, in := range req.Insights {
		insights = append(insights, insight.Insight{
			ID:        in.ID,
			Title:     in.Title,
			Expert:    in.Expert,
			Severity:  insight.Severity(in.Severity),
			Insight:   in.Insight,
			Action:    in.Action,
			Framework: in.Framework,
		})
	}

	plan := insight.BuildActionPlan(insights)
	return actionPlanResponse{RequestID: c.requestID, ActionPlan: plan}, audit.PlanOutcome(insights), nil
}

func (s *Server) handleCrisisAssess(r *http.Request, c *call) (any, audit.Outcome, error) {
	var signals *crisis.Signals
	if err := decodeJSON(r, &signals); err != nil {
		return nil, audit.Outcome{}, err
	}

	a, err := crisis.Assess(signals)
	if err != nil {
		return nil, audit.Outcome{}, err
	}
	s.tel.RecordTriage(r.Context(), string(a.Level), string(a.Pathway))
	trace.SpanFromContext(r.Context()).SetAttributes(telemetry.SafeAttributes(map[string]interface{}{
		"coach.level":   string(a.Level),
		"coach.pathway": string(a.Pathway),
	})...)

	resp := crisisResponse{RequestID: c.requestID, Assessment: a}
	if a.Pathway != crisis.PathwaySafetyFirst {
		prog := intervention.For(a.Pathway)
		resp.Intervention = &prog
	}
	return resp, audit.TriageOutcome(a), nil
}

func (s *Server) handleIntervention(r *http.Request, c *call) (any, audit.Outcome, error) {
	pathway := r.PathValue("pathway")
	p := crisis.Pathway(pathway)
	fallback := !intervention.Has(p)
	trace.SpanFromContext(r.Context()).SetAttributes(telemetry.SafeAttributes(map[string]interface{}{
		"coach.pathway":  pathway,
		"coach.fallback": fallback,
	})...)

	// Only known pathway ids reach the audit log.
	logged := "unknown"
	if p.Valid() {
		logged = string(p)
	}

	return interventionResponse{
		Pathway:  pathway,
		Fallback: fallback,
		Program:  intervention.For(p),
	}, audit.InterventionOutcome(logged, fallback), nil
}

func (s *Server) handleFloodingFirstAid(r *http.Request, c *call) (any, audit.Outcome, error) {
	return intervention.FloodingFirstAid(), audit.Outcome{}, nil
}

func (s *Server) handleRituals(r *http.Request, c *call) (any, audit.Outcome, error) {
	raw := strings.TrimSpace(r.URL.Query().Get("week"))
	if raw == "" {
		return nil, audit.Outcome{}, invalidArgument("week is required")
	}
	week, err := strconv.Atoi(raw)
	if err != nil {
		return nil, audit.Outcome{}, invalidArgument("week must be an integer")
	}

	rituals := ritual.ForWeek(week)
	return ritualsResponse{Week: week, Rituals: rituals}, audit.RitualsOutcome(week, rituals), nil
}

// decodeJSON reads exactly one JSON document from the request body.
func decodeJSON(r *http.Request, dst any) error {
	if r.Body == nil {
		return invalidArgument("request body is required")
	}
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		var mbe *http.MaxBytesError
		switch {
		case errors.As(err, &mbe):
			return errTooLarge
		case errors.Is(err, io.EOF):
			return invalidArgument("request body is required")
		default:
			return invalidArgument("Invalid JSON body")
		}
	}

	var extra json.RawMessage
	switch err := dec.Decode(&extra); {
	case errors.Is(err, io.EOF):
		return nil
	case err != nil:
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			return errTooLarge
		}
	}
	return invalidArgument("request body must hold a single JSON value")
}

func decodeAndValidate(r *http.Request, dst any) error {
	if err := decodeJSON(r, dst); err != nil {
		return err
	}
	if err := validate.Struct(dst); err != nil {
		return invalidArgument("%s", validationMessage(err))
	}
	return nil
}

// validationMessage names the first failing field without echoing its value.
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return "field " + fe.Namespace() + " failed " + fe.Tag()
	}
	return "invalid request"
}
