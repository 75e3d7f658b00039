package telemetry

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestDisabledProviderIsNoop(t *testing.T) {
	p, err := NewProvider(context.Background(), Config{Enabled: false})
	if err != nil {
		t.Fatalf("new provider: %v", err)
	}
	if p.Enabled {
		t.Fatalf("expected disabled provider")
	}
	if p.MetricsHandler() != nil {
		t.Fatalf("disabled provider must not serve metrics")
	}
	ctx, span := p.Tracer().Start(context.Background(), "noop")
	p.RecordRequest(ctx, "insights", "proj", 200, 1.5)
	p.RecordInsight(ctx, "att_anxious_ll_words", "high")
	p.RecordTriage(ctx, "acute", "infidelity_response")
	span.End()
	p.Shutdown(context.Background())
}

func TestNilProviderIsSafe(t *testing.T) {
	var p *Provider
	p.RecordRequest(context.Background(), "insights", "proj", 200, 1)
	p.RecordTriage(context.Background(), "low", "general_support")
	if p.MetricsHandler() != nil {
		t.Fatalf("nil provider must not serve metrics")
	}
	if err := p.ObserveQueue("coach_audit", func() (uint64, uint64) { return 0, 0 }); err != nil {
		t.Fatalf("observe on nil provider: %v", err)
	}
	_, span := p.Tracer().Start(context.Background(), "x")
	span.End()
	p.Shutdown(context.Background())
}

func TestUnknownProtocol(t *testing.T) {
	if _, err := NewProvider(context.Background(), Config{Enabled: true, Protocol: "udp"}); err == nil {
		t.Fatalf("expected unknown protocol error")
	}
}

func TestPrometheusExposition(t *testing.T) {
	p, err := NewProvider(context.Background(), Config{Enabled: true, Protocol: "prometheus", Service: "coachcore-test"})
	if err != nil {
		t.Fatalf("new provider: %v", err)
	}
	defer p.Shutdown(context.Background())

	if err := p.ObserveQueue("coach_audit", func() (uint64, uint64) { return 7, 2 }); err != nil {
		t.Fatalf("observe queue: %v", err)
	}
	p.RecordRequest(context.Background(), "crisis_assess", "proj", 200, 3)
	p.RecordTriage(context.Background(), "acute", "separation_prevention")

	h := p.MetricsHandler()
	if h == nil {
		t.Fatalf("expected metrics handler")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body, _ := io.ReadAll(rec.Body)
	for _, want := range []string{"coach_requests", "coach_triage", "separation_prevention", "coach_audit_dropped"} {
		if !strings.Contains(string(body), want) {
			t.Fatalf("exposition missing %q:\n%s", want, body)
		}
	}
}
