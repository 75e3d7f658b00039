package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestInsightsFromFileWithPlan(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.json")
	if err := os.WriteFile(path, []byte(`{"attachment":{"style":"anxious"},"human_needs":{"topNeed":"certainty"}}`), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	out, err := run(t, "", "insights", "--file", path, "--plan")
	if err != nil {
		t.Fatalf("insights: %v", err)
	}
	var got struct {
		Insights []struct {
			ID string `json:"id"`
		} `json:"insights"`
		ActionPlan struct {
			HighPriority int `json:"highPriority"`
		} `json:"action_plan"`
	}
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("decode output %q: %v", out, err)
	}
	if len(got.Insights) != 1 || got.Insights[0].ID != "att_anxious_hn_certainty" {
		t.Fatalf("unexpected insights %+v", got.Insights)
	}
	if got.ActionPlan.HighPriority != 1 {
		t.Fatalf("unexpected plan %+v", got.ActionPlan)
	}
	if !strings.Contains(out, "\n  ") {
		t.Fatalf("expected indented output")
	}
}

func TestInsightsRejectsNonObject(t *testing.T) {
	if _, err := run(t, "[1,2]", "insights"); err == nil {
		t.Fatalf("expected error for array input")
	}
}

func TestPlanFromStdin(t *testing.T) {
	out, err := run(t, `[{"title":"A","severity":"moderate"}]`, "plan")
	if err != nil {
		t.Fatalf("plan: %v", err)
	}
	if !strings.Contains(out, `"totalInsights": 1`) {
		t.Fatalf("unexpected plan output %s", out)
	}
}

func TestCrisisTriState(t *testing.T) {
	out, err := run(t, "", "crisis", "--physical-safety=false")
	if err != nil {
		t.Fatalf("crisis: %v", err)
	}
	if !strings.Contains(out, `"pathway": "safety_first"`) || strings.Contains(out, `"intervention"`) {
		t.Fatalf("unexpected safety output %s", out)
	}

	out, err = run(t, "", "crisis")
	if err != nil {
		t.Fatalf("crisis: %v", err)
	}
	if !strings.Contains(out, `"pathway": "general_support"`) || !strings.Contains(out, `"intervention"`) {
		t.Fatalf("unset flags must reach general support, got %s", out)
	}

	if _, err := run(t, "", "crisis", "--infidelity=maybe"); err == nil {
		t.Fatalf("expected error for non-boolean flag")
	}
}

func TestInterventionFallback(t *testing.T) {
	known, err := run(t, "", "intervention", "standard_repair")
	if err != nil {
		t.Fatalf("intervention: %v", err)
	}
	unknown, err := run(t, "", "intervention", "nope")
	if err != nil {
		t.Fatalf("intervention: %v", err)
	}
	if known != unknown {
		t.Fatalf("unknown pathway must print the standard repair program")
	}
}

func TestRitualsAndRules(t *testing.T) {
	out, err := run(t, "", "rituals", "--week", "0")
	if err != nil {
		t.Fatalf("rituals: %v", err)
	}
	if !strings.Contains(out, `"rituals": []`) {
		t.Fatalf("week 0 must unlock nothing, got %s", out)
	}

	out, err = run(t, "", "rules")
	if err != nil {
		t.Fatalf("rules: %v", err)
	}
	var rules []map[string]any
	if err := json.Unmarshal([]byte(out), &rules); err != nil {
		t.Fatalf("decode rules: %v", err)
	}
	if len(rules) != 13 {
		t.Fatalf("expected 13 rules, got %d", len(rules))
	}
}

func TestFirstAid(t *testing.T) {
	out, err := run(t, "", "first-aid")
	if err != nil {
		t.Fatalf("first-aid: %v", err)
	}
	if !strings.Contains(out, `"protocol"`) {
		t.Fatalf("unexpected first-aid output %s", out)
	}
}
