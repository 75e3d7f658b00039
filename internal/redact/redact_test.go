package redact

import (
	"strings"
	"testing"
)

func TestStringRedaction(t *testing.T) {
	cases := []struct {
		name     string
		input    string
		disallow []string
		require  []string
	}{
		{
			name:     "bearer header",
			input:    "Authorization: Bearer proj-secret-123",
			disallow: []string{"proj-secret-123"},
			require:  []string{"Bearer [REDACTED]"},
		},
		{
			name:     "api keys slice",
			input:    "api_keys=[mob-key-1 mob-key-2]",
			disallow: []string{"mob-key-1", "mob-key-2"},
			require:  []string{"api_keys=[REDACTED]"},
		},
		{
			name:     "api key env value",
			input:    "api_key=abc123,def456 loaded",
			disallow: []string{"abc123", "def456"},
			require:  []string{"api_key=[REDACTED]", "loaded"},
		},
		{
			name:     "webhook url",
			input:    "sink webhook:https://user:pw@audit.example.com/hooks/team/ingest?sig=abc123 failed",
			disallow: []string{"sig=abc123", "user:pw", "hooks/team"},
			require:  []string{"https://audit.example.com/ingest", "failed"},
		},
		{
			name:     "url with trailing slash",
			input:    "endpoint https://collector.example.test/v1/traces/",
			disallow: []string{"v1/traces"},
			require:  []string{"https://collector.example.test/[REDACTED_PATH]"},
		},
		{
			name:     "webhook header",
			input:    "headers map[X-Token: tok-998877]",
			disallow: []string{"tok-998877"},
			require:  []string{"X-Token: [REDACTED]"},
		},
		{
			name:     "email",
			input:    "user partner@example.org requested plan",
			disallow: []string{"partner@example.org"},
			require:  []string{"[REDACTED_EMAIL]", "requested plan"},
		},
		{
			name:     "password field",
			input:    "password=hunter22 retry",
			disallow: []string{"hunter22"},
			require:  []string{"password=[REDACTED]"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out := String(tc.input)
			for _, bad := range tc.disallow {
				if bad != "" && contains(out, bad) {
					t.Fatalf("output still contains %q: %s", bad, out)
				}
			}
			for _, want := range tc.require {
				if want == "" {
					continue
				}
				if !contains(out, want) {
					t.Fatalf("output missing required substring %q: %s", want, out)
				}
			}
		})
	}
}

func TestStringLeavesPlainText(t *testing.T) {
	in := "crisis assess level=acute pathway=infidelity_response latency_ms=1.2"
	if out := String(in); out != in {
		t.Fatalf("expected unchanged output, got %s", out)
	}
	if String("") != "" {
		t.Fatalf("empty input must stay empty")
	}
}

func TestSprintf(t *testing.T) {
	out := Sprintf("auth failed for %s", "Bearer xyz789")
	if contains(out, "xyz789") {
		t.Fatalf("Sprintf did not redact: %s", out)
	}
}

func contains(s, sub string) bool {
	return s != "" && sub != "" && strings.Contains(s, sub)
}
