package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func validConfig() *Config {
	cfg := &Config{
		Projects: []ProjectConfig{{ID: "mobile", APIKeys: []string{"k1"}}},
	}
	applyDefaults(cfg)
	return cfg
}

func TestValidateFailures(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{
			name:   "missing server addr",
			mutate: func(c *Config) { c.Server.Addr = "" },
			want:   "server.addr",
		},
		{
			name:   "no projects",
			mutate: func(c *Config) { c.Projects = nil },
			want:   "at least one project",
		},
		{
			name:   "empty project id",
			mutate: func(c *Config) { c.Projects[0].ID = " " },
			want:   "project id",
		},
		{
			name:   "project without keys",
			mutate: func(c *Config) { c.Projects[0].APIKeys = []string{""} },
			want:   "api_keys",
		},
		{
			name: "key shared between projects",
			mutate: func(c *Config) {
				c.Projects = append(c.Projects, ProjectConfig{ID: "web", APIKeys: []string{"k1"}})
			},
			want: "reuses an api key",
		},
		{
			name:   "negative body limit",
			mutate: func(c *Config) { c.Server.MaxRequestBodyBytes = -1 },
			want:   "max_request_body_bytes",
		},
		{
			name:   "rate limit without burst",
			mutate: func(c *Config) { c.Server.RateLimitPerSecond = 5; c.Server.RateLimitBurst = 0 },
			want:   "rate_limit_burst",
		},
		{
			name:   "bad audit level",
			mutate: func(c *Config) { c.Audit.Level = "full" },
			want:   "audit.level",
		},
		{
			name:   "file sink without path",
			mutate: func(c *Config) { c.Audit.Sinks = []AuditSinkConfig{{Type: "file_jsonl"}} },
			want:   "missing path",
		},
		{
			name:   "webhook with bad scheme",
			mutate: func(c *Config) { c.Audit.Sinks = []AuditSinkConfig{{Type: "webhook", URL: "ftp://audit.example.com"}} },
			want:   "http or https",
		},
		{
			name:   "webhook to loopback",
			mutate: func(c *Config) { c.Audit.Sinks = []AuditSinkConfig{{Type: "webhook", URL: "http://127.0.0.1:9000/hook"}} },
			want:   "SSRF",
		},
		{
			name:   "unknown sink",
			mutate: func(c *Config) { c.Audit.Sinks = []AuditSinkConfig{{Type: "kafka"}} },
			want:   "unknown type",
		},
		{
			name:   "telemetry bad protocol",
			mutate: func(c *Config) { c.Telemetry.Enabled = true; c.Telemetry.Protocol = "udp" },
			want:   "telemetry.protocol",
		},
		{
			name: "telemetry missing endpoint",
			mutate: func(c *Config) {
				c.Telemetry.Enabled = true
				c.Telemetry.Protocol = "http"
				c.Telemetry.Endpoint = ""
			},
			want: "endpoint",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validConfig()
			tc.mutate(cfg)
			if err := Validate(cfg); err == nil {
				t.Fatalf("expected error containing %q", tc.want)
			} else if !contains(err.Error(), tc.want) {
				t.Fatalf("error %q does not contain %q", err.Error(), tc.want)
			}
		})
	}
}

func TestValidateOK(t *testing.T) {
	if err := Validate(validConfig()); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}

	loopbackOK := validConfig()
	loopbackOK.Audit.Sinks = []AuditSinkConfig{{Type: "webhook", URL: "http://127.0.0.1:9000/hook", AllowPrivateNetworks: true}}
	loopbackOK.Telemetry = TelemetryConfig{Enabled: true, Protocol: "prometheus"}
	if err := Validate(loopbackOK); err != nil {
		t.Fatalf("expected loopback allowed when allow_private_networks=true, got %v", err)
	}
}

func TestValidateKeysFromEnv(t *testing.T) {
	t.Setenv("COACH_TEST_KEYS", "env-1, env-2,,")
	cfg := validConfig()
	cfg.Projects = []ProjectConfig{{ID: "mobile", APIKeysEnv: "COACH_TEST_KEYS"}}
	if err := Validate(cfg); err != nil {
		t.Fatalf("expected env keys to satisfy api_keys, got %v", err)
	}
	keys := cfg.Projects[0].Keys()
	if len(keys) != 2 || keys[0] != "env-1" || keys[1] != "env-2" {
		t.Fatalf("unexpected keys %v", keys)
	}
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Addr != ":8080" || cfg.Server.MaxRequestBodyBytes != 65536 || cfg.Server.MaxInFlightRequests != 64 {
		t.Fatalf("unexpected server defaults %+v", cfg.Server)
	}
	if cfg.Audit.Level != "metadata" || cfg.Audit.QueueSize != 1000 || cfg.Audit.Workers != 1 {
		t.Fatalf("unexpected audit defaults %+v", cfg.Audit)
	}
	if cfg.Telemetry.Service != "coachcore" || cfg.Telemetry.Protocol != "grpc" {
		t.Fatalf("unexpected telemetry defaults %+v", cfg.Telemetry)
	}
}

func TestLoadParsesYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "coachcore.yaml")
	body := `
server:
  addr: ":9090"
  rate_limit_per_second: 2.5
  read_timeout: 3s
projects:
  - id: mobile
    api_keys: ["k1"]
audit:
  level: off
  sinks:
    - type: webhook
      url: https://audit.example.com/hook
      headers:
        X-Token: abc
telemetry:
  enabled: true
  protocol: prometheus
`
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Addr != ":9090" || cfg.Server.ReadTimeout != 3*time.Second {
		t.Fatalf("unexpected server %+v", cfg.Server)
	}
	if cfg.Server.RateLimitBurst != 2 {
		t.Fatalf("expected burst derived from rate, got %d", cfg.Server.RateLimitBurst)
	}
	if cfg.Audit.Level != "off" {
		t.Fatalf("expected audit off, got %q", cfg.Audit.Level)
	}
	if got := cfg.Audit.Sinks[0].Timeout; got != 2*time.Second {
		t.Fatalf("expected default webhook timeout, got %s", got)
	}
	if cfg.Audit.Sinks[0].Headers["X-Token"] != "abc" {
		t.Fatalf("headers not parsed: %+v", cfg.Audit.Sinks[0].Headers)
	}
	if cfg.Telemetry.Endpoint != "" {
		t.Fatalf("prometheus needs no endpoint, got %q", cfg.Telemetry.Endpoint)
	}
	if err := Validate(cfg); err != nil {
		t.Fatalf("validate: %v", err)
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("server: [unclosed"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("expected yaml error")
	}
}

func TestResolvePath(t *testing.T) {
	t.Setenv(EnvPath, "")
	if got := ResolvePath(""); got != DefaultPath {
		t.Fatalf("expected default path, got %q", got)
	}
	t.Setenv(EnvPath, "/etc/coach.yaml")
	if got := ResolvePath(""); got != "/etc/coach.yaml" {
		t.Fatalf("expected env path, got %q", got)
	}
	if got := ResolvePath("flag.yaml"); got != "flag.yaml" {
		t.Fatalf("expected flag path, got %q", got)
	}
}

func contains(s, sub string) bool {
	return s != "" && sub != "" && strings.Contains(s, sub)
}
