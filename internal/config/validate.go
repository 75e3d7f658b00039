package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"
)

// Validate checks the loaded config for required fields and safe values.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.New("config is nil")
	}

	if err := validateServerConfig(cfg.Server); err != nil {
		return err
	}

	if len(cfg.Projects) == 0 {
		return errors.New("at least one project must be configured")
	}

	seen := make(map[string]string)
	for _, p := range cfg.Projects {
		if strings.TrimSpace(p.ID) == "" {
			return errors.New("project id must be set")
		}
		keys := p.Keys()
		if len(keys) == 0 {
			return fmt.Errorf("project %q must define at least one api_keys entry", p.ID)
		}
		for _, k := range keys {
			if owner, dup := seen[k]; dup && owner != p.ID {
				return fmt.Errorf("project %q reuses an api key of project %q", p.ID, owner)
			}
			seen[k] = p.ID
		}
	}

	if err := validateAuditConfig(cfg.Audit); err != nil {
		return err
	}

	if err := validateTelemetryConfig(cfg.Telemetry); err != nil {
		return err
	}

	return nil
}

func validateServerConfig(s ServerConfig) error {
	if strings.TrimSpace(s.Addr) == "" {
		return errors.New("server.addr must be set")
	}
	if s.MaxRequestBodyBytes < 0 {
		return errors.New("server.max_request_body_bytes must not be negative")
	}
	if s.MaxInFlightRequests < 0 {
		return errors.New("server.max_in_flight_requests must not be negative")
	}
	if s.RateLimitPerSecond < 0 {
		return errors.New("server.rate_limit_per_second must not be negative")
	}
	if s.RateLimitPerSecond > 0 && s.RateLimitBurst < 1 {
		return errors.New("server.rate_limit_burst must be at least 1 when rate limiting is enabled")
	}
	return nil
}

func validateAuditConfig(a AuditConfig) error {
	switch strings.ToLower(strings.TrimSpace(a.Level)) {
	case "off", "metadata":
	default:
		return fmt.Errorf("audit.level must be off or metadata, got %q", a.Level)
	}
	if a.QueueSize < 1 {
		return errors.New("audit.queue_size must be at least 1")
	}
	if a.Workers < 1 {
		return errors.New("audit.workers must be at least 1")
	}
	for i, s := range a.Sinks {
		switch strings.ToLower(strings.TrimSpace(s.Type)) {
		case "file_jsonl":
			if strings.TrimSpace(s.Path) == "" {
				return fmt.Errorf("audit sink %d (file_jsonl) missing path", i)
			}
		case "webhook":
			if strings.TrimSpace(s.URL) == "" {
				return fmt.Errorf("audit sink %d (webhook) missing url", i)
			}
			u, err := url.Parse(s.URL)
			if err != nil || u.Scheme == "" || u.Host == "" {
				return fmt.Errorf("audit sink %d (webhook) has invalid url", i)
			}
			if u.Scheme != "http" && u.Scheme != "https" {
				return fmt.Errorf("audit sink %d (webhook) url must be http or https", i)
			}
			if err := blockPrivateHost(u.Host, s.AllowPrivateNetworks); err != nil {
				return fmt.Errorf("audit sink %d (webhook) url blocked: %w", i, err)
			}
		default:
			return fmt.Errorf("audit sink %d has unknown type %q", i, s.Type)
		}
	}
	return nil
}

func validateTelemetryConfig(t TelemetryConfig) error {
	if !t.Enabled {
		return nil
	}
	switch strings.ToLower(strings.TrimSpace(t.Protocol)) {
	case "grpc", "http":
		if strings.TrimSpace(t.Endpoint) == "" {
			return errors.New("telemetry enabled but endpoint is empty")
		}
	case "prometheus":
	default:
		return fmt.Errorf("telemetry.protocol must be grpc, http or prometheus, got %q", t.Protocol)
	}
	return nil
}

func blockPrivateHost(hostport string, allowPrivate bool) error {
	if allowPrivate {
		return nil
	}
	host := hostport
	if strings.Contains(hostport, "]") || strings.Contains(hostport, ":") {
		h, _, err := net.SplitHostPort(hostport)
		if err == nil {
			host = h
		}
	}
	if strings.EqualFold(strings.TrimSpace(host), "localhost") {
		return errors.New("private network host localhost blocked for SSRF safety")
	}

	if ip := net.ParseIP(host); ip != nil && isPrivateIP(ip) {
		return fmt.Errorf("private network IP %s blocked for SSRF safety", ip.String())
	}
	return nil
}

var privateBlocks = []*net.IPNet{
	{IP: net.ParseIP("127.0.0.0"), Mask: net.CIDRMask(8, 32)},
	{IP: net.ParseIP("10.0.0.0"), Mask: net.CIDRMask(8, 32)},
	{IP: net.ParseIP("172.16.0.0"), Mask: net.CIDRMask(12, 32)},
	{IP: net.ParseIP("192.168.0.0"), Mask: net.CIDRMask(16, 32)},
	{IP: net.ParseIP("169.254.0.0"), Mask: net.CIDRMask(16, 32)},
	{IP: net.ParseIP("::1"), Mask: net.CIDRMask(128, 128)},
	{IP: net.ParseIP("fc00::"), Mask: net.CIDRMask(7, 128)},
	{IP: net.ParseIP("fe80::"), Mask: net.CIDRMask(10, 128)},
}

func isPrivateIP(ip net.IP) bool {
	for _, block := range privateBlocks {
		if block.Contains(ip) {
			return true
		}
	}
	return false
}
