package config

import (
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// EnvPath names the environment variable that overrides the config path.
const EnvPath = "COACH_CONFIG"

// DefaultPath is used when neither a flag nor COACH_CONFIG is set.
const DefaultPath = "coachcore.yaml"

// Config holds coachcore configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Projects  []ProjectConfig `yaml:"projects"`
	Audit     AuditConfig     `yaml:"audit"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

type ServerConfig struct {
	Addr                string        `yaml:"addr"` // HTTP listen address, e.g. ":8080"
	MaxRequestBodyBytes int64         `yaml:"max_request_body_bytes"`
	MaxInFlightRequests int           `yaml:"max_in_flight_requests"`
	RateLimitPerSecond  float64       `yaml:"rate_limit_per_second"` // per project, 0 disables
	RateLimitBurst      int           `yaml:"rate_limit_burst"`
	ReadHeaderTimeout   time.Duration `yaml:"read_header_timeout"`
	ReadTimeout         time.Duration `yaml:"read_timeout"`
	WriteTimeout        time.Duration `yaml:"write_timeout"`
	IdleTimeout         time.Duration `yaml:"idle_timeout"`
	ShutdownTimeout     time.Duration `yaml:"shutdown_timeout"`
}

type ProjectConfig struct {
	ID         string   `yaml:"id"`
	APIKeys    []string `yaml:"api_keys"`
	APIKeysEnv string   `yaml:"api_keys_env"` // comma separated keys, merged with api_keys
}

// Keys returns the project's static keys plus any supplied via APIKeysEnv.
func (p ProjectConfig) Keys() []string {
	keys := make([]string, 0, len(p.APIKeys))
	for _, k := range p.APIKeys {
		if k = strings.TrimSpace(k); k != "" {
			keys = append(keys, k)
		}
	}
	if p.APIKeysEnv == "" {
		return keys
	}
	for _, k := range strings.Split(os.Getenv(p.APIKeysEnv), ",") {
		if k = strings.TrimSpace(k); k != "" {
			keys = append(keys, k)
		}
	}
	return keys
}

type AuditConfig struct {
	Level     string            `yaml:"level"` // off | metadata
	QueueSize int               `yaml:"queue_size"`
	Workers   int               `yaml:"workers"`
	Sinks     []AuditSinkConfig `yaml:"sinks"`
}

type AuditSinkConfig struct {
	Type                 string            `yaml:"type"` // file_jsonl | webhook
	Path                 string            `yaml:"path"`
	URL                  string            `yaml:"url"`
	Headers              map[string]string `yaml:"headers"`
	Timeout              time.Duration     `yaml:"timeout"`
	AllowPrivateNetworks bool              `yaml:"allow_private_networks"`
}

type TelemetryConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Endpoint string `yaml:"endpoint"`
	Protocol string `yaml:"protocol"` // grpc | http | prometheus
	Service  string `yaml:"service"`
}

// ResolvePath picks the config path: an explicit flag value wins, then
// COACH_CONFIG, then DefaultPath.
func ResolvePath(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if env := strings.TrimSpace(os.Getenv(EnvPath)); env != "" {
		return env
	}
	return DefaultPath
}

// Load reads configuration from a YAML file.
// If the file doesn't exist, it returns a default config and no error.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	applyDefaults(&cfg)

	return &cfg, nil
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	cfg := &Config{Projects: []ProjectConfig{}}
	applyDefaults(cfg)
	return cfg
}

func applyDefaults(cfg *Config) {
	s := &cfg.Server
	if s.Addr == "" {
		s.Addr = ":8080"
	}
	if s.MaxRequestBodyBytes == 0 {
		s.MaxRequestBodyBytes = 64 * 1024
	}
	if s.MaxInFlightRequests == 0 {
		s.MaxInFlightRequests = 64
	}
	if s.RateLimitPerSecond > 0 && s.RateLimitBurst == 0 {
		s.RateLimitBurst = int(s.RateLimitPerSecond)
		if s.RateLimitBurst < 1 {
			s.RateLimitBurst = 1
		}
	}
	if s.ReadHeaderTimeout == 0 {
		s.ReadHeaderTimeout = 5 * time.Second
	}
	if s.ReadTimeout == 0 {
		s.ReadTimeout = 10 * time.Second
	}
	if s.WriteTimeout == 0 {
		s.WriteTimeout = 10 * time.Second
	}
	if s.IdleTimeout == 0 {
		s.IdleTimeout = 60 * time.Second
	}
	if s.ShutdownTimeout == 0 {
		s.ShutdownTimeout = 10 * time.Second
	}

	if cfg.Audit.Level == "" {
		cfg.Audit.Level = "metadata"
	}
	if cfg.Audit.QueueSize == 0 {
		cfg.Audit.QueueSize = 1000
	}
	if cfg.Audit.Workers == 0 {
		cfg.Audit.Workers = 1
	}
	for i := range cfg.Audit.Sinks {
		if cfg.Audit.Sinks[i].Type == "webhook" && cfg.Audit.Sinks[i].Timeout == 0 {
			cfg.Audit.Sinks[i].Timeout = 2 * time.Second
		}
	}

	if cfg.Telemetry.Protocol == "" {
		cfg.Telemetry.Protocol = "grpc"
	}
	if cfg.Telemetry.Endpoint == "" && cfg.Telemetry.Protocol != "prometheus" {
		cfg.Telemetry.Endpoint = "localhost:4317"
	}
	if cfg.Telemetry.Service == "" {
		cfg.Telemetry.Service = "coachcore"
	}
}
