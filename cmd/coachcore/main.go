package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/loverescue/coachcore/internal/audit"
	"github.com/loverescue/coachcore/internal/auth"
	"github.com/loverescue/coachcore/internal/config"
	"github.com/loverescue/coachcore/internal/redact"
	"github.com/loverescue/coachcore/internal/server"
	"github.com/loverescue/coachcore/internal/telemetry"
)

var version = "dev"

func main() {
	addrFlag := flag.String("addr", "", "HTTP listen address (overrides config)")
	configFlag := flag.String("config", "", "Path to coachcore config file (default $COACH_CONFIG or coachcore.yaml)")
	flag.Parse()

	configPath := config.ResolvePath(*configFlag)
	cfg, err := config.Load(configPath)
	if err != nil {
		redact.Fatalf("failed to load config %s: %v", configPath, err)
	}
	if *addrFlag != "" {
		cfg.Server.Addr = *addrFlag
	}
	if err := config.Validate(cfg); err != nil {
		redact.Fatalf("invalid config: %v", err)
	}

	authz, err := auth.NewFromConfig(cfg)
	if err != nil {
		redact.Fatalf("failed to build auth: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tel, err := telemetry.NewProvider(ctx, telemetry.Config{
		Enabled:  cfg.Telemetry.Enabled,
		Endpoint: cfg.Telemetry.Endpoint,
		Protocol: cfg.Telemetry.Protocol,
		Service:  cfg.Telemetry.Service,
		Version:  version,
	})
	if err != nil {
		redact.Fatalf("failed to init telemetry: %v", err)
	}

	emitter, err := audit.FromConfig(cfg.Audit, cfg.Server.ShutdownTimeout)
	if err != nil {
		redact.Fatalf("failed to init audit: %v", err)
	}
	if emitter != nil {
		if err := tel.ObserveQueue("coach_audit", func() (uint64, uint64) {
			m := emitter.Metrics()
			return m.Enqueued, m.Dropped
		}); err != nil {
			redact.Logf("audit queue metrics disabled: %v", err)
		}
	}

	srv := server.New(cfg, authz, emitter, tel)

	redact.Logf("starting coachcore %s with %d project(s), audit=%s", version, len(cfg.Projects), cfg.Audit.Level)
	serveErr := srv.Start(ctx)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout+5*time.Second)
	defer cancel()
	emitter.Close(shutdownCtx)
	tel.Shutdown(shutdownCtx)

	if serveErr != nil {
		redact.Fatalf("server error: %v", serveErr)
	}
}
