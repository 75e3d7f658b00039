package telemetry

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	promexporter "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"

	"github.com/loverescue/coachcore/internal/redact"
)

const instrumentationName = "github.com/loverescue/coachcore"

// Config controls telemetry setup.
type Config struct {
	Enabled  bool
	Endpoint string
	Protocol string // grpc | http | prometheus
	Service  string
	Version  string
}

// Provider wires tracer/meter providers and exposes helpers.
type Provider struct {
	Enabled bool
	tracer  trace.Tracer
	meter   metric.Meter
	metrics http.Handler

	requestsCounter metric.Int64Counter
	requestDuration metric.Float64Histogram
	insightsCounter metric.Int64Counter
	triageCounter   metric.Int64Counter

	shutdown []func(context.Context) error
}

// NewProvider configures exporters and providers. When disabled it returns
// a provider backed by no-op implementations.
func NewProvider(ctx context.Context, cfg Config) (*Provider, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if !cfg.Enabled {
		return noopProvider(), nil
	}

	protocol := strings.ToLower(strings.TrimSpace(cfg.Protocol))
	if protocol == "" {
		protocol = "grpc"
	}

	res, err := resource.New(ctx,
		resource.WithFromEnv(),
		resource.WithTelemetrySDK(),
		resource.WithAttributes(
			attribute.String("service.name", cfg.Service),
			attribute.String("service.version", cfg.Version),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("telemetry resource: %w", err)
	}

	p := &Provider{Enabled: true}

	switch protocol {
	case "grpc", "http":
		redact.Logf("telemetry enabled (OpenTelemetry OTLP %s) endpoint=%s", protocol, cfg.Endpoint)
		tp, mp, err := otlpProviders(ctx, protocol, cfg.Endpoint, res)
		if err != nil {
			return nil, err
		}
		otel.SetTracerProvider(tp)
		otel.SetMeterProvider(mp)
		p.tracer = tp.Tracer(instrumentationName)
		p.meter = mp.Meter(instrumentationName)
		p.shutdown = append(p.shutdown, tp.Shutdown, mp.Shutdown)
	case "prometheus":
		redact.Logf("telemetry enabled (Prometheus pull) metrics served on /metrics")
		reg := prom.NewRegistry()
		exp, err := promexporter.New(promexporter.WithRegisterer(reg))
		if err != nil {
			return nil, fmt.Errorf("create prometheus exporter: %w", err)
		}
		mp := sdkmetric.NewMeterProvider(sdkmetric.WithResource(res), sdkmetric.WithReader(exp))
		p.meter = mp.Meter(instrumentationName)
		p.tracer = tracenoop.NewTracerProvider().Tracer("")
		p.metrics = promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
		p.shutdown = append(p.shutdown, mp.Shutdown)
	default:
		return nil, fmt.Errorf("telemetry: unknown protocol %q", cfg.Protocol)
	}

	p.initInstruments()
	return p, nil
}

func noopProvider() *Provider {
	p := &Provider{
		tracer: tracenoop.NewTracerProvider().Tracer(""),
		meter:  noop.NewMeterProvider().Meter(""),
	}
	p.initInstruments()
	return p
}

func otlpProviders(ctx context.Context, protocol, endpoint string, res *resource.Resource) (*sdktrace.TracerProvider, *sdkmetric.MeterProvider, error) {
	var (
		spanExp   sdktrace.SpanExporter
		metricExp sdkmetric.Exporter
		err       error
	)
	switch protocol {
	case "http":
		if spanExp, err = otlptracehttp.New(ctx, otlptracehttp.WithEndpoint(endpoint), otlptracehttp.WithInsecure()); err != nil {
			return nil, nil, fmt.Errorf("otlp http trace exporter: %w", err)
		}
		if metricExp, err = otlpmetrichttp.New(ctx, otlpmetrichttp.WithEndpoint(endpoint), otlpmetrichttp.WithInsecure()); err != nil {
			return nil, nil, fmt.Errorf("otlp http metric exporter: %w", err)
		}
	default:
		if spanExp, err = otlptracegrpc.New(ctx, otlptracegrpc.WithEndpoint(endpoint), otlptracegrpc.WithInsecure()); err != nil {
			return nil, nil, fmt.Errorf("otlp grpc trace exporter: %w", err)
		}
		if metricExp, err = otlpmetricgrpc.New(ctx, otlpmetricgrpc.WithEndpoint(endpoint), otlpmetricgrpc.WithInsecure()); err != nil {
			return nil, nil, fmt.Errorf("otlp grpc metric exporter: %w", err)
		}
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
		sdktrace.WithBatcher(spanExp),
		sdktrace.WithResource(res),
	)
	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(metricExp)),
	)
	return tp, mp, nil
}

func (p *Provider) initInstruments() {
	// Instrument errors are ignored; telemetry is best-effort.
	p.requestsCounter, _ = p.meter.Int64Counter("coach_requests_total")
	p.requestDuration, _ = p.meter.Float64Histogram("coach_request_duration_ms")
	p.insightsCounter, _ = p.meter.Int64Counter("coach_insights_total")
	p.triageCounter, _ = p.meter.Int64Counter("coach_triage_total")
}

// Tracer returns the tracer.
func (p *Provider) Tracer() trace.Tracer {
	if p == nil {
		return tracenoop.NewTracerProvider().Tracer("")
	}
	return p.tracer
}

// Meter returns the meter.
func (p *Provider) Meter() metric.Meter {
	if p == nil {
		return noop.NewMeterProvider().Meter("")
	}
	return p.meter
}

// MetricsHandler serves the Prometheus exposition. It is nil unless the
// protocol is prometheus.
func (p *Provider) MetricsHandler() http.Handler {
	if p == nil {
		return nil
	}
	return p.metrics
}

// ObserveQueue publishes the counters returned by fn as observable
// counters, read at collection time.
func (p *Provider) ObserveQueue(name string, fn func() (enqueued, dropped uint64)) error {
	if p == nil || fn == nil {
		return nil
	}
	enq, err := p.meter.Int64ObservableCounter(name + "_enqueued_total")
	if err != nil {
		return err
	}
	drop, err := p.meter.Int64ObservableCounter(name + "_dropped_total")
	if err != nil {
		return err
	}
	_, err = p.meter.RegisterCallback(func(_ context.Context, o metric.Observer) error {
		e, d := fn()
		o.ObserveInt64(enq, int64(e))
		o.ObserveInt64(drop, int64(d))
		return nil
	}, enq, drop)
	return err
}

// Shutdown flushes providers.
func (p *Provider) Shutdown(ctx context.Context) {
	if p == nil {
		return
	}
	for _, fn := range p.shutdown {
		if err := fn(ctx); err != nil {
			redact.Logf("telemetry shutdown: %v", err)
		}
	}
}

// RecordRequest counts one API call with safe labels.
func (p *Provider) RecordRequest(ctx context.Context, operation, projectID string, status int, durMs float64) {
	if p == nil {
		return
	}
	opts := metric.WithAttributes(SafeAttributes(map[string]interface{}{
		"coach.operation":  operation,
		"coach.project_id": projectID,
		"http.status_code": status,
	})...)
	p.requestsCounter.Add(ctx, 1, opts)
	p.requestDuration.Record(ctx, durMs, opts)
}

// RecordInsight counts one emitted insight by rule id and severity.
func (p *Provider) RecordInsight(ctx context.Context, id, severity string) {
	if p == nil {
		return
	}
	p.insightsCounter.Add(ctx, 1, metric.WithAttributes(SafeAttributes(map[string]interface{}{
		"coach.insight_id": id,
		"coach.severity":   severity,
	})...))
}

// RecordTriage counts one crisis assessment by level and pathway.
func (p *Provider) RecordTriage(ctx context.Context, level, pathway string) {
	if p == nil {
		return
	}
	p.triageCounter.Add(ctx, 1, metric.WithAttributes(SafeAttributes(map[string]interface{}{
		"coach.level":   level,
		"coach.pathway": pathway,
	})...))
}
