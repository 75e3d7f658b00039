package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"

	"github.com/loverescue/coachcore/internal/audit"
	"github.com/loverescue/coachcore/internal/auth"
	"github.com/loverescue/coachcore/internal/config"
	"github.com/loverescue/coachcore/internal/redact"
	"github.com/loverescue/coachcore/internal/telemetry"
)

const robotsTxt = "User-agent: *\nDisallow: /\n"

// Server wraps the HTTP server and its dependencies.
type Server struct {
	cfg   *config.Config
	mux   *http.ServeMux
	auth  *auth.Auth
	audit *audit.Emitter
	tel   *telemetry.Provider

	inFlight chan struct{}

	limMu    sync.Mutex
	limiters map[string]*rate.Limiter
}

// New creates a new Server. A nil emitter disables auditing and a nil
// telemetry provider records nothing.
func New(cfg *config.Config, authz *auth.Auth, emitter *audit.Emitter, tel *telemetry.Provider) *Server {
	mux := http.NewServeMux()

	maxInFlight := cfg.Server.MaxInFlightRequests
	if maxInFlight <= 0 {
		maxInFlight = 64
	}

	s := &Server{
		cfg:      cfg,
		mux:      mux,
		auth:     authz,
		audit:    emitter,
		tel:      tel,
		inFlight: make(chan struct{}, maxInFlight),
		limiters: make(map[string]*rate.Limiter),
	}

	// Routes
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /robots.txt", handleRobots)

	mux.HandleFunc("POST /v1/insights", s.api("insights", audit.OpInsights, s.handleInsights))
	mux.HandleFunc("POST /v1/action-plan", s.api("action_plan", audit.OpActionPlan, s.handleActionPlan))
	mux.HandleFunc("POST /v1/crisis/assess", s.api("crisis_assess", audit.OpCrisisAssess, s.handleCrisisAssess))
	mux.HandleFunc("GET /v1/crisis/interventions/{pathway}", s.api("intervention", audit.OpIntervention, s.handleIntervention))
	mux.HandleFunc("GET /v1/crisis/flooding-first-aid", s.api("flooding_first_aid", "", s.handleFloodingFirstAid))
	mux.HandleFunc("GET /v1/rituals", s.api("rituals", audit.OpRituals, s.handleRituals))

	if h := tel.MetricsHandler(); h != nil {
		mux.Handle("GET /metrics", h)
	}

	return s
}

// Handler exposes the routed handler, mainly for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Start serves on the configured address until ctx is cancelled, then shuts
// down gracefully within the configured shutdown timeout.
func (s *Server) Start(ctx context.Context) error {
	sc := s.cfg.Server
	srv := &http.Server{
		Addr:              sc.Addr,
		Handler:           s.mux,
		ReadHeaderTimeout: sc.ReadHeaderTimeout,
		ReadTimeout:       sc.ReadTimeout,
		WriteTimeout:      sc.WriteTimeout,
		IdleTimeout:       sc.IdleTimeout,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		redact.Logf("coachcore running on %s", sc.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	timeout := sc.ShutdownTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// --- Handlers ---

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	fmt.Fprintln(w, "ok")
}

func handleRobots(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write([]byte(robotsTxt))
}

// call is the per-request state an endpoint sees once the request has been
// admitted and authenticated.
type call struct {
	project   auth.Project
	requestID string
}

// endpoint produces the response body and the audit outcome for one call.
type endpoint func(r *http.Request, c *call) (any, audit.Outcome, error)

// api admits, authenticates and rate limits a request, then runs fn inside
// a span. Successful calls emit an audit event unless op is empty.
func (s *Server) api(name string, op audit.Operation, fn endpoint) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		started := time.Now()

		select {
		case s.inFlight <- struct{}{}:
			defer func() { <-s.inFlight }()
		default:
			s.reject(w, r, name, "", started, errTooBusy)
			return
		}

		token, ok := parseBearerToken(r.Header.Get("Authorization"))
		if !ok {
			s.reject(w, r, name, "", started, errMissingAuth)
			return
		}
		project, ok := s.auth.Lookup(token)
		if !ok {
			s.reject(w, r, name, "", started, errInvalidKey)
			return
		}
		if !s.allow(project.ID) {
			s.reject(w, r, name, project.ID, started, errRateLimited)
			return
		}

		if r.Body != nil && s.cfg.Server.MaxRequestBodyBytes > 0 {
			r.Body = http.MaxBytesReader(w, r.Body, s.cfg.Server.MaxRequestBodyBytes)
		}

		ctx, span := s.tel.Tracer().Start(r.Context(), "coach."+name,
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(telemetry.SafeAttributes(map[string]interface{}{
				"coach.operation":  name,
				"coach.project_id": project.ID,
			})...),
		)
		defer span.End()

		c := &call{project: project, requestID: audit.NewRequestID()}
		w.Header().Set("X-Request-Id", c.requestID)

		body, out, err := fn(r.WithContext(ctx), c)
		status := http.StatusOK
		if err != nil {
			status = writeAPIError(w, err)
			span.SetStatus(codes.Error, errorType(err))
		} else {
			writeJSON(w, status, body)
			if op != "" {
				s.audit.Emit(audit.NewEvent(op, project.ID, c.requestID, started, out))
			}
		}
		s.tel.RecordRequest(ctx, name, project.ID, status, sinceMs(started))
	}
}

func (s *Server) reject(w http.ResponseWriter, r *http.Request, name, projectID string, started time.Time, err error) {
	status := writeAPIError(w, err)
	s.tel.RecordRequest(r.Context(), name, projectID, status, sinceMs(started))
}

// allow applies the per-project token bucket. A non-positive rate disables
// limiting.
func (s *Server) allow(projectID string) bool {
	perSecond := s.cfg.Server.RateLimitPerSecond
	if perSecond <= 0 {
		return true
	}

	s.limMu.Lock()
	lim, ok := s.limiters[projectID]
	if !ok {
		burst := s.cfg.Server.RateLimitBurst
		if burst <= 0 {
			burst = 1
		}
		lim = rate.NewLimiter(rate.Limit(perSecond), burst)
		s.limiters[projectID] = lim
	}
	s.limMu.Unlock()

	return lim.Allow()
}

// parseBearerToken extracts the token from an Authorization: Bearer header.
func parseBearerToken(h string) (string, bool) {
	if h == "" {
		return "", false
	}
	parts := strings.Fields(h)
	if len(parts) != 2 {
		return "", false
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return parts[1], true
}

func sinceMs(t time.Time) float64 {
	return float64(time.Since(t)) / float64(time.Millisecond)
}
