package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/loverescue/coachcore/internal/audit"
	"github.com/loverescue/coachcore/internal/redact"
)

const maxEventBytes = 64 * 1024

func main() {
	addr := flag.String("addr", ":8099", "listen address for audit receiver")
	flag.Parse()

	srv := &http.Server{
		Addr:              *addr,
		Handler:           newMux(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	redact.Logf("audit receiver listening on %s (POST JSON to /audit)...", *addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		redact.Fatalf("receiver error: %v", err)
	}
}

func newMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/audit", handleAudit)
	mux.HandleFunc("/", handleAudit)
	return mux
}

func handleAudit(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	body, err := io.ReadAll(io.LimitReader(r.Body, maxEventBytes))
	_ = r.Body.Close()
	if err != nil {
		http.Error(w, "read error", http.StatusBadRequest)
		return
	}

	var ev audit.Event
	if err := json.Unmarshal(body, &ev); err != nil {
		redact.Logf("rejected audit payload: path=%s len=%d err=%v", r.URL.Path, len(body), err)
		http.Error(w, "invalid audit event", http.StatusBadRequest)
		return
	}

	redact.Logf("received audit event: op=%s project=%s request=%s latency_ms=%.2f\n%s",
		ev.Operation, ev.ProjectID, ev.RequestID, ev.LatencyMs, string(body))

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = fmt.Fprintln(w, `{"status":"ok"}`)
}
