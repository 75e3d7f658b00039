package audit

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/loverescue/coachcore/internal/redact"
)

// Sink consumes audit events.
type Sink interface {
	Name() string
	Deliver(context.Context, *Event) error
	Close(context.Context) error
}

type sinkCounters struct {
	success atomic.Uint64
	failure atomic.Uint64
}

// Metrics is a point-in-time copy of the emitter counters.
type Metrics struct {
	Enqueued    uint64
	Dropped     uint64
	SinkSuccess map[string]uint64
	SinkFailure map[string]uint64
}

// Emitter buffers audit events and delivers them to sinks from a fixed
// pool of workers. Emit never blocks: a full queue drops the event.
type Emitter struct {
	queue           chan *Event
	sinks           []Sink
	shutdownTimeout time.Duration

	enqueued atomic.Uint64
	dropped  atomic.Uint64
	perSink  map[string]*sinkCounters

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

// EmitterConfig controls worker and queue sizing.
type EmitterConfig struct {
	QueueSize       int
	Workers         int
	ShutdownTimeout time.Duration
}

// NewEmitter starts background workers delivering to sinks.
func NewEmitter(cfg EmitterConfig, sinks []Sink) *Emitter {
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 1000
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = 2 * time.Second
	}

	em := &Emitter{
		queue:           make(chan *Event, cfg.QueueSize),
		sinks:           sinks,
		shutdownTimeout: cfg.ShutdownTimeout,
		perSink:         make(map[string]*sinkCounters, len(sinks)),
	}
	for _, s := range sinks {
		em.perSink[s.Name()] = &sinkCounters{}
	}

	for i := 0; i < cfg.Workers; i++ {
		em.wg.Add(1)
		go em.worker()
	}
	return em
}

// Emit enqueues ev. A nil emitter accepts and discards everything, which is
// how audit level "off" is served.
func (e *Emitter) Emit(ev *Event) {
	if e == nil || ev == nil {
		return
	}

	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.closed {
		e.dropped.Add(1)
		return
	}

	select {
	case e.queue <- ev:
		e.enqueued.Add(1)
	default:
		e.dropped.Add(1)
	}
}

// Close stops intake, waits for the queue to drain up to the shutdown
// timeout, then closes every sink.
func (e *Emitter) Close(ctx context.Context) {
	if e == nil {
		return
	}
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return
	}
	e.closed = true
	close(e.queue)
	e.mu.Unlock()

	if ctx == nil {
		ctx = context.Background()
	}
	waitCtx, cancel := context.WithTimeout(ctx, e.shutdownTimeout)
	defer cancel()

	done := make(chan struct{})
	go func() {
		e.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-waitCtx.Done():
		redact.Logf("audit: shutdown timeout, %d events still queued", len(e.queue))
	}

	for _, s := range e.sinks {
		if err := s.Close(waitCtx); err != nil {
			redact.Logf("audit: sink %s close error: %v", s.Name(), err)
		}
	}
}

// Metrics copies the current counters.
func (e *Emitter) Metrics() Metrics {
	if e == nil {
		return Metrics{}
	}
	m := Metrics{
		Enqueued:    e.enqueued.Load(),
		Dropped:     e.dropped.Load(),
		SinkSuccess: make(map[string]uint64, len(e.perSink)),
		SinkFailure: make(map[string]uint64, len(e.perSink)),
	}
	for name, c := range e.perSink {
		m.SinkSuccess[name] = c.success.Load()
		m.SinkFailure[name] = c.failure.Load()
	}
	return m
}

func (e *Emitter) worker() {
	defer e.wg.Done()
	for ev := range e.queue {
		for _, s := range e.sinks {
			c := e.perSink[s.Name()]
			if err := s.Deliver(context.Background(), ev); err != nil {
				redact.Logf("audit: sink %s failed: %v", s.Name(), err)
				c.failure.Add(1)
				continue
			}
			c.success.Add(1)
		}
	}
}
