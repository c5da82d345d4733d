package compute

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	json "github.com/goccy/go-json"

	"github.com/SandeshR98/scaleview/pkg/catalog"
	"github.com/SandeshR98/scaleview/pkg/engine"
	"github.com/SandeshR98/scaleview/pkg/metrics"
	"github.com/SandeshR98/scaleview/pkg/model"
)

// LogLevel controls worker log verbosity.
type LogLevel int

const (
	LogLevelNone LogLevel = iota
	LogLevelError
	LogLevelWarn
	LogLevelInfo
	LogLevelDebug
)

func (l LogLevel) String() string {
	switch l {
	case LogLevelError:
		return "error"
	case LogLevelWarn:
		return "warn"
	case LogLevelInfo:
		return "info"
	case LogLevelDebug:
		return "debug"
	default:
		return "none"
	}
}

func parseLogLevel(raw string) LogLevel {
	switch strings.TrimSpace(strings.ToLower(raw)) {
	case "error", "err", "1":
		return LogLevelError
	case "warn", "warning", "2":
		return LogLevelWarn
	case "info", "3":
		return LogLevelInfo
	case "debug", "4":
		return LogLevelDebug
	default:
		return LogLevelNone
	}
}

// Config configures the Worker.
type Config struct {
	// RequestBuffer sizes the dispatch queue (default 16).
	RequestBuffer int
	// MessageBuffer sizes the worker -> UI message channel (default 8).
	MessageBuffer int
}

// Worker is the compute channel: a single goroutine that executes requests
// one at a time, sequentially, to completion. It has no internal
// concurrency beyond catalog generation's bounded sharding, and shares no
// mutable memory with the UI; results cross over as messages, with the
// filter index buffer handed over by move.
type Worker struct {
	reqCh chan Request
	msgCh chan tea.Msg

	// cache is owned exclusively by the worker goroutine once started.
	cache []model.Product

	mu      sync.Mutex
	started bool
	stopped bool

	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}

	logLevel LogLevel
	trace    *os.File
}

// NewWorker creates a compute worker. Call Start before dispatching.
func NewWorker(cfg Config) *Worker {
	if cfg.RequestBuffer <= 0 {
		cfg.RequestBuffer = 16
	}
	if cfg.MessageBuffer <= 0 {
		cfg.MessageBuffer = 8
	}
	ctx, cancel := context.WithCancel(context.Background())
	w := &Worker{
		reqCh:    make(chan Request, cfg.RequestBuffer),
		msgCh:    make(chan tea.Msg, cfg.MessageBuffer),
		ctx:      ctx,
		cancel:   cancel,
		done:     make(chan struct{}),
		logLevel: parseLogLevel(os.Getenv("SV_WORKER_LOG_LEVEL")),
	}
	if path := os.Getenv("SV_WORKER_TRACE"); path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			log.Printf("compute worker: cannot open trace file %s: %v", path, err)
		} else {
			w.trace = f
		}
	}
	return w
}

// Start launches the worker goroutine. Idempotent; returns an error after
// Stop.
func (w *Worker) Start() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stopped {
		return fmt.Errorf("compute worker has been stopped")
	}
	if w.started {
		return nil
	}
	w.started = true
	go w.loop()
	w.logEvent(LogLevelInfo, "worker_start", nil)
	return nil
}

// Stop terminates the worker. A request already executing runs to
// completion; queued requests are dropped. Idempotent.
func (w *Worker) Stop() {
	w.mu.Lock()
	if w.stopped {
		w.mu.Unlock()
		return
	}
	w.stopped = true
	started := w.started
	w.mu.Unlock()

	w.cancel()
	if started {
		<-w.done
	}
	w.logEvent(LogLevelInfo, "worker_stop", nil)
	if w.trace != nil {
		_ = w.trace.Close()
	}
}

// Messages returns the channel of worker responses. The channel is owned
// by the worker and never closed; use Done() to stop waiting.
func (w *Worker) Messages() <-chan tea.Msg {
	return w.msgCh
}

// Done is closed when the worker has fully stopped.
func (w *Worker) Done() <-chan struct{} {
	return w.done
}

// Dispatch enqueues a request. It returns an error if the worker is
// stopped or the queue is saturated; callers fall back to inline
// execution in that case rather than blocking the UI goroutine.
func (w *Worker) Dispatch(req Request) error {
	if w.ctx.Err() != nil {
		return fmt.Errorf("compute worker is not running")
	}
	select {
	case w.reqCh <- req:
		w.logEvent(LogLevelDebug, "dispatch", map[string]any{
			"phase": req.phase(),
			"seq":   req.seq(),
		})
		return nil
	default:
		return fmt.Errorf("compute queue full")
	}
}

func (w *Worker) loop() {
	defer close(w.done)
	for {
		select {
		case <-w.ctx.Done():
			return
		case req := <-w.reqCh:
			w.process(req)
		}
	}
}

// process executes one request to completion and emits exactly one
// response message. A panic inside a request becomes a FailedMsg so the UI
// never waits on a reply that will not come.
func (w *Worker) process(req Request) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			werr := WorkerError{Phase: req.phase(), Cause: fmt.Errorf("panic: %v", r), Time: time.Now()}
			w.logEvent(LogLevelError, "request_panic", map[string]any{
				"phase": req.phase(),
				"seq":   req.seq(),
				"error": werr.Error(),
			})
			w.send(FailedMsg{Seq: req.seq(), Phase: req.phase(), Reason: werr.Error()})
		}
	}()

	switch r := req.(type) {
	case GenerateRequest:
		products, err := catalog.Generate(w.ctx, catalog.GenerateOptions{Count: r.Count, Seed: r.Seed})
		if err != nil {
			w.send(FailedMsg{Seq: r.Seq, Phase: r.phase(), Reason: err.Error()})
			return
		}
		// Cache an independently-owned duplicate; the generated slice
		// itself moves to the UI.
		w.cache = append([]model.Product(nil), products...)
		elapsed := time.Since(start)
		metrics.GenerateLatency.Record(elapsed)
		w.logEvent(LogLevelInfo, "generated", map[string]any{
			"count": len(products), "seq": r.Seq, "elapsed_ms": elapsed.Milliseconds(),
		})
		w.send(GeneratedMsg{Products: products, Seq: r.Seq, Elapsed: elapsed})

	case PrimeRequest:
		w.cache = append([]model.Product(nil), r.Products...)
		w.logEvent(LogLevelInfo, "primed", map[string]any{"count": len(r.Products), "seq": r.Seq})
		w.send(PrimedMsg{Count: len(r.Products), Seq: r.Seq})

	case FilterRequest:
		indices := engine.Filter(w.cache, r.Query)
		elapsed := time.Since(start)
		metrics.FilterLatency.Record(elapsed)
		w.logEvent(LogLevelDebug, "filtered", map[string]any{
			"query": r.Query.String(), "matches": len(indices), "seq": r.Seq,
			"elapsed_ms": elapsed.Milliseconds(),
		})
		// The index buffer moves with the message: no reference is
		// retained here, so the receiver owns it outright.
		w.send(FilteredMsg{Indices: indices, Seq: r.Seq, Elapsed: elapsed})

	case SortRequest:
		sorted := engine.Sort(w.cache, r.Spec)
		elapsed := time.Since(start)
		metrics.SortLatency.Record(elapsed)
		w.logEvent(LogLevelDebug, "sorted", map[string]any{
			"spec": r.Spec.String(), "seq": r.Seq, "elapsed_ms": elapsed.Milliseconds(),
		})
		w.send(SortedMsg{Products: sorted, Seq: r.Seq, Elapsed: elapsed})

	default:
		w.send(FailedMsg{Seq: req.seq(), Phase: req.phase(),
			Reason: fmt.Sprintf("unknown request type %T", req)})
	}
}

// send delivers a message unless the worker is shutting down. The message
// channel is buffered; if the UI has fallen far enough behind to fill it,
// the worker waits rather than dropping a response, since every dispatch
// expects exactly one reply.
func (w *Worker) send(msg tea.Msg) {
	select {
	case w.msgCh <- msg:
	case <-w.ctx.Done():
	}
}

// logEvent emits a structured JSON event. Stderr output is level-gated;
// the trace file, when configured, receives every event.
func (w *Worker) logEvent(level LogLevel, event string, fields map[string]any) {
	gated := w.logLevel == LogLevelNone || level > w.logLevel
	if gated && w.trace == nil {
		return
	}
	payload := map[string]any{
		"ts":        time.Now().UTC().Format(time.RFC3339Nano),
		"level":     level.String(),
		"component": "compute_worker",
		"event":     event,
	}
	for k, v := range fields {
		payload[k] = v
	}
	b, err := json.Marshal(payload)
	if err != nil {
		log.Printf("compute worker: failed to marshal log event %s: %v", event, err)
		return
	}
	if w.trace != nil {
		_, _ = w.trace.Write(append(b, '\n'))
	}
	if !gated {
		log.Printf("%s", b)
	}
}
