package webhook

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// CallEvent records metadata about a single webhook invocation.
type CallEvent struct {
	Endpoint   Endpoint
	LatencyMs  int64
	Attempts   int
	StatusCode int
	Success    bool
	ErrorCode  string
}

// FallbackEvent records that a local canned response replaced a remote one.
type FallbackEvent struct {
	Endpoint Endpoint
	Reason   string
}

// Observer receives events about webhook calls for logging and metrics.
type Observer interface {
	OnCallComplete(event CallEvent)
	OnFallback(event FallbackEvent)
}

// LogObserver writes webhook events to an io.Writer.
type LogObserver struct {
	mu sync.Mutex
	w  io.Writer
}

// NewLogObserver creates an Observer that logs events to w.
func NewLogObserver(w io.Writer) *LogObserver {
	return &LogObserver{w: w}
}

func (o *LogObserver) OnCallComplete(event CallEvent) {
	status := "ok"
	if !event.Success {
		status = "err:" + event.ErrorCode
	}
	o.write("webhook_call endpoint=%s attempts=%d http=%d latency_ms=%d status=%s",
		event.Endpoint, event.Attempts, event.StatusCode, event.LatencyMs, status)
}

func (o *LogObserver) OnFallback(event FallbackEvent) {
	o.write("webhook_fallback endpoint=%s reason=%q", event.Endpoint, event.Reason)
}

func (o *LogObserver) write(format string, args ...any) {
	o.mu.Lock()
	defer o.mu.Unlock()
	ts := time.Now().UTC().Format(time.RFC3339)
	fmt.Fprintf(o.w, "[%s] "+format+"\n", append([]any{ts}, args...)...)
}

// NoopObserver discards all events. Useful for tests.
type NoopObserver struct{}

func (NoopObserver) OnCallComplete(CallEvent) {}
func (NoopObserver) OnFallback(FallbackEvent) {}
