// Package report delivers finished session summaries to persistence without
// blocking the study loop.
package report

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/abhisek/flashiz/internal/session"
)

// Sink persists a session summary.
type Sink interface {
	SaveSession(ctx context.Context, sum session.Summary) error
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(ctx context.Context, sum session.Summary) error

func (f SinkFunc) SaveSession(ctx context.Context, sum session.Summary) error {
	return f(ctx, sum)
}

// Options tunes an Async reporter.
type Options struct {
	Buffer  int           // queued summaries before new ones are dropped; default 8
	Timeout time.Duration // per-save deadline; default 5s
	Logger  *slog.Logger
}

// Async implements session.Reporter by handing summaries to a single worker
// goroutine. Report never blocks: when the buffer is full the summary is
// dropped. Sink errors are logged and swallowed.
type Async struct {
	sink    Sink
	timeout time.Duration
	logger  *slog.Logger

	mu      sync.Mutex
	closed  bool
	pending chan session.Summary
	done    chan struct{}
}

var _ session.Reporter = (*Async)(nil)

// NewAsync starts the worker.
func NewAsync(sink Sink, opts Options) *Async {
	if opts.Buffer <= 0 {
		opts.Buffer = 8
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 5 * time.Second
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	a := &Async{
		sink:    sink,
		timeout: opts.Timeout,
		logger:  opts.Logger,
		pending: make(chan session.Summary, opts.Buffer),
		done:    make(chan struct{}),
	}
	go a.processLoop()
	return a
}

// Report queues sum for saving.
func (a *Async) Report(sum session.Summary) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed {
		a.logger.Warn("reporter closed, dropping session summary", "session", sum.SessionID)
		return
	}
	select {
	case a.pending <- sum:
	default:
		a.logger.Warn("report buffer full, dropping session summary", "session", sum.SessionID)
	}
}

func (a *Async) processLoop() {
	defer close(a.done)
	for sum := range a.pending {
		ctx, cancel := context.WithTimeout(context.Background(), a.timeout)
		if err := a.sink.SaveSession(ctx, sum); err != nil {
			a.logger.Warn("saving session failed", "session", sum.SessionID, "error", err)
		} else {
			a.logger.Debug("session saved", "session", sum.SessionID)
		}
		cancel()
	}
}

// Close stops accepting summaries, waits for queued ones to be saved, and
// returns. It is safe to call more than once.
func (a *Async) Close() {
	a.mu.Lock()
	if !a.closed {
		a.closed = true
		close(a.pending)
	}
	a.mu.Unlock()
	<-a.done
}
