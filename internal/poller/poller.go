// Package poller drives temperature resolution on a fixed schedule and hands
// each classified result to a delivery function.
package poller

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/luki/termo/internal/sensor"
	"github.com/luki/termo/internal/severity"
)

const (
	// Interval is the time between the starts of two cycles.
	Interval = 2 * time.Second
	// CycleTimeout bounds a single cycle. A cycle that takes longer is
	// skipped and the previous result stays on screen.
	CycleTimeout = time.Second
)

// Resolver reads the current CPU and GPU temperatures.
type Resolver interface {
	CPU() sensor.Reading
	GPU() sensor.Reading
}

// Result is the outcome of one poll cycle.
type Result struct {
	CPU severity.Status
	GPU severity.Status
	At  time.Time
}

// Poller runs a poll cycle immediately on Start and then every interval
// until Stop.
type Poller struct {
	resolver Resolver
	deliver  func(Result)
	interval time.Duration
	timeout  time.Duration

	// busy is set while a cycle's worker goroutine is running, including
	// one that has already timed out.
	busy atomic.Bool

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// Option configures a Poller.
type Option func(*Poller)

// WithInterval overrides the poll interval.
func WithInterval(d time.Duration) Option {
	return func(p *Poller) { p.interval = d }
}

// WithTimeout overrides the per-cycle timeout.
func WithTimeout(d time.Duration) Option {
	return func(p *Poller) { p.timeout = d }
}

// New returns a stopped Poller that reads from r and passes every result to
// deliver. deliver is called from the poller's goroutine and must not call
// Stop.
func New(r Resolver, deliver func(Result), opts ...Option) *Poller {
	p := &Poller{
		resolver: r,
		deliver:  deliver,
		interval: Interval,
		timeout:  CycleTimeout,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Cycle resolves and classifies both temperatures synchronously.
func (p *Poller) Cycle() Result {
	return Result{
		CPU: severity.Describe(p.resolver.CPU()),
		GPU: severity.Describe(p.resolver.GPU()),
		At:  time.Now(),
	}
}

// Start begins polling. It is a no-op if the poller is already running.
// Polling ends when ctx is cancelled or Stop is called.
func (p *Poller) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cancel != nil {
		return
	}
	ctx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.done = make(chan struct{})
	go p.run(ctx, p.done)
}

// Stop ends polling and waits for the poll goroutine to exit. Once Stop
// returns, deliver will not be called again. A cycle still reading sysfs
// is left to finish and its result is dropped.
func (p *Poller) Stop() {
	p.mu.Lock()
	cancel, done := p.cancel, p.done
	p.cancel, p.done = nil, nil
	p.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

func (p *Poller) run(ctx context.Context, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.poll(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.poll(ctx)
		}
	}
}

func (p *Poller) poll(ctx context.Context) {
	if !p.busy.CompareAndSwap(false, true) {
		slog.Debug("poller: previous cycle still running, skipping")
		return
	}

	results := make(chan Result, 1)
	go func() {
		defer p.busy.Store(false)
		results <- p.Cycle()
	}()

	timer := time.NewTimer(p.timeout)
	defer timer.Stop()

	select {
	case res := <-results:
		if ctx.Err() != nil {
			return
		}
		slog.Debug("poller: cycle complete",
			"cpu", res.CPU.Display, "cpu_source", res.CPU.Reading.Source.Path,
			"gpu", res.GPU.Display, "gpu_source", res.GPU.Reading.Source.Path)
		p.deliver(res)
	case <-timer.C:
		slog.Debug("poller: cycle timed out, skipping", "timeout", p.timeout)
	case <-ctx.Done():
	}
}
