package monitor

import (
	"context"

	"github.com/luki/termo/internal/poller"
)

// Panel owns the poller feeding a display. Results are handed over through
// a one-slot channel; a result nobody has picked up yet is replaced by the
// newer one, so a slow display always sees the latest reading.
type Panel struct {
	poller  *poller.Poller
	results chan poller.Result
}

// NewPanel returns a stopped Panel polling r.
func NewPanel(r poller.Resolver, opts ...poller.Option) *Panel {
	p := &Panel{results: make(chan poller.Result, 1)}
	p.poller = poller.New(r, p.push, opts...)
	return p
}

// push is only called from the poller goroutine, so it is the sole sender.
func (p *Panel) push(res poller.Result) {
	for {
		select {
		case p.results <- res:
			return
		default:
		}
		select {
		case <-p.results:
		default:
		}
	}
}

// Start begins polling and returns the channel results arrive on.
func (p *Panel) Start(ctx context.Context) <-chan poller.Result {
	p.poller.Start(ctx)
	return p.results
}

// Stop stops polling. No result is pushed after Stop returns.
func (p *Panel) Stop() {
	p.poller.Stop()
}
