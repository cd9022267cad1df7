package monitor

import (
	"context"
	"fmt"
	"io"

	"github.com/luki/termo/internal/chart"
	"github.com/luki/termo/internal/poller"
)

// PrintOnce runs a single cycle and writes "CPU: 42°C | GPU: 70°C" to w.
func PrintOnce(w io.Writer, r poller.Resolver) error {
	res := poller.New(r, nil).Cycle()
	_, err := fmt.Fprintln(w, chart.RenderLine(res.CPU, res.GPU))
	return err
}

// RunPlain writes one line per cycle to w until ctx is cancelled.
func RunPlain(ctx context.Context, w io.Writer, r poller.Resolver, opts ...poller.Option) error {
	panel := NewPanel(r, opts...)
	results := panel.Start(ctx)
	defer panel.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case res := <-results:
			if _, err := fmt.Fprintln(w, chart.RenderLine(res.CPU, res.GPU)); err != nil {
				return fmt.Errorf("write reading: %w", err)
			}
		}
	}
}
