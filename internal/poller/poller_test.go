package poller

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/luki/termo/internal/sensor"
	"github.com/luki/termo/internal/severity"
)

type fakeResolver struct {
	cpu, gpu sensor.Reading
	calls    atomic.Int32
	release  chan struct{} // if non-nil, CPU blocks until closed
}

func (f *fakeResolver) CPU() sensor.Reading {
	f.calls.Add(1)
	if f.release != nil {
		<-f.release
	}
	return f.cpu
}

func (f *fakeResolver) GPU() sensor.Reading { return f.gpu }

func known(c int) sensor.Reading {
	return sensor.Reading{Celsius: c, Known: true}
}

// collector returns a deliver func that never blocks and the channel it feeds.
func collector() (func(Result), chan Result) {
	ch := make(chan Result, 100)
	return func(r Result) {
		select {
		case ch <- r:
		default:
		}
	}, ch
}

func waitResult(t *testing.T, ch <-chan Result) Result {
	t.Helper()
	select {
	case r := <-ch:
		return r
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for poll result")
		return Result{}
	}
}

func TestCycle(t *testing.T) {
	p := New(&fakeResolver{cpu: known(42), gpu: known(70)}, func(Result) {})
	res := p.Cycle()

	if res.CPU.Display != "42°C" || res.CPU.Severity != severity.Normal {
		t.Errorf("CPU = %+v, want 42°C normal", res.CPU)
	}
	if res.GPU.Display != "70°C" || res.GPU.Severity != severity.Critical {
		t.Errorf("GPU = %+v, want 70°C critical", res.GPU)
	}
	if res.At.IsZero() {
		t.Error("expected cycle timestamp")
	}
}

func TestCycleUnknown(t *testing.T) {
	p := New(&fakeResolver{}, func(Result) {})
	res := p.Cycle()
	if res.CPU.Display != "N/A" || res.GPU.Severity != severity.Unknown {
		t.Errorf("Cycle() = %+v, want N/A unknown", res)
	}
}

func TestStartPollsImmediately(t *testing.T) {
	deliver, ch := collector()
	p := New(&fakeResolver{cpu: known(50)}, deliver, WithInterval(time.Hour))
	p.Start(context.Background())
	defer p.Stop()

	res := waitResult(t, ch)
	if res.CPU.Severity != severity.Warning {
		t.Errorf("CPU severity = %v, want warning", res.CPU.Severity)
	}
}

func TestPollsPeriodically(t *testing.T) {
	deliver, ch := collector()
	p := New(&fakeResolver{cpu: known(40)}, deliver, WithInterval(10*time.Millisecond))
	p.Start(context.Background())
	defer p.Stop()

	for i := 0; i < 3; i++ {
		waitResult(t, ch)
	}
}

func TestStartTwiceIsNoop(t *testing.T) {
	f := &fakeResolver{}
	deliver, ch := collector()
	p := New(f, deliver, WithInterval(time.Hour))
	p.Start(context.Background())
	p.Start(context.Background())
	waitResult(t, ch)
	p.Stop()

	if n := f.calls.Load(); n != 1 {
		t.Errorf("resolver called %d times, want 1", n)
	}
}

func TestStopPreventsDelivery(t *testing.T) {
	var delivered atomic.Int32
	p := New(&fakeResolver{cpu: known(40)}, func(Result) { delivered.Add(1) },
		WithInterval(5*time.Millisecond))
	p.Start(context.Background())

	deadline := time.Now().Add(2 * time.Second)
	for delivered.Load() == 0 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	p.Stop()

	after := delivered.Load()
	if after == 0 {
		t.Fatal("no cycle delivered before Stop")
	}
	time.Sleep(50 * time.Millisecond)
	if got := delivered.Load(); got != after {
		t.Errorf("delivered %d results after Stop", got-after)
	}

	// Stop on a stopped poller is harmless.
	p.Stop()
}

func TestContextCancelStopsPolling(t *testing.T) {
	var delivered atomic.Int32
	ctx, cancel := context.WithCancel(context.Background())
	p := New(&fakeResolver{}, func(Result) { delivered.Add(1) }, WithInterval(5*time.Millisecond))
	p.Start(ctx)
	cancel()
	p.Stop()

	after := delivered.Load()
	time.Sleep(30 * time.Millisecond)
	if got := delivered.Load(); got != after {
		t.Errorf("delivered %d results after cancel", got-after)
	}
}

func TestTimeoutSkipsCycle(t *testing.T) {
	f := &fakeResolver{cpu: known(41), release: make(chan struct{})}
	deliver, ch := collector()
	p := New(f, deliver, WithInterval(10*time.Millisecond), WithTimeout(5*time.Millisecond))
	p.Start(context.Background())
	defer p.Stop()

	select {
	case r := <-ch:
		t.Fatalf("unexpected result while resolver is stalled: %+v", r)
	case <-time.After(60 * time.Millisecond):
	}
	if n := f.calls.Load(); n != 1 {
		t.Errorf("resolver called %d times while stalled, want 1", n)
	}

	close(f.release)
	res := waitResult(t, ch)
	if res.CPU.Display != "41°C" {
		t.Errorf("CPU = %q after release, want 41°C", res.CPU.Display)
	}
}

func TestStopDuringStalledCycle(t *testing.T) {
	f := &fakeResolver{release: make(chan struct{})}
	var delivered atomic.Int32
	p := New(f, func(Result) { delivered.Add(1) }, WithInterval(time.Hour), WithTimeout(time.Hour))
	p.Start(context.Background())

	for f.calls.Load() == 0 {
		time.Sleep(time.Millisecond)
	}
	stopped := make(chan struct{})
	go func() {
		p.Stop()
		close(stopped)
	}()
	select {
	case <-stopped:
	case <-time.After(2 * time.Second):
		t.Fatal("Stop blocked on an in-flight cycle")
	}

	close(f.release)
	time.Sleep(20 * time.Millisecond)
	if n := delivered.Load(); n != 0 {
		t.Errorf("in-flight cycle delivered %d results after Stop", n)
	}
}
