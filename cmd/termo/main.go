// Command termo shows the CPU and GPU temperature of the local machine,
// refreshed every two seconds. It runs as a full-screen indicator on a
// terminal and prints one line per reading otherwise.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/mattn/go-isatty"

	"github.com/luki/termo/internal/inventory"
	"github.com/luki/termo/internal/monitor"
	"github.com/luki/termo/internal/sensor"
	"github.com/luki/termo/internal/sysfs"
)

func main() {
	var (
		root    = flag.String("sysfs", sysfs.DefaultRoot, "sysfs mount point to read sensors from")
		plain   = flag.Bool("plain", false, "print one line per reading instead of the full-screen indicator")
		once    = flag.Bool("once", false, "print a single reading and exit")
		list    = flag.Bool("list", false, "list every temperature sensor and exit")
		logFile = flag.String("log", "", "write logs to this file")
		debug   = flag.Bool("debug", false, "enable debug logging")
	)
	flag.Parse()

	interactive := isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	tui := interactive && !*plain && !*once && !*list

	closeLog, err := setupLogging(*logFile, *debug, tui)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	resolver := sensor.NewResolver(sysfs.NewOS(*root))
	slog.Debug("starting", "sysfs", *root, "tui", tui)

	switch {
	case *list:
		err = runList(ctx)
	case *once:
		err = monitor.PrintOnce(os.Stdout, resolver)
	case tui:
		err = monitor.Run(ctx, resolver)
	default:
		err = monitor.RunPlain(ctx, os.Stdout, resolver)
	}
	if err != nil {
		slog.Error("termo failed", "err", err)
		closeLog()
		os.Exit(1)
	}
}

func runList(ctx context.Context) error {
	entries, err := inventory.Collect(ctx)
	if err != nil {
		return err
	}
	fmt.Println(inventory.Render(entries))
	return nil
}

// setupLogging installs the default slog logger. The full-screen indicator
// owns the terminal, so without a log file its logs are discarded.
func setupLogging(path string, debug, tui bool) (func(), error) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}

	var (
		w       io.Writer = os.Stderr
		closeFn           = func() {}
	)
	switch {
	case path != "":
		f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		w = f
		closeFn = func() { f.Close() }
	case tui:
		slog.SetDefault(slog.New(slog.DiscardHandler))
		return closeFn, nil
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(w, opts)))
	return closeFn, nil
}
