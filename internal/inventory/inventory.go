// Package inventory lists every temperature sensor the machine exposes, as a
// diagnostic for machines where CPU or GPU resolution comes up empty.
package inventory

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sort"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/shirou/gopsutil/v4/sensors"

	"github.com/luki/termo/internal/chart"
	"github.com/luki/termo/internal/sensor"
	"github.com/luki/termo/internal/severity"
)

// Entry is one sensor in the inventory.
type Entry struct {
	Key       string // e.g. "k10temp_tctl"
	Component string // e.g. "CPU (AMD)"
	Celsius   float64
	Status    severity.Status
}

// Collect reads every temperature sensor gopsutil knows about. Partial
// results are returned when some sensors fail to read.
func Collect(ctx context.Context) ([]Entry, error) {
	stats, err := sensors.TemperaturesWithContext(ctx)
	if err != nil {
		if len(stats) == 0 {
			return nil, fmt.Errorf("read temperatures: %w", err)
		}
		slog.Debug("inventory: some sensors could not be read", "err", err)
	}
	return fromStats(stats), nil
}

func fromStats(stats []sensors.TemperatureStat) []Entry {
	entries := make([]Entry, 0, len(stats))
	for _, s := range stats {
		milli := int64(math.Round(s.Temperature * 1000))
		entries = append(entries, Entry{
			Key:       s.SensorKey,
			Component: sensor.FriendlyName(s.SensorKey),
			Celsius:   s.Temperature,
			Status:    severity.Describe(sensor.FromMillidegrees(milli, sensor.Node{Label: s.SensorKey})),
		})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Key < entries[j].Key })
	return entries
}

var (
	colorBorder = lipgloss.Color("62")
	colorHeader = lipgloss.Color("51")
)

// Render formats entries as a table.
func Render(entries []Entry) string {
	if len(entries) == 0 {
		return "No temperature sensors found."
	}

	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{
			e.Key,
			e.Component,
			fmt.Sprintf("%.1f°C", e.Celsius),
			chart.RenderDot(e.Status.Severity) + " " + e.Status.Severity.String(),
		})
	}

	headerS := lipgloss.NewStyle().Bold(true).Foreground(colorHeader).Padding(0, 1)
	cellS := lipgloss.NewStyle().Padding(0, 1)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorBorder)).
		Headers("SENSOR", "COMPONENT", "TEMP", "STATUS").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerS
			}
			return cellS
		})
	return t.Render()
}
