// Package monitor implements the live CPU/GPU temperature indicator: a
// BubbleTea panel with severity-colored dots, and a plain line printer for
// non-interactive output.
package monitor

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shirou/gopsutil/v4/host"

	"github.com/luki/termo/internal/chart"
	"github.com/luki/termo/internal/poller"
	"github.com/luki/termo/internal/sensor"
	"github.com/luki/termo/internal/severity"
)

// ── Messages ─────────────────────────────────────────────────────────

type resultMsg poller.Result

// ── Model ────────────────────────────────────────────────────────────

// Model is the BubbleTea model for the indicator.
type Model struct {
	results  <-chan poller.Result
	host     string
	cpu      *severity.Status
	gpu      *severity.Status
	lastPoll time.Time
	width    int
	height   int
	paused   bool
}

// New creates the indicator model reading from results.
func New(results <-chan poller.Result, host string) Model {
	return Model{results: results, host: host}
}

// ── Commands ─────────────────────────────────────────────────────────

func waitForResult(ch <-chan poller.Result) tea.Cmd {
	return func() tea.Msg {
		res, ok := <-ch
		if !ok {
			return nil
		}
		return resultMsg(res)
	}
}

// ── Init / Update ────────────────────────────────────────────────────

func (m Model) Init() tea.Cmd {
	return waitForResult(m.results)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case " ", "p":
			m.paused = !m.paused
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case resultMsg:
		if !m.paused {
			cpu, gpu := msg.CPU, msg.GPU
			m.cpu, m.gpu = &cpu, &gpu
			m.lastPoll = msg.At
		}
		return m, waitForResult(m.results)
	}

	return m, nil
}

// ── Color palette ────────────────────────────────────────────────────

var (
	colorTitleBg  = lipgloss.Color("17")
	colorTitleFg  = lipgloss.Color("51")
	colorBorder   = lipgloss.Color("62")
	colorChipName = lipgloss.Color("147")
	colorPath     = lipgloss.Color("238")
	colorLabel    = lipgloss.Color("252")
	colorDim      = lipgloss.Color("240")
	colorFooterBg = lipgloss.Color("235")
	colorPaused   = lipgloss.Color("196")
)

// ── View ─────────────────────────────────────────────────────────────

func (m Model) View() string {
	contentWidth := m.width - 2
	if contentWidth < 40 {
		contentWidth = 40
	}

	sections := []string{
		m.renderTitleBar(contentWidth),
		m.renderReadings(contentWidth),
		m.renderFooter(contentWidth),
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderTitleBar(width int) string {
	logo := lipgloss.NewStyle().
		Bold(true).
		Foreground(colorTitleFg).
		Render("TERMO")

	dimS := lipgloss.NewStyle().Foreground(colorDim)
	var statusParts []string
	if m.host != "" {
		statusParts = append(statusParts, dimS.Render(m.host))
	}
	if !m.lastPoll.IsZero() {
		statusParts = append(statusParts, dimS.Render(m.lastPoll.Format("15:04:05")))
	}
	if m.paused {
		statusParts = append(statusParts, lipgloss.NewStyle().
			Foreground(colorPaused).
			Bold(true).
			Render("PAUSED"))
	}

	sep := dimS.Render(" │ ")
	right := strings.Join(statusParts, sep)

	gap := width - lipgloss.Width(logo) - lipgloss.Width(right) - 4
	if gap < 1 {
		gap = 1
	}

	return lipgloss.NewStyle().
		Background(colorTitleBg).
		Width(width).
		Padding(0, 1).
		Render(logo + strings.Repeat(" ", gap) + right)
}

func (m Model) renderReadings(width int) string {
	rows := []string{
		renderRow("CPU", m.cpu),
		renderRow("GPU", m.gpu),
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorBorder).
		Padding(0, 1).
		Width(width).
		Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

const statusWidth = 16

func renderRow(name string, s *severity.Status) string {
	status := lipgloss.NewStyle().
		Foreground(colorLabel).
		Width(statusWidth).
		Render(chart.RenderStatus(name, s))
	return status + renderSource(s)
}

// renderSource names the sensor a reading came from.
func renderSource(s *severity.Status) string {
	if s == nil || !s.Reading.Known {
		return ""
	}
	src := s.Reading.Source
	friendly := lipgloss.NewStyle().
		Bold(true).
		Foreground(colorChipName).
		Render(sensor.FriendlyName(src.Label))
	detail := lipgloss.NewStyle().
		Foreground(colorPath).
		Render(src.Label + "  " + src.Path)
	return friendly + "  " + detail
}

func (m Model) renderFooter(width int) string {
	dimS := lipgloss.NewStyle().Foreground(colorDim)
	labelS := lipgloss.NewStyle().Foreground(colorLabel)

	legend := chart.RenderLegend()
	keys := dimS.Render("q") + labelS.Render(":quit") +
		dimS.Render("  p") + labelS.Render(":pause")

	gap := width - lipgloss.Width(legend) - lipgloss.Width(keys) - 4
	if gap < 1 {
		gap = 1
	}

	return lipgloss.NewStyle().
		Background(colorFooterBg).
		Width(width).
		Padding(0, 1).
		Render(legend + strings.Repeat(" ", gap) + keys)
}

// ── Entry points ─────────────────────────────────────────────────────

// Run shows the indicator until the user quits or ctx is cancelled.
func Run(ctx context.Context, r poller.Resolver, opts ...poller.Option) error {
	panel := NewPanel(r, opts...)
	results := panel.Start(ctx)
	defer panel.Stop()

	p := tea.NewProgram(
		New(results, HostLabel(ctx)),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)
	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("run indicator: %w", err)
	}
	return nil
}

// HostLabel describes the machine for the title bar, e.g. "box · 6.8.0".
func HostLabel(ctx context.Context) string {
	info, err := host.InfoWithContext(ctx)
	if err != nil || info.Hostname == "" {
		name, _ := os.Hostname()
		return name
	}
	if info.KernelVersion == "" {
		return info.Hostname
	}
	return info.Hostname + " · " + info.KernelVersion
}
