// Package chart renders classified temperatures as colored status dots,
// labels and a severity legend.
package chart

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/luki/termo/internal/severity"
)

const (
	dot         = "●"
	placeholder = "---"
)

// Colors match the panel dot: green, orange and red.
var (
	colorNormal   = lipgloss.Color("#26C35E")
	colorWarning  = lipgloss.Color("#E05E26")
	colorCritical = lipgloss.Color("#E02626")
	colorDim      = lipgloss.Color("240")
)

// SeverityColor returns the color for a severity tier. Unknown shares the
// warning color.
func SeverityColor(l severity.Level) lipgloss.Color {
	switch l {
	case severity.Normal:
		return colorNormal
	case severity.Critical:
		return colorCritical
	default:
		return colorWarning
	}
}

// RenderDot renders a filled circle in the severity color.
func RenderDot(l severity.Level) string {
	return lipgloss.NewStyle().Foreground(SeverityColor(l)).Render(dot)
}

// RenderPendingDot renders the dot shown before the first result arrives.
func RenderPendingDot() string {
	return lipgloss.NewStyle().Foreground(colorDim).Render(dot)
}

// RenderLabel renders "CPU: 42°C". A nil status renders the placeholder.
func RenderLabel(name string, s *severity.Status) string {
	if s == nil {
		return name + ": " + placeholder
	}
	style := lipgloss.NewStyle()
	if s.Severity == severity.Critical {
		style = style.Bold(true)
	}
	return name + ": " + style.Render(s.Display)
}

// RenderStatus renders a dot followed by its label.
func RenderStatus(name string, s *severity.Status) string {
	if s == nil {
		return RenderPendingDot() + " " + RenderLabel(name, nil)
	}
	return RenderDot(s.Severity) + " " + RenderLabel(name, s)
}

// RenderLine renders "CPU: 42°C | GPU: 70°C" without dots, for plain output.
func RenderLine(cpu, gpu severity.Status) string {
	return RenderLabel("CPU", &cpu) + " | " + RenderLabel("GPU", &gpu)
}

// RenderLegend renders the color key for each tier.
func RenderLegend() string {
	dimS := lipgloss.NewStyle().Foreground(colorDim)
	parts := []string{
		RenderDot(severity.Normal) + dimS.Render(" <45°C"),
		RenderDot(severity.Warning) + dimS.Render(" 45-59°C / n/a"),
		RenderDot(severity.Critical) + dimS.Render(" ≥60°C"),
	}
	return strings.Join(parts, "  ")
}
