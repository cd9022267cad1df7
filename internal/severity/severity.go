// Package severity classifies temperature readings into display tiers.
package severity

import (
	"fmt"

	"github.com/luki/termo/internal/sensor"
)

// Thresholds in °C.
const (
	WarningAt  = 45
	CriticalAt = 60
)

// NotAvailable is displayed for an unknown reading.
const NotAvailable = "N/A"

// Level is a severity tier.
type Level int

const (
	Unknown Level = iota
	Normal
	Warning
	Critical
)

func (l Level) String() string {
	switch l {
	case Normal:
		return "normal"
	case Warning:
		return "warning"
	case Critical:
		return "critical"
	default:
		return "unknown"
	}
}

// Classify maps a reading to its severity.
func Classify(r sensor.Reading) Level {
	switch {
	case !r.Known:
		return Unknown
	case r.Celsius >= CriticalAt:
		return Critical
	case r.Celsius < WarningAt:
		return Normal
	default:
		return Warning
	}
}

// Display formats a reading as "42°C", or N/A when unknown.
func Display(r sensor.Reading) string {
	if !r.Known {
		return NotAvailable
	}
	return fmt.Sprintf("%d°C", r.Celsius)
}

// Status is a classified reading ready for display.
type Status struct {
	Reading  sensor.Reading
	Display  string
	Severity Level
}

// Describe classifies and formats r.
func Describe(r sensor.Reading) Status {
	return Status{
		Reading:  r,
		Display:  Display(r),
		Severity: Classify(r),
	}
}
