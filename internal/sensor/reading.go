// Package sensor resolves the CPU and GPU temperature of the running machine
// from the thermal-zone, hwmon and DRM trees of sysfs.
package sensor

import (
	"strconv"
)

// Sanity bounds in °C, both exclusive. Anything outside is sensor noise.
const (
	MinCelsius = 0
	MaxCelsius = 150
)

// Node is a sensor source: a directory relative to the sysfs root and the
// label it was selected by (driver name, zone type or card name).
type Node struct {
	Path  string // e.g. "class/hwmon/hwmon3"
	Label string // e.g. "k10temp"
}

// Reading is a temperature in whole degrees Celsius, or unknown.
type Reading struct {
	Celsius int
	Known   bool
	Source  Node // zero when unknown
}

// Unknown is the reading of a sensor that could not be resolved.
var Unknown = Reading{}

// FromMillidegrees converts a raw sysfs value to a Reading. Conversion floors
// rather than rounds, so 59999 reads as 59. Results outside the sanity
// bounds are unknown.
func FromMillidegrees(m int64, src Node) Reading {
	c := floorDiv(m, 1000)
	if c <= MinCelsius || c >= MaxCelsius {
		return Unknown
	}
	return Reading{Celsius: int(c), Known: true, Source: src}
}

// ParseMillidegrees parses the contents of a temp or temp*_input file.
func ParseMillidegrees(s string, src Node) Reading {
	m, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return Unknown
	}
	return FromMillidegrees(m, src)
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}
