package sensor

import "strings"

// Thermal-zone types that identify a CPU package sensor.
var cpuZoneTypes = []string{
	"x86_pkg_temp", // Intel
	"Tctl",         // AMD
	"k10temp",      // AMD
}

// hwmon driver names accepted by each fallback phase.
var (
	cpuDrivers = []string{"k10temp", "coretemp"}
	gpuDrivers = []string{"nvidia", "nouveau"}
)

// chipIdentityMap maps driver and zone-type prefixes to friendly component names.
var chipIdentityMap = []struct {
	prefix string
	name   string
}{
	{"coretemp", "CPU (Intel)"},
	{"x86_pkg_temp", "CPU (Intel)"},
	{"k10temp", "CPU (AMD)"},
	{"tctl", "CPU (AMD)"},
	{"amdgpu", "GPU (AMD)"},
	{"radeon", "GPU (AMD)"},
	{"nouveau", "GPU (NVIDIA)"},
	{"nvidia", "GPU (NVIDIA)"},
	{"i915", "GPU (Intel)"},
	{"xe", "GPU (Intel)"},
	{"card", "GPU"},
}

// FriendlyName returns a human-readable component name for a node label.
func FriendlyName(label string) string {
	lower := strings.ToLower(label)
	for _, entry := range chipIdentityMap {
		if strings.HasPrefix(lower, entry.prefix) {
			return entry.name
		}
	}
	return "Sensor"
}
