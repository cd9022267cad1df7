package sensor

import (
	"iter"
	"path"
	"slices"
)

// CPU returns the CPU package temperature. Thermal zones typed as a CPU
// package sensor are tried first; the k10temp and coretemp hwmon drivers
// are only consulted when no such zone yields a valid value.
func (r *Resolver) CPU() Reading {
	if rd := first(r.cpuZones()); rd.Known {
		return rd
	}
	return first(r.inputs(r.hwmonDevices(cpuDrivers)))
}

func (r *Resolver) cpuZones() iter.Seq[Reading] {
	return func(yield func(Reading) bool) {
		for zone := range r.thermalZones() {
			if !slices.Contains(cpuZoneTypes, zone.Label) {
				continue
			}
			raw, ok := r.fs.Read(path.Join(zone.Path, "temp"))
			if !ok {
				continue
			}
			if !yield(ParseMillidegrees(raw, zone)) {
				return
			}
		}
	}
}
