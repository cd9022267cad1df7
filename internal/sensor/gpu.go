package sensor

// GPU returns the temperature of the first GPU with a usable sensor. Display
// adapters exposing their own hwmon grouping (amdgpu, i915) are tried before
// the globally registered nvidia and nouveau drivers.
func (r *Resolver) GPU() Reading {
	if rd := first(r.inputs(r.cardHwmons())); rd.Known {
		return rd
	}
	return first(r.inputs(r.hwmonDevices(gpuDrivers)))
}
