package sensor

import (
	"iter"
	"path"
	"slices"
	"strings"

	"github.com/luki/termo/internal/sysfs"
)

// sysfs class directories, relative to the sysfs root.
const (
	thermalRoot = "class/thermal"
	hwmonRoot   = "class/hwmon"
	drmRoot     = "class/drm"
)

const (
	zonePrefix = "thermal_zone"
	cardPrefix = "card"
	// DRM connectors are named like card0-DP-1.
	connectorSep = "-"
)

// Resolver finds the CPU and GPU temperature on a sysfs tree. It keeps no
// state between calls: every call re-enumerates the tree from scratch.
type Resolver struct {
	fs *sysfs.FS
}

// NewResolver returns a Resolver reading from fs.
func NewResolver(fs *sysfs.FS) *Resolver {
	return &Resolver{fs: fs}
}

// first returns the first known reading produced by the sequence.
func first(readings iter.Seq[Reading]) Reading {
	for r := range readings {
		if r.Known {
			return r
		}
	}
	return Unknown
}

// thermalZones yields every thermal zone, labelled with its type.
// Zones without a readable type are skipped.
func (r *Resolver) thermalZones() iter.Seq[Node] {
	return func(yield func(Node) bool) {
		for name := range r.fs.Children(thermalRoot) {
			if !strings.HasPrefix(name, zonePrefix) {
				continue
			}
			dir := path.Join(thermalRoot, name)
			typ, ok := r.fs.Read(dir, "type")
			if !ok {
				continue
			}
			if !yield(Node{Path: dir, Label: typ}) {
				return
			}
		}
	}
}

// hwmonDevices yields the global hwmon groupings whose driver name is one
// of drivers. Groupings without a name file are skipped.
func (r *Resolver) hwmonDevices(drivers []string) iter.Seq[Node] {
	return func(yield func(Node) bool) {
		for name := range r.fs.Children(hwmonRoot) {
			dir := path.Join(hwmonRoot, name)
			driver, ok := r.fs.Read(dir, "name")
			if !ok || !slices.Contains(drivers, driver) {
				continue
			}
			if !yield(Node{Path: dir, Label: driver}) {
				return
			}
		}
	}
}

// cards yields the DRM display adapters, excluding connector entries.
func (r *Resolver) cards() iter.Seq[string] {
	return func(yield func(string) bool) {
		for name := range r.fs.Children(drmRoot) {
			if !IsCard(name) {
				continue
			}
			if !yield(name) {
				return
			}
		}
	}
}

// cardHwmons yields the hwmon groupings attached to each display adapter.
// The label is the grouping's driver name, or the card name if it has none.
func (r *Resolver) cardHwmons() iter.Seq[Node] {
	return func(yield func(Node) bool) {
		for card := range r.cards() {
			base := path.Join(drmRoot, card, "device", "hwmon")
			for name := range r.fs.Children(base) {
				dir := path.Join(base, name)
				label, ok := r.fs.Read(dir, "name")
				if !ok {
					label = card
				}
				if !yield(Node{Path: dir, Label: label}) {
					return
				}
			}
		}
	}
}

// inputs yields a reading for every temp*_input file of each node, in
// listing order.
func (r *Resolver) inputs(nodes iter.Seq[Node]) iter.Seq[Reading] {
	return func(yield func(Reading) bool) {
		for node := range nodes {
			for name := range r.fs.Children(node.Path) {
				if !IsTempInput(name) {
					continue
				}
				raw, ok := r.fs.Read(node.Path, name)
				if !ok {
					continue
				}
				if !yield(ParseMillidegrees(raw, node)) {
					return
				}
			}
		}
	}
}

// IsCard reports whether a /sys/class/drm entry is a display adapter
// rather than one of its connectors.
func IsCard(name string) bool {
	return strings.HasPrefix(name, cardPrefix) && !strings.Contains(name, connectorSep)
}

// IsTempInput reports whether an hwmon attribute is a temperature input.
func IsTempInput(name string) bool {
	return strings.HasPrefix(name, "temp") && strings.HasSuffix(name, "_input")
}
