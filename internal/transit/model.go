// Package transit holds the stop/distance/bus data model and its derived
// per-bus geometry — the stop normalization and line metrics described in
// spec.md §3-4.1. Grounded on manager.h's BusManager, Location and Bus
// types, carried into idiomatic Go: explicit errors instead of assertions
// for referential lookups, sorted iteration everywhere a map is keyed by
// name.
package transit

import (
	"fmt"
	"sort"
)

// Location is a geographic point in degrees.
type Location struct {
	Latitude  float64
	Longitude float64
}

// Stop is a named point served by zero or more buses.
type Stop struct {
	Name     string
	Location Location
	buses    map[string]struct{}
}

// Buses returns the lexicographically sorted set of bus names serving this
// stop (spec.md §4.1 stop_info).
func (s *Stop) Buses() []string {
	out := make([]string, 0, len(s.buses))
	for name := range s.buses {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Bus is a named line: either a round trip as declared, or a linear line
// whose stored sequence is the mirrored round trip of the declared one
// (spec.md §3).
type Bus struct {
	Name        string
	Stops       []string // stored sequence, length 2n-1 when !IsRoundTrip
	IsRoundTrip bool

	RouteLength     float64
	GeoLength       float64
	UniqueStopCount int
	Curvature       float64
}

// Turnaround is stops[len/2], defined for every bus (spec.md §3); for a
// round-trip bus this is simply the midpoint of its declared loop.
func (b *Bus) Turnaround() string {
	return b.Stops[len(b.Stops)/2]
}

// ErrUnknownStop is the referential-integrity error spec.md §4.6 requires
// to be fatal at ingestion when a bus names a stop that was never added.
var ErrUnknownStop = fmt.Errorf("unknown stop")

// ErrDuplicateBus reports an add_bus call for a name already registered.
var ErrDuplicateBus = fmt.Errorf("duplicate bus")

// Model owns stops, buses and the asymmetric distance table — the sole
// mutator during the ingestion phase (spec.md §5).
type Model struct {
	stops     map[string]*Stop
	buses     map[string]*Bus
	distances map[stopPair]float64
}

type stopPair struct {
	from, to string
}

// NewModel returns an empty transit model ready for AddStop/AddBus calls.
func NewModel() *Model {
	return &Model{
		stops:     make(map[string]*Stop),
		buses:     make(map[string]*Bus),
		distances: make(map[stopPair]float64),
	}
}

// AddStop creates or updates a stop and its declared road distances,
// auto-filling the reverse direction of every declared pair that has no
// distance of its own yet — the symmetric-fill invariant of spec.md §3.
func (m *Model) AddStop(name string, lat, lon float64, distances map[string]float64) {
	s, ok := m.stops[name]
	if !ok {
		s = &Stop{Name: name, buses: make(map[string]struct{})}
		m.stops[name] = s
	}
	s.Location = Location{Latitude: lat, Longitude: lon}

	// Iterate the declared pairs in sorted order for determinism.
	others := make([]string, 0, len(distances))
	for other := range distances {
		others = append(others, other)
	}
	sort.Strings(others)
	for _, other := range others {
		meters := distances[other]
		m.distances[stopPair{from: name, to: other}] = meters
		if _, declared := m.distances[stopPair{from: other, to: name}]; !declared {
			m.distances[stopPair{from: other, to: name}] = meters
		}
	}
}

// Distance looks up the declared (or auto-filled) road distance from one
// stop to another. ok is false when neither direction was ever declared.
func (m *Model) Distance(from, to string) (float64, bool) {
	meters, ok := m.distances[stopPair{from: from, to: to}]
	return meters, ok
}

// Stop returns the stop with the given name, or nil if not found.
func (m *Model) Stop(name string) *Stop {
	return m.stops[name]
}

// Bus returns the bus with the given name, or nil if not found.
func (m *Model) Bus(name string) *Bus {
	return m.buses[name]
}

// StopNames returns every stop name in lexicographic order — the
// determinism anchor spec.md §4.2 assigns routing-graph vertex IDs from.
func (m *Model) StopNames() []string {
	out := make([]string, 0, len(m.stops))
	for name := range m.stops {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// BusNames returns every bus name in lexicographic order.
func (m *Model) BusNames() []string {
	out := make([]string, 0, len(m.buses))
	for name := range m.buses {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// AddBus registers a bus over an already-existing set of stops and
// computes its derived metrics immediately. For a non-round-trip bus the
// input "there" sequence is mirrored before storage, per spec.md §3.
func (m *Model) AddBus(name string, stopSequence []string, isRoundTrip bool) error {
	if _, exists := m.buses[name]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateBus, name)
	}
	for _, stopName := range stopSequence {
		if _, ok := m.stops[stopName]; !ok {
			return fmt.Errorf("%w: bus %q references stop %q", ErrUnknownStop, name, stopName)
		}
	}

	stored := stopSequence
	if !isRoundTrip {
		stored = mirror(stopSequence)
	}

	bus := &Bus{Name: name, Stops: stored, IsRoundTrip: isRoundTrip}
	m.computeDerived(bus)
	m.buses[name] = bus

	seen := make(map[string]struct{}, len(stored))
	for _, stopName := range stored {
		if _, already := seen[stopName]; already {
			continue
		}
		seen[stopName] = struct{}{}
		m.stops[stopName].buses[name] = struct{}{}
	}
	return nil
}

// mirror turns "A...Z" into "A...Z...A", spec.md §3's round-trip storage
// contract for non-round-trip lines.
func mirror(in []string) []string {
	out := make([]string, 0, 2*len(in)-1)
	out = append(out, in...)
	for i := len(in) - 2; i >= 0; i-- {
		out = append(out, in[i])
	}
	return out
}

// computeDerived fills RouteLength, GeoLength, UniqueStopCount and
// Curvature for a freshly stored bus sequence (spec.md §3). Missing road
// distances on a leg fall back to the geodesic distance for that leg
// (spec.md §4.6) and do not surface as an error.
func (m *Model) computeDerived(b *Bus) {
	unique := make(map[string]struct{}, len(b.Stops))
	for _, name := range b.Stops {
		unique[name] = struct{}{}
	}
	b.UniqueStopCount = len(unique)

	var routeLen, geoLen float64
	for i := 1; i < len(b.Stops); i++ {
		from, to := b.Stops[i-1], b.Stops[i]
		fromLoc, toLoc := m.stops[from].Location, m.stops[to].Location
		geo := GeoDistance(fromLoc.Latitude, fromLoc.Longitude, toLoc.Latitude, toLoc.Longitude)
		geoLen += geo

		if meters, ok := m.Distance(from, to); ok {
			routeLen += meters
		} else {
			routeLen += geo
		}
	}
	b.RouteLength = routeLen
	b.GeoLength = geoLen
	if geoLen > 0 {
		b.Curvature = routeLen / geoLen
	} else {
		b.Curvature = 1.0
	}
}
