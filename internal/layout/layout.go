// Package layout implements the deterministic map projection described in
// spec.md §4.4: pivot detection, uniform interpolation along each bus, and
// ordered, non-colliding grid compression per axis. Grounded on manager.h's
// ComputeMapInfo/DistributeUniformly/GetIdsAfterCompress — the compression
// variant, per spec.md §9's resolved Open Question (the simpler
// fraction-based ComputeMapInfo in the source is not reimplemented).
package layout

import (
	"sort"

	"github.com/antigravity/transitql/internal/transit"
)

// Point is a pixel coordinate.
type Point struct {
	X, Y float64
}

// Settings are the subset of render_settings the layout needs.
type Settings struct {
	Width, Height float64
	Padding       float64
}

// Layout maps a stop name to a pixel coordinate.
type Layout map[string]Point

// latLon is a working (lat, lon) pair, mutated in place by interpolation
// before projection — mirrors manager.h applying DistributeUniformly to the
// (lat, lon) dictionary ahead of GetIdsAfterCompress.
type latLon struct {
	lat, lon float64
}

// Compute builds the full stop_name -> (x, y) map for every stop known to
// model, given the buses that traverse it. settings carries canvas size and
// padding (spec.md §4.4).
func Compute(model *transit.Model, settings Settings) Layout {
	stopNames := model.StopNames()
	busNames := model.BusNames()

	coords := make(map[string]latLon, len(stopNames))
	for _, name := range stopNames {
		loc := model.Stop(name).Location
		coords[name] = latLon{lat: loc.Latitude, lon: loc.Longitude}
	}

	pivots := pivotSet(model, stopNames, busNames)
	interpolate(model, busNames, pivots, coords)

	lonOf := func(name string) float64 { return coords[name].lon }
	latOf := func(name string) float64 { return coords[name].lat }
	neighbors := neighborSet(model, busNames)

	xByStop := compress(stopNames, lonOf, neighbors)
	yByStop := compress(stopNames, latOf, neighbors)

	xStep := axisStep(settings.Width, settings.Padding, xByStop)
	yStep := axisStep(settings.Height, settings.Padding, yByStop)

	out := make(Layout, len(stopNames))
	for _, name := range stopNames {
		x := settings.Padding + xStep*float64(xByStop[name])
		y := settings.Height - settings.Padding - yStep*float64(yByStop[name])
		out[name] = Point{X: x, Y: y}
	}
	return out
}

func axisStep(extent, padding float64, ranks map[string]int) float64 {
	maxRank := 0
	for _, r := range ranks {
		if r > maxRank {
			maxRank = r
		}
	}
	m := maxRank
	if m < 1 {
		m = 1
	}
	return (extent - 2*padding) / float64(m)
}

// neighborSet computes N: unordered pairs of stops consecutive on some bus
// in either direction (spec.md §4.4 "Neighbor set").
func neighborSet(model *transit.Model, busNames []string) map[string]map[string]struct{} {
	n := make(map[string]map[string]struct{})
	addEdge := func(a, b string) {
		if n[a] == nil {
			n[a] = make(map[string]struct{})
		}
		if n[b] == nil {
			n[b] = make(map[string]struct{})
		}
		n[a][b] = struct{}{}
		n[b][a] = struct{}{}
	}
	for _, busName := range busNames {
		seq := model.Bus(busName).Stops
		for i := 1; i < len(seq); i++ {
			addEdge(seq[i-1], seq[i])
		}
	}
	return n
}

// pivotSet computes P per spec.md §4.4's five rules.
func pivotSet(model *transit.Model, stopNames, busNames []string) map[string]struct{} {
	pivots := make(map[string]struct{})

	served := make(map[string]struct{})
	for _, busName := range busNames {
		bus := model.Bus(busName)
		seq := bus.Stops
		if len(seq) == 0 {
			continue
		}
		pivots[seq[0]] = struct{}{}
		pivots[seq[len(seq)-1]] = struct{}{}
		if !bus.IsRoundTrip {
			pivots[bus.Turnaround()] = struct{}{}
		}

		arrivals := make(map[string]int)
		for _, s := range seq {
			arrivals[s]++
			served[s] = struct{}{}
		}
		for s, count := range arrivals {
			if count > 2 {
				pivots[s] = struct{}{}
			}
		}
	}

	busCountByStop := make(map[string]map[string]struct{})
	for _, busName := range busNames {
		for _, s := range model.Bus(busName).Stops {
			if busCountByStop[s] == nil {
				busCountByStop[s] = make(map[string]struct{})
			}
			busCountByStop[s][busName] = struct{}{}
		}
	}
	for s, buses := range busCountByStop {
		if len(buses) >= 2 {
			pivots[s] = struct{}{}
		}
	}

	for _, name := range stopNames {
		if _, ok := served[name]; !ok {
			pivots[name] = struct{}{}
		}
	}

	return pivots
}

// interpolate overwrites the coordinates of non-pivot runs between
// consecutive pivots in each bus's stored sequence, per spec.md §4.4 Step 1.
func interpolate(model *transit.Model, busNames []string, pivots map[string]struct{}, coords map[string]latLon) {
	for _, busName := range busNames {
		seq := model.Bus(busName).Stops
		pivotPositions := []int{}
		for i, s := range seq {
			if _, ok := pivots[s]; ok {
				pivotPositions = append(pivotPositions, i)
			}
		}
		for k := 1; k < len(pivotPositions); k++ {
			l, r := pivotPositions[k-1], pivotPositions[k]
			if r-l < 2 {
				continue
			}
			left, right := coords[seq[l]], coords[seq[r]]
			for i := l + 1; i < r; i++ {
				frac := float64(i-l) / float64(r-l)
				coords[seq[i]] = latLon{
					lat: left.lat + frac*(right.lat-left.lat),
					lon: left.lon + frac*(right.lon-left.lon),
				}
			}
		}
	}
}

// compress performs spec.md §4.4 Step 2 for one axis: stable sort by π,
// then rank assignment id[i] = 1 + max(id[j] : j<i, neighbor), max ∅ = -1.
func compress(stopNames []string, projection func(string) float64, neighbors map[string]map[string]struct{}) map[string]int {
	order := make([]string, len(stopNames))
	copy(order, stopNames)
	sort.SliceStable(order, func(i, j int) bool {
		return projection(order[i]) < projection(order[j])
	})

	rank := make(map[string]int, len(order))
	for i, name := range order {
		best := -1
		for j := 0; j < i; j++ {
			other := order[j]
			if _, isNeighbor := neighbors[name][other]; !isNeighbor {
				continue
			}
			if rank[other] > best {
				best = rank[other]
			}
		}
		rank[name] = best + 1
	}
	return rank
}
