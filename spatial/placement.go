// Copyright 2025 The PoliceMap Authors
// SPDX-License-Identifier: Apache-2.0

package spatial

import "math"

// DefaultNudgeStep is the longitude increment, in degrees, between markers
// that share a location. It's about 5m at mid latitudes.
const DefaultNudgeStep = 0.00005

// Bounds of a usable nudge step, in degrees. Below the floor the markers
// overlap on any zoom level, above the ceiling they leave the area.
const (
	MinNudgeStep = 1e-9
	MaxNudgeStep = 1.0
)

// ValidNudgeStep reports whether step is within [MinNudgeStep, MaxNudgeStep].
func ValidNudgeStep(step float64) bool {
	return step >= MinNudgeStep && step <= MaxNudgeStep
}

// MarkerPlacer hands out marker positions so that no two markers of the same
// map land on the same coordinate. Coincident points are fanned out east
// along their parallel, in the order they are resolved.
//
// Coordinates are compared for exact equality: points that differ only in
// the last bits are treated as distinct and left alone.
//
// A MarkerPlacer is meant to live for a single map and isn't safe for
// concurrent use.
type MarkerPlacer struct {
	step     float64
	occupied map[Point]struct{}
}

// NewMarkerPlacer creates a placer that nudges by step degrees of longitude.
// A step outside [MinNudgeStep, MaxNudgeStep] falls back to DefaultNudgeStep.
func NewMarkerPlacer(step float64) *MarkerPlacer {
	if !ValidNudgeStep(step) {
		step = DefaultNudgeStep
	}

	return &MarkerPlacer{
		step:     step,
		occupied: make(map[Point]struct{}),
	}
}

// Resolve returns the position where a marker for p should be drawn, and
// reserves it. Points with a non-finite longitude can't be told apart and are
// returned unchanged.
func (m *MarkerPlacer) Resolve(p Point) Point {
	if math.IsInf(p.Lng, 0) || math.IsNaN(p.Lng) {
		return p
	}

	for {
		if _, taken := m.occupied[p]; !taken {
			break
		}

		// Far from the origin the step can be lost to rounding, take the
		// next representable longitude instead.
		next := p.Lng + m.step
		if next <= p.Lng {
			next = math.Nextafter(p.Lng, math.Inf(1))
		}

		p.Lng = next
	}

	m.occupied[p] = struct{}{}

	return p
}

// Len returns the number of positions handed out so far.
func (m *MarkerPlacer) Len() int {
	return len(m.occupied)
}
