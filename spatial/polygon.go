// Copyright 2025 The PoliceMap Authors
// SPDX-License-Identifier: Apache-2.0

package spatial

import (
	"errors"
	"math"
	"strings"

	"github.com/paulmach/orb"
)

// DefaultVertices is the number of vertices used to approximate a search circle.
const DefaultVertices = 36

// earthRadiusKm is the sphere radius used to turn a search radius into an angle.
const earthRadiusKm = earthRadius / 1000

// Errors returned by GeneratePolygon.
var (
	ErrInvalidRadius  = errors.New("radius must be a positive number of kilometers")
	ErrTooFewVertices = errors.New("a polygon needs at least 3 vertices")
	ErrPolarCenter    = errors.New("center latitude must be strictly between -90 and 90")
)

// Polygon is a closed ring of vertices. The last vertex connects back to the
// first one, so it isn't repeated.
type Polygon []Point

// GeneratePolygon approximates a circle of radiusKm around center with
// numPoints vertices, the first one due north of the center.
//
// Offsets are computed with a local equirectangular approximation: the
// longitude offset is scaled by 1/cos(center latitude). It is accurate for
// radii much smaller than the Earth and away from the poles, and undefined at
// the poles themselves.
func GeneratePolygon(center Point, radiusKm float64, numPoints int) (Polygon, error) {
	if !(radiusKm > 0) || math.IsInf(radiusKm, 1) {
		return nil, ErrInvalidRadius
	}

	if numPoints < 3 {
		return nil, ErrTooFewVertices
	}

	if !(math.Abs(center.Lat) < 90) {
		return nil, ErrPolarCenter
	}

	const deg = 180 / math.Pi

	angularRadius := radiusKm / earthRadiusKm
	cosLat := math.Cos(center.Lat / deg)

	polygon := make(Polygon, numPoints)

	for i := range polygon {
		bearing := float64(i) * (360 / float64(numPoints)) / deg

		polygon[i] = Point{
			Lat: center.Lat + angularRadius*math.Cos(bearing)*deg,
			Lng: center.Lng + angularRadius*math.Sin(bearing)*deg/cosLat,
		}
	}

	return polygon, nil
}

// QueryString renders the vertices as "lat,lng" pairs joined by colons.
func (p Polygon) QueryString() string {
	parts := make([]string, len(p))
	for i, v := range p {
		parts[i] = v.String()
	}

	return strings.Join(parts, ":")
}

// Ring returns the polygon as a closed orb ring in (lng, lat) order.
func (p Polygon) Ring() orb.Ring {
	if len(p) == 0 {
		return nil
	}

	ring := make(orb.Ring, 0, len(p)+1)
	for _, v := range p {
		ring = append(ring, v.Orb())
	}

	return append(ring, p[0].Orb())
}
