// Copyright 2025 The PoliceMap Authors
// SPDX-License-Identifier: Apache-2.0

// Package spatial holds the geographic primitives used to build area queries
// and to lay out markers on a map.
package spatial

import (
	"strconv"

	"github.com/paulmach/orb"
)

const earthRadius = 6371e3 // meters, mean sphere of the search polygons

// Point represents a geographical point with latitude and longitude.
//
// Point is comparable, and two points are the same only when both coordinates
// are bit-for-bit equal floats.
type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// String returns the point as "lat,lng" using the shortest representation
// that round-trips, which is what the area queries expect.
func (p Point) String() string {
	return strconv.FormatFloat(p.Lat, 'f', -1, 64) + "," + strconv.FormatFloat(p.Lng, 'f', -1, 64)
}

// Orb returns the point in orb's (lng, lat) order.
func (p Point) Orb() orb.Point {
	return orb.Point{p.Lng, p.Lat}
}
