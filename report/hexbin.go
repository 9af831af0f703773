// Copyright 2025 The PoliceMap Authors
// SPDX-License-Identifier: Apache-2.0

package report

import (
	"errors"
	"fmt"

	"github.com/policemap/policemap/spatial"
	"github.com/uber/h3-go/v4"
)

const maxHexResolution = 15

// ErrInvalidHexResolution is returned for resolutions outside 1..15.
var ErrInvalidHexResolution = errors.New("hex resolution must be between 1 and 15")

// HexBin is an H3 cell and the number of records inside it.
type HexBin struct {
	Cell     h3.Cell
	Count    int
	Boundary []spatial.Point
}

// HexBins groups points into H3 cells of the given resolution. Cells are
// returned in the order their first point was seen.
func HexBins(points []spatial.Point, resolution int) ([]*HexBin, error) {
	if resolution < 1 || resolution > maxHexResolution {
		return nil, fmt.Errorf("%w: %d", ErrInvalidHexResolution, resolution)
	}

	var bins []*HexBin

	byCell := make(map[h3.Cell]*HexBin)

	for _, p := range points {
		cell, err := h3.LatLngToCell(h3.NewLatLng(p.Lat, p.Lng), resolution)
		if err != nil {
			return nil, fmt.Errorf("error converting %s to h3 cell at res %d: %w", p, resolution, err)
		}

		bin, ok := byCell[cell]
		if !ok {
			boundary, err := h3.CellToBoundary(cell)
			if err != nil {
				return nil, fmt.Errorf("computing boundary of h3 cell %s: %w", cell, err)
			}

			bin = &HexBin{Cell: cell, Boundary: make([]spatial.Point, len(boundary))}
			for i, v := range boundary {
				bin.Boundary[i] = spatial.Point{Lat: v.Lat, Lng: v.Lng}
			}

			byCell[cell] = bin
			bins = append(bins, bin)
		}

		bin.Count++
	}

	return bins, nil
}
