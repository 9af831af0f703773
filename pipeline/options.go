// Copyright 2025 The PoliceMap Authors
// SPDX-License-Identifier: Apache-2.0

package pipeline

import (
	"errors"
	"fmt"
	"math"

	"github.com/policemap/policemap/police"
	"github.com/policemap/policemap/report"
	"github.com/policemap/policemap/spatial"
)

// Output files used when none are configured.
const (
	DefaultStopsMapFile   = "map_stopandsearch.html"
	DefaultStopsChartFile = "graphs_stopandsearch.html"
	DefaultCrimeMapFile   = "crimedata.html"
)

// Options configures a pipeline run.
type Options struct {
	// Center of the search area
	Center spatial.Point

	// RadiusKm is the radius of the search area
	RadiusKm float64

	// Vertices of the polygon approximating the search area
	Vertices int

	// Month to query, formatted as YYYY-MM
	Month string

	// NudgeStep is the longitude offset between coincident markers, 0 for the
	// default
	NudgeStep float64

	// Zoom is the initial zoom level of the map
	Zoom int

	// MapFile is where the map document is written
	MapFile string

	// ChartFile is where the chart document is written. Stop and search only.
	ChartFile string

	// GeoJSONFile, when set, receives the map features as GeoJSON
	GeoJSONFile string

	// Category of street crimes, police.AllCrime when empty
	Category string

	// HexResolution enables an H3 density layer at that resolution, 0 disables it
	HexResolution int
}

// DefaultOptions returns the options of a search 10km around Heathrow.
func DefaultOptions() *Options {
	return &Options{
		Center:    spatial.Point{Lat: 51.47130793789167, Lng: -0.46068137983214263},
		RadiusKm:  10,
		Vertices:  spatial.DefaultVertices,
		Month:     "2025-02",
		NudgeStep: spatial.DefaultNudgeStep,
		Zoom:      report.DefaultZoom,
		Category:  police.AllCrime,
	}
}

// Validate checks the options shared by both pipelines.
func (o *Options) Validate() error {
	var errs []error

	if math.IsNaN(o.Center.Lat) || o.Center.Lat <= -90 || o.Center.Lat >= 90 {
		errs = append(errs, fmt.Errorf("center latitude must be in (-90, 90), got %v", o.Center.Lat))
	}

	if math.IsNaN(o.Center.Lng) || o.Center.Lng < -180 || o.Center.Lng > 180 {
		errs = append(errs, fmt.Errorf("center longitude must be in [-180, 180], got %v", o.Center.Lng))
	}

	if !(o.RadiusKm > 0) {
		errs = append(errs, fmt.Errorf("radius must be positive, got %v", o.RadiusKm))
	}

	if o.Vertices < 3 {
		errs = append(errs, fmt.Errorf("vertices must be at least 3, got %d", o.Vertices))
	}

	if err := police.ValidateMonth(o.Month); err != nil {
		errs = append(errs, err)
	}

	if o.NudgeStep != 0 && !spatial.ValidNudgeStep(o.NudgeStep) {
		errs = append(errs, fmt.Errorf("nudge step must be between %g and %g degrees, got %v",
			spatial.MinNudgeStep, spatial.MaxNudgeStep, o.NudgeStep))
	}

	if o.HexResolution != 0 && (o.HexResolution < 1 || o.HexResolution > 15) {
		errs = append(errs, fmt.Errorf("%w: %d", report.ErrInvalidHexResolution, o.HexResolution))
	}

	if o.MapFile == "" {
		errs = append(errs, errors.New("map file is required"))
	}

	return errors.Join(errs...)
}
