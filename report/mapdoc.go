// Copyright 2025 The PoliceMap Authors
// SPDX-License-Identifier: Apache-2.0

package report

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	geojson "github.com/paulmach/go.geojson"
	"github.com/policemap/policemap/spatial"
)

//go:embed templates/*.html.tmpl
var templatesFS embed.FS

var templates = template.Must(template.ParseFS(templatesFS, "templates/*.html.tmpl"))

// Marker colours per dataset.
const (
	ColorStopAndSearch = "purple"
	ColorStreetCrime   = "red"
	colorArea          = "blue"
	colorHexBin        = "orange"
)

// DefaultZoom is the initial zoom level of a map.
const DefaultZoom = 16

// MapOptions configures a MapDocument.
type MapOptions struct {
	Title       string
	Center      spatial.Point
	Zoom        int
	MarkerColor string
}

// MapDocument accumulates the layers of an interactive map and renders it as
// a standalone HTML page. Layers are drawn area first, then hex bins, then
// markers.
type MapDocument struct {
	options MapOptions
	area    *geojson.Feature
	hexbins []*geojson.Feature
	markers []*geojson.Feature
}

// NewMapDocument creates an empty map.
func NewMapDocument(options MapOptions) *MapDocument {
	if options.Zoom <= 0 {
		options.Zoom = DefaultZoom
	}

	if options.MarkerColor == "" {
		options.MarkerColor = ColorStreetCrime
	}

	return &MapDocument{options: options}
}

func ring(points []spatial.Point) [][]float64 {
	if len(points) == 0 {
		return nil
	}

	coords := make([][]float64, 0, len(points)+1)
	for _, p := range points {
		coords = append(coords, []float64{p.Lng, p.Lat})
	}

	return append(coords, []float64{points[0].Lng, points[0].Lat})
}

// AreaFeature returns the outline of a queried area as a closed polygon
// feature.
func AreaFeature(area spatial.Polygon) *geojson.Feature {
	f := geojson.NewPolygonFeature([][][]float64{ring(area)})
	f.SetProperty("kind", "area")
	f.SetProperty("style", map[string]any{
		"color":       colorArea,
		"fill":        true,
		"fillOpacity": 0.1,
	})

	return f
}

// SetArea sets the outline of the queried area.
func (d *MapDocument) SetArea(area spatial.Polygon) {
	d.area = AreaFeature(area)
}

// AddHexBins adds a density layer.
func (d *MapDocument) AddHexBins(bins []*HexBin) {
	maxCount := 0
	for _, b := range bins {
		maxCount = max(maxCount, b.Count)
	}

	for _, b := range bins {
		f := geojson.NewPolygonFeature([][][]float64{ring(b.Boundary)})
		f.SetProperty("kind", "hexbin")
		f.SetProperty("cell", b.Cell.String())
		f.SetProperty("count", b.Count)
		f.SetProperty("popup", fmt.Sprintf("<b>Records:</b> %d<br>\n", b.Count))
		f.SetProperty("style", map[string]any{
			"color":       colorHexBin,
			"weight":      1,
			"fill":        true,
			"fillOpacity": 0.1 + 0.5*float64(b.Count)/float64(maxCount),
		})

		d.hexbins = append(d.hexbins, f)
	}
}

// AddMarker adds a circle marker at p with a popup listing fields.
func (d *MapDocument) AddMarker(p spatial.Point, fields []Field) {
	f := geojson.NewPointFeature([]float64{p.Lng, p.Lat})
	f.SetProperty("kind", "marker")
	f.SetProperty("popup", PopupHTML(fields))
	f.SetProperty("style", map[string]any{
		"radius":      5,
		"color":       d.options.MarkerColor,
		"fill":        true,
		"fillOpacity": 0.6,
	})

	d.markers = append(d.markers, f)
}

// Markers returns the number of markers added so far.
func (d *MapDocument) Markers() int {
	return len(d.markers)
}

// FeatureCollection returns every layer as GeoJSON, in drawing order.
func (d *MapDocument) FeatureCollection() *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()

	if d.area != nil {
		fc.AddFeature(d.area)
	}

	for _, f := range d.hexbins {
		fc.AddFeature(f)
	}

	for _, f := range d.markers {
		fc.AddFeature(f)
	}

	return fc
}

// Render writes the map as an HTML page.
func (d *MapDocument) Render(w io.Writer) error {
	data, err := d.FeatureCollection().MarshalJSON()
	if err != nil {
		return fmt.Errorf("encoding map features: %w", err)
	}

	features := template.JS(data) // #nosec G203 - json.Marshal escapes <, > and &

	return templates.ExecuteTemplate(w, "map.html.tmpl", struct {
		MapOptions
		Features template.JS
	}{d.options, features})
}
