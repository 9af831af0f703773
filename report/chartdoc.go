// Copyright 2025 The PoliceMap Authors
// SPDX-License-Identifier: Apache-2.0

package report

import (
	"io"
)

type pieTitle struct {
	Text     string `json:"text"`
	Position string `json:"position"`
}

type pieDomain struct {
	X [2]float64 `json:"x"`
	Y [2]float64 `json:"y"`
}

type pieTrace struct {
	Type       string    `json:"type"`
	Name       string    `json:"name"`
	Title      pieTitle  `json:"title"`
	Labels     []string  `json:"labels"`
	Values     []int     `json:"values"`
	TextInfo   string    `json:"textinfo"`
	ShowLegend bool      `json:"showlegend"`
	Domain     pieDomain `json:"domain"`
}

// StopAndSearchChartTitle is the heading of the stop and search charts page.
const StopAndSearchChartTitle = "Stop and Search Breakdown"

// ChartDocument renders a tally as one pie per field, stacked vertically.
type ChartDocument struct {
	Title string
	Tally *Tally
}

func (d *ChartDocument) traces() []pieTrace {
	series := d.Tally.Series()
	rows := float64(len(series))

	const gap = 0.02

	traces := make([]pieTrace, len(series))
	for i, s := range series {
		top := 1 - float64(i)/rows
		bottom := 1 - float64(i+1)/rows

		traces[i] = pieTrace{
			Type:       "pie",
			Name:       s.Field,
			Title:      pieTitle{Text: s.Title, Position: "top center"},
			Labels:     s.Labels,
			Values:     s.Counts,
			TextInfo:   "label+percent",
			ShowLegend: false,
			Domain:     pieDomain{X: [2]float64{0, 1}, Y: [2]float64{bottom + gap, top - gap}},
		}

		if traces[i].Labels == nil {
			traces[i].Labels, traces[i].Values = []string{}, []int{}
		}
	}

	return traces
}

// Render writes the charts as an HTML page.
func (d *ChartDocument) Render(w io.Writer) error {
	return templates.ExecuteTemplate(w, "charts.html.tmpl", struct {
		Title  string
		Height int
		Traces []pieTrace
	}{d.Title, d.Tally.ChartHeight(), d.traces()})
}
