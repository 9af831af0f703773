// Copyright 2025 The PoliceMap Authors
// SPDX-License-Identifier: Apache-2.0

package pipeline

import (
	"context"
	"errors"
	"fmt"

	"github.com/policemap/policemap/report"
)

// StopAndSearch maps the stop and searches of a month around the configured
// point and charts their distribution.
func StopAndSearch(ctx context.Context, src Source, options *Options) (*Result, error) {
	if options.ChartFile == "" {
		return nil, fmt.Errorf("invalid options: %w", errors.New("chart file is required"))
	}

	r, err := newRun(options, fmt.Sprintf("Stop and search, %s", options.Month), report.ColorStopAndSearch)
	if err != nil {
		return nil, err
	}

	stops, err := src.StopsStreet(ctx, options.Month, r.area)
	if err != nil {
		return nil, fmt.Errorf("fetching stop and searches: %w", err)
	}

	tally := report.NewStopAndSearchTally()

	r.start(len(stops), "Placing stop and searches")

	for i := range stops {
		s := &stops[i]
		tally.AddStopAndSearch(s)

		p, ok := s.Point()
		r.place(p, ok, report.StopAndSearchFields(s))
	}

	if err := r.finishMap(); err != nil {
		return nil, err
	}

	charts := &report.ChartDocument{
		Title: report.StopAndSearchChartTitle,
		Tally: tally,
	}
	if err := r.write(options.ChartFile, charts.Render); err != nil {
		return nil, err
	}

	r.lastUpdated(ctx, src)

	return &r.result, nil
}
