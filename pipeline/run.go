// Copyright 2025 The PoliceMap Authors
// SPDX-License-Identifier: Apache-2.0

// Package pipeline fetches records around a point and turns them into map and
// chart documents.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
	"github.com/policemap/policemap/police"
	"github.com/policemap/policemap/report"
	"github.com/policemap/policemap/spatial"
	"github.com/schollz/progressbar/v3"
)

// progressLogEvery is how often the marker loop logs when no progress bar is
// shown.
const progressLogEvery = 500

// Source provides the records. *police.Client implements it.
type Source interface {
	StopsStreet(ctx context.Context, month string, area spatial.Polygon) ([]police.StopAndSearch, error)
	CrimesStreet(ctx context.Context, category, month string, area spatial.Polygon) ([]police.StreetCrime, error)
	LastUpdated(ctx context.Context) (string, error)
}

// Result summarises a run.
type Result struct {
	// Records returned by the API
	Records int

	// Markers drawn on the map
	Markers int

	// Skipped records, published without a location
	Skipped int

	// Outside counts records located outside the queried polygon
	Outside int

	// Files written, in order
	Files []string

	// LastUpdated is the date of the last data refresh, empty if unknown
	LastUpdated string
}

// run holds the state of a single pipeline execution. Nothing in it outlives
// the run.
type run struct {
	options *Options
	area    spatial.Polygon
	ring    orb.Ring
	placer  *spatial.MarkerPlacer
	doc     *report.MapDocument
	points  []spatial.Point
	bar     *progressbar.ProgressBar
	seen    int
	result  Result
}

func newRun(options *Options, title, color string) (*run, error) {
	if err := options.Validate(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	area, err := spatial.GeneratePolygon(options.Center, options.RadiusKm, options.Vertices)
	if err != nil {
		return nil, fmt.Errorf("generating search area: %w", err)
	}

	doc := report.NewMapDocument(report.MapOptions{
		Title:       title,
		Center:      options.Center,
		Zoom:        options.Zoom,
		MarkerColor: color,
	})
	doc.SetArea(area)

	return &run{
		options: options,
		area:    area,
		ring:    area.Ring(),
		placer:  spatial.NewMarkerPlacer(options.NudgeStep),
		doc:     doc,
	}, nil
}

// start prepares the marker loop for n records.
func (r *run) start(n int, description string) {
	r.result.Records = n

	log.Printf("Received %d records", n)

	if n > 0 && isatty.IsTerminal(os.Stderr.Fd()) {
		r.bar = progressbar.NewOptions(n,
			progressbar.OptionSetDescription(description),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)
	}
}

// place draws a marker for a record located at p, if it has a location.
func (r *run) place(p spatial.Point, ok bool, fields []report.Field) {
	r.seen++

	if r.bar != nil {
		if err := r.bar.Add(1); err != nil {
			log.Printf("Updating progress bar: %s", err)
		}
	} else if r.seen%progressLogEvery == 0 {
		log.Printf("Processed %d/%d records", r.seen, r.result.Records)
	}

	if !ok {
		r.result.Skipped++

		return
	}

	if !planar.RingContains(r.ring, p.Orb()) {
		r.result.Outside++
	}

	r.points = append(r.points, p)
	r.doc.AddMarker(r.placer.Resolve(p), fields)
}

// writeFile creates path and its directory and renders into it.
func writeFile(path string, render func(io.Writer) error) (err error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("creating directory for %s: %w", path, err)
		}
	}

	f, err := os.Create(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}

	defer func() {
		err = errors.Join(err, f.Close())
		if err != nil {
			_ = os.Remove(path)
		}
	}()

	if err := render(f); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}

	return nil
}

func (r *run) write(path string, render func(io.Writer) error) error {
	if err := writeFile(path, render); err != nil {
		return err
	}

	r.result.Files = append(r.result.Files, path)

	return nil
}

// finishMap completes the map layers and writes the map documents.
func (r *run) finishMap() error {
	if r.bar != nil {
		_ = r.bar.Finish()
	}

	r.result.Markers = r.doc.Markers()

	if r.result.Skipped > 0 {
		log.Printf("%d records without location were left out of the map", r.result.Skipped)
	}

	if r.result.Outside > 0 {
		log.Printf("%d records are located outside the search area", r.result.Outside)
	}

	if r.options.HexResolution > 0 {
		bins, err := report.HexBins(r.points, r.options.HexResolution)
		if err != nil {
			return fmt.Errorf("building density layer: %w", err)
		}

		r.doc.AddHexBins(bins)
		log.Printf("Density layer has %d cells at resolution %d", len(bins), r.options.HexResolution)
	}

	if err := r.write(r.options.MapFile, r.doc.Render); err != nil {
		return err
	}

	if r.options.GeoJSONFile != "" {
		err := r.write(r.options.GeoJSONFile, func(w io.Writer) error {
			data, err := r.doc.FeatureCollection().MarshalJSON()
			if err != nil {
				return err
			}

			_, err = w.Write(data)

			return err
		})
		if err != nil {
			return err
		}
	}

	return nil
}

// lastUpdated asks when the data was refreshed. Failures are only logged.
func (r *run) lastUpdated(ctx context.Context, src Source) {
	date, err := src.LastUpdated(ctx)
	if err != nil {
		log.Printf("Failed to retrieve update date: %s", err)

		return
	}

	r.result.LastUpdated = date
}
