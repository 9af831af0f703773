// Copyright 2025 The PoliceMap Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/policemap/policemap/pipeline"
	"github.com/policemap/policemap/report"
	"github.com/policemap/policemap/spatial"
	"github.com/spf13/cobra"
)

var debugCmd = &cobra.Command{
	Use:   "debug",
	Short: "Dev tools",
}

var debugPolygonCmd = &cobra.Command{
	Use:   "polygon",
	Short: "Print the polygon sent as the search area",
	Long: `Prints the poly query parameter that approximates the search area, or the
polygon as a GeoJSON feature with --as-geojson.

$ policemap debug polygon --vertices 4 --radius-km 1
51.48030114313368,-0.46068137983214263:...
`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		v, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		center := spatial.Point{Lat: v.GetFloat64("center-lat"), Lng: v.GetFloat64("center-lng")}

		area, err := spatial.GeneratePolygon(center, v.GetFloat64("radius-km"), v.GetInt("vertices"))
		if err != nil {
			return err
		}

		if !v.GetBool("as-geojson") {
			fmt.Println(area.QueryString())

			return nil
		}

		f := report.AreaFeature(area)
		f.SetProperty("center", center.String())

		data, err := json.MarshalIndent(f, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding polygon: %w", err)
		}

		fmt.Println(string(data))

		return nil
	},
}

var debugPlacementCmd = &cobra.Command{
	Use:   "placement",
	Short: "Interact with the marker placement",
	Long: `Reads one "lat,lng" pair per line and prints where its marker would be drawn
after the previous ones.

$ printf '51,0\n51,0\n' | policemap debug placement
51,0	51,0
51,0	51,0.00005
`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		v, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		step := v.GetFloat64("nudge-step")
		if !spatial.ValidNudgeStep(step) {
			return fmt.Errorf("nudge step must be between %g and %g degrees, got %v",
				spatial.MinNudgeStep, spatial.MaxNudgeStep, step)
		}

		input, out := cmd.InOrStdin(), cmd.OutOrStdout()
		if f, ok := input.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
			fmt.Fprintln(cmd.ErrOrStderr(), "Enter coordinates as lat,lng, one per line…")
		}

		placer := spatial.NewMarkerPlacer(step)
		scanner := bufio.NewScanner(input)

		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line == "" {
				continue
			}

			p, err := parsePoint(line)
			if err != nil {
				fmt.Fprintf(out, "%s\t%q\n", line, err)

				continue
			}

			fmt.Fprintf(out, "%s\t%s\n", p, placer.Resolve(p))
		}

		if err := scanner.Err(); err != nil {
			return fmt.Errorf("reading input: %w", err)
		}

		return nil
	},
}

func parsePoint(s string) (spatial.Point, error) {
	lat, lng, ok := strings.Cut(s, ",")
	if !ok {
		return spatial.Point{}, fmt.Errorf("expected lat,lng, got %q", s)
	}

	var p spatial.Point
	var err error

	if p.Lat, err = strconv.ParseFloat(strings.TrimSpace(lat), 64); err != nil {
		return spatial.Point{}, fmt.Errorf("parsing latitude: %w", err)
	}

	if p.Lng, err = strconv.ParseFloat(strings.TrimSpace(lng), 64); err != nil {
		return spatial.Point{}, fmt.Errorf("parsing longitude: %w", err)
	}

	return p, nil
}

func init() {
	rootCmd.AddCommand(debugCmd)
	debugCmd.AddCommand(debugPolygonCmd)
	debugCmd.AddCommand(debugPlacementCmd)

	defaults := pipeline.DefaultOptions()

	debugPolygonCmd.Flags().Float64("center-lat", defaults.Center.Lat, "Latitude of the centre of the search area")
	debugPolygonCmd.Flags().Float64("center-lng", defaults.Center.Lng, "Longitude of the centre of the search area")
	debugPolygonCmd.Flags().Float64("radius-km", defaults.RadiusKm, "Radius of the search area in kilometres")
	debugPolygonCmd.Flags().Int("vertices", defaults.Vertices, "Number of vertices of the polygon")
	debugPolygonCmd.Flags().Bool("as-geojson", false, "Print the polygon as a GeoJSON feature")

	debugPlacementCmd.Flags().Float64(
		"nudge-step",
		defaults.NudgeStep,
		"Longitude offset, in degrees, between markers sharing a location",
	)
}
