// Copyright 2025 The PoliceMap Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/policemap/policemap/pipeline"
	"github.com/policemap/policemap/police"
	"github.com/policemap/policemap/spatial"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	envPrefix  = "POLICEMAP"
	configName = "policemap"
	envFile    = ".env"
)

// loadConfig layers the command flags over POLICEMAP_* environment variables
// and an optional policemap.yaml. Variables in .env are loaded first and never
// override the real environment.
func loadConfig(cmd *cobra.Command) (*viper.Viper, error) {
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("loading %s: %w", envFile, err)
	}

	v := viper.New()

	v.SetConfigName(configName)
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	// POLICEMAP_RADIUS_KM → radius-km
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return nil, fmt.Errorf("binding flags: %w", err)
	}

	return v, nil
}

// addClientFlags registers the flags that configure the API client.
func addClientFlags(cmd *cobra.Command) {
	cmd.Flags().String(
		"base-url",
		police.DefaultBaseURL,
		"Base URL of the data.police.uk API",
	)
	cmd.Flags().Duration(
		"timeout",
		60*time.Second,
		"Timeout of each API request",
	)
	cmd.Flags().Bool(
		"trace-http",
		false,
		"Display HTTP requests-responses",
	)
	cmd.Flags().Bool(
		"trace-http-body",
		false,
		"Display HTTP requests-responses bodies",
	)
}

// addRunFlags registers the flags shared by the pipeline commands.
func addRunFlags(cmd *cobra.Command, mapFile string) {
	defaults := pipeline.DefaultOptions()

	cmd.Flags().Float64(
		"center-lat",
		defaults.Center.Lat,
		"Latitude of the centre of the search area",
	)
	cmd.Flags().Float64(
		"center-lng",
		defaults.Center.Lng,
		"Longitude of the centre of the search area",
	)
	cmd.Flags().Float64(
		"radius-km",
		defaults.RadiusKm,
		"Radius of the search area in kilometres",
	)
	cmd.Flags().Int(
		"vertices",
		defaults.Vertices,
		"Number of vertices of the polygon approximating the search area",
	)
	cmd.Flags().String(
		"month",
		defaults.Month,
		"Month to query, as YYYY-MM",
	)
	cmd.Flags().Float64(
		"nudge-step",
		defaults.NudgeStep,
		"Longitude offset, in degrees, between markers sharing a location",
	)
	cmd.Flags().Int(
		"zoom",
		defaults.Zoom,
		"Initial zoom level of the map",
	)
	cmd.Flags().String(
		"map-file",
		mapFile,
		"Where to write the web map",
	)
	cmd.Flags().String(
		"geojson",
		"",
		"Also write the map features as GeoJSON to this file",
	)
	cmd.Flags().Int(
		"hex-resolution",
		0,
		"Draw an H3 density layer at this resolution (1-15), 0 disables it",
	)

	addClientFlags(cmd)
}

func clientOptions(v *viper.Viper) *police.ClientOptions {
	return &police.ClientOptions{
		BaseURL:             v.GetString("base-url"),
		UserAgent:           fmt.Sprintf("policemap/%s", Version),
		Timeout:             v.GetDuration("timeout"),
		EnableHTTPTrace:     v.GetBool("trace-http"),
		EnableHTTPBodyTrace: v.GetBool("trace-http-body"),
	}
}

func pipelineOptions(v *viper.Viper) *pipeline.Options {
	return &pipeline.Options{
		Center: spatial.Point{
			Lat: v.GetFloat64("center-lat"),
			Lng: v.GetFloat64("center-lng"),
		},
		RadiusKm:      v.GetFloat64("radius-km"),
		Vertices:      v.GetInt("vertices"),
		Month:         strings.TrimSpace(v.GetString("month")),
		NudgeStep:     v.GetFloat64("nudge-step"),
		Zoom:          v.GetInt("zoom"),
		MapFile:       v.GetString("map-file"),
		ChartFile:     v.GetString("chart-file"),
		GeoJSONFile:   v.GetString("geojson"),
		Category:      v.GetString("category"),
		HexResolution: v.GetInt("hex-resolution"),
	}
}
