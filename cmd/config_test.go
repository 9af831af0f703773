// Copyright 2025 The PoliceMap Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/policemap/policemap/pipeline"
	"github.com/policemap/policemap/spatial"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRunCommand(t *testing.T) *cobra.Command {
	t.Helper()
	t.Chdir(t.TempDir())

	cmd := &cobra.Command{Use: "test"}
	addRunFlags(cmd, "map.html")

	return cmd
}

func TestLoadConfig_Defaults(t *testing.T) {
	cmd := newRunCommand(t)

	v, err := loadConfig(cmd)
	require.NoError(t, err)

	options := pipelineOptions(v)
	assert.Equal(t, pipeline.DefaultOptions().Center, options.Center)
	assert.InDelta(t, 10.0, options.RadiusKm, 0)
	assert.Equal(t, spatial.DefaultVertices, options.Vertices)
	assert.Equal(t, "2025-02", options.Month)
	assert.Equal(t, "map.html", options.MapFile)
	assert.Empty(t, options.GeoJSONFile)
	assert.Zero(t, options.HexResolution)
	assert.NoError(t, options.Validate())

	client := clientOptions(v)
	assert.Equal(t, "https://data.police.uk/api/", client.BaseURL)
	assert.Equal(t, 60*time.Second, client.Timeout)
	assert.False(t, client.EnableHTTPTrace)
}

func TestLoadConfig_Layers(t *testing.T) {
	cmd := newRunCommand(t)

	require.NoError(t, os.WriteFile("policemap.yaml", []byte("radius-km: 3\nzoom: 12\nmonth: 2023-05\n"), 0o600))
	t.Setenv("POLICEMAP_ZOOM", "14")
	t.Setenv("POLICEMAP_MONTH", "2024-01")
	t.Setenv("POLICEMAP_TRACE_HTTP", "true")
	require.NoError(t, cmd.Flags().Set("month", "2024-12"))

	v, err := loadConfig(cmd)
	require.NoError(t, err)

	options := pipelineOptions(v)
	assert.InDelta(t, 3.0, options.RadiusKm, 0, "from config file")
	assert.Equal(t, 14, options.Zoom, "environment beats config file")
	assert.Equal(t, "2024-12", options.Month, "flag beats environment")
	assert.True(t, clientOptions(v).EnableHTTPTrace)
}

func TestLoadConfig_DotEnv(t *testing.T) {
	cmd := newRunCommand(t)

	// Make sure the variable is unset, and restored afterwards.
	t.Setenv("POLICEMAP_VERTICES", "")
	require.NoError(t, os.Unsetenv("POLICEMAP_VERTICES"))

	require.NoError(t, os.WriteFile(".env", []byte("POLICEMAP_VERTICES=12\n"), 0o600))

	v, err := loadConfig(cmd)
	require.NoError(t, err)
	assert.Equal(t, 12, pipelineOptions(v).Vertices)
}

func TestLoadConfig_BadConfigFile(t *testing.T) {
	cmd := newRunCommand(t)

	require.NoError(t, os.WriteFile("policemap.yaml", []byte("radius-km: [\n"), 0o600))

	_, err := loadConfig(cmd)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading config")
}

func TestPrintResult(t *testing.T) {
	options := &pipeline.Options{
		MapFile:     filepath.Join("out", "map.html"),
		ChartFile:   "charts.html",
		GeoJSONFile: "map.geojson",
	}

	var buf bytes.Buffer
	printResult(&buf, options, &pipeline.Result{
		Files:       []string{options.MapFile, options.GeoJSONFile, options.ChartFile},
		LastUpdated: "2025-03-01",
	})

	assert.Equal(t, `Web map exported as out/map.html
Features exported as map.geojson
Graphs exported as charts.html
Crime data last updated on: 2025-03-01
`, buf.String())

	buf.Reset()
	printResult(&buf, options, &pipeline.Result{Files: []string{options.MapFile}})
	assert.Equal(t, "Web map exported as out/map.html\n", buf.String())
}

func TestParsePoint(t *testing.T) {
	p, err := parsePoint(" 51.5 , -0.12 ")
	require.NoError(t, err)
	assert.Equal(t, spatial.Point{Lat: 51.5, Lng: -0.12}, p)

	for _, in := range []string{"51.5", "a,0", "51,b"} {
		_, err := parsePoint(in)
		assert.Error(t, err, in)
	}
}
