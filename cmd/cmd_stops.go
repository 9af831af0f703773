// Copyright 2025 The PoliceMap Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"github.com/policemap/policemap/pipeline"
	"github.com/spf13/cobra"
)

var stopsCmd = &cobra.Command{
	Use:   "stops",
	Short: "Map and chart the stop and searches around a point",
	Long: `Fetches the stop and searches of a month within the search area, writes a
web map with one marker per stop and a page of pie charts summarising them.

$ policemap stops --month 2025-02 --radius-km 2
Web map exported as map_stopandsearch.html
Graphs exported as graphs_stopandsearch.html
Crime data last updated on: 2025-03-01
`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runPipeline(cmd, pipeline.StopAndSearch)
	},
}

func init() {
	rootCmd.AddCommand(stopsCmd)
	addRunFlags(stopsCmd, pipeline.DefaultStopsMapFile)
	stopsCmd.Flags().String(
		"chart-file",
		pipeline.DefaultStopsChartFile,
		"Where to write the charts",
	)
}
