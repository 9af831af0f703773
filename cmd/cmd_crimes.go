// Copyright 2025 The PoliceMap Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"github.com/policemap/policemap/pipeline"
	"github.com/policemap/policemap/police"
	"github.com/spf13/cobra"
)

var crimesCmd = &cobra.Command{
	Use:   "crimes",
	Short: "Map the street-level crimes around a point",
	Long: `Fetches the street-level crimes of a month within the search area and writes
a web map with one marker per crime.

$ policemap crimes --category burglary
Web map exported as crimedata.html
Crime data last updated on: 2025-03-01
`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runPipeline(cmd, pipeline.StreetCrime)
	},
}

func init() {
	rootCmd.AddCommand(crimesCmd)
	addRunFlags(crimesCmd, pipeline.DefaultCrimeMapFile)
	crimesCmd.Flags().String(
		"category",
		police.AllCrime,
		"Crime category slug, e.g. burglary or anti-social-behaviour",
	)
}
