// Copyright 2025 The PoliceMap Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/policemap/policemap/pipeline"
	"github.com/policemap/policemap/police"
	"github.com/spf13/cobra"
)

type pipelineFunc func(context.Context, pipeline.Source, *pipeline.Options) (*pipeline.Result, error)

// runPipeline resolves the configuration of cmd and runs fn against the API.
func runPipeline(cmd *cobra.Command, fn pipelineFunc) error {
	v, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	options := pipelineOptions(v)
	client := police.NewClient(clientOptions(v))

	result, err := fn(cmd.Context(), client, options)
	if err != nil {
		return err
	}

	printResult(cmd.OutOrStdout(), options, result)

	return nil
}

func printResult(w io.Writer, options *pipeline.Options, result *pipeline.Result) {
	for _, file := range result.Files {
		switch file {
		case options.MapFile:
			fmt.Fprintf(w, "Web map exported as %s\n", file)
		case options.ChartFile:
			fmt.Fprintf(w, "Graphs exported as %s\n", file)
		case options.GeoJSONFile:
			fmt.Fprintf(w, "Features exported as %s\n", file)
		}
	}

	if result.LastUpdated != "" {
		fmt.Fprintf(w, "Crime data last updated on: %s\n", result.LastUpdated)
	}
}
