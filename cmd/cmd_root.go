// Copyright 2025 The PoliceMap Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"
)

type logWriter struct {
	writer io.Writer
}

func (w *logWriter) Write(bytes []byte) (int, error) {
	return fmt.Fprintf(w.writer, "%s %s", time.Now().Format("2006-01-02 15:04:05"), string(bytes))
}

func init() {
	log.SetFlags(0)
	log.SetOutput(&logWriter{writer: os.Stderr})
}

var rootCmd = &cobra.Command{
	Use:   "policemap",
	Short: "maps of data.police.uk street-level records",
	Long: `
policemap queries the data.police.uk API for the stop and searches or street
crimes recorded in a month within a circular area, and exports them as an
interactive web map. Stop and searches are also summarised as pie charts.

Settings can be given as flags, as POLICEMAP_* environment variables (a .env
file is loaded when present) or in a policemap.yaml file.
`,
	SilenceUsage: true,
}

var Version = "dev"

func Execute(version string) {
	Version = version

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()

	if err != nil {
		os.Exit(1)
	}
}
