// Copyright 2025 The PoliceMap Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"fmt"
	"os"

	"github.com/policemap/policemap/police"
	"github.com/policemap/policemap/preview"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Browse the generated maps and charts on a local web server",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		v, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		dir := v.GetString("dir")
		if info, err := os.Stat(dir); err != nil {
			return fmt.Errorf("opening document directory: %w", err)
		} else if !info.IsDir() {
			return fmt.Errorf("%s is not a directory", dir)
		}

		addr := v.GetString("addr")
		server := preview.NewServer(dir, police.NewClient(clientOptions(v)))

		fmt.Println("🗺️  Preview server starting...")
		fmt.Printf("📍 Open http://%s in your browser\n", addr)

		return server.Run(addr)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String(
		"addr",
		preview.DefaultAddr,
		"Address to listen on",
	)
	serveCmd.Flags().String(
		"dir",
		".",
		"Directory holding the generated documents",
	)
	addClientFlags(serveCmd)
}
