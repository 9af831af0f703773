// Copyright 2025 The PoliceMap Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"github.com/policemap/policemap/cmd"
)

var Version = "development"

func main() {
	cmd.Execute(Version)
}
