/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Command pivotctl inspects entity names, checks pivot manifests and runs
// pivot queries from the command line.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
