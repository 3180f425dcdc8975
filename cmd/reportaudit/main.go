// Package main is the entrypoint for the reportaudit CLI and dashboard API.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd(&app{}).Execute(); err != nil {
		os.Exit(1)
	}
}
