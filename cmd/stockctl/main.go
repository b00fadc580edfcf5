// Command stockctl runs the inventory rules against the demo catalogue from a terminal.
package main

import (
	"os"

	"github.com/rogerio-castellano/inventory-insights/pkg/logger"
)

func main() {
	logger.SetOutput(os.Stderr)
	if err := newRootCmd().Execute(); err != nil {
		logger.Log.Error().Err(err).Msg("stockctl failed")
		os.Exit(1)
	}
}
