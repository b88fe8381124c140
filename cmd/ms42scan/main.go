// Command ms42scan scans ECU firmware images for calibration tables,
// exports detection results as XDF, and rescans a known-template catalog
// against a fresh image when tables have drifted address.
package main

import (
	"os"

	"github.com/rs/zerolog"
)

func main() {
	log := newLogger()
	root := newRootCmd(log)
	if err := root.Execute(); err != nil {
		os.Exit(exitCodeFor(err))
	}
}

// newLogger configures console-friendly output on a TTY and structured
// JSON otherwise. Only cmd/ms42scan logs anything at all; the core
// packages never do.
func newLogger() zerolog.Logger {
	if isTerminal(os.Stderr) {
		w := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}
		return zerolog.New(w).With().Timestamp().Logger()
	}
	return zerolog.New(os.Stderr).With().Timestamp().Logger()
}
