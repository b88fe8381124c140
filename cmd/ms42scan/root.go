package main

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

func newRootCmd(log zerolog.Logger) *cobra.Command {
	root := &cobra.Command{
		Use:           "ms42scan",
		Short:         "Scan ECU firmware images for calibration tables",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newScanCmd(log))
	root.AddCommand(newExportXDFCmd(log))
	root.AddCommand(newRescanCmd(log))
	return root
}
