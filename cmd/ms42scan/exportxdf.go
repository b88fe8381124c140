package main

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/ms42scan/ms42scan/catalogio"
	"github.com/ms42scan/ms42scan/model"
	"github.com/ms42scan/ms42scan/xdfio"
)

func newExportXDFCmd(log zerolog.Logger) *cobra.Command {
	var (
		out  string
		tool string
	)

	cmd := &cobra.Command{
		Use:   "export-xdf <maps.json>",
		Short: "Export a persisted map set as an XDF document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			maps, err := catalogio.LoadMaps(args[0])
			if err != nil {
				return err
			}

			f, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("%w: %w", model.ErrWriteFailure, err)
			}
			defer f.Close()

			if err := xdfio.Write(f, maps, tool, time.Now()); err != nil {
				return err
			}
			log.Info().Int("count", len(maps)).Str("out", out).Msg("export-xdf complete")
			return nil
		},
	}

	cmd.Flags().StringVar(&out, "out", "out.xdf", "output XDF path")
	cmd.Flags().StringVar(&tool, "tool", "ms42scan", "tool name recorded in the XDF header")

	return cmd
}
