package main

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/ms42scan/ms42scan/catalogio"
	"github.com/ms42scan/ms42scan/image"
	"github.com/ms42scan/ms42scan/model"
	"github.com/ms42scan/ms42scan/scanner"
)

func newScanCmd(log zerolog.Logger) *cobra.Command {
	var (
		templatesPath string
		hintsPath     string
		minRows       int
		maxCols       int
		workers       int
		out           string
	)

	cmd := &cobra.Command{
		Use:   "scan <image>",
		Short: "Brute-force scan an image for calibration tables",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			imgPath := args[0]

			img, err := image.Open(imgPath)
			if err != nil {
				return fmt.Errorf("%w: %w", model.ErrIOFailure, err)
			}
			defer img.Close()

			var hints *model.DisassemblerHints
			if hintsPath != "" {
				hints, err = catalogio.LoadHints(hintsPath)
				if err != nil {
					return err
				}
			}

			s := &scanner.Scanner{Hints: hints}
			opts := scanner.ScanOptions{
				MinRows: minRows,
				MaxCols: maxCols,
				Workers: workers,
				Progress: func(scanned, limit int) {
					log.Debug().Int("scanned", scanned).Int("limit", limit).Msg("scan progress")
				},
			}

			maps, err := s.Scan(cmd.Context(), img, opts)
			if err != nil {
				return err
			}
			model.SortByScore(maps)

			if templatesPath != "" {
				log.Info().Msg("templates supplied; run `ms42scan rescan` to merge template-guided hits")
			}

			if err := catalogio.SaveMaps(out, maps); err != nil {
				return err
			}
			log.Info().Int("count", len(maps)).Str("out", out).Msg("scan complete")
			return nil
		},
	}

	cmd.Flags().StringVar(&templatesPath, "templates", "", "known-template catalog (JSON, optionally gzipped)")
	cmd.Flags().StringVar(&hintsPath, "hints", "", "disassembler hints (JSON, optionally gzipped)")
	cmd.Flags().IntVar(&minRows, "min-rows", 0, "minimum row count (default 3)")
	cmd.Flags().IntVar(&maxCols, "max-cols", 0, "maximum column count (default 128)")
	cmd.Flags().IntVar(&workers, "workers", 0, "worker count (default GOMAXPROCS)")
	cmd.Flags().StringVar(&out, "out", "maps.json", "output maps JSON path")
	_ = cmd.MarkFlagRequired("out")

	return cmd
}
