package main

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/ms42scan/ms42scan/catalogio"
	"github.com/ms42scan/ms42scan/image"
	"github.com/ms42scan/ms42scan/model"
	"github.com/ms42scan/ms42scan/rescan"
)

func newRescanCmd(log zerolog.Logger) *cobra.Command {
	var (
		templatesPath string
		imgPath       string
		out           string
		searchRange   int
		stride        int
	)

	cmd := &cobra.Command{
		Use:   "rescan <maps.json>",
		Short: "Sweep known templates against an image for drifted tables",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			maps, err := catalogio.LoadMaps(args[0])
			if err != nil {
				return err
			}

			templates, err := catalogio.LoadTemplates(templatesPath)
			if err != nil {
				return err
			}

			img, err := image.Open(imgPath)
			if err != nil {
				return fmt.Errorf("%w: %w", model.ErrIOFailure, err)
			}
			defer img.Close()

			known := catalogio.KnownOffsets(maps)
			hits := rescan.Rescan(img, templates, known, rescan.RescanOptions{SearchRange: searchRange, Stride: stride})

			merged := mergeRescanHits(maps, hits)
			if err := catalogio.SaveMaps(out, merged); err != nil {
				return err
			}
			log.Info().Int("hits", len(hits)).Str("out", out).Msg("rescan complete")
			return nil
		},
	}

	cmd.Flags().StringVar(&templatesPath, "templates", "", "known-template catalog (JSON, optionally gzipped)")
	cmd.Flags().StringVar(&imgPath, "image", "", "firmware image path")
	cmd.Flags().StringVar(&out, "out", "maps.json", "output maps JSON path")
	cmd.Flags().IntVar(&searchRange, "search-range", rescan.DefaultSearchRange, "sweep distance on either side of each template's recorded address")
	cmd.Flags().IntVar(&stride, "stride", rescan.DefaultStride, "byte step between sweep offsets")
	_ = cmd.MarkFlagRequired("templates")
	_ = cmd.MarkFlagRequired("image")

	return cmd
}

// mergeRescanHits merges rewritten XDF fragments (offset -> rawXML) into
// the DetectedMap already occupying that offset, or appends a synthetic
// candidate when no prior brute-force hit exists there.
func mergeRescanHits(maps []model.DetectedMap, hits map[int]string) []model.DetectedMap {
	byOffset := make(map[int]int, len(maps)) // offset -> index in maps
	for i, m := range maps {
		byOffset[m.Offset] = i
	}

	for off, rawXML := range hits {
		if i, ok := byOffset[off]; ok {
			maps[i].RawEmbeddedXML = rawXML
			continue
		}
		synthetic := model.NewDetectedMap("TemplateRescan", off, 0, 0, nil)
		synthetic.RawEmbeddedXML = rawXML
		maps = append(maps, synthetic)
	}
	return maps
}
