package main

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/spf13/cobra"

	"mediasort/internal/config"
	"mediasort/internal/media"
)

func newInspectCommand(ctx *commandContext) *cobra.Command {
	var full bool
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "inspect <file>",
		Short: "Classify one file and show its extracted metadata",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.ExpandPath(args[0])
			if err != nil {
				return err
			}

			rec, err := media.NewRecordWithClassifier(ctx.newClassifier(), path, "")
			if err != nil {
				return err
			}

			extractor := ctx.newExtractor()
			defer extractor.Close()
			extractor.Extract(cmd.Context(), rec)

			if jsonOutput {
				return writeJSON(cmd, fileReport{
					Path:     rec.Path(),
					Kind:     string(rec.Kind()),
					Metadata: rec.CombinedMetadata(),
				})
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable(
				[]string{"Field", "Value"},
				buildInspectRows(rec, full),
				[]columnAlignment{alignLeft, alignLeft},
			))
			if message, degraded := rec.Extracted().String(media.KeyError); degraded {
				fmt.Fprintf(out, "Extraction was degraded: %s\n", message)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&full, "full", false, "Dump every metadata field including raw EXIF tags")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit machine-readable JSON")

	return cmd
}

func buildInspectRows(rec *media.Record, full bool) [][]string {
	if full {
		return sortedMetadataRows(rec.CombinedMetadata())
	}

	s := rec.Summary()
	meta := rec.CombinedMetadata()

	rows := [][]string{
		{"File", s.Filename},
		{"Path", s.Path},
		{"Kind", string(s.Kind)},
	}
	if bytes, ok := meta.Int64(media.KeyFileSize); ok {
		rows = append(rows, []string{"Size", formatSize(bytes)})
	}
	if s.Resolution != "" {
		rows = append(rows, []string{"Resolution", s.Resolution})
	}

	switch s.Kind {
	case media.KindImage:
		if s.Format != "" {
			rows = append(rows, []string{"Format", s.Format})
		}
		if s.Camera != "" {
			rows = append(rows, []string{"Camera", s.Camera})
		}
		if s.DateTaken != "" {
			rows = append(rows, []string{"Taken", s.DateTaken})
		}
		if gps, ok := meta.Bool(media.KeyHasGPS); ok {
			rows = append(rows, []string{"GPS", yesNo(gps)})
		}
	case media.KindVideo:
		if s.Duration != "" {
			rows = append(rows, []string{"Duration", s.Duration})
		}
		if s.Codec != "" {
			rows = append(rows, []string{"Codec", s.Codec})
		}
		if s.FPS > 0 {
			rows = append(rows, []string{"FPS", strconv.FormatFloat(s.FPS, 'f', -1, 64)})
		}
		if audio, ok := meta.String(media.KeyAudioCodec); ok && audio != "" {
			rows = append(rows, []string{"Audio", audio})
		}
		if created, ok := meta.Time(media.KeyDateCreated); ok {
			rows = append(rows, []string{"Created", created.Format("2006-01-02 15:04:05")})
		}
	}

	if len(s.Manual) > 0 {
		keys := make([]string, 0, len(s.Manual))
		for key := range s.Manual {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			rows = append(rows, []string{"manual:" + key, metadataValueString(s.Manual[key])})
		}
	}
	return rows
}
