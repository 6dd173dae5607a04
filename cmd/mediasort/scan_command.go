package main

import (
	"fmt"
	"os/signal"
	"sort"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"

	"mediasort/internal/catalog"
	"mediasort/internal/config"
	"mediasort/internal/media"
	"mediasort/internal/preflight"
)

type scanReport struct {
	Directory string            `json:"directory"`
	Stats     catalog.ScanStats `json:"stats"`
	Summary   catalog.Summary   `json:"summary"`
	Files     []fileReport      `json:"files,omitempty"`
}

type fileReport struct {
	Path     string         `json:"path"`
	Kind     string         `json:"kind"`
	Metadata media.Metadata `json:"metadata"`
}

func newScanCommand(ctx *commandContext) *cobra.Command {
	var glob string
	var recursive bool
	var workers int
	var long bool
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "scan <directory>",
		Short: "Scan a directory and catalog its media files",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runCtx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			dir, err := config.ExpandPath(args[0])
			if err != nil {
				return err
			}
			if err := preflight.CheckSourceDir(dir); err != nil {
				return err
			}

			extractor := ctx.newExtractor()
			defer extractor.Close()
			cat := ctx.newCatalog(extractor)

			opts := ctx.scanOptions(cmd, glob, recursive, workers)
			progress := newScanProgress("Scanning", jsonOutput)
			opts.Progress = progress.Callback()

			stats, err := cat.Scan(runCtx, dir, opts)
			progress.Finish()
			if err != nil {
				return err
			}

			if jsonOutput {
				report := scanReport{Directory: dir, Stats: stats, Summary: cat.Summarize()}
				if long {
					report.Files = buildFileReports(cat.Records())
				}
				return writeJSON(cmd, report)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Scanned %s\n", dir)
			fmt.Fprintln(out, renderTable(
				[]string{"Metric", "Count"},
				buildScanStatsRows(stats, cat.Summarize()),
				[]columnAlignment{alignLeft, alignRight},
			))

			if extRows := buildExtensionRows(cat.Summarize()); len(extRows) > 0 {
				fmt.Fprintln(out, renderTable(
					[]string{"Extension", "Files"},
					extRows,
					[]columnAlignment{alignLeft, alignRight},
				))
			}

			if long {
				records := cat.Records()
				if len(records) == 0 {
					fmt.Fprintln(out, "No media files found")
					return nil
				}
				fmt.Fprintln(out, renderTable(
					[]string{"File", "Kind", "Size", "Resolution", "Captured", "Duration"},
					buildFileRows(records),
					[]columnAlignment{alignLeft, alignLeft, alignRight, alignLeft, alignLeft, alignLeft},
				))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&glob, "glob", "*", "Filename pattern for candidate files")
	cmd.Flags().BoolVar(&recursive, "recursive", true, "Descend into subdirectories")
	cmd.Flags().IntVar(&workers, "workers", 4, "Parallel extraction workers")
	cmd.Flags().BoolVarP(&long, "long", "l", false, "List every cataloged file")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit machine-readable JSON")

	return cmd
}

func buildScanStatsRows(stats catalog.ScanStats, sum catalog.Summary) [][]string {
	return [][]string{
		{"Cataloged", strconv.Itoa(stats.Total)},
		{"Images", strconv.Itoa(stats.Images)},
		{"Videos", strconv.Itoa(stats.Videos)},
		{"Duplicates", strconv.Itoa(stats.Duplicates)},
		{"Skipped", strconv.Itoa(stats.Skipped)},
		{"Errors", strconv.Itoa(stats.Errors)},
		{"Total size", formatSize(sum.TotalBytes)},
	}
}

func buildExtensionRows(sum catalog.Summary) [][]string {
	exts := make([]string, 0, len(sum.ByExtension))
	for ext := range sum.ByExtension {
		exts = append(exts, ext)
	}
	sort.Slice(exts, func(i, j int) bool {
		if sum.ByExtension[exts[i]] != sum.ByExtension[exts[j]] {
			return sum.ByExtension[exts[i]] > sum.ByExtension[exts[j]]
		}
		return exts[i] < exts[j]
	})

	rows := make([][]string, 0, len(exts))
	for _, ext := range exts {
		rows = append(rows, []string{ext, strconv.Itoa(sum.ByExtension[ext])})
	}
	return rows
}

func buildFileRows(records []*media.Record) [][]string {
	rows := make([][]string, 0, len(records))
	for _, rec := range records {
		s := rec.Summary()
		size := ""
		if bytes, ok := rec.Extracted().Int64(media.KeyFileSize); ok {
			size = formatSize(bytes)
		}
		captured := ""
		if ts, ok := rec.BestTimestamp(); ok {
			captured = ts.Format("2006-01-02 15:04")
		}
		rows = append(rows, []string{s.Path, string(s.Kind), size, s.Resolution, captured, s.Duration})
	}
	return rows
}

func buildFileReports(records []*media.Record) []fileReport {
	reports := make([]fileReport, 0, len(records))
	for _, rec := range records {
		reports = append(reports, fileReport{
			Path:     rec.Path(),
			Kind:     string(rec.Kind()),
			Metadata: rec.CombinedMetadata(),
		})
	}
	return reports
}
