package main

import (
	"fmt"
	"os/signal"
	"sort"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"mediasort/internal/config"
	"mediasort/internal/preflight"
)

func newDuplicatesCommand(ctx *commandContext) *cobra.Command {
	var glob string
	var recursive bool
	var workers int
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "duplicates <directory>",
		Short: "Scan a directory and list files with identical content",
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

			_, err = cat.Scan(runCtx, dir, opts)
			progress.Finish()
			if err != nil {
				return err
			}

			groups := cat.DuplicateGroups()
			if jsonOutput {
				return writeJSON(cmd, groups)
			}

			out := cmd.OutOrStdout()
			if len(groups) == 0 {
				fmt.Fprintln(out, "No duplicates found")
				return nil
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Hash", "Files", "Paths"},
				buildDuplicateRows(groups),
				[]columnAlignment{alignLeft, alignRight, alignLeft},
			))
			return nil
		},
	}

	cmd.Flags().StringVar(&glob, "glob", "*", "Filename pattern for candidate files")
	cmd.Flags().BoolVar(&recursive, "recursive", true, "Descend into subdirectories")
	cmd.Flags().IntVar(&workers, "workers", 4, "Parallel extraction workers")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit machine-readable JSON")

	return cmd
}

// buildDuplicateRows flattens duplicate groups into table rows. The first
// path in each group is the cataloged file; the rest were excluded as
// duplicates.
func buildDuplicateRows(groups map[string][]string) [][]string {
	hashes := make([]string, 0, len(groups))
	for hash := range groups {
		hashes = append(hashes, hash)
	}
	sort.Strings(hashes)

	rows := make([][]string, 0, len(hashes))
	for _, hash := range hashes {
		paths := groups[hash]
		short := hash
		if len(short) > 12 {
			short = short[:12]
		}
		rows = append(rows, []string{
			short,
			fmt.Sprintf("%d", len(paths)),
			strings.Join(paths, "\n"),
		})
	}
	return rows
}
