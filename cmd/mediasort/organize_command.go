package main

import (
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"mediasort/internal/config"
	"mediasort/internal/organize"
	"mediasort/internal/preflight"
)

func newOrganizeCommand(ctx *commandContext) *cobra.Command {
	var output string
	var filenameTemplate string
	var folderTemplate string
	var operation string
	var dryRun bool
	var metaFlags []string
	var glob string
	var recursive bool
	var workers int
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "organize <directory>",
		Short: "Scan a directory and place its media under the output root",
		Long: `Organize scans a directory, renders a destination for every cataloged
file from the filename and folder templates, and copies or moves the files
into the output root. Use --dry-run to preview the placements without
touching the filesystem.`,
		Args: cobra.ExactArgs(1),
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

			req, err := buildOrganizeRequest(cmd, ctx.configValue(), organizeFlags{
				output:           output,
				filenameTemplate: filenameTemplate,
				folderTemplate:   folderTemplate,
				operation:        operation,
				dryRun:           dryRun,
			})
			if err != nil {
				return err
			}

			manual, err := parseMetaFlags(metaFlags)
			if err != nil {
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

			records := cat.Records()
			for _, rec := range records {
				if err := rec.ApplyManual(manual); err != nil {
					return err
				}
			}

			result, err := organize.New(ctx.loggerValue()).Organize(runCtx, records, req)
			if err != nil {
				return err
			}

			if jsonOutput {
				return writeJSON(cmd, result)
			}
			printOrganizeResult(cmd, result)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output root directory")
	cmd.Flags().StringVar(&filenameTemplate, "filename-template", "{original_name}{extension}", "Template for destination filenames")
	cmd.Flags().StringVar(&folderTemplate, "folder-template", "", "Template for destination subfolders (empty keeps everything flat)")
	cmd.Flags().StringVar(&operation, "operation", "copy", "Transfer operation (copy or move)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Preview placements without touching any file")
	cmd.Flags().StringArrayVar(&metaFlags, "meta", nil, "Manual metadata key=value applied to every file (repeatable)")
	cmd.Flags().StringVar(&glob, "glob", "*", "Filename pattern for candidate files")
	cmd.Flags().BoolVar(&recursive, "recursive", true, "Descend into subdirectories")
	cmd.Flags().IntVar(&workers, "workers", 4, "Parallel extraction workers")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit machine-readable JSON")

	return cmd
}

type organizeFlags struct {
	output           string
	filenameTemplate string
	folderTemplate   string
	operation        string
	dryRun           bool
}

// buildOrganizeRequest merges organize flags with configured defaults and
// validates the operation. Explicit flags win over the config file.
func buildOrganizeRequest(cmd *cobra.Command, cfg *config.Config, flags organizeFlags) (organize.Request, error) {
	req := organize.Request{
		OutputRoot:       flags.output,
		FilenameTemplate: flags.filenameTemplate,
		FolderTemplate:   flags.folderTemplate,
		DryRun:           flags.dryRun,
	}
	operation := flags.operation

	if cfg != nil {
		if !cmd.Flags().Changed("output") {
			req.OutputRoot = cfg.Organize.OutputDir
		}
		if !cmd.Flags().Changed("filename-template") && cfg.Organize.FilenameTemplate != "" {
			req.FilenameTemplate = cfg.Organize.FilenameTemplate
		}
		if !cmd.Flags().Changed("folder-template") {
			req.FolderTemplate = cfg.Organize.FolderTemplate
		}
		if !cmd.Flags().Changed("operation") && cfg.Organize.Operation != "" {
			operation = cfg.Organize.Operation
		}
	}

	if req.OutputRoot == "" {
		return organize.Request{}, errors.New("output directory is required: pass --output or set [organize] output_dir")
	}
	expanded, err := config.ExpandPath(req.OutputRoot)
	if err != nil {
		return organize.Request{}, err
	}
	req.OutputRoot = expanded

	op, err := organize.ParseOperation(operation)
	if err != nil {
		return organize.Request{}, err
	}
	req.Operation = op
	return req, nil
}

func printOrganizeResult(cmd *cobra.Command, result organize.Result) {
	out := cmd.OutOrStdout()

	if len(result.Placements) > 0 {
		verb := "Placed"
		if result.DryRun {
			verb = "Would place"
		}
		fmt.Fprintf(out, "%s %d file(s)\n", verb, len(result.Placements))
		fmt.Fprintln(out, renderTable(
			[]string{"Source", "Destination", "Operation"},
			buildPlacementRows(result.Placements),
			[]columnAlignment{alignLeft, alignLeft, alignLeft},
		))
	}

	if len(result.Failures) > 0 {
		fmt.Fprintln(out, renderTable(
			[]string{"Source", "Error"},
			buildFailureRows(result.Failures),
			[]columnAlignment{alignLeft, alignLeft},
		))
	}

	fmt.Fprintf(out, "Processed %d, errors %d (%.0f%% success)\n",
		result.Processed, result.Errors, result.SuccessRate())
	if result.SessionID != "" {
		fmt.Fprintf(out, "Session %s\n", result.SessionID)
	}
	if result.DryRun {
		fmt.Fprintln(out, "Dry run: no files were touched")
	}
}

func buildPlacementRows(placements []organize.Placement) [][]string {
	rows := make([][]string, 0, len(placements))
	for _, p := range placements {
		rows = append(rows, []string{p.Source, p.Destination, p.Operation})
	}
	return rows
}

func buildFailureRows(failures []organize.Failure) [][]string {
	rows := make([][]string, 0, len(failures))
	for _, f := range failures {
		rows = append(rows, []string{f.Source, f.Message})
	}
	return rows
}
