package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"mediasort/internal/media"
)

func newTemplatesCommand() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "templates",
		Short: "List the built-in filename and folder template presets",
		Long: `Templates lists the built-in presets for --filename-template and
--folder-template. Templates substitute {variable} placeholders:

  original_name, extension, type, file_hash, width, height, resolution,
  year, month, day, hour, minute, second, camera_make, camera_model,
  and manual_<key> for every manual metadata key.

Folder templates additionally default missing variables to "Unknown" and
may use / to nest directories.`,
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			if jsonOutput {
				return writeJSON(cmd, struct {
					Filename []media.Preset `json:"filename"`
					Folder   []media.Preset `json:"folder"`
				}{media.FilenamePresets(), media.FolderPresets()})
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Filename presets")
			fmt.Fprintln(out, renderTable(
				[]string{"Name", "Template", "Description"},
				buildPresetRows(media.FilenamePresets()),
				[]columnAlignment{alignLeft, alignLeft, alignLeft},
			))
			fmt.Fprintln(out, "Folder presets")
			fmt.Fprintln(out, renderTable(
				[]string{"Name", "Template", "Description"},
				buildPresetRows(media.FolderPresets()),
				[]columnAlignment{alignLeft, alignLeft, alignLeft},
			))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit machine-readable JSON")

	return cmd
}

func buildPresetRows(presets []media.Preset) [][]string {
	rows := make([][]string, 0, len(presets))
	for _, preset := range presets {
		template := preset.Template
		if template == "" {
			template = "(flat)"
		}
		rows = append(rows, []string{preset.Name, template, preset.Description})
	}
	return rows
}
