package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"mediasort/internal/deps"
	"mediasort/internal/preflight"
)

type depsReport struct {
	Tools  []toolReport  `json:"tools"`
	Checks []checkReport `json:"checks"`
}

type toolReport struct {
	Name        string `json:"name"`
	Command     string `json:"command"`
	Description string `json:"description"`
	Optional    bool   `json:"optional"`
	Available   bool   `json:"available"`
	Path        string `json:"path,omitempty"`
	Detail      string `json:"detail,omitempty"`
}

type checkReport struct {
	Name   string `json:"name"`
	Passed bool   `json:"passed"`
	Detail string `json:"detail"`
}

func newDepsCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "deps",
		Short: "Show availability of external tools and configured directories",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := ctx.configValue()
			statuses := preflight.CheckSystemDeps(cfg)
			checks := preflight.RunAll(cfg)

			if jsonOutput {
				return writeJSON(cmd, buildDepsReport(statuses, checks))
			}

			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)

			for _, line := range renderSectionHeader("External tools", colorize) {
				fmt.Fprintln(out, line)
			}
			for _, status := range statuses {
				fmt.Fprintln(out, renderStatusLine(status.Name, toolStatusKind(status), toolStatusMessage(status), colorize))
			}

			if len(checks) > 0 {
				fmt.Fprintln(out)
				for _, line := range renderSectionHeader("Directories", colorize) {
					fmt.Fprintln(out, line)
				}
				for _, check := range checks {
					kind := statusError
					if check.Passed {
						kind = statusOK
					}
					fmt.Fprintln(out, renderStatusLine(check.Name, kind, check.Detail, colorize))
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit machine-readable JSON")

	return cmd
}

func toolStatusKind(status deps.Status) statusKind {
	switch {
	case status.Available:
		return statusOK
	case status.Optional:
		return statusWarn
	default:
		return statusError
	}
}

func toolStatusMessage(status deps.Status) string {
	if status.Available {
		if path := deps.Resolve(status.Command); path != "" {
			return path
		}
		return status.Command
	}
	message := status.Detail
	if status.Optional {
		message += " (optional: " + status.Description + ")"
	} else {
		message += " (" + status.Description + ")"
	}
	return message
}

func buildDepsReport(statuses []deps.Status, checks []preflight.Result) depsReport {
	report := depsReport{
		Tools:  make([]toolReport, 0, len(statuses)),
		Checks: make([]checkReport, 0, len(checks)),
	}
	for _, status := range statuses {
		tool := toolReport{
			Name:        status.Name,
			Command:     status.Command,
			Description: status.Description,
			Optional:    status.Optional,
			Available:   status.Available,
			Detail:      status.Detail,
		}
		if status.Available {
			tool.Path = deps.Resolve(status.Command)
		}
		report.Tools = append(report.Tools, tool)
	}
	for _, check := range checks {
		report.Checks = append(report.Checks, checkReport{
			Name:   check.Name,
			Passed: check.Passed,
			Detail: check.Detail,
		})
	}
	return report
}
