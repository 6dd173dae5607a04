package preflight

import (
	"mediasort/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes the filesystem checks that apply to the given config.
// Tool availability is reported separately by CheckSystemDeps.
func RunAll(cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	var results []Result

	if cfg.Organize.OutputDir != "" {
		results = append(results, CheckDirectoryAccess("Output directory", cfg.Organize.OutputDir))
	}
	if cfg.Logging.File != "" {
		results = append(results, CheckDirectoryAccess("Log directory", parentDir(cfg.Logging.File)))
	}

	return results
}
