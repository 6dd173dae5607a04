// Package deps reports the availability of the external tools metadata
// extraction can use. Nothing here is a hard requirement: extraction
// degrades per-field when a tool is missing.
package deps

import (
	"fmt"
	"os/exec"
	"strings"
)

// Requirement defines an external dependency mediasort relies on.
type Requirement struct {
	Name        string
	Command     string
	Description string
	Optional    bool
}

// Status reports the availability of a dependency.
type Status struct {
	Name        string
	Command     string
	Description string
	Optional    bool
	Available   bool
	Detail      string
}

// CheckBinaries evaluates the provided requirements and reports availability.
func CheckBinaries(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		cmd := strings.TrimSpace(req.Command)
		status := Status{
			Name:        req.Name,
			Command:     cmd,
			Description: strings.TrimSpace(req.Description),
			Optional:    req.Optional,
		}
		if cmd == "" {
			status.Available = false
			status.Detail = "command not configured"
			results = append(results, status)
			continue
		}
		if _, err := exec.LookPath(cmd); err != nil {
			status.Available = false
			status.Detail = fmt.Sprintf("binary %q not found", cmd)
			results = append(results, status)
			continue
		}
		status.Available = true
		results = append(results, status)
	}
	return results
}

// Check evaluates the extraction tool set for the given binaries.
func Check(ffprobeBinary, exiftoolBinary string) []Status {
	return CheckBinaries([]Requirement{
		{
			Name:        "FFprobe",
			Command:     ffprobeBinary,
			Description: "Required for video metadata",
		},
		{
			Name:        "ExifTool",
			Command:     exiftoolBinary,
			Description: "Enables HEIC and camera raw metadata",
			Optional:    true,
		},
	})
}

// Resolve returns the resolved path of command when it is found on PATH,
// or "" when it is not.
func Resolve(command string) string {
	command = strings.TrimSpace(command)
	if command == "" {
		return ""
	}
	path, err := exec.LookPath(command)
	if err != nil {
		return ""
	}
	return path
}
