package main

import (
	"os"

	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"
)

// scanProgress adapts a terminal progress bar to the catalog's progress
// callback. The bar is created lazily because the file total is only known
// once enumeration finishes.
type scanProgress struct {
	description string
	bar         *progressbar.ProgressBar
}

// newScanProgress returns a progress reporter writing to stderr, or nil when
// stderr is not a terminal or machine-readable output was requested.
func newScanProgress(description string, jsonOutput bool) *scanProgress {
	if jsonOutput {
		return nil
	}
	fd := os.Stderr.Fd()
	if !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd) {
		return nil
	}
	return &scanProgress{description: description}
}

// Callback returns the function handed to the catalog scanner. A nil
// receiver yields a nil callback, which disables progress reporting.
func (p *scanProgress) Callback() func(done, total int) {
	if p == nil {
		return nil
	}
	return func(done, total int) {
		if p.bar == nil {
			p.bar = progressbar.NewOptions(total,
				progressbar.OptionSetWriter(os.Stderr),
				progressbar.OptionSetDescription(p.description),
				progressbar.OptionShowCount(),
				progressbar.OptionClearOnFinish(),
			)
		}
		_ = p.bar.Set(done)
	}
}

// Finish clears the bar so subsequent command output starts on a clean line.
func (p *scanProgress) Finish() {
	if p == nil || p.bar == nil {
		return
	}
	_ = p.bar.Finish()
}
