package catalog

import (
	"strings"

	"mediasort/internal/media"
)

// Summary aggregates the catalog contents for display.
type Summary struct {
	TotalFiles      int            `json:"total_files"`
	Images          int            `json:"images"`
	Videos          int            `json:"videos"`
	TotalBytes      int64          `json:"total_bytes"`
	ByExtension     map[string]int `json:"by_extension"`
	DuplicateGroups int            `json:"duplicate_groups"`
	WithErrors      int            `json:"with_errors"`
}

// Summarize computes aggregate statistics over all cataloged records.
func (c *Catalog) Summarize() Summary {
	c.mu.Lock()
	defer c.mu.Unlock()

	sum := Summary{ByExtension: make(map[string]int)}
	for _, rec := range c.records {
		sum.TotalFiles++
		switch rec.Kind() {
		case media.KindImage:
			sum.Images++
		case media.KindVideo:
			sum.Videos++
		}

		meta := rec.Extracted()
		if size, ok := meta.Int64(media.KeyFileSize); ok {
			sum.TotalBytes += size
		}
		if ext, ok := meta.String(media.KeyFileExtension); ok && ext != "" {
			sum.ByExtension[strings.TrimPrefix(ext, ".")]++
		}
		if _, failed := meta[media.KeyError]; failed {
			sum.WithErrors++
		}
	}
	for _, extras := range c.dupPaths {
		if len(extras) > 0 {
			sum.DuplicateGroups++
		}
	}
	return sum
}
