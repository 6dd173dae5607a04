package main

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"mediasort/internal/media"
)

// parseMetaFlags converts repeated --meta key=value flags into a manual
// metadata map. Values stay strings; record validation coerces typed fields
// such as rating.
func parseMetaFlags(flags []string) (map[string]any, error) {
	if len(flags) == 0 {
		return nil, nil
	}
	manual := make(map[string]any, len(flags))
	for _, flag := range flags {
		key, value, found := strings.Cut(flag, "=")
		key = strings.TrimSpace(key)
		if !found || key == "" {
			return nil, fmt.Errorf("invalid --meta value %q (expected key=value)", flag)
		}
		manual[key] = strings.TrimSpace(value)
	}
	return manual, nil
}

// formatSize renders a byte count for humans, e.g. "2.4 MB".
func formatSize(bytes int64) string {
	if bytes < 0 {
		return "unknown"
	}
	return humanize.Bytes(uint64(bytes))
}

// metadataValueString renders a single metadata value for table output.
func metadataValueString(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case time.Time:
		return v.Format("2006-01-02 15:04:05")
	case float64:
		return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.2f", v), "0"), ".")
	case map[string]string:
		keys := make([]string, 0, len(v))
		for key := range v {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		parts := make([]string, 0, len(keys))
		for _, key := range keys {
			parts = append(parts, key+"="+v[key])
		}
		return strings.Join(parts, ", ")
	default:
		return fmt.Sprint(v)
	}
}

// sortedMetadataRows flattens a metadata map into sorted field/value rows.
func sortedMetadataRows(meta media.Metadata) [][]string {
	keys := make([]string, 0, len(meta))
	for key := range meta {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	rows := make([][]string, 0, len(keys))
	for _, key := range keys {
		rows = append(rows, []string{key, metadataValueString(meta[key])})
	}
	return rows
}
