package catalog

import (
	"context"
	"strings"
	"time"

	"mediasort/internal/media"
)

// FilterByKind returns the cataloged records of the given kind, in path order.
func (c *Catalog) FilterByKind(kind media.Kind) []*media.Record {
	return c.filter(func(rec *media.Record) bool {
		return rec.Kind() == kind
	})
}

// FilterByExtension returns records whose extension matches any of exts. The
// leading dot and letter case are ignored.
func (c *Catalog) FilterByExtension(exts ...string) []*media.Record {
	want := make(map[string]struct{}, len(exts))
	for _, ext := range exts {
		ext = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(ext)), ".")
		if ext != "" {
			want[ext] = struct{}{}
		}
	}
	return c.filter(func(rec *media.Record) bool {
		got, _ := rec.Extracted().String(media.KeyFileExtension)
		_, ok := want[strings.TrimPrefix(got, ".")]
		return ok
	})
}

// FilterBySize returns records whose file size lies in [minBytes, maxBytes].
// A non-positive maxBytes leaves the upper bound open. Records added without
// metadata are extracted on first use.
func (c *Catalog) FilterBySize(minBytes, maxBytes int64) []*media.Record {
	return c.filter(func(rec *media.Record) bool {
		c.ensureExtracted(rec)
		size, ok := rec.Extracted().Int64(media.KeyFileSize)
		if !ok {
			return false
		}
		if size < minBytes {
			return false
		}
		return maxBytes <= 0 || size <= maxBytes
	})
}

// FilterByDateRange returns records whose timestamp under the named metadata
// field lies in [from, to]. An empty field uses the record's best timestamp
// (date taken, date created, then filesystem creation date). Zero bounds are
// open; records without the timestamp never match.
func (c *Catalog) FilterByDateRange(field string, from, to time.Time) []*media.Record {
	return c.filter(func(rec *media.Record) bool {
		var ts time.Time
		var ok bool
		if field == "" {
			ts, ok = rec.BestTimestamp()
		} else {
			ts, ok = rec.CombinedMetadata().Time(field)
		}
		if !ok {
			return false
		}
		if !from.IsZero() && ts.Before(from) {
			return false
		}
		return to.IsZero() || !ts.After(to)
	})
}

// ensureExtracted lazily extracts a record that was added to the catalog
// without going through a scan. Callers hold the catalog lock.
func (c *Catalog) ensureExtracted(rec *media.Record) {
	if rec.Extracted() != nil || c.extractor == nil {
		return
	}
	c.extractor.Extract(context.Background(), rec)
}

func (c *Catalog) filter(keep func(*media.Record) bool) []*media.Record {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []*media.Record
	for _, rec := range c.records {
		if keep(rec) {
			out = append(out, rec)
		}
	}
	return out
}
