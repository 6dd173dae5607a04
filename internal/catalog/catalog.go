package catalog

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"mediasort/internal/extract"
	"mediasort/internal/logging"
	"mediasort/internal/media"
)

// Scans with more candidates than this run extraction in parallel.
const parallelThreshold = 10

// ScanOptions control a single directory scan.
type ScanOptions struct {
	// Glob filters files by base name, "*" when empty.
	Glob string
	// Recursive descends into subdirectories.
	Recursive bool
	// Workers caps parallel extraction. Values below 2 force sequential
	// processing, as do scans small enough not to warrant a pool.
	Workers int
	// Progress, when set, is called after each candidate is processed.
	Progress func(done, total int)
}

// ScanStats summarize one scan.
type ScanStats struct {
	Total      int `json:"total"`
	Images     int `json:"images"`
	Videos     int `json:"videos"`
	Skipped    int `json:"skipped"`
	Errors     int `json:"errors"`
	Duplicates int `json:"duplicates"`
}

// Catalog holds the media records of one scan. Records with identical
// content hashes are stored once; later sightings are remembered as
// duplicate paths. Safe for concurrent use during a parallel scan.
type Catalog struct {
	classifier *media.Classifier
	extractor  *extract.Extractor
	logger     *slog.Logger

	mu       sync.Mutex
	records  []*media.Record
	byHash   map[string]*media.Record
	dupPaths map[string][]string
}

// New builds an empty catalog. A nil classifier uses the built-in extension
// sets; a nil logger discards output.
func New(classifier *media.Classifier, extractor *extract.Extractor, logger *slog.Logger) *Catalog {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Catalog{
		classifier: classifier,
		extractor:  extractor,
		logger:     logging.WithComponent(logger, "catalog"),
		byHash:     make(map[string]*media.Record),
		dupPaths:   make(map[string][]string),
	}
}

type candidate struct {
	path string
	kind media.Kind
}

// Scan walks dir for media files, extracts their metadata, and fills the
// catalog with the resulting records. Any records and duplicate bookkeeping
// from an earlier scan are discarded first. Non-media files are skipped;
// files whose content hash is already cataloged are recorded as duplicates.
func (c *Catalog) Scan(ctx context.Context, dir string, opts ScanOptions) (ScanStats, error) {
	c.Clear()

	info, err := os.Stat(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return ScanStats{}, media.Wrap(media.ErrDirectoryNotFound, "catalog", "scan", dir, err)
		}
		return ScanStats{}, media.Wrap(media.ErrValidation, "catalog", "scan", dir, err)
	}
	if !info.IsDir() {
		return ScanStats{}, media.Wrap(media.ErrNotADirectory, "catalog", "scan", dir, nil)
	}

	glob := opts.Glob
	if glob == "" {
		glob = "*"
	}

	var stats ScanStats
	paths, walkErrors, err := enumerate(ctx, dir, glob, opts.Recursive)
	if err != nil {
		return ScanStats{}, err
	}
	stats.Errors += walkErrors

	candidates := make([]candidate, 0, len(paths))
	for _, path := range paths {
		kind, ok := c.classify(path)
		if !ok {
			stats.Skipped++
			continue
		}
		candidates = append(candidates, candidate{path: path, kind: kind})
	}

	c.logger.Debug("scan enumerated",
		logging.String(logging.FieldPath, dir),
		logging.Int("candidates", len(candidates)),
		logging.Int("skipped", stats.Skipped))

	if opts.Workers > 1 && len(candidates) > parallelThreshold {
		err = c.processParallel(ctx, candidates, opts, &stats)
	} else {
		err = c.processSequential(ctx, candidates, opts, &stats)
	}
	if err != nil {
		return stats, err
	}

	c.mu.Lock()
	sort.Slice(c.records, func(i, j int) bool {
		return c.records[i].Path() < c.records[j].Path()
	})
	c.mu.Unlock()

	c.logger.Info("scan complete",
		logging.String(logging.FieldPath, dir),
		logging.Int("total", stats.Total),
		logging.Int("images", stats.Images),
		logging.Int("videos", stats.Videos),
		logging.Int("skipped", stats.Skipped),
		logging.Int("errors", stats.Errors),
		logging.Int("duplicates", stats.Duplicates))
	return stats, nil
}

func (c *Catalog) classify(path string) (media.Kind, bool) {
	if c.classifier != nil {
		return c.classifier.Classify(path)
	}
	return media.Classify(path)
}

func (c *Catalog) processSequential(ctx context.Context, candidates []candidate, opts ScanOptions, stats *ScanStats) error {
	for done, cand := range candidates {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("scan canceled: %w", err)
		}
		c.processOne(ctx, cand, stats)
		if opts.Progress != nil {
			opts.Progress(done+1, len(candidates))
		}
	}
	return nil
}

func (c *Catalog) processParallel(ctx context.Context, candidates []candidate, opts ScanOptions, stats *ScanStats) error {
	jobs := make(chan candidate)
	var wg sync.WaitGroup
	var done int
	var progressMu sync.Mutex

	workers := min(opts.Workers, len(candidates))
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for cand := range jobs {
				if ctx.Err() != nil {
					continue
				}
				c.processOne(ctx, cand, stats)
				if opts.Progress != nil {
					progressMu.Lock()
					done++
					opts.Progress(done, len(candidates))
					progressMu.Unlock()
				}
			}
		}()
	}

feed:
	for _, cand := range candidates {
		select {
		case <-ctx.Done():
			break feed
		case jobs <- cand:
		}
	}
	close(jobs)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("scan canceled: %w", err)
	}
	return nil
}

// processOne builds and extracts a record, then inserts it under the lock.
// Stats fields are only touched while the lock is held.
func (c *Catalog) processOne(ctx context.Context, cand candidate, stats *ScanStats) {
	rec, err := media.NewRecordWithClassifier(c.classifier, cand.path, cand.kind)
	if err != nil {
		c.logger.Warn("record rejected",
			logging.String(logging.FieldPath, cand.path),
			logging.Error(err))
		c.mu.Lock()
		stats.Errors++
		c.mu.Unlock()
		return
	}
	c.extractor.Extract(ctx, rec)

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, failed := rec.Extracted()[media.KeyError]; failed {
		stats.Errors++
	}
	if !c.insertLocked(rec) {
		stats.Duplicates++
		return
	}
	stats.Total++
	switch rec.Kind() {
	case media.KindImage:
		stats.Images++
	case media.KindVideo:
		stats.Videos++
	}
}

// insertLocked adds rec unless its hash is already cataloged. Records
// without a hash cannot be matched and are always added.
func (c *Catalog) insertLocked(rec *media.Record) bool {
	hash, ok := rec.Extracted().String(media.KeyFileHash)
	if ok && hash != "" {
		if _, seen := c.byHash[hash]; seen {
			c.dupPaths[hash] = append(c.dupPaths[hash], rec.Path())
			return false
		}
		c.byHash[hash] = rec
	}
	c.records = append(c.records, rec)
	return true
}

// Add inserts an already-built record, applying the same hash deduplication
// as a scan. It reports whether the record was added.
func (c *Catalog) Add(rec *media.Record) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.insertLocked(rec)
}

// Records returns the cataloged records ordered by path.
func (c *Catalog) Records() []*media.Record {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]*media.Record, len(c.records))
	copy(out, c.records)
	return out
}

// Len returns the number of cataloged records.
func (c *Catalog) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.records)
}

// Clear drops all records and duplicate bookkeeping.
func (c *Catalog) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.records = nil
	c.byHash = make(map[string]*media.Record)
	c.dupPaths = make(map[string][]string)
}

// DuplicateGroups returns, per content hash, every path where that content
// was seen, for hashes seen more than once. The first entry in each group is
// the cataloged record's path.
func (c *Catalog) DuplicateGroups() map[string][]string {
	c.mu.Lock()
	defer c.mu.Unlock()

	groups := make(map[string][]string, len(c.dupPaths))
	for hash, extras := range c.dupPaths {
		if len(extras) == 0 {
			continue
		}
		group := make([]string, 0, len(extras)+1)
		if kept, ok := c.byHash[hash]; ok {
			group = append(group, kept.Path())
		}
		group = append(group, extras...)
		groups[hash] = group
	}
	return groups
}

// enumerate lists files under dir whose base name matches glob. Unreadable
// subtrees are counted, not fatal.
func enumerate(ctx context.Context, dir, glob string, recursive bool) ([]string, int, error) {
	var paths []string
	walkErrors := 0

	if recursive {
		err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			if err != nil {
				walkErrors++
				return nil
			}
			if d.IsDir() {
				return nil
			}
			if match, _ := filepath.Match(glob, d.Name()); match {
				paths = append(paths, path)
			}
			return nil
		})
		if err != nil {
			return nil, walkErrors, fmt.Errorf("scan canceled: %w", err)
		}
	} else {
		entries, err := os.ReadDir(dir)
		if err != nil {
			return nil, 0, media.Wrap(media.ErrValidation, "catalog", "scan", fmt.Sprintf("read %s", dir), err)
		}
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			if match, _ := filepath.Match(glob, entry.Name()); match {
				paths = append(paths, filepath.Join(dir, entry.Name()))
			}
		}
	}

	sort.Strings(paths)
	return paths, walkErrors, nil
}
