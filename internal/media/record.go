package media

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Recognized manual metadata keys. Unknown keys are stored but carry no
// fixed-field semantics.
const (
	ManualTitle       = "title"
	ManualDescription = "description"
	ManualTags        = "tags"
	ManualLocation    = "location"
	ManualEvent       = "event"
	ManualPeople      = "people"
	ManualRating      = "rating"
	ManualCustomDate  = "custom_date"
)

// ManualKeys lists the recognized manual metadata keys in display order.
func ManualKeys() []string {
	return []string{
		ManualTitle, ManualDescription, ManualTags, ManualLocation,
		ManualEvent, ManualPeople, ManualRating, ManualCustomDate,
	}
}

// Record combines a file path, its media kind, extracted metadata, and
// user-supplied manual metadata. The kind is immutable after creation; the
// path changes only when the underlying file is moved.
type Record struct {
	path      string
	kind      Kind
	extracted Metadata
	manual    map[string]any
}

// NewRecord builds a record for path, detecting the kind by classification.
func NewRecord(path string) (*Record, error) {
	return newRecord(defaultClassifier, path, "")
}

// NewRecordWithKind builds a record for path with a caller-supplied kind.
// Construction fails when the supplied kind disagrees with classification.
func NewRecordWithKind(path string, kind Kind) (*Record, error) {
	return newRecord(defaultClassifier, path, kind)
}

// NewRecordWithClassifier builds a record using a configured classifier.
// An empty kind means detect.
func NewRecordWithClassifier(c *Classifier, path string, kind Kind) (*Record, error) {
	if c == nil {
		c = defaultClassifier
	}
	return newRecord(c, path, kind)
}

func newRecord(c *Classifier, path string, kind Kind) (*Record, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, Wrap(ErrValidation, "record", "create", fmt.Sprintf("stat %s", path), err)
	}
	if !info.Mode().IsRegular() {
		return nil, Wrap(ErrValidation, "record", "create", fmt.Sprintf("%s is not a regular file", path), nil)
	}

	detected, ok := c.Classify(path)
	if !ok {
		return nil, Wrap(ErrUnsupportedType, "record", "create", path, nil)
	}
	if kind != "" && kind != detected {
		return nil, Wrap(ErrTypeMismatch, "record", "create",
			fmt.Sprintf("%s: declared %s, detected %s", path, kind, detected), nil)
	}

	return &Record{
		path:   path,
		kind:   detected,
		manual: make(map[string]any),
	}, nil
}

// Path returns the record's current filesystem location.
func (r *Record) Path() string { return r.path }

// Kind returns the immutable media kind.
func (r *Record) Kind() Kind { return r.kind }

// SetPath updates the record's location after a move.
func (r *Record) SetPath(path string) { r.path = path }

// Extracted returns the extracted metadata map (shared, not a copy).
func (r *Record) Extracted() Metadata { return r.extracted }

// SetExtracted installs the extracted metadata. Extraction populates this
// once; later file moves do not invalidate it.
func (r *Record) SetExtracted(meta Metadata) { r.extracted = meta }

// SetManual stores one manual metadata entry. Ratings must be integers in
// the 1..5 range.
func (r *Record) SetManual(key string, value any) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return Wrap(ErrValidation, "record", "set manual", "empty metadata key", nil)
	}
	if key == ManualRating {
		rating, ok := toInt(value)
		if !ok || rating < 1 || rating > 5 {
			return Wrap(ErrValidation, "record", "set manual",
				fmt.Sprintf("rating must be an integer between 1 and 5, got %v", value), nil)
		}
		r.manual[key] = rating
		return nil
	}
	r.manual[key] = value
	return nil
}

// ApplyManual merges a batch of manual entries, validating each.
func (r *Record) ApplyManual(values map[string]any) error {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if err := r.SetManual(k, values[k]); err != nil {
			return err
		}
	}
	return nil
}

// Manual returns a copy of the manual metadata.
func (r *Record) Manual() map[string]any {
	out := make(map[string]any, len(r.manual))
	for k, v := range r.manual {
		out[k] = v
	}
	return out
}

// CombinedMetadata returns extracted metadata overlaid with manual entries;
// manual values win on key conflicts. The result is a fresh map, safe for
// callers to modify.
func (r *Record) CombinedMetadata() Metadata {
	out := r.extracted.Clone()
	if out == nil {
		out = make(Metadata, len(r.manual))
	}
	for k, v := range r.manual {
		out[k] = v
	}
	return out
}

// Summary is the per-file view handed to callers for display.
type Summary struct {
	Filename   string
	Path       string
	Kind       Kind
	SizeMB     float64
	Resolution string
	Format     string
	Camera     string
	DateTaken  string
	Duration   string
	Codec      string
	FPS        float64
	Manual     map[string]any
}

// Summary derives the display view from combined metadata.
func (r *Record) Summary() Summary {
	meta := r.CombinedMetadata()
	s := Summary{
		Path: r.path,
		Kind: r.kind,
	}
	s.Filename, _ = meta.String(KeyFilename)
	if s.Filename == "" {
		s.Filename = filepath.Base(r.path)
	}
	s.SizeMB, _ = meta.Float(KeyFileSizeMB)
	s.Resolution, _ = meta.String(KeyResolution)

	switch r.kind {
	case KindImage:
		s.Format, _ = meta.String(KeyFormat)
		cameraMake, _ := meta.String(KeyCameraMake)
		cameraModel, _ := meta.String(KeyCameraModel)
		s.Camera = strings.TrimSpace(cameraMake + " " + cameraModel)
		if taken, ok := meta.Time(KeyDateTaken); ok {
			s.DateTaken = taken.Format("2006-01-02 15:04:05")
		}
	case KindVideo:
		s.Duration, _ = meta.String(KeyDurationFormatted)
		s.Codec, _ = meta.String(KeyCodec)
		s.FPS, _ = meta.Float(KeyFPS)
	}

	if len(r.manual) > 0 {
		s.Manual = r.Manual()
	}
	return s
}

func toInt(value any) (int, bool) {
	switch v := value.(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		if v == float64(int(v)) {
			return int(v), true
		}
	case string:
		var n int
		if _, err := fmt.Sscanf(strings.TrimSpace(v), "%d", &n); err == nil {
			return n, true
		}
	}
	return 0, false
}
