package organize

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"mediasort/internal/fileutil"
	"mediasort/internal/logging"
	"mediasort/internal/media"
	"mediasort/internal/preflight"
)

// Operation selects what happens to the source file.
type Operation string

const (
	OperationCopy Operation = "copy"
	OperationMove Operation = "move"
)

// ParseOperation validates a user-supplied operation name.
func ParseOperation(value string) (Operation, error) {
	switch Operation(strings.ToLower(strings.TrimSpace(value))) {
	case OperationCopy:
		return OperationCopy, nil
	case OperationMove:
		return OperationMove, nil
	default:
		return "", media.Wrap(media.ErrValidation, "organize", "parse operation",
			fmt.Sprintf("unknown operation %q (copy or move)", value), nil)
	}
}

// Request bundles the parameters of one organization run.
type Request struct {
	OutputRoot       string
	FilenameTemplate string
	FolderTemplate   string
	Operation        Operation
	DryRun           bool
}

// Placement describes where one record landed (or would land in a dry run).
type Placement struct {
	Source      string `json:"source"`
	Destination string `json:"destination"`
	Operation   string `json:"operation"`
}

// Failure records a per-file error that did not abort the batch.
type Failure struct {
	Source  string `json:"source"`
	Message string `json:"message"`
}

// Result summarizes an organization run.
type Result struct {
	SessionID  string      `json:"session_id,omitempty"`
	DryRun     bool        `json:"dry_run"`
	Processed  int         `json:"processed"`
	Errors     int         `json:"errors"`
	Placements []Placement `json:"placements,omitempty"`
	Failures   []Failure   `json:"failures,omitempty"`
}

// SuccessRate returns the share of attempted files that succeeded, in
// percent. An empty run counts as fully successful.
func (r Result) SuccessRate() float64 {
	attempted := r.Processed + r.Errors
	if attempted == 0 {
		return 100
	}
	return float64(r.Processed) / float64(attempted) * 100
}

// Organizer applies templates to records and copies or moves the files.
type Organizer struct {
	logger *slog.Logger
}

// New builds an organizer. A nil logger discards output.
func New(logger *slog.Logger) *Organizer {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Organizer{logger: logging.WithComponent(logger, "organize")}
}

// workDirName is the bookkeeping directory created inside the output root.
const workDirName = ".mediasort"

// Organize places every record under req.OutputRoot. Template or transfer
// failures are recorded per file and the batch continues; only setup
// problems (bad request, unwritable root, lock contention) abort the run.
func (o *Organizer) Organize(ctx context.Context, records []*media.Record, req Request) (Result, error) {
	if err := validateRequest(req); err != nil {
		return Result{}, err
	}
	result := Result{DryRun: req.DryRun}
	if len(records) == 0 {
		return result, nil
	}

	if !req.DryRun {
		if err := preflight.EnsureWritableDir(req.OutputRoot); err != nil {
			return Result{}, err
		}
		workDir := filepath.Join(req.OutputRoot, workDirName)
		if err := os.MkdirAll(workDir, 0o755); err != nil {
			return Result{}, media.Wrap(media.ErrConfiguration, "organize", "work dir",
				fmt.Sprintf("create %s", workDir), err)
		}

		lock := flock.New(filepath.Join(workDir, "lock"))
		locked, err := lock.TryLock()
		if err != nil {
			return Result{}, media.Wrap(media.ErrValidation, "organize", "lock", "acquire output lock", err)
		}
		if !locked {
			return Result{}, media.Wrap(media.ErrValidation, "organize", "lock",
				fmt.Sprintf("another session holds %s", lock.Path()), nil)
		}
		defer func() {
			_ = lock.Unlock()
		}()

		result.SessionID = uuid.NewString()
		manifest, err := openManifest(workDir, result.SessionID)
		if err != nil {
			return Result{}, err
		}
		defer manifest.Close()

		o.logger.Info("session started",
			logging.String(logging.FieldSession, result.SessionID),
			logging.String("output_root", req.OutputRoot),
			logging.String(logging.FieldOperation, string(req.Operation)),
			logging.Int("records", len(records)))

		o.run(ctx, records, req, &result, manifest)
	} else {
		o.logger.Info("dry run started",
			logging.String("output_root", req.OutputRoot),
			logging.String(logging.FieldOperation, string(req.Operation)),
			logging.Int("records", len(records)))
		o.run(ctx, records, req, &result, nil)
	}

	o.logger.Info("session finished",
		logging.String(logging.FieldSession, result.SessionID),
		logging.Int("processed", result.Processed),
		logging.Int("errors", result.Errors))
	return result, nil
}

func (o *Organizer) run(ctx context.Context, records []*media.Record, req Request, result *Result, manifest *manifestWriter) {
	claimed := make(map[string]struct{})

	for _, rec := range records {
		if err := ctx.Err(); err != nil {
			o.fail(result, rec.Path(), fmt.Errorf("canceled: %w", err))
			continue
		}

		dest, err := o.place(rec, req, claimed, manifest)
		if err != nil {
			o.fail(result, rec.Path(), err)
			continue
		}

		claimed[dest] = struct{}{}
		result.Processed++
		result.Placements = append(result.Placements, Placement{
			Source:      rec.Path(),
			Destination: dest,
			Operation:   string(req.Operation),
		})
		if req.Operation == OperationMove && !req.DryRun {
			rec.SetPath(dest)
		}
	}
}

// place renders the destination for rec and, outside dry runs, performs the
// transfer. It returns the destination path.
func (o *Organizer) place(rec *media.Record, req Request, claimed map[string]struct{}, manifest *manifestWriter) (string, error) {
	filename, err := rec.RenderFilename(req.FilenameTemplate)
	if err != nil {
		return "", err
	}
	if filename == "" {
		return "", media.Wrap(media.ErrValidation, "organize", "render",
			fmt.Sprintf("filename template produced nothing for %s", rec.Path()), nil)
	}
	folder, err := media.RenderFolder(req.FolderTemplate, rec.FolderVariables())
	if err != nil {
		return "", err
	}

	destDir := filepath.Join(req.OutputRoot, folder)
	dest, err := nextAvailablePath(destDir, filename, claimed)
	if err != nil {
		return "", err
	}

	if req.DryRun {
		o.logger.Info("would place",
			logging.String(logging.FieldPath, rec.Path()),
			logging.String(logging.FieldDestination, dest),
			logging.String(logging.FieldOperation, string(req.Operation)))
		return dest, nil
	}

	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return "", fmt.Errorf("create %s: %w", destDir, err)
	}
	switch req.Operation {
	case OperationMove:
		err = fileutil.MoveFile(rec.Path(), dest)
	default:
		err = fileutil.CopyFile(rec.Path(), dest)
	}
	if err != nil {
		return "", err
	}

	o.logger.Info("placed",
		logging.String(logging.FieldPath, rec.Path()),
		logging.String(logging.FieldDestination, dest),
		logging.String(logging.FieldOperation, string(req.Operation)))

	if manifest != nil {
		if err := manifest.record(rec.Path(), dest, string(req.Operation)); err != nil {
			o.logger.Warn("manifest write failed", logging.Error(err))
		}
	}
	return dest, nil
}

func (o *Organizer) fail(result *Result, source string, err error) {
	result.Errors++
	result.Failures = append(result.Failures, Failure{Source: source, Message: err.Error()})
	o.logger.Warn("placement failed",
		logging.String(logging.FieldPath, source),
		logging.Error(err))
}

// nextAvailablePath returns dir/name, inserting _1, _2, ... before the
// extension until the candidate neither exists on disk nor was claimed
// earlier in this run.
func nextAvailablePath(dir, name string, claimed map[string]struct{}) (string, error) {
	const maxAttempts = 10000

	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)

	for attempt := 0; attempt <= maxAttempts; attempt++ {
		candidate := filepath.Join(dir, name)
		if attempt > 0 {
			candidate = filepath.Join(dir, fmt.Sprintf("%s_%d%s", stem, attempt, ext))
		}
		if _, taken := claimed[candidate]; taken {
			continue
		}
		if _, err := os.Stat(candidate); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return candidate, nil
			}
			return "", err
		}
	}
	return "", fmt.Errorf("exhausted filename slots for %s in %s", name, dir)
}

func validateRequest(req Request) error {
	if strings.TrimSpace(req.OutputRoot) == "" {
		return media.Wrap(media.ErrConfiguration, "organize", "validate", "output root not set", nil)
	}
	if strings.TrimSpace(req.FilenameTemplate) == "" {
		return media.Wrap(media.ErrValidation, "organize", "validate", "filename template not set", nil)
	}
	if req.Operation != OperationCopy && req.Operation != OperationMove {
		return media.Wrap(media.ErrValidation, "organize", "validate",
			fmt.Sprintf("unknown operation %q", req.Operation), nil)
	}
	return nil
}
