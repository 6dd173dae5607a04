package extract

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"image"
	"io"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"mediasort/internal/logging"
	"mediasort/internal/media"
	"mediasort/internal/media/exif"
	"mediasort/internal/media/ffprobe"
)

// Capabilities carries the resolved external tool binaries. An empty path
// means the tool is unavailable and the fields depending on it are skipped.
type Capabilities struct {
	FFprobe  string
	Exiftool string
}

// Extensions decodable by the registered image decoders.
var nativeImageExtensions = map[string]struct{}{
	"jpg": {}, "jpeg": {}, "png": {}, "gif": {},
	"bmp": {}, "tiff": {}, "tif": {}, "webp": {},
}

// Extensions whose EXIF segment the native decoder understands.
var nativeEXIFExtensions = map[string]struct{}{
	"jpg": {}, "jpeg": {}, "tiff": {}, "tif": {},
}

// Extractor reads metadata for media records. Safe for concurrent use; the
// exiftool child process is started lazily and shared under a lock.
type Extractor struct {
	caps   Capabilities
	logger *slog.Logger

	toolOnce sync.Once
	toolMu   sync.Mutex
	tool     *exif.Tool
}

// New builds an extractor with the given tool capabilities.
func New(caps Capabilities, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Extractor{
		caps:   caps,
		logger: logging.WithComponent(logger, "extract"),
	}
}

// Close stops the exiftool child process if one was started.
func (e *Extractor) Close() error {
	e.toolMu.Lock()
	defer e.toolMu.Unlock()
	if e.tool == nil {
		return nil
	}
	err := e.tool.Close()
	e.tool = nil
	return err
}

// Extract populates rec with extracted metadata. It never returns an error:
// files that cannot be read end up with minimal metadata carrying an error
// entry, and partial reads keep whatever succeeded.
func (e *Extractor) Extract(ctx context.Context, rec *media.Record) {
	path := rec.Path()
	meta := media.Metadata{
		media.KeyFilename: filepath.Base(path),
	}

	info, err := os.Stat(path)
	if err != nil {
		meta[media.KeyError] = err.Error()
		rec.SetExtracted(meta)
		e.logger.Warn("extraction failed", logging.String(logging.FieldPath, path), logging.Error(err))
		return
	}

	var problems []string
	e.universal(path, info, meta, &problems)

	switch rec.Kind() {
	case media.KindImage:
		e.imageFields(path, meta, &problems)
	case media.KindVideo:
		e.videoFields(ctx, path, meta, &problems)
	}

	if len(problems) > 0 {
		meta[media.KeyError] = strings.Join(problems, "; ")
		e.logger.Warn("partial extraction",
			logging.String(logging.FieldPath, path),
			logging.String("problems", meta[media.KeyError].(string)))
	}
	rec.SetExtracted(meta)
}

func (e *Extractor) universal(path string, info os.FileInfo, meta media.Metadata, problems *[]string) {
	size := info.Size()
	meta[media.KeyFileSize] = size
	meta[media.KeyFileSizeMB] = round2(float64(size) / (1024 * 1024))
	meta[media.KeyModifiedDate] = info.ModTime()
	meta[media.KeyFileExtension] = strings.ToLower(filepath.Ext(path))

	created := info.ModTime()
	if ct, ok := changeTime(info); ok {
		created = ct
	}
	meta[media.KeyCreatedDate] = created

	hash, err := fileMD5(path)
	if err != nil {
		*problems = append(*problems, fmt.Sprintf("hash: %v", err))
	} else {
		meta[media.KeyFileHash] = hash
	}
}

func (e *Extractor) imageFields(path string, meta media.Metadata, problems *[]string) {
	ext := normalizeExt(path)

	if _, ok := nativeImageExtensions[ext]; ok {
		if err := decodeDimensions(path, meta); err != nil {
			*problems = append(*problems, fmt.Sprintf("decode: %v", err))
		}
	}

	var info exif.Info
	var haveEXIF bool
	if _, ok := nativeEXIFExtensions[ext]; ok {
		if parsed, err := exif.ReadFile(path); err == nil {
			info = parsed
			haveEXIF = true
		}
	} else if _, ok := nativeImageExtensions[ext]; !ok {
		// HEIC and camera raw: neither the dimension decoders nor the
		// native EXIF reader understand the container.
		tool := e.exiftool()
		if tool == nil {
			*problems = append(*problems, fmt.Sprintf("no decoder for .%s", ext))
			return
		}
		e.toolMu.Lock()
		parsed, err := tool.Read(path)
		e.toolMu.Unlock()
		if err != nil {
			*problems = append(*problems, fmt.Sprintf("exiftool: %v", err))
			return
		}
		info = parsed
		haveEXIF = true
		if info.Width > 0 && info.Height > 0 {
			meta[media.KeyWidth] = info.Width
			meta[media.KeyHeight] = info.Height
			meta[media.KeyResolution] = fmt.Sprintf("%dx%d", info.Width, info.Height)
		}
		if format, ok := info.Tags["FileType"]; ok {
			meta[media.KeyFormat] = strings.ToLower(format)
		}
	}

	if !haveEXIF {
		return
	}
	if info.HasDateTaken() {
		meta[media.KeyDateTaken] = info.DateTaken
	}
	if info.CameraMake != "" {
		meta[media.KeyCameraMake] = info.CameraMake
	}
	if info.CameraModel != "" {
		meta[media.KeyCameraModel] = info.CameraModel
	}
	meta[media.KeyHasGPS] = info.HasGPS
	if len(info.Tags) > 0 {
		meta[media.KeyEXIF] = info.Tags
	}
}

func (e *Extractor) videoFields(ctx context.Context, path string, meta media.Metadata, problems *[]string) {
	if e.caps.FFprobe == "" {
		*problems = append(*problems, "ffprobe not available")
		return
	}

	result, err := ffprobe.Inspect(ctx, e.caps.FFprobe, path)
	if err != nil {
		*problems = append(*problems, err.Error())
		return
	}

	if duration := result.DurationSeconds(); duration > 0 && !math.IsNaN(duration) {
		meta[media.KeyDuration] = round2(duration)
		meta[media.KeyDurationFormatted] = formatDuration(duration)
	}
	if rate := result.BitRate(); rate > 0 {
		meta[media.KeyBitRate] = rate
	}
	if result.Format.FormatName != "" {
		meta[media.KeyFormatName] = result.Format.FormatName
	}

	if stream, ok := result.FirstVideoStream(); ok {
		if stream.Width > 0 && stream.Height > 0 {
			meta[media.KeyWidth] = stream.Width
			meta[media.KeyHeight] = stream.Height
			meta[media.KeyResolution] = fmt.Sprintf("%dx%d", stream.Width, stream.Height)
		}
		if stream.CodecName != "" {
			meta[media.KeyCodec] = stream.CodecName
		}
		if fps := stream.FrameRate(); fps > 0 {
			meta[media.KeyFPS] = round2(fps)
		}
	}
	if stream, ok := result.FirstAudioStream(); ok {
		if stream.CodecName != "" {
			meta[media.KeyAudioCodec] = stream.CodecName
		}
		if rate, err := strconv.Atoi(strings.TrimSpace(stream.SampleRate)); err == nil && rate > 0 {
			meta[media.KeySampleRate] = rate
		}
		if stream.Channels > 0 {
			meta[media.KeyChannels] = stream.Channels
		}
	}
	if ts, ok := result.CreationTime(); ok {
		meta[media.KeyDateCreated] = ts
	}
}

// exiftool lazily starts the shared exiftool process. Returns nil when the
// binary is not available or failed to start.
func (e *Extractor) exiftool() *exif.Tool {
	e.toolOnce.Do(func() {
		if e.caps.Exiftool == "" {
			return
		}
		tool, err := exif.NewTool(e.caps.Exiftool)
		if err != nil {
			e.logger.Warn("exiftool failed to start", logging.Error(err))
			return
		}
		e.toolMu.Lock()
		e.tool = tool
		e.toolMu.Unlock()
	})
	e.toolMu.Lock()
	defer e.toolMu.Unlock()
	return e.tool
}

func decodeDimensions(path string, meta media.Metadata) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	cfg, format, err := image.DecodeConfig(f)
	if err != nil {
		return err
	}
	meta[media.KeyWidth] = cfg.Width
	meta[media.KeyHeight] = cfg.Height
	meta[media.KeyResolution] = fmt.Sprintf("%dx%d", cfg.Width, cfg.Height)
	meta[media.KeyFormat] = format
	return nil
}

func fileMD5(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := md5.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

func formatDuration(seconds float64) string {
	total := int(seconds)
	return fmt.Sprintf("%02d:%02d:%02d", total/3600, (total%3600)/60, total%60)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func normalizeExt(path string) string {
	return strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
}
