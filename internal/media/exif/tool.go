package exif

import (
	"fmt"
	"strings"

	exiftool "github.com/barasher/go-exiftool"
)

// Tool wraps a long-lived exiftool child process. Create one per extraction
// batch and Close it when done; every Read reuses the same process.
type Tool struct {
	et *exiftool.Exiftool
}

// NewTool starts exiftool using the given binary. An empty binary falls
// back to "exiftool" on PATH.
func NewTool(binary string) (*Tool, error) {
	var opts []func(*exiftool.Exiftool) error
	if strings.TrimSpace(binary) != "" {
		opts = append(opts, exiftool.SetExiftoolBinaryPath(binary))
	}
	et, err := exiftool.NewExiftool(opts...)
	if err != nil {
		return nil, fmt.Errorf("start exiftool: %w", err)
	}
	return &Tool{et: et}, nil
}

// Close stops the child process.
func (t *Tool) Close() error {
	if t == nil || t.et == nil {
		return nil
	}
	return t.et.Close()
}

// Read extracts camera metadata from path. Used for HEIC and camera raw
// files, where it also supplies the pixel dimensions the native image
// decoders cannot provide.
func (t *Tool) Read(path string) (Info, error) {
	metas := t.et.ExtractMetadata(path)
	if len(metas) == 0 {
		return Info{}, fmt.Errorf("exiftool: no result for %s", path)
	}
	meta := metas[0]
	if meta.Err != nil {
		return Info{}, fmt.Errorf("exiftool: %w", meta.Err)
	}

	info := Info{Tags: make(map[string]string, len(meta.Fields))}
	for key, value := range meta.Fields {
		info.Tags[key] = fmt.Sprint(value)
	}

	for _, key := range []string{"DateTimeOriginal", "CreateDate", "ModifyDate"} {
		if value, err := meta.GetString(key); err == nil {
			if ts, ok := parseEXIFTime(value); ok {
				info.DateTaken = ts
				break
			}
		}
	}
	if value, err := meta.GetString("Make"); err == nil {
		info.CameraMake = cleanString(value)
	}
	if value, err := meta.GetString("Model"); err == nil {
		info.CameraModel = cleanString(value)
	}
	if _, ok := meta.Fields["GPSLatitude"]; ok {
		info.HasGPS = true
	}
	info.Width = dimension(meta, "ImageWidth")
	info.Height = dimension(meta, "ImageHeight")

	return info, nil
}

func dimension(meta exiftool.FileMetadata, key string) int {
	n, err := meta.GetInt(key)
	if err != nil {
		return 0
	}
	return int(n)
}
