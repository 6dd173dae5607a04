package media

import (
	"mime"
	"path/filepath"
	"strings"
)

// Kind classifies a media file.
type Kind string

const (
	KindImage Kind = "image"
	KindVideo Kind = "video"
)

// Built-in extension sets, raw camera formats included. Extensions are
// stored without the leading dot.
var (
	imageExtensions = []string{
		"jpg", "jpeg", "png", "gif", "bmp", "tiff", "tif", "webp",
		"heic", "heif", "raw", "cr2", "cr3", "nef", "arw", "dng",
		"orf", "rw2", "pef", "srw",
	}
	videoExtensions = []string{
		"mp4", "mov", "avi", "mkv", "wmv", "flv", "webm", "m4v",
		"mpg", "mpeg", "3gp", "mts", "m2ts",
	}
)

// Classifier maps paths to media kinds using extension sets with a
// content-type-by-filename fallback. The zero value is not usable; build
// one with NewClassifier.
type Classifier struct {
	images map[string]struct{}
	videos map[string]struct{}
}

// NewClassifier returns a classifier covering the built-in extension sets
// plus any extra extensions (given without dots, case-insensitive).
func NewClassifier(extraImages, extraVideos []string) *Classifier {
	c := &Classifier{
		images: make(map[string]struct{}, len(imageExtensions)+len(extraImages)),
		videos: make(map[string]struct{}, len(videoExtensions)+len(extraVideos)),
	}
	for _, ext := range imageExtensions {
		c.images[ext] = struct{}{}
	}
	for _, ext := range extraImages {
		if ext = normalizeExt(ext); ext != "" {
			c.images[ext] = struct{}{}
		}
	}
	for _, ext := range videoExtensions {
		c.videos[ext] = struct{}{}
	}
	for _, ext := range extraVideos {
		if ext = normalizeExt(ext); ext != "" {
			c.videos[ext] = struct{}{}
		}
	}
	return c
}

// Classify reports the media kind for path. The extension check wins;
// unknown extensions fall back to mime-type lookup by filename only (no
// byte inspection). The second return is false for unsupported files.
func (c *Classifier) Classify(path string) (Kind, bool) {
	ext := normalizeExt(filepath.Ext(path))
	if ext != "" {
		if _, ok := c.images[ext]; ok {
			return KindImage, true
		}
		if _, ok := c.videos[ext]; ok {
			return KindVideo, true
		}
	}
	switch mimeType := mime.TypeByExtension("." + ext); {
	case strings.HasPrefix(mimeType, "image/"):
		return KindImage, true
	case strings.HasPrefix(mimeType, "video/"):
		return KindVideo, true
	}
	return "", false
}

// IsMedia reports whether path classifies as a supported media file.
func (c *Classifier) IsMedia(path string) bool {
	_, ok := c.Classify(path)
	return ok
}

var defaultClassifier = NewClassifier(nil, nil)

// Classify reports the media kind for path using the built-in extension sets.
func Classify(path string) (Kind, bool) {
	return defaultClassifier.Classify(path)
}

// IsMedia reports whether path classifies as media using the built-in sets.
func IsMedia(path string) bool {
	return defaultClassifier.IsMedia(path)
}

func normalizeExt(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	return strings.TrimPrefix(ext, ".")
}
