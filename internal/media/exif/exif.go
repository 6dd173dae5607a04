// Package exif reads camera metadata from image files. JPEG and TIFF are
// decoded natively; formats the native decoder cannot parse (HEIC, camera
// raw) go through an external exiftool process when one is available.
package exif

import (
	"io"
	"os"
	"strings"
	"time"

	goexif "github.com/rwcarlsen/goexif/exif"
	"github.com/rwcarlsen/goexif/tiff"
)

// Info holds the EXIF fields consumed by metadata extraction. Zero values
// mean the tag was absent. Width and Height are populated only by the
// exiftool path, where the container itself is unreadable natively.
type Info struct {
	DateTaken   time.Time
	CameraMake  string
	CameraModel string
	HasGPS      bool
	Width       int
	Height      int
	Tags        map[string]string
}

// HasDateTaken reports whether a capture timestamp was found.
func (i Info) HasDateTaken() bool { return !i.DateTaken.IsZero() }

// ReadFile decodes EXIF data from the file at path.
func ReadFile(path string) (Info, error) {
	f, err := os.Open(path)
	if err != nil {
		return Info{}, err
	}
	defer f.Close()
	return Read(f)
}

// Read decodes EXIF data from r. Files without an EXIF segment return an
// error from the underlying decoder; callers treat that as "no metadata".
func Read(r io.Reader) (Info, error) {
	x, err := goexif.Decode(r)
	if err != nil {
		return Info{}, err
	}

	info := Info{Tags: make(map[string]string)}

	for _, field := range []goexif.FieldName{goexif.DateTimeOriginal, goexif.DateTimeDigitized, goexif.DateTime} {
		if tag, err := x.Get(field); err == nil {
			if value, err := tag.StringVal(); err == nil {
				if ts, ok := parseEXIFTime(value); ok {
					info.DateTaken = ts
					break
				}
			}
		}
	}
	if tag, err := x.Get(goexif.Make); err == nil {
		if value, err := tag.StringVal(); err == nil {
			info.CameraMake = cleanString(value)
		}
	}
	if tag, err := x.Get(goexif.Model); err == nil {
		if value, err := tag.StringVal(); err == nil {
			info.CameraModel = cleanString(value)
		}
	}
	if _, err := x.Get(goexif.GPSLatitude); err == nil {
		info.HasGPS = true
	}

	walker := tagCollector(info.Tags)
	_ = x.Walk(walker)

	return info, nil
}

// tagCollector dumps every decoded tag into a map for full-detail display.
type tagCollector map[string]string

func (c tagCollector) Walk(name goexif.FieldName, tag *tiff.Tag) error {
	if value, err := tag.StringVal(); err == nil {
		c[string(name)] = cleanString(value)
		return nil
	}
	c[string(name)] = tag.String()
	return nil
}

var exifTimeLayouts = []string{
	"2006:01:02 15:04:05-07:00",
	"2006:01:02 15:04:05",
	"2006:01:02",
}

// parseEXIFTime parses the EXIF timestamp convention (colon-separated date).
func parseEXIFTime(value string) (time.Time, bool) {
	value = cleanString(value)
	if value == "" {
		return time.Time{}, false
	}
	// Sub-second precision is stored in a separate tag; some writers still
	// append it here.
	if dot := strings.IndexByte(value, '.'); dot > 0 {
		value = value[:dot]
	}
	for _, layout := range exifTimeLayouts {
		if ts, err := time.Parse(layout, value); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}

// cleanString strips the NUL padding and stray whitespace EXIF writers leave
// in ASCII tags.
func cleanString(value string) string {
	return strings.Trim(value, "\x00 \t\r\n")
}
