package media

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"mediasort/internal/textutil"
)

// Substitute replaces every {name} placeholder in template with its value
// from vars. Referencing a name absent from vars fails with
// ErrMissingVariable. A '{' without a closing '}' is kept literally.
func Substitute(template string, vars map[string]string) (string, error) {
	var b strings.Builder
	b.Grow(len(template))
	for i := 0; i < len(template); {
		c := template[i]
		if c != '{' {
			b.WriteByte(c)
			i++
			continue
		}
		end := strings.IndexByte(template[i:], '}')
		if end < 0 {
			b.WriteByte(c)
			i++
			continue
		}
		name := template[i+1 : i+end]
		value, ok := vars[name]
		if !ok {
			return "", fmt.Errorf("%w: %s", ErrMissingVariable, name)
		}
		b.WriteString(value)
		i += end + 1
	}
	return b.String(), nil
}

// RenderComponent substitutes vars into template and sanitizes the result
// as a single path component.
func RenderComponent(template string, vars map[string]string) (string, error) {
	substituted, err := Substitute(template, vars)
	if err != nil {
		return "", err
	}
	return textutil.SanitizeComponent(substituted), nil
}

// RenderFolder renders a folder-structure template. Each '/'-separated
// segment is substituted and sanitized independently so separators survive
// while variable values cannot escape the segment. An empty template or one
// whose segments all sanitize away yields "" (flat layout).
func RenderFolder(template string, vars map[string]string) (string, error) {
	template = strings.Trim(strings.TrimSpace(template), "/")
	if template == "" {
		return "", nil
	}
	segments := strings.Split(template, "/")
	parts := make([]string, 0, len(segments))
	for _, segment := range segments {
		rendered, err := RenderComponent(segment, vars)
		if err != nil {
			return "", err
		}
		if rendered == "" {
			continue
		}
		parts = append(parts, rendered)
	}
	return filepath.Join(parts...), nil
}

// RenderFilename resolves the filename variable set and renders template
// into a sanitized filename.
func (r *Record) RenderFilename(template string) (string, error) {
	return RenderComponent(template, r.FilenameVariables())
}

// FilenameVariables resolves the placeholder vocabulary for filename
// templates. Every fixed variable is always present, empty when the source
// metadata is absent; manual entries appear under a "manual_" prefix.
func (r *Record) FilenameVariables() map[string]string {
	meta := r.CombinedMetadata()
	base := filepath.Base(r.path)
	ext := filepath.Ext(base)

	vars := map[string]string{
		"original_name": strings.TrimSuffix(base, ext),
		"extension":     ext,
		"type":          string(r.kind),
		"width":         "",
		"height":        "",
		"resolution":    "",
		"camera_make":   "",
		"camera_model":  "",
		"file_hash":     "",
	}

	ts, ok := r.dateSource(meta)
	setDateVars(vars, ts, ok)

	if w, found := meta.Int(KeyWidth); found {
		vars["width"] = strconv.Itoa(w)
	}
	if h, found := meta.Int(KeyHeight); found {
		vars["height"] = strconv.Itoa(h)
	}
	if res, found := meta.String(KeyResolution); found {
		vars["resolution"] = res
	}
	if r.kind == KindImage {
		if v, found := meta.String(KeyCameraMake); found {
			vars["camera_make"] = v
		}
		if v, found := meta.String(KeyCameraModel); found {
			vars["camera_model"] = v
		}
	}
	if hash, found := meta.String(KeyFileHash); found {
		if len(hash) > 8 {
			hash = hash[:8]
		}
		vars["file_hash"] = hash
	}

	for k, v := range r.manual {
		vars["manual_"+k] = manualString(v)
	}
	return vars
}

// FolderVariables resolves the placeholder vocabulary for folder-structure
// templates. Camera fields are normalized for directory names and default
// to "Unknown", as do the recognized manual keys, so un-annotated files
// land in an Unknown bucket instead of failing.
func (r *Record) FolderVariables() map[string]string {
	meta := r.CombinedMetadata()

	vars := map[string]string{
		"type": string(r.kind),
	}
	ts, ok := r.dateSource(meta)
	setDateVars(vars, ts, ok)

	cameraMake, _ := meta.String(KeyCameraMake)
	cameraModel, _ := meta.String(KeyCameraModel)
	vars["camera_make"] = textutil.NormalizeTitle(cameraMake, "Unknown")
	vars["camera_model"] = textutil.NormalizeTitle(cameraModel, "Unknown")

	for _, key := range ManualKeys() {
		name := "manual_" + key
		if v, found := r.manual[key]; found {
			if s := manualString(v); s != "" {
				vars[name] = s
				continue
			}
		}
		vars[name] = "Unknown"
	}
	for k, v := range r.manual {
		name := "manual_" + k
		if _, found := vars[name]; !found {
			vars[name] = manualString(v)
		}
	}
	return vars
}

// BestTimestamp returns the timestamp that date template variables and
// date-range filters use for this record.
func (r *Record) BestTimestamp() (time.Time, bool) {
	return r.dateSource(r.CombinedMetadata())
}

// dateSource picks the timestamp used for date variables: date_taken for
// images, date_created for videos, then the filesystem created_date.
func (r *Record) dateSource(meta Metadata) (time.Time, bool) {
	if r.kind == KindImage {
		if t, ok := meta.Time(KeyDateTaken); ok {
			return t, true
		}
	}
	if r.kind == KindVideo {
		if t, ok := meta.Time(KeyDateCreated); ok {
			return t, true
		}
	}
	if t, ok := meta.Time(KeyCreatedDate); ok {
		return t, true
	}
	return time.Time{}, false
}

func setDateVars(vars map[string]string, ts time.Time, ok bool) {
	if !ok {
		for _, k := range []string{"year", "month", "day", "hour", "minute", "second"} {
			vars[k] = ""
		}
		return
	}
	vars["year"] = ts.Format("2006")
	vars["month"] = ts.Format("01")
	vars["day"] = ts.Format("02")
	vars["hour"] = ts.Format("15")
	vars["minute"] = ts.Format("04")
	vars["second"] = ts.Format("05")
}

func manualString(value any) string {
	switch v := value.(type) {
	case string:
		return strings.TrimSpace(v)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case time.Time:
		return v.Format("2006-01-02")
	case nil:
		return ""
	default:
		return strings.TrimSpace(fmt.Sprint(v))
	}
}
