package media

import "time"

// Metadata keys populated by extraction. Values carry the declared type;
// unknown keys are allowed but uninterpreted.
const (
	KeyFilename      = "filename"       // string
	KeyFileSize      = "file_size"      // int64, bytes
	KeyFileSizeMB    = "file_size_mb"   // float64, rounded to 2 decimals
	KeyCreatedDate   = "created_date"   // time.Time
	KeyModifiedDate  = "modified_date"  // time.Time
	KeyFileExtension = "file_extension" // string, with leading dot
	KeyFileHash      = "file_hash"      // string, hex digest
	KeyError         = "error"          // string, set on degraded extraction

	KeyWidth       = "width"        // int
	KeyHeight      = "height"       // int
	KeyFormat      = "format"       // string, image format name
	KeyResolution  = "resolution"   // string, "WxH"
	KeyDateTaken   = "date_taken"   // time.Time, from EXIF
	KeyCameraMake  = "camera_make"  // string
	KeyCameraModel = "camera_model" // string
	KeyHasGPS      = "has_gps"      // bool
	KeyEXIF        = "exif"         // map[string]string, raw tag dump

	KeyDuration          = "duration"           // float64, seconds
	KeyDurationFormatted = "duration_formatted" // string, HH:MM:SS
	KeyBitRate           = "bit_rate"           // int64, bits per second
	KeyFormatName        = "format_name"        // string, container format
	KeyCodec             = "codec"              // string, first video stream
	KeyFPS               = "fps"                // float64
	KeyAudioCodec        = "audio_codec"        // string, first audio stream
	KeySampleRate        = "sample_rate"        // int
	KeyChannels          = "channels"           // int
	KeyDateCreated       = "date_created"       // time.Time, container tag
)

// Metadata is a typed key-value view of one file.
type Metadata map[string]any

// Clone returns a shallow copy.
func (m Metadata) Clone() Metadata {
	if m == nil {
		return nil
	}
	out := make(Metadata, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// String returns the value for key when it is a string.
func (m Metadata) String(key string) (string, bool) {
	v, ok := m[key].(string)
	return v, ok
}

// Int returns the value for key coerced to int from the integer and float
// types extraction produces.
func (m Metadata) Int(key string) (int, bool) {
	switch v := m[key].(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	}
	return 0, false
}

// Int64 returns the value for key coerced to int64.
func (m Metadata) Int64(key string) (int64, bool) {
	switch v := m[key].(type) {
	case int64:
		return v, true
	case int:
		return int64(v), true
	case float64:
		return int64(v), true
	}
	return 0, false
}

// Float returns the value for key coerced to float64.
func (m Metadata) Float(key string) (float64, bool) {
	switch v := m[key].(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	}
	return 0, false
}

// Bool returns the value for key when it is a bool.
func (m Metadata) Bool(key string) (bool, bool) {
	v, ok := m[key].(bool)
	return v, ok
}

// Time returns the value for key when it is a time.Time.
func (m Metadata) Time(key string) (time.Time, bool) {
	v, ok := m[key].(time.Time)
	return v, ok
}
