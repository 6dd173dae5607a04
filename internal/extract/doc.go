// Package extract populates media records with metadata read from the
// filesystem, embedded EXIF data, and ffprobe. Extraction never fails a
// file outright: whatever cannot be read is left absent and the first
// failure is recorded under the error key.
package extract
