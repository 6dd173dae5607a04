// Package catalog scans directories for media files and holds the resulting
// records in memory, deduplicated by content hash and ordered by path.
package catalog
