// Package media defines the core domain model: media kinds and
// classification, per-file metadata maps, records combining extracted and
// manual metadata, the template engine used for renaming, and the error
// taxonomy shared across scanning and organizing.
package media
