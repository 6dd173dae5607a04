// Package organize places cataloged media files into an output tree
// according to filename and folder templates. Each run is a session: it
// holds an exclusive lock on the output root, writes a manifest of every
// placement, and isolates per-file failures so one bad record never aborts
// the batch. Dry runs compute placements without touching the filesystem.
package organize
