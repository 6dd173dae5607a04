package organize

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"mediasort/internal/media"
)

// manifestEntry is one line of the session manifest.
type manifestEntry struct {
	Session     string    `json:"session"`
	Source      string    `json:"source"`
	Destination string    `json:"destination"`
	Operation   string    `json:"operation"`
	Timestamp   time.Time `json:"timestamp"`
}

// manifestWriter appends placements to a per-session JSON Lines file under
// the output root's bookkeeping directory.
type manifestWriter struct {
	session string
	file    *os.File
	enc     *json.Encoder
}

func openManifest(workDir, session string) (*manifestWriter, error) {
	path := filepath.Join(workDir, fmt.Sprintf("session-%s.jsonl", session))
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, media.Wrap(media.ErrConfiguration, "organize", "manifest",
			fmt.Sprintf("create %s", path), err)
	}
	return &manifestWriter{
		session: session,
		file:    file,
		enc:     json.NewEncoder(file),
	}, nil
}

func (m *manifestWriter) record(source, destination, operation string) error {
	return m.enc.Encode(manifestEntry{
		Session:     m.session,
		Source:      source,
		Destination: destination,
		Operation:   operation,
		Timestamp:   time.Now().UTC(),
	})
}

// Path returns the manifest file location.
func (m *manifestWriter) Path() string {
	return m.file.Name()
}

func (m *manifestWriter) Close() error {
	return m.file.Close()
}
