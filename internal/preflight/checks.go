package preflight

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"golang.org/x/sys/unix"

	"mediasort/internal/config"
	"mediasort/internal/deps"
	"mediasort/internal/media"
)

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// EnsureWritableDir creates dir when missing and verifies the process may
// write into it. Used by the organizer before any file is placed.
func EnsureWritableDir(dir string) error {
	if dir == "" {
		return media.Wrap(media.ErrConfiguration, "preflight", "output root", "no directory configured", nil)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return media.Wrap(media.ErrConfiguration, "preflight", "output root", fmt.Sprintf("create %s", dir), err)
	}
	if err := unix.Access(dir, unix.W_OK|unix.X_OK); err != nil {
		return media.Wrap(media.ErrConfiguration, "preflight", "output root", fmt.Sprintf("%s is not writable", dir), err)
	}
	return nil
}

// CheckSourceDir verifies a scan source exists, is a directory, and is
// readable.
func CheckSourceDir(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return media.Wrap(media.ErrDirectoryNotFound, "preflight", "source", dir, err)
		}
		return media.Wrap(media.ErrValidation, "preflight", "source", fmt.Sprintf("stat %s", dir), err)
	}
	if !info.IsDir() {
		return media.Wrap(media.ErrNotADirectory, "preflight", "source", dir, nil)
	}
	if err := unix.Access(dir, unix.R_OK|unix.X_OK); err != nil {
		return media.Wrap(media.ErrValidation, "preflight", "source", fmt.Sprintf("%s is not readable", dir), err)
	}
	return nil
}

// CheckSystemDeps evaluates the external tools for the given config. Both
// the deps command and extraction setup use this to avoid duplicating the
// requirements list.
func CheckSystemDeps(cfg *config.Config) []deps.Status {
	ffprobe := "ffprobe"
	exiftool := "exiftool"
	if cfg != nil {
		ffprobe = cfg.FFprobeBinary()
		exiftool = cfg.ExiftoolBinary()
	}
	return deps.Check(ffprobe, exiftool)
}

func parentDir(path string) string {
	if path == "" {
		return ""
	}
	return filepath.Dir(path)
}
