package preflight

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"mediasort/internal/config"
	"mediasort/internal/media"
)

func TestCheckDirectoryAccess_OK(t *testing.T) {
	dir := t.TempDir()
	result := CheckDirectoryAccess("test", dir)
	if !result.Passed {
		t.Fatalf("expected pass for temp dir, got: %s", result.Detail)
	}
}

func TestCheckDirectoryAccess_NotExist(t *testing.T) {
	result := CheckDirectoryAccess("test", filepath.Join(t.TempDir(), "nope"))
	if result.Passed {
		t.Fatal("expected failure for missing dir")
	}
	if result.Detail == "" {
		t.Fatal("expected non-empty detail")
	}
}

func TestCheckDirectoryAccess_NotDir(t *testing.T) {
	f := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(f, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	result := CheckDirectoryAccess("test", f)
	if result.Passed {
		t.Fatal("expected failure for file path")
	}
}

func TestEnsureWritableDirCreatesMissing(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out", "nested")
	if err := EnsureWritableDir(dir); err != nil {
		t.Fatalf("EnsureWritableDir: %v", err)
	}
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		t.Fatalf("directory not created: %v", err)
	}
}

func TestEnsureWritableDirEmpty(t *testing.T) {
	if err := EnsureWritableDir(""); !errors.Is(err, media.ErrConfiguration) {
		t.Fatalf("error = %v, want ErrConfiguration", err)
	}
}

func TestEnsureWritableDirReadOnly(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("root bypasses permission checks")
	}
	dir := filepath.Join(t.TempDir(), "ro")
	if err := os.MkdirAll(dir, 0o555); err != nil {
		t.Fatal(err)
	}
	if err := EnsureWritableDir(dir); !errors.Is(err, media.ErrConfiguration) {
		t.Fatalf("error = %v, want ErrConfiguration", err)
	}
}

func TestCheckSourceDir(t *testing.T) {
	if err := CheckSourceDir(t.TempDir()); err != nil {
		t.Fatalf("CheckSourceDir on temp dir: %v", err)
	}

	missing := filepath.Join(t.TempDir(), "absent")
	if err := CheckSourceDir(missing); !errors.Is(err, media.ErrDirectoryNotFound) {
		t.Fatalf("error = %v, want ErrDirectoryNotFound", err)
	}

	file := filepath.Join(t.TempDir(), "f.txt")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := CheckSourceDir(file); !errors.Is(err, media.ErrNotADirectory) {
		t.Fatalf("error = %v, want ErrNotADirectory", err)
	}
}

func TestRunAll(t *testing.T) {
	if results := RunAll(nil); results != nil {
		t.Fatalf("RunAll(nil) = %v, want nil", results)
	}

	cfg := config.Default()
	cfg.Organize.OutputDir = t.TempDir()
	results := RunAll(&cfg)
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if !results[0].Passed {
		t.Fatalf("output dir check failed: %s", results[0].Detail)
	}
}

func TestCheckSystemDeps(t *testing.T) {
	t.Setenv("PATH", t.TempDir())
	results := CheckSystemDeps(nil)
	if len(results) != 2 {
		t.Fatalf("expected 2 statuses, got %d", len(results))
	}
	for _, status := range results {
		if status.Available {
			t.Fatalf("%s reported available with empty PATH", status.Name)
		}
	}
}
