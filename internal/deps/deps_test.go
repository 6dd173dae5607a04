package deps

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCheckBinaries(t *testing.T) {
	binDir := t.TempDir()
	present := filepath.Join(binDir, "present")
	script := []byte("#!/bin/sh\nexit 0\n")
	if err := os.WriteFile(present, script, 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}
	reqs := []Requirement{
		{Name: "Present", Command: present},
		{Name: "Missing", Command: "clearly-not-present-binary"},
	}

	results := CheckBinaries(reqs)
	if len(results) != len(reqs) {
		t.Fatalf("expected %d results, got %d", len(reqs), len(results))
	}

	if !results[0].Available {
		t.Fatalf("expected first requirement to be available, got %#v", results[0])
	}

	if results[1].Available {
		t.Fatalf("expected missing binary to be unavailable")
	}
	if results[1].Detail == "" {
		t.Fatalf("expected detail message for missing binary")
	}

	if results[1].Command != "clearly-not-present-binary" {
		t.Fatalf("unexpected command recorded: %s", results[1].Command)
	}

	if results[0].Detail != "" {
		t.Fatalf("unexpected detail for available dependency: %s", results[0].Detail)
	}
}

func TestCheckBinariesEmptyCommand(t *testing.T) {
	results := CheckBinaries([]Requirement{{Name: "Unset", Command: "  "}})
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].Available {
		t.Fatal("expected unset command to be unavailable")
	}
	if results[0].Detail != "command not configured" {
		t.Fatalf("unexpected detail: %s", results[0].Detail)
	}
}

func TestResolve(t *testing.T) {
	binDir := t.TempDir()
	stub := filepath.Join(binDir, "ffprobe")
	if err := os.WriteFile(stub, []byte("#!/bin/sh\nexit 0\n"), 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}
	t.Setenv("PATH", binDir)

	if got := Resolve("ffprobe"); got != stub {
		t.Fatalf("Resolve(ffprobe) = %q, want %q", got, stub)
	}
	if got := Resolve("definitely-absent-tool"); got != "" {
		t.Fatalf("Resolve(absent) = %q, want empty", got)
	}
	if got := Resolve(""); got != "" {
		t.Fatalf("Resolve(empty) = %q, want empty", got)
	}
}

func TestCheck(t *testing.T) {
	t.Setenv("PATH", t.TempDir())

	results := Check("ffprobe", "exiftool")
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Name != "FFprobe" || results[0].Optional {
		t.Fatalf("unexpected ffprobe status: %#v", results[0])
	}
	if results[1].Name != "ExifTool" || !results[1].Optional {
		t.Fatalf("unexpected exiftool status: %#v", results[1])
	}
	for _, status := range results {
		if status.Available {
			t.Fatalf("expected %s to be unavailable with empty PATH", status.Name)
		}
	}
}
