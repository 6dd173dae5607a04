package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeTestConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func writePNG(t *testing.T, path string, width, height int) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		img.Set(x, 0, color.RGBA{R: uint8(x * 13), A: 255})
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("write png: %v", err)
	}
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}

func TestCLIScanCommand(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	src := t.TempDir()
	writePNG(t, filepath.Join(src, "a.png"), 4, 3)
	writePNG(t, filepath.Join(src, "b.png"), 6, 2)
	if err := os.WriteFile(filepath.Join(src, "notes.txt"), []byte("not media"), 0o644); err != nil {
		t.Fatalf("write txt: %v", err)
	}

	out, _, err := runCLI(t, []string{"scan", src}, "")
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	requireContains(t, out, "Scanned "+src)
	requireContains(t, out, "Cataloged")
	requireContains(t, out, "png")
}

func TestCLIScanJSON(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	src := t.TempDir()
	writePNG(t, filepath.Join(src, "a.png"), 4, 3)
	if err := os.WriteFile(filepath.Join(src, "skip.txt"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write txt: %v", err)
	}

	out, _, err := runCLI(t, []string{"scan", src, "--json", "--long"}, "")
	if err != nil {
		t.Fatalf("scan --json: %v", err)
	}

	var report scanReport
	if err := json.Unmarshal([]byte(out), &report); err != nil {
		t.Fatalf("parse scan JSON: %v\noutput: %s", err, out)
	}
	if report.Stats.Total != 1 {
		t.Fatalf("expected 1 cataloged file, got %d", report.Stats.Total)
	}
	if report.Stats.Skipped != 1 {
		t.Fatalf("expected 1 skipped file, got %d", report.Stats.Skipped)
	}
	if len(report.Files) != 1 || report.Files[0].Kind != "image" {
		t.Fatalf("unexpected file listing: %+v", report.Files)
	}
}

func TestCLIScanMissingDirectory(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	_, _, err := runCLI(t, []string{"scan", filepath.Join(t.TempDir(), "nope")}, "")
	if err == nil {
		t.Fatal("expected error for missing directory")
	}
}

func TestCLIInspectCommand(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	src := t.TempDir()
	path := filepath.Join(src, "photo.png")
	writePNG(t, path, 8, 6)

	out, _, err := runCLI(t, []string{"inspect", path}, "")
	if err != nil {
		t.Fatalf("inspect: %v", err)
	}
	requireContains(t, out, "photo.png")
	requireContains(t, out, "image")
	requireContains(t, out, "8x6")
}

func TestCLIInspectJSON(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	src := t.TempDir()
	path := filepath.Join(src, "photo.png")
	writePNG(t, path, 8, 6)

	out, _, err := runCLI(t, []string{"inspect", path, "--json"}, "")
	if err != nil {
		t.Fatalf("inspect --json: %v", err)
	}

	var report fileReport
	if err := json.Unmarshal([]byte(out), &report); err != nil {
		t.Fatalf("parse inspect JSON: %v", err)
	}
	if report.Kind != "image" {
		t.Fatalf("expected kind image, got %q", report.Kind)
	}
	if _, ok := report.Metadata["file_hash"]; !ok {
		t.Fatalf("expected file_hash in metadata: %v", report.Metadata)
	}
}

func TestCLIInspectUnsupportedFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	src := t.TempDir()
	path := filepath.Join(src, "notes.txt")
	if err := os.WriteFile(path, []byte("hello"), 0o644); err != nil {
		t.Fatalf("write txt: %v", err)
	}

	_, _, err := runCLI(t, []string{"inspect", path}, "")
	if err == nil {
		t.Fatal("expected error for unsupported file")
	}
	requireContains(t, err.Error(), "unsupported media type")
}

func TestCLIOrganizeDryRun(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	src := t.TempDir()
	writePNG(t, filepath.Join(src, "a.png"), 4, 3)
	outRoot := filepath.Join(t.TempDir(), "library")

	out, _, err := runCLI(t, []string{
		"organize", src,
		"--output", outRoot,
		"--folder-template", "",
		"--dry-run",
	}, "")
	if err != nil {
		t.Fatalf("organize --dry-run: %v", err)
	}
	requireContains(t, out, "Would place 1 file(s)")
	requireContains(t, out, "Dry run: no files were touched")

	if _, err := os.Stat(outRoot); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("dry run must not create the output root, stat err = %v", err)
	}
}

func TestCLIOrganizeCopy(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	src := t.TempDir()
	writePNG(t, filepath.Join(src, "a.png"), 4, 3)
	outRoot := filepath.Join(t.TempDir(), "library")

	out, _, err := runCLI(t, []string{
		"organize", src,
		"--output", outRoot,
		"--folder-template", "{type}",
	}, "")
	if err != nil {
		t.Fatalf("organize: %v", err)
	}
	requireContains(t, out, "Placed 1 file(s)")
	requireContains(t, out, "Session ")

	dest := filepath.Join(outRoot, "image", "a.png")
	if _, err := os.Stat(dest); err != nil {
		t.Fatalf("expected organized file at %s: %v", dest, err)
	}
	if _, err := os.Stat(filepath.Join(src, "a.png")); err != nil {
		t.Fatalf("copy must keep the source: %v", err)
	}
}

func TestCLIOrganizeManualMetadata(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	src := t.TempDir()
	writePNG(t, filepath.Join(src, "a.png"), 4, 3)
	outRoot := filepath.Join(t.TempDir(), "library")

	out, _, err := runCLI(t, []string{
		"organize", src,
		"--output", outRoot,
		"--folder-template", "",
		"--filename-template", "{manual_event}_{original_name}{extension}",
		"--meta", "event=Summer Trip",
	}, "")
	if err != nil {
		t.Fatalf("organize with --meta: %v", err)
	}
	requireContains(t, out, "Placed 1 file(s)")

	dest := filepath.Join(outRoot, "Summer Trip_a.png")
	if _, err := os.Stat(dest); err != nil {
		t.Fatalf("expected manual-metadata destination at %s: %v", dest, err)
	}
}

func TestCLIOrganizeInvalidMetaFlag(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	src := t.TempDir()
	writePNG(t, filepath.Join(src, "a.png"), 4, 3)

	_, _, err := runCLI(t, []string{
		"organize", src,
		"--output", filepath.Join(t.TempDir(), "library"),
		"--meta", "noequals",
	}, "")
	if err == nil {
		t.Fatal("expected error for malformed --meta")
	}
	requireContains(t, err.Error(), "expected key=value")
}

func TestCLIOrganizeRequiresOutput(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	src := t.TempDir()
	writePNG(t, filepath.Join(src, "a.png"), 4, 3)

	_, _, err := runCLI(t, []string{"organize", src}, "")
	if err == nil {
		t.Fatal("expected error without output directory")
	}
	requireContains(t, err.Error(), "output directory is required")
}

func TestCLIOrganizeUsesConfigDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	src := t.TempDir()
	writePNG(t, filepath.Join(src, "a.png"), 4, 3)
	outRoot := filepath.Join(t.TempDir(), "library")

	configPath := writeTestConfig(t, t.TempDir(), `
[organize]
output_dir = "`+outRoot+`"
folder_template = ""
operation = "copy"
`)

	out, _, err := runCLI(t, []string{"organize", src}, configPath)
	if err != nil {
		t.Fatalf("organize with config defaults: %v", err)
	}
	requireContains(t, out, "Placed 1 file(s)")

	if _, err := os.Stat(filepath.Join(outRoot, "a.png")); err != nil {
		t.Fatalf("expected file under configured output root: %v", err)
	}
}

func TestCLIDuplicatesCommand(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	src := t.TempDir()
	writePNG(t, filepath.Join(src, "a.png"), 4, 3)
	original, err := os.ReadFile(filepath.Join(src, "a.png"))
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}
	if err := os.WriteFile(filepath.Join(src, "copy.png"), original, 0o644); err != nil {
		t.Fatalf("write duplicate: %v", err)
	}
	writePNG(t, filepath.Join(src, "different.png"), 9, 9)

	out, _, err := runCLI(t, []string{"duplicates", src}, "")
	if err != nil {
		t.Fatalf("duplicates: %v", err)
	}
	requireContains(t, out, "a.png")
	requireContains(t, out, "copy.png")
	if strings.Contains(out, "different.png") {
		t.Fatalf("unique file listed as duplicate: %q", out)
	}
}

func TestCLIDuplicatesNoneFound(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	src := t.TempDir()
	writePNG(t, filepath.Join(src, "a.png"), 4, 3)

	out, _, err := runCLI(t, []string{"duplicates", src}, "")
	if err != nil {
		t.Fatalf("duplicates: %v", err)
	}
	requireContains(t, out, "No duplicates found")
}

func TestCLITemplatesCommand(t *testing.T) {
	out, _, err := runCLI(t, []string{"templates"}, "")
	if err != nil {
		t.Fatalf("templates: %v", err)
	}
	requireContains(t, out, "Filename presets")
	requireContains(t, out, "{original_name}{extension}")
	requireContains(t, out, "Folder presets")
	requireContains(t, out, "{year}/{month}")
}

func TestCLIDepsCommand(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("PATH", t.TempDir())

	out, _, err := runCLI(t, []string{"deps"}, "")
	if err != nil {
		t.Fatalf("deps: %v", err)
	}
	requireContains(t, out, "External tools")
	requireContains(t, out, "FFprobe")
	requireContains(t, out, "[ERROR]")
	requireContains(t, out, "ExifTool")
	requireContains(t, out, "[WARN]")
}

func TestCLIDepsJSON(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("PATH", t.TempDir())

	out, _, err := runCLI(t, []string{"deps", "--json"}, "")
	if err != nil {
		t.Fatalf("deps --json: %v", err)
	}

	var report depsReport
	if err := json.Unmarshal([]byte(out), &report); err != nil {
		t.Fatalf("parse deps JSON: %v", err)
	}
	if len(report.Tools) != 2 {
		t.Fatalf("expected 2 tools, got %d", len(report.Tools))
	}
	for _, tool := range report.Tools {
		if tool.Available {
			t.Fatalf("expected %s unavailable with empty PATH", tool.Name)
		}
	}
}
