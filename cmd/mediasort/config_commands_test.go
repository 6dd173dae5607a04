package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestConfigInitAndValidate(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	tmp := t.TempDir()
	target := filepath.Join(tmp, "config.toml")
	out, _, err := runCLI(t, []string{"config", "init", "--path", target}, "")
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	requireContains(t, out, "Wrote sample configuration")

	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected config file at %s: %v", target, err)
	}

	out, _, err = runCLI(t, []string{"config", "validate"}, target)
	if err != nil {
		t.Fatalf("config validate: %v", err)
	}
	requireContains(t, out, "Config path: "+target)
	requireContains(t, out, "Configuration valid")
}

func TestConfigInitRefusesOverwrite(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	target := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(target, []byte("# existing"), 0o644); err != nil {
		t.Fatalf("seed config: %v", err)
	}

	_, _, err := runCLI(t, []string{"config", "init", "--path", target}, "")
	if err == nil {
		t.Fatal("expected error for existing config without --overwrite")
	}
	requireContains(t, err.Error(), "already exists")

	out, _, err := runCLI(t, []string{"config", "init", "--path", target, "--overwrite"}, "")
	if err != nil {
		t.Fatalf("config init --overwrite: %v", err)
	}
	requireContains(t, out, "Wrote sample configuration")
}

func TestConfigValidateMissingFileUsesDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	out, _, err := runCLI(t, []string{"config", "validate"}, "")
	if err != nil {
		t.Fatalf("config validate: %v", err)
	}
	requireContains(t, out, "defaults were used")
	requireContains(t, out, "Configuration valid")
}

func TestConfigValidateRejectsBadOperation(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	configPath := writeTestConfig(t, t.TempDir(), `
[organize]
operation = "shred"
`)

	_, _, err := runCLI(t, []string{"config", "validate"}, configPath)
	if err == nil {
		t.Fatal("expected validation error for unknown operation")
	}
	requireContains(t, err.Error(), "operation")
}

func TestConfigShow(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	configPath := writeTestConfig(t, t.TempDir(), `
[scan]
workers = 7
`)

	out, _, err := runCLI(t, []string{"config", "show"}, configPath)
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	if !strings.Contains(out, "[scan]") || !strings.Contains(out, "workers = 7") {
		t.Fatalf("expected resolved TOML dump, got %q", out)
	}
	requireContains(t, out, "[organize]")
}
