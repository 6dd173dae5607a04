package main

import (
	"testing"
	"time"

	"mediasort/internal/config"
	"mediasort/internal/media"
	"mediasort/internal/organize"
)

func TestParseMetaFlags(t *testing.T) {
	manual, err := parseMetaFlags([]string{"event=Birthday", "rating=5", "note= spaced value "})
	if err != nil {
		t.Fatalf("parseMetaFlags: %v", err)
	}
	if manual["event"] != "Birthday" {
		t.Fatalf("event = %v", manual["event"])
	}
	if manual["rating"] != "5" {
		t.Fatalf("rating = %v", manual["rating"])
	}
	if manual["note"] != "spaced value" {
		t.Fatalf("note = %v", manual["note"])
	}
}

func TestParseMetaFlagsEmpty(t *testing.T) {
	manual, err := parseMetaFlags(nil)
	if err != nil {
		t.Fatalf("parseMetaFlags(nil): %v", err)
	}
	if manual != nil {
		t.Fatalf("expected nil map, got %v", manual)
	}
}

func TestParseMetaFlagsRejectsMalformed(t *testing.T) {
	for _, flag := range []string{"noequals", "=value", "  =x"} {
		if _, err := parseMetaFlags([]string{flag}); err == nil {
			t.Fatalf("expected error for %q", flag)
		}
	}
}

func TestFormatSize(t *testing.T) {
	tests := []struct {
		bytes int64
		want  string
	}{
		{0, "0 B"},
		{999, "999 B"},
		{1500000, "1.5 MB"},
		{-1, "unknown"},
	}
	for _, tc := range tests {
		if got := formatSize(tc.bytes); got != tc.want {
			t.Fatalf("formatSize(%d) = %q, want %q", tc.bytes, got, tc.want)
		}
	}
}

func TestMetadataValueString(t *testing.T) {
	ts := time.Date(2024, 3, 5, 14, 30, 0, 0, time.UTC)
	tests := []struct {
		name  string
		value any
		want  string
	}{
		{"nil", nil, ""},
		{"string", "hello", "hello"},
		{"time", ts, "2024-03-05 14:30:00"},
		{"float trims zeros", 29.90, "29.9"},
		{"float integral", 3.0, "3"},
		{"int", 42, "42"},
		{"bool", true, "true"},
		{"tag map", map[string]string{"b": "2", "a": "1"}, "a=1, b=2"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := metadataValueString(tc.value); got != tc.want {
				t.Fatalf("metadataValueString(%v) = %q, want %q", tc.value, got, tc.want)
			}
		})
	}
}

func TestSortedMetadataRows(t *testing.T) {
	meta := media.Metadata{"width": 4, "filename": "a.png", "height": 3}
	rows := sortedMetadataRows(meta)
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	if rows[0][0] != "filename" || rows[1][0] != "height" || rows[2][0] != "width" {
		t.Fatalf("rows not sorted by key: %v", rows)
	}
}

func TestBuildOrganizeRequestMergesConfig(t *testing.T) {
	var configFlag, levelFlag, formatFlag string
	cmd := newOrganizeCommand(newCommandContext(&configFlag, &levelFlag, &formatFlag))
	if err := cmd.ParseFlags([]string{"--operation", "move"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}

	cfg := config.Default()
	cfg.Organize.OutputDir = "/media/library"
	cfg.Organize.FilenameTemplate = "{year}_{original_name}{extension}"
	cfg.Organize.FolderTemplate = "{type}"
	cfg.Organize.Operation = "copy"

	req, err := buildOrganizeRequest(cmd, &cfg, organizeFlags{
		filenameTemplate: "{original_name}{extension}",
		operation:        "move",
	})
	if err != nil {
		t.Fatalf("buildOrganizeRequest: %v", err)
	}

	if req.OutputRoot != "/media/library" {
		t.Fatalf("output root = %q", req.OutputRoot)
	}
	if req.FilenameTemplate != "{year}_{original_name}{extension}" {
		t.Fatalf("filename template should come from config, got %q", req.FilenameTemplate)
	}
	if req.FolderTemplate != "{type}" {
		t.Fatalf("folder template should come from config, got %q", req.FolderTemplate)
	}
	if req.Operation != organize.OperationMove {
		t.Fatalf("explicit --operation flag should win, got %q", req.Operation)
	}
}

func TestBuildOrganizeRequestMissingOutput(t *testing.T) {
	var configFlag, levelFlag, formatFlag string
	cmd := newOrganizeCommand(newCommandContext(&configFlag, &levelFlag, &formatFlag))
	if err := cmd.ParseFlags(nil); err != nil {
		t.Fatalf("parse flags: %v", err)
	}

	cfg := config.Default()
	_, err := buildOrganizeRequest(cmd, &cfg, organizeFlags{filenameTemplate: "{original_name}{extension}", operation: "copy"})
	if err == nil {
		t.Fatal("expected error when no output directory is configured")
	}
}

func TestYesNo(t *testing.T) {
	if yesNo(true) != "yes" || yesNo(false) != "no" {
		t.Fatal("yesNo mapping broken")
	}
}
