package logging_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"mediasort/internal/logging"
)

func TestConsoleFormatIncludesComponentPrefix(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "console.log")

	logger, err := logging.New(logging.Options{
		Format:           "console",
		Level:            "info",
		OutputPaths:      []string{logPath},
		ErrorOutputPaths: []string{logPath},
	})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	scoped := logging.WithComponent(logger, "catalog")
	scoped.Info("scan complete", logging.Int("files", 3))

	content, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	line := string(content)
	if !strings.Contains(line, "catalog: scan complete") {
		t.Fatalf("expected component prefix, got %q", line)
	}
	if !strings.Contains(line, "files=3") {
		t.Fatalf("expected attr rendering, got %q", line)
	}
	if strings.Contains(line, "component=") {
		t.Fatalf("component should be folded into prefix, got %q", line)
	}
}

func TestConsoleFormatOmitsSourceAboveDebug(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "info.log")

	logger, err := logging.New(logging.Options{
		Format:      "console",
		Level:       "info",
		OutputPaths: []string{logPath},
	})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Info("no caller expected")

	content, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if strings.Contains(string(content), ".go:") {
		t.Fatalf("expected no source location at info level, got %q", content)
	}
}

func TestJSONFormatRenamesCoreKeys(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "json.log")

	logger, err := logging.New(logging.Options{
		Format:      "json",
		Level:       "info",
		OutputPaths: []string{logPath},
	})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Info("hello")

	content, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	line := string(content)
	for _, fragment := range []string{`"ts":`, `"level":"info"`, `"msg":"hello"`} {
		if !strings.Contains(line, fragment) {
			t.Fatalf("expected %s in %q", fragment, line)
		}
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := logging.New(logging.Options{Format: "yaml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestQuotingOfAttrValues(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "quote.log")

	logger, err := logging.New(logging.Options{
		Format:      "console",
		Level:       "info",
		OutputPaths: []string{logPath},
	})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Info("msg", logging.String("file", "with space.jpg"), logging.String("plain", "bare"))

	content, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	line := string(content)
	if !strings.Contains(line, `file="with space.jpg"`) {
		t.Fatalf("expected quoted value, got %q", line)
	}
	if !strings.Contains(line, "plain=bare") {
		t.Fatalf("expected bare value, got %q", line)
	}
}

func TestNopLoggerDiscards(t *testing.T) {
	logger := logging.NewNop()
	logger.Error("discarded", logging.Error(os.ErrNotExist))
	if logger.Enabled(context.Background(), 0) {
		t.Fatal("nop logger should report disabled")
	}
}
