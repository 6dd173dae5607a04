package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	c.normalizeScan()
	if err := c.normalizeOrganize(); err != nil {
		return err
	}
	c.normalizeTools()
	if err := c.normalizeLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) normalizeScan() {
	c.Scan.Glob = strings.TrimSpace(c.Scan.Glob)
	if c.Scan.Glob == "" {
		c.Scan.Glob = defaultGlob
	}
	if c.Scan.Workers <= 0 {
		c.Scan.Workers = defaultWorkers
	}
	c.Scan.ExtraImageExtensions = normalizeExtensions(c.Scan.ExtraImageExtensions)
	c.Scan.ExtraVideoExtensions = normalizeExtensions(c.Scan.ExtraVideoExtensions)
}

func normalizeExtensions(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	out := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, value := range values {
		ext := strings.ToLower(strings.TrimSpace(value))
		ext = strings.TrimPrefix(ext, ".")
		if ext == "" {
			continue
		}
		if _, ok := seen[ext]; ok {
			continue
		}
		seen[ext] = struct{}{}
		out = append(out, ext)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func (c *Config) normalizeOrganize() error {
	c.Organize.FilenameTemplate = strings.TrimSpace(c.Organize.FilenameTemplate)
	if c.Organize.FilenameTemplate == "" {
		c.Organize.FilenameTemplate = defaultFilenameTemplate
	}
	c.Organize.FolderTemplate = strings.TrimSpace(c.Organize.FolderTemplate)
	c.Organize.Operation = strings.ToLower(strings.TrimSpace(c.Organize.Operation))
	if c.Organize.Operation == "" {
		c.Organize.Operation = defaultOperation
	}
	if dir := strings.TrimSpace(c.Organize.OutputDir); dir != "" {
		expanded, err := expandPath(dir)
		if err != nil {
			return fmt.Errorf("organize.output_dir: %w", err)
		}
		c.Organize.OutputDir = expanded
	} else {
		c.Organize.OutputDir = ""
	}
	return nil
}

func (c *Config) normalizeTools() {
	c.Tools.FFprobe = strings.TrimSpace(c.Tools.FFprobe)
	c.Tools.Exiftool = strings.TrimSpace(c.Tools.Exiftool)
}

func (c *Config) normalizeLogging() error {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if file := strings.TrimSpace(c.Logging.File); file != "" {
		expanded, err := expandPath(file)
		if err != nil {
			return fmt.Errorf("logging.file: %w", err)
		}
		c.Logging.File = expanded
	} else {
		c.Logging.File = ""
	}
	return nil
}
