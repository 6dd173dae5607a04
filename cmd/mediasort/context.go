package main

import (
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"mediasort/internal/catalog"
	"mediasort/internal/config"
	"mediasort/internal/deps"
	"mediasort/internal/extract"
	"mediasort/internal/logging"
	"mediasort/internal/media"
)

type commandContext struct {
	configFlag    *string
	logLevelFlag  *string
	logFormatFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
}

func newCommandContext(configFlag, logLevelFlag, logFormatFlag *string) *commandContext {
	return &commandContext{
		configFlag:    configFlag,
		logLevelFlag:  logLevelFlag,
		logFormatFlag: logFormatFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) configValue() *config.Config {
	cfg, _ := c.ensureConfig()
	return cfg
}

// loggerValue builds the process logger once. The --log-level and
// --log-format flags override the configured values without touching the
// shared config.
func (c *commandContext) loggerValue() *slog.Logger {
	c.loggerOnce.Do(func() {
		cfg := c.configValue()
		opts := logging.Options{Level: "info", Format: "console"}
		if cfg != nil {
			opts.Level = cfg.Logging.Level
			opts.Format = cfg.Logging.Format
			if file := strings.TrimSpace(cfg.Logging.File); file != "" {
				opts.OutputPaths = []string{"stderr", file}
			}
		}
		if c.logLevelFlag != nil {
			if level := strings.TrimSpace(*c.logLevelFlag); level != "" {
				opts.Level = level
			}
		}
		if c.logFormatFlag != nil {
			if format := strings.TrimSpace(*c.logFormatFlag); format != "" {
				opts.Format = format
			}
		}
		logger, err := logging.New(opts)
		if err != nil {
			logger = logging.NewNop()
		}
		c.logger = logger
	})
	return c.logger
}

// capabilities resolves the external tool binaries the extractor may call.
// Missing binaries resolve to empty strings and extraction degrades per
// field instead of failing.
func (c *commandContext) capabilities() extract.Capabilities {
	ffprobe := "ffprobe"
	exiftool := "exiftool"
	if cfg := c.configValue(); cfg != nil {
		ffprobe = cfg.FFprobeBinary()
		exiftool = cfg.ExiftoolBinary()
	}
	return extract.Capabilities{
		FFprobe:  deps.Resolve(ffprobe),
		Exiftool: deps.Resolve(exiftool),
	}
}

func (c *commandContext) newExtractor() *extract.Extractor {
	return extract.New(c.capabilities(), c.loggerValue())
}

func (c *commandContext) newClassifier() *media.Classifier {
	cfg := c.configValue()
	if cfg == nil {
		return media.NewClassifier(nil, nil)
	}
	return media.NewClassifier(cfg.Scan.ExtraImageExtensions, cfg.Scan.ExtraVideoExtensions)
}

func (c *commandContext) newCatalog(extractor *extract.Extractor) *catalog.Catalog {
	return catalog.New(c.newClassifier(), extractor, c.loggerValue())
}

// scanOptions merges scan flags with configured defaults. Flags the user set
// explicitly win over the config file.
func (c *commandContext) scanOptions(cmd *cobra.Command, glob string, recursive bool, workers int) catalog.ScanOptions {
	opts := catalog.ScanOptions{Glob: glob, Recursive: recursive, Workers: workers}
	cfg := c.configValue()
	if cfg == nil {
		return opts
	}
	if !cmd.Flags().Changed("glob") {
		opts.Glob = cfg.Scan.Glob
	}
	if !cmd.Flags().Changed("recursive") {
		opts.Recursive = cfg.Scan.Recursive
	}
	if !cmd.Flags().Changed("workers") {
		opts.Workers = cfg.Scan.Workers
	}
	return opts
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
