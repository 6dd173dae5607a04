package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateScan(); err != nil {
		return err
	}
	if err := c.validateOrganize(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateScan() error {
	if c.Scan.Workers < 1 {
		return errors.New("scan.workers must be positive")
	}
	return nil
}

func (c *Config) validateOrganize() error {
	switch c.Organize.Operation {
	case "copy", "move":
	default:
		return fmt.Errorf("organize.operation must be %q or %q, got %q", "copy", "move", c.Organize.Operation)
	}
	if c.Organize.FilenameTemplate == "" {
		return errors.New("organize.filename_template must be set")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error; got %q", c.Logging.Level)
	}
	return nil
}
