package config

const (
	defaultGlob             = "*"
	defaultWorkers          = 4
	defaultFilenameTemplate = "{original_name}{extension}"
	defaultFolderTemplate   = "{year}/{month}"
	defaultOperation        = "copy"
	defaultLogFormat        = "console"
	defaultLogLevel         = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Scan: Scan{
			Glob:      defaultGlob,
			Recursive: true,
			Workers:   defaultWorkers,
		},
		Organize: Organize{
			FilenameTemplate: defaultFilenameTemplate,
			FolderTemplate:   defaultFolderTemplate,
			Operation:        defaultOperation,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
