package media

// Preset is a named template suggestion surfaced by the CLI.
type Preset struct {
	Name        string `json:"name"`
	Template    string `json:"template"`
	Description string `json:"description"`
}

// FilenamePresets returns the built-in filename template suggestions.
func FilenamePresets() []Preset {
	return []Preset{
		{
			Name:        "original",
			Template:    "{original_name}{extension}",
			Description: "Keep the original filename",
		},
		{
			Name:        "date",
			Template:    "{year}-{month}-{day}_{original_name}{extension}",
			Description: "Prefix with the capture date",
		},
		{
			Name:        "date-resolution",
			Template:    "{year}-{month}-{day}_{resolution}_{original_name}{extension}",
			Description: "Capture date and resolution prefix",
		},
		{
			Name:        "event",
			Template:    "{manual_event}_{original_name}{extension}",
			Description: "Prefix with the manual event tag",
		},
		{
			Name:        "location-date",
			Template:    "{manual_location}_{year}-{month}-{day}{extension}",
			Description: "Manual location plus capture date",
		},
	}
}

// FolderPresets returns the built-in folder-structure template suggestions.
func FolderPresets() []Preset {
	return []Preset{
		{
			Name:        "flat",
			Template:    "",
			Description: "Everything in the output root",
		},
		{
			Name:        "year",
			Template:    "{year}",
			Description: "One folder per year",
		},
		{
			Name:        "year-month",
			Template:    "{year}/{month}",
			Description: "Year folders with month subfolders",
		},
		{
			Name:        "type",
			Template:    "{type}",
			Description: "Split images from videos",
		},
		{
			Name:        "type-year",
			Template:    "{type}/{year}",
			Description: "Media type folders with year subfolders",
		},
		{
			Name:        "event",
			Template:    "{manual_event}",
			Description: "One folder per manual event tag",
		},
		{
			Name:        "location",
			Template:    "{manual_location}",
			Description: "One folder per manual location tag",
		},
		{
			Name:        "camera",
			Template:    "{camera_make}/{camera_model}",
			Description: "Camera make folders with model subfolders",
		},
	}
}
