package config

import "time"

// UIConfig holds terminal presentation settings.
type UIConfig struct {
	// GlamourStyle is "auto" (detect background), "dark", "light", "notty",
	// or a path to a glamour JSON style file.
	GlamourStyle string `yaml:"glamour_style"`

	// WordWrap is the column the rendered document wraps at (0 uses the default of 80).
	WordWrap int `yaml:"word_wrap"`

	// CopiedFlash is how long the "copied" notice stays up, e.g. "2s".
	CopiedFlash string `yaml:"copied_flash"`
}

// DefaultUIConfig returns sensible UI defaults.
func DefaultUIConfig() *UIConfig {
	return &UIConfig{
		GlamourStyle: "auto",
		WordWrap:     80,
		CopiedFlash:  "2s",
	}
}

// GetCopiedFlash returns CopiedFlash as a duration, 2s when unset or invalid.
func (u UIConfig) GetCopiedFlash() time.Duration {
	d, err := time.ParseDuration(u.CopiedFlash)
	if err != nil || d <= 0 {
		return 2 * time.Second
	}
	return d
}
