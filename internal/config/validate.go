package config

import (
	"fmt"
	"strings"

	"mkvslim/internal/apperr"
)

// Validate ensures the configuration is usable. Failures wrap ErrConfiguration.
func (c *Config) Validate() error {
	if err := c.validateAudio(); err != nil {
		return err
	}
	if err := c.validateSubtitles(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateAudio() error {
	for i, lang := range c.Audio.KeepLanguages {
		if lang == "" {
			return validationError(fmt.Sprintf("audio.keep_languages[%d] is empty", i))
		}
	}
	return nil
}

func (c *Config) validateSubtitles() error {
	for i, entry := range c.Subtitles.KeepLanguages {
		lang, _, _ := strings.Cut(entry, ",")
		if strings.TrimSpace(lang) == "" {
			return validationError(fmt.Sprintf("subtitles.keep_languages[%d] %q has no language", i, entry))
		}
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return validationError(fmt.Sprintf("logging.format must be console or json, got %q", c.Logging.Format))
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "warning", "error":
	default:
		return validationError(fmt.Sprintf("logging.level must be debug, info, warn or error, got %q", c.Logging.Level))
	}
	return nil
}

func validationError(message string) error {
	return apperr.Wrap(apperr.ErrConfiguration, "config", "validate", message, nil)
}
