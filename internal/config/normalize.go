package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	c.Audio.KeepLanguages = trimList(c.Audio.KeepLanguages)
	c.Subtitles.KeepLanguages = trimList(c.Subtitles.KeepLanguages)
	c.normalizeProcessing()
	c.normalizeTools()
	return c.normalizeLogging()
}

func (c *Config) normalizeProcessing() {
	c.Processing.TransferMode = strings.TrimSpace(c.Processing.TransferMode)
}

func (c *Config) normalizeTools() {
	c.Tools.Mkvmerge = strings.TrimSpace(c.Tools.Mkvmerge)
	if c.Tools.Mkvmerge == "" {
		c.Tools.Mkvmerge = defaultMkvmerge
	}
	c.Tools.FFprobe = strings.TrimSpace(c.Tools.FFprobe)
}

func (c *Config) normalizeLogging() error {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	var err error
	if c.Logging.Dir, err = expandPath(strings.TrimSpace(c.Logging.Dir)); err != nil {
		return fmt.Errorf("logging.dir: %w", err)
	}
	return nil
}

// trimList trims each entry; a nil input stays nil so "not set" survives.
func trimList(values []string) []string {
	if values == nil {
		return nil
	}
	out := make([]string, 0, len(values))
	for _, v := range values {
		out = append(out, strings.TrimSpace(v))
	}
	return out
}
