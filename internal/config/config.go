package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"mkvslim/internal/apperr"
)

//go:embed sample_config.toml
var sampleConfig string

// Audio selects which audio tracks survive a remux.
type Audio struct {
	KeepLanguages []string `toml:"keep_languages" yaml:"keep_languages"`
}

// Subtitles selects which subtitle tracks survive a remux. Entries use the
// "language" or "language, title prefix" form.
type Subtitles struct {
	KeepLanguages []string `toml:"keep_languages" yaml:"keep_languages"`
}

// Processing controls what a run is allowed to write.
type Processing struct {
	DryRun            bool   `toml:"dry_run" yaml:"dry_run"`
	OverwriteExisting bool   `toml:"overwrite_existing" yaml:"overwrite_existing"`
	TransferMode      string `toml:"transfer_mode" yaml:"transfer_mode"`
}

// Tools names the external executables.
type Tools struct {
	Mkvmerge string `toml:"mkvmerge" yaml:"mkvmerge"`
	FFprobe  string `toml:"ffprobe" yaml:"ffprobe"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format" yaml:"format"`
	Level  string `toml:"level" yaml:"level"`
	Dir    string `toml:"dir,omitempty" yaml:"dir"`
}

// Config encapsulates all configuration values for mkvslim.
type Config struct {
	Audio      Audio      `toml:"audio" yaml:"audio"`
	Subtitles  Subtitles  `toml:"subtitles" yaml:"subtitles"`
	Processing Processing `toml:"processing" yaml:"processing"`
	Tools      Tools      `toml:"tools" yaml:"tools"`
	Logging    Logging    `toml:"logging" yaml:"logging"`
}

// Overrides carries command-line values. Nil slices leave the configured
// lists untouched; an empty non-nil slice clears them.
type Overrides struct {
	AudioLanguages    []string
	SubtitleLanguages []string
	DryRun            bool
	LogLevel          string
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigPath)
}

// Load locates, parses, and validates a configuration file. The bool result
// reports whether a file was found; when it was not, the defaults are
// returned without error. Parse and validation failures wrap ErrConfiguration.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, configError("resolve", "locate config file", err)
	}

	if exists {
		if err := decodeFile(resolvedPath, &cfg); err != nil {
			return nil, "", false, configError("parse", fmt.Sprintf("read %s", resolvedPath), err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, configError("normalize", "expand paths", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func decodeFile(path string, cfg *Config) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		decoder := yaml.NewDecoder(file)
		decoder.KnownFields(true)
		if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("parse yaml: %w", err)
		}
	default:
		decoder := toml.NewDecoder(file)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(cfg); err != nil {
			var strict *toml.StrictMissingError
			if errors.As(err, &strict) {
				return fmt.Errorf("parse toml: %s", strings.TrimSpace(strict.String()))
			}
			return fmt.Errorf("parse toml: %w", err)
		}
	}
	return nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if strings.TrimSpace(path) == "" {
		path = defaultConfigPath
	}
	expanded, err := expandPath(path)
	if err != nil {
		return "", false, err
	}
	info, err := os.Stat(expanded)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return expanded, false, nil
		}
		return "", false, fmt.Errorf("stat config: %w", err)
	}
	if info.IsDir() {
		return "", false, fmt.Errorf("config path %s is a directory", expanded)
	}
	return expanded, true, nil
}

// ApplyOverrides merges command-line values and revalidates the result.
func (c *Config) ApplyOverrides(o Overrides) error {
	if o.AudioLanguages != nil {
		c.Audio.KeepLanguages = trimList(o.AudioLanguages)
	}
	if o.SubtitleLanguages != nil {
		c.Subtitles.KeepLanguages = trimList(o.SubtitleLanguages)
	}
	if o.DryRun {
		c.Processing.DryRun = true
	}
	if level := strings.TrimSpace(o.LogLevel); level != "" {
		c.Logging.Level = strings.ToLower(level)
	}
	return c.Validate()
}

// MkvmergeBinary returns the mkvmerge executable name.
func (c *Config) MkvmergeBinary() string {
	if v := strings.TrimSpace(c.Tools.Mkvmerge); v != "" {
		return v
	}
	return defaultMkvmerge
}

// FFprobeBinary returns the ffprobe executable name used for stream probing.
func (c *Config) FFprobeBinary() string {
	if v := strings.TrimSpace(c.Tools.FFprobe); v != "" {
		return v
	}
	return defaultFFprobe
}

// Encode writes the configuration as TOML.
func (c *Config) Encode(w io.Writer) error {
	encoder := toml.NewEncoder(w)
	encoder.SetIndentTables(true)
	return encoder.Encode(c)
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
// An existing file is left alone unless overwrite is set.
func CreateSample(path string, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return configError("init", fmt.Sprintf("%s already exists", path), nil)
		}
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}

// SampleConfig returns the embedded sample configuration.
func SampleConfig() string {
	return sampleConfig
}

func configError(operation, message string, err error) error {
	return apperr.Wrap(apperr.ErrConfiguration, "config", operation, message, err)
}
