package config_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"mkvslim/internal/apperr"
	"mkvslim/internal/config"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestLoadMissingDefaultConfigReturnsDefaults(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}
	want := filepath.Join(tempHome, ".config", "mkvslim", "config.toml")
	if resolved != want {
		t.Fatalf("unexpected resolved path: got %q want %q", resolved, want)
	}
	if !reflect.DeepEqual(cfg.Audio.KeepLanguages, []string{"eng", "jpn", "und"}) {
		t.Fatalf("unexpected audio defaults: %v", cfg.Audio.KeepLanguages)
	}
	if !reflect.DeepEqual(cfg.Subtitles.KeepLanguages, []string{"eng", "spa"}) {
		t.Fatalf("unexpected subtitle defaults: %v", cfg.Subtitles.KeepLanguages)
	}
	if cfg.Processing.DryRun || cfg.Processing.OverwriteExisting {
		t.Fatal("expected write-enabled, non-overwriting defaults")
	}
	if cfg.MkvmergeBinary() != "mkvmerge" || cfg.FFprobeBinary() != "ffprobe" {
		t.Fatalf("unexpected tool defaults: %+v", cfg.Tools)
	}
	if cfg.Logging.Format != "console" || cfg.Logging.Level != "info" || cfg.Logging.Dir != "" {
		t.Fatalf("unexpected logging defaults: %+v", cfg.Logging)
	}
}

func TestLoadTOML(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	path := filepath.Join(t.TempDir(), "config.toml")
	writeFile(t, path, `
[audio]
keep_languages = [" jpn ", "eng"]

[subtitles]
keep_languages = ["eng, Signs", "spa"]

[processing]
dry_run = true
transfer_mode = " move "

[tools]
mkvmerge = "/opt/mkvtoolnix/mkvmerge"
ffprobe = ""

[logging]
format = "JSON"
level = "Debug"
dir = "~/logs"
`)

	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != path {
		t.Fatalf("expected %q to be found, got %q exists=%v", path, resolved, exists)
	}
	if !reflect.DeepEqual(cfg.Audio.KeepLanguages, []string{"jpn", "eng"}) {
		t.Fatalf("unexpected audio languages: %v", cfg.Audio.KeepLanguages)
	}
	if !reflect.DeepEqual(cfg.Subtitles.KeepLanguages, []string{"eng, Signs", "spa"}) {
		t.Fatalf("unexpected subtitle languages: %v", cfg.Subtitles.KeepLanguages)
	}
	if !cfg.Processing.DryRun || cfg.Processing.TransferMode != "move" {
		t.Fatalf("unexpected processing: %+v", cfg.Processing)
	}
	if cfg.MkvmergeBinary() != "/opt/mkvtoolnix/mkvmerge" {
		t.Fatalf("unexpected mkvmerge: %q", cfg.MkvmergeBinary())
	}
	if cfg.FFprobeBinary() != "ffprobe" {
		t.Fatalf("expected ffprobe fallback, got %q", cfg.FFprobeBinary())
	}
	if cfg.Logging.Format != "json" || cfg.Logging.Level != "debug" {
		t.Fatalf("expected normalized logging, got %+v", cfg.Logging)
	}
	if cfg.Logging.Dir != filepath.Join(tempHome, "logs") {
		t.Fatalf("expected expanded log dir, got %q", cfg.Logging.Dir)
	}
}

func TestLoadLegacyYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	writeFile(t, path, `audio:
  keep_languages:
    - jpn
subtitles:
  keep_languages:
    - "eng, Full"
processing:
  dry_run: true
`)
	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected yaml file to be found")
	}
	if !reflect.DeepEqual(cfg.Audio.KeepLanguages, []string{"jpn"}) {
		t.Fatalf("unexpected audio languages: %v", cfg.Audio.KeepLanguages)
	}
	if !reflect.DeepEqual(cfg.Subtitles.KeepLanguages, []string{"eng, Full"}) {
		t.Fatalf("unexpected subtitle languages: %v", cfg.Subtitles.KeepLanguages)
	}
	if !cfg.Processing.DryRun {
		t.Fatal("expected dry run from yaml")
	}
	if cfg.MkvmergeBinary() != "mkvmerge" {
		t.Fatalf("expected default tools for legacy file, got %+v", cfg.Tools)
	}
}

func TestLoadInvalidFiles(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"malformed toml", "config.toml", "[audio\nkeep_languages = 1"},
		{"unknown toml key", "config.toml", "[audio]\nkeep_langs = [\"eng\"]\n"},
		{"wrong toml type", "config.toml", "[processing]\ndry_run = \"yes\"\n"},
		{"malformed yaml", "settings.yml", "audio: [unclosed\n"},
		{"unknown yaml key", "settings.yaml", "audio:\n  languages: [eng]\n"},
		{"empty subtitle language", "config.toml", "[subtitles]\nkeep_languages = [\", Signs\"]\n"},
		{"empty audio entry", "config.toml", "[audio]\nkeep_languages = [\"eng\", \" \"]\n"},
		{"bad log format", "config.toml", "[logging]\nformat = \"xml\"\n"},
		{"bad log level", "config.toml", "[logging]\nlevel = \"loud\"\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tt.file)
			writeFile(t, path, tt.content)
			_, _, _, err := config.Load(path)
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, apperr.ErrConfiguration) {
				t.Fatalf("expected ErrConfiguration, got %v", err)
			}
		})
	}
}

func TestLoadEmptyYAMLUsesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	writeFile(t, path, "")
	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || len(cfg.Audio.KeepLanguages) != 3 {
		t.Fatalf("expected defaults from empty yaml, got %+v", cfg.Audio)
	}
}

func TestLoadDirectoryPathFails(t *testing.T) {
	if _, _, _, err := config.Load(t.TempDir()); !errors.Is(err, apperr.ErrConfiguration) {
		t.Fatalf("expected ErrConfiguration for directory, got %v", err)
	}
}

func TestApplyOverrides(t *testing.T) {
	cfg := config.Default()
	err := cfg.ApplyOverrides(config.Overrides{
		AudioLanguages:    []string{" ger "},
		SubtitleLanguages: []string{"eng, Signs"},
		DryRun:            true,
		LogLevel:          "WARN",
	})
	if err != nil {
		t.Fatalf("ApplyOverrides returned error: %v", err)
	}
	if !reflect.DeepEqual(cfg.Audio.KeepLanguages, []string{"ger"}) {
		t.Fatalf("unexpected audio languages: %v", cfg.Audio.KeepLanguages)
	}
	if !reflect.DeepEqual(cfg.Subtitles.KeepLanguages, []string{"eng, Signs"}) {
		t.Fatalf("unexpected subtitle languages: %v", cfg.Subtitles.KeepLanguages)
	}
	if !cfg.Processing.DryRun || cfg.Logging.Level != "warn" {
		t.Fatalf("unexpected processing/logging: %+v %+v", cfg.Processing, cfg.Logging)
	}

	untouched := config.Default()
	if err := untouched.ApplyOverrides(config.Overrides{}); err != nil {
		t.Fatalf("empty overrides: %v", err)
	}
	if !reflect.DeepEqual(untouched.Audio.KeepLanguages, config.Default().Audio.KeepLanguages) {
		t.Fatalf("nil override should keep languages, got %v", untouched.Audio.KeepLanguages)
	}

	cleared := config.Default()
	if err := cleared.ApplyOverrides(config.Overrides{SubtitleLanguages: []string{}}); err != nil {
		t.Fatalf("clear overrides: %v", err)
	}
	if len(cleared.Subtitles.KeepLanguages) != 0 {
		t.Fatalf("expected cleared subtitles, got %v", cleared.Subtitles.KeepLanguages)
	}
}

func TestApplyOverridesRejectsEmptySubtitleLanguage(t *testing.T) {
	cfg := config.Default()
	err := cfg.ApplyOverrides(config.Overrides{SubtitleLanguages: []string{" , Signs"}})
	if !errors.Is(err, apperr.ErrConfiguration) {
		t.Fatalf("expected ErrConfiguration, got %v", err)
	}
}

func TestSampleConfigMatchesDefaults(t *testing.T) {
	var sample config.Config
	if err := toml.Unmarshal([]byte(config.SampleConfig()), &sample); err != nil {
		t.Fatalf("sample config does not parse: %v", err)
	}
	def := config.Default()
	if !reflect.DeepEqual(sample.Audio, def.Audio) || !reflect.DeepEqual(sample.Subtitles, def.Subtitles) {
		t.Fatalf("sample languages drift from defaults: %+v %+v", sample.Audio, sample.Subtitles)
	}
	if sample.Processing != def.Processing || sample.Tools != def.Tools || sample.Logging != def.Logging {
		t.Fatalf("sample drift: %+v", sample)
	}
}

func TestCreateSample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(path, false); err != nil {
		t.Fatalf("CreateSample returned error: %v", err)
	}
	cfg, _, exists, err := config.Load(path)
	if err != nil || !exists {
		t.Fatalf("sample does not load: exists=%v err=%v", exists, err)
	}
	if cfg.Processing.TransferMode != "hardlink_or_copy" {
		t.Fatalf("unexpected transfer mode: %q", cfg.Processing.TransferMode)
	}
	if err := config.CreateSample(path, false); !errors.Is(err, apperr.ErrConfiguration) {
		t.Fatalf("expected refusal to overwrite, got %v", err)
	}
	if err := config.CreateSample(path, true); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
}

func TestEncodeRoundTrips(t *testing.T) {
	cfg := config.Default()
	cfg.Subtitles.KeepLanguages = []string{"eng, Signs"}
	var buf bytes.Buffer
	if err := cfg.Encode(&buf); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if !strings.Contains(buf.String(), "[subtitles]") {
		t.Fatalf("expected subtitles table, got:\n%s", buf.String())
	}
	path := filepath.Join(t.TempDir(), "config.toml")
	writeFile(t, path, buf.String())
	loaded, _, _, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load encoded config: %v", err)
	}
	if !reflect.DeepEqual(loaded.Subtitles.KeepLanguages, cfg.Subtitles.KeepLanguages) {
		t.Fatalf("round trip mismatch: %v", loaded.Subtitles.KeepLanguages)
	}
}

func TestExpandPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	got, err := config.ExpandPath("~/media")
	if err != nil {
		t.Fatalf("ExpandPath: %v", err)
	}
	if got != filepath.Join(home, "media") {
		t.Fatalf("unexpected expansion: %q", got)
	}
	if got, _ := config.ExpandPath(""); got != "" {
		t.Fatalf("expected empty path to stay empty, got %q", got)
	}
}
