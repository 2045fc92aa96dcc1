package main

import (
	"bytes"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

var ebmlHeader = []byte{0x1A, 0x45, 0xDF, 0xA3, 0x00, 0x01, 0x02, 0x03}

const mixedIdentify = `{"container":{"recognized":true,"supported":true,"properties":{"duration":1000000000}},"tracks":[
{"id":0,"type":"video","codec":"HEVC","properties":{"default_track":true,"pixel_dimensions":"1920x1080"}},
{"id":1,"type":"audio","codec":"AAC","properties":{"language":"jpn","default_track":true,"audio_channels":2}},
{"id":2,"type":"audio","codec":"AC-3","properties":{"language":"eng","default_track":false,"audio_channels":6}},
{"id":3,"type":"subtitles","codec":"SubRip/SRT","properties":{"language":"eng","track_name":"Full","default_track":false}}
],"attachments":[]}`

const cleanIdentify = `{"container":{"recognized":true,"supported":true,"properties":{"duration":1000000000}},"tracks":[
{"id":0,"type":"video","codec":"HEVC","properties":{"default_track":true}},
{"id":1,"type":"audio","codec":"AAC","properties":{"language":"eng","default_track":true,"audio_channels":2}}
],"attachments":[]}`

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

// writeFakeMkvmerge installs a script that answers `-J` with identify and
// fails any other invocation.
func writeFakeMkvmerge(t *testing.T, identify string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script fakes require a POSIX shell")
	}
	path := filepath.Join(t.TempDir(), "mkvmerge")
	script := "#!/bin/sh\nif [ \"$1\" = \"-J\" ]; then\ncat <<'JSON'\n" + identify + "\nJSON\nexit 0\nfi\nexit 2\n"
	if err := os.WriteFile(path, []byte(script), 0o755); err != nil {
		t.Fatalf("write fake mkvmerge: %v", err)
	}
	return path
}

func writeTestConfig(t *testing.T, mkvmerge string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	content := strings.Join([]string{
		"[audio]",
		`keep_languages = ["eng"]`,
		"[subtitles]",
		`keep_languages = ["eng"]`,
		"[tools]",
		"mkvmerge = \"" + mkvmerge + "\"",
		`ffprobe = "/nonexistent/ffprobe"`,
		"[logging]",
		`level = "error"`,
		"",
	}, "\n")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func writeMKV(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, ebmlHeader, 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}

// requireIdentified fails when the run fell back to the synthetic unknown
// stream instead of using the identified tracks.
func requireIdentified(t *testing.T, output string) {
	t.Helper()
	if strings.Contains(output, "Track details unavailable") || strings.Contains(output, "Other (1)") {
		t.Fatalf("expected identified tracks, got fallback report:\n%s", output)
	}
}
