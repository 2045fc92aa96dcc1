package deps

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"mkvslim/internal/apperr"
)

func TestCheckBinaries(t *testing.T) {
	binDir := t.TempDir()
	present := filepath.Join(binDir, "present")
	script := []byte("#!/bin/sh\nexit 0\n")
	if err := os.WriteFile(present, script, 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}
	reqs := []Requirement{
		{Name: "Present", Command: present},
		{Name: "Missing", Command: "clearly-not-present-binary"},
		{Name: "Blank", Command: "  "},
	}

	results := CheckBinaries(reqs)
	if len(results) != len(reqs) {
		t.Fatalf("expected %d results, got %d", len(reqs), len(results))
	}
	if !results[0].Available || results[0].Path != present {
		t.Fatalf("expected first requirement to be available, got %#v", results[0])
	}
	if results[0].Detail != "" {
		t.Fatalf("unexpected detail for available dependency: %s", results[0].Detail)
	}
	if results[1].Available {
		t.Fatalf("expected missing binary to be unavailable")
	}
	if results[1].Detail == "" {
		t.Fatalf("expected detail message for missing binary")
	}
	if results[2].Detail != "command not configured" {
		t.Fatalf("unexpected detail for blank command: %q", results[2].Detail)
	}
}

func TestRequirementsDefaults(t *testing.T) {
	reqs := Requirements("", " /opt/ffprobe ")
	if len(reqs) != 2 {
		t.Fatalf("expected 2 requirements, got %d", len(reqs))
	}
	if reqs[0].Command != "mkvmerge" || reqs[0].Optional {
		t.Fatalf("unexpected mkvmerge requirement: %#v", reqs[0])
	}
	if reqs[1].Command != "/opt/ffprobe" || !reqs[1].Optional {
		t.Fatalf("unexpected ffprobe requirement: %#v", reqs[1])
	}
}

func TestRequireAll(t *testing.T) {
	tests := []struct {
		name     string
		statuses []Status
		wantErr  string
	}{
		{
			name:     "all available",
			statuses: []Status{{Name: "mkvmerge", Available: true}},
		},
		{
			name:     "optional missing",
			statuses: []Status{{Name: "mkvmerge", Available: true}, {Name: "ffprobe", Optional: true}},
		},
		{
			name:     "required missing",
			statuses: []Status{{Name: "mkvmerge"}, {Name: "ffprobe", Optional: true}},
			wantErr:  "mkvmerge",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := RequireAll(tt.statuses)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, apperr.ErrDependency) {
				t.Fatalf("expected ErrDependency, got %v", err)
			}
			if !strings.Contains(err.Error(), tt.wantErr) || strings.Contains(err.Error(), "ffprobe") {
				t.Fatalf("unexpected message: %v", err)
			}
		})
	}
}

func TestMissingOptional(t *testing.T) {
	statuses := []Status{{Name: "mkvmerge"}, {Name: "ffprobe", Optional: true}, {Name: "x", Optional: true, Available: true}}
	missing := MissingOptional(statuses)
	if len(missing) != 1 || missing[0].Name != "ffprobe" {
		t.Fatalf("unexpected missing optional: %#v", missing)
	}
}
