package container

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"mkvslim/internal/apperr"
)

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestHasContainerExtension(t *testing.T) {
	tests := map[string]bool{
		"movie.mkv":      true,
		"Movie.MKV":      true,
		"audio.mka":      true,
		"subs.mks":       true,
		"clip.mp4":       false,
		"noext":          false,
		"archive.mkv.7z": false,
	}
	for path, want := range tests {
		if got := HasContainerExtension(path); got != want {
			t.Errorf("HasContainerExtension(%q) = %v, want %v", path, got, want)
		}
	}
}

func TestHasSignature(t *testing.T) {
	ok, err := HasSignature(bytes.NewReader([]byte{0x1A, 0x45, 0xDF, 0xA3, 0x01}))
	if err != nil || !ok {
		t.Fatalf("expected signature match, got %v %v", ok, err)
	}
	ok, err = HasSignature(bytes.NewReader([]byte{0x1A, 0x45}))
	if err != nil || ok {
		t.Fatalf("short header should not match, got %v %v", ok, err)
	}
}

func TestValidate(t *testing.T) {
	valid := writeFile(t, "good.mkv", []byte{0x1A, 0x45, 0xDF, 0xA3, 0x9F, 0x42})
	if err := Validate(valid); err != nil {
		t.Fatalf("expected valid file, got %v", err)
	}

	tests := []struct {
		name   string
		path   string
		target error
	}{
		{"bad magic", writeFile(t, "bad.mkv", []byte("RIFF....")), ErrNotMatroska},
		{"empty file", writeFile(t, "empty.mks", nil), ErrNotMatroska},
		{"wrong extension", writeFile(t, "movie.mp4", []byte{0x1A, 0x45, 0xDF, 0xA3}), ErrUnsupportedFile},
		{"missing", filepath.Join(t.TempDir(), "missing.mkv"), os.ErrNotExist},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.path)
			if !errors.Is(err, apperr.ErrValidation) {
				t.Fatalf("expected validation error, got %v", err)
			}
			if !errors.Is(err, tt.target) {
				t.Fatalf("expected %v in chain, got %v", tt.target, err)
			}
		})
	}

	if err := Validate(t.TempDir()); !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("directory should fail validation, got %v", err)
	}
}
