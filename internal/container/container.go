package container

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"mkvslim/internal/apperr"
)

// ebmlSignature identifies the Matroska family.
var ebmlSignature = []byte{0x1A, 0x45, 0xDF, 0xA3}

// Extensions are the recognized container extensions, without the dot.
var Extensions = []string{"mkv", "mka", "mks"}

var (
	ErrNotMatroska     = errors.New("not a matroska file")
	ErrUnsupportedFile = errors.New("unsupported file extension")
)

// HasContainerExtension reports whether path ends in a recognized extension,
// compared case-insensitively.
func HasContainerExtension(path string) bool {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	for _, candidate := range Extensions {
		if ext == candidate {
			return true
		}
	}
	return false
}

// HasSignature reports whether r begins with the EBML magic.
func HasSignature(r io.Reader) (bool, error) {
	header := make([]byte, len(ebmlSignature))
	if _, err := io.ReadFull(r, header); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return false, nil
		}
		return false, err
	}
	return bytes.Equal(header, ebmlSignature), nil
}

// Validate checks that path is a regular file with a recognized extension and
// the EBML signature at offset 0. Failures carry apperr.ErrValidation.
func Validate(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return apperr.Wrap(apperr.ErrValidation, "validate", "stat input", "input file is not accessible", err)
	}
	if !info.Mode().IsRegular() {
		return apperr.Validation("validate", fmt.Sprintf("%s is not a regular file", path))
	}
	if !HasContainerExtension(path) {
		return apperr.Wrap(apperr.ErrValidation, "validate", "check extension",
			fmt.Sprintf("%s must end in .mkv, .mka or .mks", filepath.Base(path)), ErrUnsupportedFile)
	}

	file, err := os.Open(path)
	if err != nil {
		return apperr.Wrap(apperr.ErrValidation, "validate", "open input", "cannot read input file", err)
	}
	defer file.Close()

	ok, err := HasSignature(file)
	if err != nil {
		return apperr.Wrap(apperr.ErrValidation, "validate", "read header", "cannot read input file", err)
	}
	if !ok {
		return apperr.Wrap(apperr.ErrValidation, "validate", "check signature",
			fmt.Sprintf("%s has no EBML header", filepath.Base(path)), ErrNotMatroska)
	}
	return nil
}
