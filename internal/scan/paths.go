package scan

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"mkvslim/internal/apperr"
)

// ValidateSourceTarget rejects source and target trees that are identical or
// nested in either direction. Both are compared in canonical form; paths that
// do not exist yet are resolved through their nearest existing ancestor.
func ValidateSourceTarget(source, target string) error {
	src, err := Canonical(source)
	if err != nil {
		return apperr.Wrap(apperr.ErrValidation, "path safety", "resolve source", source, err)
	}
	dst, err := Canonical(target)
	if err != nil {
		return apperr.Wrap(apperr.ErrValidation, "path safety", "resolve target", target, err)
	}
	return CheckNesting(src, dst)
}

// CheckNesting applies the nesting rules to already canonical paths.
func CheckNesting(source, target string) error {
	source = filepath.Clean(source)
	target = filepath.Clean(target)
	switch {
	case source == target:
		return apperr.Validation("path safety",
			fmt.Sprintf("source and target are the same directory (%s)", source))
	case isWithin(target, source):
		return apperr.Validation("path safety",
			fmt.Sprintf("target %s is nested inside source %s; outputs would be reprocessed as inputs", target, source))
	case isWithin(source, target):
		return apperr.Validation("path safety",
			fmt.Sprintf("source %s is nested inside target %s; inputs could be overwritten", source, target))
	}
	return nil
}

// isWithin reports whether child lies strictly below parent, comparing whole
// path components.
func isWithin(child, parent string) bool {
	rel, err := filepath.Rel(parent, child)
	if err != nil || rel == "." {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) && !filepath.IsAbs(rel)
}

// Canonical returns the absolute, symlink-free form of path. Missing trailing
// components are appended to the canonical form of the deepest existing
// ancestor.
func Canonical(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	var missing []string
	current := abs
	for {
		resolved, err := filepath.EvalSymlinks(current)
		if err == nil {
			for i := len(missing) - 1; i >= 0; i-- {
				resolved = filepath.Join(resolved, missing[i])
			}
			return resolved, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return "", err
		}
		parent := filepath.Dir(current)
		if parent == current {
			return abs, nil
		}
		missing = append(missing, filepath.Base(current))
		current = parent
	}
}

// TargetPath computes where file from root lands under targetRoot. Recursive
// mode keeps the relative layout and rejects ".." components; otherwise only
// the file name is used.
func TargetPath(root, file, targetRoot string, recursive bool) (string, error) {
	if !recursive {
		return filepath.Join(targetRoot, filepath.Base(file)), nil
	}
	rel, err := filepath.Rel(root, file)
	if err != nil {
		return "", apperr.Wrap(apperr.ErrValidation, "target path", "relative path", file, err)
	}
	if filepath.IsAbs(rel) {
		return "", apperr.Validation("target path", fmt.Sprintf("%s is not below %s", file, root))
	}
	for _, component := range strings.Split(rel, string(filepath.Separator)) {
		if component == ".." {
			return "", apperr.Validation("target path", fmt.Sprintf("path traversal detected in %s", rel))
		}
	}
	return filepath.Join(targetRoot, rel), nil
}

// EnsureParent creates the directory that will hold path.
func EnsureParent(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return apperr.Wrap(apperr.ErrTransfer, "target path", "create directory", filepath.Dir(path), err)
	}
	return nil
}
