package scan

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/gobwas/glob"

	"mkvslim/internal/apperr"
	"mkvslim/internal/container"
)

// Discover lists container files under root in sorted order.
//
// Non-recursive mode inspects only root's entries and matches pattern against
// the file name. Recursive mode walks subdirectories depth-first and matches
// pattern against the slash-separated path relative to root, where "*" also
// crosses "/" so "*.mkv" selects nested files. An empty pattern matches
// everything.
func Discover(root string, recursive bool, pattern string) ([]string, error) {
	match, err := compileFilter(pattern, recursive)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(root)
	if err != nil {
		return nil, apperr.Wrap(apperr.ErrValidation, "discover", "stat root", "source directory is not accessible", err)
	}
	if !info.IsDir() {
		return nil, apperr.Validation("discover", fmt.Sprintf("%s is not a directory", root))
	}

	var files []string
	visited := make(map[string]struct{})
	stack := []string{root}

	for len(stack) > 0 {
		dir := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		canonical, err := filepath.EvalSymlinks(dir)
		if err != nil {
			return nil, apperr.Wrap(apperr.ErrValidation, "discover", "resolve directory", dir, err)
		}
		if _, seen := visited[canonical]; seen {
			continue
		}
		visited[canonical] = struct{}{}

		entries, err := os.ReadDir(dir)
		if err != nil {
			return nil, apperr.Wrap(apperr.ErrValidation, "discover", "read directory", dir, err)
		}

		var subdirs []string
		for _, entry := range entries {
			path := filepath.Join(dir, entry.Name())
			// Stat follows symlinks so linked files and directories are included.
			info, err := os.Stat(path)
			if err != nil {
				continue
			}
			if info.IsDir() {
				if recursive {
					subdirs = append(subdirs, path)
				}
				continue
			}
			if !info.Mode().IsRegular() || !container.HasContainerExtension(path) {
				continue
			}
			ok, err := matches(root, path, recursive, match)
			if err != nil {
				return nil, err
			}
			if ok {
				files = append(files, path)
			}
		}
		// Push in reverse so the lexically first subdirectory is walked first.
		for i := len(subdirs) - 1; i >= 0; i-- {
			stack = append(stack, subdirs[i])
		}
	}

	sort.Strings(files)
	return files, nil
}

// compileFilter builds the matcher for pattern. Recursive patterns are
// compiled without separators, so wildcards span directories; a doublestar
// match is also accepted so "**/name" still matches at the top level.
func compileFilter(pattern string, recursive bool) (func(string) bool, error) {
	if pattern == "" {
		return func(string) bool { return true }, nil
	}
	if !doublestar.ValidatePattern(pattern) {
		return nil, apperr.Validation("discover", fmt.Sprintf("invalid glob pattern %q", pattern))
	}
	if !recursive {
		return func(name string) bool {
			ok, _ := doublestar.Match(pattern, name)
			return ok
		}, nil
	}
	g, err := glob.Compile(pattern)
	if err != nil {
		return nil, apperr.Wrap(apperr.ErrValidation, "discover", "compile glob", pattern, err)
	}
	return func(rel string) bool {
		if g.Match(rel) {
			return true
		}
		ok, _ := doublestar.Match(pattern, rel)
		return ok
	}, nil
}

func matches(root, path string, recursive bool, match func(string) bool) (bool, error) {
	subject := filepath.Base(path)
	if recursive {
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return false, apperr.Wrap(apperr.ErrValidation, "discover", "relative path", path, err)
		}
		subject = filepath.ToSlash(rel)
	}
	return match(subject), nil
}
