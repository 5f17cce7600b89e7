package walker

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// ErrNoFiles is returned when no pattern matched anything usable.
var ErrNoFiles = errors.New("no files matched the given patterns")

// Options controls how patterns are expanded
type Options struct {
	Recursive bool     // directory arguments expand to dir/** instead of dir/*
	Excludes  []string // doublestar patterns matched against slash paths
	Dirs      bool     // collect directories instead of regular files
}

// Result is the ordered, de-duplicated list of matched paths
type Result struct {
	Paths   []string
	Missing []string // patterns that matched nothing
}

// Walker expands file patterns into concrete paths
type Walker struct {
	opts Options
}

// NewWalker creates a new pattern walker
func NewWalker(opts Options) (*Walker, error) {
	for _, pattern := range opts.Excludes {
		if !doublestar.ValidatePattern(strings.TrimSuffix(pattern, "/")) {
			return nil, fmt.Errorf("invalid exclude pattern: %q", pattern)
		}
	}
	return &Walker{opts: opts}, nil
}

// Expand resolves every pattern in order. Paths keep the order in which they
// were first matched so the resulting plan is stable for a fixed input.
func (w *Walker) Expand(patterns []string) (*Result, error) {
	result := &Result{
		Paths:   []string{},
		Missing: []string{},
	}
	seen := make(map[string]bool)

	for _, pattern := range patterns {
		if pattern == "" {
			continue
		}

		matches, err := w.glob(pattern)
		if err != nil {
			return nil, err
		}
		if len(matches) == 0 {
			result.Missing = append(result.Missing, pattern)
			continue
		}

		for _, path := range matches {
			path = filepath.Clean(path)
			if seen[path] {
				continue
			}
			info, err := os.Stat(path)
			if err != nil {
				continue
			}
			if w.opts.Dirs != info.IsDir() {
				continue
			}
			if !w.opts.Dirs && !info.Mode().IsRegular() {
				continue
			}
			if w.isExcluded(filepath.ToSlash(path)) {
				continue
			}
			seen[path] = true
			result.Paths = append(result.Paths, path)
		}
	}

	if len(result.Paths) == 0 {
		return result, ErrNoFiles
	}
	return result, nil
}

func (w *Walker) glob(pattern string) ([]string, error) {
	target := pattern
	if info, err := os.Stat(pattern); err == nil {
		if !info.IsDir() || w.opts.Dirs {
			// Literal path; may contain glob meta characters such as "[1]".
			return []string{pattern}, nil
		}
		if w.opts.Recursive {
			target = filepath.Join(pattern, "**")
		} else {
			target = filepath.Join(pattern, "*")
		}
	}

	matches, err := doublestar.FilepathGlob(target)
	if err != nil {
		return nil, fmt.Errorf("expand pattern %q: %w", pattern, err)
	}
	sort.Strings(matches)
	return matches, nil
}

// isExcluded checks if a path matches any exclude pattern
func (w *Walker) isExcluded(path string) bool {
	for _, pattern := range w.opts.Excludes {
		// Handle directory patterns (ending with /)
		if strings.HasSuffix(pattern, "/") {
			dirPattern := strings.TrimSuffix(pattern, "/")
			parts := strings.Split(path, "/")
			for i := 1; i <= len(parts); i++ {
				subPath := strings.Join(parts[:i], "/")
				if matched, _ := doublestar.Match(dirPattern, subPath); matched {
					return true
				}
				if i < len(parts) {
					if matched, _ := doublestar.Match(dirPattern, parts[i-1]); matched {
						return true
					}
				}
			}
			continue
		}

		if matched, _ := doublestar.Match(pattern, path); matched {
			return true
		}
		if matched, _ := doublestar.Match(pattern, filepath.Base(path)); matched {
			return true
		}
	}
	return false
}
