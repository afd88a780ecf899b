package main

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	gitignore "github.com/monochromegane/go-gitignore"
	"github.com/spf13/afero"
)

// Filter decides which entries below a root are left out of a traversal.
// A nil *Filter excludes nothing.
type Filter struct {
	root     string
	patterns []string
	ignore   gitignore.IgnoreMatcher
}

// NewFilter builds a Filter for root from comma-separated glob patterns and,
// if useGitignore is set, the .gitignore found directly in root.
// It returns nil when there is nothing to exclude.
func NewFilter(fsys afero.Fs, root, patterns string, useGitignore bool) (*Filter, error) {
	f := &Filter{root: root, patterns: parsePatterns(patterns)}

	// Reject bad globs up front so matching never has to report errors
	for _, p := range f.patterns {
		if _, err := filepath.Match(p, ""); err != nil {
			return nil, fmt.Errorf("invalid exclude pattern '%s': %w", p, err)
		}
	}

	if useGitignore {
		matcher, err := loadGitignore(fsys, root)
		if err != nil {
			return nil, err
		}
		f.ignore = matcher
	}

	if len(f.patterns) == 0 && f.ignore == nil {
		return nil, nil
	}
	return f, nil
}

// Excludes reports whether path should be skipped without being counted.
// The root itself is never excluded.
func (f *Filter) Excludes(path string, isDir bool) bool {
	if f == nil || path == f.root {
		return false
	}
	// Globs match the base name at any depth
	if matchesAnyPattern(filepath.Base(path), f.patterns) {
		return true
	}
	return f.ignore != nil && f.ignore.Match(path, isDir)
}

// loadGitignore reads root/.gitignore. A missing file is not an error.
func loadGitignore(fsys afero.Fs, root string) (gitignore.IgnoreMatcher, error) {
	path := filepath.Join(root, ".gitignore")
	file, err := fsys.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("could not open %s: %w", path, err)
	}
	defer file.Close()

	return gitignore.NewGitIgnoreFromReader(root, file), nil
}

// parsePatterns splits a comma-separated string of patterns into a slice.
func parsePatterns(patterns string) []string {
	var out []string
	for _, p := range strings.Split(patterns, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// matchesAnyPattern checks name against already validated glob patterns.
func matchesAnyPattern(name string, patterns []string) bool {
	for _, pattern := range patterns {
		if matched, _ := filepath.Match(pattern, name); matched {
			return true
		}
	}
	return false
}
