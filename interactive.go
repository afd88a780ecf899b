package main

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/dustin/go-humanize"
	fuzzyfinder "github.com/ktr0731/go-fuzzyfinder"
	"github.com/spf13/afero"
)

// errAborted is returned when the user leaves the finder without a choice.
var errAborted = errors.New("selection aborted")

// listCandidates returns every path under root, root excluded,
// skipping hidden entries unless showHidden is set.
func listCandidates(fsys afero.Fs, root string, showHidden bool) ([]string, error) {
	var candidates []string
	err := afero.Walk(fsys, root, func(path string, info fs.FileInfo, err error) error {
		if err != nil {
			return nil // unreadable entries are still sized, just not offered
		}
		if path == root {
			return nil
		}
		if !showHidden && isHidden(info.Name()) {
			if info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		candidates = append(candidates, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error scanning for files/directories: %w", err)
	}
	return candidates, nil
}

// runInteractiveFinder lets the user pick one path below the working
// directory. The preview pane shows the size the pick would report.
func runInteractiveFinder(acc *Accumulator, fsys afero.Fs, showHidden bool) (string, error) {
	candidates, err := listCandidates(fsys, ".", showHidden)
	if err != nil {
		return "", err
	}
	if len(candidates) == 0 {
		return "", fmt.Errorf("no files or directories found to select from")
	}

	idx, err := fuzzyfinder.Find(
		candidates,
		func(i int) string {
			return candidates[i]
		},
		fuzzyfinder.WithPreviewWindow(func(i, w, h int) string {
			if i == -1 {
				return "Select a file or directory to size. Press Enter to confirm."
			}
			res := acc.ComputeSize(candidates[i])
			preview := fmt.Sprintf("Path: %s\nSize: %s Bytes (%s)", candidates[i],
				humanize.Comma(res.TotalBytes), humanize.IBytes(uint64(res.TotalBytes)))
			if res.Skipped > 0 {
				preview += fmt.Sprintf("\nUnreadable: %d", res.Skipped)
			}
			return preview
		}),
	)
	if err != nil {
		if errors.Is(err, fuzzyfinder.ErrAbort) {
			return "", errAborted
		}
		return "", fmt.Errorf("fuzzy finder error: %w", err)
	}

	return candidates[idx], nil
}

// isHidden checks if a base name is hidden (starts with '.').
func isHidden(name string) bool {
	if name == "." || name == ".." {
		return false
	}
	return len(name) > 0 && name[0] == '.'
}
