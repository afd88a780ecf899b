package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

// Accumulator sums file lengths under a root path.
type Accumulator struct {
	fs     afero.Fs
	filter *Filter
	log    logrus.FieldLogger
}

// NewAccumulator returns an Accumulator reading from fs.
// A nil filter visits everything; a nil logger discards diagnostics.
func NewAccumulator(fs afero.Fs, filter *Filter, log logrus.FieldLogger) *Accumulator {
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	return &Accumulator{fs: fs, filter: filter, log: log}
}

// ComputeSize walks the tree rooted at root and returns the summed length of
// every regular file in it. Entries that cannot be statted or listed, and
// entries that are neither regular files nor directories (fifos, sockets,
// devices), are counted in Skipped and contribute nothing, including
// everything below an unreadable directory. Nothing is ever written.
//
// root is expected to exist; if it disappears before the walk starts the
// result is {0, 1}.
//
// Symlinks are followed. There is no cycle detection: a symlink loop is only
// cut when the OS refuses to resolve the path, which shows up as a skip.
func (a *Accumulator) ComputeSize(root string) TraversalResult {
	var res TraversalResult

	// Prime the loop with the root; children are pushed as directories are listed
	stack := []string{root}
	for len(stack) > 0 {
		path := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		// Stat follows symlinks; a broken link or a vanished entry fails here
		info, err := a.fs.Stat(path)
		if err != nil {
			a.skip(&res, path, err)
			continue
		}

		// Only regular files carry bytes. Directories are sized by their contents.
		if info.Mode().IsRegular() {
			res.TotalBytes += info.Size()
			continue
		}
		if !info.IsDir() {
			a.skip(&res, path, fmt.Errorf("unsupported file type %s", info.Mode().Type()))
			continue
		}

		// An unlistable directory is one skip; nothing below it is visited
		children, err := a.listDir(path)
		if err != nil {
			a.skip(&res, path, err)
			continue
		}
		for _, child := range children {
			childPath := filepath.Join(path, child.Name())
			if a.filter.Excludes(childPath, child.IsDir()) {
				a.log.WithField("path", childPath).Debug("excluded")
				continue
			}
			stack = append(stack, childPath)
		}
	}

	return res
}

// listDir returns the direct children of dir. A non-nil error means the
// directory is unreadable; the returned slice is then meaningless.
func (a *Accumulator) listDir(dir string) ([]os.FileInfo, error) {
	f, err := a.fs.Open(dir)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return f.Readdir(-1)
}

// skip records path as unreadable.
func (a *Accumulator) skip(res *TraversalResult, path string, err error) {
	res.Skipped++
	a.log.WithError(err).WithField("path", path).Debug("skipping unreadable entry")
}
