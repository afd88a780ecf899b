package main

import (
	"testing"

	"github.com/spf13/afero"
	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"
)

func TestNewFilterNothingToExclude(t *testing.T) {
	fsys := afero.NewMemMapFs()
	assert.NilError(t, fsys.MkdirAll("/d", 0o755))

	f, err := NewFilter(fsys, "/d", " , ", false)
	assert.NilError(t, err)
	assert.Check(t, f == nil)

	// no .gitignore present
	f, err = NewFilter(fsys, "/d", "", true)
	assert.NilError(t, err)
	assert.Check(t, f == nil)
	assert.Check(t, !f.Excludes("/d/anything", false))
}

func TestNewFilterInvalidPattern(t *testing.T) {
	_, err := NewFilter(afero.NewMemMapFs(), "/d", "ok,[bad", false)
	assert.Check(t, is.ErrorContains(err, "invalid exclude pattern '[bad'"))
}

func TestFilterPatterns(t *testing.T) {
	f, err := NewFilter(afero.NewMemMapFs(), "/d", "*.log, vendor", false)
	assert.NilError(t, err)

	assert.Check(t, f.Excludes("/d/app.log", false))
	assert.Check(t, f.Excludes("/d/deep/er/app.log", false))
	assert.Check(t, f.Excludes("/d/vendor", true))
	assert.Check(t, !f.Excludes("/d/app.txt", false))
	assert.Check(t, !f.Excludes("/d", true))
}

func TestFilterGitignore(t *testing.T) {
	const ignore = "*.tmp\nbuild/\n!keep.tmp\n"

	fsys := afero.NewMemMapFs()
	assert.NilError(t, afero.WriteFile(fsys, "/d/.gitignore", []byte(ignore), 0o644))
	writeFile(t, fsys, "/d/a.txt", 10)
	writeFile(t, fsys, "/d/x.tmp", 20)
	writeFile(t, fsys, "/d/keep.tmp", 30)
	writeFile(t, fsys, "/d/build/out.bin", 40)
	writeFile(t, fsys, "/d/src/build", 50)
	writeFile(t, fsys, "/d/src/y.tmp", 60)

	f, err := NewFilter(fsys, "/d", "", true)
	assert.NilError(t, err)
	assert.Check(t, f.Excludes("/d/x.tmp", false))
	assert.Check(t, f.Excludes("/d/build", true))
	assert.Check(t, !f.Excludes("/d/keep.tmp", false))
	assert.Check(t, !f.Excludes("/d/src/build", false))

	res := NewAccumulator(fsys, f, nil).ComputeSize("/d")
	want := int64(len(ignore) + 10 + 30 + 50)
	assert.Check(t, is.DeepEqual(TraversalResult{TotalBytes: want}, res))
}

func TestParsePatterns(t *testing.T) {
	assert.Check(t, is.Len(parsePatterns(""), 0))
	assert.Check(t, is.DeepEqual([]string{"*.go", "vendor"}, parsePatterns("*.go, vendor,")))
}
