package main

import (
	"testing"

	"gopkg.in/yaml.v3"
	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"
)

func text(t *testing.T, path string, res TraversalResult) string {
	t.Helper()
	out, err := renderReport(newReport(path, res), formatText)
	assert.NilError(t, err)
	return out
}

func TestRenderTextBelowKilobyte(t *testing.T) {
	out := text(t, "/d", TraversalResult{TotalBytes: 1023})
	assert.Check(t, is.Equal("Size of /d\n1,023 Bytes\n", out))
}

func TestRenderTextExactKilobyte(t *testing.T) {
	out := text(t, "/d", TraversalResult{TotalBytes: 1024})
	assert.Check(t, is.Equal("Size of /d\n1,024 Bytes\n1 KB\n", out))
}

func TestRenderTextSingleFile(t *testing.T) {
	out := text(t, "f", TraversalResult{TotalBytes: 2048})
	assert.Check(t, is.Equal("Size of f\n2,048 Bytes\n2 KB\n", out))
}

func TestRenderTextExactGigabyte(t *testing.T) {
	out := text(t, "/d", TraversalResult{TotalBytes: gibibyte})
	assert.Check(t, is.Equal("Size of /d\n1,073,741,824 Bytes\n1,048,576 KB\n1,024 MB\n1.00 GB\n", out))
}

func TestRenderTextLarge(t *testing.T) {
	out := text(t, "/big", TraversalResult{TotalBytes: 1536 * gibibyte})
	assert.Check(t, is.Contains(out, "1,649,267,441,664 Bytes\n"))
	assert.Check(t, is.Contains(out, "1,572,864 MB\n"))
	assert.Check(t, is.Contains(out, "1,536.00 GB\n"))
}

func TestRenderTextSkipped(t *testing.T) {
	out := text(t, "/d", TraversalResult{TotalBytes: 500, Skipped: 1})
	assert.Check(t, is.Equal("Size of /d\n\n1 Files or Folders were unreadable.\n500 Bytes\n", out))

	out = text(t, "/d", TraversalResult{Skipped: 1200})
	assert.Check(t, is.Contains(out, "\n\n1,200 Files or Folders were unreadable.\n"))
}

func TestRenderTextEmpty(t *testing.T) {
	out := text(t, "/d", TraversalResult{})
	assert.Check(t, is.Equal("Size of /d\n0 Bytes\n", out))
}

func TestRenderYAML(t *testing.T) {
	out, err := renderReport(newReport("/d", TraversalResult{TotalBytes: 3 * mebibyte, Skipped: 2}), "YAML")
	assert.NilError(t, err)

	var got map[string]any
	assert.NilError(t, yaml.Unmarshal([]byte(out), &got))
	assert.Check(t, is.Equal("/d", got["path"]))
	assert.Check(t, is.Equal(3*1024*1024, got["bytes"]))
	assert.Check(t, is.Equal(2, got["skipped"]))
	assert.Check(t, is.Equal(3*1024, got["kb"]))
	assert.Check(t, is.Equal(3, got["mb"]))
	_, hasGB := got["gb"]
	assert.Check(t, !hasGB)
}

func TestRenderUnsupportedFormat(t *testing.T) {
	_, err := renderReport(newReport("/d", TraversalResult{}), "pdf")
	assert.Check(t, is.ErrorContains(err, "unsupported format: pdf"))
}
