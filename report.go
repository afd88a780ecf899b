package main

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"gopkg.in/yaml.v3"
)

// Binary unit thresholds used by the report.
const (
	kibibyte int64 = 1024
	mebibyte int64 = 1024 * kibibyte
	gibibyte int64 = 1024 * mebibyte
)

const (
	formatText = "text"
	formatYAML = "yaml"
)

// newReport derives the unit breakdown of res for display.
func newReport(path string, res TraversalResult) Report {
	r := Report{Path: path, TotalBytes: res.TotalBytes, Skipped: res.Skipped}
	if res.TotalBytes >= kibibyte {
		kb := res.TotalBytes / kibibyte
		r.KB = &kb
	}
	if res.TotalBytes >= mebibyte {
		mb := res.TotalBytes / mebibyte
		r.MB = &mb
	}
	if res.TotalBytes >= gibibyte {
		gb := float64(res.TotalBytes) / float64(gibibyte)
		r.GB = &gb
	}
	return r
}

// renderReport formats r in the requested output format.
func renderReport(r Report, format string) (string, error) {
	switch strings.ToLower(format) {
	case "", formatText:
		return renderText(r), nil
	case formatYAML:
		out, err := yaml.Marshal(r)
		if err != nil {
			return "", fmt.Errorf("error encoding report: %w", err)
		}
		return string(out), nil
	default:
		return "", fmt.Errorf("unsupported format: %s. Use '%s' or '%s'", format, formatText, formatYAML)
	}
}

func renderText(r Report) string {
	var builder strings.Builder
	builder.WriteString(fmt.Sprintf("Size of %s\n", r.Path))
	// Blank line sets the warning apart from the header
	if r.Skipped > 0 {
		builder.WriteString(fmt.Sprintf("\n%s Files or Folders were unreadable.\n", humanize.Comma(int64(r.Skipped))))
	}
	// Bytes are always shown; larger units only once the total reaches them
	builder.WriteString(fmt.Sprintf("%s Bytes\n", humanize.Comma(r.TotalBytes)))
	if r.KB != nil {
		builder.WriteString(fmt.Sprintf("%s KB\n", humanize.Comma(*r.KB)))
	}
	if r.MB != nil {
		builder.WriteString(fmt.Sprintf("%s MB\n", humanize.Comma(*r.MB)))
	}
	if r.GB != nil {
		builder.WriteString(fmt.Sprintf("%s GB\n", humanize.FormatFloat("#,###.##", *r.GB)))
	}
	return builder.String()
}
