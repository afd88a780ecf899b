package main

// TraversalResult holds the outcome of sizing a tree.
// A non-zero Skipped means TotalBytes is a lower bound.
type TraversalResult struct {
	TotalBytes int64
	Skipped    int
}

// Report is the presentation view of a TraversalResult.
// Unit fields are nil when the total is below their threshold.
type Report struct {
	Path       string   `yaml:"path"`
	TotalBytes int64    `yaml:"bytes"`
	Skipped    int      `yaml:"skipped,omitempty"`
	KB         *int64   `yaml:"kb,omitempty"`
	MB         *int64   `yaml:"mb,omitempty"`
	GB         *float64 `yaml:"gb,omitempty"`
}
