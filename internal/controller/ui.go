// Package controller provides output layers for displaying line-count
// results.
package controller

import (
	m "ctally/internal/model"
)

// Output formats accepted by the --format flag.
const (
	FormatPlain = "plain"
	FormatTable = "table"
)

// UIOptions selects how results are displayed.
type UIOptions struct {
	// Interactive opens the Bubble Tea browser instead of printing.
	Interactive bool
	// Format is FormatPlain or FormatTable; empty means FormatPlain.
	Format string
}

// UI defines the interface for displaying count results. Implementations
// can use different output methods (plain text, table, TUI).
type UI interface {
	// DisplayCounts renders the totals tree down to depth directory levels.
	DisplayCounts(root *m.DirCount, depth int) error
	// DisplaySkippedFile reports a single-file scan whose extension was
	// filtered out. Not an error: the run still exits zero.
	DisplaySkippedFile(path string, reason string)
	// DisplayUnreadableFile warns about a file that could not be read
	// mid-scan. The file contributes zero lines and the scan continues.
	DisplayUnreadableFile(path string, err error)
}
