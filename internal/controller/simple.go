package controller

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	m "ctally/internal/model"
)

// SimpleUI prints counts in the plain report format using the cobra
// command's writers.
type SimpleUI struct {
	cmd *cobra.Command
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

// DisplayCounts renders per-directory subtotals down to depth levels
// followed by the grand total. Depth 0 prints the total only.
func (s *SimpleUI) DisplayCounts(root *m.DirCount, depth int) error {
	var b strings.Builder

	renderPlain(&b, root, depth)

	_, err := fmt.Fprint(s.cmd.OutOrStdout(), b.String())

	return err
}

// DisplaySkippedFile reports a skipped single-file scan on stderr.
func (s *SimpleUI) DisplaySkippedFile(path string, reason string) {
	_, _ = fmt.Fprintf(s.cmd.ErrOrStderr(), "skipping %s: %s\n", path, reason)
}

// DisplayUnreadableFile warns about an unreadable file on stderr.
func (s *SimpleUI) DisplayUnreadableFile(path string, err error) {
	_, _ = fmt.Fprintf(s.cmd.ErrOrStderr(), "warning: could not read %s: %v\n", path, err)
}

// renderPlain writes the canonical report: one line per directory with a
// count beneath it, indented two spaces per extra level, then the total.
// Directories without counted files never appear in the tree, so omission
// of empty directories falls out of the data model.
func renderPlain(b *strings.Builder, root *m.DirCount, depth int) {
	root.Walk(func(node *m.DirCount, level int) {
		if level > depth {
			return
		}

		fmt.Fprintf(b, "%s%s/: %d\n", strings.Repeat("  ", level-1), node.Name, node.Lines)
	})

	fmt.Fprintf(b, "TOTAL: %d\n", root.Lines)
}
