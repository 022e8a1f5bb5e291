package controller

import (
	"bytes"
	"fmt"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	m "ctally/internal/model"
)

// TableUI renders the same totals as SimpleUI but as a summary table.
type TableUI struct {
	cmd *cobra.Command
}

// NewTableUI creates a new TableUI.
func NewTableUI(cmd *cobra.Command) *TableUI {
	return &TableUI{cmd: cmd}
}

// DisplayCounts renders directory subtotals down to depth levels as a
// table with a TOTAL footer. Labels use the full root-relative path since
// the table carries no indentation.
func (t *TableUI) DisplayCounts(root *m.DirCount, depth int) error {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Path", "Lines"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_RIGHT})

	root.Walk(func(node *m.DirCount, level int) {
		if level > depth {
			return
		}

		table.Append([]string{node.Rel + "/", fmt.Sprintf("%d", node.Lines)})
	})

	table.SetFooter([]string{"TOTAL", fmt.Sprintf("%d", root.Lines)})
	table.Render()

	_, err := fmt.Fprint(t.cmd.OutOrStdout(), tableBuffer.String())

	return err
}

// DisplaySkippedFile reports a skipped single-file scan on stderr.
func (t *TableUI) DisplaySkippedFile(path string, reason string) {
	_, _ = fmt.Fprintf(t.cmd.ErrOrStderr(), "skipping %s: %s\n", path, reason)
}

// DisplayUnreadableFile warns about an unreadable file on stderr.
func (t *TableUI) DisplayUnreadableFile(path string, err error) {
	_, _ = fmt.Fprintf(t.cmd.ErrOrStderr(), "warning: could not read %s: %v\n", path, err)
}
