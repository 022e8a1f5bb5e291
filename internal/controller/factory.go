package controller

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

// NewUI creates a UI from the command's writers and the display options.
// Interactive mode wins over --format; otherwise the format string picks
// the renderer.
func NewUI(cmd *cobra.Command, opts UIOptions) (UI, error) {
	if opts.Interactive {
		return NewTUI(cmd.OutOrStdout(), cmd.ErrOrStderr()), nil
	}

	switch opts.Format {
	case "", FormatPlain:
		return NewSimpleUI(cmd), nil
	case FormatTable:
		return NewTableUI(cmd), nil
	default:
		return nil, fmt.Errorf("unknown format %q (supported: %s, %s)",
			opts.Format, FormatPlain, FormatTable)
	}
}

// IsTTY checks if the given writer is a terminal (TTY).
// Returns false if the output is redirected to a file or pipe.
func IsTTY(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}

	fileInfo, err := file.Stat()
	if err != nil {
		return false
	}

	return (fileInfo.Mode() & os.ModeCharDevice) != 0
}
