// Package cmd provides the root command and CLI setup for ctally.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"ctally/internal/adapter"
	"ctally/internal/controller"
	"ctally/internal/domain"
	m "ctally/internal/model"
)

var fsAdapter adapter.SourceFS
var reportStore adapter.ReportStore

func init() {
	fsAdapter = adapter.NewLocalSourceFS()
	reportStore = adapter.NewLocalReportStore()
}

var excludeFlags []string
var extFlags []string
var depthFlag int
var parallelFlag int
var formatFlag string
var interactiveFlag bool
var reportFlag string

// rootCmd represents the base command when called without any subcommands.
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ctally <path>",
		Short: "Count C/C++ code lines",
		Long: `Ctally counts non-blank, non-comment lines in C/C++ sources (.c, .h,
.cpp). Given a directory it scans recursively; given a single file it
counts just that file. Use --depth to break the total down by directory.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if depthFlag < 0 {
				return fmt.Errorf("invalid --depth %d: must be >= 0", depthFlag)
			}

			ui, err := controller.NewUI(cmd, controller.UIOptions{
				Interactive: interactiveFlag,
				Format:      formatFlag,
			})
			if err != nil {
				return err
			}

			workflow := domain.NewTally(fsAdapter, ui)

			tree, err := workflow.Count(domain.CountArgs{
				Root:     m.Path(args[0]),
				Exts:     extFlags,
				Excludes: excludeFlags,
				Workers:  parallelFlag,
			})
			if err != nil {
				return err
			}

			if err := ui.DisplayCounts(tree, depthFlag); err != nil {
				return err
			}

			if reportFlag != "" {
				if err := reportStore.Save(m.Path(reportFlag), tree); err != nil {
					return err
				}
			}

			return nil
		},
	}

	cmd.Flags().StringArrayVarP(&excludeFlags, "exclude", "e", nil,
		"path component to skip entirely (can be repeated)")
	cmd.Flags().StringArrayVar(&extFlags, "ext", nil,
		"file extension to count: .c, .h or .cpp (default all; can be repeated)")
	cmd.Flags().IntVar(&depthFlag, "depth", 0,
		"show counts per subdirectory up to this depth (0 = total only)")
	cmd.Flags().IntVarP(&parallelFlag, "parallel", "p", 1,
		"number of files classified concurrently")
	cmd.Flags().StringVarP(&formatFlag, "format", "f", controller.FormatPlain,
		"output format: plain or table")
	cmd.Flags().BoolVarP(&interactiveFlag, "interactive", "i", false,
		"browse per-directory counts interactively")
	cmd.Flags().StringVarP(&reportFlag, "report", "r", "",
		"also write the scan result to this file as YAML")

	return cmd
}

// Execute runs the root command. This is called by main.main(). It only
// needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "ctally error: %v\n", err)
		os.Exit(1)
	}
}
