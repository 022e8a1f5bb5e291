package adapter

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	m "ctally/internal/model"
)

// ReportStore persists scan results for later inspection.
type ReportStore interface {
	// Save writes the totals tree rooted at root to path as YAML.
	Save(path m.Path, root *m.DirCount) error
}

// LocalReportStore writes reports to the local filesystem.
type LocalReportStore struct{}

// NewLocalReportStore constructs a ReportStore implementation.
func NewLocalReportStore() *LocalReportStore {
	return &LocalReportStore{}
}

type yamlReport struct {
	Total       int             `yaml:"total"`
	Directories []yamlDirReport `yaml:"directories,omitempty"`
}

type yamlDirReport struct {
	Path  string `yaml:"path"`
	Lines int    `yaml:"lines"`
}

// Save serializes the full totals tree (all depths) in traversal order.
func (rs *LocalReportStore) Save(path m.Path, root *m.DirCount) error {
	report := yamlReport{Total: root.Lines}

	root.Walk(func(node *m.DirCount, _ int) {
		report.Directories = append(report.Directories, yamlDirReport{
			Path:  node.Rel + "/",
			Lines: node.Lines,
		})
	})

	out, err := yaml.Marshal(report)
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}

	if err := os.WriteFile(string(path), out, 0o600); err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	return nil
}
