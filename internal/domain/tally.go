package domain

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"ctally/internal/adapter"
	"ctally/internal/controller"
	m "ctally/internal/model"
)

// CountArgs holds the inputs for one counting run.
type CountArgs struct {
	Root     m.Path
	Exts     []string
	Excludes []string
	Workers  int
}

// Workflow defines the counting operations exposed to the command layer.
type Workflow interface {
	// Count scans a file or directory tree and returns the totals tree.
	// The root path must exist; everything below it is best-effort:
	// unreadable files warn and contribute zero.
	Count(args CountArgs) (*m.DirCount, error)
}

type tally struct {
	fs adapter.SourceFS
	ui controller.UI
}

// NewTally creates a Workflow backed by the given filesystem adapter,
// reporting warnings through ui.
func NewTally(fs adapter.SourceFS, ui controller.UI) Workflow {
	return &tally{fs: fs, ui: ui}
}

// fileJob is one eligible source file queued for classification. dirs
// holds the root-relative directory components above the file.
type fileJob struct {
	path m.Path
	dirs []string
}

func (t *tally) Count(args CountArgs) (*m.DirCount, error) {
	filter, err := NewFilter(args.Exts, args.Excludes)
	if err != nil {
		return nil, err
	}

	info, err := t.fs.FileInfo(args.Root)
	if err != nil {
		return nil, fmt.Errorf("root path error: %w", err)
	}

	if !info.IsDir() {
		return t.countSingleFile(args.Root, filter)
	}

	jobs, err := t.collectJobs(args.Root, filter)
	if err != nil {
		return nil, err
	}

	counts := t.countFiles(jobs, args.Workers)

	tree := m.NewDirCount()
	for i, job := range jobs {
		tree.Add(job.dirs, counts[i])
	}

	return tree, nil
}

// countSingleFile handles a root that is a file rather than a directory.
// An extension or exclusion mismatch is a skip, not an error.
func (t *tally) countSingleFile(root m.Path, filter Filter) (*m.DirCount, error) {
	tree := m.NewDirCount()

	if !filter.MatchExt(string(root)) {
		t.ui.DisplaySkippedFile(string(root),
			fmt.Sprintf("extension %q not selected", filepath.Ext(string(root))))

		return tree, nil
	}

	if filter.ExcludedName(filepath.Base(string(root))) {
		t.ui.DisplaySkippedFile(string(root), "path component excluded")

		return tree, nil
	}

	content, err := t.fs.ReadFile(root)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", root, err)
	}

	tree.Add(nil, CountBytes(content))

	return tree, nil
}

// collectJobs walks the tree, pruning excluded directories and gathering
// the files that pass the filter. Entries that error mid-walk are warned
// about and skipped; they never abort the scan.
func (t *tally) collectJobs(root m.Path, filter Filter) ([]fileJob, error) {
	var jobs []fileJob

	err := t.fs.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			t.ui.DisplayUnreadableFile(path, err)

			return nil
		}

		if info.IsDir() {
			if path != string(root) && filter.ExcludedName(info.Name()) {
				return filepath.SkipDir
			}

			return nil
		}

		if !filter.MatchExt(path) || filter.ExcludedName(info.Name()) {
			return nil
		}

		rel, relErr := t.fs.RelPath(root, m.Path(path))
		if relErr != nil {
			return relErr
		}

		parts := strings.Split(filepath.ToSlash(string(rel)), "/")
		jobs = append(jobs, fileJob{path: m.Path(path), dirs: parts[:len(parts)-1]})

		return nil
	})
	if err != nil {
		return nil, err
	}

	return jobs, nil
}

// countFiles classifies the queued files with at most workers running
// concurrently. The per-file sums are independent and merged by addition,
// so sharding never changes the result.
func (t *tally) countFiles(jobs []fileJob, workers int) []int {
	if workers < 1 {
		workers = 1
	}

	counts := make([]int, len(jobs))

	var g errgroup.Group

	g.SetLimit(workers)

	for i, job := range jobs {
		i, job := i, job

		g.Go(func() error {
			content, err := t.fs.ReadFile(job.path)
			if err != nil {
				t.ui.DisplayUnreadableFile(string(job.path), err)

				return nil
			}

			counts[i] = CountBytes(content)

			return nil
		})
	}

	// Workers absorb read errors above, so Wait never returns one.
	_ = g.Wait()

	return counts
}
