package domain

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"ctally/internal/adapter"
	m "ctally/internal/model"
)

// recordingUI captures warnings so tests can assert on them.
type recordingUI struct {
	skipped    []string
	unreadable []string
}

func (r *recordingUI) DisplayCounts(_ *m.DirCount, _ int) error { return nil }

func (r *recordingUI) DisplaySkippedFile(path string, _ string) {
	r.skipped = append(r.skipped, path)
}

func (r *recordingUI) DisplayUnreadableFile(path string, _ error) {
	r.unreadable = append(r.unreadable, path)
}

// failingFS wraps the local adapter and fails reads for one path.
type failingFS struct {
	*adapter.LocalSourceFS
	failPath string
}

func (f *failingFS) ReadFile(path m.Path) ([]byte, error) {
	if string(path) == f.failPath {
		return nil, errors.New("permission denied")
	}

	return f.LocalSourceFS.ReadFile(path)
}

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()

	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
			t.Fatalf("mkdir: %v", err)
		}

		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
}

func TestTally_Count_DirectoryTree(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"a/foo.c":   "int a;\nint b;\nint c;\n",
		"a/b/bar.h": "int d;\nint e;\n",
	})

	w := NewTally(adapter.NewLocalSourceFS(), &recordingUI{})

	tree, err := w.Count(CountArgs{Root: m.Path(dir)})
	if err != nil {
		t.Fatalf("Count error: %v", err)
	}

	if tree.Lines != 5 {
		t.Fatalf("total = %d, want 5", tree.Lines)
	}

	if len(tree.Children) != 1 || tree.Children[0].Rel != "a" || tree.Children[0].Lines != 5 {
		t.Fatalf("unexpected level-1 nodes: %+v", tree.Children)
	}

	a := tree.Children[0]
	if len(a.Children) != 1 || a.Children[0].Rel != "a/b" || a.Children[0].Lines != 2 {
		t.Fatalf("unexpected level-2 nodes: %+v", a.Children)
	}
}

func TestTally_Count_ExclusionPrunesSubtree(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"a/foo.c":   "int a;\nint b;\nint c;\n",
		"a/b/bar.h": "int d;\nint e;\n",
	})

	w := NewTally(adapter.NewLocalSourceFS(), &recordingUI{})

	tree, err := w.Count(CountArgs{Root: m.Path(dir), Excludes: []string{"b"}})
	if err != nil {
		t.Fatalf("Count error: %v", err)
	}

	if tree.Lines != 3 {
		t.Fatalf("total = %d, want 3", tree.Lines)
	}

	a := tree.Children[0]
	if len(a.Children) != 0 {
		t.Fatalf("excluded directory should not appear: %+v", a.Children)
	}
}

func TestTally_Count_ExcludedFileName(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"a/keep.c": "int a;\n",
		"a/drop.c": "int b;\nint c;\n",
	})

	w := NewTally(adapter.NewLocalSourceFS(), &recordingUI{})

	tree, err := w.Count(CountArgs{Root: m.Path(dir), Excludes: []string{"drop.c"}})
	if err != nil {
		t.Fatalf("Count error: %v", err)
	}

	if tree.Lines != 1 {
		t.Fatalf("total = %d, want 1", tree.Lines)
	}
}

func TestTally_Count_ExtensionFilter(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"x.c":   "int a;\n",
		"x.h":   "int b;\nint c;\n",
		"x.cpp": "int d;\n",
		"x.go":  "package x\n",
	})

	w := NewTally(adapter.NewLocalSourceFS(), &recordingUI{})

	tree, err := w.Count(CountArgs{Root: m.Path(dir), Exts: []string{".c"}})
	if err != nil {
		t.Fatalf("Count error: %v", err)
	}

	if tree.Lines != 1 {
		t.Fatalf("total = %d, want 1 (.c only)", tree.Lines)
	}
}

func TestTally_Count_SingleFile(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"util.c": "int a;\n// comment\nint b;\n",
	})

	w := NewTally(adapter.NewLocalSourceFS(), &recordingUI{})

	tree, err := w.Count(CountArgs{Root: m.Path(filepath.Join(dir, "util.c"))})
	if err != nil {
		t.Fatalf("Count error: %v", err)
	}

	if tree.Lines != 2 {
		t.Fatalf("total = %d, want 2", tree.Lines)
	}

	if len(tree.Children) != 0 {
		t.Fatalf("single file scan should produce no directory nodes")
	}
}

func TestTally_Count_SingleFileExtensionMismatchSkips(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"utils.h": "int a;\n",
	})

	ui := &recordingUI{}
	w := NewTally(adapter.NewLocalSourceFS(), ui)

	tree, err := w.Count(CountArgs{
		Root: m.Path(filepath.Join(dir, "utils.h")),
		Exts: []string{".c"},
	})
	if err != nil {
		t.Fatalf("skip must not be an error, got %v", err)
	}

	if tree.Lines != 0 {
		t.Fatalf("total = %d, want 0", tree.Lines)
	}

	if len(ui.skipped) != 1 {
		t.Fatalf("expected one skip notice, got %v", ui.skipped)
	}
}

func TestTally_Count_NonexistentRoot(t *testing.T) {
	w := NewTally(adapter.NewLocalSourceFS(), &recordingUI{})

	if _, err := w.Count(CountArgs{Root: m.Path(filepath.Join(t.TempDir(), "missing"))}); err == nil {
		t.Fatalf("expected error for nonexistent root")
	}
}

func TestTally_Count_InvalidExtension(t *testing.T) {
	w := NewTally(adapter.NewLocalSourceFS(), &recordingUI{})

	if _, err := w.Count(CountArgs{Root: m.Path(t.TempDir()), Exts: []string{".py"}}); err == nil {
		t.Fatalf("expected error for unsupported extension")
	}
}

func TestTally_Count_UnreadableFileAbsorbed(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"good.c": "int a;\nint b;\n",
		"bad.c":  "int c;\n",
	})

	ui := &recordingUI{}
	fs := &failingFS{
		LocalSourceFS: adapter.NewLocalSourceFS(),
		failPath:      filepath.Join(dir, "bad.c"),
	}

	tree, err := NewTally(fs, ui).Count(CountArgs{Root: m.Path(dir)})
	if err != nil {
		t.Fatalf("unreadable file must not abort the scan: %v", err)
	}

	if tree.Lines != 2 {
		t.Fatalf("total = %d, want 2 (bad.c contributes zero)", tree.Lines)
	}

	if len(ui.unreadable) != 1 {
		t.Fatalf("expected one unreadable warning, got %v", ui.unreadable)
	}
}

func TestTally_Count_Idempotent(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"a/one.c":     "int a;\n/* comment */\nint b;\n",
		"a/b/two.h":   "#pragma once\n",
		"c/three.cpp": "int c;\nint d;\nint e;\n",
	})

	w := NewTally(adapter.NewLocalSourceFS(), &recordingUI{})
	args := CountArgs{Root: m.Path(dir)}

	first, err := w.Count(args)
	if err != nil {
		t.Fatalf("Count error: %v", err)
	}

	second, err := w.Count(args)
	if err != nil {
		t.Fatalf("Count error: %v", err)
	}

	assertSameTree(t, first, second)
}

func TestTally_Count_ParallelMatchesSequential(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"a/one.c":    "int a;\nint b;\n",
		"a/two.c":    "int c;\n",
		"b/three.h":  "int d;\nint e;\nint f;\n",
		"b/four.h":   "int g;\n",
		"c/five.cpp": "int h;\nint i;\n",
	})

	w := NewTally(adapter.NewLocalSourceFS(), &recordingUI{})

	sequential, err := w.Count(CountArgs{Root: m.Path(dir), Workers: 1})
	if err != nil {
		t.Fatalf("Count error: %v", err)
	}

	parallel, err := w.Count(CountArgs{Root: m.Path(dir), Workers: 4})
	if err != nil {
		t.Fatalf("Count error: %v", err)
	}

	assertSameTree(t, sequential, parallel)
}

func assertSameTree(t *testing.T, a, b *m.DirCount) {
	t.Helper()

	if a.Rel != b.Rel || a.Lines != b.Lines || len(a.Children) != len(b.Children) {
		t.Fatalf("trees differ at %q: %d/%d lines, %d/%d children",
			a.Rel, a.Lines, b.Lines, len(a.Children), len(b.Children))
	}

	for i := range a.Children {
		assertSameTree(t, a.Children[i], b.Children[i])
	}
}
