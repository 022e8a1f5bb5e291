// Package model defines the core data types shared by the ctally scanner,
// workflow and output layers.
package model

import "sort"

// Path represents a file system path.
type Path string

// FileCount is the classification result for a single source file.
type FileCount struct {
	Path  Path
	Lines int
}

// DirCount is a node in the per-directory totals tree. Lines accumulate
// into every ancestor, so a node's count always equals the sum of code
// lines in all files beneath it. Display depth never changes totals, it
// only limits how many levels of the tree are printed.
type DirCount struct {
	Name     string // trailing path component, empty for the scan root
	Rel      string // slash-separated path relative to the scan root
	Lines    int
	Children []*DirCount // sorted by Name
}

// NewDirCount returns an empty root node.
func NewDirCount() *DirCount {
	return &DirCount{}
}

// Add folds lines into this node and into the chain of descendants named
// by dirs, creating nodes as needed. Children stay sorted so traversal
// order is deterministic regardless of insertion order.
func (d *DirCount) Add(dirs []string, lines int) {
	d.Lines += lines

	node := d
	for _, name := range dirs {
		node = node.child(name)
		node.Lines += lines
	}
}

// Walk visits every node below d depth-first in sorted order, calling fn
// with the node and its depth (direct children are depth 1).
func (d *DirCount) Walk(fn func(node *DirCount, depth int)) {
	d.walk(fn, 1)
}

func (d *DirCount) walk(fn func(node *DirCount, depth int), depth int) {
	for _, child := range d.Children {
		fn(child, depth)
		child.walk(fn, depth+1)
	}
}

func (d *DirCount) child(name string) *DirCount {
	i := sort.Search(len(d.Children), func(i int) bool {
		return d.Children[i].Name >= name
	})
	if i < len(d.Children) && d.Children[i].Name == name {
		return d.Children[i]
	}

	rel := name
	if d.Rel != "" {
		rel = d.Rel + "/" + name
	}

	node := &DirCount{Name: name, Rel: rel}
	d.Children = append(d.Children, nil)
	copy(d.Children[i+1:], d.Children[i:])
	d.Children[i] = node

	return node
}
