package tui

import (
	"fmt"
	"io"
	"path/filepath"
	"slices"
	"strings"

	"github.com/aretw0/kopye/pkg/domain"
	"github.com/muesli/termenv"
)

type treeNode struct {
	name     string
	isFile   bool
	children []*treeNode
	index    map[string]*treeNode
}

func newTreeNode(name string, isFile bool) *treeNode {
	return &treeNode{name: name, isFile: isFile, index: make(map[string]*treeNode)}
}

func (n *treeNode) child(name string, isFile bool) *treeNode {
	if c, ok := n.index[name]; ok {
		if isFile {
			c.isFile = true
		}
		return c
	}
	c := newTreeNode(name, isFile)
	n.index[name] = c
	n.children = append(n.children, c)
	return c
}

// buildTree hangs every live entry under a root named after destination. Missing
// intermediate directories are added so nested files are never dropped.
func buildTree(vfs *domain.VirtualFS, destination string) *treeNode {
	rootName := filepath.Base(destination)
	if rootName == "." || rootName == string(filepath.Separator) {
		rootName = destination
	}
	root := newTreeNode(rootName, false)

	for _, e := range vfs.Entries {
		if e.Dead() {
			continue
		}
		parts := strings.Split(filepath.ToSlash(e.Destination), "/")
		node := root
		for i, part := range parts {
			node = node.child(part, e.IsFile && i == len(parts)-1)
		}
	}
	sortTree(root)
	return root
}

// sortTree lists directories before files, each alphabetically.
func sortTree(n *treeNode) {
	slices.SortFunc(n.children, func(a, b *treeNode) int {
		if a.isFile != b.isFile {
			if a.isFile {
				return 1
			}
			return -1
		}
		return strings.Compare(a.name, b.name)
	})
	for _, c := range n.children {
		sortTree(c)
	}
}

// Previewer prints the staged tree before confirmation.
type Previewer struct {
	w   io.Writer
	out *termenv.Output
}

// NewPreviewer writes to w; plain disables colors.
func NewPreviewer(w io.Writer, plain bool) *Previewer {
	var opts []termenv.OutputOption
	if plain {
		opts = append(opts, termenv.WithProfile(termenv.Ascii))
	}
	return &Previewer{w: w, out: termenv.NewOutput(w, opts...)}
}

func (p *Previewer) dirStyle(s string) termenv.Style {
	return p.out.String(s).Foreground(p.out.Color("4"))
}

func (p *Previewer) fileStyle(s string) termenv.Style {
	return p.out.String(s).Foreground(p.out.Color("2"))
}

func (p *Previewer) lineStyle(s string) termenv.Style {
	return p.out.String(s).Foreground(p.out.Color("3"))
}

// Preview prints the legend and the tree rooted at destination.
func (p *Previewer) Preview(vfs *domain.VirtualFS, destination string) {
	fmt.Fprintf(p.w, "Legend: %s = (directory), %s = (file)\n\n", p.dirStyle("blue"), p.fileStyle("green"))
	fmt.Fprintf(p.w, "%s\n\n", p.out.String("┌─ Preview").Bold().Foreground(p.out.Color("12")))
	p.printNode(buildTree(vfs, destination), "", true)
	fmt.Fprintln(p.w)
}

func (p *Previewer) printNode(n *treeNode, prefix string, last bool) {
	connector := "├── "
	if last {
		connector = "└── "
	}
	name := p.dirStyle(n.name)
	if n.isFile {
		name = p.fileStyle(n.name)
	}
	fmt.Fprintf(p.w, "%s%s%s\n", p.lineStyle(prefix), p.lineStyle(connector), name)

	childPrefix := prefix + "│   "
	if last {
		childPrefix = prefix + "    "
	}
	for i, c := range n.children {
		p.printNode(c, childPrefix, i == len(n.children)-1)
	}
}

// Notice prints a "create <path>" line, used as the apply notifier.
func (p *Previewer) Notice(path string, isFile bool) {
	name := p.dirStyle(path)
	if isFile {
		name = p.fileStyle(path)
	}
	fmt.Fprintf(p.w, "%s %s\n", p.out.String("create").Bold().Foreground(p.out.Color("2")), name)
}
