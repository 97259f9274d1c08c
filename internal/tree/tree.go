// Package tree implements an arena-backed parse tree. Spec calls for
// avoiding parent-pointer heap nodes (easy to leak into owning cycles and
// awkward to clean up piecewise during error recovery) in favor of a flat
// node array addressed by integer index, so tree cleanup after a
// syntax-error recovery pass is a single scan rather than pointer surgery.
package tree

import (
	"strings"

	"github.com/dekarrin/tinylang/internal/lang"
)

// Node is one parse-tree node living in an Arena. Children holds indices
// into the same Arena, never pointers.
type Node struct {
	Symbol   string // grammar symbol name; for leaves, the terminal's name ("ID", "NUM", "dim", ...)
	Terminal bool
	Token    string    // rendered "(KIND, lexeme)" text, set only on matched terminals
	Tok      lang.Token // the full matched token, set only on matched terminals
	HasToken bool
	Parent   int // index of the parent node, or -1 for the root
	Children []int
	pruned   bool
}

// Arena owns a set of Nodes for one parse. The zero value has no root node;
// create an Arena with New.
type Arena struct {
	nodes []Node
	root  int
}

// New creates an Arena with a single root node holding the given symbol.
func New(rootSymbol string) *Arena {
	a := &Arena{nodes: []Node{{Symbol: rootSymbol, Parent: -1}}, root: 0}
	return a
}

// Root returns the index of the root node.
func (a *Arena) Root() int {
	return a.root
}

// Add appends a new child of parent holding symbol, returning the new
// node's index.
func (a *Arena) Add(parent int, symbol string, terminal bool) int {
	idx := len(a.nodes)
	a.nodes = append(a.nodes, Node{Symbol: symbol, Terminal: terminal, Parent: parent})
	a.nodes[parent].Children = append(a.nodes[parent].Children, idx)
	return idx
}

// SetToken records the matched token on a terminal node, keeping both the
// rendered "(KIND, lexeme)" text for Render and the structured token for
// callers (the semantic analyser) that need its kind, lexeme, and symbol
// table reference.
func (a *Arena) SetToken(idx int, tok lang.Token) {
	a.nodes[idx].Token = tok.String()
	a.nodes[idx].Tok = tok
	a.nodes[idx].HasToken = true
}

// Node returns the node at idx.
func (a *Arena) Node(idx int) Node {
	return a.nodes[idx]
}

// Prune removes idx from its parent's child list. The node itself is left
// in the arena (indices must stay stable for anything still referencing
// them) but is no longer reachable from Root, so Render skips it.
func (a *Arena) Prune(idx int) {
	if idx == a.root {
		return
	}
	p := a.nodes[idx].Parent
	if p < 0 {
		return
	}
	children := a.nodes[p].Children
	for i, c := range children {
		if c == idx {
			a.nodes[p].Children = append(children[:i], children[i+1:]...)
			break
		}
	}
	a.nodes[idx].pruned = true
}

// CleanUp does the single pruning pass the parser needs after a syntax
// error: a leaf node that is neither a matched terminal (has Token set) nor
// the literal EPSILON placeholder is dangling input from an aborted
// expansion, and is removed from the render tree.
func (a *Arena) CleanUp() {
	var walk func(idx int)
	var toPrune []int
	walk = func(idx int) {
		n := a.nodes[idx]
		if len(n.Children) == 0 && n.Token == "" && n.Symbol != "EPSILON" {
			toPrune = append(toPrune, idx)
			return
		}
		for _, c := range n.Children {
			walk(c)
		}
	}
	walk(a.root)
	for _, idx := range toPrune {
		a.Prune(idx)
	}
}

const (
	prefixBranch   = "├── "
	prefixLast     = "└── "
	prefixContinue = "│   "
	prefixBlank    = "    "
)

// Render writes a pre-order indented rendering of the tree rooted at Root,
// one line per node, using the node's Token text if it has one and its
// Symbol otherwise.
func (a *Arena) Render() string {
	var sb strings.Builder
	a.render(&sb, a.root, "", true, true)
	return sb.String()
}

func (a *Arena) render(sb *strings.Builder, idx int, prefix string, isRoot, isLast bool) {
	n := a.nodes[idx]
	label := n.Symbol
	if n.Token != "" {
		label = n.Token
	}

	if isRoot {
		sb.WriteString(label)
		sb.WriteByte('\n')
	} else {
		marker := prefixBranch
		if isLast {
			marker = prefixLast
		}
		sb.WriteString(prefix)
		sb.WriteString(marker)
		sb.WriteString(label)
		sb.WriteByte('\n')
	}

	childPrefix := prefix
	if !isRoot {
		if isLast {
			childPrefix += prefixBlank
		} else {
			childPrefix += prefixContinue
		}
	}

	for i, c := range n.Children {
		a.render(sb, c, childPrefix, false, i == len(n.Children)-1)
	}
}

// Copy returns a deep copy of the arena.
func (a *Arena) Copy() *Arena {
	newA := &Arena{root: a.root, nodes: make([]Node, len(a.nodes))}
	for i, n := range a.nodes {
		cp := n
		cp.Children = append([]int(nil), n.Children...)
		newA.nodes[i] = cp
	}
	return newA
}
