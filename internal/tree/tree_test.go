package tree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dekarrin/tinylang/internal/lang"
)

func Test_New_createsRootOnly(t *testing.T) {
	a := New("Program")

	assert.Equal(t, 0, a.Root())
	n := a.Node(a.Root())
	assert.Equal(t, "Program", n.Symbol)
	assert.Equal(t, -1, n.Parent)
	assert.Empty(t, n.Children)
}

func Test_Add_linksChildToParent(t *testing.T) {
	a := New("Program")
	child := a.Add(a.Root(), "Statement-list", false)

	assert.Equal(t, []int{child}, a.Node(a.Root()).Children)
	assert.Equal(t, a.Root(), a.Node(child).Parent)
}

func Test_SetToken_recordsRenderedAndStructuredForm(t *testing.T) {
	a := New("Program")
	leaf := a.Add(a.Root(), "ID", true)
	tok := lang.Token{Kind: lang.KindIdent, Lexeme: "x", Line: 3}

	a.SetToken(leaf, tok)

	n := a.Node(leaf)
	assert.True(t, n.HasToken)
	assert.Equal(t, tok, n.Tok)
	assert.Equal(t, tok.String(), n.Token)
}

func Test_Prune_removesNodeFromParentChildList(t *testing.T) {
	a := New("Program")
	keep := a.Add(a.Root(), "Description-list", false)
	drop := a.Add(a.Root(), "Statement-list", false)

	a.Prune(drop)

	assert.Equal(t, []int{keep}, a.Node(a.Root()).Children)
}

func Test_Prune_ofRootIsANoop(t *testing.T) {
	a := New("Program")
	a.Prune(a.Root())

	assert.Equal(t, "Program", a.Node(a.Root()).Symbol)
}

func Test_CleanUp_prunesDanglingUnmatchedLeaves(t *testing.T) {
	// A syntax-error recovery pass can leave a non-terminal expanded down to
	// an empty leaf that never got a Token (the input ran out mid-expansion)
	// and isn't the literal EPSILON placeholder either; CleanUp removes only
	// that kind of leaf.
	a := New("Program")
	stmt := a.Add(a.Root(), "AssignmentStatement", false)
	id := a.Add(stmt, "ID", true)
	a.SetToken(id, lang.Token{Kind: lang.KindIdent, Lexeme: "x", Line: 1})
	dangling := a.Add(stmt, "Expression", false)
	_ = dangling

	eps := a.Add(stmt, "EPSILON", true)

	a.CleanUp()

	children := a.Node(stmt).Children
	require.Len(t, children, 2)
	assert.Equal(t, id, children[0])
	assert.Equal(t, eps, children[1])
}

func Test_Render_preOrderIndented(t *testing.T) {
	a := New("Program")
	stmt := a.Add(a.Root(), "AssignmentStatement", false)
	id := a.Add(stmt, "ID", true)
	a.SetToken(id, lang.Token{Kind: lang.KindIdent, Lexeme: "x", Line: 1})

	got := a.Render()

	assert.Equal(t, "Program\n└── AssignmentStatement\n    └── "+a.Node(id).Token+"\n", got)
}

func Test_Copy_isIndependent(t *testing.T) {
	a := New("Program")
	a.Add(a.Root(), "Statement-list", false)

	cp := a.Copy()
	cp.Add(cp.Root(), "Description-list", false)

	assert.Len(t, a.Node(a.Root()).Children, 1)
	assert.Len(t, cp.Node(cp.Root()).Children, 2)
}
