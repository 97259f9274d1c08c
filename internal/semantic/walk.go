package semantic

import (
	"strings"

	"github.com/dekarrin/tinylang/internal/lang"
	"github.com/dekarrin/tinylang/internal/symtab"
	"github.com/dekarrin/tinylang/internal/tree"
)

// Walk drives a finished parse tree through a's Dispatch calls, one semantic
// action per node. This is a deliberate, disclosed departure from spec.md's
// interleaved-action-symbol architecture, not a reinterpretation of it; see
// DESIGN.md's Open Questions entry "Semantic-action placement: post-parse
// walk vs. interleaved stack actions" for the reasoning and the concrete
// tradeoff accepted. The per-node-kind shape itself is grounded on
// original_source/grammer.py's SemanticAnalyzer, whose visit_<nodename>
// dispatch this package reimplements as the exhaustive ActionKind switch in
// semantic.go.
func Walk(a *Analyser, t *tree.Arena) {
	walkNode(a, t, t.Root())
}

func walkNode(a *Analyser, t *tree.Arena, idx int) symtab.Type {
	n := t.Node(idx)

	switch n.Symbol {
	case "Description":
		return walkDescription(a, t, idx)
	case "Statement-list", "Description-list":
		for _, c := range n.Children {
			walkNode(a, t, c)
		}
		return symtab.TypeVoid
	case "CompoundStatement":
		a.syms.EnterScope()
		for _, c := range n.Children {
			walkNode(a, t, c)
		}
		a.syms.ExitScope()
		return symtab.TypeVoid
	case "AssignmentStatement":
		return walkAssignment(a, t, idx)
	case "ConditionalStatement", "FixedLoopStatement", "ConditionalLoopStatement":
		for _, c := range n.Children {
			walkNode(a, t, c)
		}
		return symtab.TypeVoid
	case "InputStatement":
		for _, c := range n.Children {
			cn := t.Node(c)
			switch {
			case cn.Terminal && cn.HasToken && cn.Tok.Kind == lang.KindIdent:
				a.Dispatch(ActionUseIdent, cn.Tok.Line, cn.Tok.Lexeme)
			case cn.Symbol == "IdentList":
				dispatchIdentListUses(a, t, c)
			}
		}
		return symtab.TypeVoid
	case "OutputStatement":
		for _, c := range n.Children {
			walkNode(a, t, c)
		}
		return symtab.TypeVoid
	case "Expression":
		return walkBinary(a, t, idx, "RelationalOperation")
	case "Operand":
		return walkBinary(a, t, idx, "AdditiveOperation")
	case "Term":
		return walkBinary(a, t, idx, "MultiplicativeOperation")
	case "Factor":
		return walkFactor(a, t, idx)
	case "Identifier":
		return walkIdentifier(a, t, idx)
	case "Number":
		line := firstLine(t, idx)
		a.Dispatch(ActionPushTypeNum, line)
		// a literal with "." or an exponent is real; a trailing H suffix
		// marks a hex integer whose digits may include E.
		for _, c := range n.Children {
			lexeme := t.Node(c).Tok.Lexeme
			if strings.ContainsAny(lexeme, ".Ee") && !strings.ContainsAny(lexeme[len(lexeme)-1:], "Hh") {
				return symtab.TypeReal
			}
		}
		return symtab.TypeInt
	case "LogicalConstant":
		line := firstLine(t, idx)
		a.Dispatch(ActionPushTypeBool, line)
		return symtab.TypeBool
	case "Type":
		return typeFromNode(t, idx)
	default:
		var last symtab.Type = symtab.TypeVoid
		for _, c := range n.Children {
			last = walkNode(a, t, c)
		}
		return last
	}
}

// walkDescription handles production 4, "dim ID IdentList : Type": install
// every name in the comma-separated list (the first ID plus however many
// IdentList contributes), then resolve and record their shared type from the
// Type subtree.
func walkDescription(a *Analyser, t *tree.Arena, idx int) symtab.Type {
	n := t.Node(idx)
	a.Dispatch(ActionBeginDeclaration, firstLine(t, idx))

	var typ symtab.Type
	for _, c := range n.Children {
		cn := t.Node(c)
		switch {
		case cn.Terminal && cn.HasToken && cn.Tok.Kind == lang.KindIdent:
			a.Dispatch(ActionUseIdent, cn.Tok.Line, cn.Tok.Lexeme)
		case cn.Symbol == "IdentList":
			dispatchIdentListUses(a, t, c)
		case cn.Symbol == "Type":
			typ = typeFromNode(t, c)
		}
	}

	a.Dispatch(ActionEndDeclaration, firstLine(t, idx))
	a.Dispatch(ActionDeclareType, firstLine(t, idx), typ)
	return symtab.TypeVoid
}

// dispatchIdentListUses walks an IdentList subtree (production 57/58: EPSILON
// or ", ID IdentList") and dispatches ActionUseIdent for every ID it holds, in
// left-to-right order. Called from both a declaration context (Declaring() is
// true, so each use installs a new entry) and a read-statement context
// (Declaring() is false, so each use is a lookup) — ActionUseIdent itself
// branches on that state, so this helper need not know which context it is
// in.
func dispatchIdentListUses(a *Analyser, t *tree.Arena, idx int) {
	n := t.Node(idx)
	for _, c := range n.Children {
		cn := t.Node(c)
		switch {
		case cn.Terminal && cn.HasToken && cn.Tok.Kind == lang.KindIdent:
			a.Dispatch(ActionUseIdent, cn.Tok.Line, cn.Tok.Lexeme)
		case cn.Symbol == "IdentList":
			dispatchIdentListUses(a, t, c)
		}
	}
}

// walkAssignment handles production 15, "ID as Expression": the left side is
// a use (not a declaration) that must already be visible, checked against
// the right side's resolved type.
func walkAssignment(a *Analyser, t *tree.Arena, idx int) symtab.Type {
	n := t.Node(idx)
	var lhsIdx int = -1
	var line int
	var rhsType symtab.Type

	for _, c := range n.Children {
		cn := t.Node(c)
		if cn.Terminal && cn.HasToken && cn.Tok.Kind == lang.KindIdent {
			line = cn.Tok.Line
			if a.syms.Declaring() {
				a.syms.SetDeclaring(false)
			}
			if i := a.syms.FindLatest(cn.Tok.Lexeme); i >= 0 && a.syms.Get(i).Type != symtab.TypeUnresolved {
				lhsIdx = i
			} else {
				a.report(line, "identifier %q used before declaration", cn.Tok.Lexeme)
			}
		} else if cn.Symbol == "Expression" {
			rhsType = walkNode(a, t, c)
		}
	}

	if lhsIdx >= 0 {
		a.Dispatch(ActionCheckAssign, line, lhsIdx, rhsType)
	}
	return symtab.TypeVoid
}

// walkBinary resolves Expression/Operand/Term's left-factored shape:
// production 21/24/27 always has exactly two children, the operand itself
// and its Tail (ExpressionTail/OperandTail/TermTail). The Tail either
// resolved to EPSILON (pass the operand's type through unchanged) or to
// "op Operand" (production 22/25/28), resolved against the
// no-implicit-conversion lattice. This two-level shape is why Tail nodes
// are inspected directly here instead of through walkNode's switch, which
// has no case for them: they are never visited on their own, only as the
// second child of the operand node that owns them.
func walkBinary(a *Analyser, t *tree.Arena, idx int, opSymbol string) symtab.Type {
	n := t.Node(idx)
	left := walkNode(a, t, n.Children[0])
	line := firstLine(t, n.Children[0])

	tail := t.Node(n.Children[1])
	if len(tail.Children) == 1 && t.Node(tail.Children[0]).Symbol == "EPSILON" {
		return left
	}

	var opName string
	var right symtab.Type
	for _, c := range tail.Children {
		cn := t.Node(c)
		if cn.Symbol == opSymbol {
			opName = operatorName(t, c)
		} else {
			right = walkNode(a, t, c)
		}
	}

	result, err := BinOpType(opName, left, right)
	if err != nil {
		a.report(line, "%s", err.Error())
		return symtab.TypeUnresolved
	}
	if opName == "div" {
		result = DivisionType(left, right)
	}
	a.Dispatch(ActionBinOp, line, opName, left, right)
	return result
}

// walkFactor resolves Factor's alternatives (productions 30-34): a bare
// Identifier/Number/LogicalConstant/parenthesized-Expression leaf, or a
// UnaryOperation applied to one (production 33).
func walkFactor(a *Analyser, t *tree.Arena, idx int) symtab.Type {
	n := t.Node(idx)
	if len(n.Children) == 2 && t.Node(n.Children[0]).Symbol == "UnaryOperation" {
		line := firstLine(t, idx)
		typ := walkNode(a, t, n.Children[1])
		a.Dispatch(ActionUnOp, line, typ)
		if typ != symtab.TypeBool && typ != symtab.TypeUnresolved {
			a.report(line, "unary %q applied to %s", operatorName(t, n.Children[0]), typ)
		}
		return typ
	}
	var last symtab.Type
	for _, c := range n.Children {
		last = walkNode(a, t, c)
	}
	return last
}

// walkIdentifier resolves production 35, a bare "ID" leaf used as a value:
// looked up, never installed.
func walkIdentifier(a *Analyser, t *tree.Arena, idx int) symtab.Type {
	n := t.Node(idx)
	for _, c := range n.Children {
		cn := t.Node(c)
		if cn.Terminal && cn.HasToken {
			a.Dispatch(ActionUseIdent, cn.Tok.Line, cn.Tok.Lexeme)
			a.Dispatch(ActionPushTypeIdent, cn.Tok.Line)
			if i := a.syms.FindLatest(cn.Tok.Lexeme); i >= 0 {
				return a.syms.Get(i).Type
			}
		}
	}
	return symtab.TypeUnresolved
}

// typeFromNode resolves a Type subtree (production 39/40/41) to its
// symtab.Type.
func typeFromNode(t *tree.Arena, idx int) symtab.Type {
	n := t.Node(idx)
	for _, c := range n.Children {
		cn := t.Node(c)
		if !cn.Terminal {
			continue
		}
		switch cn.Symbol {
		case "integer":
			return symtab.TypeInt
		case "real":
			return symtab.TypeReal
		case "boolean":
			return symtab.TypeBool
		}
	}
	return symtab.TypeUnresolved
}

// operatorName returns the literal spelling of a resolved RelationalOperation
// /AdditiveOperation/MultiplicativeOperation/UnaryOperation node's single
// terminal child.
func operatorName(t *tree.Arena, idx int) string {
	n := t.Node(idx)
	for _, c := range n.Children {
		cn := t.Node(c)
		if cn.Terminal {
			return cn.Symbol
		}
	}
	return ""
}

// firstLine returns the source line of the first matched terminal in idx's
// subtree, or 0 if it holds none (an EPSILON leaf or an empty list).
func firstLine(t *tree.Arena, idx int) int {
	n := t.Node(idx)
	if n.Terminal && n.HasToken {
		return n.Tok.Line
	}
	for _, c := range n.Children {
		if l := firstLine(t, c); l != 0 {
			return l
		}
	}
	return 0
}
