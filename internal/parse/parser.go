// Package parse implements the LL(1) predictive parser: an explicit symbol
// stack driven against internal/grammar's static table, with a parallel
// arena-backed parse tree (internal/tree) built alongside it. Error recovery
// (SYNCH/EMPTY table entries, missing-construct reporting, dangling-node
// cleanup) follows original_source/parser.py's behavior exactly.
package parse

import (
	"fmt"

	"github.com/dekarrin/tinylang/internal/grammar"
	"github.com/dekarrin/tinylang/internal/lang"
	"github.com/dekarrin/tinylang/internal/symtab"
	"github.com/dekarrin/tinylang/internal/tree"
)

// SyntaxError is one recorded diagnostic, matching the
// (lineno, "Missing ..."/"Illegal ..."/"Unexpected EndOfFile") tuples the
// original parser accumulates.
type SyntaxError struct {
	Line    int
	Message string
}

func (e SyntaxError) String() string {
	return fmt.Sprintf("#%d : Syntax Error! %s", e.Line, e.Message)
}

// stackEntry pairs a grammar symbol with the arena node it will populate
// once matched or expanded.
type stackEntry struct {
	symbol string
	node   int
}

// Parser drives the LL(1) table against a token stream, producing an arena
// parse tree and a list of syntax errors. It never aborts on error: recovery
// always leaves the parser able to continue, per the "no error aborts the
// run" policy.
type Parser struct {
	stream lang.TokenStream
	syms   *symtab.Table
	arena  *tree.Arena
	errors []SyntaxError
	stack  []stackEntry
}

// New creates a Parser over stream, using table for any identifier
// resolution the scanner did not already perform.
func New(stream lang.TokenStream, table *symtab.Table) *Parser {
	a := tree.New("Program")
	p := &Parser{
		stream: stream,
		syms:   table,
		arena:  a,
		stack:  []stackEntry{{symbol: "$", node: -1}, {symbol: "Program", node: a.Root()}},
	}
	return p
}

// Errors returns every recorded syntax diagnostic so far.
func (p *Parser) Errors() []SyntaxError {
	return append([]SyntaxError(nil), p.errors...)
}

// Tree returns the arena built during Parse.
func (p *Parser) Tree() *tree.Arena {
	return p.arena
}

func (p *Parser) push(msg SyntaxError) {
	p.syms.SetError()
	p.errors = append(p.errors, msg)
}

// lookaheadColumn reports the table column for the current token, treating
// identifiers and numbers by kind (the grammar cannot predict on their
// literal lexeme) and everything else by its literal spelling.
func lookaheadColumn(tok lang.Token) (int, bool) {
	switch tok.Kind {
	case lang.KindIdent:
		return grammar.TID, true
	case lang.KindNumber:
		return grammar.TNUM, true
	case lang.KindEOF:
		return grammar.Teof, true
	default:
		return grammar.TerminalIndex(tok.Lexeme)
	}
}

// next pulls the next token from the stream, silently skipping over `;`:
// spec.md's grammar treats the statement/declaration separator as optional
// punctuation rather than a grammar symbol (no production ever names it),
// so it is discarded at the fetch layer the same way whitespace is
// discarded inside the scanner, rather than threaded through the table as
// a list-separator non-terminal.
func (p *Parser) next() (lang.Token, error) {
	for {
		tok, err := p.stream.Next()
		if err != nil {
			return tok, err
		}
		if tok.Kind == lang.KindPunct && tok.Lexeme == ";" {
			continue
		}
		return tok, nil
	}
}

// Parse runs the driving loop to completion: every token is consumed (or
// skipped under EMPTY recovery) until the stack empties against the `$`
// sentinel or end of input is reached.
func (p *Parser) Parse() error {
	needsCleanup := false

	tok, err := p.next()
	if err != nil {
		return err
	}

	for {
		top := p.stack[len(p.stack)-1]
		X := top.symbol

		col, known := lookaheadColumn(tok)
		if !known {
			// an unrecognized terminal spelling cannot drive the table;
			// treat it as an EMPTY-class illegal token and discard it.
			p.push(SyntaxError{Line: tok.Line, Message: fmt.Sprintf("Illegal %q", tok.Lexeme)})
			tok, err = p.next()
			if err != nil {
				return err
			}
			continue
		}

		if isTerminalSymbol(X) {
			if X == grammar.TerminalName(col) {
				if X == "$" {
					break
				}
				p.arena.SetToken(top.node, tok)
				p.stack = p.stack[:len(p.stack)-1]
				tok, err = p.next()
				if err != nil {
					return err
				}
			} else {
				p.push(SyntaxError{Line: tok.Line, Message: fmt.Sprintf("Missing %q", X)})
				if X == "$" {
					break
				}
				p.arena.Prune(top.node)
				p.stack = p.stack[:len(p.stack)-1]
				needsCleanup = true
			}
			continue
		}

		// X is a non-terminal: consult the parsing table.
		row, _ := grammar.NonTerminalIndex(X)
		entry := grammar.Get(row, col)

		switch entry.Kind {
		case grammar.EntrySynch:
			if tok.Kind == lang.KindEOF {
				p.push(SyntaxError{Line: tok.Line, Message: "Unexpected EndOfFile"})
				needsCleanup = true
				goto done
			}
			missing := grammar.MissingConstruct[X]
			p.push(SyntaxError{Line: tok.Line, Message: fmt.Sprintf("Missing %q", missing)})
			p.arena.Prune(top.node)
			p.stack = p.stack[:len(p.stack)-1]
		case grammar.EntryEmpty:
			p.push(SyntaxError{Line: tok.Line, Message: fmt.Sprintf("Illegal %q", tok.Lexeme)})
			tok, err = p.next()
			if err != nil {
				return err
			}
		default:
			rhs := grammar.Productions[entry.Prod]
			p.stack = p.stack[:len(p.stack)-1]

			if len(rhs) == 1 && rhs[0] == "EPSILON" {
				p.arena.Add(top.node, "EPSILON", false)
				continue
			}

			children := make([]stackEntry, 0, len(rhs))
			for _, sym := range rhs {
				terminal := isTerminalSymbol(sym)
				idx := p.arena.Add(top.node, sym, terminal)
				children = append(children, stackEntry{symbol: sym, node: idx})
			}
			for i := len(children) - 1; i >= 0; i-- {
				p.stack = append(p.stack, children[i])
			}
		}
	}

done:
	if needsCleanup {
		p.arena.CleanUp()
	}
	return nil
}

func isTerminalSymbol(sym string) bool {
	_, ok := grammar.TerminalIndex(sym)
	return ok
}

