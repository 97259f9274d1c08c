// Package tinylang is a front end for a small imperative teaching language:
// a table-driven scanner, an LL(1) predictive parser, and a scope-aware
// semantic analyser, wired together by the Compiler orchestrator below.
package tinylang

import (
	"fmt"
	"io"
	"log"

	"github.com/dekarrin/rosed"
	"github.com/google/uuid"

	"github.com/dekarrin/tinylang/internal/compileerr"
	"github.com/dekarrin/tinylang/internal/dialect"
	"github.com/dekarrin/tinylang/internal/lang"
	"github.com/dekarrin/tinylang/internal/lex"
	"github.com/dekarrin/tinylang/internal/parse"
	"github.com/dekarrin/tinylang/internal/report"
	"github.com/dekarrin/tinylang/internal/semantic"
	"github.com/dekarrin/tinylang/internal/symtab"
	"github.com/dekarrin/tinylang/internal/tree"
)

const bannerWidth = 80

// Options configures one compilation run.
type Options struct {
	// OutputDir is where report artifacts are written; "." if empty.
	OutputDir string
	// Dialect selects scanner feature flags; the zero value uses
	// dialect.Default().
	Dialect dialect.Config
	// WriteBinarySnapshot additionally writes output/symbol_table.rezi.
	WriteBinarySnapshot bool
	// Verbose logs one line per subsystem error (and per multi-name
	// declaration) once Compile has run all three stages, in addition to the
	// final banner.
	Verbose bool
}

// CompileResult aggregates everything one compilation run produced: the
// final symbol table, retained tokens, parse tree, and the three error
// lists, ready for report writing and for the orchestrator's exit-code
// decision.
type CompileResult struct {
	RunID          uuid.UUID
	Symbols        *symtab.Table
	Tokens         map[int][]lang.Token // line -> tokens lexed from it
	Tree           *tree.Arena
	LexicalErrors  []lex.LexError
	SyntaxErrors   []parse.SyntaxError
	SemanticErrors []semantic.SemanticError
}

// Failed reports whether any diagnostic was recorded during the run.
func (r CompileResult) Failed() bool {
	return len(r.LexicalErrors) > 0 || len(r.SyntaxErrors) > 0 || len(r.SemanticErrors) > 0
}

// Compiler wires the scanner, parser, and semantic analyser together and
// owns report writing. Each Compiler is independent, explicit-state
// instance; running many concurrently is safe since nothing is
// package-level.
type Compiler struct {
	opts Options
}

// New creates a Compiler with the given options, filling in defaults for
// anything left zero.
func New(opts Options) *Compiler {
	if opts.OutputDir == "" {
		opts.OutputDir = "."
	}
	if opts.Dialect.CommentStyle == "" {
		opts.Dialect = dialect.Default()
	}
	return &Compiler{opts: opts}
}

// Compile runs one compilation of src (named name, for log lines) to
// completion: scanning, parsing, and semantic analysis all run regardless
// of errors any of them record, per the "no error aborts the run" policy.
// The returned error is non-nil only for I/O failures opening src or
// writing reports; the three collected diagnostic lists are always data,
// never a returned error.
func (c *Compiler) Compile(src io.Reader, name string) (CompileResult, error) {
	runID := uuid.New()

	syms := symtab.New()
	lexCfg := lex.Config{
		BaseSuffixedIntegers: derefBool(c.opts.Dialect.BaseSuffixedIntegers, true),
		CommentStyle:         c.opts.Dialect.CommentStyle,
		MaxRetainedLines:     c.opts.Dialect.MaxRetainedLines,
	}

	scanner := lex.New(src, syms, lexCfg)
	p := parse.New(scanner, syms)
	if err := p.Parse(); err != nil {
		return CompileResult{}, compileerr.Wrapf(err, "scan/parse %s", name)
	}

	analyser := semantic.New(syms, p.Tree())
	semantic.Walk(analyser, p.Tree())
	analyser.Dispatch(semantic.ActionEOFCheck, currentLine(scanner))

	result := CompileResult{
		RunID:          runID,
		Symbols:        syms,
		Tokens:         scanner.Tokens(),
		Tree:           p.Tree(),
		LexicalErrors:  scanner.LexicalErrors(),
		SyntaxErrors:   p.Errors(),
		SemanticErrors: analyser.Errors(),
	}

	if c.opts.Verbose {
		for _, names := range analyser.DeclarationSummaries() {
			log.Printf("declared: %s", names)
		}
		for _, e := range result.LexicalErrors {
			log.Printf("ERROR: %s", e.String())
		}
		for _, e := range result.SyntaxErrors {
			log.Printf("ERROR: %s", e.String())
		}
		for _, e := range result.SemanticErrors {
			log.Printf("ERROR: %s", e.String())
		}
	}

	return result, nil
}

// WriteReports writes every report artifact for result under the
// Compiler's configured output directory.
func (c *Compiler) WriteReports(result CompileResult) error {
	w, err := report.New(c.opts.OutputDir)
	if err != nil {
		return err
	}
	if err := w.WriteTokens(result.Tokens); err != nil {
		return err
	}
	if err := w.WriteSymbolTable(result.Symbols.Entries()); err != nil {
		return err
	}
	if err := w.WriteParseTree(result.Tree); err != nil {
		return err
	}
	if err := w.WriteLexicalErrors(result.LexicalErrors); err != nil {
		return err
	}
	if err := w.WriteSyntaxErrors(result.SyntaxErrors); err != nil {
		return err
	}
	if err := w.WriteSemanticErrors(result.SemanticErrors); err != nil {
		return err
	}
	if c.opts.WriteBinarySnapshot {
		if err := w.WriteSymbolTableSnapshot(result.Symbols.Entries()); err != nil {
			return err
		}
	}
	return nil
}

// Banner renders the final "Compilation successful"/"Compilation failed..."
// summary, word-wrapped for a terminal.
func Banner(result CompileResult) string {
	var msg string
	if !result.Failed() {
		msg = fmt.Sprintf("Compilation successful! (run %s)", result.RunID)
	} else {
		msg = "Compilation failed due to the following errors:\n"
		for _, e := range result.LexicalErrors {
			msg += e.String() + "\n"
		}
		for _, e := range result.SyntaxErrors {
			msg += e.String() + "\n"
		}
		for _, e := range result.SemanticErrors {
			msg += e.String() + "\n"
		}
	}
	return rosed.Edit(msg).Wrap(bannerWidth).String()
}

func derefBool(b *bool, fallback bool) bool {
	if b == nil {
		return fallback
	}
	return *b
}

func currentLine(s *lex.Scanner) int {
	toks := s.Tokens()
	max := 1
	for line := range toks {
		if line > max {
			max = line
		}
	}
	return max
}
