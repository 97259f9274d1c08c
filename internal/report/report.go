// Package report writes the compiler's output artifacts: the six text
// reports in the exact formats original_source/scanner.py and parser.py
// produce, plus an optional binary symbol-table snapshot. Grounded on
// internal/tqw/marshaling.go's buffered-writer-plus-wrapped-error file
// convention.
package report

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/dekarrin/rezi"
	"github.com/dekarrin/tinylang/internal/compileerr"
	"github.com/dekarrin/tinylang/internal/lang"
	"github.com/dekarrin/tinylang/internal/lex"
	"github.com/dekarrin/tinylang/internal/parse"
	"github.com/dekarrin/tinylang/internal/semantic"
	"github.com/dekarrin/tinylang/internal/symtab"
	"github.com/dekarrin/tinylang/internal/tree"
)

// Writer writes report artifacts under a fixed directory layout:
// <dir>/output/{tokens,symbol_table,parse_tree}.txt and
// <dir>/errors/{lexical,syntax,semantic}_errors.txt.
type Writer struct {
	dir string
}

// New creates a Writer rooted at dir, creating its output/ and errors/
// subdirectories.
func New(dir string) (*Writer, error) {
	for _, sub := range []string{"output", "errors"} {
		if err := os.MkdirAll(filepath.Join(dir, sub), 0o755); err != nil {
			return nil, compileerr.Wrapf(err, "create %s directory", sub)
		}
	}
	return &Writer{dir: dir}, nil
}

func (w *Writer) writeFile(rel string, write func(*bufio.Writer) error) error {
	path := filepath.Join(w.dir, rel)
	f, err := os.Create(path)
	if err != nil {
		return compileerr.Wrapf(err, "open %s for writing", rel)
	}
	defer f.Close()

	bw := bufio.NewWriter(f)
	if err := write(bw); err != nil {
		return compileerr.Wrapf(err, "write %s", rel)
	}
	if err := bw.Flush(); err != nil {
		return compileerr.Wrapf(err, "flush %s", rel)
	}
	return nil
}

// WriteTokens writes output/tokens.txt, one line per source line holding
// every token lexed from it, matching save_tokens's
// "{lineno}.\t(kind, lexeme) (kind, lexeme) ...\n" format.
func (w *Writer) WriteTokens(tokens map[int][]lang.Token) error {
	return w.writeFile("output/tokens.txt", func(bw *bufio.Writer) error {
		lines := make([]int, 0, len(tokens))
		for line := range tokens {
			lines = append(lines, line)
		}
		sort.Ints(lines)

		for _, line := range lines {
			toks := tokens[line]
			if len(toks) == 0 {
				continue
			}
			if _, err := fmt.Fprintf(bw, "%d.\t", line); err != nil {
				return err
			}
			for i, t := range toks {
				if i > 0 {
					if _, err := bw.WriteString(" "); err != nil {
						return err
					}
				}
				if _, err := bw.WriteString(t.String()); err != nil {
					return err
				}
			}
			if _, err := bw.WriteString("\n"); err != nil {
				return err
			}
		}
		return nil
	})
}

// WriteSymbolTable writes output/symbol_table.txt, one line per entry,
// matching save_symbol_table's "{i+1}.\t{symbol}\n" format.
func (w *Writer) WriteSymbolTable(entries []symtab.Entry) error {
	return w.writeFile("output/symbol_table.txt", func(bw *bufio.Writer) error {
		for i, e := range entries {
			if _, err := fmt.Fprintf(bw, "%d.\t%s\n", i+1, e.Lexeme); err != nil {
				return err
			}
		}
		return nil
	})
}

// WriteSymbolTableSnapshot writes output/symbol_table.rezi, a binary
// encoding of the final symbol table's entries for tooling that wants to
// reload a prior compilation's symbol table without re-parsing text.
func (w *Writer) WriteSymbolTableSnapshot(entries []symtab.Entry) error {
	return w.writeFile("output/symbol_table.rezi", func(bw *bufio.Writer) error {
		data := rezi.EncBinary(entries)
		_, err := bw.Write(data)
		return err
	})
}

// WriteParseTree writes output/parse_tree.txt as a pre-order indented
// rendering, matching save_parse_tree's RenderTree output shape.
func (w *Writer) WriteParseTree(t *tree.Arena) error {
	return w.writeFile("output/parse_tree.txt", func(bw *bufio.Writer) error {
		_, err := bw.WriteString(t.Render())
		return err
	})
}

// WriteLexicalErrors writes errors/lexical_errors.txt, matching
// lexical_errors's "#{lineno} : Lexical Error! ..." format, or the
// "There is no lexical errors." placeholder when none were recorded.
func (w *Writer) WriteLexicalErrors(errs []lex.LexError) error {
	return w.writeFile("errors/lexical_errors.txt", func(bw *bufio.Writer) error {
		if len(errs) == 0 {
			_, err := bw.WriteString("There is no lexical errors.\n")
			return err
		}
		for _, e := range errs {
			if _, err := fmt.Fprintf(bw, "%s\n", e.String()); err != nil {
				return err
			}
		}
		return nil
	})
}

// WriteSyntaxErrors writes errors/syntax_errors.txt, matching
// syntax_errors's format and "There is no syntax error." placeholder.
func (w *Writer) WriteSyntaxErrors(errs []parse.SyntaxError) error {
	return w.writeFile("errors/syntax_errors.txt", func(bw *bufio.Writer) error {
		if len(errs) == 0 {
			_, err := bw.WriteString("There is no syntax error.\n")
			return err
		}
		for _, e := range errs {
			if _, err := fmt.Fprintf(bw, "%s\n", e.String()); err != nil {
				return err
			}
		}
		return nil
	})
}

// WriteSemanticErrors writes errors/semantic_errors.txt, matching the same
// "There is no ... errors." placeholder convention.
func (w *Writer) WriteSemanticErrors(errs []semantic.SemanticError) error {
	return w.writeFile("errors/semantic_errors.txt", func(bw *bufio.Writer) error {
		if len(errs) == 0 {
			_, err := bw.WriteString("There is no semantic error.\n")
			return err
		}
		for _, e := range errs {
			if _, err := fmt.Fprintf(bw, "%s\n", e.String()); err != nil {
				return err
			}
		}
		return nil
	})
}
