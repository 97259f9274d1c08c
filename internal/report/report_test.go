package report

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dekarrin/tinylang/internal/lang"
	"github.com/dekarrin/tinylang/internal/lex"
	"github.com/dekarrin/tinylang/internal/symtab"
	"github.com/dekarrin/tinylang/internal/tree"
)

func readFile(t *testing.T, dir, rel string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, rel))
	require.NoError(t, err)
	return string(data)
}

func Test_New_createsOutputAndErrorsDirectories(t *testing.T) {
	dir := t.TempDir()
	_, err := New(dir)
	require.NoError(t, err)

	for _, sub := range []string{"output", "errors"} {
		info, err := os.Stat(filepath.Join(dir, sub))
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	}
}

func Test_WriteTokens(t *testing.T) {
	dir := t.TempDir()
	w, err := New(dir)
	require.NoError(t, err)

	tokens := map[int][]lang.Token{
		1: {{Kind: lang.KindKeyword, Lexeme: "dim"}, {Kind: lang.KindIdent, Lexeme: "x"}},
	}
	require.NoError(t, w.WriteTokens(tokens))

	got := readFile(t, dir, "output/tokens.txt")
	assert.Contains(t, got, "1.\t(KEYWORD, dim) (ID, x)")
}

func Test_WriteSymbolTable(t *testing.T) {
	dir := t.TempDir()
	w, err := New(dir)
	require.NoError(t, err)

	entries := []symtab.Entry{{Lexeme: "output"}, {Lexeme: "x"}}
	require.NoError(t, w.WriteSymbolTable(entries))

	got := readFile(t, dir, "output/symbol_table.txt")
	assert.Equal(t, "1.\toutput\n2.\tx\n", got)
}

func Test_WriteParseTree(t *testing.T) {
	dir := t.TempDir()
	w, err := New(dir)
	require.NoError(t, err)

	arena := tree.New("Program")
	require.NoError(t, w.WriteParseTree(arena))

	got := readFile(t, dir, "output/parse_tree.txt")
	assert.Equal(t, "Program\n", got)
}

func Test_WriteLexicalErrors_placeholderWhenEmpty(t *testing.T) {
	dir := t.TempDir()
	w, err := New(dir)
	require.NoError(t, err)

	require.NoError(t, w.WriteLexicalErrors(nil))
	assert.Equal(t, "There is no lexical errors.\n", readFile(t, dir, "errors/lexical_errors.txt"))
}

func Test_WriteLexicalErrors_listsEachError(t *testing.T) {
	dir := t.TempDir()
	w, err := New(dir)
	require.NoError(t, err)

	errs := []lex.LexError{{Line: 3, Lexeme: "@", Reason: "invalid input"}}
	require.NoError(t, w.WriteLexicalErrors(errs))

	got := readFile(t, dir, "errors/lexical_errors.txt")
	assert.Contains(t, got, "#3 : Lexical Error! '@' rejected, reason: invalid input.")
}

func Test_WriteSemanticErrors_placeholderWhenEmpty(t *testing.T) {
	dir := t.TempDir()
	w, err := New(dir)
	require.NoError(t, err)

	require.NoError(t, w.WriteSemanticErrors(nil))
	assert.Equal(t, "There is no semantic error.\n", readFile(t, dir, "errors/semantic_errors.txt"))
}

func Test_WriteSyntaxErrors_placeholderWhenEmpty(t *testing.T) {
	dir := t.TempDir()
	w, err := New(dir)
	require.NoError(t, err)

	require.NoError(t, w.WriteSyntaxErrors(nil))
	assert.Equal(t, "There is no syntax error.\n", readFile(t, dir, "errors/syntax_errors.txt"))
}

func Test_WriteSymbolTableSnapshot(t *testing.T) {
	dir := t.TempDir()
	w, err := New(dir)
	require.NoError(t, err)

	entries := []symtab.Entry{{Lexeme: "output", Role: symtab.RoleFunction, Type: symtab.TypeVoid}}
	require.NoError(t, w.WriteSymbolTableSnapshot(entries))

	info, err := os.Stat(filepath.Join(dir, "output/symbol_table.rezi"))
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}
