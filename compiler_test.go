package tinylang

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Compile_declarationOnlyProgramRecordsExpectedDiagnostics(t *testing.T) {
	// Program only ever expands on "begin" (or synchronizes on end of file);
	// a bare declaration with no enclosing begin/end is illegal input at the
	// top level, drained token by token until end of file forces the
	// synchronization error.
	c := New(Options{OutputDir: t.TempDir()})

	result, err := c.Compile(strings.NewReader("dim x : integer\n"), "test.tl")
	require.NoError(t, err)

	assert.Empty(t, result.LexicalErrors)
	assert.NotEmpty(t, result.SyntaxErrors)
	assert.True(t, result.Failed())
}

func Test_Compile_simpleAssignmentProgramParsesCleanly(t *testing.T) {
	c := New(Options{OutputDir: t.TempDir()})

	result, err := c.Compile(strings.NewReader("begin dim x : integer; x as 2 plus 3 end"), "test.tl")
	require.NoError(t, err)

	assert.Empty(t, result.LexicalErrors)
	assert.Empty(t, result.SyntaxErrors)
	assert.Empty(t, result.SemanticErrors)
	assert.False(t, result.Failed())

	names := make([]string, 0, len(result.Symbols.Entries()))
	for _, e := range result.Symbols.Entries() {
		names = append(names, e.Lexeme)
	}
	assert.Contains(t, names, "output")
	assert.Contains(t, names, "x")
}

func Test_Compile_lexicalErrorIsRecordedAndDoesNotAbort(t *testing.T) {
	c := New(Options{OutputDir: t.TempDir()})

	result, err := c.Compile(strings.NewReader("x | y\n"), "test.tl")
	require.NoError(t, err)

	assert.NotEmpty(t, result.LexicalErrors)
}

func Test_Compiler_WriteReports(t *testing.T) {
	dir := t.TempDir()
	c := New(Options{OutputDir: dir})

	result, err := c.Compile(strings.NewReader("dim x : integer\n"), "test.tl")
	require.NoError(t, err)
	require.NoError(t, c.WriteReports(result))
}

func Test_Compile_illegalNumberIsRecordedAsLexicalError(t *testing.T) {
	// spec.md §8 scenario 3: "12abc" is a digit run immediately followed by
	// a letter, which the DFA traps as "illegal number" rather than ever
	// accepting "12" and re-lexing "abc" as a separate identifier.
	c := New(Options{OutputDir: t.TempDir()})

	result, err := c.Compile(strings.NewReader("begin dim x : integer; x as 12abc end"), "test.tl")
	require.NoError(t, err)

	require.Len(t, result.LexicalErrors, 1)
	assert.Equal(t, 1, result.LexicalErrors[0].Line)
	assert.Equal(t, "12abc", result.LexicalErrors[0].Lexeme)
	assert.Contains(t, result.LexicalErrors[0].Reason, "illegal number")
	assert.True(t, result.Failed())
}

func Test_Compile_useBeforeDeclareIsRecordedAsSemanticError(t *testing.T) {
	// spec.md §8 scenario 5.
	c := New(Options{OutputDir: t.TempDir()})

	result, err := c.Compile(strings.NewReader("begin y as 1 end"), "test.tl")
	require.NoError(t, err)

	assert.Empty(t, result.LexicalErrors)
	assert.Empty(t, result.SyntaxErrors)
	require.Len(t, result.SemanticErrors, 1)
	assert.Contains(t, result.SemanticErrors[0].Message, "used before declaration")
	assert.True(t, result.Failed())
}

func Test_Compile_assignmentTypeMismatchIsRecordedAsSemanticError(t *testing.T) {
	// spec.md §8 scenario 6.
	c := New(Options{OutputDir: t.TempDir()})

	result, err := c.Compile(strings.NewReader("begin dim b : boolean; b as 1 plus 2 end"), "test.tl")
	require.NoError(t, err)

	assert.Empty(t, result.LexicalErrors)
	assert.Empty(t, result.SyntaxErrors)
	require.Len(t, result.SemanticErrors, 1)
	assert.True(t, result.Failed())
}

func Test_Compile_commaSeparatedDeclarationAndIOListsParseAndTypeCheck(t *testing.T) {
	c := New(Options{OutputDir: t.TempDir(), Verbose: true})

	result, err := c.Compile(strings.NewReader(
		"begin dim a, b, c : integer; read(a, b, c); write(a, b, c) end"), "test.tl")
	require.NoError(t, err)

	assert.Empty(t, result.LexicalErrors)
	assert.Empty(t, result.SyntaxErrors)
	assert.Empty(t, result.SemanticErrors)
	assert.False(t, result.Failed())

	for _, name := range []string{"a", "b", "c"} {
		idx := result.Symbols.FindLatest(name)
		assert.GreaterOrEqual(t, idx, 0, "name %q should be installed", name)
	}
}

func Test_Banner(t *testing.T) {
	testCases := []struct {
		name    string
		result  CompileResult
		expects string
	}{
		{name: "success", result: CompileResult{}, expects: "Compilation successful"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := Banner(tc.result)
			assert.Contains(t, got, tc.expects)
		})
	}
}
