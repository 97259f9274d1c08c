package symtab

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_New_seedsBuiltinOutput(t *testing.T) {
	tab := New()

	assert.Equal(t, 1, tab.Len())
	entry := tab.Get(0)
	assert.Equal(t, "output", entry.Lexeme)
	assert.Equal(t, RoleFunction, entry.Role)
}

func Test_Install_declarationInsertsNewRow(t *testing.T) {
	tab := New()
	tab.SetDeclaring(true)

	idx := tab.Install("x")

	assert.Equal(t, 1, idx)
	assert.Equal(t, "x", tab.Get(idx).Lexeme)
}

func Test_Install_useReturnsExistingRow(t *testing.T) {
	tab := New()
	tab.SetDeclaring(true)
	declIdx := tab.Install("x")
	tab.SetDeclaring(false)

	useIdx := tab.Install("x")

	assert.Equal(t, declIdx, useIdx)
}

func Test_Install_useOfUnknownInstallsAnyway(t *testing.T) {
	tab := New()
	tab.SetDeclaring(false)

	idx := tab.Install("never_declared")

	assert.Equal(t, "never_declared", tab.Get(idx).Lexeme)
}

func Test_IsDeclaredInScope(t *testing.T) {
	testCases := []struct {
		name     string
		lexeme   string
		expect   bool
	}{
		{name: "present", lexeme: "x", expect: true},
		{name: "absent", lexeme: "y", expect: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			tab := New()
			tab.SetDeclaring(true)
			tab.Install("x")

			assert.Equal(t, tc.expect, tab.IsDeclaredInScope(tc.lexeme))
		})
	}
}

func Test_EnterExitScope_redeclarationAllowedInNestedScope(t *testing.T) {
	tab := New()
	tab.SetDeclaring(true)
	tab.Install("x")

	tab.EnterScope()
	assert.False(t, tab.IsDeclaredInScope("x"), "a fresh scope starts with no local names")
	tab.Install("x")
	assert.True(t, tab.IsDeclaredInScope("x"))
	tab.ExitScope()

	assert.True(t, tab.IsDeclaredInScope("x"), "popping a scope restores the outer scope's view")
}

func Test_FindLatest_prefersInnermostScope(t *testing.T) {
	tab := New()
	tab.SetDeclaring(true)
	outer := tab.Install("x")

	tab.EnterScope()
	inner := tab.Install("x")
	tab.ExitScope()

	assert.NotEqual(t, outer, inner)
	assert.Equal(t, inner, tab.FindLatest("x"), "the latest entry wins, even after its scope has been exited")
}

func Test_FindLatest_missingReturnsNegativeOne(t *testing.T) {
	tab := New()

	assert.Equal(t, -1, tab.FindLatest("nope"))
}

func Test_Update_replacesEntryInPlace(t *testing.T) {
	tab := New()
	tab.SetDeclaring(true)
	idx := tab.Install("x")

	e := tab.Get(idx)
	e.Type = TypeInt
	e.Role = RoleVariable
	tab.Update(idx, e)

	assert.Equal(t, TypeInt, tab.Get(idx).Type)
}

func Test_Equal(t *testing.T) {
	a := New()
	b := New()
	assert.True(t, a.Equal(b))

	a.SetDeclaring(true)
	a.Install("x")
	assert.False(t, a.Equal(b))
}

func Test_SetError_HasError(t *testing.T) {
	tab := New()
	assert.False(t, tab.HasError())
	tab.SetError()
	assert.True(t, tab.HasError())
}

func Test_Copy_isIndependent(t *testing.T) {
	tab := New()
	tab.SetDeclaring(true)
	tab.Install("x")

	cp := tab.Copy()
	cp.Install("y")

	assert.Equal(t, 2, tab.Len())
	assert.Equal(t, 3, cp.Len())
}
