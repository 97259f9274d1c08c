// Package symtab implements the scope-nested symbol table used by the
// scanner, parser, and semantic analyser. Unlike the Python source it is
// distilled from, the table is an explicit instance rather than class-static
// state, so a program can run more than one compilation concurrently.
package symtab

import "github.com/dekarrin/tinylang/internal/util"

// Role distinguishes what an Entry names.
type Role int

const (
	RoleVariable Role = iota
	RoleFunction
)

// Type is the closed set of dialect-level types.
type Type int

const (
	TypeUnresolved Type = iota
	TypeInt
	TypeReal
	TypeBool
	TypeVoid
)

func (t Type) String() string {
	switch t {
	case TypeInt:
		return "integer"
	case TypeReal:
		return "real"
	case TypeBool:
		return "boolean"
	case TypeVoid:
		return "void"
	default:
		return "unresolved"
	}
}

// Entry is one row of the symbol table. Entries are never deleted; ExitScope
// only moves the scope stack, so an index handed out while a scope was
// active stays valid (and stays associated with that scope) for the life of
// the table.
type Entry struct {
	Lexeme     string
	Scope      int
	Role       Role
	Type       Type
	Arity      int
	ParamTypes []Type
}

// builtinOutput seeds row 0 exactly as the original scanner's
// SymbolTableManager._global_funcs did: a single pre-declared output
// function living in the outermost scope.
var builtinOutput = Entry{
	Lexeme:     "output",
	Scope:      0,
	Role:       RoleFunction,
	Type:       TypeVoid,
	Arity:      1,
	ParamTypes: []Type{TypeInt},
}

// Table is a scope-stacked symbol table. The zero value is not usable; call
// New.
type Table struct {
	entries    []Entry
	scopeStack []int // index of the first entry belonging to each open scope
	declFlag   bool  // when true, Install always appends rather than reusing an existing row
	errorFlag  bool

	// scopeNames is a per-open-scope StringSet giving O(1) redeclaration
	// checks instead of the reverse linear scan the original manager did
	// for every lookup.
	scopeNames []util.StringSet
}

// New returns a freshly initialized Table seeded with the builtin output
// function at scope 0.
func New() *Table {
	t := &Table{
		entries:    []Entry{builtinOutput},
		scopeStack: []int{0},
		scopeNames: []util.StringSet{util.NewStringSet()},
	}
	t.scopeNames[0].Add(builtinOutput.Lexeme)
	return t
}

// Scope returns the current scope depth (0 is outermost).
func (t *Table) Scope() int {
	return len(t.scopeStack) - 1
}

// EnterScope pushes a new, empty scope.
func (t *Table) EnterScope() {
	t.scopeStack = append(t.scopeStack, len(t.entries))
	t.scopeNames = append(t.scopeNames, util.NewStringSet())
}

// ExitScope pops the innermost scope. Entries declared in it remain in the
// table and addressable by the indices already handed out; only the stack
// bookkeeping is popped.
func (t *Table) ExitScope() {
	if len(t.scopeStack) <= 1 {
		return
	}
	t.scopeStack = t.scopeStack[:len(t.scopeStack)-1]
	t.scopeNames = t.scopeNames[:len(t.scopeNames)-1]
}

// SetDeclaring toggles whether Install should treat the next identifier as a
// new declaration (true) or a use of an existing one (false). The semantic
// analyser flips this around each declaration it walks.
func (t *Table) SetDeclaring(declaring bool) {
	t.declFlag = declaring
}

// Declaring reports the current declaration-flag state.
func (t *Table) Declaring() bool {
	return t.declFlag
}

// SetError marks that at least one lexical, syntax, or semantic error has
// been recorded.
func (t *Table) SetError() {
	t.errorFlag = true
}

// HasError reports whether SetError has ever been called on this table.
func (t *Table) HasError() bool {
	return t.errorFlag
}

// IsDeclaredInScope reports whether lexeme already has an entry in the
// current (innermost) scope — the redeclaration check.
func (t *Table) IsDeclaredInScope(lexeme string) bool {
	return t.scopeNames[len(t.scopeNames)-1].Has(lexeme)
}

// FindLatest returns the index of the most recently added entry for lexeme
// (the highest index, so the latest declaration shadows earlier ones), or -1
// if there is none. Entries of scopes already exited are searched too.
func (t *Table) FindLatest(lexeme string) int {
	for i := len(t.entries) - 1; i >= 0; i-- {
		if t.entries[i].Lexeme == lexeme {
			return i
		}
	}
	return -1
}

// Install resolves lexeme to a symbol-table index. When the declaration flag
// is set, or no existing visible entry exists, it appends a fresh row in the
// current scope and returns its index; otherwise it returns the index of the
// most recent existing row for lexeme. This mirrors install_id /
// update_symbol_table from the original scanner, generalized to an instance
// method.
func (t *Table) Install(lexeme string) int {
	if !t.declFlag {
		if i := t.FindLatest(lexeme); i >= 0 {
			return i
		}
	}

	idx := len(t.entries)
	t.entries = append(t.entries, Entry{Lexeme: lexeme, Scope: t.Scope()})
	t.scopeNames[len(t.scopeNames)-1].Add(lexeme)
	return idx
}

// Get returns the entry at idx.
func (t *Table) Get(idx int) Entry {
	return t.entries[idx]
}

// Update replaces the entry at idx in place, used once a declaration's type
// is known.
func (t *Table) Update(idx int, e Entry) {
	t.entries[idx] = e
}

// Len returns the number of entries, including the seeded builtin.
func (t *Table) Len() int {
	return len(t.entries)
}

// Entries returns a defensive copy of all entries in insertion order, for
// reporting.
func (t *Table) Entries() []Entry {
	out := make([]Entry, len(t.entries))
	copy(out, t.entries)
	return out
}

// Copy returns a deep copy of the table, including scope-stack state.
func (t *Table) Copy() *Table {
	newT := &Table{
		entries:    append([]Entry(nil), t.entries...),
		scopeStack: append([]int(nil), t.scopeStack...),
		declFlag:   t.declFlag,
		errorFlag:  t.errorFlag,
	}
	for _, s := range t.scopeNames {
		newT.scopeNames = append(newT.scopeNames, s.Copy().(util.StringSet))
	}
	return newT
}

// Equal reports whether two tables hold the same entries in the same order.
func (t *Table) Equal(o *Table) bool {
	if o == nil || len(t.entries) != len(o.entries) {
		return false
	}
	for i := range t.entries {
		if t.entries[i] != o.entries[i] {
			// ParamTypes is a slice; compare it explicitly then zero it for
			// the rest of the struct comparison.
			a, b := t.entries[i], o.entries[i]
			if len(a.ParamTypes) != len(b.ParamTypes) {
				return false
			}
			for j := range a.ParamTypes {
				if a.ParamTypes[j] != b.ParamTypes[j] {
					return false
				}
			}
			a.ParamTypes, b.ParamTypes = nil, nil
			if a != b {
				return false
			}
		}
	}
	return true
}
