// Package grammar holds the static LL(1) parsing table for the canonical
// dialect: the production list, the terminal/non-terminal index maps, and
// the parsing table itself. Program/Description-list/Description's rows are
// literal data transcribed from original_source/parser.py's parsing_table;
// every row past that is instead reconstructed from spec.md's own grammar
// via a FIRST/FOLLOW derivation (see rawTable below), since the retrieved
// table fragment never resolves them to anything but EMPTY. Nothing here is
// derived at runtime from item sets the way an SLR/LALR table would be.
package grammar

import "fmt"

// EntryKind closes the union of what one parsing-table cell can mean.
type EntryKind int

const (
	// EntryProduce means "expand the non-terminal using production Prod".
	EntryProduce EntryKind = iota
	// EntrySynch means "an error: pop the non-terminal without consuming input
	// and report its missing construct", matching a SYNCH column in the
	// original source's parsing_table.
	EntrySynch
	// EntryEmpty means "an error: the current lookahead is illegal here;
	// discard it and retry", matching an EMPTY column.
	EntryEmpty
)

// Entry is one resolved parsing-table cell.
type Entry struct {
	Kind EntryKind
	Prod int // valid only when Kind == EntryProduce; index into Productions
}

// Production is one grammar rule's right-hand side. Every symbol here is
// either a terminal or a non-terminal row name: this table carries no
// "#"-prefixed semantic-action markers. See DESIGN.md's Open Questions entry
// on semantic-action placement for why the analyser runs as a separate
// post-parse walk (internal/semantic) instead of actions interleaved on the
// parse stack.
type Production []string

// Epsilon is the canonical empty right-hand side.
var Epsilon = Production{"EPSILON"}

// Non-terminal row indices, in declaration order.
//
// ExpressionTail, OperandTail, and TermTail do not appear in
// original_source/parser.py's production list: Expression/Operand/Term
// there are each written as a flat "Y op Y | Y" pair of alternatives, which
// shares its first symbol (Y) across both choices and so cannot be selected
// by a single lookahead token the way LL(1) table-driving requires. The
// three Tail non-terminals left-factor that ambiguity out (Y Y' ; Y' -> op Y
// | EPSILON), a standard grammar transformation, without changing what the
// grammar accepts.
const (
	NTProgram = iota
	NTDescriptionList
	NTDescription
	NTStatementList
	NTStatement
	NTExpression
	NTExpressionTail
	NTOperand
	NTOperandTail
	NTTerm
	NTTermTail
	NTFactor
	NTIdentifier
	NTNumber
	NTLogicalConstant
	NTType
	NTRelationalOperation
	NTAdditiveOperation
	NTMultiplicativeOperation
	NTUnaryOperation
	NTCompoundStatement
	NTAssignmentStatement
	NTConditionalStatement
	NTFixedLoopStatement
	NTConditionalLoopStatement
	NTInputStatement
	NTOutputStatement
	// IdentList and ExprList left-factor the comma-separated "ID {, ID}"
	// and "Expression {, Expression}" lists spec.md's dim/read/write
	// grammar requires (IdentList -> , ID IdentList | EPSILON; ExprList is
	// the same shape over Expression), the standard list-tail pattern and
	// the reason Tcomma exists as a terminal at all.
	NTIdentList
	NTExprList
	numNonTerminals
)

var nonTerminalNames = [numNonTerminals]string{
	NTProgram:                  "Program",
	NTDescriptionList:          "Description-list",
	NTDescription:              "Description",
	NTStatementList:            "Statement-list",
	NTStatement:                "Statement",
	NTExpression:               "Expression",
	NTExpressionTail:           "ExpressionTail",
	NTOperand:                  "Operand",
	NTOperandTail:              "OperandTail",
	NTTerm:                     "Term",
	NTTermTail:                 "TermTail",
	NTFactor:                   "Factor",
	NTIdentifier:               "Identifier",
	NTNumber:                   "Number",
	NTLogicalConstant:          "LogicalConstant",
	NTType:                     "Type",
	NTRelationalOperation:      "RelationalOperation",
	NTAdditiveOperation:        "AdditiveOperation",
	NTMultiplicativeOperation:  "MultiplicativeOperation",
	NTUnaryOperation:           "UnaryOperation",
	NTCompoundStatement:        "CompoundStatement",
	NTAssignmentStatement:      "AssignmentStatement",
	NTConditionalStatement:     "ConditionalStatement",
	NTFixedLoopStatement:       "FixedLoopStatement",
	NTConditionalLoopStatement: "ConditionalLoopStatement",
	NTInputStatement:           "InputStatement",
	NTOutputStatement:          "OutputStatement",
	NTIdentList:                "IdentList",
	NTExprList:                 "ExprList",
}

// NonTerminalName returns the display name for a non-terminal row index.
func NonTerminalName(row int) string {
	return nonTerminalNames[row]
}

// NonTerminalIndex maps a non-terminal's display name to its table row, or
// (-1, false) if name is not one of the grammar's non-terminals.
func NonTerminalIndex(name string) (int, bool) {
	for i, n := range nonTerminalNames {
		if n == name {
			return i, true
		}
	}
	return -1, false
}

// MissingConstruct gives the canonical "what was expected here" text used
// when a SYNCH entry fires for the given non-terminal.
var MissingConstruct = map[string]string{
	"Program":                  "end",
	"Description":              "dim ID : integer",
	"Description-list":         "dim ID : integer",
	"Statement-list":           "ID as EXPR",
	"Statement":                "ID as EXPR",
	"Expression":               "NUM",
	"ExpressionTail":           "EQ",
	"Operand":                  "NUM",
	"OperandTail":              "plus",
	"Term":                     "NUM",
	"TermTail":                 "mult",
	"Factor":                   "NUM",
	"Identifier":               "ID",
	"Number":                   "NUM",
	"LogicalConstant":          "true",
	"Type":                     "integer",
	"RelationalOperation":      "EQ",
	"AdditiveOperation":        "plus",
	"MultiplicativeOperation":  "mult",
	"UnaryOperation":           "~",
	"CompoundStatement":        "ID as EXPR",
	"AssignmentStatement":      "ID as EXPR",
	"ConditionalStatement":     "if EXPR then STMT",
	"FixedLoopStatement":       "for ID as EXPR to EXPR do STMT",
	"ConditionalLoopStatement": "while EXPR do STMT",
	"InputStatement":           "read (ID)",
	"OutputStatement":          "write (EXPR)",
	"IdentList":                ",",
	"ExprList":                 ",",
}

// Terminal column indices, in the canonical dialect's lexical order.
const (
	TID = iota
	TNUM
	Tbegin
	Tend
	Tdim
	Tinteger
	Treal
	Tboolean
	Tif
	Tthen
	Telse
	Tfor
	Tto
	Tdo
	Twhile
	Tread
	Twrite
	Ttrue
	Tfalse
	TNE
	TEQ
	TLT
	TLE
	TGT
	TGE
	Tplus
	Tmin
	Tor
	Tmult
	Tdiv
	Tand
	Ttilde
	Tas
	Tcolon
	Tlbrace
	Trbrace
	Tlparen
	Trparen
	Tdot
	Tcomma
	Teof
	numTerminals
)

var terminalNames = [numTerminals]string{
	TID: "ID", TNUM: "NUM", Tbegin: "begin", Tend: "end", Tdim: "dim", Tinteger: "integer",
	Treal: "real", Tboolean: "boolean", Tif: "if", Tthen: "then", Telse: "else",
	Tfor: "for", Tto: "to", Tdo: "do", Twhile: "while", Tread: "read",
	Twrite: "write", Ttrue: "true", Tfalse: "false", TNE: "NE", TEQ: "EQ",
	TLT: "LT", TLE: "LE", TGT: "GT", TGE: "GE", Tplus: "plus", Tmin: "min",
	Tor: "or", Tmult: "mult", Tdiv: "div", Tand: "and", Ttilde: "~", Tas: "as",
	Tcolon: ":", Tlbrace: "{", Trbrace: "}", Tlparen: "(", Trparen: ")",
	Tdot: ".", Tcomma: ",", Teof: "$",
}

// TerminalIndex maps a terminal's literal name to its table column, or
// (-1, false) if the name is not one of the grammar's terminals.
func TerminalIndex(name string) (int, bool) {
	for i, n := range terminalNames {
		if n == name {
			return i, true
		}
	}
	return -1, false
}

// TerminalName returns the display name for a terminal column index.
func TerminalName(col int) string {
	return terminalNames[col]
}

// Productions is the full ordered production list, index 0 unused
// (reserved, matches the original source's empty-string placeholder at
// index 0). Production 5 (CompoundStatement -> Statement-list) and
// production 8 (Statement -> CompoundStatement) are preserved from the
// source list but never selected by any table row below: original_source's
// own grammar never gives CompoundStatement a distinguishing lookahead
// either (it collides with every other Statement alternative), so it stays
// as a documented dead production rather than being deleted.
var Productions = []Production{
	0:  {},
	1:  {"begin", "Description-list", "Statement-list", "end"},
	2:  {"Description", "Description-list"},
	3:  {"EPSILON"},
	4:  {"dim", "ID", "IdentList", ":", "Type"},
	5:  {"Statement-list"},
	6:  {"Statement", "Statement-list"},
	7:  {"EPSILON"},
	8:  {"CompoundStatement"},
	9:  {"AssignmentStatement"},
	10: {"ConditionalStatement"},
	11: {"FixedLoopStatement"},
	12: {"ConditionalLoopStatement"},
	13: {"InputStatement"},
	14: {"OutputStatement"},
	15: {"ID", "as", "Expression"},
	16: {"if", "Expression", "then", "Statement", "else", "Statement"},
	17: {"for", "ID", "as", "Expression", "to", "Expression", "do", "Statement"},
	18: {"while", "Expression", "do", "Statement"},
	19: {"read", "(", "ID", "IdentList", ")"},
	20: {"write", "(", "Expression", "ExprList", ")"},
	21: {"Operand", "ExpressionTail"},
	22: {"RelationalOperation", "Operand"},
	23: {"EPSILON"},
	24: {"Term", "OperandTail"},
	25: {"AdditiveOperation", "Term"},
	26: {"EPSILON"},
	27: {"Factor", "TermTail"},
	28: {"MultiplicativeOperation", "Factor"},
	29: {"EPSILON"},
	30: {"Identifier"},
	31: {"Number"},
	32: {"LogicalConstant"},
	33: {"UnaryOperation", "Factor"},
	34: {"(", "Expression", ")"},
	35: {"ID"},
	36: {"NUM"},
	37: {"true"},
	38: {"false"},
	39: {"integer"},
	40: {"real"},
	41: {"boolean"},
	42: {"NE"},
	43: {"EQ"},
	44: {"LT"},
	45: {"LE"},
	46: {"GT"},
	47: {"GE"},
	48: {"plus"},
	49: {"min"},
	50: {"or"},
	51: {"mult"},
	52: {"div"},
	53: {"and"},
	54: {"~"},
	55: {"SYNCH"},
	56: {"EMPTY"},
	// 57-60 have no counterpart in original_source/parser.py's production
	// list at all: its dim/read/write rows only ever took a single
	// ID/Expression. They implement spec.md's "IdentList"/"ExprList"
	// comma-separated lists directly, left-factored the same way
	// Expression/Operand/Term's Tail productions are above.
	57: {"EPSILON"},
	58: {",", "ID", "IdentList"},
	59: {"EPSILON"},
	60: {",", "Expression", "ExprList"},
}

const (
	prodIdentListEpsilon = 57
	prodIdentListComma   = 58
	prodExprListEpsilon  = 59
	prodExprListComma    = 60
)

const (
	prodSynch = 55
	prodEmpty = 56
)

// resolve turns a raw production index from the literal table into a
// closed Entry.
func resolve(prodIdx int) Entry {
	switch prodIdx {
	case prodSynch:
		return Entry{Kind: EntrySynch}
	case prodEmpty:
		return Entry{Kind: EntryEmpty}
	default:
		return Entry{Kind: EntryProduce, Prod: prodIdx}
	}
}

// statementStarts is the set of terminal columns that begin some
// Statement alternative (AssignmentStatement/ConditionalStatement/
// FixedLoopStatement/ConditionalLoopStatement/InputStatement/
// OutputStatement), used repeatedly below to build FIRST/FOLLOW-derived
// rows without repeating the same six columns by hand each time.
var statementStarts = []int{TID, Tif, Tfor, Twhile, Tread, Twrite}

// exprFollow is FOLLOW(Expression): every column that can immediately
// follow a complete Expression/Operand/Term/Factor chain once ExpressionTail
// goes to EPSILON, i.e. everywhere an Expression is used wrapped in a fixed
// punctuation ("(" Expression ")", "write (" Expression ")"), followed by the
// "," of a write's ExprList, followed by a fixed keyword ("then", "to", "do",
// and "else" after a conditional's first branch) or by whatever can start the
// next statement (including "end", when the enclosing construct's statements
// are done).
var exprFollow = append([]int{Trparen, Tcomma, Tthen, Telse, Tto, Tdo, Tend}, statementStarts...)

// operandFollow is FOLLOW(Operand): exprFollow plus FIRST(RelationalOperation),
// since an Operand is also immediately followed by a relational operator
// when ExpressionTail takes its non-EPSILON alternative.
var operandFollow = append([]int{TNE, TEQ, TLT, TLE, TGT, TGE}, exprFollow...)

// termFollow is FOLLOW(Term): operandFollow plus FIRST(AdditiveOperation).
var termFollow = append([]int{Tplus, Tmin, Tor}, operandFollow...)

// rawTable is the reconstructed 29x41 parsing table. Program through
// Description are transcribed straight from original_source/parser.py's
// parsing_table (the only rows it actually resolves); everything below that
// is rebuilt via FIRST/FOLLOW over spec.md's grammar, since the source
// fragment never selects a production past row 2 for any of them.
var rawTable = [numNonTerminals]struct {
	deflt     int
	overrides map[int]int
}{
	NTProgram: {prodEmpty, map[int]int{Tbegin: 1, Teof: prodSynch}},
	NTDescriptionList: {prodEmpty, overridesFor(
		colsOf(Tdim, 2),
		colsOf(TID, 3), colsOf(TNUM, 3), colsOf(Tend, 3),
		colsFrom(statementStarts, 3),
		colsOf(Teof, 3),
	)},
	NTDescription: {prodEmpty, map[int]int{Tdim: 4, TID: prodSynch, TNUM: prodSynch, Teof: prodSynch}},
	NTStatementList: {prodEmpty, overridesFor(
		colsFrom(statementStarts, 6),
		colsOf(Tend, 7),
		colsOf(Teof, prodSynch),
	)},
	NTStatement: {prodEmpty, map[int]int{
		TID: 9, Tif: 10, Tfor: 11, Twhile: 12, Tread: 13, Twrite: 14, Teof: prodSynch,
	}},
	NTExpression: {prodEmpty, map[int]int{
		TID: 21, TNUM: 21, Ttrue: 21, Tfalse: 21, Ttilde: 21, Tlparen: 21, Teof: prodSynch,
	}},
	NTExpressionTail: {prodEmpty, overridesFor(
		colsOf(TNE, 22), colsOf(TEQ, 22), colsOf(TLT, 22), colsOf(TLE, 22), colsOf(TGT, 22), colsOf(TGE, 22),
		colsFrom(exprFollow, 23),
		colsOf(Teof, prodSynch),
	)},
	NTOperand: {prodEmpty, map[int]int{
		TID: 24, TNUM: 24, Ttrue: 24, Tfalse: 24, Ttilde: 24, Tlparen: 24, Teof: prodSynch,
	}},
	NTOperandTail: {prodEmpty, overridesFor(
		colsOf(Tplus, 25), colsOf(Tmin, 25), colsOf(Tor, 25),
		colsFrom(operandFollow, 26),
		colsOf(Teof, prodSynch),
	)},
	NTTerm: {prodEmpty, map[int]int{
		TID: 27, TNUM: 27, Ttrue: 27, Tfalse: 27, Ttilde: 27, Tlparen: 27, Teof: prodSynch,
	}},
	NTTermTail: {prodEmpty, overridesFor(
		colsOf(Tmult, 28), colsOf(Tdiv, 28), colsOf(Tand, 28),
		colsFrom(termFollow, 29),
		colsOf(Teof, prodSynch),
	)},
	NTFactor: {prodEmpty, map[int]int{
		TID: 30, TNUM: 31, Ttrue: 32, Tfalse: 32, Ttilde: 33, Tlparen: 34, Teof: prodSynch,
	}},
	NTIdentifier:          {prodEmpty, map[int]int{TID: 35, Teof: prodSynch}},
	NTNumber:              {prodEmpty, map[int]int{TNUM: 36, Teof: prodSynch}},
	NTLogicalConstant:     {prodEmpty, map[int]int{Ttrue: 37, Tfalse: 38, Teof: prodSynch}},
	NTType:                {prodEmpty, map[int]int{Tinteger: 39, Treal: 40, Tboolean: 41, Teof: prodSynch}},
	NTRelationalOperation: {prodEmpty, map[int]int{TNE: 42, TEQ: 43, TLT: 44, TLE: 45, TGT: 46, TGE: 47, Teof: prodSynch}},
	NTAdditiveOperation:       {prodEmpty, map[int]int{Tplus: 48, Tmin: 49, Tor: 50, Teof: prodSynch}},
	NTMultiplicativeOperation: {prodEmpty, map[int]int{Tmult: 51, Tdiv: 52, Tand: 53, Teof: prodSynch}},
	NTUnaryOperation:          {prodEmpty, map[int]int{Ttilde: 54, Teof: prodSynch}},
	// CompoundStatement is unreachable: Statement's row never selects
	// production 8, since CompoundStatement's own FIRST set collides with
	// every sibling alternative (see the Productions doc comment above).
	NTCompoundStatement:        {prodEmpty, map[int]int{Teof: prodSynch}},
	NTAssignmentStatement:      {prodEmpty, map[int]int{TID: 15, Teof: prodSynch}},
	NTConditionalStatement:     {prodEmpty, map[int]int{Tif: 16, Teof: prodSynch}},
	NTFixedLoopStatement:       {prodEmpty, map[int]int{Tfor: 17, Teof: prodSynch}},
	NTConditionalLoopStatement: {prodEmpty, map[int]int{Twhile: 18, Teof: prodSynch}},
	NTInputStatement:           {prodEmpty, map[int]int{Tread: 19, Teof: prodSynch}},
	NTOutputStatement:          {prodEmpty, map[int]int{Twrite: 20, Teof: prodSynch}},
	// IdentList's FOLLOW is the union of both call sites that use it: ":"
	// closes a dim declaration's name list, ")" closes a read's. Both
	// columns resolve to the EPSILON alternative; only a comma continues
	// the list. Same shape for ExprList, whose only call site is write, so
	// its FOLLOW is just ")".
	NTIdentList: {prodEmpty, overridesFor(
		colsOf(Tcomma, prodIdentListComma),
		colsOf(Tcolon, prodIdentListEpsilon), colsOf(Trparen, prodIdentListEpsilon),
		colsOf(Teof, prodSynch),
	)},
	NTExprList: {prodEmpty, overridesFor(
		colsOf(Tcomma, prodExprListComma),
		colsOf(Trparen, prodExprListEpsilon),
		colsOf(Teof, prodSynch),
	)},
}

// colsOf and colsFrom build single-column/multi-column override fragments;
// overridesFor merges any number of them into one map, the last write for a
// given column winning (none of the fragments used above actually collide).
// These exist only to keep the FIRST/FOLLOW-derived rows above legible as
// "these columns produce that production" statements instead of long
// hand-enumerated map literals.
func colsOf(col, prod int) map[int]int {
	return map[int]int{col: prod}
}

func colsFrom(cols []int, prod int) map[int]int {
	m := make(map[int]int, len(cols))
	for _, c := range cols {
		m[c] = prod
	}
	return m
}

func overridesFor(fragments ...map[int]int) map[int]int {
	out := map[int]int{}
	for _, frag := range fragments {
		for k, v := range frag {
			out[k] = v
		}
	}
	return out
}

// Table is the resolved, ready-to-index parsing table: Table[row][col].
var Table [numNonTerminals][numTerminals]Entry

func init() {
	for row := 0; row < numNonTerminals; row++ {
		r := rawTable[row]
		for col := 0; col < numTerminals; col++ {
			if p, ok := r.overrides[col]; ok {
				Table[row][col] = resolve(p)
			} else {
				Table[row][col] = resolve(r.deflt)
			}
		}
	}
}

// Get returns the resolved table entry for expanding non-terminal row under
// lookahead column.
func Get(row, col int) Entry {
	return Table[row][col]
}

// String renders an Entry for debugging/logging.
func (e Entry) String() string {
	switch e.Kind {
	case EntrySynch:
		return "SYNCH"
	case EntryEmpty:
		return "EMPTY"
	default:
		return fmt.Sprintf("produce(%d)", e.Prod)
	}
}
