package lr

import (
	"fmt"
	"sort"

	"github.com/npillmayer/lrkit/lr/sparse"
)

// Actions for parser action tables. Reduce entries are encoded as the serial
// number of the production to reduce.
const (
	ShiftAction  = -1
	AcceptAction = -2
)

// === Actions ===============================================================

// Action is an entry of the ACTION table. It is one of Shift, Reduce or Accept.
type Action interface {
	isAction()
	String() string
}

// Shift is the action to push the lookahead token and go to State.
type Shift struct {
	State int
}

// Reduce is the action to reduce a handle with Production.
type Reduce struct {
	Production *Production
}

// Accept is the action to successfully finish a parse.
type Accept struct{}

func (Shift) isAction()  {}
func (Reduce) isAction() {}
func (Accept) isAction() {}

func (a Shift) String() string {
	return fmt.Sprintf("shift %d", a.State)
}

func (a Reduce) String() string {
	return fmt.Sprintf("reduce %d (%s)", a.Production.Serial, a.Production)
}

func (Accept) String() string {
	return "accept"
}

// sameAction compares two actions structurally.
func sameAction(a, b Action) bool {
	switch x := a.(type) {
	case Shift:
		y, ok := b.(Shift)
		return ok && x.State == y.State
	case Reduce:
		y, ok := b.(Reduce)
		return ok && x.Production.Serial == y.Production.Serial
	case Accept:
		_, ok := b.(Accept)
		return ok
	}
	panic(fmt.Sprintf("unknown action type %T", a))
}

// encode converts an action to a table value.
func encode(a Action) int32 {
	switch x := a.(type) {
	case Shift:
		return ShiftAction
	case Reduce:
		return int32(x.Production.Serial)
	case Accept:
		return AcceptAction
	}
	panic(fmt.Sprintf("unknown action type %T", a))
}

// === Conflicts =============================================================

// ConflictKind is either ShiftReduce or ReduceReduce.
type ConflictKind string

// Kinds of conflicts.
const (
	ShiftReduce  ConflictKind = "shift/reduce"
	ReduceReduce ConflictKind = "reduce/reduce"
)

// Conflict is a competing pair of actions for the same state and lookahead.
// The table keeps the Existing action.
type Conflict struct {
	Kind     ConflictKind
	State    int
	Symbol   Symbol
	Existing Action
	Incoming Action
}

func (c Conflict) String() string {
	return fmt.Sprintf("%s conflict in state %d on %s: %s vs. %s",
		c.Kind, c.State, c.Symbol, c.Existing, c.Incoming)
}

func conflictKind(a, b Action) ConflictKind {
	_, s1 := a.(Shift)
	_, s2 := b.(Shift)
	_, r1 := a.(Reduce)
	_, r2 := b.(Reduce)
	if (s1 && r2) || (r1 && s2) {
		return ShiftReduce
	}
	return ReduceReduce
}

// === Tables ================================================================

// Table is a parser table with states as rows and grammar symbols as columns.
// Values are stored in a sparse matrix.
type Table struct {
	matrix  *sparse.IntMatrix
	symbols []Symbol
	cols    map[Symbol]int
}

func newTable(rows int, symbols []Symbol) *Table {
	t := &Table{
		symbols: symbols,
		cols:    make(map[Symbol]int, len(symbols)),
	}
	for j, A := range symbols {
		t.cols[A] = j
	}
	t.matrix = sparse.NewIntMatrix(rows, len(symbols), sparse.DefaultNullValue)
	return t
}

// Symbols returns the column symbols of the table.
func (t *Table) Symbols() []Symbol {
	return t.symbols
}

// NullValue is the value of empty table entries.
func (t *Table) NullValue() int32 {
	return t.matrix.NullValue()
}

// Value returns the table entry for a state and a symbol, or NullValue.
func (t *Table) Value(state int, A Symbol) int32 {
	a, _ := t.Values(state, A)
	return a
}

// Values returns the table entry for a state and a symbol, together with a
// secondary value for conflicting entries.
func (t *Table) Values(state int, A Symbol) (int32, int32) {
	j, ok := t.cols[A]
	if !ok || state < 0 || state >= t.matrix.M() {
		return t.NullValue(), t.NullValue()
	}
	return t.matrix.Values(state, j)
}

// ValueCount returns the number of non-empty entries.
func (t *Table) ValueCount() int {
	return t.matrix.ValueCount()
}

func (t *Table) add(state int, A Symbol, v int32) {
	j, ok := t.cols[A]
	if !ok {
		panic(fmt.Sprintf("lr.Table: no column for symbol %s", A))
	}
	t.matrix.Add(state, j, v)
}

// Tables holds the ACTION and GOTO tables for an LR(1) grammar, together with
// the CFSM they have been derived from. Tables are immutable after construction
// and may be shared between parsers.
type Tables struct {
	g         *Grammar // augmented grammar
	cfsm      *CFSM
	action    *Table // terminal columns
	gototable *Table // all symbols; terminal entries are shift targets
	actions   map[edgeKey]Action
	conflicts []Conflict
}

// Grammar returns the augmented grammar the tables have been built for.
func (t *Tables) Grammar() *Grammar {
	return t.g
}

// CFSM returns the canonical collection.
func (t *Tables) CFSM() *CFSM {
	return t.cfsm
}

// StateCount returns the number of parser states.
func (t *Tables) StateCount() int {
	return t.cfsm.Size()
}

// ActionTable returns the encoded ACTION table.
func (t *Tables) ActionTable() *Table {
	return t.action
}

// GotoTable returns the encoded GOTO table.
func (t *Tables) GotoTable() *Table {
	return t.gototable
}

// Action returns ACTION[state, a] for a terminal a. If there is no entry, nil
// and false are returned.
func (t *Tables) Action(state int, a Symbol) (Action, bool) {
	act, ok := t.actions[edgeKey{state, a}]
	return act, ok
}

// Goto returns GOTO[state, A].
func (t *Tables) Goto(state int, A Symbol) (int, bool) {
	v := t.gototable.Value(state, A)
	if v == t.gototable.NullValue() {
		return -1, false
	}
	return int(v), true
}

// Expected returns the terminals with an ACTION entry for a state, sorted.
func (t *Tables) Expected(state int) []Symbol {
	exp := make([]Symbol, 0, 4)
	for _, a := range t.action.symbols {
		if _, ok := t.actions[edgeKey{state, a}]; ok {
			exp = append(exp, a)
		}
	}
	return exp
}

// Conflicts returns all conflicts found during table construction, in order of
// detection.
func (t *Tables) Conflicts() []Conflict {
	return t.conflicts
}

// HasConflicts is true if the grammar is not LR(1).
func (t *Tables) HasConflicts() bool {
	return len(t.conflicts) > 0
}

// === Table generator =======================================================

// TableGenerator is a generator object to construct LR(1) parser tables.
// Clients usually create a Grammar G and then a table generator.
// TableGenerator.CreateTables() constructs the CFSM and parser tables for an
// LR-parser recognizing grammar G.
type TableGenerator struct {
	g      *Grammar
	dfa    *CFSM
	tables *Tables
}

// NewTableGenerator creates a new TableGenerator for a grammar.
func NewTableGenerator(g *Grammar) *TableGenerator {
	return &TableGenerator{g: g.Augmented()}
}

// CFSM returns the characteristic finite state machine (CFSM) for a grammar.
// Usually clients call lrgen.CreateTables() beforehand, but it is possible
// to call lrgen.CFSM() directly. The CFSM will be created, if it has not
// been constructed previously.
func (lrgen *TableGenerator) CFSM() *CFSM {
	if lrgen.dfa == nil {
		lrgen.dfa = BuildCFSM(lrgen.g)
	}
	return lrgen.dfa
}

// Tables returns the tables created by CreateTables, or nil.
func (lrgen *TableGenerator) Tables() *Tables {
	if lrgen.tables == nil {
		tracer().Errorf("tables not yet generated; call CreateTables() first")
	}
	return lrgen.tables
}

// HasConflicts is true if CreateTables found conflicts.
func (lrgen *TableGenerator) HasConflicts() bool {
	return lrgen.tables != nil && lrgen.tables.HasConflicts()
}

// CreateTables creates the ACTION and GOTO tables for an LR(1) parser.
// Conflicts do not stop table construction: the first action assigned to an
// entry is kept, the conflicts are recorded.
func (lrgen *TableGenerator) CreateTables() *Tables {
	c := lrgen.CFSM()
	G := lrgen.g
	terms := G.Terminals()
	symbols := append(append([]Symbol{}, terms...), G.NonTerminals()...)
	t := &Tables{
		g:         G,
		cfsm:      c,
		action:    newTable(c.Size(), terms),
		gototable: newTable(c.Size(), symbols),
		actions:   make(map[edgeKey]Action),
	}
	tracer().Infof("ACTION table of size %d x %d", c.Size(), len(terms))
	for _, state := range c.States() {
		tracer().Debugf("--- state %d --------------------------------", state.ID)
		for _, e := range c.allEdges(state) {
			t.gototable.add(state.ID, e.Label, int32(e.To))
			if G.IsTerminal(e.Label) {
				t.setAction(state.ID, e.Label, Shift{State: e.To})
			}
		}
		for _, i := range state.Items.Items() {
			if !i.IsComplete() {
				continue
			}
			if i.LHS() == G.augStart {
				if i.la == EndMarker {
					t.setAction(state.ID, EndMarker, Accept{})
				}
				continue
			}
			t.setAction(state.ID, i.la, Reduce{Production: i.prod})
		}
	}
	if len(t.conflicts) > 0 {
		tracer().Infof("grammar %q has %d conflicts", G.Name, len(t.conflicts))
	}
	lrgen.tables = t
	return t
}

// setAction sets ACTION[state, a]. An existing different action is kept and a
// conflict is recorded.
func (t *Tables) setAction(state int, a Symbol, act Action) {
	key := edgeKey{state, a}
	existing, ok := t.actions[key]
	if !ok {
		t.actions[key] = act
		t.action.add(state, a, encode(act))
		tracer().Debugf("    action[%d,%s] = %s", state, a, valstring(encode(act), t.action))
		return
	}
	if sameAction(existing, act) {
		return
	}
	c := Conflict{
		Kind:     conflictKind(existing, act),
		State:    state,
		Symbol:   a,
		Existing: existing,
		Incoming: act,
	}
	tracer().Debugf("    %s", c)
	t.conflicts = append(t.conflicts, c)
	t.action.add(state, a, encode(act)) // secondary value, for display only
}

// AcceptingStates returns all states with an accept action.
func (t *Tables) AcceptingStates() []int {
	acc := make([]int, 0, 1)
	for key, act := range t.actions {
		if _, ok := act.(Accept); ok {
			acc = append(acc, key.from)
		}
	}
	sort.Ints(acc)
	return acc
}

// valstring is a short helper to stringify an action table entry.
func valstring(v int32, m *Table) string {
	if v == m.NullValue() {
		return "<none>"
	} else if v == AcceptAction {
		return "<accept>"
	} else if v == ShiftAction {
		return "<shift>"
	}
	return fmt.Sprintf("<reduce %d>", v)
}
