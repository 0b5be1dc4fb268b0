package lr

import (
	"fmt"
	"sort"

	"github.com/emirpasic/gods/lists/arraylist"
	"github.com/emirpasic/gods/stacks/arraystack"
)

// === Closure and Goto-Set Operations =======================================

// Refer to "Crafting A Compiler" by Charles N. Fisher & Richard J. LeBlanc, Jr.
// Section 6.3 LR(1) Parsing

// Closure computes the closure of an item set: for every item
//
//    [A → α • B β, a]
//
// with B a non-terminal, and for every production B → γ, items [B → • γ, b] are
// added for every b ∈ FIRST(β a). We use a worklist instead of recursion; the
// closure is complete when the worklist is empty.
//
// I is not modified.
func (g *Grammar) Closure(I *ItemSet) *ItemSet {
	C := I.Copy()
	work := arraystack.New()
	for _, i := range C.Items() {
		work.Push(i)
	}
	for !work.Empty() {
		x, _ := work.Pop()
		item := x.(Item)
		B, ok := item.PeekSymbol()
		if !ok || !g.nonterminals.Contains(B) {
			continue
		}
		lookaheads := g.FirstOfSequence(item.rhs[item.dot+1:])
		if lookaheads.Contains(Epsilon) {
			lookaheads.Remove(Epsilon)
			lookaheads.Add(item.la)
		}
		for _, p := range g.byLHS[B] {
			for _, b := range lookaheads.Values() {
				if i := newItem(p, 0, b); C.Add(i) {
					work.Push(i)
				}
			}
		}
	}
	return C
}

// Goto computes goto(I, X): all items of I with X after the dot are advanced
// over X, then the closure is taken. For X = ε the result is empty.
func (g *Grammar) Goto(I *ItemSet, X Symbol) *ItemSet {
	moved := NewItemSet()
	if X == Epsilon {
		return moved
	}
	for _, i := range I.Items() {
		if A, ok := i.PeekSymbol(); ok && A == X {
			moved.Add(i.Advance())
		}
	}
	if moved.Empty() {
		return moved
	}
	gclosure := g.Closure(moved)
	tracer().Debugf("goto(%s) --%s--> %s", I, X, gclosure)
	return gclosure
}

// === CFSM Construction =====================================================

// CFSMState is a state within the CFSM for a grammar.
type CFSMState struct {
	ID     int      // serial ID of this state
	Items  *ItemSet // configuration items within this state
	Accept bool     // does this state contain [S' → S •, $]?
}

func (s *CFSMState) String() string {
	return fmt.Sprintf("(state %d | [%d])", s.ID, s.Items.Size())
}

// Dump is a debugging helper
func (s *CFSMState) Dump() {
	tracer().Debugf("--- state %03d -----------", s.ID)
	s.Items.Dump()
	tracer().Debugf("-------------------------")
}

func (s *CFSMState) containsCompletedStartRule() bool {
	for _, i := range s.Items.Items() {
		if i.prod.Serial == 0 && i.IsComplete() && i.la == EndMarker {
			return true
		}
	}
	return false
}

// Edge is a CFSM transition between two states, labelled with a grammar symbol.
type Edge struct {
	From, To int
	Label    Symbol
}

type edgeKey struct {
	from  int
	label Symbol
}

// CFSM is the characteristic finite state machine for an LR(1) grammar, i.e. the
// canonical collection of LR(1) item sets, together with the goto-transitions
// between them. It is constructed by a TableGenerator, but clients may build
// one with BuildCFSM for debugging purposes.
type CFSM struct {
	G      *Grammar     // augmented grammar
	S0     *CFSMState   // start state
	states []*CFSMState // state ID = index
	edges  map[edgeKey]int
	index  map[string][]*CFSMState // item set hash -> states
}

// BuildCFSM constructs the canonical LR(1) collection for a grammar. If g is not
// augmented, an augmented copy will be used.
//
// States are discovered breadth-first, starting with closure({[S' → • S, $]}).
// For every state, transitions are explored in order of symbol names, therefore
// state IDs are stable for a given grammar.
func BuildCFSM(g *Grammar) *CFSM {
	tracer().Debugf("=== build CFSM ==================================================")
	G := g.Augmented()
	c := &CFSM{
		G:     G,
		edges: make(map[edgeKey]int),
		index: make(map[string][]*CFSMState),
	}
	closure0 := G.Closure(NewItemSet(StartItem(G)))
	c.S0, _ = c.addState(closure0)
	c.S0.Dump()
	queue := arraylist.New()
	queue.Add(c.S0)
	for !queue.Empty() {
		x, _ := queue.Get(0)
		queue.Remove(0)
		s := x.(*CFSMState)
		for _, A := range s.Items.SymbolsAfterDot() {
			gotoset := G.Goto(s.Items, A)
			if gotoset.Empty() {
				continue
			}
			snew, isNew := c.addState(gotoset)
			if isNew {
				snew.Dump()
				queue.Add(snew)
			}
			c.edges[edgeKey{s.ID, A}] = snew.ID
		}
		tracer().Debugf("-----------------------------------------------------------------")
	}
	tracer().Infof("CFSM for %q has %d states and %d edges", G.Name, len(c.states), len(c.edges))
	return c
}

// addState adds a state to the CFSM. It checks first if a state with an equal
// item set is present.
func (c *CFSM) addState(iset *ItemSet) (*CFSMState, bool) {
	h := iset.Hash()
	for _, s := range c.index[h] {
		if s.Items.Equals(iset) {
			return s, false
		}
	}
	s := &CFSMState{ID: len(c.states), Items: iset}
	s.Accept = s.containsCompletedStartRule()
	c.states = append(c.states, s)
	c.index[h] = append(c.index[h], s)
	return s, true
}

// Size returns the number of states.
func (c *CFSM) Size() int {
	return len(c.states)
}

// States returns all states, ordered by ID.
func (c *CFSM) States() []*CFSMState {
	return c.states
}

// State returns the state with a given ID.
func (c *CFSM) State(id int) *CFSMState {
	if id < 0 || id >= len(c.states) {
		return nil
	}
	return c.states[id]
}

// Transition returns the target of the edge from state 'from' labelled A.
func (c *CFSM) Transition(from int, A Symbol) (int, bool) {
	to, ok := c.edges[edgeKey{from, A}]
	return to, ok
}

// Edges returns all edges, sorted by source state and label.
func (c *CFSM) Edges() []Edge {
	edges := make([]Edge, 0, len(c.edges))
	for k, to := range c.edges {
		edges = append(edges, Edge{From: k.from, To: to, Label: k.label})
	}
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].From != edges[j].From {
			return edges[i].From < edges[j].From
		}
		return edges[i].Label < edges[j].Label
	})
	return edges
}

// allEdges returns the outgoing edges of a state.
func (c *CFSM) allEdges(s *CFSMState) []Edge {
	r := make([]Edge, 0, 2)
	for _, A := range s.Items.SymbolsAfterDot() {
		if to, ok := c.edges[edgeKey{s.ID, A}]; ok {
			r = append(r, Edge{From: s.ID, To: to, Label: A})
		}
	}
	return r
}
