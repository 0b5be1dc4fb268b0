package lr

import (
	"github.com/emirpasic/gods/lists/arraylist"
	"github.com/npillmayer/lrkit/automata"
)

// ItemNFA is the non-deterministic view of a CFSM: every LR(1) item is a state.
// An item [A → α • X β, a] has an X-transition to [A → α X • β, a]; if X is a
// non-terminal, it has epsilon-transitions to the items [X → • γ, b] for every
// b ∈ FIRST(β a). Complete items are final.
//
// Determinizing the item NFA by subset construction yields the canonical
// collection, with identical state numbering.
type ItemNFA struct {
	NFA   *automata.NFA
	items []Item // NFA state → item
}

// Item returns the item for NFA state s.
func (inf *ItemNFA) Item(s int) Item {
	return inf.items[s]
}

// Items returns the item set for a set of NFA states, e.g. for a DFA state.
func (inf *ItemNFA) Items(states []int) *ItemSet {
	S := NewItemSet()
	for _, s := range states {
		S.Add(inf.items[s])
	}
	return S
}

// BuildItemNFA creates the item NFA for the grammar of a CFSM. States are
// numbered breadth-first, starting with [S' → • S, $] as state 0.
func BuildItemNFA(c *CFSM) *ItemNFA {
	G := c.G
	inf := &ItemNFA{NFA: automata.NewNFA()}
	ids := make(map[string]int)
	queue := arraylist.New()
	id := func(i Item) int {
		if s, ok := ids[i.key()]; ok {
			return s
		}
		s := inf.NFA.NewState()
		ids[i.key()] = s
		inf.items = append(inf.items, i)
		if i.IsComplete() {
			inf.NFA.AddFinal(s)
		}
		queue.Add(i)
		return s
	}
	inf.NFA.SetStart(id(StartItem(G)))
	for !queue.Empty() {
		x, _ := queue.Get(0)
		queue.Remove(0)
		item := x.(Item)
		from := ids[item.key()]
		X, ok := item.PeekSymbol()
		if !ok {
			continue
		}
		inf.NFA.AddTransition(from, string(X), id(item.Advance()))
		if !G.IsNonTerminal(X) {
			continue
		}
		lookaheads := G.FirstOfSequence(item.rhs[item.dot+1:])
		if lookaheads.Contains(Epsilon) {
			lookaheads.Remove(Epsilon)
			lookaheads.Add(item.la)
		}
		for _, p := range G.ProductionsFor(X) {
			for _, b := range lookaheads.Values() {
				inf.NFA.AddTransition(from, automata.Epsilon, id(newItem(p, 0, b)))
			}
		}
	}
	tracer().Infof("item NFA for %q has %d states", G.Name, inf.NFA.Size())
	return inf
}
