package lr

import (
	"bytes"
	"strings"
	"testing"

	"github.com/npillmayer/lrkit/automata"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

// S → if E then S | if E then S else S | other
// E → cond
func makeDanglingElseGrammar(t *testing.T) *Grammar {
	b := NewGrammarBuilder("DanglingElse")
	b.LHS("S").T("if").N("E").T("then").N("S").End()
	b.LHS("S").T("if").N("E").T("then").N("S").T("else").N("S").End()
	b.LHS("S").T("other").End()
	b.LHS("E").T("cond").End()
	g, err := b.Grammar()
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func TestItemString(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrkit.lr")
	defer teardown()
	//
	g := makeExprGrammar(t)
	i := newItem(g.Production(0), 1, EndMarker)
	if i.String() != "[E → E • + T, $]" {
		t.Errorf("unexpected item string %q", i.String())
	}
	if A, ok := i.PeekSymbol(); !ok || A != "+" {
		t.Errorf("expected + after dot, have %v", A)
	}
	j := i.Advance().Advance()
	if !j.IsComplete() || j.String() != "[E → E + T •, $]" {
		t.Errorf("unexpected complete item %s", j)
	}
	e := newItem(makeEpsGrammar(t).Production(2), 0, "a")
	if !e.IsComplete() || e.String() != "[A → •, a]" {
		t.Errorf("epsilon items should be complete with an empty body, have %s", e)
	}
}

func TestItemSetHash(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrkit.lr")
	defer teardown()
	//
	g := makeExprGrammar(t)
	i1 := newItem(g.Production(0), 0, "+")
	i2 := newItem(g.Production(1), 0, EndMarker)
	S1 := NewItemSet(i1, i2)
	S2 := NewItemSet(i2, i1)
	if !S1.Equals(S2) || S1.Hash() != S2.Hash() {
		t.Errorf("expected equal item sets to have equal hashes")
	}
	S2.Add(newItem(g.Production(2), 0, "+"))
	if S1.Equals(S2) || S1.Hash() == S2.Hash() {
		t.Errorf("expected different item sets to differ")
	}
}

func TestClosure(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrkit.lr")
	defer teardown()
	//
	G := makeExprGrammar(t).Augmented()
	C := G.Closure(NewItemSet(StartItem(G)))
	if C.Size() != 7 {
		t.Errorf("expected closure of start item to have 7 items, has %d: %s", C.Size(), C)
	}
	if !C.Contains(newItem(G.Production(3), 0, "+")) {
		t.Errorf("expected [T → • id, +] in closure")
	}
	if CC := G.Closure(C); !CC.Equals(C) {
		t.Errorf("closure is not idempotent: %s", CC)
	}
	if I := G.Goto(C, Epsilon); !I.Empty() {
		t.Errorf("goto on ε should be empty")
	}
	if I := G.Goto(C, "+"); !I.Empty() {
		t.Errorf("goto on + from state 0 should be empty")
	}
}

func TestClosureIdempotence(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrkit.lr")
	defer teardown()
	//
	for _, g := range []*Grammar{makeSumProductGrammar(t), makeEpsGrammar(t), makeDanglingElseGrammar(t)} {
		c := BuildCFSM(g)
		for _, s := range c.States() {
			if C := c.G.Closure(s.Items); !C.Equals(s.Items) {
				t.Errorf("%s: state %d is not closed", g.Name, s.ID)
			}
		}
	}
}

func TestCFSM(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrkit.lr")
	defer teardown()
	//
	c := BuildCFSM(makeExprGrammar(t))
	if c.Size() != 6 {
		t.Fatalf("expected CFSM to have 6 states, has %d", c.Size())
	}
	expected := []Edge{
		{0, 1, "E"}, {0, 2, "T"}, {0, 3, "id"},
		{1, 4, "+"},
		{4, 5, "T"}, {4, 3, "id"},
	}
	edges := c.Edges()
	if len(edges) != len(expected) {
		t.Fatalf("expected %d edges, have %v", len(expected), edges)
	}
	for k, e := range expected {
		if edges[k] != e {
			t.Errorf("expected edge %v, have %v", e, edges[k])
		}
	}
	if !c.State(1).Accept || c.State(0).Accept {
		t.Errorf("expected state 1 to be the only accepting state")
	}
	if to, ok := c.Transition(4, "id"); !ok || to != 3 {
		t.Errorf("expected 4 --id--> 3")
	}
	if c.State(6) != nil {
		t.Errorf("state 6 should not exist")
	}
}

func TestCFSMDeterminism(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrkit.lr")
	defer teardown()
	//
	g := makeSumProductGrammar(t)
	c1, c2 := BuildCFSM(g), BuildCFSM(g)
	if c1.Size() != c2.Size() {
		t.Fatalf("CFSM sizes differ: %d vs %d", c1.Size(), c2.Size())
	}
	for k := 0; k < c1.Size(); k++ {
		if c1.State(k).Items.String() != c2.State(k).Items.String() {
			t.Errorf("state %d differs between builds", k)
		}
	}
	e1, e2 := c1.Edges(), c2.Edges()
	for k := range e1 {
		if e1[k] != e2[k] {
			t.Errorf("edge %d differs between builds: %v vs %v", k, e1[k], e2[k])
		}
	}
}

func TestItemNFADeterminizesToCFSM(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrkit.lr")
	defer teardown()
	//
	for _, g := range []*Grammar{makeExprGrammar(t), makeEpsGrammar(t), makeDanglingElseGrammar(t)} {
		c := BuildCFSM(g)
		inf := BuildItemNFA(c)
		if inf.Item(inf.NFA.Start).String() != StartItem(c.G).String() {
			t.Errorf("%s: start state of item NFA is %s", g.Name, inf.Item(inf.NFA.Start))
		}
		dfa := automata.Determinize(inf.NFA)
		if dfa.Size() != c.Size() {
			t.Errorf("%s: DFA has %d states, CFSM has %d", g.Name, dfa.Size(), c.Size())
			continue
		}
		for k, members := range dfa.States {
			if !inf.Items(members).Equals(c.State(k).Items) {
				t.Errorf("%s: DFA state %d differs from CFSM state", g.Name, k)
			}
		}
		for _, e := range c.Edges() {
			if to, ok := dfa.Next(e.From, string(e.Label)); !ok || to != e.To {
				t.Errorf("%s: expected DFA edge %v", g.Name, e)
			}
		}
		if len(dfa.Transitions()) != len(c.Edges()) {
			t.Errorf("%s: DFA has %d transitions, CFSM has %d edges", g.Name,
				len(dfa.Transitions()), len(c.Edges()))
		}
	}
}

func TestCFSMGraphViz(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrkit.lr")
	defer teardown()
	//
	c := BuildCFSM(makeExprGrammar(t))
	var buf bytes.Buffer
	if err := c.ToGraphViz(&buf); err != nil {
		t.Fatal(err)
	}
	dot := buf.String()
	if !strings.HasPrefix(dot, "digraph {") {
		t.Errorf("expected dot output to start with digraph")
	}
	if !strings.Contains(dot, "s000 -> s001 [label=\"E\"]") {
		t.Errorf("expected edge 0 --E--> 1 in dot output:\n%s", dot)
	}
	if !strings.Contains(dot, "s001 [fillcolor=lightgray") {
		t.Errorf("expected accepting state 1 to be highlighted")
	}
}
