package lr

import (
	"errors"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

// E → E + T | T
// T → id
func makeExprGrammar(t *testing.T) *Grammar {
	b := NewGrammarBuilder("E1")
	b.LHS("E").N("E").T("+").N("T").End()
	b.LHS("E").N("T").End()
	b.LHS("T").T("id").End()
	g, err := b.Grammar()
	if err != nil {
		t.Fatal(err)
	}
	return g
}

// S → A
// A → A a | ε
func makeEpsGrammar(t *testing.T) *Grammar {
	b := NewGrammarBuilder("E2")
	b.LHS("S").N("A").End()
	b.LHS("A").N("A").T("a").End()
	b.LHS("A").Epsilon()
	g, err := b.Grammar()
	if err != nil {
		t.Fatal(err)
	}
	return g
}

// Sum     → Sum '+' Product | Product
// Product → Product '*' Factor | Factor
// Factor  → '(' Sum ')' | number
func makeSumProductGrammar(t *testing.T) *Grammar {
	b := NewGrammarBuilder("SumProduct")
	b.LHS("Sum").N("Sum").T("+").N("Product").End()
	b.LHS("Sum").N("Product").End()
	b.LHS("Product").N("Product").T("*").N("Factor").End()
	b.LHS("Product").N("Factor").End()
	b.LHS("Factor").T("(").N("Sum").T(")").End()
	b.LHS("Factor").T("number").End()
	g, err := b.Grammar()
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func symsEqual(a []Symbol, b ...Symbol) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestGrammarBuilder(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrkit.lr")
	defer teardown()
	//
	g := makeExprGrammar(t)
	if g.Size() != 3 {
		t.Errorf("expected 3 productions, have %d", g.Size())
	}
	if g.Start() != "E" {
		t.Errorf("expected start symbol E, is %s", g.Start())
	}
	if !symsEqual(g.Terminals(), "$", "+", "id") {
		t.Errorf("unexpected terminals %v", g.Terminals())
	}
	if !symsEqual(g.NonTerminals(), "E", "T") {
		t.Errorf("unexpected non-terminals %v", g.NonTerminals())
	}
	if p := g.Production(0); p.String() != "E → E + T" {
		t.Errorf("unexpected production 0: %s", p)
	}
	g.Dump()
}

func TestEpsilonProduction(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrkit.lr")
	defer teardown()
	//
	g := makeEpsGrammar(t)
	p := g.Production(2)
	if !p.IsEpsilon() || len(p.Body()) != 0 {
		t.Errorf("expected A → ε to be an epsilon production, is %s", p)
	}
	q, err := g.AddProduction("A", Epsilon, "a", Epsilon)
	if err != nil {
		t.Fatal(err)
	}
	if !symsEqual(q.RHS, "a") {
		t.Errorf("expected epsilons to be dropped from RHS, have %v", q.RHS)
	}
}

func TestAugmentedGrammar(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrkit.lr")
	defer teardown()
	//
	g, err := NewGrammar("G", "S", []Symbol{"a"}, []Symbol{"S", "S'"})
	if err != nil {
		t.Fatal(err)
	}
	g.AddProduction("S", "S'")
	g.AddProduction("S'", "a")
	h := g.Augmented()
	if !h.IsAugmented() || h.Start() != "S''" {
		t.Errorf("expected augmented start symbol S'', is %s", h.Start())
	}
	if p := h.Production(0); p.LHS != "S''" || !symsEqual(p.RHS, "S") {
		t.Errorf("unexpected start production %s", p)
	}
	if h.Size() != 3 || g.Size() != 2 {
		t.Errorf("augmentation must not modify the original grammar")
	}
	if h.Augmented() != h {
		t.Errorf("augmenting an augmented grammar should be a no-op")
	}
}

func TestGrammarSpecValidation(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrkit.lr")
	defer teardown()
	//
	spec := GrammarSpec{
		Name:         "undeclared",
		Start:        "S",
		Terminals:    []string{"a"},
		NonTerminals: []string{"S"},
		Productions: []ProductionSpec{
			{LHS: "S", Alternatives: [][]string{{"a", "b"}}},
		},
	}
	_, err := spec.Grammar()
	if !errors.Is(err, ErrUnknownSymbol) {
		t.Errorf("expected unknown symbol error, have %v", err)
	}
	var gerr *GrammarError
	if !errors.As(err, &gerr) || gerr.Symbol != "b" {
		t.Errorf("expected error to report symbol b, have %v", err)
	}
	spec.Start = "a"
	spec.Productions = nil
	if _, err = spec.Grammar(); !errors.Is(err, ErrInvalidStart) {
		t.Errorf("expected invalid start error, have %v", err)
	}
	spec.Start = "S"
	spec.LexRules = []LexRule{{Terminal: "num", Pattern: "[0-9]+"}}
	if _, err = spec.Grammar(); !errors.Is(err, ErrUndeclaredLexeme) {
		t.Errorf("expected undeclared lexeme error, have %v", err)
	}
	spec.LexRules = []LexRule{
		{Terminal: "a", Pattern: "a"},
		{Terminal: "ws", Pattern: "( |\t)+", Skip: true},
	}
	spec.Productions = []ProductionSpec{
		{LHS: "S", Alternatives: [][]string{{"a", "S"}, {}}},
	}
	g, err := spec.Grammar()
	if err != nil {
		t.Fatal(err)
	}
	if g.Size() != 2 || !g.Production(1).IsEpsilon() {
		t.Errorf("expected 2 productions, the second one S → ε, have\n%s", g)
	}
	if _, err := NewGrammar("G", "S", []Symbol{"S"}, []Symbol{"S"}); !errors.Is(err, ErrDuplicateSymbol) {
		t.Errorf("expected duplicate symbol error, have %v", err)
	}
	if _, err := NewGrammar("G", "S", []Symbol{Epsilon}, []Symbol{"S"}); !errors.Is(err, ErrReservedSymbol) {
		t.Errorf("expected reserved symbol error, have %v", err)
	}
}

func TestFirstFollow(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrkit.lr")
	defer teardown()
	//
	g := makeSumProductGrammar(t)
	for _, A := range []Symbol{"Sum", "Product", "Factor"} {
		if !symsEqual(g.First(A).Values(), "(", "number") {
			t.Errorf("FIRST(%s) = %v", A, g.First(A))
		}
	}
	if F := g.Follow("Sum").Values(); !symsEqual(F, "$", ")", "+") {
		t.Errorf("FOLLOW(Sum) = %v", F)
	}
	for _, A := range []Symbol{"Product", "Factor"} {
		if F := g.Follow(A).Values(); !symsEqual(F, "$", ")", "*", "+") {
			t.Errorf("FOLLOW(%s) = %v", A, F)
		}
	}
	if F := g.First("+").Values(); !symsEqual(F, "+") {
		t.Errorf("FIRST of a terminal should be the terminal itself, is %v", F)
	}
	if F := g.FirstOfSequence(nil).Values(); !symsEqual(F, Epsilon) {
		t.Errorf("FIRST of the empty sequence should be {ε}, is %v", F)
	}
	rows := g.FollowTable()
	if len(rows) != 3 || rows[0].Symbol != "Factor" {
		t.Errorf("unexpected FOLLOW table %v", rows)
	}
}

func TestFirstFollowNullable(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrkit.lr")
	defer teardown()
	//
	g := makeEpsGrammar(t)
	if !g.Nullable("S") || !g.Nullable("A") {
		t.Errorf("expected S and A to be nullable")
	}
	if F := g.First("S").Values(); !symsEqual(F, "a", Epsilon) {
		t.Errorf("FIRST(S) = %v", F)
	}
	if F := g.Follow("A").Values(); !symsEqual(F, "$", "a") {
		t.Errorf("FOLLOW(A) = %v", F)
	}
	if F := g.FirstOfSequence([]Symbol{"A", "a"}).Values(); !symsEqual(F, "a") {
		t.Errorf("FIRST(A a) = %v", F)
	}
	if _, err := g.AddProduction("S", "b"); !errors.Is(err, ErrUnknownSymbol) {
		t.Errorf("expected undeclared terminal b to be rejected, have %v", err)
	}
}

func TestFirstCacheInvalidation(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrkit.lr")
	defer teardown()
	//
	g, _ := NewGrammar("G", "S", []Symbol{"a", "b"}, []Symbol{"S"})
	g.AddProduction("S", "a")
	if F := g.First("S").Values(); !symsEqual(F, "a") {
		t.Errorf("FIRST(S) = %v", F)
	}
	g.AddProduction("S", "b")
	if F := g.First("S").Values(); !symsEqual(F, "a", "b") {
		t.Errorf("FIRST(S) should have been re-computed, is %v", F)
	}
}
