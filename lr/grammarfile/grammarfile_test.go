package grammarfile

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/npillmayer/lrkit/lr"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

const sectioned = `
# expression grammar
START: E
NONTERMINALS: E T
TERMINALS: + id
PRODUCTIONS:
E -> E + T | T
T -> id
LEXER:
id: /[a-z]+/
'+': /\+/
ws: /( |\t|\n)+/ skip
`

const bare = `
S -> if E then S | if E then S else S | other
E -> cond
S -> ε
`

func TestSectionedFormat(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrkit.lr")
	defer teardown()
	//
	spec, err := ParseString("expr", sectioned)
	if err != nil {
		t.Fatal(err)
	}
	if spec.Start != "E" || len(spec.NonTerminals) != 2 || len(spec.Terminals) != 2 {
		t.Errorf("unexpected symbols in %+v", spec)
	}
	if len(spec.Productions) != 2 || len(spec.Productions[0].Alternatives) != 2 {
		t.Errorf("unexpected productions %v", spec.Productions)
	}
	if len(spec.LexRules) != 3 {
		t.Fatalf("expected 3 lexer rules, have %d", len(spec.LexRules))
	}
	if r := spec.LexRules[1]; r.Terminal != "+" || r.Pattern != `\+` || r.Skip {
		t.Errorf("unexpected lexer rule %+v", r)
	}
	if r := spec.LexRules[2]; r.Terminal != "ws" || !r.Skip {
		t.Errorf("expected ws to be a skip rule, is %+v", r)
	}
	g, err := spec.Grammar()
	if err != nil {
		t.Fatal(err)
	}
	if g.Size() != 3 || g.Name != "expr" {
		t.Errorf("expected grammar 'expr' with 3 productions, have %d", g.Size())
	}
}

func TestBareFormat(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrkit.lr")
	defer teardown()
	//
	spec, err := ParseString("if", bare)
	if err != nil {
		t.Fatal(err)
	}
	if spec.Start != "S" {
		t.Errorf("expected start symbol S, is %s", spec.Start)
	}
	if len(spec.NonTerminals) != 2 {
		t.Errorf("expected non-terminals S and E, have %v", spec.NonTerminals)
	}
	if len(spec.Terminals) != 5 {
		t.Errorf("expected 5 terminals, have %v", spec.Terminals)
	}
	g, err := spec.Grammar()
	if err != nil {
		t.Fatal(err)
	}
	if g.Size() != 5 || !g.Production(4).IsEpsilon() {
		t.Errorf("expected 5 productions, the last being S → ε, have\n%s", g)
	}
}

func TestFormatErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrkit.lr")
	defer teardown()
	//
	var ferr *FormatError
	_, err := ParseString("bad", "START: S\nLEXER:\nid [a-z]+\n")
	if !errors.As(err, &ferr) || ferr.Line != 3 {
		t.Errorf("expected format error in line 3, have %v", err)
	}
	_, err = ParseString("bad", "S -> a\nS a b\n")
	if !errors.As(err, &ferr) || ferr.Line != 2 {
		t.Errorf("expected format error in line 2, have %v", err)
	}
	spec, err := ParseString("undeclared", "START: S\nNONTERMINALS: S\nTERMINALS: a\nPRODUCTIONS:\nS -> a b\n")
	if err != nil {
		t.Fatal(err)
	}
	if _, err = spec.Grammar(); !errors.Is(err, lr.ErrUnknownSymbol) {
		t.Errorf("expected validation to fail for undeclared terminal b, have %v", err)
	}
}

func TestLoad(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrkit.lr")
	defer teardown()
	//
	path := filepath.Join(t.TempDir(), "expr.grammar")
	if err := os.WriteFile(path, []byte(sectioned), 0644); err != nil {
		t.Fatal(err)
	}
	g, err := LoadGrammar(path)
	if err != nil {
		t.Fatal(err)
	}
	if g.Name != "expr" || len(g.LexRules) != 3 {
		t.Errorf("unexpected grammar %q with %d lexer rules", g.Name, len(g.LexRules))
	}
}
