package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

const exprGrammar = `
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

const danglingElse = `
S -> if E then S | if E then S else S | other
E -> cond
`

func writeGrammar(t *testing.T, name, text string) string {
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(text), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestEnvelopeAccepted(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrkit.cli")
	defer teardown()
	//
	g, tables, err := loadTables(writeGrammar(t, "expr.txt", exprGrammar))
	if err != nil {
		t.Fatal(err)
	}
	var out bytes.Buffer
	if err = writeEnvelope(&out, parseInput(g, tables, "x + y", false)); err != nil {
		t.Fatal(err)
	}
	var env envelope
	if err = json.Unmarshal(out.Bytes(), &env); err != nil {
		t.Fatalf("envelope is not valid JSON: %v", err)
	}
	if !env.OK || env.Message != "" || len(env.Conflicts) != 0 {
		t.Errorf("unexpected envelope %s", out.String())
	}
	if env.AST == nil || env.AST.Symbol != "E" || env.AST.To != 5 || len(env.AST.Children) != 3 {
		t.Fatalf("unexpected AST in %s", out.String())
	}
	if leaf := env.AST.Children[1]; leaf.Symbol != "+" || leaf.Lexeme != "+" || leaf.From != 2 {
		t.Errorf("unexpected leaf %+v", leaf)
	}
}

func TestEnvelopeRejected(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrkit.cli")
	defer teardown()
	//
	g, tables, err := loadTables(writeGrammar(t, "expr.txt", exprGrammar))
	if err != nil {
		t.Fatal(err)
	}
	env := makeEnvelope(parseInput(g, tables, "x y", false))
	if env.OK || !strings.HasPrefix(env.Message, "syntax error") || env.AST != nil {
		t.Errorf("expected a syntax error, have %+v", env)
	}
	env = makeEnvelope(parseInput(g, tables, "x ? y", false))
	if env.OK || !strings.Contains(env.Message, "offset 2") {
		t.Errorf("expected a tokenize error, have %+v", env)
	}
	env = makeEnvelope(parseInput(g, tables, "x + y", true))
	if !env.OK || env.AST.Children[2].Children[0].Lexeme != "id" {
		t.Errorf("expected lexemes replaced by token types, have %+v", env.AST)
	}
}

func TestEnvelopeConflicts(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrkit.cli")
	defer teardown()
	//
	g, tables, err := loadTables(writeGrammar(t, "dangling.txt", danglingElse))
	if err != nil {
		t.Fatal(err)
	}
	env := makeEnvelope(parseInput(g, tables, "if cond then other else other", false))
	if !env.OK {
		t.Errorf("expected input to be accepted: %s", env.Message)
	}
	if len(env.Conflicts) != 1 {
		t.Fatalf("expected 1 conflict, have %d", len(env.Conflicts))
	}
	if c := env.Conflicts[0]; c.Type != "shift/reduce" || c.Symbol != "else" {
		t.Errorf("unexpected conflict %+v", c)
	}
}

func TestBuildOutput(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrkit.cli")
	defer teardown()
	//
	g, tables, err := loadTables(writeGrammar(t, "expr.txt", exprGrammar))
	if err != nil {
		t.Fatal(err)
	}
	var out bytes.Buffer
	printSets(&out, "FOLLOW", g.FollowTable())
	summary(&out, g, tables)
	t.Logf("\n%s", out.String())
	if !strings.Contains(out.String(), "FOLLOW(E) = { $, + }") {
		t.Errorf("expected FOLLOW(E) in output")
	}
	if !strings.Contains(out.String(), "6 states, 0 conflicts") {
		t.Errorf("expected 6 states without conflicts")
	}
	if _, _, err = loadTables(filepath.Join(t.TempDir(), "missing.txt")); err == nil {
		t.Errorf("expected error for missing grammar file")
	}
}

func TestDescribeRegex(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrkit.cli")
	defer teardown()
	//
	var out bytes.Buffer
	_, dfa, err := describeRegex(&out, "a(b|c)*", []string{"a", "abcb", "b", ""})
	if err != nil {
		t.Fatal(err)
	}
	t.Logf("\n%s", out.String())
	s := out.String()
	for _, verdict := range []string{`accept "a"`, `accept "abcb"`, `reject "b"`, `reject ""`} {
		if !strings.Contains(s, verdict) {
			t.Errorf("expected %s in output", verdict)
		}
	}
	if !strings.Contains(s, "postfix: ") || !strings.Contains(s, "ε-closures:") {
		t.Errorf("expected postfix form and closures in output")
	}
	if len(dfa.Alphabet) != 3 {
		t.Errorf("expected alphabet {a,b,c}, have %v", dfa.Alphabet)
	}
	if _, _, err = describeRegex(&out, "a(b", nil); err == nil {
		t.Errorf("expected error for unbalanced parenthesis")
	}
}
