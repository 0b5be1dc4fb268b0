package scanner

import (
	"errors"
	"strings"
	"testing"

	"github.com/npillmayer/lrkit"
	"github.com/npillmayer/lrkit/lr"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

var rules = []lr.LexRule{
	{Terminal: "if", Pattern: `if`},
	{Terminal: "id", Pattern: `[a-z]+`},
	{Terminal: "num", Pattern: `[0-9]+`},
	{Terminal: "+", Pattern: `\+`},
	{Terminal: "ws", Pattern: `( |\t|\n)+`, Skip: true},
}

var inputStrings = []string{
	"1",
	"x + 12",
	"if iff",
	"a+b+c ",
	"\tfoo\n",
}

var tokenCounts = []int{1, 3, 3, 5, 1}

func makeLexer(t *testing.T) *Lexer {
	lexer, err := NewLexer(rules)
	if err != nil {
		t.Fatal(err)
	}
	return lexer
}

func TestTokenize(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrkit.scanner")
	defer teardown()
	//
	lexer := makeLexer(t)
	for i, input := range inputStrings {
		t.Logf("------+-----------------+--------")
		tokens, err := lexer.Tokenize(input)
		if err != nil {
			t.Error(err)
		}
		for _, token := range tokens {
			t.Logf(" %4s | %15s | @%5d", token.TokType(), token.Lexeme(), token.Span().From())
		}
		if len(tokens) != tokenCounts[i] {
			t.Errorf("Expected token count for #%d to be %d, is %d", i, tokenCounts[i], len(tokens))
		}
	}
	t.Logf("------+-----------------+--------")
}

func TestFirstMatchingRule(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrkit.scanner")
	defer teardown()
	//
	tokens, err := makeLexer(t).Tokenize("if iff")
	if err != nil {
		t.Fatal(err)
	}
	if len(tokens) != 3 {
		t.Fatalf("expected 3 tokens for 'if iff', have %d", len(tokens))
	}
	if tokens[1].TokType() != "if" || tokens[2].TokType() != "id" || tokens[2].Lexeme() != "f" {
		t.Errorf("expected if:if id:f for 'iff', have %v %v", tokens[1], tokens[2])
	}
	if sp := tokens[2].Span(); sp != (lrkit.Span{5, 6}) {
		t.Errorf("expected span (5…6) for f, have %v", sp)
	}
}

func TestRuleOrderDecides(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrkit.scanner")
	defer teardown()
	//
	keywordFirst := []lr.LexRule{
		{Terminal: "if", Pattern: `if`},
		{Terminal: "id", Pattern: `[a-z]+`},
	}
	idFirst := []lr.LexRule{keywordFirst[1], keywordFirst[0]}
	for _, test := range []struct {
		rules    []lr.LexRule
		expected string
	}{
		{keywordFirst, "if:if id:fy"},
		{idFirst, "id:iffy"},
	} {
		lexer, err := NewLexer(test.rules)
		if err != nil {
			t.Fatal(err)
		}
		tokens, err := lexer.Tokenize("iffy")
		if err != nil {
			t.Fatal(err)
		}
		var have []string
		for _, token := range tokens {
			have = append(have, token.(DefaultToken).String())
		}
		if strings.Join(have, " ") != test.expected {
			t.Errorf("expected %s, have %v", test.expected, have)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrkit.scanner")
	defer teardown()
	//
	lexer := makeLexer(t)
	for _, input := range inputStrings {
		all, err := lexer.TokenizeAll(input)
		if err != nil {
			t.Fatal(err)
		}
		var b strings.Builder
		for _, token := range all {
			b.WriteString(token.Lexeme())
		}
		if b.String() != input {
			t.Errorf("round trip failed: %q != %q", b.String(), input)
		}
	}
}

func TestTokenizeError(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrkit.scanner")
	defer teardown()
	//
	_, err := makeLexer(t).Tokenize("x ? y")
	var terr *TokenizeError
	if !errors.As(err, &terr) {
		t.Fatalf("expected tokenize error, have %v", err)
	}
	if terr.Offset != 2 || terr.Snippet != "? y" {
		t.Errorf("expected error at offset 2 with snippet '? y', have %v", terr)
	}
}

func TestStreamingScanner(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrkit.scanner")
	defer teardown()
	//
	sc, err := makeLexer(t).Scanner("a ? b")
	if err != nil {
		t.Fatal(err)
	}
	var errs []error
	sc.SetErrorHandler(func(e error) { errs = append(errs, e) })
	var types []string
	for token := sc.NextToken(); token.TokType() != EOF; token = sc.NextToken() {
		types = append(types, token.TokType())
	}
	if strings.Join(types, " ") != "id id" {
		t.Errorf("expected tokens 'id id', have %v", types)
	}
	if len(errs) != 1 {
		t.Errorf("expected 1 error to be reported, have %v", errs)
	}
}

func TestWords(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrkit.scanner")
	defer teardown()
	//
	words := Words("id  + id")
	words.SetErrorHandler(func(e error) {
		t.Errorf("sequence tokenizer reported an error: %v", e)
	})
	expected := []string{"id", "+", "id", EOF, EOF}
	for i, typ := range expected {
		token := words.NextToken()
		if token.TokType() != typ {
			t.Errorf("expected token #%d to be %s, is %s", i, typ, token.TokType())
		}
	}
	tokens := []lrkit.Token{MakeDefaultToken("num", "42", lrkit.Span{0, 2})}
	typed := Types(tokens).NextToken()
	if typed.Lexeme() != "num" || typed.Span() != (lrkit.Span{0, 2}) {
		t.Errorf("expected lexeme to be replaced by type, have %v", typed)
	}
}
