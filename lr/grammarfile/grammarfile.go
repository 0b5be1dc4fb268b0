/*
Package grammarfile reads grammar descriptions from text.

Two formats are accepted. The sectioned format lists symbols, productions and
(optionally) lexer rules:

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

Alternatively, a file may consist of productions only. In this case the first
left hand side is the start symbol, all left hand sides are non-terminals and
all other symbols are terminals.

An empty alternative, or one of 'ε', 'eps' and 'epsilon', denotes an
epsilon-production. Lines starting with '#' are comments.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package grammarfile

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/npillmayer/lrkit/lr"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'lrkit.lr'.
func tracer() tracing.Trace {
	return tracing.Select("lrkit.lr")
}

// FormatError is an error for a malformed line of a grammar file.
type FormatError struct {
	Source string
	Line   int
	Text   string
	Msg    string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("%s:%d: %s: %q", e.Source, e.Line, e.Msg, e.Text)
}

var (
	sectionRE   = regexp.MustCompile(`^(START|NONTERMINALS|TERMINALS|PRODUCTIONS|LEXER):\s*(.*)$`)
	lexerLineRE = regexp.MustCompile(`^(.+?):\s*/(.+)/\s*(skip)?$`)
)

type line struct {
	no   int
	text string
}

type reader struct {
	source   string
	spec     *lr.GrammarSpec
	section  string
	sections int
	prods    []line
}

// Load reads a grammar file. The grammar is named after the file.
func Load(path string) (*lr.GrammarSpec, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return Parse(name, f)
}

// LoadGrammar reads and validates a grammar file.
func LoadGrammar(path string) (*lr.Grammar, error) {
	spec, err := Load(path)
	if err != nil {
		return nil, err
	}
	return spec.Grammar()
}

// ParseString reads a grammar description from a string.
func ParseString(name string, text string) (*lr.GrammarSpec, error) {
	return Parse(name, strings.NewReader(text))
}

// Parse reads a grammar description. The result is not validated; call
// Grammar() on it to create a grammar.
func Parse(name string, input io.Reader) (*lr.GrammarSpec, error) {
	r := &reader{
		source: name,
		spec:   &lr.GrammarSpec{Name: name},
	}
	sc := bufio.NewScanner(input)
	no := 0
	for sc.Scan() {
		no++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		if err := r.readLine(line{no, text}); err != nil {
			return nil, err
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if err := r.readProductions(); err != nil {
		return nil, err
	}
	if r.sections == 0 {
		r.inferSymbols()
	}
	tracer().Debugf("read grammar %q with %d productions", name, len(r.spec.Productions))
	return r.spec, nil
}

func (r *reader) errorf(l line, format string, args ...interface{}) error {
	return &FormatError{Source: r.source, Line: l.no, Text: l.text, Msg: fmt.Sprintf(format, args...)}
}

func (r *reader) readLine(l line) error {
	if m := sectionRE.FindStringSubmatch(l.text); m != nil {
		r.section = m[1]
		r.sections++
		rest := strings.TrimSpace(m[2])
		switch r.section {
		case "START":
			r.spec.Start = rest
		case "NONTERMINALS":
			r.spec.NonTerminals = append(r.spec.NonTerminals, strings.Fields(rest)...)
		case "TERMINALS":
			r.spec.Terminals = append(r.spec.Terminals, strings.Fields(rest)...)
		default:
			if rest != "" {
				return r.readLine(line{l.no, rest})
			}
		}
		return nil
	}
	switch r.section {
	case "":
		r.prods = append(r.prods, l) // bare productions
	case "PRODUCTIONS":
		r.prods = append(r.prods, l)
	case "LEXER":
		m := lexerLineRE.FindStringSubmatch(l.text)
		if m == nil {
			return r.errorf(l, "invalid lexer rule")
		}
		r.spec.LexRules = append(r.spec.LexRules, lr.LexRule{
			Terminal: stripQuotes(strings.TrimSpace(m[1])),
			Pattern:  m[2],
			Skip:     m[3] != "",
		})
	default:
		return r.errorf(l, "line outside of section")
	}
	return nil
}

// readProductions parses the collected production lines, keeping their order.
func (r *reader) readProductions() error {
	for _, l := range r.prods {
		lhs, rhs, ok := splitProduction(l.text)
		if !ok || lhs == "" || strings.ContainsAny(lhs, " \t") {
			return r.errorf(l, "invalid production")
		}
		p := lr.ProductionSpec{LHS: lhs}
		for _, alt := range strings.Split(rhs, "|") {
			p.Alternatives = append(p.Alternatives, alternative(alt))
		}
		r.spec.Productions = append(r.spec.Productions, p)
	}
	return nil
}

func splitProduction(text string) (string, string, bool) {
	for _, arrow := range []string{"->", "→", "::="} {
		if i := strings.Index(text, arrow); i >= 0 {
			return strings.TrimSpace(text[:i]), text[i+len(arrow):], true
		}
	}
	return "", "", false
}

func alternative(alt string) []string {
	alt = strings.TrimSpace(alt)
	if isEpsilon(alt) {
		return []string{}
	}
	return strings.Fields(alt)
}

func isEpsilon(s string) bool {
	switch strings.ToLower(s) {
	case "", "ε", "eps", "epsilon":
		return true
	}
	return false
}

// inferSymbols derives start symbol, non-terminals and terminals from bare
// productions.
func (r *reader) inferSymbols() {
	if len(r.spec.Productions) == 0 {
		return
	}
	r.spec.Start = r.spec.Productions[0].LHS
	nonterms := make(map[string]bool)
	for _, p := range r.spec.Productions {
		if !nonterms[p.LHS] {
			nonterms[p.LHS] = true
			r.spec.NonTerminals = append(r.spec.NonTerminals, p.LHS)
		}
	}
	seen := make(map[string]bool)
	for _, p := range r.spec.Productions {
		for _, alt := range p.Alternatives {
			for _, A := range alt {
				if !nonterms[A] && !seen[A] && A != string(lr.Epsilon) {
					seen[A] = true
					r.spec.Terminals = append(r.spec.Terminals, A)
				}
			}
		}
	}
}

func stripQuotes(s string) string {
	if len(s) >= 2 && (s[0] == '\'' && s[len(s)-1] == '\'' || s[0] == '"' && s[len(s)-1] == '"') {
		return s[1 : len(s)-1]
	}
	return s
}
