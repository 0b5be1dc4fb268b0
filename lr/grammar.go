package lr

import (
	"errors"
	"fmt"
	"strings"
	"sync"
)

// --- Productions -----------------------------------------------------------

// Production is a grammar rule LHS → RHS. An empty right hand side is stored as
// the single symbol Epsilon.
type Production struct {
	Serial int      // ordinal number of this production within its grammar
	LHS    Symbol   // left hand side, a non-terminal
	RHS    []Symbol // right hand side, never empty
}

// IsEpsilon is true for productions A → ε.
func (p *Production) IsEpsilon() bool {
	return len(p.RHS) == 1 && p.RHS[0] == Epsilon
}

// Body returns the right hand side as used for items: epsilon-productions have
// an empty body.
func (p *Production) Body() []Symbol {
	if p.IsEpsilon() {
		return nil
	}
	return p.RHS
}

func (p *Production) String() string {
	return fmt.Sprintf("%s → %s", p.LHS, symString(p.RHS))
}

func symString(syms []Symbol) string {
	s := make([]string, len(syms))
	for i, A := range syms {
		s[i] = string(A)
	}
	return strings.Join(s, " ")
}

// normalizeRHS drops epsilon symbols; an empty result becomes [ε].
func normalizeRHS(rhs []Symbol) []Symbol {
	r := make([]Symbol, 0, len(rhs))
	for _, A := range rhs {
		if A != Epsilon {
			r = append(r, A)
		}
	}
	if len(r) == 0 {
		return []Symbol{Epsilon}
	}
	return r
}

// === Grammar ===============================================================

// Grammar is a context-free grammar. Clients create grammars with NewGrammar,
// from a GrammarSpec, or with a GrammarBuilder.
//
// FIRST and FOLLOW sets are cached within a grammar; adding a production clears
// the caches.
type Grammar struct {
	Name         string
	LexRules     []LexRule // optional token rules for scanners
	start        Symbol
	terminals    *SymbolSet
	nonterminals *SymbolSet
	productions  []*Production
	byLHS        map[Symbol][]*Production
	augStart     Symbol // non-empty for augmented grammars
	mx           sync.Mutex
	first        map[Symbol]*SymbolSet // cache for FIRST sets of non-terminals
	follow       map[Symbol]*SymbolSet // cache for FOLLOW sets
}

// Errors for grammar validation. They are wrapped into GrammarErrors.
var (
	ErrUnknownSymbol    = errors.New("unknown symbol")
	ErrInvalidStart     = errors.New("start symbol is not a non-terminal")
	ErrNotNonTerminal   = errors.New("left hand side is not a non-terminal")
	ErrDuplicateSymbol  = errors.New("symbol declared as terminal and non-terminal")
	ErrReservedSymbol   = errors.New("reserved symbol")
	ErrUndeclaredLexeme = errors.New("lexer rule for undeclared terminal")
)

// GrammarError is a validation error, reported together with the offending symbol.
type GrammarError struct {
	Symbol Symbol
	Err    error
}

func (e *GrammarError) Error() string {
	return fmt.Sprintf("grammar error: %v: %q", e.Err, string(e.Symbol))
}

func (e *GrammarError) Unwrap() error {
	return e.Err
}

func grammarError(A Symbol, err error) *GrammarError {
	return &GrammarError{Symbol: A, Err: err}
}

// NewGrammar creates a grammar without productions. The end marker $ is always
// part of the terminals.
func NewGrammar(name string, start Symbol, terminals, nonterminals []Symbol) (*Grammar, error) {
	g := &Grammar{
		Name:         name,
		start:        start,
		terminals:    NewSymbolSet(EndMarker),
		nonterminals: NewSymbolSet(),
		byLHS:        make(map[Symbol][]*Production),
	}
	for _, A := range nonterminals {
		if A == Epsilon || A == EndMarker || A == "" {
			return nil, grammarError(A, ErrReservedSymbol)
		}
		g.nonterminals.Add(A)
	}
	for _, a := range terminals {
		if a == Epsilon || a == "" {
			return nil, grammarError(a, ErrReservedSymbol)
		}
		if g.nonterminals.Contains(a) {
			return nil, grammarError(a, ErrDuplicateSymbol)
		}
		g.terminals.Add(a)
	}
	if !g.nonterminals.Contains(start) {
		return nil, grammarError(start, ErrInvalidStart)
	}
	return g, nil
}

// AddProduction adds a rule lhs → rhs. An empty rhs denotes an epsilon-production.
// All symbols have to be declared.
func (g *Grammar) AddProduction(lhs Symbol, rhs ...Symbol) (*Production, error) {
	if !g.nonterminals.Contains(lhs) {
		return nil, grammarError(lhs, ErrNotNonTerminal)
	}
	for _, A := range rhs {
		if A != Epsilon && !g.terminals.Contains(A) && !g.nonterminals.Contains(A) {
			return nil, grammarError(A, ErrUnknownSymbol)
		}
	}
	return g.appendProduction(lhs, normalizeRHS(rhs)), nil
}

func (g *Grammar) appendProduction(lhs Symbol, rhs []Symbol) *Production {
	p := &Production{Serial: len(g.productions), LHS: lhs, RHS: rhs}
	g.productions = append(g.productions, p)
	g.byLHS[lhs] = append(g.byLHS[lhs], p)
	g.invalidate()
	return p
}

func (g *Grammar) invalidate() {
	g.mx.Lock()
	defer g.mx.Unlock()
	g.first = nil
	g.follow = nil
}

// Start returns the start symbol.
func (g *Grammar) Start() Symbol {
	return g.start
}

// IsTerminal is true if A is a terminal symbol (including $).
func (g *Grammar) IsTerminal(A Symbol) bool {
	return g.terminals.Contains(A)
}

// IsNonTerminal is true if A is a non-terminal symbol.
func (g *Grammar) IsNonTerminal(A Symbol) bool {
	return g.nonterminals.Contains(A)
}

// Terminals returns all terminals in sorted order, including $.
func (g *Grammar) Terminals() []Symbol {
	return g.terminals.Values()
}

// NonTerminals returns all non-terminals in sorted order.
func (g *Grammar) NonTerminals() []Symbol {
	return g.nonterminals.Values()
}

// Productions returns all productions in order of definition.
func (g *Grammar) Productions() []*Production {
	return g.productions
}

// Production returns production number n.
func (g *Grammar) Production(n int) *Production {
	if n < 0 || n >= len(g.productions) {
		return nil
	}
	return g.productions[n]
}

// ProductionsFor returns all productions with left hand side A.
func (g *Grammar) ProductionsFor(A Symbol) []*Production {
	return g.byLHS[A]
}

// Size returns the number of productions.
func (g *Grammar) Size() int {
	return len(g.productions)
}

// Augmented returns an augmented copy of g: a fresh start symbol S' is
// introduced (appending ticks until the name is unused), together with the
// production S' → S, which will be production number 0.
// If g is already augmented, g is returned.
func (g *Grammar) Augmented() *Grammar {
	if g.augStart != "" {
		return g
	}
	aug := g.start + "'"
	for g.terminals.Contains(aug) || g.nonterminals.Contains(aug) {
		aug += "'"
	}
	h := &Grammar{
		Name:         g.Name,
		LexRules:     g.LexRules,
		start:        aug,
		terminals:    g.terminals.Copy(),
		nonterminals: g.nonterminals.Copy(),
		byLHS:        make(map[Symbol][]*Production),
		augStart:     aug,
	}
	h.nonterminals.Add(aug)
	h.appendProduction(aug, []Symbol{g.start})
	for _, p := range g.productions {
		h.appendProduction(p.LHS, p.RHS)
	}
	tracer().Debugf("augmented grammar %q with start symbol %s", g.Name, aug)
	return h
}

// IsAugmented is true for grammars created by Augmented.
func (g *Grammar) IsAugmented() bool {
	return g.augStart != ""
}

// Dump is a debugging helper, listing all productions to the tracer.
func (g *Grammar) Dump() {
	tracer().Debugf("--- grammar %s --------------------------------------", g.Name)
	for _, p := range g.productions {
		tracer().Debugf("%3d: %s", p.Serial, p)
	}
	tracer().Debugf("-------------------------------------------------------")
}

func (g *Grammar) String() string {
	var b strings.Builder
	for _, p := range g.productions {
		b.WriteString(fmt.Sprintf("%3d: %s\n", p.Serial, p))
	}
	return b.String()
}

// === Grammar builder =======================================================

// GrammarBuilder is a builder type for grammars. Symbols are declared
// implicitly: a symbol used with N() or as a left hand side is a
// non-terminal, a symbol used with T() is a terminal. The first left hand side
// is the start symbol.
//
//    b := NewGrammarBuilder("G")
//    b.LHS("E").N("E").T("+").N("T").End()  // E → E + T
//    b.LHS("E").N("T").End()                // E → T
//    b.LHS("T").T("id").End()               // T → id
//    g, err := b.Grammar()
//
type GrammarBuilder struct {
	name     string
	rules    []*RuleBuilder
	terms    []Symbol
	nonterms []Symbol
}

// RuleBuilder builds a single production. Create one with GrammarBuilder.LHS.
type RuleBuilder struct {
	b   *GrammarBuilder
	lhs Symbol
	rhs []Symbol
}

// NewGrammarBuilder creates a builder for a named grammar.
func NewGrammarBuilder(name string) *GrammarBuilder {
	return &GrammarBuilder{name: name}
}

// LHS starts a new rule.
func (b *GrammarBuilder) LHS(s string) *RuleBuilder {
	b.nonterms = append(b.nonterms, Symbol(s))
	return &RuleBuilder{b: b, lhs: Symbol(s)}
}

// N appends a non-terminal to the right hand side.
func (rb *RuleBuilder) N(s string) *RuleBuilder {
	rb.b.nonterms = append(rb.b.nonterms, Symbol(s))
	rb.rhs = append(rb.rhs, Symbol(s))
	return rb
}

// T appends a terminal to the right hand side.
func (rb *RuleBuilder) T(s string) *RuleBuilder {
	rb.b.terms = append(rb.b.terms, Symbol(s))
	rb.rhs = append(rb.rhs, Symbol(s))
	return rb
}

// End finishes a rule.
func (rb *RuleBuilder) End() *GrammarBuilder {
	rb.b.rules = append(rb.b.rules, rb)
	return rb.b
}

// Epsilon finishes a rule with an empty right hand side.
func (rb *RuleBuilder) Epsilon() *GrammarBuilder {
	rb.rhs = nil
	return rb.End()
}

// Grammar validates the rules and creates the grammar.
func (b *GrammarBuilder) Grammar() (*Grammar, error) {
	if len(b.rules) == 0 {
		return nil, fmt.Errorf("grammar %q has no rules", b.name)
	}
	terms := NewSymbolSet(b.terms...)
	terms.Remove(EndMarker)
	g, err := NewGrammar(b.name, b.rules[0].lhs, terms.Values(), NewSymbolSet(b.nonterms...).Values())
	if err != nil {
		return nil, err
	}
	for _, rb := range b.rules {
		if _, err := g.AddProduction(rb.lhs, rb.rhs...); err != nil {
			return nil, err
		}
	}
	return g, nil
}
