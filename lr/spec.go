package lr

// LexRule is a token rule for scanners: a terminal, a regular expression for its
// lexemes, and a flag telling scanners to drop the tokens matched by the rule
// (e.g., for whitespace or comments).
type LexRule struct {
	Terminal string
	Pattern  string
	Skip     bool
}

// ProductionSpec lists all alternatives for a left hand side. An empty
// alternative denotes an epsilon-production.
type ProductionSpec struct {
	LHS          string
	Alternatives [][]string
}

// GrammarSpec is an unvalidated description of a grammar, as it may be produced
// by a grammar file reader or received from a client.
type GrammarSpec struct {
	Name         string
	Start        string
	Terminals    []string
	NonTerminals []string
	Productions  []ProductionSpec
	LexRules     []LexRule
}

// Grammar validates the spec and creates a grammar from it. Validation fails for
// references to unknown symbols, for a start symbol which is not a non-terminal,
// and for lexer rules producing undeclared terminals. Lexer rules flagged as skip
// may use arbitrary names.
func (spec *GrammarSpec) Grammar() (*Grammar, error) {
	g, err := NewGrammar(spec.Name, Symbol(spec.Start), symbols(spec.Terminals), symbols(spec.NonTerminals))
	if err != nil {
		return nil, err
	}
	for _, p := range spec.Productions {
		for _, alt := range p.Alternatives {
			if _, err := g.AddProduction(Symbol(p.LHS), symbols(alt)...); err != nil {
				return nil, err
			}
		}
	}
	for _, rule := range spec.LexRules {
		if !rule.Skip && !g.IsTerminal(Symbol(rule.Terminal)) {
			return nil, grammarError(Symbol(rule.Terminal), ErrUndeclaredLexeme)
		}
	}
	g.LexRules = spec.LexRules
	tracer().Infof("grammar %q: %d terminals, %d non-terminals, %d productions",
		g.Name, g.terminals.Size(), g.nonterminals.Size(), g.Size())
	return g, nil
}

func symbols(names []string) []Symbol {
	syms := make([]Symbol, len(names))
	for i, s := range names {
		syms[i] = Symbol(s)
	}
	return syms
}
