/*
Package lr implements prerequisites for LR(1) parsing.

Building a Grammar

Grammars are either ingested from a GrammarSpec (start symbol, terminals,
non-terminals, productions and optional lexer rules), which is validated, or
specified using a grammar builder object. Clients add rules, consisting of
non-terminal symbols and terminals. Grammars may contain epsilon-productions.

Example:

    b := lr.NewGrammarBuilder("G")
    b.LHS("S").N("A").T("a").End()     // S  ->  A a
    b.LHS("A").N("B").N("D").End()     // A  ->  B D
    b.LHS("B").T("b").End()            // B  ->  b
    b.LHS("B").Epsilon()               // B  ->
    b.LHS("D").T("d").End()            // D  ->  d
    b.LHS("D").Epsilon()               // D  ->
    g, err := b.Grammar()

This results in the following trivial grammar:

   0: S → A a
   1: A → B D
   2: B → b
   3: B → ε
   4: D → d
   5: D → ε

Static Grammar Analysis

FIRST and FOLLOW sets are computed as least fixed points over all productions
simultaneously. They are cached within the grammar and invalidated whenever a
production is added.

    g.First("A")    // { b d ε }
    g.Follow("B")   // { a d }

Parser Construction

From the grammar, the canonical collection of LR(1) item sets is built. We call
it the characteristic finite state machine (CFSM). The grammar is augmented with
a fresh start symbol S' and a rule S' → S, which becomes rule number 0.
The CFSM will then be transformed into a GOTO table and an ACTION table for an
LR(1) parser. Conflicts are recorded, but never resolved silently: the first
action entered into the table wins.

    lrgen := lr.NewTableGenerator(g)
    tables := lrgen.CreateTables()
    for _, c := range tables.Conflicts() { … }

The CFSM will not be thrown away, but is made available to the client. This is
intended for debugging purposes. It can be exported to Graphviz's Dot-format.

Tables are immutable once created and may be shared between concurrent parsers.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package lr

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'lrkit.lr'.
func tracer() tracing.Trace {
	return tracing.Select("lrkit.lr")
}
