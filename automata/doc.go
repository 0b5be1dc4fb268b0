/*
Package automata implements finite automata for lexical analysis.

A regular expression is compiled to a nondeterministic finite automaton (NFA)
using Thompson's construction. Patterns consist of literals (letters, digits and
underscore), grouping parentheses, alternation '|' and the postfix quantifiers
'*', '+' and '?'. Concatenation is implicit. Whitespace is ignored, and the
literal 'ε' stands for the empty string.

    nfa, err := automata.Compile("a(b|c)*")
    dfa := automata.Determinize(nfa)
    dfa.Accepts("abcc")   // true

Determinization follows the subset construction. Every DFA state is a set of NFA
states, identified by its sorted member list. Empty move-sets do not produce a DFA
state: such transitions are absent, and DFA.Next will report them as such.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package automata

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'lrkit.automata'.
func tracer() tracing.Trace {
	return tracing.Select("lrkit.automata")
}
