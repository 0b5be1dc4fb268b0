package automata

import (
	"fmt"
	"io"
)

// ToGraphViz exports an NFA to the Graphviz Dot format.
func (nfa *NFA) ToGraphViz(w io.Writer) error {
	if _, err := io.WriteString(w, dotHeader); err != nil {
		return err
	}
	for _, s := range nfa.States() {
		fmt.Fprintf(w, "s%d [label=\"%d\" shape=%s]\n", s, s, shape(nfa.IsFinal(s)))
	}
	fmt.Fprintf(w, "start -> s%d\n", nfa.Start)
	for _, t := range nfa.Transitions() {
		fmt.Fprintf(w, "s%d -> s%d [label=%q]\n", t.From, t.To, t.Label)
	}
	_, err := io.WriteString(w, "}\n")
	return err
}

// ToGraphViz exports a DFA to the Graphviz Dot format. Nodes are labelled with
// their NFA member sets.
func (dfa *DFA) ToGraphViz(w io.Writer) error {
	if _, err := io.WriteString(w, dotHeader); err != nil {
		return err
	}
	for s := range dfa.States {
		fmt.Fprintf(w, "s%d [label=%q shape=%s]\n", s, dfa.StateName(s), shape(dfa.IsFinal(s)))
	}
	fmt.Fprintf(w, "start -> s%d\n", dfa.Start)
	for _, t := range dfa.Transitions() {
		fmt.Fprintf(w, "s%d -> s%d [label=%q]\n", t.From, t.To, t.Label)
	}
	_, err := io.WriteString(w, "}\n")
	return err
}

const dotHeader = `digraph {
graph [rankdir=LR, fontname=Helvetica, fontsize=10];
node [shape=circle, fontname=Helvetica, fontsize=10];
edge [fontname=Helvetica, fontsize=10];
start [shape=point];

`

func shape(final bool) string {
	if final {
		return "doublecircle"
	}
	return "circle"
}
