package automata

import (
	"fmt"
	"sort"
	"strings"

	"github.com/emirpasic/gods/lists/arraylist"
	"github.com/emirpasic/gods/sets/treeset"
)

// DFA is the result of a subset construction. Every state is a set of NFA states.
type DFA struct {
	States   [][]int  // member NFA states of each DFA state, sorted
	Alphabet []string // sorted input symbols
	Start    int      // index of the start state
	finals   *treeset.Set
	delta    map[dfaEdge]int
	subsets  []SubsetRow
}

type dfaEdge struct {
	from  int
	label string
}

// SubsetRow documents one step of the subset construction: the DFA state
// processed and, for every symbol of the alphabet, the destination member set.
// Empty destinations are written as "{}".
type SubsetRow struct {
	State   string
	Targets []string // aligned with DFA.Alphabet
}

// Determinize converts an NFA into a DFA using the subset construction.
// States are numbered in order of discovery, starting with the epsilon closure
// of the NFA's start state.
func Determinize(nfa *NFA) *DFA {
	dfa := &DFA{
		Alphabet: nfa.Alphabet(),
		finals:   treeset.NewWithIntComparator(),
		delta:    make(map[dfaEdge]int),
	}
	index := make(map[string]int) // subset key -> DFA state
	queue := arraylist.New()
	lookup := func(S []int) int {
		key := subsetString(S)
		if i, ok := index[key]; ok {
			return i
		}
		i := len(dfa.States)
		index[key] = i
		dfa.States = append(dfa.States, S)
		queue.Add(i)
		tracer().Debugf("new DFA state %d = %s", i, key)
		return i
	}
	dfa.Start = lookup(nfa.EpsilonClosure(nfa.Start))
	for !queue.Empty() {
		x, _ := queue.Get(0)
		queue.Remove(0)
		i := x.(int)
		S := dfa.States[i]
		row := SubsetRow{State: subsetString(S), Targets: make([]string, len(dfa.Alphabet))}
		for k, a := range dfa.Alphabet {
			U := nfa.EpsilonClosure(nfa.move(S, a)...)
			row.Targets[k] = subsetString(U)
			if len(U) == 0 {
				continue // no transition
			}
			dfa.delta[dfaEdge{i, a}] = lookup(U)
		}
		dfa.subsets = append(dfa.subsets, row)
	}
	for i, S := range dfa.States {
		for _, s := range S {
			if nfa.IsFinal(s) {
				dfa.finals.Add(i)
				break
			}
		}
	}
	tracer().Infof("subset construction: %d NFA states -> %d DFA states", nfa.Size(), len(dfa.States))
	return dfa
}

// Size returns the number of DFA states.
func (dfa *DFA) Size() int {
	return len(dfa.States)
}

// Next returns the successor of state s for input symbol a. If there is no
// transition, Next returns (-1, false).
func (dfa *DFA) Next(s int, a string) (int, bool) {
	if t, ok := dfa.delta[dfaEdge{s, a}]; ok {
		return t, true
	}
	return -1, false
}

// IsFinal is true if DFA state s contains a final NFA state.
func (dfa *DFA) IsFinal(s int) bool {
	return dfa.finals.Contains(s)
}

// Finals returns the final states in increasing order.
func (dfa *DFA) Finals() []int {
	return intsOf(dfa.finals)
}

// StateName returns the textual encoding of the member set of state s.
func (dfa *DFA) StateName(s int) string {
	return subsetString(dfa.States[s])
}

// Transitions returns all edges, sorted by source state and label.
func (dfa *DFA) Transitions() []Transition {
	edges := make([]Transition, 0, len(dfa.delta))
	for e, to := range dfa.delta {
		edges = append(edges, Transition{From: e.from, Label: e.label, To: to})
	}
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].From != edges[j].From {
			return edges[i].From < edges[j].From
		}
		return edges[i].Label < edges[j].Label
	})
	return edges
}

// SubsetTable returns the trace of the subset construction, one row per DFA
// state in order of processing.
func (dfa *DFA) SubsetTable() []SubsetRow {
	return dfa.subsets
}

// AcceptsSymbols runs the DFA on a sequence of input symbols.
func (dfa *DFA) AcceptsSymbols(input []string) bool {
	s := dfa.Start
	for _, a := range input {
		var ok bool
		if s, ok = dfa.Next(s, a); !ok {
			return false
		}
	}
	return dfa.IsFinal(s)
}

// Accepts runs the DFA on an input string, with every rune being an input symbol.
func (dfa *DFA) Accepts(input string) bool {
	symbols := make([]string, 0, len(input))
	for _, r := range input {
		symbols = append(symbols, string(r))
	}
	return dfa.AcceptsSymbols(symbols)
}

func (dfa *DFA) String() string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("DFA(start=%d, finals=%v)\n", dfa.Start, dfa.Finals()))
	for _, t := range dfa.Transitions() {
		b.WriteString(fmt.Sprintf("  %s --%s--> %s\n", dfa.StateName(t.From), t.Label, dfa.StateName(t.To)))
	}
	return b.String()
}
