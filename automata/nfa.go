package automata

import (
	"fmt"
	"sort"
	"strings"

	"github.com/emirpasic/gods/sets/treeset"
	"github.com/emirpasic/gods/stacks/arraystack"
	"github.com/npillmayer/lrkit"
)

// Epsilon is the label of empty transitions.
const Epsilon = lrkit.Epsilon

// NFA is a nondeterministic finite automaton. States are densely allocated
// integers, starting at 0. Transition labels are strings, either a concrete
// input symbol or Epsilon.
type NFA struct {
	Start  int                             // start state
	finals *treeset.Set                    // set of final states
	trans  map[int]map[string]*treeset.Set // state -> label -> set of states
	size   int                             // number of states allocated
}

// Transition is a single labelled edge of an automaton.
type Transition struct {
	From  int
	Label string
	To    int
}

func (t Transition) String() string {
	return fmt.Sprintf("%d --%s--> %d", t.From, t.Label, t.To)
}

// NewNFA creates an empty automaton. Clients add states with NewState and edges
// with AddTransition.
func NewNFA() *NFA {
	return &NFA{
		finals: treeset.NewWithIntComparator(),
		trans:  make(map[int]map[string]*treeset.Set),
	}
}

// NewState allocates a fresh state.
func (nfa *NFA) NewState() int {
	s := nfa.size
	nfa.size++
	return s
}

// SetStart sets the start state.
func (nfa *NFA) SetStart(s int) {
	nfa.reserve(s)
	nfa.Start = s
}

// AddFinal marks states as final.
func (nfa *NFA) AddFinal(states ...int) {
	for _, s := range states {
		nfa.reserve(s)
		nfa.finals.Add(s)
	}
}

// AddTransition adds an edge from --label--> to. States not yet allocated will be
// allocated implicitly.
func (nfa *NFA) AddTransition(from int, label string, to int) {
	nfa.reserve(from)
	nfa.reserve(to)
	m, ok := nfa.trans[from]
	if !ok {
		m = make(map[string]*treeset.Set)
		nfa.trans[from] = m
	}
	dest, ok := m[label]
	if !ok {
		dest = treeset.NewWithIntComparator()
		m[label] = dest
	}
	dest.Add(to)
}

func (nfa *NFA) reserve(s int) {
	if s < 0 {
		panic(fmt.Sprintf("automata: negative NFA state id %d", s))
	}
	if s >= nfa.size {
		nfa.size = s + 1
	}
}

// Size returns the number of states.
func (nfa *NFA) Size() int {
	return nfa.size
}

// States returns all states in increasing order.
func (nfa *NFA) States() []int {
	states := make([]int, nfa.size)
	for i := range states {
		states[i] = i
	}
	return states
}

// Finals returns the final states in increasing order.
func (nfa *NFA) Finals() []int {
	return intsOf(nfa.finals)
}

// IsFinal is true if s is a final state.
func (nfa *NFA) IsFinal(s int) bool {
	return nfa.finals.Contains(s)
}

// Targets returns the states reachable from state 'from' by an edge labelled label.
func (nfa *NFA) Targets(from int, label string) []int {
	if dest, ok := nfa.trans[from][label]; ok {
		return intsOf(dest)
	}
	return nil
}

// Alphabet returns the sorted set of all non-epsilon labels.
func (nfa *NFA) Alphabet() []string {
	labels := treeset.NewWithStringComparator()
	for _, m := range nfa.trans {
		for a := range m {
			if a != Epsilon {
				labels.Add(a)
			}
		}
	}
	alphabet := make([]string, 0, labels.Size())
	for _, a := range labels.Values() {
		alphabet = append(alphabet, a.(string))
	}
	return alphabet
}

// Transitions returns all edges, sorted by source state, label and target state.
func (nfa *NFA) Transitions() []Transition {
	var edges []Transition
	for from, m := range nfa.trans {
		for label, dest := range m {
			for _, to := range dest.Values() {
				edges = append(edges, Transition{From: from, Label: label, To: to.(int)})
			}
		}
	}
	sort.Slice(edges, func(i, j int) bool {
		a, b := edges[i], edges[j]
		if a.From != b.From {
			return a.From < b.From
		}
		if a.Label != b.Label {
			return a.Label < b.Label
		}
		return a.To < b.To
	})
	return edges
}

// EpsilonClosure returns all states reachable from the given states by epsilon
// edges only, including the states themselves. The result is sorted.
func (nfa *NFA) EpsilonClosure(states ...int) []int {
	seen := treeset.NewWithIntComparator()
	stack := arraystack.New()
	for _, s := range states {
		if !seen.Contains(s) {
			seen.Add(s)
			stack.Push(s)
		}
	}
	for !stack.Empty() {
		top, _ := stack.Pop()
		eps, ok := nfa.trans[top.(int)][Epsilon]
		if !ok {
			continue
		}
		for _, v := range eps.Values() {
			if !seen.Contains(v) {
				seen.Add(v)
				stack.Push(v)
			}
		}
	}
	return intsOf(seen)
}

// EpsilonClosures returns the epsilon closure of every single state.
func (nfa *NFA) EpsilonClosures() map[int][]int {
	closures := make(map[int][]int, nfa.size)
	for _, s := range nfa.States() {
		closures[s] = nfa.EpsilonClosure(s)
	}
	return closures
}

// move returns the union of all targets for label a, starting from states S.
func (nfa *NFA) move(S []int, a string) []int {
	dest := treeset.NewWithIntComparator()
	for _, u := range S {
		if t, ok := nfa.trans[u][a]; ok {
			dest.Add(t.Values()...)
		}
	}
	return intsOf(dest)
}

// Accepts simulates the automaton on an input string, with every rune being an
// input symbol.
func (nfa *NFA) Accepts(input string) bool {
	current := nfa.EpsilonClosure(nfa.Start)
	for _, r := range input {
		current = nfa.EpsilonClosure(nfa.move(current, string(r))...)
		if len(current) == 0 {
			return false
		}
	}
	for _, s := range current {
		if nfa.IsFinal(s) {
			return true
		}
	}
	return false
}

func (nfa *NFA) String() string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("NFA(start=%d, finals=%v)\n", nfa.Start, nfa.Finals()))
	for _, t := range nfa.Transitions() {
		b.WriteString("  ")
		b.WriteString(t.String())
		b.WriteString("\n")
	}
	return b.String()
}

// --- Helpers ----------------------------------------------------------

func intsOf(set *treeset.Set) []int {
	r := make([]int, 0, set.Size())
	for _, x := range set.Values() {
		r = append(r, x.(int))
	}
	return r
}

// subsetString encodes a sorted set of states as "{1,2,3}".
func subsetString(S []int) string {
	var b strings.Builder
	b.WriteByte('{')
	for i, s := range S {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(fmt.Sprintf("%d", s))
	}
	b.WriteByte('}')
	return b.String()
}
