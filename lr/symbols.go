package lr

import (
	"strings"

	"github.com/emirpasic/gods/sets/treeset"
	"github.com/emirpasic/gods/utils"
	"github.com/npillmayer/lrkit"
)

// Symbol is a grammar symbol, i.e. a terminal or a non-terminal. Symbols are
// compared by value.
type Symbol string

// Reserved symbols.
const (
	Epsilon   Symbol = lrkit.Epsilon // empty production
	EndMarker Symbol = lrkit.EOF     // end of input
)

func (A Symbol) String() string {
	return string(A)
}

// We need this for sets of symbols. It sorts symbols by name.
func symbolComparator(a, b interface{}) int {
	return utils.StringComparator(string(a.(Symbol)), string(b.(Symbol)))
}

// SymbolSet is an ordered set of symbols. Iteration order is always sorted by
// symbol name, making all computations on symbol sets deterministic.
type SymbolSet struct {
	set *treeset.Set
}

// NewSymbolSet creates a set containing syms.
func NewSymbolSet(syms ...Symbol) *SymbolSet {
	S := &SymbolSet{set: treeset.NewWith(symbolComparator)}
	S.Add(syms...)
	return S
}

// Add adds symbols to the set. It returns true if the set has grown.
func (S *SymbolSet) Add(syms ...Symbol) bool {
	grown := false
	for _, A := range syms {
		if !S.set.Contains(A) {
			S.set.Add(A)
			grown = true
		}
	}
	return grown
}

// Remove removes a symbol from the set.
func (S *SymbolSet) Remove(A Symbol) {
	S.set.Remove(A)
}

// Contains checks for membership of A.
func (S *SymbolSet) Contains(A Symbol) bool {
	return S.set.Contains(A)
}

// Size returns the number of symbols in S.
func (S *SymbolSet) Size() int {
	return S.set.Size()
}

// Empty is true for empty sets.
func (S *SymbolSet) Empty() bool {
	return S.set.Empty()
}

// Union adds all symbols of other to S. It returns true if S has grown.
func (S *SymbolSet) Union(other *SymbolSet) bool {
	grown := false
	for _, x := range other.set.Values() {
		if !S.set.Contains(x) {
			S.set.Add(x)
			grown = true
		}
	}
	return grown
}

// Copy returns an independent copy of S.
func (S *SymbolSet) Copy() *SymbolSet {
	C := NewSymbolSet()
	C.set.Add(S.set.Values()...)
	return C
}

// Values returns the symbols of S in sorted order.
func (S *SymbolSet) Values() []Symbol {
	syms := make([]Symbol, 0, S.set.Size())
	for _, x := range S.set.Values() {
		syms = append(syms, x.(Symbol))
	}
	return syms
}

// Equals is true if S and other contain the same symbols.
func (S *SymbolSet) Equals(other *SymbolSet) bool {
	if S.Size() != other.Size() {
		return false
	}
	for _, x := range other.set.Values() {
		if !S.set.Contains(x) {
			return false
		}
	}
	return true
}

func (S *SymbolSet) String() string {
	var b strings.Builder
	b.WriteString("{")
	for _, A := range S.Values() {
		b.WriteString(" ")
		b.WriteString(string(A))
	}
	b.WriteString(" }")
	return b.String()
}
