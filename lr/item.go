package lr

import (
	"bytes"
	"fmt"

	"github.com/cnf/structhash"
	"github.com/emirpasic/gods/sets/treeset"
	"github.com/emirpasic/gods/utils"
)

// === LR(1) items ===========================================================

// Item is an LR(1) item, i.e. a production with a dot marking parse progress,
// plus a lookahead terminal:
//
//    [A → α • β, a]
//
// Items are immutable values. Two items are identical iff their left hand sides,
// right hand sides, dot positions and lookaheads match.
type Item struct {
	prod *Production
	rhs  []Symbol // body of prod; empty for epsilon-productions
	dot  int
	la   Symbol
}

func newItem(p *Production, dot int, la Symbol) Item {
	return Item{prod: p, rhs: p.Body(), dot: dot, la: la}
}

// StartItem returns [S' → • S, $] for an augmented grammar.
func StartItem(g *Grammar) Item {
	return newItem(g.Production(0), 0, EndMarker)
}

// LHS returns the left hand side of the item's production.
func (i Item) LHS() Symbol {
	return i.prod.LHS
}

// RHS returns the right hand side. For epsilon-productions it is empty.
func (i Item) RHS() []Symbol {
	return i.rhs
}

// Dot returns the dot position, 0…len(RHS).
func (i Item) Dot() int {
	return i.dot
}

// Lookahead returns the lookahead terminal.
func (i Item) Lookahead() Symbol {
	return i.la
}

// Production returns the grammar rule of this item.
func (i Item) Production() *Production {
	return i.prod
}

// PeekSymbol returns the symbol after the dot, if any.
func (i Item) PeekSymbol() (Symbol, bool) {
	if i.dot < len(i.rhs) {
		return i.rhs[i.dot], true
	}
	return "", false
}

// Prefix returns the symbols before the dot.
func (i Item) Prefix() []Symbol {
	return i.rhs[:i.dot]
}

// Advance returns the item with the dot moved one symbol to the right.
func (i Item) Advance() Item {
	if i.IsComplete() {
		panic(fmt.Sprintf("cannot advance complete item %s", i))
	}
	return Item{prod: i.prod, rhs: i.rhs, dot: i.dot + 1, la: i.la}
}

// IsComplete is true if the dot is behind the last symbol.
func (i Item) IsComplete() bool {
	return i.dot == len(i.rhs)
}

func (i Item) String() string {
	var b bytes.Buffer
	b.WriteString("[")
	b.WriteString(string(i.LHS()))
	b.WriteString(" →")
	for k, A := range i.rhs {
		if k == i.dot {
			b.WriteString(" •")
		}
		b.WriteString(" ")
		b.WriteString(string(A))
	}
	if i.IsComplete() {
		b.WriteString(" •")
	}
	b.WriteString(", ")
	b.WriteString(string(i.la))
	b.WriteString("]")
	return b.String()
}

// key is a unique string for an item, used for indexing.
func (i Item) key() string {
	return fmt.Sprintf("%s\x00%s\x00%d\x00%s", i.LHS(), symString(i.rhs), i.dot, i.la)
}

// We need this for item sets. It orders items structurally.
func itemComparator(a, b interface{}) int {
	i1, i2 := a.(Item), b.(Item)
	if c := utils.StringComparator(string(i1.LHS()), string(i2.LHS())); c != 0 {
		return c
	}
	for k := 0; k < len(i1.rhs) && k < len(i2.rhs); k++ {
		if c := utils.StringComparator(string(i1.rhs[k]), string(i2.rhs[k])); c != 0 {
			return c
		}
	}
	if c := utils.IntComparator(len(i1.rhs), len(i2.rhs)); c != 0 {
		return c
	}
	if c := utils.IntComparator(i1.dot, i2.dot); c != 0 {
		return c
	}
	return utils.StringComparator(string(i1.la), string(i2.la))
}

// === Item sets =============================================================

// ItemSet is a set of LR(1) items, kept in structural order. Two item sets are
// equal iff they contain the same items.
type ItemSet struct {
	items *treeset.Set
}

// NewItemSet creates an item set.
func NewItemSet(items ...Item) *ItemSet {
	S := &ItemSet{items: treeset.NewWith(itemComparator)}
	for _, i := range items {
		S.items.Add(i)
	}
	return S
}

// Add adds an item. It returns false if the item has been present already.
func (S *ItemSet) Add(i Item) bool {
	if S.items.Contains(i) {
		return false
	}
	S.items.Add(i)
	return true
}

// Contains checks if an item is a member of S.
func (S *ItemSet) Contains(i Item) bool {
	return S.items.Contains(i)
}

// Size returns the number of items.
func (S *ItemSet) Size() int {
	return S.items.Size()
}

// Empty is true for empty item sets.
func (S *ItemSet) Empty() bool {
	return S.items.Empty()
}

// Items returns all items in structural order.
func (S *ItemSet) Items() []Item {
	vals := S.items.Values()
	items := make([]Item, len(vals))
	for k, x := range vals {
		items[k] = x.(Item)
	}
	return items
}

// Copy returns an independent copy of S.
func (S *ItemSet) Copy() *ItemSet {
	C := NewItemSet()
	C.items.Add(S.items.Values()...)
	return C
}

// Equals is true if S and other contain the same items.
func (S *ItemSet) Equals(other *ItemSet) bool {
	if S.Size() != other.Size() {
		return false
	}
	it1, it2 := S.items.Iterator(), other.items.Iterator()
	for it1.Next() && it2.Next() {
		if itemComparator(it1.Value(), it2.Value()) != 0 {
			return false
		}
	}
	return true
}

// SymbolsAfterDot returns all symbols directly following a dot, excluding ε.
func (S *ItemSet) SymbolsAfterDot() []Symbol {
	syms := NewSymbolSet()
	for _, i := range S.Items() {
		if A, ok := i.PeekSymbol(); ok && A != Epsilon {
			syms.Add(A)
		}
	}
	return syms.Values()
}

// itemSignature is the hashable form of an item.
type itemSignature struct {
	LHS string
	RHS []string
	Dot int
	LA  string
}

// Hash returns a structural hash of the item set's contents. Equal item sets have
// equal hashes.
func (S *ItemSet) Hash() string {
	sig := make([]itemSignature, 0, S.Size())
	for _, i := range S.Items() {
		rhs := make([]string, len(i.rhs))
		for k, A := range i.rhs {
			rhs[k] = string(A)
		}
		sig = append(sig, itemSignature{LHS: string(i.LHS()), RHS: rhs, Dot: i.dot, LA: string(i.la)})
	}
	h, err := structhash.Hash(sig, 1)
	if err != nil {
		panic(fmt.Sprintf("cannot hash item set: %v", err))
	}
	return h
}

func (S *ItemSet) String() string {
	var b bytes.Buffer
	b.WriteString("{")
	first := true
	for _, i := range S.Items() {
		if first {
			b.WriteString(" ")
			first = false
		} else {
			b.WriteString(", ")
		}
		b.WriteString(i.String())
	}
	b.WriteString(" }")
	return b.String()
}

// Dump is a debugging helper
func (S *ItemSet) Dump() {
	for _, i := range S.Items() {
		tracer().Debugf("    %s", i)
	}
}
