package lr

// === FIRST and FOLLOW sets =================================================

// Refer to "Crafting A Compiler" by Charles N. Fisher & Richard J. LeBlanc, Jr.
// Section 4.5 Calculating FIRST and FOLLOW sets.
//
// Both sets are computed as least fixed points, iterating over all productions
// until no set grows any more. This terminates for (mutually) recursive grammars,
// as sets are bounded by the number of terminals.

// First returns FIRST(X). For terminals this is {X}, FIRST(ε) is {ε}.
// The returned set is a copy and may be modified by the caller.
func (g *Grammar) First(X Symbol) *SymbolSet {
	return g.firstOf(X, g.firstSets()).Copy()
}

// FirstOfSequence returns FIRST(α) for a sequence of symbols. FIRST of the empty
// sequence is {ε}.
func (g *Grammar) FirstOfSequence(alpha []Symbol) *SymbolSet {
	return g.firstOfSeq(alpha, g.firstSets())
}

// Follow returns FOLLOW(A) for a non-terminal A. FOLLOW(start) always contains $.
// The returned set is a copy and may be modified by the caller.
func (g *Grammar) Follow(A Symbol) *SymbolSet {
	if F, ok := g.followSets()[A]; ok {
		return F.Copy()
	}
	return NewSymbolSet()
}

// Nullable is true if ε ∈ FIRST(A).
func (g *Grammar) Nullable(A Symbol) bool {
	return g.firstOf(A, g.firstSets()).Contains(Epsilon)
}

func (g *Grammar) firstOf(X Symbol, first map[Symbol]*SymbolSet) *SymbolSet {
	if X == Epsilon {
		return NewSymbolSet(Epsilon)
	}
	if F, ok := first[X]; ok {
		return F
	}
	return NewSymbolSet(X) // terminal
}

func (g *Grammar) firstOfSeq(alpha []Symbol, first map[Symbol]*SymbolSet) *SymbolSet {
	F := NewSymbolSet()
	for _, Y := range alpha {
		nullable := false
		for _, a := range g.firstOf(Y, first).Values() {
			if a == Epsilon {
				nullable = true
			} else {
				F.Add(a)
			}
		}
		if !nullable {
			return F
		}
	}
	F.Add(Epsilon)
	return F
}

func (g *Grammar) firstSets() map[Symbol]*SymbolSet {
	g.mx.Lock()
	defer g.mx.Unlock()
	if g.first == nil {
		g.first = g.computeFirst()
	}
	return g.first
}

func (g *Grammar) followSets() map[Symbol]*SymbolSet {
	first := g.firstSets()
	g.mx.Lock()
	defer g.mx.Unlock()
	if g.follow == nil {
		g.follow = g.computeFollow(first)
	}
	return g.follow
}

func (g *Grammar) computeFirst() map[Symbol]*SymbolSet {
	first := make(map[Symbol]*SymbolSet, g.nonterminals.Size())
	for _, A := range g.nonterminals.Values() {
		first[A] = NewSymbolSet()
	}
	passes := 0
	for changed := true; changed; passes++ {
		changed = false
		for _, p := range g.productions {
			if first[p.LHS].Union(g.firstOfSeq(p.RHS, first)) {
				changed = true
			}
		}
	}
	tracer().Debugf("FIRST sets of %q stable after %d passes", g.Name, passes)
	return first
}

func (g *Grammar) computeFollow(first map[Symbol]*SymbolSet) map[Symbol]*SymbolSet {
	follow := make(map[Symbol]*SymbolSet, g.nonterminals.Size())
	for _, A := range g.nonterminals.Values() {
		follow[A] = NewSymbolSet()
	}
	follow[g.start].Add(EndMarker)
	passes := 0
	for changed := true; changed; passes++ {
		changed = false
		for _, p := range g.productions {
			for i, B := range p.RHS {
				if !g.nonterminals.Contains(B) {
					continue
				}
				beta := g.firstOfSeq(p.RHS[i+1:], first)
				for _, a := range beta.Values() {
					if a != Epsilon && follow[B].Add(a) {
						changed = true
					}
				}
				if beta.Contains(Epsilon) && follow[B].Union(follow[p.LHS]) {
					changed = true
				}
			}
		}
	}
	tracer().Debugf("FOLLOW sets of %q stable after %d passes", g.Name, passes)
	return follow
}

// --- Derived views ---------------------------------------------------------

// SetRow is a row of a FIRST or FOLLOW table.
type SetRow struct {
	Symbol Symbol
	Set    []Symbol
}

// FirstTable lists FIRST(A) for every non-terminal A, in sorted order.
func (g *Grammar) FirstTable() []SetRow {
	first := g.firstSets()
	rows := make([]SetRow, 0, len(first))
	for _, A := range g.nonterminals.Values() {
		rows = append(rows, SetRow{Symbol: A, Set: first[A].Values()})
	}
	return rows
}

// FollowTable lists FOLLOW(A) for every non-terminal A, in sorted order.
func (g *Grammar) FollowTable() []SetRow {
	follow := g.followSets()
	rows := make([]SetRow, 0, len(follow))
	for _, A := range g.nonterminals.Values() {
		rows = append(rows, SetRow{Symbol: A, Set: follow[A].Values()})
	}
	return rows
}
