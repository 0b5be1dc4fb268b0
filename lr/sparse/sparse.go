/*
Package sparse stores parser tables (ACTION and GOTO) as sparse int32 matrices.

A cell holds a primary value and, optionally, a secondary one. Table builders
put the action they keep into the primary slot; when a second action competes
for the same cell, it goes to the secondary slot so that conflicts can be shown
next to the winning entry. Further values for a full cell are dropped.

Cells are stored as (row, column, cell) triplets, sorted by position and
searched with binary search.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package sparse

import (
	"fmt"
	"sort"
)

// DefaultNullValue is the default empty-value for matrices (min int32).
const DefaultNullValue = -2147483648

// IntMatrix is a sparse m x n matrix of int32 cells. Positions never written
// read as the matrix' null value, in both slots.
//
//     M := NewIntMatrix(4, 8, DefaultNullValue)
//     M.Add(1, 2, -1)           // primary value of (1,2)
//     M.Add(1, 2, 3)            // competing value, kept as secondary
//     a, b := M.Values(1, 2)    // -1, 3
//
type IntMatrix struct {
	entries []entry
	rows    int
	cols    int
	null    int32
}

type entry struct {
	row, col int
	cell     cell
}

// cell holds the value kept for a position plus the first competing one.
type cell struct {
	primary   int32
	secondary int32
}

func (c cell) String() string {
	return fmt.Sprintf("[%d,%d]", c.primary, c.secondary)
}

// NewIntMatrix creates an empty m x n matrix with null value null.
func NewIntMatrix(m, n int, null int32) *IntMatrix {
	return &IntMatrix{rows: m, cols: n, null: null}
}

// M returns the row count.
func (m *IntMatrix) M() int {
	return m.rows
}

// N returns the column count.
func (m *IntMatrix) N() int {
	return m.cols
}

// NullValue returns the value of empty slots.
func (m *IntMatrix) NullValue() int32 {
	return m.null
}

// ValueCount returns the number of occupied positions.
func (m *IntMatrix) ValueCount() int {
	return len(m.entries)
}

// Value returns the primary value at (i,j).
func (m *IntMatrix) Value(i, j int) int32 {
	a, _ := m.Values(i, j)
	return a
}

// Values returns primary and secondary value at (i,j).
func (m *IntMatrix) Values(i, j int) (int32, int32) {
	if k, found := m.search(i, j); found {
		return m.entries[k].cell.primary, m.entries[k].cell.secondary
	}
	return m.null, m.null
}

// Set replaces the cell at (i,j) with a single primary value.
func (m *IntMatrix) Set(i, j int, value int32) *IntMatrix {
	k := m.locate(i, j)
	m.entries[k].cell = cell{value, m.null}
	return m
}

// Add fills the first free slot of the cell at (i,j). A full cell is left
// unchanged.
func (m *IntMatrix) Add(i, j int, value int32) *IntMatrix {
	k := m.locate(i, j)
	c := &m.entries[k].cell
	switch {
	case c.primary == m.null:
		c.primary = value
	case c.secondary == m.null:
		c.secondary = value
	}
	return m
}

// search returns the index of the entry at (i,j) or the index to insert it at.
func (m *IntMatrix) search(i, j int) (int, bool) {
	k := sort.Search(len(m.entries), func(k int) bool {
		e := m.entries[k]
		return e.row > i || e.row == i && e.col >= j
	})
	return k, k < len(m.entries) && m.entries[k].row == i && m.entries[k].col == j
}

// locate returns the index of the entry at (i,j), inserting an empty one if
// necessary. Positions outside the matrix panic.
func (m *IntMatrix) locate(i, j int) int {
	if i < 0 || i >= m.rows || j < 0 || j >= m.cols {
		panic(fmt.Sprintf("sparse.IntMatrix: index (%d,%d) out of range %dx%d", i, j, m.rows, m.cols))
	}
	k, found := m.search(i, j)
	if !found {
		m.entries = append(m.entries, entry{})
		copy(m.entries[k+1:], m.entries[k:])
		m.entries[k] = entry{row: i, col: j, cell: cell{m.null, m.null}}
	}
	return k
}
