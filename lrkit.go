package lrkit

import "fmt"

// Reserved symbols shared by the automata and the LR packages.
const (
	Epsilon = "ε" // empty production / empty transition label
	EOF     = "$" // end-of-input marker
)

// --- A general purpose interface for tokens --------------------------------

// Token represents an input token. Tokens are usually produced by a scanner and
// reflect terminals in a language.
//
// An example would be a token for an identifier:
//
//    TokType = "id"        // terminal this token stands for
//    Lexeme  = "count"     // lexeme how it appeared in the input stream
//    Span    = 67…72       // occured from position 67 in the input stream
//
// The end of input is signalled by a token of type EOF.
type Token interface {
	TokType() string
	Lexeme() string
	Span() Span
}

// --- Spans ------------------------------------------------------------

// Span is a small type for capturing a length of input token run. A span denotes
// a start position and the position just behind the end.
type Span [2]uint64 // (x…y)

// From returns the start value of a span.
func (s Span) From() uint64 {
	return s[0]
}

// To returns the end value of a span.
func (s Span) To() uint64 {
	return s[1]
}

// Len returns the length of (x…y)
func (s Span) Len() uint64 {
	return s[1] - s[0]
}

func (s Span) IsNull() bool {
	return s == Span{}
}

// Extend returns the smallest span covering s and other. Null spans are neutral.
func (s Span) Extend(other Span) Span {
	if s.IsNull() {
		return other
	}
	if other.IsNull() {
		return s
	}
	if other[0] < s[0] {
		s[0] = other[0]
	}
	if other[1] > s[1] {
		s[1] = other[1]
	}
	return s
}

func (s Span) String() string {
	return fmt.Sprintf("(%d…%d)", s[0], s[1])
}
