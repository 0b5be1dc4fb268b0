package automata

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/emirpasic/gods/stacks/arraystack"
)

// Errors reported by Compile. Unbalanced parentheses and unsupported operators are
// syntax errors; ErrMalformedPattern flags a postfix sequence which cannot be
// reduced to exactly one automaton.
var (
	ErrUnbalancedParens    = errors.New("unbalanced parentheses")
	ErrUnsupportedOperator = errors.New("unsupported operator")
	ErrMalformedPattern    = errors.New("malformed pattern")
)

// PatternError describes a failed regex compilation.
type PatternError struct {
	Pattern string
	Pos     int // byte offset into Pattern, or -1
	Err     error
}

func (e *PatternError) Error() string {
	if e.Pos < 0 {
		return fmt.Sprintf("regex %q: %v", e.Pattern, e.Err)
	}
	return fmt.Sprintf("regex %q: %v at position %d", e.Pattern, e.Err, e.Pos)
}

func (e *PatternError) Unwrap() error {
	return e.Err
}

// IsSyntaxError is true for errors in the surface syntax of a pattern.
func (e *PatternError) IsSyntaxError() bool {
	return errors.Is(e.Err, ErrUnbalancedParens) || errors.Is(e.Err, ErrUnsupportedOperator)
}

// === Pattern tokens ========================================================

type tokKind int8

const (
	tokLiteral tokKind = iota
	tokLParen
	tokRParen
	tokConcat
	tokAlt
	tokStar
	tokPlus
	tokOpt
)

type retoken struct {
	kind tokKind
	sym  rune
	pos  int
}

func (t retoken) String() string {
	switch t.kind {
	case tokLiteral:
		return string(t.sym)
	case tokLParen:
		return "("
	case tokRParen:
		return ")"
	case tokConcat:
		return "."
	case tokAlt:
		return "|"
	case tokStar:
		return "*"
	case tokPlus:
		return "+"
	}
	return "?"
}

func (t retoken) isQuantifier() bool {
	return t.kind == tokStar || t.kind == tokPlus || t.kind == tokOpt
}

var precedence = map[tokKind]int{
	tokStar:   3,
	tokPlus:   3,
	tokOpt:    3,
	tokConcat: 2,
	tokAlt:    1,
}

func isSymbol(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}

// tokenize splits a pattern into tokens, dropping whitespace.
func tokenize(pattern string) ([]retoken, error) {
	var tokens []retoken
	for pos, r := range pattern {
		var t retoken
		switch {
		case unicode.IsSpace(r):
			continue
		case isSymbol(r):
			t = retoken{kind: tokLiteral, sym: r}
		case r == '(':
			t = retoken{kind: tokLParen}
		case r == ')':
			t = retoken{kind: tokRParen}
		case r == '|':
			t = retoken{kind: tokAlt}
		case r == '*':
			t = retoken{kind: tokStar}
		case r == '+':
			t = retoken{kind: tokPlus}
		case r == '?':
			t = retoken{kind: tokOpt}
		default:
			return nil, &PatternError{Pattern: pattern, Pos: pos, Err: fmt.Errorf("%w %q", ErrUnsupportedOperator, r)}
		}
		t.pos = pos
		tokens = append(tokens, t)
	}
	return tokens, nil
}

// insertConcat makes concatenation explicit: a literal, ')' or a quantifier,
// followed by a literal or '(', gets a concatenation operator in between.
func insertConcat(tokens []retoken) []retoken {
	out := make([]retoken, 0, 2*len(tokens))
	for i, t := range tokens {
		if i > 0 {
			prev := tokens[i-1]
			left := prev.kind == tokLiteral || prev.kind == tokRParen || prev.isQuantifier()
			right := t.kind == tokLiteral || t.kind == tokLParen
			if left && right {
				out = append(out, retoken{kind: tokConcat, pos: t.pos})
			}
		}
		out = append(out, t)
	}
	return out
}

// toPostfix converts infix tokens to postfix order (shunting-yard).
func toPostfix(pattern string, tokens []retoken) ([]retoken, error) {
	out := make([]retoken, 0, len(tokens))
	ops := arraystack.New()
	for _, t := range tokens {
		switch t.kind {
		case tokLiteral:
			out = append(out, t)
		case tokLParen:
			ops.Push(t)
		case tokRParen:
			matched := false
			for !ops.Empty() {
				top, _ := ops.Pop()
				if top.(retoken).kind == tokLParen {
					matched = true
					break
				}
				out = append(out, top.(retoken))
			}
			if !matched {
				return nil, &PatternError{Pattern: pattern, Pos: t.pos, Err: ErrUnbalancedParens}
			}
		default:
			for !ops.Empty() {
				x, _ := ops.Peek()
				top := x.(retoken)
				if top.kind == tokLParen {
					break
				}
				if precedence[top.kind] > precedence[t.kind] ||
					(precedence[top.kind] == precedence[t.kind] && !t.isQuantifier()) {
					ops.Pop()
					out = append(out, top)
					continue
				}
				break
			}
			ops.Push(t)
		}
	}
	for !ops.Empty() {
		x, _ := ops.Pop()
		top := x.(retoken)
		if top.kind == tokLParen {
			return nil, &PatternError{Pattern: pattern, Pos: top.pos, Err: ErrUnbalancedParens}
		}
		out = append(out, top)
	}
	return out, nil
}

// Postfix returns the postfix form of a pattern, with '.' denoting explicit
// concatenation. It is a diagnostic aid.
func Postfix(pattern string) (string, error) {
	tokens, err := tokenize(pattern)
	if err != nil {
		return "", err
	}
	post, err := toPostfix(pattern, insertConcat(tokens))
	if err != nil {
		return "", err
	}
	var b strings.Builder
	for _, t := range post {
		b.WriteString(t.String())
	}
	return b.String(), nil
}

// === Thompson's construction ===============================================

// fragment is a partially built automaton with a start state and a set of
// dangling final states.
type fragment struct {
	start  int
	finals []int
}

// Compile compiles a regular expression into an NFA.
func Compile(pattern string) (*NFA, error) {
	tokens, err := tokenize(pattern)
	if err != nil {
		return nil, err
	}
	post, err := toPostfix(pattern, insertConcat(tokens))
	if err != nil {
		return nil, err
	}
	tracer().Debugf("regex %q has postfix form %v", pattern, post)
	nfa := NewNFA()
	operands := arraystack.New()
	pop := func(t retoken) (fragment, error) {
		x, ok := operands.Pop()
		if !ok {
			return fragment{}, &PatternError{Pattern: pattern, Pos: t.pos,
				Err: fmt.Errorf("%w: missing operand for %q", ErrMalformedPattern, t.String())}
		}
		return x.(fragment), nil
	}
	for _, t := range post {
		switch t.kind {
		case tokLiteral:
			s, f := nfa.NewState(), nfa.NewState()
			nfa.AddTransition(s, string(t.sym), f) // literal 'ε' yields an epsilon edge
			operands.Push(fragment{start: s, finals: []int{f}})
		case tokConcat:
			b, err := pop(t)
			if err != nil {
				return nil, err
			}
			a, err := pop(t)
			if err != nil {
				return nil, err
			}
			for _, u := range a.finals {
				nfa.AddTransition(u, Epsilon, b.start)
			}
			operands.Push(fragment{start: a.start, finals: b.finals})
		case tokAlt:
			b, err := pop(t)
			if err != nil {
				return nil, err
			}
			a, err := pop(t)
			if err != nil {
				return nil, err
			}
			s, f := nfa.NewState(), nfa.NewState()
			nfa.AddTransition(s, Epsilon, a.start)
			nfa.AddTransition(s, Epsilon, b.start)
			for _, u := range a.finals {
				nfa.AddTransition(u, Epsilon, f)
			}
			for _, u := range b.finals {
				nfa.AddTransition(u, Epsilon, f)
			}
			operands.Push(fragment{start: s, finals: []int{f}})
		case tokStar, tokPlus, tokOpt:
			a, err := pop(t)
			if err != nil {
				return nil, err
			}
			s, f := nfa.NewState(), nfa.NewState()
			nfa.AddTransition(s, Epsilon, a.start)
			if t.kind != tokPlus { // zero occurences allowed
				nfa.AddTransition(s, Epsilon, f)
			}
			for _, u := range a.finals {
				if t.kind != tokOpt { // repetition
					nfa.AddTransition(u, Epsilon, a.start)
				}
				nfa.AddTransition(u, Epsilon, f)
			}
			operands.Push(fragment{start: s, finals: []int{f}})
		default:
			return nil, &PatternError{Pattern: pattern, Pos: t.pos,
				Err: fmt.Errorf("%w %q", ErrUnsupportedOperator, t.String())}
		}
	}
	if operands.Size() != 1 {
		return nil, &PatternError{Pattern: pattern, Pos: -1,
			Err: fmt.Errorf("%w: %d fragments left after construction", ErrMalformedPattern, operands.Size())}
	}
	x, _ := operands.Pop()
	frag := x.(fragment)
	nfa.SetStart(frag.start)
	nfa.AddFinal(frag.finals...)
	tracer().Infof("regex %q compiled to NFA with %d states", pattern, nfa.Size())
	return nfa, nil
}
