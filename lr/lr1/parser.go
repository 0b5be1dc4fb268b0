package lr1

import (
	"fmt"
	"strings"

	"github.com/npillmayer/lrkit"
	"github.com/npillmayer/lrkit/lr"
	"github.com/npillmayer/lrkit/lr/scanner"
)

// Parser is an LR(1)-parser type. Create and initialize one with lr1.NewParser(...)
//
// A parser holds the stacks of a single parse and must not be shared between
// goroutines. The tables, however, are read-only and may be shared by any
// number of parsers.
type Parser struct {
	tables    *lr.Tables
	stack     []stackitem // parser stack
	nodes     []*Node     // node stack, used if buildTree is set
	buildTree bool
	root      *Node
	scanErr   error
}

// We store pairs of state-IDs and symbols on the parse stack.
type stackitem struct {
	stateID int        // ID of a CFSM state
	sym     lr.Symbol  // grammar symbol (terminal or non-terminal)
	span    lrkit.Span // input span over which this symbol reaches
}

// Option configures a parser.
type Option func(p *Parser)

// GenerateTree lets the parser build a parse tree. Retrieve it with Tree()
// after a successful parse.
func GenerateTree(b bool) Option {
	return func(p *Parser) {
		p.buildTree = b
	}
}

// NewParser creates an LR(1) parser.
func NewParser(tables *lr.Tables, opts ...Option) *Parser {
	parser := &Parser{
		tables: tables,
		stack:  make([]stackitem, 0, 512),
	}
	for _, opt := range opts {
		opt(parser)
	}
	return parser
}

// ParseError is an error for an unexpected token. It carries the token, its
// position within the token stream, the parser state and the terminals which
// would have been acceptable in this state.
type ParseError struct {
	Token    string      // token type
	Lexeme   string      // token text
	Position int         // index of the token in the input token stream
	Span     lrkit.Span  // input span of the token
	State    int         // parser state
	Expected []lr.Symbol // sorted terminals with an action in State
}

func (e *ParseError) Error() string {
	exp := make([]string, len(e.Expected))
	for i, a := range e.Expected {
		exp[i] = string(a)
	}
	return fmt.Sprintf("syntax error: unexpected token '%s' at position %d; expected one of [%s]",
		e.Token, e.Position, strings.Join(exp, " "))
}

// Tree returns the parse tree of the last successful parse, or nil if tree
// building is switched off.
func (p *Parser) Tree() *Node {
	return p.root
}

// Parse startes a new parse, given a scanner tokenizing the input.
// The parser must have been initialized. Parsing starts in state 0 and stops at
// the first unexpected token; there is no error recovery.
//
// The parser returns true if the input string has been accepted.
func (p *Parser) Parse(scan scanner.Tokenizer) (bool, error) {
	tracer().Debugf("~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~")
	if p.tables == nil {
		tracer().Errorf("LR(1)-parser not initialized")
		return false, fmt.Errorf("LR(1)-parser not initialized")
	}
	p.stack = append(p.stack[:0], stackitem{0, "", lrkit.Span{}}) // push S0
	p.nodes = p.nodes[:0]
	p.root = nil
	p.scanErr = nil
	scan.SetErrorHandler(func(e error) {
		if p.scanErr == nil {
			p.scanErr = e
		}
	})
	token := scan.NextToken()
	pos := 0
	for {
		if p.scanErr != nil {
			return false, p.scanErr
		}
		tokval := lr.Symbol(token.TokType())
		tracer().Debugf("got token %q/%s from scanner", token.Lexeme(), tokval)
		state := p.stack[len(p.stack)-1] // TOS
		action, ok := p.tables.Action(state.stateID, tokval)
		if !ok {
			err := &ParseError{
				Token:    string(tokval),
				Lexeme:   token.Lexeme(),
				Position: pos,
				Span:     token.Span(),
				State:    state.stateID,
				Expected: p.tables.Expected(state.stateID),
			}
			tracer().Infof(err.Error())
			return false, err
		}
		tracer().Debugf("action(%d,%s)=%s", state.stateID, tokval, action)
		switch a := action.(type) {
		case lr.Accept:
			if p.buildTree && len(p.nodes) > 0 {
				p.root = p.nodes[0]
			}
			return true, nil
		case lr.Shift:
			tracer().Debugf("shifting, next state = %d", a.State)
			p.stack = append(p.stack, // push a terminal state onto stack
				stackitem{a.State, tokval, token.Span()})
			if p.buildTree {
				p.nodes = append(p.nodes, &Node{
					Symbol:   tokval,
					Lexeme:   token.Lexeme(),
					Terminal: true,
					Span:     token.Span(),
				})
			}
			token = scan.NextToken()
			pos++
		case lr.Reduce:
			nextstate, handlespan := p.reduce(a.Production)
			if handlespan.IsNull() { // resulted from an epsilon production
				at := token.Span().From() // epsilon was just before lookahead
				handlespan = lrkit.Span{at, at}
			}
			tracer().Debugf("reduced to next state = %d", nextstate)
			p.stack = append(p.stack, // push a non-terminal state onto stack
				stackitem{nextstate, a.Production.LHS, handlespan})
			if p.buildTree {
				p.nodes[len(p.nodes)-1].Span = handlespan
			}
		default:
			panic(fmt.Sprintf("unknown action type %T", action))
		}
	}
}

// reduce performs a reduce action for a rule
//
//    LHS --> X1 ... Xn   (with X being terminals or non-terminals)
//
// Symbols X1 to Xn should be represented on the stack as states
//
//    [TOS]  Sn(Xn, span_n) ... S1(X1, span1)  ...
//
// For epsilon-productions n = 0. A missing GOTO entry after popping the handle
// means the tables are corrupt; reduce panics in this case.
func (p *Parser) reduce(rule *lr.Production) (int, lrkit.Span) {
	tracer().Infof("reduce %v", rule)
	handle := rule.Body()
	k := len(handle)
	var handlespan lrkit.Span
	for i := k - 1; i >= 0; i-- {
		tos := p.stack[len(p.stack)-1]
		if tos.sym != handle[i] {
			tracer().Errorf("Expected %v on top of stack, got %s", handle[i], tos.sym)
		}
		handlespan = handlespan.Extend(tos.span)
		p.stack = p.stack[:len(p.stack)-1] // pop TOS
	}
	if p.buildTree {
		children := make([]*Node, k)
		copy(children, p.nodes[len(p.nodes)-k:])
		p.nodes = p.nodes[:len(p.nodes)-k]
		p.nodes = append(p.nodes, &Node{Symbol: rule.LHS, Children: children})
	}
	state := p.stack[len(p.stack)-1] // TOS
	nextstate, ok := p.tables.Goto(state.stateID, rule.LHS)
	if !ok {
		panic(fmt.Sprintf("missing GOTO for state %d, lhs %s", state.stateID, rule.LHS))
	}
	return nextstate, handlespan
}
