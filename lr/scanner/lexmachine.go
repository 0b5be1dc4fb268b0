package scanner

import (
	"fmt"

	"github.com/npillmayer/lrkit"
	"github.com/npillmayer/lrkit/lr"

	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"
)

// lexmachine adapter

// Lexer is a lexmachine-based lexer, created from the lexer rules of a grammar.
// The patterns use lexmachine's regular expression syntax.
//
// Every rule is compiled into a DFA of its own. At each input position the rules
// are tried in the order given, and the first rule matching there wins, taking
// its longest match. With rules [if: /if/, id: /[a-z]+/] the input "iffy" is
// split into if:if and id:fy.
//
// A Lexer is immutable after construction and may be shared between
// goroutines.
type Lexer struct {
	dfas  []*lexmachine.Lexer // one per rule, in rule order
	rules []lr.LexRule
}

// TokenizeError is an error for input which no lexer rule matches.
type TokenizeError struct {
	Offset  int    // byte offset of the unrecognized input
	Snippet string // up to 20 bytes of input, starting at Offset
}

func (e *TokenizeError) Error() string {
	return fmt.Sprintf("unrecognized input at offset %d: %q", e.Offset, e.Snippet)
}

const snippetLength = 20

func tokenizeError(input []byte, offset int) *TokenizeError {
	end := offset + snippetLength
	if end > len(input) {
		end = len(input)
	}
	return &TokenizeError{Offset: offset, Snippet: string(input[offset:end])}
}

// NewLexer creates a lexer from a list of lexer rules.
//
// NewLexer will return an error if compiling one of the DFAs failed.
func NewLexer(rules []lr.LexRule) (*Lexer, error) {
	if len(rules) == 0 {
		return nil, fmt.Errorf("no lexer rules")
	}
	lm := &Lexer{
		dfas:  make([]*lexmachine.Lexer, len(rules)),
		rules: rules,
	}
	for id, rule := range rules {
		dfa := lexmachine.NewLexer()
		dfa.Add([]byte(rule.Pattern), makeToken(id))
		if err := dfa.Compile(); err != nil {
			tracer().Errorf("Error compiling DFA for %s: %v", rule.Terminal, err)
			return nil, fmt.Errorf("lexer rule %s: %w", rule.Terminal, err)
		}
		lm.dfas[id] = dfa
	}
	tracer().Debugf("compiled lexer with %d rules", len(rules))
	return lm, nil
}

// makeToken is an action which wraps a scanned match into a token. Tokens of
// skip-rules are created as well; filtering happens downstream.
func makeToken(id int) lexmachine.Action {
	return func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
		return s.Token(id, string(m.Bytes), m), nil
	}
}

func (lm *Lexer) convert(tok *lexmachine.Token) DefaultToken {
	rule := lm.rules[tok.Type]
	from := uint64(tok.TC)
	return DefaultToken{
		kind:   rule.Terminal,
		lexeme: string(tok.Lexeme),
		span:   lrkit.Span{from, from + uint64(len(tok.Lexeme))},
		skip:   rule.Skip,
	}
}

// --- Cursor ----------------------------------------------------------------

// cursor walks over an input, holding one lexmachine scanner per rule. All
// scanners share the input; the cursor moves them to its position before
// asking for a match.
type cursor struct {
	lm       *Lexer
	text     []byte
	scanners []*lexmachine.Scanner
	pos      int
}

func (lm *Lexer) cursor(input string) (*cursor, error) {
	c := &cursor{
		lm:       lm,
		text:     []byte(input),
		scanners: make([]*lexmachine.Scanner, len(lm.dfas)),
	}
	for i, dfa := range lm.dfas {
		s, err := dfa.Scanner(c.text)
		if err != nil {
			return nil, err
		}
		c.scanners[i] = s
	}
	return c, nil
}

func (c *cursor) atEnd() bool {
	return c.pos >= len(c.text)
}

// next returns the token at the cursor position and moves past it. If no rule
// matches, next returns a *TokenizeError and leaves the position unchanged.
func (c *cursor) next() (DefaultToken, error) {
	for _, s := range c.scanners {
		s.TC = c.pos
		tok, err, eof := s.Next()
		if eof || err != nil {
			continue // this rule does not match here
		}
		lmtok := tok.(*lexmachine.Token)
		if len(lmtok.Lexeme) == 0 {
			continue
		}
		c.pos += len(lmtok.Lexeme)
		return c.lm.convert(lmtok), nil
	}
	return DefaultToken{}, tokenizeError(c.text, c.pos)
}

// skip moves the cursor one byte forward, past unrecognized input.
func (c *cursor) skip() {
	c.pos++
}

// --- Tokenizing ------------------------------------------------------------

// TokenizeAll scans the complete input, including the tokens of skip-rules.
// Concatenating the lexemes of the result reconstructs the input. Scanning
// stops at the first position no rule matches, with a *TokenizeError.
func (lm *Lexer) TokenizeAll(input string) ([]DefaultToken, error) {
	c, err := lm.cursor(input)
	if err != nil {
		return nil, err
	}
	tokens := make([]DefaultToken, 0, 16)
	for !c.atEnd() {
		t, err := c.next()
		if err != nil {
			return tokens, err
		}
		tokens = append(tokens, t)
	}
	return tokens, nil
}

// Tokenize scans the complete input and drops the tokens of skip-rules.
func (lm *Lexer) Tokenize(input string) ([]lrkit.Token, error) {
	all, err := lm.TokenizeAll(input)
	if err != nil {
		return nil, err
	}
	tokens := make([]lrkit.Token, 0, len(all))
	for _, t := range all {
		if !t.skip {
			tokens = append(tokens, t)
		}
	}
	tracer().Debugf("tokenized input into %d tokens", len(tokens))
	return tokens, nil
}

// Scanner creates a streaming scanner for a given input. The scanner will
// implement the Tokenizer interface.
func (lm *Lexer) Scanner(input string) (*LMScanner, error) {
	c, err := lm.cursor(input)
	if err != nil {
		return nil, err
	}
	return &LMScanner{cursor: c, Error: logError, end: uint64(len(input))}, nil
}

// LMScanner is a scanner type for lexmachine scanners, implementing the
// Tokenizer interface. Tokens of skip-rules are dropped.
type LMScanner struct {
	cursor *cursor
	Error  func(error)
	end    uint64
}

var _ Tokenizer = (*LMScanner)(nil)

// SetErrorHandler sets an error handler for the scanner.
func (lms *LMScanner) SetErrorHandler(h func(error)) {
	if h == nil {
		lms.Error = logError
		return
	}
	lms.Error = h
}

// NextToken is part of the Tokenizer interface.
//
// Unrecognized input is reported to the error handler as a *TokenizeError and
// skipped byte by byte.
func (lms *LMScanner) NextToken() lrkit.Token {
	for !lms.cursor.atEnd() {
		t, err := lms.cursor.next()
		if err != nil {
			lms.Error(err)
			lms.cursor.skip()
			continue
		}
		if t.skip {
			continue
		}
		tracer().Debugf("token %s at %v", t, t.span)
		return t
	}
	return MakeDefaultToken(EOF, "", lrkit.Span{lms.end, lms.end})
}
