/*
Package scanner defines an interface for scanners to be used with parsers of package lr.

Two kinds of tokenizers are provided: (1) a lexmachine-based lexer, driven by the
lexer rules of a grammar (terminal name, regular expression, skip flag), and
(2) tokenizers replaying a pre-built token sequence, including one for bare
terminal names.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package scanner

import (
	"strings"

	"github.com/npillmayer/lrkit"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'lrkit.scanner'.
func tracer() tracing.Trace {
	return tracing.Select("lrkit.scanner")
}

// EOF is the token type signalling the end of input.
const EOF = lrkit.EOF

// Tokenizer is a scanner interface.
type Tokenizer interface {
	NextToken() lrkit.Token
	SetErrorHandler(func(error))
}

// Default error reporting function for scanners
func logError(e error) {
	tracer().Errorf("scanner error: " + e.Error())
}

// --- Default tokens --------------------------------------------------------

// DefaultToken is a very unsophisticated token type, used as default for the
// lexmachine scanner as well as for token sequences.
type DefaultToken struct {
	kind   string
	lexeme string
	span   lrkit.Span
	skip   bool
}

var _ lrkit.Token = DefaultToken{}

// MakeDefaultToken creates a token for a terminal.
func MakeDefaultToken(typ string, lexeme string, span lrkit.Span) DefaultToken {
	return DefaultToken{
		kind:   typ,
		lexeme: lexeme,
		span:   span,
	}
}

// TokType returns the terminal of the token.
func (t DefaultToken) TokType() string {
	return t.kind
}

// Lexeme returns the input text of the token.
func (t DefaultToken) Lexeme() string {
	return t.lexeme
}

// Span returns the byte positions of the token.
func (t DefaultToken) Span() lrkit.Span {
	return t.span
}

// Skipped is true for tokens matched by a lexer rule flagged as skip.
func (t DefaultToken) Skipped() bool {
	return t.skip
}

func (t DefaultToken) String() string {
	return t.kind + ":" + t.lexeme
}

// --- Token sequences -------------------------------------------------------

// SequenceTokenizer replays a sequence of tokens. After the last token it
// returns EOF tokens. Replaying cannot fail, so there are no errors to report.
type SequenceTokenizer struct {
	tokens []lrkit.Token
	pos    int
}

var _ Tokenizer = (*SequenceTokenizer)(nil)

// FromTokens creates a tokenizer for a sequence of tokens. A terminating EOF
// token is optional.
func FromTokens(tokens []lrkit.Token) *SequenceTokenizer {
	return &SequenceTokenizer{tokens: tokens}
}

// Words creates a tokenizer for whitespace-separated terminal names. Every word
// is a token with the word as token type and as lexeme.
//
//     Words("id + id")   // tokens (id,id) (+,+) (id,id)
//
func Words(input string) *SequenceTokenizer {
	tokens := make([]lrkit.Token, 0, 8)
	var pos uint64
	for _, w := range strings.Fields(input) {
		at := uint64(strings.Index(input[pos:], w)) + pos
		pos = at + uint64(len(w))
		tokens = append(tokens, MakeDefaultToken(w, w, lrkit.Span{at, pos}))
	}
	return FromTokens(tokens)
}

// Types returns a tokenizer which reduces tokens to their types, i.e. the
// lexeme of every token is replaced by its terminal name.
func Types(tokens []lrkit.Token) *SequenceTokenizer {
	typed := make([]lrkit.Token, len(tokens))
	for i, t := range tokens {
		typed[i] = MakeDefaultToken(t.TokType(), t.TokType(), t.Span())
	}
	return FromTokens(typed)
}

// SetErrorHandler is part of the Tokenizer interface. The handler is never
// called.
func (seq *SequenceTokenizer) SetErrorHandler(h func(error)) {}

// NextToken is part of the Tokenizer interface.
func (seq *SequenceTokenizer) NextToken() lrkit.Token {
	if seq.pos >= len(seq.tokens) {
		var end uint64
		if len(seq.tokens) > 0 {
			end = seq.tokens[len(seq.tokens)-1].Span().To()
		}
		return MakeDefaultToken(EOF, "", lrkit.Span{end, end})
	}
	t := seq.tokens[seq.pos]
	seq.pos++
	return t
}
