/*
Package lr1 provides a canonical LR(1)-parser. Clients have to use the tools
of package lr to prepare the necessary parse tables. The LR(1) parser
utilizes these tables to create a right derivation for a given input,
provided through a scanner interface.

This parser is intended for small to moderate grammars, e.g. for configuration
input, small domain-specific languages, or for teaching purposes. Canonical LR(1)
tables may get large for full-fledged programming languages.

Clients are able to construct the parse tables from a grammar and use the
parser directly, without a code-generation or compile step.

Usage

Clients construct a grammar, usually by using a grammar builder:

	b := lr.NewGrammarBuilder("Signed Variables Grammar")
	b.LHS("Var").N("Sign").T("a").End()  // Var  --> Sign a
	b.LHS("Sign").T("+").End()           // Sign --> +
	b.LHS("Sign").T("-").End()           // Sign --> -
	b.LHS("Sign").Epsilon()              // Sign -->
	g, err := b.Grammar()

This grammar is subjected to table generation.

	lrgen := lr.NewTableGenerator(g)
	tables := lrgen.CreateTables()
	if tables.HasConflicts() { ... }  // parser will use the first action

Finally parse some input:

	p := lr1.NewParser(tables, lr1.GenerateTree(true))
	accepted, err := p.Parse(scanner.Words("+ a"))
	root := p.Tree()

Parse errors are reported as *ParseError, containing the unexpected token and
the terminals which would have been acceptable.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package lr1

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'lrkit.lr'.
func tracer() tracing.Trace {
	return tracing.Select("lrkit.lr")
}
