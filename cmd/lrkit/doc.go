/*
Command lrkit is a command line front end for the LR(1) toolkit.

	lrkit build grammar.txt --tables --conflicts --first-follow
	lrkit parse grammar.txt input.txt --tree
	lrkit regex 'a(b|c)*' a abc acccb b
	lrkit repl grammar.txt

Sub-command build constructs the canonical LR(1) collection and the parser
tables for a grammar file (see package grammarfile for the format). Sub-command
parse tokenizes an input file with the lexer rules of the grammar and parses it.
Grammars without lexer rules expect whitespace-separated terminal names as
input. Sub-command regex compiles a pattern to an NFA, determinizes it and
checks sample inputs. Sub-command repl parses lines entered interactively.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package main

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'lrkit.cli'
func tracer() tracing.Trace {
	return tracing.Select("lrkit.cli")
}
