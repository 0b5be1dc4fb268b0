/*
Package lrkit is a compiler-construction toolbox.

It focusses on the classic table construction algorithms found in textbooks on
compiler construction, usable on-the-fly without a code-generation step. Package
structure is as follows:

■ automata: Package automata compiles regular expressions into NFAs (Thompson's
construction) and determinizes them (subset construction).

■ lr: Package lr implements grammars, FIRST/FOLLOW analysis, the canonical
LR(1) collection and ACTION/GOTO tables with conflict detection.

■ lr/lr1: Package lr1 provides a table-driven shift-reduce parser producing parse trees.

■ lr/scanner: Package scanner provides tokenizers for parsers of package lr1.

■ lr/grammarfile: Package grammarfile reads grammars from a simple sectioned text format.

The base package contains data types which are used throughout all the other packages.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package lrkit
