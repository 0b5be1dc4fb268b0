package lr1

import (
	"strings"

	"github.com/npillmayer/lrkit"
	"github.com/npillmayer/lrkit/lr"
)

// Node is a node of a parse tree. Leaf nodes stand for terminals and carry the
// lexeme of the token; interior nodes stand for non-terminals. Nodes for
// epsilon-productions have no children.
type Node struct {
	Symbol   lr.Symbol
	Children []*Node
	Lexeme   string
	Terminal bool
	Span     lrkit.Span
}

// Pretty returns an indented, multi-line representation of the tree rooted at
// n. Every line holds a symbol, terminals followed by their lexeme:
//
//    E
//      E
//        T
//          id:x
//      +:+
//      T
//        id:y
//
func (n *Node) Pretty() string {
	var b strings.Builder
	n.Walk(func(node *Node, depth int) {
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		b.WriteString(strings.Repeat("  ", depth))
		b.WriteString(node.Label())
	})
	return b.String()
}

// Label is the symbol of a node, followed by ':' and the lexeme for non-empty
// lexemes.
func (n *Node) Label() string {
	if n.Lexeme == "" {
		return string(n.Symbol)
	}
	return string(n.Symbol) + ":" + n.Lexeme
}

// Walk calls f for every node of the tree in pre-order, together with the
// depth of the node (the root having depth 0).
func (n *Node) Walk(f func(node *Node, depth int)) {
	n.walk(f, 0)
}

func (n *Node) walk(f func(*Node, int), depth int) {
	f(n, depth)
	for _, ch := range n.Children {
		ch.walk(f, depth+1)
	}
}

// String returns a compact bracketed form of the tree, e.g. E[E[T[id]] + T[id]].
func (n *Node) String() string {
	if len(n.Children) == 0 {
		return string(n.Symbol)
	}
	ch := make([]string, len(n.Children))
	for i, c := range n.Children {
		ch[i] = c.String()
	}
	return string(n.Symbol) + "[" + strings.Join(ch, " ") + "]"
}
