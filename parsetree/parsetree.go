/*
Package parsetree defines the typed tree a completed Earley parse is
reconstructed into (§4.4 "Match assembly", §4.5 "tree(match)").

It is split out from package earley so that package agreement (§4.6) and
package interp (§4.7) can walk a parse tree without importing the parser
itself — both are, in the specification's words, "tightly coupled to the
parser's tree output" but not to the chart/recognizer machinery that
produces it.
*/
package parsetree

import (
	"strings"

	"github.com/npillmayer/morphrule"
	"github.com/npillmayer/morphrule/grammar"
)

// Tree is a node in a reconstructed parse tree: either a Leaf wrapping a
// matched Token, or a Node wrapping the rule that reduced a sequence of
// children. Exactly one of the two shapes is populated, selected by
// IsLeaf.
type Tree struct {
	IsLeaf   bool
	Token    morphrule.Token // valid iff IsLeaf
	Rule     *grammar.Rule   // valid iff !IsLeaf
	ProdIdx  int             // index into Rule.Productions of the production that reduced this node
	Span     morphrule.Span
	Children []Tree // valid iff !IsLeaf
}

// Leaf builds a leaf tree node wrapping a matched token.
func Leaf(t morphrule.Token) Tree {
	return Tree{IsLeaf: true, Token: t, Span: t.Span}
}

// Node builds an interior tree node for a rule reduction.
func Node(r *grammar.Rule, prodIdx int, span morphrule.Span, children []Tree) Tree {
	return Tree{Rule: r, ProdIdx: prodIdx, Span: span, Children: children}
}

// Leaves returns every leaf token under t, in left-to-right order.
func (t Tree) Leaves() []morphrule.Token {
	if t.IsLeaf {
		return []morphrule.Token{t.Token}
	}
	var out []morphrule.Token
	for _, c := range t.Children {
		out = append(out, c.Leaves()...)
	}
	return out
}

// FirstLeaf returns the deepest leftmost leaf under t, or the zero Token
// if t has no descendants (an empty/epsilon node). This is the "anchor
// token" construction §4.6's agreement validator applies to each direct
// child of a relation-bearing node.
func (t Tree) FirstLeaf() (morphrule.Token, bool) {
	if t.IsLeaf {
		return t.Token, true
	}
	for _, c := range t.Children {
		if tok, ok := c.FirstLeaf(); ok {
			return tok, true
		}
	}
	return morphrule.Token{}, false
}

// Text renders t as the space-joined values of its leaf tokens — the
// non-canonical rendering described by §4.5 ("text(match)... callers
// that need faithful spans use the input's character range").
func (t Tree) Text() string {
	leaves := t.Leaves()
	parts := make([]string, len(leaves))
	for i, tok := range leaves {
		parts[i] = tok.Value
	}
	return strings.Join(parts, " ")
}

// Walk calls visit for every node in t, pre-order (a node before its
// children).
func (t Tree) Walk(visit func(Tree)) {
	visit(t)
	for _, c := range t.Children {
		c.Walk(visit)
	}
}

// MainChild returns the term marked as a production's head (§3
// "Production... main: index"). Package agreement does not use it: it
// takes an anchor from every child (see FirstLeaf). It returns false if
// t is a leaf or has no children (e.g. an epsilon reduction).
func (t Tree) MainChild() (Tree, bool) {
	if t.IsLeaf || len(t.Children) == 0 {
		return Tree{}, false
	}
	main := 0
	if t.Rule != nil && t.ProdIdx >= 0 && t.ProdIdx < len(t.Rule.Productions) {
		main = t.Rule.Productions[t.ProdIdx].Main
	}
	if main < 0 || main >= len(t.Children) {
		main = 0
	}
	return t.Children[main], true
}
