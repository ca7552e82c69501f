package earley

import (
	"github.com/npillmayer/morphrule"
	"github.com/npillmayer/morphrule/parsetree"
)

// Match is one accepted span of the root rule over an input token
// sequence (§4.4 "Match"), together with its reconstructed parse tree.
type Match struct {
	Tokens []morphrule.Token
	Start  int // start column, inclusive
	Stop   int // stop column, exclusive

	tree parsetree.Tree
}

// buildMatch converts a completed root-rule state into a Match,
// reconstructing its parse tree via buildTree.
func buildMatch(s *state, tokens []morphrule.Token) *Match {
	t := buildTree(s, tokens)
	return &Match{
		Tokens: tokens[s.start:s.stop],
		Start:  s.start,
		Stop:   s.stop,
		tree:   t,
	}
}

// Tree returns the match's reconstructed parse tree.
func (m *Match) Tree() parsetree.Tree {
	return m.tree
}

// Span returns the match's character-offset span (§4.5 "span(match) →
// (first_token.start, last_token.stop)"): the start of its first token
// through the end of its last, or (0, 0) for an empty match.
func (m *Match) Span() (start, stop int) {
	if len(m.Tokens) == 0 {
		return 0, 0
	}
	return m.Tokens[0].Span.From(), m.Tokens[len(m.Tokens)-1].Span.To()
}

// Text renders the match's matched tokens space-joined (§4.5's
// non-canonical textual rendering).
func (m *Match) Text() string {
	return m.tree.Text()
}

// Len reports the number of tokens the match spans.
func (m *Match) Len() int {
	return m.Stop - m.Start
}
