package earley

import (
	"github.com/cnf/structhash"
	"github.com/google/uuid"

	"github.com/npillmayer/morphrule"
	"github.com/npillmayer/morphrule/grammar"
)

// child is a tagged pointer recorded each time a state advances past one
// term of its production: a Leaf for SCAN, a Node (completed-state
// reference) for COMPLETE (§4.4 "Child pointers").
type child struct {
	isLeaf bool
	token  morphrule.Token
	node   *state
}

// state is an Earley item: a grammar rule, a chosen production, a dot
// position, an origin column, and the children accumulated so far for
// the terms already consumed (§4.4 "Representation").
type state struct {
	rule    *grammar.Rule
	prodIdx int
	dot     int
	start   int // origin column (the "j" in [A→α•β, j])
	stop    int // current column this state lives in
	children []child
}

func (s *state) production() grammar.Production {
	return s.rule.Productions[s.prodIdx]
}

func (s *state) isComplete() bool {
	return s.dot == len(s.production().Terms)
}

// nextTerm returns the term immediately after the dot, or false if the
// state is already complete.
func (s *state) nextTerm() (grammar.Term, bool) {
	terms := s.production().Terms
	if s.dot >= len(terms) {
		return grammar.Term{}, false
	}
	return terms[s.dot], true
}

// advance returns a copy of s with the dot moved one term forward and c
// appended to its children, stopping at column stop.
func (s *state) advance(c child, stop int) *state {
	children := make([]child, len(s.children)+1)
	copy(children, s.children)
	children[len(s.children)] = c
	return &state{
		rule:     s.rule,
		prodIdx:  s.prodIdx,
		dot:      s.dot + 1,
		start:    s.start,
		stop:     stop,
		children: children,
	}
}

// dedupKey computes the state's identity key (§4.4 "State deduplication"):
// (rule-id, production-id, dot, start, stop). Hashing only these flat
// scalars — never the Rule's Productions slice itself — is essential:
// a recursive grammar's Rule.Productions points back at the same Rule,
// and structhash would recurse forever over a cyclic struct.
func dedupKey(s *state) string {
	type key struct {
		Rule  string
		Prod  int
		Dot   int
		Start int
		Stop  int
	}
	h, err := structhash.Hash(key{
		Rule:  s.rule.ID().String(),
		Prod:  s.prodIdx,
		Dot:   s.dot,
		Start: s.start,
		Stop:  s.stop,
	}, 1)
	if err != nil {
		panic(err) // structhash only fails on unsupported types; key is flat and supported
	}
	return h
}

// column is one Earley set, C[i]: the states whose stop == i, held in
// append-only insertion order (so a single forward pass over a growing
// index sees states added during its own processing), deduplicated by
// dedupKey, and indexed by the identity of the rule each waiting state
// needs next (§4.4 "Waiting-parent index").
type column struct {
	states  []*state
	seen    map[string]bool
	waiting map[uuid.UUID][]*state
}

func newColumn() *column {
	return &column{
		seen:    make(map[string]bool),
		waiting: make(map[uuid.UUID][]*state),
	}
}

// add appends s to the column unless an equal-keyed state is already
// present, in which case it is a no-op and the earlier (leftmost
// inserted) state is kept — ties in ambiguous grammars resolve to the
// earliest derivation in chart insertion order, per the module's design
// notes on deterministic tree selection.
func (c *column) add(s *state) {
	key := dedupKey(s)
	if c.seen[key] {
		return
	}
	c.seen[key] = true
	c.states = append(c.states, s)
	if term, ok := s.nextTerm(); ok && !term.IsTerminal() {
		id := term.Rule().ID()
		c.waiting[id] = append(c.waiting[id], s)
	}
}
