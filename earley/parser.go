/*
Package earley implements the Earley recognizer/parser: chart
construction with predict/scan/complete, nullable handling via explicit
epsilon productions, forest reconstruction via child pointers, and
non-overlap resolution (§4.4 of the specification this module
implements).

Unlike a textbook whole-string Earley recognizer (which seeds only
C[0]), this parser seeds the root rule's productions at every column, so
that FindAll can locate the rule's matches anywhere in the token stream
— the "findall" operation named throughout the spec's §6.3 is a
substring search, not a single full-input parse. This is the one
deliberate generalization over the classic algorithm gorgo's own Earley
parser implements (see DESIGN.md).
*/
package earley

import (
	"sort"

	"github.com/npillmayer/morphrule"
	"github.com/npillmayer/morphrule/agreement"
	"github.com/npillmayer/morphrule/grammar"
	"github.com/npillmayer/morphrule/parsetree"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'morphrule.earley'.
func tracer() tracing.Trace {
	return tracing.Select("morphrule.earley")
}

// Parser recognizes spans of a root rule over a token sequence. A
// Parser is stateless between calls to Find/FindAll/PartialMatches — it
// is safe to reuse across many independent token sequences (§5
// "Parallelism: a single parser instance is reentrant"), but a single
// call is sequential, not concurrent (§5 "Scheduling model").
type Parser struct {
	root *grammar.Rule
}

// NewParser creates a parser recognizing spans of root.
func NewParser(root *grammar.Rule) *Parser {
	return &Parser{root: root}
}

// chart builds the full column sequence for tokens, seeding the root
// rule's productions at every position.
func (p *Parser) chart(tokens []morphrule.Token) []*column {
	n := len(tokens)
	cols := make([]*column, n+1)
	for i := range cols {
		cols[i] = newColumn()
	}
	for i := 0; i <= n; i++ {
		p.seedRoot(cols[i], i)
		p.processColumn(cols, i, tokens)
	}
	return cols
}

func (p *Parser) seedRoot(col *column, at int) {
	for prodIdx := range p.root.Productions {
		col.add(&state{rule: p.root, prodIdx: prodIdx, dot: 0, start: at, stop: at})
	}
}

// processColumn runs the inner predict/scan/complete loop over col's
// states, a single forward pass over a growing index (§4.4
// "Processing": "iterate over its states (including those appended
// during processing — append-only, single forward pass)").
func (p *Parser) processColumn(cols []*column, i int, tokens []morphrule.Token) {
	col := cols[i]
	n := len(tokens)
	for idx := 0; idx < len(col.states); idx++ {
		s := col.states[idx]
		if s.isComplete() {
			p.complete(cols, i, s)
			continue
		}
		term, _ := s.nextTerm()
		if term.IsTerminal() {
			if i < n && term.Predicate().Test(tokens[i]) {
				p.scan(cols, i, s, tokens[i])
			}
			continue
		}
		p.predict(col, i, term.Rule())
	}
}

// predict: for [A→…•B…, j] in Si, add [B→•α, i] to Si for every
// production α of B.
func (p *Parser) predict(col *column, i int, B *grammar.Rule) {
	for prodIdx := range B.Productions {
		col.add(&state{rule: B, prodIdx: prodIdx, dot: 0, start: i, stop: i})
	}
}

// scan: if [A→…•a…, j] is in Si and predicate a matches token[i], add
// [A→…a•…, j] to Si+1.
func (p *Parser) scan(cols []*column, i int, s *state, tok morphrule.Token) {
	advanced := s.advance(child{isLeaf: true, token: tok}, i+1)
	cols[i+1].add(advanced)
}

// complete: if [A→…•, j] is in Si, add [B→…A•…, k] to Si for all items
// [B→…•A…, k] in Sj — looked up in O(1) via Sj's waiting-parent index,
// keyed by rule identity.
func (p *Parser) complete(cols []*column, i int, s *state) {
	origin := cols[s.start]
	waiting := origin.waiting[s.rule.ID()]
	for _, parent := range waiting {
		advanced := parent.advance(child{node: s}, i)
		cols[i].add(advanced)
	}
}

// --- Match collection ----------------------------------------------------

// Find returns the first (earliest-starting, then longest) match of the
// root rule in tokens, or false if there is none.
func (p *Parser) Find(tokens []morphrule.Token) (*Match, bool) {
	all := p.FindAll(tokens)
	if len(all) == 0 {
		return nil, false
	}
	return all[0], true
}

// FindAll returns every non-overlapping match of the root rule in
// tokens, filtered by agreement and sorted by start (§4.4 "Non-overlap
// resolution", §6.2).
func (p *Parser) FindAll(tokens []morphrule.Token) []*Match {
	cols := p.chart(tokens)
	candidates := p.collectCandidates(cols, tokens)
	return resolveOverlaps(candidates)
}

// collectCandidates gathers every completed root-rule state across all
// columns (§4.4 "Completed-state collection") and assembles each into a
// Match with its reconstructed tree (§4.4 "Match assembly").
func (p *Parser) collectCandidates(cols []*column, tokens []morphrule.Token) []*Match {
	var out []*Match
	for _, col := range cols {
		for _, s := range col.states {
			if s.rule != p.root || !s.isComplete() {
				continue
			}
			out = append(out, buildMatch(s, tokens))
		}
	}
	return out
}

// resolveOverlaps implements §4.4's non-overlap resolution: filter by
// agreement, sort by (start ASC, -(stop-start) ASC), then greedily
// accept matches that don't overlap a previously accepted one.
func resolveOverlaps(candidates []*Match) []*Match {
	kept := make([]*Match, 0, len(candidates))
	for _, m := range candidates {
		if agreement.Validate(m.Tree()) {
			kept = append(kept, m)
		}
	}
	sort.SliceStable(kept, func(i, j int) bool {
		if kept[i].Start != kept[j].Start {
			return kept[i].Start < kept[j].Start
		}
		li := kept[i].Stop - kept[i].Start
		lj := kept[j].Stop - kept[j].Start
		return li > lj // longest first
	})
	var accepted []*Match
	for _, m := range kept {
		overlaps := false
		for _, a := range accepted {
			if m.Start < a.Stop && a.Start < m.Stop {
				overlaps = true
				break
			}
		}
		if !overlaps {
			accepted = append(accepted, m)
		}
	}
	sort.SliceStable(accepted, func(i, j int) bool { return accepted[i].Start < accepted[j].Start })
	return accepted
}

// --- Partial matches (auxiliary, §4.4) -----------------------------------

// PartialMatch is a non-completed root-rule state, useful for
// autocomplete-style queries: how far into the root rule's grammar does
// the input at Start get before running out of tokens.
type PartialMatch struct {
	Rule  *grammar.Rule
	Start int
	Ratio float64 // dot / len(production.Terms)
}

// PartialMatches returns the non-completed states whose rule is the
// root rule, from the final column, ranked by completion ratio
// descending and deduplicated by rule name. It does not affect FindAll.
func (p *Parser) PartialMatches(tokens []morphrule.Token) []PartialMatch {
	cols := p.chart(tokens)
	last := cols[len(cols)-1]
	seenNames := make(map[string]bool)
	var out []PartialMatch
	for _, s := range last.states {
		if s.rule != p.root || s.isComplete() {
			continue
		}
		name := s.rule.Name
		if seenNames[name] {
			continue
		}
		total := len(s.production().Terms)
		ratio := 0.0
		if total > 0 {
			ratio = float64(s.dot) / float64(total)
		}
		out = append(out, PartialMatch{Rule: s.rule, Start: s.start, Ratio: ratio})
		seenNames[name] = true
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Ratio > out[j].Ratio })
	return out
}

// buildTree recursively converts a completed state into a parsetree.Tree,
// using the children recorded forward during scan/complete — no
// backward walk over the chart is needed, since by the time a completed
// state is used to complete a waiting parent, its own children list is
// already fully built (§4.4 "Child pointers").
func buildTree(s *state, tokens []morphrule.Token) parsetree.Tree {
	children := make([]parsetree.Tree, len(s.children))
	for i, c := range s.children {
		if c.isLeaf {
			children[i] = parsetree.Leaf(c.token)
		} else {
			children[i] = buildTree(c.node, tokens)
		}
	}
	span := morphrule.NewSpan(0, 0)
	if s.start != s.stop {
		span = morphrule.NewSpan(tokens[s.start].Span.From(), tokens[s.stop-1].Span.To())
	}
	return parsetree.Node(s.rule, s.prodIdx, span, children)
}
