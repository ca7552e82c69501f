/*
Package agreement implements the agreement-relation validator described
in §4.6: a small post-hoc filter over parse trees that checks
grammatical agreement (gender, number, case) between tokens tagged by
rules carrying a grammar.Relation.

It is deliberately decoupled from package earley — it only depends on
package parsetree (the tree shape) and package grammar (the Relation
type and Rule.Relation field) — so that package earley can call into it
for non-overlap resolution's "filter by agreement" step without a import
cycle.
*/
package agreement

import (
	"reflect"

	"github.com/emirpasic/gods/sets/treeset"
	"github.com/emirpasic/gods/utils"

	"github.com/npillmayer/morphrule"
	"github.com/npillmayer/morphrule/grammar"
	"github.com/npillmayer/morphrule/parsetree"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'morphrule.agreement'.
func tracer() tracing.Trace {
	return tracing.Select("morphrule.agreement")
}

// --- grammeme sets, ordered for reproducible diagnostics ---------------

// Set is an ordered set of grammeme tags, for rendering a grammeme set
// in a deterministic order; the Relation
// functions below operate on the plain map[string]struct{} carried by
// morphrule.MorphForm, since that is what grammar.Relation's signature
// takes and what Token.Forms already stores.
type Set struct{ *treeset.Set }

// NewSet builds an ordered Set from a grammeme map.
func NewSet(grams map[string]struct{}) Set {
	s := treeset.NewWith(utils.StringComparator)
	for g := range grams {
		s.Add(g)
	}
	return Set{s}
}

// Strings returns the set's members in sorted order.
func (s Set) Strings() []string {
	items := s.Values()
	out := make([]string, len(items))
	for i, v := range items {
		out[i] = v.(string)
	}
	return out
}

// --- predefined agreement relations (§4.6) ------------------------------

func has(grams map[string]struct{}, tags ...string) bool {
	for _, t := range tags {
		if _, ok := grams[t]; ok {
			return true
		}
	}
	return false
}

func intersects(a, b map[string]struct{}, tags ...string) bool {
	for _, t := range tags {
		_, inA := a[t]
		_, inB := b[t]
		if inA && inB {
			return true
		}
	}
	return false
}

// Gender agrees iff either side is gender-fixed (GNdr), both sides are
// plural, both share one of masc/femn/neut, or one side is ms-f and the
// other is masc or femn.
func Gender(a, b map[string]struct{}) bool {
	if has(a, "GNdr") || has(b, "GNdr") {
		return true
	}
	if has(a, "plur") && has(b, "plur") {
		return true
	}
	if intersects(a, b, "masc", "femn", "neut") {
		return true
	}
	if has(a, "ms-f") && has(b, "masc", "femn") {
		return true
	}
	if has(b, "ms-f") && has(a, "masc", "femn") {
		return true
	}
	return false
}

// Number agrees iff both sides are singular (including singularia
// tantum) or both sides are plural (including pluralia tantum).
func Number(a, b map[string]struct{}) bool {
	aSing := has(a, "sing", "Sgtm")
	bSing := has(b, "sing", "Sgtm")
	aPlur := has(a, "plur", "Pltm")
	bPlur := has(b, "plur", "Pltm")
	return (aSing && bSing) || (aPlur && bPlur)
}

// caseTags enumerates every case grammeme that participates in Case's
// intersection test.
var caseTags = []string{"nomn", "gent", "datv", "accs", "ablt", "loct", "voct", "gen2", "acc2", "loc2"}

// Case agrees iff either side is case-fixed (Fixd) or the sides' case
// grammemes intersect.
func Case(a, b map[string]struct{}) bool {
	if has(a, "Fixd") || has(b, "Fixd") {
		return true
	}
	return intersects(a, b, caseTags...)
}

// GNC is the conjunction of Gender, Number, and Case.
func GNC(a, b map[string]struct{}) bool {
	return Gender(a, b) && Number(a, b) && Case(a, b)
}

// --- the validator (the tree walk proper) -------------------------------

// group pairs a relation function with every anchor token collected for
// it, across however many distinct rule nodes carry that same function.
type group struct {
	rel    grammar.Relation
	tokens []morphrule.Token
}

// Validate walks t collecting, for every rule node whose Rule.Relation
// is set, one anchor token per term of that node's own production — the
// anchor for a given term being the deepest leftmost leaf under that
// term's child subtree (§4.6). Anchors are grouped by the *relation
// function's* identity, not by the rule node that carries it: two
// distinct rule nodes sharing the same relation function (e.g. two
// sibling sub-rules each matched against gnc) land in one group, exactly
// as a single rule's several direct children do. For each group, the
// constraint holds iff for every ordered pair of distinct tokens in the
// group there exist forms fa∈a.Forms, fb∈b.Forms with
// relation(fa.Grams, fb.Grams) == true. Groups of size < 2 trivially
// succeed. Validate reports whether every group succeeds.
func Validate(t parsetree.Tree) bool {
	groups := collect(t)
	for _, g := range groups {
		if len(g.tokens) < 2 {
			continue
		}
		if !pairwiseAgrees(g.rel, g.tokens) {
			tracer().Debugf("agreement failed for relation over %d anchors", len(g.tokens))
			return false
		}
	}
	return true
}

// relKey identifies a Relation by its function pointer, so that two
// separately-built rules carrying "the same" relation (e.g. both
// constructed with agreement.GNC) are recognized as one relation for
// grouping purposes.
func relKey(rel grammar.Relation) uintptr {
	return reflect.ValueOf(rel).Pointer()
}

func collect(t parsetree.Tree) map[uintptr]*group {
	groups := make(map[uintptr]*group)
	t.Walk(func(n parsetree.Tree) {
		if n.IsLeaf || n.Rule == nil || n.Rule.Relation == nil {
			return
		}
		key := relKey(n.Rule.Relation)
		g, ok := groups[key]
		if !ok {
			g = &group{rel: n.Rule.Relation}
			groups[key] = g
		}
		for _, c := range n.Children {
			if tok, ok := c.FirstLeaf(); ok {
				g.tokens = append(g.tokens, tok)
			}
		}
	})
	return groups
}

func pairwiseAgrees(rel grammar.Relation, tokens []morphrule.Token) bool {
	for i, a := range tokens {
		for j, b := range tokens {
			if i == j {
				continue
			}
			if !existsAgreeingForms(rel, a, b) {
				return false
			}
		}
	}
	return true
}

func existsAgreeingForms(rel grammar.Relation, a, b morphrule.Token) bool {
	aForms := formsOrEmpty(a)
	bForms := formsOrEmpty(b)
	for _, fa := range aForms {
		for _, fb := range bForms {
			if rel(fa.Grams, fb.Grams) {
				return true
			}
		}
	}
	return false
}

// formsOrEmpty returns t.Forms, or a single zero-grammeme form if t has
// no morphological analysis — a word token without forms behaves as if
// it had no morphological information (§4.1), which for agreement means
// it never agrees with anything via a real grammeme match, but also
// never panics on an empty Forms slice.
func formsOrEmpty(t morphrule.Token) []morphrule.MorphForm {
	if len(t.Forms) == 0 {
		return []morphrule.MorphForm{{Grams: map[string]struct{}{}}}
	}
	return t.Forms
}
