/*
Package grammar implements the grammar algebra described in §4.3 of the
specification this module implements: a closed set of rule/production
constructors with well-defined composition semantics — optional, choice,
bounded/unbounded repetition, and forward references.

A Rule is a node, not a value: two *Rule pointers are the same rule iff
they are the same pointer (equality by identity, §3 "Invariants").
PREDICT and COMPLETE in package earley read a Rule's Productions field
directly. Define writes a forward reference's productions into the
placeholder Rule itself, so every Term holding the placeholder pointer
sees them. Optional and Or copy their arguments' productions when they
are called, so a copy taken from a placeholder before Define does not
see the later definition.

Following §9's "Cyclic rule references" guidance, identity is carried by
a small stable id (a uuid.UUID, minted once at construction) rather than
by pointer alone — this also gives the Earley recognizer a flat,
cycle-safe hash key component (§4.4 "State deduplication"): hashing a
*Rule directly would recurse into Productions, which for a recursive
grammar point back at the same Rule and would never terminate.
*/
package grammar

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/npillmayer/morphrule/predicate"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'morphrule.grammar'.
func tracer() tracing.Trace {
	return tracing.Select("morphrule.grammar")
}

// Unbounded marks a repeatable's upper bound as infinite (§4.3
// "repeatable(r, min, max)... max ≥ 1 or unbounded").
const Unbounded = -1

// Relation is a two-argument predicate over grammeme sets, used by
// agreement validation (§4.6). It lives here, not in package agreement,
// so that Rule can carry one without the two packages importing each
// other; package agreement provides the standard implementations
// (Gender, Number, Case, GNC) and the tree walk that applies them.
type Relation func(a, b map[string]struct{}) bool

// Term is either a Predicate (terminal) or a *Rule (non-terminal).
// Nothing else satisfies Term (§3 "Invariants").
type Term struct {
	pred *predicate.Predicate
	rule *Rule
}

// T builds a terminal Term from a Predicate.
func T(p predicate.Predicate) Term {
	return Term{pred: &p}
}

// NT builds a non-terminal Term from a Rule.
func NT(r *Rule) Term {
	return Term{rule: r}
}

// IsTerminal reports whether the term is a Predicate leaf.
func (t Term) IsTerminal() bool { return t.pred != nil }

// Predicate returns the term's Predicate. Only valid if IsTerminal().
func (t Term) Predicate() predicate.Predicate { return *t.pred }

// Rule returns the term's Rule. Only valid if !IsTerminal().
func (t Term) Rule() *Rule { return t.rule }

func (t Term) String() string {
	if t.IsTerminal() {
		return t.pred.String()
	}
	if t.rule.Name != "" {
		return t.rule.Name
	}
	return "<rule:" + t.rule.id.String()[:8] + ">"
}

// Production is one alternative in a rule's choice: an ordered sequence
// of terms plus the index of the "head" term used by relation anchoring.
type Production struct {
	Terms []Term
	Main  int
}

// IsEmpty reports whether this production is the empty alternative
// generated by Optional.
func (p Production) IsEmpty() bool { return len(p.Terms) == 0 }

func (p Production) String() string {
	if p.IsEmpty() {
		return "ε"
	}
	s := ""
	for i, t := range p.Terms {
		if i > 0 {
			s += " "
		}
		s += t.String()
	}
	return s
}

// Rule is a grammar node: an optional display name, an ordered sequence
// of productions, an optional interpretation Spec (opaque here — see
// package interp), and an optional agreement Relation (see package
// agreement).
//
// Rule equality is by identity: compare *Rule pointers, or ID() for a
// value suitable as a map key / hash component.
type Rule struct {
	id             uuid.UUID
	Name           string
	Productions    []Production
	Interpretation interface{} // *interp.Spec, set via WithInterpretation()
	Relation       Relation    // set via WithRelation()
	PipelineKey    string      // opaque morph-pipeline key, set via WithPipelineKey
}

// ID returns the rule's stable identity. Two rules are the same node
// iff their IDs are equal.
func (r *Rule) ID() uuid.UUID { return r.id }

func (r *Rule) String() string {
	if r.Name != "" {
		return r.Name
	}
	return "<rule:" + r.id.String()[:8] + ">"
}

// New creates a rule with a single production built from terms.
// New does not check that terms is non-empty: called with no terms it
// returns a rule whose only production is empty, the same shape as the
// empty alternative Optional adds.
func New(terms ...Term) *Rule {
	return &Rule{
		id:          uuid.New(),
		Productions: []Production{{Terms: terms, Main: 0}},
	}
}

// Alt creates a rule with one production per entry of productions — the
// "rule([terms1, terms2, …])" form of §4.3.
func Alt(productions ...[]Term) *Rule {
	r := &Rule{id: uuid.New()}
	for _, terms := range productions {
		r.Productions = append(r.Productions, Production{Terms: terms, Main: 0})
	}
	return r
}

// Or builds a rule whose productions are the concatenation of each
// input rule's productions, flattening nested Or rules (§4.3
// "Normalization rules": "or_rule flattens").
func Or(rules ...*Rule) *Rule {
	out := &Rule{id: uuid.New()}
	for _, r := range rules {
		out.Productions = append(out.Productions, r.Productions...)
	}
	return out
}

// Optional returns a copy of r with an additional empty production.
// optional(optional(r)) behaves like optional(r): applying Optional to
// an already-optional rule adds a second empty production, which the
// Earley chart's state deduplication makes harmless (§4.3 "Normalization
// rules").
func Optional(r *Rule) *Rule {
	out := &Rule{
		id:             uuid.New(),
		Name:           r.Name,
		Interpretation: r.Interpretation,
		Relation:       r.Relation,
	}
	out.Productions = append(out.Productions, r.Productions...)
	out.Productions = append(out.Productions, Production{})
	return out
}

// Forward creates a placeholder rule with stable identity but no
// productions yet. Use Define to publish its productions once they are
// known — this is how recursive and unbounded-repetition grammars are
// expressed without cycles during construction (§4.3 "Forward reference").
func Forward() *Rule {
	return &Rule{id: uuid.New()}
}

// Define publishes productions (and, if r carries one, a name) onto a
// placeholder created by Forward. All Terms referencing fwd — built
// before or after Define is called — observe the new productions,
// because Term holds the *Rule pointer itself, not a copy (§5 "Shared
// mutability": "writes happen once per placeholder at grammar-
// construction time, before any parse").
//
// Define must be called exactly once per placeholder and before the
// grammar is used for parsing; it is not safe to call concurrently with
// a parse of the same grammar.
func Define(fwd *Rule, r *Rule) {
	fwd.Productions = r.Productions
	if fwd.Name == "" {
		fwd.Name = r.Name
	}
	if fwd.Interpretation == nil {
		fwd.Interpretation = r.Interpretation
	}
	if fwd.Relation == nil {
		fwd.Relation = r.Relation
	}
	if fwd.PipelineKey == "" {
		fwd.PipelineKey = r.PipelineKey
	}
}

// Repeatable builds a rule matching r repeated between min and max times
// (max may be Unbounded). Construction fails fast (§7 "Construction
// errors") if min < 0, max < 1 (and not Unbounded), or min > max.
//
// Unbounded repetition (min=1... or any bounded min with an unbounded
// max) is expressed as a forward-referencing rule R' → r | r R', so the
// recognizer never has to unroll an infinite chain (§4.3 "repeatable...
// Unbounded (1, ∞): a forward-referencing rule").
// Bounded repetition is unrolled into a linear chain of min…max
// repetitions.
func Repeatable(r *Rule, min, max int) (*Rule, error) {
	if min < 0 {
		return nil, fmt.Errorf("repeatable: min < 0 (got %d)", min)
	}
	if max != Unbounded && max < 1 {
		return nil, fmt.Errorf("repeatable: max < 1 (got %d)", max)
	}
	if max != Unbounded && min > max {
		return nil, fmt.Errorf("repeatable: min > max (%d > %d)", min, max)
	}
	if max == Unbounded {
		return repeatableUnbounded(r, min), nil
	}
	return repeatableBounded(r, min, max), nil
}

// repeatableUnbounded builds R' → r | r R' and, if min==0, wraps it in
// Optional.
func repeatableUnbounded(r *Rule, min int) *Rule {
	tail := Forward()
	body := Alt(
		[]Term{NT(r)},
		[]Term{NT(r), NT(tail)},
	)
	Define(tail, body)
	if min == 0 {
		return Optional(tail)
	}
	if min == 1 {
		return tail
	}
	// min > 1: chain `min-1` mandatory repetitions in front of the
	// unbounded tail.
	terms := make([]Term, 0, min)
	for i := 0; i < min-1; i++ {
		terms = append(terms, NT(r))
	}
	terms = append(terms, NT(tail))
	return New(terms...)
}

// repeatableBounded unrolls r repeated min..max times into a single
// production of optional trailing terms, keeping the greedy/longest-
// match semantics that FindAll's overlap resolution depends on: a
// linear chain r r r r?(optional tail) where every optional tail term is
// itself wrapped so that the whole chain can stop anywhere between min
// and max repetitions.
func repeatableBounded(r *Rule, min, max int) *Rule {
	if min == max {
		terms := make([]Term, max)
		for i := range terms {
			terms[i] = NT(r)
		}
		return New(terms...)
	}
	// Build from the back: the last (max-min) copies are optional,
	// nested so that matching k of them (min<=min+k<=max) is possible
	// for every k up to max-min.
	var tail *Rule
	for i := max; i > min; i-- {
		if tail == nil {
			tail = Optional(New(NT(r)))
		} else {
			tail = Optional(New(NT(r), NT(tail)))
		}
	}
	terms := make([]Term, 0, min+1)
	for i := 0; i < min; i++ {
		terms = append(terms, NT(r))
	}
	if tail != nil {
		terms = append(terms, NT(tail))
	}
	return New(terms...)
}

// Named attaches a display/identity tag to r; it does not affect
// recognition semantics. Mutates and returns r.
func Named(r *Rule, name string) *Rule {
	r.Name = name
	return r
}

// WithInterpretation attaches an interpretation Spec to r (named
// `interpretation` in §4.3; renamed here to avoid colliding with the
// Rule field of the same name). spec is opaque to this package — pass
// an *interp.Spec built with package interp's constructors. Mutates and
// returns r.
func WithInterpretation(r *Rule, spec interface{}) *Rule {
	r.Interpretation = spec
	return r
}

// WithRelation attaches an agreement Relation to r (named `match` in
// §4.3; renamed here to avoid colliding with package earley's Match
// type). Mutates and returns r.
func WithRelation(r *Rule, rel Relation) *Rule {
	r.Relation = rel
	return r
}

// WithPipelineKey attaches an opaque pipeline key to r (§4.7 "Pipeline
// key"): interp's normalized spec returns this key verbatim instead of
// joining descendant normalized forms, for morph-pipeline grammars whose
// canonical key is pre-computed. Mutates and returns r.
func WithPipelineKey(r *Rule, key string) *Rule {
	r.PipelineKey = key
	return r
}
