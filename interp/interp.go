/*
Package interp implements the interpretation engine of §4.7: a bottom-up
evaluator over a parsetree.Tree that applies each node's attached Spec
and produces a tagged Result, and a closed Spec algebra for building the
specs a grammar.Rule's Interpretation field carries.

Result plays the role gorgo's terex.Element/terex.Atom pair plays for
TEREX term rewriting (terex/terex.go's GCons/Atom-with-AtomType
discriminant): "what a tree-walk step produces", but discriminated over
Token|Value|Attr|FactResult|Items instead of s-expression atom types.
Interpret walks bottom-up the way terex.Eval/evalList/evalAtom do in
terex/eval.go, including the tracer-call-per-step logging idiom and the
early-return-on-error style resolve() uses for propagating evaluation
failures.
*/
package interp

import (
	"fmt"
	"strings"

	"github.com/npillmayer/morphrule"
	"github.com/npillmayer/morphrule/fact"
	"github.com/npillmayer/morphrule/parsetree"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'morphrule.interp'.
func tracer() tracing.Trace {
	return tracing.Select("morphrule.interp")
}

// MorphService is the morphological collaborator interp calls out to
// for inflected() specs (§4.7 "inflected(grams)... via the morph
// service"). It is supplied by the caller of Interpret, not constructed
// by this package.
type MorphService interface {
	// Inflect returns tok inflected towards grams, or false if the
	// service has no parse to inflect from (§7: interp falls back to
	// the original token text on no-parse).
	Inflect(tok morphrule.Token, grams []string) (string, bool)
}

// CustomFn is a user-supplied interpretation step: given the
// space-joined text a spec collected, it returns a value or an error.
// An error returned here propagates out of Interpret (§7 "Interpretation
// errors: custom/attr_custom functions may raise; this propagates to
// the caller of fact(match)").
type CustomFn func(string) (interface{}, error)

// --- Spec algebra (§4.7, closed set) -------------------------------------

type specKind int

const (
	sFact specKind = iota
	sAttribute
	sNormalized
	sInflected
	sConst
	sCustom
	sCustomChain
	sAttrNormalized
	sAttrInflected
	sAttrConst
	sAttrCustom
	sAttrNormalizedCustom
	sAttrInflectedCustom
	sNormalizedCustom
	sInflectedCustom
)

// Spec is attached to a grammar.Rule's Interpretation field and
// evaluated bottom-up by Interpret for every node reduced by that rule.
type Spec struct {
	kind     specKind
	schema   *fact.Schema
	key      string
	grams    []string
	constVal interface{}
	fn       CustomFn
	fns      []CustomFn
}

// Fact builds a spec that reduces a node into a FactResult of schema,
// merging in matching Attr and FactResult children.
func Fact(schema *fact.Schema) *Spec { return &Spec{kind: sFact, schema: schema} }

// Attribute builds a spec that reduces a node into Attr(schema, key, v).
func Attribute(schema *fact.Schema, key string) *Spec {
	return &Spec{kind: sAttribute, schema: schema, key: key}
}

// Normalized builds a spec reducing to the space-joined normalized
// forms of a node's descendant leaves.
func Normalized() *Spec { return &Spec{kind: sNormalized} }

// Inflected builds a spec reducing to the space-joined inflected forms
// of a node's descendant leaves, towards grams.
func Inflected(grams ...string) *Spec { return &Spec{kind: sInflected, grams: grams} }

// Const builds a spec reducing to the constant value v.
func Const(v interface{}) *Spec { return &Spec{kind: sConst, constVal: v} }

// Custom builds a spec reducing to fn applied to the node's
// space-joined leaf values.
func Custom(fn CustomFn) *Spec { return &Spec{kind: sCustom, fn: fn} }

// CustomChain builds a spec applying fns in sequence, starting from the
// node's space-joined leaf values: the output of one feeds the next.
func CustomChain(fns ...CustomFn) *Spec { return &Spec{kind: sCustomChain, fns: fns} }

// NormalizedCustom builds a spec reducing to fn applied to the node's
// joined normalized forms.
func NormalizedCustom(fn CustomFn) *Spec { return &Spec{kind: sNormalizedCustom, fn: fn} }

// InflectedCustom builds a spec reducing to fn applied to the node's
// joined inflected forms.
func InflectedCustom(grams []string, fn CustomFn) *Spec {
	return &Spec{kind: sInflectedCustom, grams: grams, fn: fn}
}

// AttrNormalized is Attribute's normalized-form variant.
func AttrNormalized(schema *fact.Schema, key string) *Spec {
	return &Spec{kind: sAttrNormalized, schema: schema, key: key}
}

// AttrInflected is Attribute's inflected-form variant.
func AttrInflected(schema *fact.Schema, key string, grams ...string) *Spec {
	return &Spec{kind: sAttrInflected, schema: schema, key: key, grams: grams}
}

// AttrConst is Attribute's constant-value variant.
func AttrConst(schema *fact.Schema, key string, v interface{}) *Spec {
	return &Spec{kind: sAttrConst, schema: schema, key: key, constVal: v}
}

// AttrCustom is Attribute's custom-function variant.
func AttrCustom(schema *fact.Schema, key string, fn CustomFn) *Spec {
	return &Spec{kind: sAttrCustom, schema: schema, key: key, fn: fn}
}

// AttrNormalizedCustom applies fn to the node's joined normalized forms
// and wraps the result as Attr(schema, key, ...).
func AttrNormalizedCustom(schema *fact.Schema, key string, fn CustomFn) *Spec {
	return &Spec{kind: sAttrNormalizedCustom, schema: schema, key: key, fn: fn}
}

// AttrInflectedCustom applies fn to the node's joined inflected forms
// and wraps the result as Attr(schema, key, ...).
func AttrInflectedCustom(schema *fact.Schema, key string, grams []string, fn CustomFn) *Spec {
	return &Spec{kind: sAttrInflectedCustom, schema: schema, key: key, grams: grams, fn: fn}
}

// --- Result domain (§4.7 "Result domain") --------------------------------

type resultKind int

const (
	rToken resultKind = iota
	rValue
	rAttr
	rFact
	rItems
)

// Result is the tagged value a tree-walk step produces: exactly one of
// Token(t) | Value(v) | Attr(schema, key, v) | FactResult(fact) |
// Items(list<result>).
type Result struct {
	kind    resultKind
	token   morphrule.Token
	value   interface{}
	schema  *fact.Schema
	key     string
	attrVal interface{}
	fact    *fact.Fact
	items   []Result
}

func tokenResult(t morphrule.Token) Result { return Result{kind: rToken, token: t} }
func valueResult(v interface{}) Result     { return Result{kind: rValue, value: v} }
func attrResult(schema *fact.Schema, key string, v interface{}) Result {
	return Result{kind: rAttr, schema: schema, key: key, attrVal: v}
}
func factResult(f *fact.Fact) Result      { return Result{kind: rFact, fact: f} }
func itemsResult(items []Result) Result   { return Result{kind: rItems, items: items} }

// Fact reports the wrapped *fact.Fact and whether r is a FactResult.
func (r Result) Fact() (*fact.Fact, bool) {
	if r.kind == rFact {
		return r.fact, true
	}
	return nil, false
}

// Value reports the wrapped value and whether r is a Value result.
func (r Result) Value() (interface{}, bool) {
	if r.kind == rValue {
		return r.value, true
	}
	return nil, false
}

// --- Evaluation (§4.7 bottom-up walk) -------------------------------------

// Interpret walks t bottom-up, applying the Spec each reducing rule
// carries, and returns the root's unwrapped value (§4.7 "Final
// normalization"). morph may be nil if no rule in t's grammar uses
// inflected()/attr_inflected*.
func Interpret(t parsetree.Tree, morph MorphService) (interface{}, error) {
	r, err := eval(t, morph)
	if err != nil {
		return nil, err
	}
	return unwrap(r), nil
}

// eval is the recursive tree-walk step, returning the node's raw
// (not-yet-unwrapped) Result.
func eval(t parsetree.Tree, morph MorphService) (Result, error) {
	if t.IsLeaf {
		return tokenResult(t.Token), nil
	}
	children := make([]Result, len(t.Children))
	for i, c := range t.Children {
		r, err := eval(c, morph)
		if err != nil {
			return Result{}, err
		}
		children[i] = r
	}
	spec, _ := t.Rule.Interpretation.(*Spec)
	if spec == nil {
		return itemsResult(children), nil
	}
	tracer().Debugf("eval of %s via spec kind %d", t.Rule, spec.kind)
	return applySpec(spec, t, children, morph)
}

func applySpec(s *Spec, t parsetree.Tree, children []Result, morph MorphService) (Result, error) {
	switch s.kind {
	case sFact:
		f := fact.New(s.schema)
		for _, c := range children {
			mergeIntoFact(f, s.schema, c)
		}
		for _, span := range leafSpans(t, children) {
			f.AddSpan(span)
		}
		return factResult(f), nil
	case sAttribute:
		v, err := attributeValue(t, children)
		if err != nil {
			return Result{}, err
		}
		return attrResult(s.schema, s.key, v), nil
	case sNormalized:
		return valueResult(joinNormalized(t)), nil
	case sInflected:
		return valueResult(joinInflected(t, s.grams, morph)), nil
	case sConst:
		return valueResult(s.constVal), nil
	case sCustom:
		v, err := s.fn(t.Text())
		if err != nil {
			return Result{}, err
		}
		return valueResult(v), nil
	case sCustomChain:
		v, err := runChain(s.fns, t.Text())
		if err != nil {
			return Result{}, err
		}
		return valueResult(v), nil
	case sNormalizedCustom:
		v, err := s.fn(joinNormalized(t))
		if err != nil {
			return Result{}, err
		}
		return valueResult(v), nil
	case sInflectedCustom:
		v, err := s.fn(joinInflected(t, s.grams, morph))
		if err != nil {
			return Result{}, err
		}
		return valueResult(v), nil
	case sAttrNormalized:
		return attrResult(s.schema, s.key, joinNormalized(t)), nil
	case sAttrInflected:
		return attrResult(s.schema, s.key, joinInflected(t, s.grams, morph)), nil
	case sAttrConst:
		return attrResult(s.schema, s.key, s.constVal), nil
	case sAttrCustom:
		v, err := s.fn(t.Text())
		if err != nil {
			return Result{}, err
		}
		return attrResult(s.schema, s.key, v), nil
	case sAttrNormalizedCustom:
		v, err := s.fn(joinNormalized(t))
		if err != nil {
			return Result{}, err
		}
		return attrResult(s.schema, s.key, v), nil
	case sAttrInflectedCustom:
		v, err := s.fn(joinInflected(t, s.grams, morph))
		if err != nil {
			return Result{}, err
		}
		return attrResult(s.schema, s.key, v), nil
	default:
		return Result{}, fmt.Errorf("interp: unhandled spec kind %d", s.kind)
	}
}

// mergeIntoFact implements the fact-assembly rules (§4.7): an Attr(s,
// k, v) with s == schema sets k; a FactResult(g) with the same schema
// merges non-null attributes; any other result (including ones nested
// inside an Items forward) is ignored for attribute assignment but its
// spans are still collected by leafSpans/nestedFactSpans.
func mergeIntoFact(f *fact.Fact, schema *fact.Schema, r Result) {
	switch r.kind {
	case rAttr:
		if r.schema == schema {
			f.Set(r.key, r.attrVal)
		}
	case rFact:
		if r.fact.Schema == schema {
			f.Merge(r.fact)
		}
	case rItems:
		for _, item := range r.items {
			mergeIntoFact(f, schema, item)
		}
	}
}

// attributeValue implements attribute(schema, key)'s value rule: the
// unique non-Items child result (FactResult, Value, or Attr's value) if
// there is exactly one, else the space-joined leaf values below t.
func attributeValue(t parsetree.Tree, children []Result) (interface{}, error) {
	var found []Result
	var collect func(Result)
	collect = func(r Result) {
		switch r.kind {
		case rItems:
			for _, item := range r.items {
				collect(item)
			}
		case rValue, rAttr, rFact:
			found = append(found, r)
		}
	}
	for _, c := range children {
		collect(c)
	}
	switch len(found) {
	case 0:
		return t.Text(), nil
	case 1:
		return resultValue(found[0]), nil
	default:
		return nil, fmt.Errorf("interp: attribute spec found %d candidate results under %s, expected at most 1", len(found), t.Rule)
	}
}

func resultValue(r Result) interface{} {
	switch r.kind {
	case rFact:
		return r.fact
	case rValue:
		return r.value
	case rAttr:
		return r.attrVal
	}
	return nil
}

// leafSpans is the union of t's own leaf spans and the spans of any
// nested FactResult among children (§4.7 "spans are the union of child
// leaf spans and nested fact spans").
func leafSpans(t parsetree.Tree, children []Result) []morphrule.Span {
	leaves := t.Leaves()
	spans := make([]morphrule.Span, 0, len(leaves))
	seen := make(map[morphrule.Span]bool, len(leaves))
	add := func(s morphrule.Span) {
		if !seen[s] {
			seen[s] = true
			spans = append(spans, s)
		}
	}
	for _, leaf := range leaves {
		add(leaf.Span)
	}
	for _, c := range children {
		for _, s := range nestedFactSpans(c) {
			add(s)
		}
	}
	return spans
}

func nestedFactSpans(r Result) []morphrule.Span {
	switch r.kind {
	case rFact:
		return r.fact.Spans()
	case rItems:
		var out []morphrule.Span
		for _, item := range r.items {
			out = append(out, nestedFactSpans(item)...)
		}
		return out
	}
	return nil
}

// joinNormalized returns t.Rule's pipeline key if set (§4.7 "Pipeline
// key"), else the space-joined normalized forms of t's descendant
// leaves (a token with no morphological forms contributes its surface
// value, per §4.1's "a word token without forms behaves as if it had no
// morphological information").
func joinNormalized(t parsetree.Tree) string {
	if t.Rule != nil && t.Rule.PipelineKey != "" {
		return t.Rule.PipelineKey
	}
	leaves := t.Leaves()
	parts := make([]string, len(leaves))
	for i, tok := range leaves {
		parts[i] = normalizedForm(tok)
	}
	return strings.Join(parts, " ")
}

func normalizedForm(tok morphrule.Token) string {
	if len(tok.Forms) > 0 {
		return tok.Forms[0].Normalized
	}
	return tok.Value
}

// joinInflected returns the space-joined inflected forms of t's
// descendant leaves, falling back to the original token text when morph
// is nil or reports no parse (§7 "Morph service returning no parses for
// inflected falls back to the original token value").
func joinInflected(t parsetree.Tree, grams []string, morph MorphService) string {
	leaves := t.Leaves()
	parts := make([]string, len(leaves))
	for i, tok := range leaves {
		if morph != nil {
			if s, ok := morph.Inflect(tok, grams); ok {
				parts[i] = s
				continue
			}
		}
		parts[i] = tok.Value
	}
	return strings.Join(parts, " ")
}

// runChain implements custom_chain: sequential application of fns,
// starting from start, each step's output formatted back to a string
// for the next step's input; stops (and propagates) on the first error
// (§6 supplement: "if any function in the chain returns an error-typed
// Value, the chain stops", mirrored here as a plain early return).
func runChain(fns []CustomFn, start string) (interface{}, error) {
	var cur interface{} = start
	for _, fn := range fns {
		v, err := fn(fmt.Sprint(cur))
		if err != nil {
			return nil, err
		}
		cur = v
	}
	return cur, nil
}

// unwrap implements §4.7's final normalization.
func unwrap(r Result) interface{} {
	switch r.kind {
	case rFact:
		return r.fact
	case rValue:
		return r.value
	case rAttr:
		return r.attrVal
	case rToken:
		return r.token.Value
	case rItems:
		if len(r.items) == 0 {
			return nil
		}
		return unwrap(r.items[len(r.items)-1])
	}
	return nil
}
