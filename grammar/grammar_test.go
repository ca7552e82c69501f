package grammar_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/npillmayer/morphrule/grammar"
	"github.com/npillmayer/morphrule/predicate"
)

func TestNewSingleProduction(t *testing.T) {
	r := grammar.New(grammar.T(predicate.Eq("ст")), grammar.T(predicate.Eq(".")))
	require.Len(t, r.Productions, 1)
	assert.Len(t, r.Productions[0].Terms, 2)
}

func TestAltMultipleProductions(t *testing.T) {
	r := grammar.Alt(
		[]grammar.Term{grammar.T(predicate.Eq("a"))},
		[]grammar.Term{grammar.T(predicate.Eq("b"))},
	)
	assert.Len(t, r.Productions, 2)
}

func TestOrFlattens(t *testing.T) {
	a := grammar.Alt([]grammar.Term{grammar.T(predicate.Eq("a"))})
	b := grammar.Alt([]grammar.Term{grammar.T(predicate.Eq("b"))}, []grammar.Term{grammar.T(predicate.Eq("c"))})
	nested := grammar.Or(a, b)
	outer := grammar.Or(nested, grammar.Alt([]grammar.Term{grammar.T(predicate.Eq("d"))}))
	assert.Len(t, outer.Productions, 4)
}

func TestOptionalAddsEmptyProduction(t *testing.T) {
	r := grammar.New(grammar.T(predicate.Eq("a")))
	opt := grammar.Optional(r)
	require.Len(t, opt.Productions, 2)
	assert.True(t, opt.Productions[1].IsEmpty())
	// original is untouched
	assert.Len(t, r.Productions, 1)
}

func TestForwardDefineIdentity(t *testing.T) {
	fwd := grammar.Forward()
	user := grammar.New(grammar.NT(fwd)) // reference before definition
	body := grammar.New(grammar.T(predicate.Eq("x")))
	grammar.Define(fwd, body)
	// the term built before Define observes the later definition
	assert.Equal(t, body.Productions[0].Terms[0], user.Productions[0].Terms[0].Rule().Productions[0].Terms[0])
	assert.Len(t, fwd.Productions, 1)
}

func TestRepeatableBoundsErrors(t *testing.T) {
	a := grammar.New(grammar.T(predicate.Eq("a")))
	_, err := grammar.Repeatable(a, -1, 2)
	assert.Error(t, err)
	_, err = grammar.Repeatable(a, 0, 0)
	assert.Error(t, err)
	_, err = grammar.Repeatable(a, 3, 2)
	assert.Error(t, err)
}

func TestRepeatableBoundedOK(t *testing.T) {
	a := grammar.New(grammar.T(predicate.Eq("a")))
	r, err := grammar.Repeatable(a, 2, 3)
	require.NoError(t, err)
	require.NotNil(t, r)
}

func TestRepeatableUnboundedOK(t *testing.T) {
	a := grammar.New(grammar.T(predicate.Eq("a")))
	r, err := grammar.Repeatable(a, 1, grammar.Unbounded)
	require.NoError(t, err)
	require.NotNil(t, r)
}

func TestNamedAndInterpretation(t *testing.T) {
	r := grammar.New(grammar.T(predicate.Eq("a")))
	grammar.Named(r, "letterA")
	grammar.WithInterpretation(r, "some-spec")
	assert.Equal(t, "letterA", r.Name)
	assert.Equal(t, "some-spec", r.Interpretation)
}

func TestGrammarValidateCatchesUndefinedForward(t *testing.T) {
	fwd := grammar.Forward()
	root := grammar.New(grammar.NT(fwd))
	g := grammar.NewGrammar(root)
	assert.Error(t, g.Validate())

	grammar.Define(fwd, grammar.New(grammar.T(predicate.Eq("x"))))
	assert.NoError(t, g.Validate())
}
