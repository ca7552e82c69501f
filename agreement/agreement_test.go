package agreement_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/npillmayer/morphrule"
	"github.com/npillmayer/morphrule/agreement"
	"github.com/npillmayer/morphrule/grammar"
	"github.com/npillmayer/morphrule/parsetree"
	"github.com/npillmayer/morphrule/predicate"
)

func grams(tags ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		set[t] = struct{}{}
	}
	return set
}

func TestGenderAgreement(t *testing.T) {
	assert.True(t, agreement.Gender(grams("masc"), grams("masc")))
	assert.False(t, agreement.Gender(grams("masc"), grams("femn")))
	assert.True(t, agreement.Gender(grams("GNdr"), grams("femn")))
	assert.True(t, agreement.Gender(grams("ms-f"), grams("masc")))
}

func TestNumberAgreement(t *testing.T) {
	assert.True(t, agreement.Number(grams("sing"), grams("sing")))
	assert.True(t, agreement.Number(grams("plur"), grams("Pltm")))
	assert.False(t, agreement.Number(grams("sing"), grams("plur")))
}

func TestCaseAgreement(t *testing.T) {
	assert.True(t, agreement.Case(grams("nomn"), grams("nomn")))
	assert.True(t, agreement.Case(grams("Fixd"), grams("accs")))
	assert.False(t, agreement.Case(grams("nomn"), grams("gent")))
}

func TestValidateRejectsDisagreement(t *testing.T) {
	adj := grammar.T(predicate.Gram("ADJF"))
	noun := grammar.T(predicate.Gram("NOUN"))
	root := grammar.WithRelation(grammar.New(adj, noun), agreement.GNC)

	a := morphrule.New("большой", morphrule.Word, 0, 0).WithForms(
		[]morphrule.MorphForm{morphrule.NewMorphForm("большой", "ADJF", "masc", "sing", "nomn")})
	b := morphrule.New("окно", morphrule.Word, 0, 0).WithForms(
		[]morphrule.MorphForm{morphrule.NewMorphForm("окно", "NOUN", "neut", "sing", "nomn")})

	tree := parsetree.Node(root, 0, morphrule.NewSpan(0, 0), []parsetree.Tree{
		parsetree.Leaf(a), parsetree.Leaf(b),
	})
	assert.False(t, agreement.Validate(tree))
}

func TestValidateAcceptsNoRelations(t *testing.T) {
	root := grammar.New(grammar.T(predicate.Eq("a")))
	tree := parsetree.Node(root, 0, morphrule.NewSpan(0, 0), []parsetree.Tree{
		parsetree.Leaf(morphrule.New("a", morphrule.Word, 0, 1)),
	})
	assert.True(t, agreement.Validate(tree))
}
