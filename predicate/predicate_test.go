package predicate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/npillmayer/morphrule"
	"github.com/npillmayer/morphrule/predicate"
)

func word(v string, forms ...morphrule.MorphForm) morphrule.Token {
	t := morphrule.New(v, morphrule.Word, 0, len([]rune(v)))
	t.Forms = forms
	return t
}

func TestEqAndCaseless(t *testing.T) {
	tok := word("ст")
	assert.True(t, predicate.Eq("ст").Test(tok))
	assert.False(t, predicate.Eq("Ст").Test(tok))
	assert.True(t, predicate.Caseless("СТ").Test(tok))
}

func TestInAndInCaseless(t *testing.T) {
	tok := word("Иван")
	assert.True(t, predicate.In("Иван", "Пётр").Test(tok))
	assert.False(t, predicate.In("иван").Test(tok))
	assert.True(t, predicate.InCaseless("иван").Test(tok))
}

func TestType(t *testing.T) {
	i := morphrule.New("42", morphrule.Int, 0, 2)
	assert.True(t, predicate.Type(morphrule.Int).Test(i))
	assert.False(t, predicate.Type(morphrule.Word).Test(i))
}

func TestLengthEq(t *testing.T) {
	assert.True(t, predicate.LengthEq(4).Test(word("Иван")))
	assert.False(t, predicate.LengthEq(3).Test(word("Иван")))
}

func TestGteLte(t *testing.T) {
	i := morphrule.New("15", morphrule.Int, 0, 2)
	assert.True(t, predicate.Gte(10).Test(i))
	assert.True(t, predicate.Lte(20).Test(i))
	assert.False(t, predicate.Gte(20).Test(i))

	w := word("пятнадцать")
	assert.False(t, predicate.Gte(0).Test(w))
	assert.False(t, predicate.Lte(100).Test(w))
}

func TestGramAndNormalized(t *testing.T) {
	tok := word("Иванов", morphrule.NewMorphForm("иванов", "Surn", "masc", "sing", "nomn"))
	assert.True(t, predicate.Gram("Surn").Test(tok))
	assert.False(t, predicate.Gram("Name").Test(tok))
	assert.True(t, predicate.Normalized("ИВАНОВ").Test(tok))
	assert.True(t, predicate.NormalizedIn("петров", "иванов").Test(tok))
	assert.True(t, predicate.Dictionary("иванов").Test(tok))
}

func TestCaseShapePredicates(t *testing.T) {
	assert.True(t, predicate.Capitalized().Test(word("Иван")))
	assert.False(t, predicate.Capitalized().Test(word("иван")))
	assert.True(t, predicate.Upper().Test(word("МГУ")))
	assert.False(t, predicate.Upper().Test(word("Мгу")))
	assert.True(t, predicate.Lower().Test(word("иван")))
	assert.True(t, predicate.Title().Test(word("Иван")))
	assert.False(t, predicate.Title().Test(word("ИВАН")))
}

func TestCombinators(t *testing.T) {
	tok := word("Иван")
	p := predicate.And(predicate.Capitalized(), predicate.LengthEq(4))
	assert.True(t, p.Test(tok))

	p2 := predicate.Or(predicate.Eq("Пётр"), predicate.Eq("Иван"))
	assert.True(t, p2.Test(tok))

	p3 := predicate.Not(predicate.Eq("Пётр"))
	assert.True(t, p3.Test(tok))
}

func TestCustom(t *testing.T) {
	p := predicate.Custom("startsWithI", func(t morphrule.Token) bool {
		return len(t.Value) > 0 && []rune(t.Value)[0] == 'И'
	})
	assert.True(t, p.Test(word("Иван")))
	assert.False(t, p.Test(word("Анна")))
}
