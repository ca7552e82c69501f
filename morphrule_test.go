package morphrule_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/npillmayer/morphrule"
)

func TestSpanExtend(t *testing.T) {
	a := morphrule.NewSpan(2, 5)
	b := morphrule.NewSpan(4, 9)
	c := a.Extend(b)
	assert.Equal(t, 2, c.From())
	assert.Equal(t, 9, c.To())
}

func TestSpanIsZero(t *testing.T) {
	assert.True(t, morphrule.NewSpan(0, 0).IsZero())
	assert.False(t, morphrule.NewSpan(0, 1).IsZero())
}

func TestTokenWithFormsLeavesOriginalUntouched(t *testing.T) {
	tok := morphrule.New("дом", morphrule.Word, 0, 3)
	forms := []morphrule.MorphForm{morphrule.NewMorphForm("дом", "NOUN", "masc")}
	enriched := tok.WithForms(forms)

	assert.Empty(t, tok.Forms)
	assert.Len(t, enriched.Forms, 1)
	assert.True(t, enriched.Forms[0].HasGram("NOUN"))
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "Word", morphrule.Word.String())
	assert.Equal(t, "Int", morphrule.Int.String())
	assert.Equal(t, "Punct", morphrule.Punct.String())
	assert.Equal(t, "Other", morphrule.Other.String())
}

func TestTokenIsEmpty(t *testing.T) {
	assert.True(t, morphrule.Token{}.IsEmpty())
	assert.False(t, morphrule.New("x", morphrule.Word, 0, 1).IsEmpty())
}
