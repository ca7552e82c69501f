package testtoken_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/npillmayer/morphrule"
	"github.com/npillmayer/morphrule/internal/testtoken"
)

func TestParseDefaultsToWord(t *testing.T) {
	toks, err := testtoken.Parse("ст .")
	require.NoError(t, err)
	require.Len(t, toks, 2)
	assert.Equal(t, morphrule.Word, toks[0].Kind)
}

func TestParseKindAndGrams(t *testing.T) {
	toks, err := testtoken.Parse("Иванов/Word:иванов[Surn,masc,sing,nomn]")
	require.NoError(t, err)
	require.Len(t, toks, 1)
	assert.Equal(t, "Иванов", toks[0].Value)
	require.Len(t, toks[0].Forms, 1)
	assert.Equal(t, "иванов", toks[0].Forms[0].Normalized)
	assert.True(t, toks[0].Forms[0].HasGram("Surn"))
}

func TestParseInt(t *testing.T) {
	toks, err := testtoken.Parse("15/Int")
	require.NoError(t, err)
	assert.Equal(t, morphrule.Int, toks[0].Kind)
}

func TestParseRejectsBadInt(t *testing.T) {
	_, err := testtoken.Parse("abc/Int")
	assert.Error(t, err)
}
