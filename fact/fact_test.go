package fact_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/npillmayer/morphrule/fact"
)

func dateSchema() *fact.Schema {
	return fact.Define("Date", fact.Attr("day"), fact.Attr("month"), fact.Attr("year"))
}

func TestNewDefaultsToNull(t *testing.T) {
	f := fact.New(dateSchema())
	v, ok := f.Get("day")
	require.True(t, ok)
	assert.Nil(t, v)
}

func TestSetOverwritesScalar(t *testing.T) {
	f := fact.New(dateSchema())
	f.Set("day", 15)
	f.Set("day", 16)
	v, _ := f.Get("day")
	assert.Equal(t, 16, v)
}

func TestSetAppendsRepeatable(t *testing.T) {
	schema := fact.Define("Person", fact.Attr("surname"), fact.Repeatable("alias"))
	f := fact.New(schema)
	f.Set("alias", "Vanya")
	f.Set("alias", "Vanechka")
	v, _ := f.Get("alias")
	assert.Equal(t, []interface{}{"Vanya", "Vanechka"}, v)
}

func TestMergeCopiesNonNullSource(t *testing.T) {
	schema := fact.Define("Date", fact.Attr("day"), fact.Attr("month"))
	target := fact.New(schema)
	target.Set("day", 1)
	source := fact.New(schema)
	source.Set("month", 3)
	target.Merge(source)

	day, _ := target.Get("day")
	month, _ := target.Get("month")
	assert.Equal(t, 1, day)
	assert.Equal(t, 3, month)
}

func TestAsJSONOmitsNullScalars(t *testing.T) {
	f := fact.New(dateSchema())
	f.Set("day", 15)
	f.Set("year", 2024)
	j := f.AsJSON()
	assert.Equal(t, 15, j["day"])
	assert.Equal(t, 2024, j["year"])
	_, hasMonth := j["month"]
	assert.False(t, hasMonth)
}

func TestAsJSONRecursesNestedFact(t *testing.T) {
	outer := fact.Define("Event", fact.Attr("when"))
	inner := dateSchema()
	of := fact.New(outer)
	df := fact.New(inner)
	df.Set("day", 15)
	of.Set("when", df)

	j := of.AsJSON()
	nested, ok := j["when"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, 15, nested["day"])
}
