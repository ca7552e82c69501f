/*
Package fact implements the fact model of §4.8: named schemas with
typed attributes (scalar or repeatable), merge semantics, and a
JSON-shaped projection.

This is the one package in the module built on the standard library
rather than a pack dependency: a Fact's attribute values are a bare
map[string]any precisely so that AsJSON's output is what
encoding/json.Marshal already knows how to serialize — no pack example
exercises a schema-free JSON builder, so there is no ecosystem library
to ground this piece on (see DESIGN.md).
*/
package fact

import "github.com/npillmayer/morphrule"

// AttrSpec is one entry of a Schema's attribute list: a name and
// whether repeated assignment appends instead of overwriting.
type AttrSpec struct {
	Name       string
	Repeatable bool
}

// Attr declares a scalar attribute.
func Attr(name string) AttrSpec { return AttrSpec{Name: name} }

// Repeatable declares a repeatable attribute, defaulting to [].
func Repeatable(name string) AttrSpec { return AttrSpec{Name: name, Repeatable: true} }

// Schema names a fact shape: an ordered list of attributes (§4.8
// "define(name, attrs)").
type Schema struct {
	Name  string
	Attrs []AttrSpec
}

// Define builds a named schema from an ordered attribute list.
func Define(name string, attrs ...AttrSpec) *Schema {
	return &Schema{Name: name, Attrs: attrs}
}

func (s *Schema) attr(key string) (AttrSpec, bool) {
	for _, a := range s.Attrs {
		if a.Name == key {
			return a, true
		}
	}
	return AttrSpec{}, false
}

// Fact is one instance of a Schema: every attribute initialized to its
// schema default (nil for scalars, [] for repeatables), plus the spans
// of input text it was built from.
type Fact struct {
	Schema *Schema
	values map[string]interface{}
	spans  []morphrule.Span
}

// New builds an empty Fact of schema, with every attribute at its
// schema default.
func New(schema *Schema) *Fact {
	f := &Fact{Schema: schema, values: make(map[string]interface{}, len(schema.Attrs))}
	for _, a := range schema.Attrs {
		if a.Repeatable {
			f.values[a.Name] = []interface{}{}
		} else {
			f.values[a.Name] = nil
		}
	}
	return f
}

// Get returns the current value of key, and whether key is a
// recognized attribute of f's schema.
func (f *Fact) Get(key string) (interface{}, bool) {
	if _, ok := f.Schema.attr(key); !ok {
		return nil, false
	}
	return f.values[key], true
}

// Set assigns v to key: overwrite if key is scalar, append if key is
// repeatable (§4.8 "set(fact, schema, key, v)").
func (f *Fact) Set(key string, v interface{}) {
	spec, ok := f.Schema.attr(key)
	if ok && spec.Repeatable {
		cur, _ := f.values[key].([]interface{})
		f.values[key] = append(cur, v)
		return
	}
	f.values[key] = v
}

// Merge copies every non-null attribute of source into f, appending
// repeatables element-wise and overwriting scalars (§4.8 "merge(target,
// source): non-null source attributes override target's").
func (f *Fact) Merge(source *Fact) {
	if source == nil {
		return
	}
	for _, a := range source.Schema.Attrs {
		v := source.values[a.Name]
		if isNull(v) {
			continue
		}
		if a.Repeatable {
			items, _ := v.([]interface{})
			for _, it := range items {
				f.Set(a.Name, it)
			}
			continue
		}
		f.values[a.Name] = v
	}
}

func isNull(v interface{}) bool {
	if v == nil {
		return true
	}
	if items, ok := v.([]interface{}); ok {
		return len(items) == 0
	}
	return false
}

// AddSpan records one of the input spans this fact was assembled from.
func (f *Fact) AddSpan(s morphrule.Span) {
	f.spans = append(f.spans, s)
}

// Spans returns every span recorded via AddSpan, in insertion order.
func (f *Fact) Spans() []morphrule.Span {
	return f.spans
}

// AsJSON renders f as a plain map suitable for encoding/json.Marshal:
// null scalars are omitted, nested Facts and slices are recursed into
// (§4.8 "as_json(fact): omit null scalars; recurse into nested facts
// and lists").
func (f *Fact) AsJSON() map[string]interface{} {
	out := make(map[string]interface{}, len(f.Schema.Attrs))
	for _, a := range f.Schema.Attrs {
		v := f.values[a.Name]
		if v == nil {
			continue
		}
		out[a.Name] = jsonValue(v)
	}
	return out
}

func jsonValue(v interface{}) interface{} {
	switch x := v.(type) {
	case *Fact:
		return x.AsJSON()
	case []interface{}:
		arr := make([]interface{}, len(x))
		for i, it := range x {
			arr[i] = jsonValue(it)
		}
		return arr
	default:
		return v
	}
}
