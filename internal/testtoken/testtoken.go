/*
Package testtoken is a small fixture tokenizer: it turns a line of
whitespace-separated `value/Kind[:normalized][grammeme,…]` fields into a
[]morphrule.Token, for use by tests and cmd/morphrule-repl. It is not a
real tokenizer/morphological analyzer (those are out of scope collaborators);
it exists purely so tests and the REPL have a way to build tokens from
plain text without hand-assembling morphrule.Token literals.

Grounded on gorgo's lr/scanner/scanner.go GoTokenizer, which also turns
a line of text into a stream of typed tokens for feeding a parser — this
version swaps gorgo's Go-lexer-based classification for a fixed tagged
mini-format, since this module's tokenizer collaborator is external.
*/
package testtoken

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/npillmayer/morphrule"
)

// Parse splits line on whitespace and converts each field into a Token
// via ParseOne.
func Parse(line string) ([]morphrule.Token, error) {
	fields := strings.Fields(line)
	tokens := make([]morphrule.Token, 0, len(fields))
	offset := 0
	for _, field := range fields {
		tok, err := ParseOne(field, offset)
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
		offset = tok.Span.To() + 1
	}
	return tokens, nil
}

// ParseOne parses one `value/Kind[:normalized][gram1,gram2,…]` field
// into a Token starting at character offset start. Kind defaults to
// Word if the `/Kind` suffix is omitted.
func ParseOne(field string, start int) (morphrule.Token, error) {
	value := field
	kind := morphrule.Word
	var normalized string
	var grams []string

	if i := strings.IndexByte(field, '['); i >= 0 {
		if !strings.HasSuffix(field, "]") {
			return morphrule.Token{}, fmt.Errorf("testtoken: unterminated grammeme list in %q", field)
		}
		grams = strings.Split(field[i+1:len(field)-1], ",")
		field = field[:i]
		value = field
	}

	if i := strings.IndexByte(field, '/'); i >= 0 {
		value = field[:i]
		rest := field[i+1:]
		kindTag := rest
		if j := strings.IndexByte(rest, ':'); j >= 0 {
			kindTag = rest[:j]
			normalized = rest[j+1:]
		}
		k, err := parseKind(kindTag)
		if err != nil {
			return morphrule.Token{}, err
		}
		kind = k
	}

	if kind == morphrule.Int {
		if _, err := strconv.Atoi(value); err != nil {
			return morphrule.Token{}, fmt.Errorf("testtoken: %q tagged Int but does not parse as one", value)
		}
	}

	tok := morphrule.New(value, kind, start, start+utf8.RuneCountInString(value))
	if normalized != "" || len(grams) > 0 {
		if normalized == "" {
			normalized = strings.ToLower(value)
		}
		tok = tok.WithForms([]morphrule.MorphForm{morphrule.NewMorphForm(normalized, grams...)})
	}
	return tok, nil
}

func parseKind(tag string) (morphrule.Kind, error) {
	switch strings.ToLower(tag) {
	case "word":
		return morphrule.Word, nil
	case "int":
		return morphrule.Int, nil
	case "punct":
		return morphrule.Punct, nil
	case "other":
		return morphrule.Other, nil
	default:
		return morphrule.Other, fmt.Errorf("testtoken: unknown kind tag %q", tag)
	}
}
