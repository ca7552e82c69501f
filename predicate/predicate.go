/*
Package predicate implements the token-level boolean test library of
the grammar algebra: a closed set of constructors (§4.2 of the
specification this module implements) plus logical combinators, closed
under AND/OR/NOT.

Following the dynamic-dispatch guidance the wider module follows
("Represent Predicate as a polymorphic value... Avoid hiding the
constructor behind closures where serializability is useful"), Predicate
is a small tagged struct rather than a bare func(Token) bool: every
built-in constructor is distinguishable from a user-supplied Custom for
printing and debugging, while Custom still allows arbitrary functions.
*/
package predicate

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"

	"github.com/npillmayer/morphrule"
)

var foldCaser = cases.Fold()

// fold performs locale-independent case folding, used by every
// case-insensitive constructor below (caseless, in_caseless, etc.) so
// that comparisons do not depend on the Go runtime's default locale.
func fold(s string) string {
	return foldCaser.String(s)
}

// kind tags which constructor produced a Predicate, for String() and for
// tests that want to assert "this predicate is an Eq(...)" without
// calling it.
type kind int

const (
	kNone kind = iota // the zero value: matches nothing
	kEq
	kCaseless
	kIn
	kInCaseless
	kType
	kLengthEq
	kGte
	kLte
	kGram
	kNormalized
	kNormalizedIn
	kCapitalized
	kUpper
	kLower
	kTitle
	kAnd
	kOr
	kNot
	kCustom
)

// Predicate is a pure function over a single Token, built from one of
// the constructors below. The zero value matches nothing.
type Predicate struct {
	kind     kind
	strArg   string
	setArg   map[string]struct{}
	intArg   int
	kindArg  morphrule.Kind
	children []Predicate
	fn       func(morphrule.Token) bool
	label    string // for Custom, an optional display name
}

// Test evaluates the predicate against a token.
func (p Predicate) Test(t morphrule.Token) bool {
	switch p.kind {
	case kEq:
		return t.Value == p.strArg
	case kCaseless:
		return fold(t.Value) == fold(p.strArg)
	case kIn:
		_, ok := p.setArg[t.Value]
		return ok
	case kInCaseless:
		_, ok := p.setArg[fold(t.Value)]
		return ok
	case kType:
		return t.Kind == p.kindArg
	case kLengthEq:
		return utf8.RuneCountInString(t.Value) == p.intArg
	case kGte:
		n, ok := parseInt(t)
		return ok && n >= p.intArg
	case kLte:
		n, ok := parseInt(t)
		return ok && n <= p.intArg
	case kGram:
		for _, f := range t.Forms {
			if f.HasGram(p.strArg) {
				return true
			}
		}
		return false
	case kNormalized:
		target := fold(p.strArg)
		for _, f := range t.Forms {
			if fold(f.Normalized) == target {
				return true
			}
		}
		return false
	case kNormalizedIn:
		for _, f := range t.Forms {
			if _, ok := p.setArg[fold(f.Normalized)]; ok {
				return true
			}
		}
		return false
	case kCapitalized:
		return isCapitalized(t.Value)
	case kUpper:
		return isAllCase(t.Value, true)
	case kLower:
		return isAllCase(t.Value, false)
	case kTitle:
		return isTitle(t.Value)
	case kAnd:
		for _, c := range p.children {
			if !c.Test(t) {
				return false
			}
		}
		return true
	case kOr:
		for _, c := range p.children {
			if c.Test(t) {
				return true
			}
		}
		return false
	case kNot:
		return !p.children[0].Test(t)
	case kCustom:
		return p.fn != nil && p.fn(t)
	default:
		return false
	}
}

func parseInt(t morphrule.Token) (int, bool) {
	if t.Kind != morphrule.Int {
		return 0, false
	}
	n, err := strconv.Atoi(t.Value)
	if err != nil {
		return 0, false
	}
	return n, true
}

func isCapitalized(s string) bool {
	r, _ := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return false
	}
	return unicode.IsUpper(r) && fold(string(r)) != string(r)
}

func isAllCase(s string, upper bool) bool {
	if s == "" {
		return false
	}
	hasLetter := false
	for _, r := range s {
		if !unicode.IsLetter(r) {
			continue
		}
		hasLetter = true
		if upper && !unicode.IsUpper(r) {
			return false
		}
		if !upper && !unicode.IsLower(r) {
			return false
		}
	}
	return hasLetter
}

func isTitle(s string) bool {
	if s == "" {
		return false
	}
	first := true
	for _, r := range s {
		if !unicode.IsLetter(r) {
			first = false
			continue
		}
		if first {
			if !unicode.IsUpper(r) {
				return false
			}
			first = false
		} else if !unicode.IsLower(r) {
			return false
		}
	}
	return true
}

func (p Predicate) String() string {
	switch p.kind {
	case kEq:
		return "eq(" + strconv.Quote(p.strArg) + ")"
	case kCaseless:
		return "caseless(" + strconv.Quote(p.strArg) + ")"
	case kIn:
		return "in_(" + setString(p.setArg) + ")"
	case kInCaseless:
		return "in_caseless(" + setString(p.setArg) + ")"
	case kType:
		return "type(" + p.kindArg.String() + ")"
	case kLengthEq:
		return "length_eq(" + strconv.Itoa(p.intArg) + ")"
	case kGte:
		return "gte(" + strconv.Itoa(p.intArg) + ")"
	case kLte:
		return "lte(" + strconv.Itoa(p.intArg) + ")"
	case kGram:
		return "gram(" + p.strArg + ")"
	case kNormalized:
		return "normalized(" + strconv.Quote(p.strArg) + ")"
	case kNormalizedIn:
		return "normalized_in(" + setString(p.setArg) + ")"
	case kCapitalized:
		return "capitalized?"
	case kUpper:
		return "upper?"
	case kLower:
		return "lower?"
	case kTitle:
		return "title?"
	case kAnd:
		return joinChildren("and_", p.children)
	case kOr:
		return joinChildren("or_", p.children)
	case kNot:
		return "not_(" + p.children[0].String() + ")"
	case kCustom:
		if p.label != "" {
			return "custom(" + p.label + ")"
		}
		return "custom(fn)"
	default:
		return "<nil predicate>"
	}
}

func setString(set map[string]struct{}) string {
	items := make([]string, 0, len(set))
	for k := range set {
		items = append(items, k)
	}
	return "{" + strings.Join(items, ",") + "}"
}

func joinChildren(name string, children []Predicate) string {
	parts := make([]string, len(children))
	for i, c := range children {
		parts[i] = c.String()
	}
	return name + "(" + strings.Join(parts, ", ") + ")"
}

func toSet(items []string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, s := range items {
		set[s] = struct{}{}
	}
	return set
}

// --- Constructors (§4.2) ----------------------------------------------

// Eq matches a token whose value equals v exactly.
func Eq(v string) Predicate { return Predicate{kind: kEq, strArg: v} }

// Caseless matches a token whose value equals v under case folding.
func Caseless(v string) Predicate { return Predicate{kind: kCaseless, strArg: v} }

// In matches a token whose value is a member of set.
func In(set ...string) Predicate { return Predicate{kind: kIn, setArg: toSet(set)} }

// InCaseless matches a token whose folded value is a member of set
// (set entries are compared after folding them too).
func InCaseless(set ...string) Predicate {
	folded := make([]string, len(set))
	for i, s := range set {
		folded[i] = fold(s)
	}
	return Predicate{kind: kInCaseless, setArg: toSet(folded)}
}

// Type matches a token of the given Kind.
func Type(k morphrule.Kind) Predicate { return Predicate{kind: kType, kindArg: k} }

// LengthEq matches a token whose value has exactly n Unicode characters.
func LengthEq(n int) Predicate { return Predicate{kind: kLengthEq, intArg: n} }

// Gte matches an Int token whose parsed value is >= n.
func Gte(n int) Predicate { return Predicate{kind: kGte, intArg: n} }

// Lte matches an Int token whose parsed value is <= n.
func Lte(n int) Predicate { return Predicate{kind: kLte, intArg: n} }

// Gram matches a token with any morphological form carrying grammeme g.
func Gram(g string) Predicate { return Predicate{kind: kGram, strArg: g} }

// Normalized matches a token with any form whose lemma equals w
// (case-insensitively).
func Normalized(w string) Predicate { return Predicate{kind: kNormalized, strArg: w} }

// NormalizedIn matches a token with any form whose lemma is in set.
// Also exported as Dictionary, its synonym from §4.2.
func NormalizedIn(set ...string) Predicate {
	folded := make([]string, len(set))
	for i, s := range set {
		folded[i] = fold(s)
	}
	return Predicate{kind: kNormalizedIn, setArg: toSet(folded)}
}

// Dictionary is a synonym for NormalizedIn.
func Dictionary(set ...string) Predicate { return NormalizedIn(set...) }

// Capitalized matches a token whose first grapheme is uppercase and not
// caseless-equal to its lowercase form.
func Capitalized() Predicate { return Predicate{kind: kCapitalized} }

// Upper matches a token all of whose graphemes are uppercase.
func Upper() Predicate { return Predicate{kind: kUpper} }

// Lower matches a token all of whose graphemes are lowercase.
func Lower() Predicate { return Predicate{kind: kLower} }

// Title matches a token whose first grapheme is upper and the rest lower.
func Title() Predicate { return Predicate{kind: kTitle} }

// And builds the conjunction of ps; an empty conjunction is vacuously
// true.
func And(ps ...Predicate) Predicate { return Predicate{kind: kAnd, children: ps} }

// Or builds the disjunction of ps; an empty disjunction is vacuously
// false.
func Or(ps ...Predicate) Predicate { return Predicate{kind: kOr, children: ps} }

// Not negates p.
func Not(p Predicate) Predicate { return Predicate{kind: kNot, children: []Predicate{p}} }

// Custom wraps a user-supplied function as a Predicate. label is an
// optional display name used by String() for debugging output.
func Custom(label string, fn func(morphrule.Token) bool) Predicate {
	return Predicate{kind: kCustom, fn: fn, label: label}
}
