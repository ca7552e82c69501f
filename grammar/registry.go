package grammar

import (
	"fmt"

	"github.com/google/uuid"
)

// Grammar owns a root rule and offers a construction-time sanity check
// over the whole reachable rule graph. It holds no forward-reference
// registry: Define writes a placeholder's productions into the placeholder
// Rule itself, so there is no process-wide mutable state.
type Grammar struct {
	root *Rule
}

// NewGrammar wraps root as a Grammar.
func NewGrammar(root *Rule) *Grammar {
	return &Grammar{root: root}
}

// Root returns the grammar's root rule.
func (g *Grammar) Root() *Rule { return g.root }

// Validate walks every rule reachable from the root and reports an error
// for any Forward() placeholder that was never passed to Define — a
// construction-time mistake distinct from the normal "no match" outcome
// a parse produces for an ordinary non-matching grammar (§7 "Forward-
// reference errors": the parser tolerates this at parse time; Validate
// exists so callers can catch it earlier instead).
func (g *Grammar) Validate() error {
	seen := make(map[uuid.UUID]bool)
	var walk func(r *Rule) error
	walk = func(r *Rule) error {
		if seen[r.id] {
			return nil
		}
		seen[r.id] = true
		if r.Productions == nil {
			return fmt.Errorf("undefined rule reference: %s", r.String())
		}
		for _, p := range r.Productions {
			for _, t := range p.Terms {
				if !t.IsTerminal() {
					if err := walk(t.rule); err != nil {
						return err
					}
				}
			}
		}
		return nil
	}
	return walk(g.root)
}
