/*
Package morphrule implements a token-level Earley parser with a
morphology-aware grammar algebra, aimed at rule-based information
extraction from tagged natural-language text.

Given a sequence of morphologically tagged tokens and a declarative
grammar built from package grammar, the system locates all non-overlapping
spans matching the grammar (package earley), optionally filtered by
grammatical-agreement relations (package agreement), and produces
structured facts via a tree-walking interpreter (package interp) over a
small algebra of named records (package fact).

Package structure, leaves first:

■ morphrule (this package): shared data carriers — Token, MorphForm, Span.

■ predicate: token-level boolean tests and their logical combinators.

■ grammar: composable grammar values — Rule, Production, Term, forward
references, and the algebra described in the package doc of grammar.

■ earley: the chart parser — predict/scan/complete, non-overlap
resolution, parse-tree (Match) assembly.

■ agreement: a post-hoc filter over parse trees, checking grammatical
agreement (gender/number/case) between tagged tokens.

■ interp: a bottom-up tree-walking interpreter evaluating a small spec
algebra into facts, normalized strings, or constants.

■ fact: named record schemas with typed, optionally repeatable
attributes.

The tokenizer, sentence segmenter, morphological analyzer, and any
concrete domain grammars (dates, amounts, names) are treated as external
collaborators; this module only specifies their interface where needed
(see interp.MorphService).
*/
package morphrule
