// Package fix implements the transactional edit buffer used by checks.
//
// Edits address tokens, not bytes: Range{Start, End} is a half-open interval
// of token indices from the pass that proposed it. An empty range inserts
// text before token Start. Because every coordinate refers to the original
// pass, edits never shift one another and Apply can run in a single walk.
//
// A Changeset groups edits that must land together. The Fixer admits a
// changeset only when none of its ranges conflict with ranges committed
// earlier in the same pass; otherwise the whole changeset is discarded and
// recorded as a Discard. Resolve is the same reducer without the state
// machine, usable on a list of proposals.
package fix
