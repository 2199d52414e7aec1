// Package engine runs checks over a token stream and drives iterative fixing.
//
// One pass: build the stream, index checks by token kind, walk the stream
// once, call interested checks in registration order, collect violations
// and committed changesets. A check that returns an error or panics is
// reported once as Internal.CheckError and skipped for the rest of the pass;
// other checks are not affected.
//
// Fix repeats passes over the corrected text until no edits remain, the
// content repeats, or MaxPasses is reached.
package engine
