// Package diag defines the violation model shared by checks, the engine and
// the host.
//
// # Data model
//
// Violation is the central record:
//
//   - Pos – token index inside the pass that produced it; identity together
//     with Rule.
//   - Rule – check identifier ("Arrays.MultiLineArrayComma"); Code is the
//     sub-code the check chose ("Invalid", "SpacingAfter", ...).
//   - Severity – warning or error.
//   - Fixable / Fixed – whether the check proposed a changeset and whether
//     that changeset was committed.
//
// Report collects violations for one file. Duplicates at the same position
// from the same rule are dropped on Add; duplicates from different rules are
// kept. Sort gives a deterministic order for output and golden tests.
//
// Package diag does not format for terminals or do IO; see internal/diagfmt.
package diag
