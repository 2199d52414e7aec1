// Package stream wraps one file's token sequence with structural links.
//
// Invariants:
//   - A Stream is built once per pass and never mutated afterwards.
//   - Token index is the identity of a token; every link is an index.
//   - MatchingClose(MatchingOpen(c)) == c for every closer c, and vice versa.
//   - Navigation costs O(distance scanned), never O(len(stream)).
package stream
