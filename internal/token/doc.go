// Package token defines lexical token kinds for the PHP subset sniff inspects.
// Invariants:
//   - Token.Text is exactly the source bytes covered by Token.Span.
//   - Whitespace is a real token (not trivia); a whitespace run is split
//     after every '\n', so each whitespace token lies on exactly one line.
//   - Line comments never include their terminating newline.
//   - Kind names (Kind.Name) are stable "T_*" identifiers that hosts and
//     configuration may refer to; LookupName is their inverse.
package token
