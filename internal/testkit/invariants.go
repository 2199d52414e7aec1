// Package testkit holds invariant checkers shared by package tests.
package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"sniff/internal/fix"
	"sniff/internal/source"
	"sniff/internal/stream"
	"sniff/internal/token"
)

// CheckTokenInvariants verifies that toks tile sf exactly:
// 1) every span points at sf and lies within its content
// 2) spans are contiguous, starting at 0 and ending at len(content)
// 3) Text equals the bytes under Span, Line/Col match the span start
func CheckTokenInvariants(toks []token.Token, sf *source.File) error {
	if sf == nil {
		return fmt.Errorf("nil file")
	}
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	var next uint32
	for i, t := range toks {
		sp := t.Span
		if sp.File != sf.ID {
			return fmt.Errorf("token %d: span file mismatch: got=%d want=%d", i, sp.File, sf.ID)
		}
		if sp.Start != next {
			return fmt.Errorf("token %d: gap or overlap at %d (expected %d)", i, sp.Start, next)
		}
		if sp.End <= sp.Start || sp.End > lenContent {
			return fmt.Errorf("token %d: bad span %v", i, sp)
		}
		if got := string(sf.Content[sp.Start:sp.End]); got != t.Text {
			return fmt.Errorf("token %d: text %q does not match content %q", i, t.Text, got)
		}
		if pos := sf.Position(sp.Start); pos.Line != t.Line || pos.Col != t.Col {
			return fmt.Errorf("token %d: position %d:%d, want %d:%d", i, t.Line, t.Col, pos.Line, pos.Col)
		}
		next = sp.End
	}
	if next != lenContent {
		return fmt.Errorf("tokens end at %d, content at %d", next, lenContent)
	}
	return nil
}

// CheckStreamPairs verifies MatchingClose(MatchingOpen(c)) == c for every
// closer and the symmetric property for openers.
func CheckStreamPairs(s *stream.Stream) error {
	for i := 0; i < s.Len(); i++ {
		k := s.At(i).Kind
		switch {
		case k.IsOpener():
			c := s.MatchingClose(i)
			if c == stream.NotFound || s.MatchingOpen(c) != i {
				return fmt.Errorf("opener %d (%s): partner %d does not point back", i, k, c)
			}
		case k.IsCloser():
			o := s.MatchingOpen(i)
			if o == stream.NotFound || s.MatchingClose(o) != i {
				return fmt.Errorf("closer %d (%s): partner %d does not point back", i, k, o)
			}
		}
	}
	return nil
}

// CheckEditsDisjoint verifies no two committed edits overlap.
func CheckEditsDisjoint(edits []fix.Edit) error {
	for i := range edits {
		for j := i + 1; j < len(edits); j++ {
			if overlap(edits[i].Range, edits[j].Range) {
				return fmt.Errorf("edits %s and %s overlap", edits[i], edits[j])
			}
		}
	}
	return nil
}

func overlap(a, b fix.Range) bool {
	switch {
	case a.Empty() && b.Empty():
		return false
	case a.Empty():
		return b.Start <= a.Start && a.Start < b.End
	case b.Empty():
		return a.Start <= b.Start && b.Start < a.End
	}
	return a.Start < b.End && b.Start < a.End
}
