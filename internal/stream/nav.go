package stream

import (
	"sniff/internal/token"
)

// Mode selects whether navigation stops on a member of the set or on the
// first token outside it.
type Mode uint8

const (
	Include Mode = iota
	Exclude
)

// FindNext scans forward from `from` (inclusive) to `bound` (exclusive).
// A negative bound means the end of the stream.
func (s *Stream) FindNext(set token.KindSet, from, bound int, mode Mode) int {
	if bound < 0 || bound > len(s.tokens) {
		bound = len(s.tokens)
	}
	if from < 0 {
		from = 0
	}
	want := mode == Include
	for i := from; i < bound; i++ {
		if set.Has(s.tokens[i].Kind) == want {
			return i
		}
	}
	return NotFound
}

// FindPrevious scans backward from `from` (inclusive) down to `bound`
// (exclusive). A negative bound means the start of the stream.
func (s *Stream) FindPrevious(set token.KindSet, from, bound int, mode Mode) int {
	if from >= len(s.tokens) {
		from = len(s.tokens) - 1
	}
	if bound < -1 {
		bound = -1
	}
	want := mode == Include
	for i := from; i > bound; i-- {
		if set.Has(s.tokens[i].Kind) == want {
			return i
		}
	}
	return NotFound
}

// NextContent returns the first non-whitespace, non-comment token at or after from.
func (s *Stream) NextContent(from int) int {
	return s.FindNext(token.EmptyTokens, from, -1, Exclude)
}

// PrevContent returns the last non-whitespace, non-comment token at or before from.
func (s *Stream) PrevContent(from int) int {
	return s.FindPrevious(token.EmptyTokens, from, -1, Exclude)
}

// FirstOnLine returns the first token sharing i's starting line.
func (s *Stream) FirstOnLine(i int) int {
	if i < 0 || i >= len(s.tokens) {
		return NotFound
	}
	line := s.tokens[i].Line
	for i > 0 && s.tokens[i-1].Line == line {
		i--
	}
	return i
}

// LastOnLine returns the last token starting on i's line.
func (s *Stream) LastOnLine(i int) int {
	if i < 0 || i >= len(s.tokens) {
		return NotFound
	}
	line := s.tokens[i].Line
	for i+1 < len(s.tokens) && s.tokens[i+1].Line == line {
		i++
	}
	return i
}

// LineTokens returns the index range [start, end) of tokens starting on
// the same line as token i.
func (s *Stream) LineTokens(i int) (start, end int) {
	start = s.FirstOnLine(i)
	if start == NotFound {
		return NotFound, NotFound
	}
	return start, s.LastOnLine(i) + 1
}

// IsBlankLine reports whether the line starting at token i holds only
// whitespace.
func (s *Stream) IsBlankLine(i int) bool {
	start, end := s.LineTokens(i)
	if start == NotFound {
		return false
	}
	for j := start; j < end; j++ {
		if s.tokens[j].Kind != token.Whitespace {
			return false
		}
	}
	return true
}
