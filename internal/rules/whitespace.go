package rules

import (
	"strings"

	"sniff/internal/check"
	"sniff/internal/fix"
	"sniff/internal/stream"
	"sniff/internal/token"
)

var whitespaceSet = token.NewKindSet(token.Whitespace)

// functionClosingBraceSpace forbids blank lines between the last content of
// a function body and its closing brace.
type functionClosingBraceSpace struct{}

func (functionClosingBraceSpace) Kinds() []token.Kind {
	return []token.Kind{token.Function, token.Closure}
}

func (functionClosingBraceSpace) Process(ctx *check.Context, pos int) error {
	s := ctx.Stream
	opener, closer := s.ScopeOpener(pos), s.ScopeCloser(pos)
	if opener == stream.NotFound || closer == stream.NotFound {
		// abstract or interface method
		return nil
	}
	// комментарии считаются содержимым; у пустого тела содержимым будет сама "{"
	prev := s.FindPrevious(whitespaceSet, closer-1, -1, stream.Exclude)

	braceLine := s.At(closer).Line
	found := int(braceLine) - int(s.At(prev).LastLine()) - 1
	switch {
	case found < 0:
		if ctx.AddFixableError(closer, "ContentBeforeClose", "Closing brace of nested function must be on a new line") {
			ctx.Fix(closer, fix.InsertText(closer, "\n"))
		}
	case found > 0:
		if !ctx.AddFixableError(closer, "SpacingBeforeNestedClose", "Expected 0 blank lines before closing brace of function; %d found", found) {
			return nil
		}
		// keep the line right above the brace so indentation survives
		end := prev + 1
		for end < closer && s.At(end).Line < braceLine-1 {
			end++
		}
		if end == prev+1 {
			end = prev + 2
		}
		ctx.Fix(closer, fix.DeleteRange(prev+1, end))
	}
	return nil
}

// assignmentSpacing wants whitespace on both sides of every assignment.
type assignmentSpacing struct{}

func (assignmentSpacing) Kinds() []token.Kind { return token.AssignmentTokens.Kinds() }

func (assignmentSpacing) Process(ctx *check.Context, pos int) error {
	s := ctx.Stream
	left := s.Kind(pos-1) == token.Whitespace
	right := s.Kind(pos+1) == token.Whitespace
	if left && right {
		return nil
	}
	// declare(strict_types=1)
	if pos > 0 && s.At(pos-1).Text == "strict_types" {
		return nil
	}
	if !ctx.AddFixableError(pos, "Invalid", "Add a single space around assignment operators") {
		return nil
	}
	var edits []fix.Edit
	if !left {
		edits = append(edits, fix.InsertText(pos, " "))
	}
	if !right {
		edits = append(edits, fix.InsertAfter(pos, " "))
	}
	ctx.Fix(pos, edits...)
	return nil
}

// commaSpacing wants whitespace after a comma that is not the last token
// on its line.
type commaSpacing struct{}

func (commaSpacing) Kinds() []token.Kind { return []token.Kind{token.Comma} }

func (commaSpacing) Process(ctx *check.Context, pos int) error {
	s := ctx.Stream
	next := pos + 1
	if next >= s.Len() {
		return nil
	}
	if s.At(next).Line != s.At(pos).Line || s.At(next).Kind == token.Whitespace {
		return nil
	}
	if trailingArrayComma(s, next) {
		return nil
	}
	if ctx.AddFixableError(pos, "Invalid", "Add a single space after each comma delimiter") {
		ctx.Fix(pos, fix.InsertAfter(pos, " "))
	}
	return nil
}

// trailingArrayComma reports whether closer ends a multi-line array, so a
// comma right before it is the trailing one MultiLineArrayComma asks for.
func trailingArrayComma(s *stream.Stream, closer int) bool {
	var open int
	switch s.Kind(closer) {
	case token.CloseShortArray:
		open = s.MatchingOpen(closer)
	case token.CloseParen:
		open = s.MatchingOpen(closer)
		if open == stream.NotFound || s.Kind(s.PrevContent(open-1)) != token.Array {
			return false
		}
	default:
		return false
	}
	return open != stream.NotFound && s.At(open).Line != s.At(closer).Line
}

// discourageFitzinator warns about whitespace left before a line break.
type discourageFitzinator struct{}

func (discourageFitzinator) Kinds() []token.Kind { return []token.Kind{token.Whitespace} }

func (discourageFitzinator) Process(ctx *check.Context, pos int) error {
	s := ctx.Stream
	t := s.At(pos)
	if pos+1 < s.Len() && s.At(pos+1).Line == t.Line {
		return nil
	}
	idx := strings.IndexAny(t.Text, "\r\n")
	if idx <= 0 {
		return nil
	}
	if ctx.AddFixableWarning(pos, "trimWhiteSpace", "Please trim any trailing whitespace") {
		ctx.Fix(pos, fix.ReplaceToken(pos, t.Text[idx:]))
	}
	return nil
}
