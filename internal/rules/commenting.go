package rules

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"

	"sniff/internal/check"
	"sniff/internal/fix"
	"sniff/internal/stream"
	"sniff/internal/token"
)

var (
	// модификаторы и пробелы между докблоком и function
	methodPrefixes = token.NewKindSet(
		token.Whitespace, token.Public, token.Protected, token.Private,
		token.Static, token.Abstract, token.Final,
	)
	closureSet = token.NewKindSet(token.Closure)
	returnSet  = token.NewKindSet(token.Return)

	paramTagRe   = regexp.MustCompile(`@param\b[^\n$]*(\$[\p{L}\p{N}\p{Mn}_]+)`)
	returnTagRe  = regexp.MustCompile(`@return\b`)
	inheritDocRe = regexp.MustCompile(`(?i)\{@inheritdoc\}`)
)

// functionComment requires a docblock on named functions, with @param and
// @return tags, exactly one blank line before it and none after.
type functionComment struct{}

func (functionComment) Kinds() []token.Kind { return []token.Kind{token.Function} }

func (functionComment) Process(ctx *check.Context, pos int) error {
	s := ctx.Stream
	// use function Foo\bar;
	if s.Kind(s.PrevContent(pos-1)) == token.Use {
		return nil
	}
	name := s.DeclarationName(pos)
	if strings.HasPrefix(name, "test") || name == "setUp" {
		return nil
	}

	doc := s.FindPrevious(methodPrefixes, pos-1, -1, stream.Exclude)
	switch s.Kind(doc) {
	case token.DocComment:
	case token.Comment:
		ctx.AddError(pos, "WrongStyle", `You must use "/**" style comments for a function comment`)
		return nil
	default:
		ctx.AddError(pos, "Missing", "Missing doc comment for function %s()", name)
		return nil
	}

	declStart := s.NextContent(doc + 1)
	if s.At(declStart).Line > s.At(doc).LastLine()+1 {
		ctx.AddError(pos, "SpacingAfter", "There must be no blank lines after the function comment")
	}

	text := s.At(doc).Text
	if inheritDocRe.MatchString(text) {
		return nil
	}
	spacingBeforeDocblock(ctx, doc)
	if name != "__construct" && name != "__destruct" && !returnTagRe.MatchString(text) {
		if ret := valueReturn(s, pos); ret != stream.NotFound {
			ctx.AddError(ret, "MissingReturn", "Missing @return tag in function comment")
		}
	}
	missingParams(ctx, pos, text)
	return nil
}

func spacingBeforeDocblock(ctx *check.Context, doc int) {
	s := ctx.Stream
	before := s.FindPrevious(whitespaceSet, doc-1, -1, stream.Exclude)
	if before == stream.NotFound {
		return
	}
	last := s.At(before).LastLine()
	found := int(s.At(doc).Line) - int(last) - 1
	if found == 1 || (found == 0 && s.At(before).Kind == token.OpenCurly) {
		return
	}
	if found < 0 {
		found = 0
	}
	if !ctx.AddFixableError(doc, "SpacingBeforeDocblock", "Expected 1 blank line before docblock; %d found", found) {
		return
	}
	if found > 1 {
		// оставляем одну пустую строку и отступ докблока
		start := before + 1
		for start < doc && s.At(start).Line <= last {
			start++
		}
		end := start
		for end < doc && s.At(end).Line < s.At(doc).Line-1 {
			end++
		}
		ctx.Fix(doc, fix.DeleteRange(start, end))
		return
	}
	at := doc
	if s.Kind(doc-1) == token.Whitespace {
		at = doc - 1
	}
	ctx.Fix(doc, fix.InsertText(at, "\n"))
}

// valueReturn returns the first return with a value inside the body of
// function fn, skipping closures; NotFound when there is none.
func valueReturn(s *stream.Stream, fn int) int {
	open, closer := s.ScopeOpener(fn), s.ScopeCloser(fn)
	if open == stream.NotFound {
		return stream.NotFound
	}
	kinds := closureSet.Union(returnSet)
	for i := s.FindNext(kinds, open+1, closer, stream.Include); i != stream.NotFound; i = s.FindNext(kinds, i+1, closer, stream.Include) {
		if s.Kind(i) == token.Closure {
			if c := s.ScopeCloser(i); c != stream.NotFound {
				i = c
			}
			continue
		}
		next := s.FindNext(whitespaceSet, i+1, closer, stream.Exclude)
		if s.Kind(next) != token.Semicolon {
			return i
		}
	}
	return stream.NotFound
}

func missingParams(ctx *check.Context, fn int, doc string) {
	s := ctx.Stream
	open, closer := s.ParenOpener(fn), s.ParenCloser(fn)
	if open == stream.NotFound || closer == stream.NotFound {
		return
	}
	// имена сравниваются в NFC: "é" в докблоке и "e\u0301" в сигнатуре одно имя
	tagged := map[string]bool{}
	for _, m := range paramTagRe.FindAllStringSubmatch(doc, -1) {
		tagged[norm.NFC.String(m[1])] = true
	}
	vars := token.NewKindSet(token.Variable)
	for i := s.FindNext(vars, open+1, closer, stream.Include); i != stream.NotFound; i = s.FindNext(vars, i+1, closer, stream.Include) {
		v := s.At(i).Text
		if !tagged[norm.NFC.String(v)] {
			ctx.AddError(i, "MissingParamTag", `Doc comment for parameter "%s" missing`, v)
		}
	}
}
