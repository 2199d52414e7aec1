package lexer

import (
	"errors"

	"sniff/internal/source"
	"sniff/internal/token"
)

// Lexer splits one file version into tokens. Whitespace and comments are
// emitted as regular tokens because style checks inspect them.
type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options
	inPHP  bool
	// последний значимый токен, нужен чтобы отличить '[' массива от индекса
	lastSig token.Kind
	// стек ожидаемых закрывающих ']' (индекс или массив)
	brackets []token.Kind
	errs     []*Error
}

// ErrTooManyTokens is returned when Options.MaxTokens is exceeded.
var ErrTooManyTokens = errors.New("token limit exceeded")

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file:    file,
		cursor:  NewCursor(file),
		opts:    opts,
		lastSig: token.Invalid,
	}
}

// Next returns the next token; ok is false at end of input.
func (lx *Lexer) Next() (token.Token, bool) {
	if lx.cursor.EOF() {
		return token.Token{}, false
	}
	var tok token.Token
	if !lx.inPHP {
		tok = lx.scanInlineHTML()
	} else {
		tok = lx.scanPHP()
	}
	pos := lx.file.Position(tok.Span.Start)
	tok.Line, tok.Col = pos.Line, pos.Col
	if !tok.Kind.IsEmpty() {
		lx.lastSig = tok.Kind
	}
	return tok, true
}

// All tokenizes the remaining input. Lexical problems do not stop
// tokenization; they are joined into the returned error.
func (lx *Lexer) All() ([]token.Token, error) {
	toks := make([]token.Token, 0, len(lx.file.Content)/4+1)
	for {
		tok, ok := lx.Next()
		if !ok {
			break
		}
		toks = append(toks, tok)
		if lx.opts.MaxTokens > 0 && len(toks) > lx.opts.MaxTokens {
			return toks, ErrTooManyTokens
		}
	}
	return toks, lx.Err()
}

// Err joins every lexical error seen so far.
func (lx *Lexer) Err() error {
	if len(lx.errs) == 0 {
		return nil
	}
	errs := make([]error, len(lx.errs))
	for i, e := range lx.errs {
		errs[i] = e
	}
	return errors.Join(errs...)
}

func (lx *Lexer) emit(k token.Kind, start Mark) token.Token {
	sp := lx.cursor.SpanFrom(start)
	return token.Token{
		Kind: k,
		Span: sp,
		Text: string(lx.file.Content[sp.Start:sp.End]),
	}
}

func (lx *Lexer) scanInlineHTML() token.Token {
	start := lx.cursor.Mark()
	if lx.cursor.EatString("<?php") || lx.cursor.EatString("<?PHP") {
		// как и php, забираем один следующий перевод строки в open tag
		if !lx.cursor.Eat('\n') {
			lx.cursor.Eat(' ')
		}
		lx.inPHP = true
		return lx.emit(token.OpenTag, start)
	}
	for !lx.cursor.EOF() && !lx.cursor.HasPrefix("<?php") && !lx.cursor.HasPrefix("<?PHP") {
		lx.cursor.Bump()
	}
	return lx.emit(token.InlineHTML, start)
}

func (lx *Lexer) scanPHP() token.Token {
	start := lx.cursor.Mark()
	ch := lx.cursor.Peek()

	switch {
	case isSpace(ch):
		return lx.scanWhitespace()
	case lx.cursor.HasPrefix("?>"):
		lx.cursor.EatString("?>")
		lx.cursor.Eat('\n')
		lx.inPHP = false
		return lx.emit(token.CloseTag, start)
	case ch == '#' || lx.cursor.HasPrefix("//"):
		return lx.scanLineComment()
	case lx.cursor.HasPrefix("/*"):
		return lx.scanBlockComment()
	case ch == '$' && lx.identStartAt(1):
		lx.cursor.Bump()
		lx.scanIdentBody()
		return lx.emit(token.Variable, start)
	case lx.identStartAt(0):
		return lx.scanIdentOrKeyword()
	case isDec(ch) || (ch == '.' && isDec(lx.cursor.PeekAt(1))):
		return lx.scanNumber()
	case ch == '\'' || ch == '"':
		return lx.scanString(ch)
	default:
		return lx.scanOperatorOrPunct()
	}
}

// scanWhitespace reads blanks up to and including the next '\n'.
func (lx *Lexer) scanWhitespace() token.Token {
	start := lx.cursor.Mark()
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if !isSpace(b) {
			break
		}
		lx.cursor.Bump()
		if b == '\n' {
			break
		}
	}
	return lx.emit(token.Whitespace, start)
}

func (lx *Lexer) scanLineComment() token.Token {
	start := lx.cursor.Mark()
	for !lx.cursor.EOF() {
		if lx.cursor.Peek() == '\n' || lx.cursor.HasPrefix("?>") {
			break
		}
		lx.cursor.Bump()
	}
	return lx.emit(token.Comment, start)
}

func (lx *Lexer) scanBlockComment() token.Token {
	start := lx.cursor.Mark()
	kind := token.Comment
	if lx.cursor.HasPrefix("/**") && !lx.cursor.HasPrefix("/**/") {
		kind = token.DocComment
	}
	lx.cursor.EatString("/*")
	for !lx.cursor.EOF() {
		if lx.cursor.EatString("*/") {
			return lx.emit(kind, start)
		}
		lx.cursor.Bump()
	}
	tok := lx.emit(kind, start)
	lx.report(tok.Span, "unterminated comment")
	return tok
}

func (lx *Lexer) scanIdentBody() {
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if b < 0x80 {
			if !isIdentContinueByte(b) {
				return
			}
			lx.cursor.Bump()
			continue
		}
		r, _ := lx.peekRune()
		if !isIdentContinueRune(r) {
			// невалидный UTF-8 тоже считаем частью имени, как php
			if r != 0xFFFD {
				return
			}
		}
		lx.bumpRune()
	}
}

func (lx *Lexer) scanIdentOrKeyword() token.Token {
	start := lx.cursor.Mark()
	lx.scanIdentBody()
	if lx.cursor.Mark() == start {
		// имя нулевой длины: курсор обязан сдвинуться хотя бы на руну
		lx.bumpRune()
		tok := lx.emit(token.Invalid, start)
		lx.report(tok.Span, "unexpected character "+quoteText(tok.Text))
		return tok
	}
	tok := lx.emit(token.String, start)

	// после -> и :: любое слово считается именем члена, а не ключевое слово
	if lx.lastSig == token.ObjectOperator || lx.lastSig == token.DoubleColon {
		return tok
	}
	k, ok := token.LookupKeyword(tok.Text)
	if !ok {
		return tok
	}
	if k == token.Function && lx.nextSignificantByte() == '(' {
		k = token.Closure
	}
	if k == token.Array && lx.nextSignificantByte() != '(' {
		return tok
	}
	tok.Kind = k
	return tok
}

// nextSignificantByte peeks past whitespace and '&' without consuming.
func (lx *Lexer) nextSignificantByte() byte {
	for n := uint32(0); ; n++ {
		b := lx.cursor.PeekAt(n)
		if b == 0 || (!isSpace(b) && b != '&') {
			return b
		}
	}
}

func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	if lx.cursor.Peek() == '0' && (lx.cursor.PeekAt(1) == 'x' || lx.cursor.PeekAt(1) == 'X') {
		lx.cursor.Bump()
		lx.cursor.Bump()
		for isHex(lx.cursor.Peek()) || lx.cursor.Peek() == '_' {
			lx.cursor.Bump()
		}
		return lx.emit(token.Number, start)
	}
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		switch {
		case isDec(b) || b == '_':
			lx.cursor.Bump()
		case b == '.' && isDec(lx.cursor.PeekAt(1)):
			lx.cursor.Bump()
		case (b == 'e' || b == 'E') && (isDec(lx.cursor.PeekAt(1)) ||
			((lx.cursor.PeekAt(1) == '-' || lx.cursor.PeekAt(1) == '+') && isDec(lx.cursor.PeekAt(2)))):
			lx.cursor.Bump()
			lx.cursor.Bump()
		default:
			return lx.emit(token.Number, start)
		}
	}
	return lx.emit(token.Number, start)
}

func (lx *Lexer) scanString(quote byte) token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump()
	for !lx.cursor.EOF() {
		b := lx.cursor.Bump()
		if b == '\\' {
			lx.cursor.Bump()
			continue
		}
		if b == quote {
			return lx.emit(token.ConstantString, start)
		}
	}
	tok := lx.emit(token.ConstantString, start)
	lx.report(tok.Span, "unterminated string")
	return tok
}
