package lexer

import (
	"sniff/internal/token"
)

type opEntry struct {
	text string
	kind token.Kind
}

// Жадность: длинные операторы раньше коротких.
var operators = []opEntry{
	{"<=>", token.Spaceship},
	{"===", token.IsIdentical},
	{"!==", token.IsNotIdentical},
	{"**=", token.PowEqual},
	{"<<=", token.SLEqual},
	{">>=", token.SREqual},
	{"??=", token.CoalesceEqual},
	{"...", token.Ellipsis},
	{"==", token.IsEqual},
	{"!=", token.IsNotEqual},
	{"<>", token.IsNotEqual},
	{"<=", token.LessEqual},
	{">=", token.GreaterEqual},
	{"+=", token.PlusEqual},
	{"-=", token.MinusEqual},
	{"*=", token.MulEqual},
	{"/=", token.DivEqual},
	{".=", token.ConcatEqual},
	{"%=", token.ModEqual},
	{"&=", token.AndEqual},
	{"|=", token.OrEqual},
	{"^=", token.XorEqual},
	{"??", token.Coalesce},
	{"::", token.DoubleColon},
	{"->", token.ObjectOperator},
	{"=>", token.DoubleArrow},
	{"&&", token.BooleanAnd},
	{"||", token.BooleanOr},
	{"**", token.Pow},
	{"++", token.Inc},
	{"--", token.Dec},
	{"<<", token.SL},
	{">>", token.SR},
	{"=", token.Equal},
	{"+", token.Plus},
	{"-", token.Minus},
	{"*", token.Multiply},
	{"/", token.Divide},
	{"%", token.Modulus},
	{"<", token.Less},
	{">", token.Greater},
	{"!", token.BooleanNot},
	{"&", token.BitwiseAnd},
	{"|", token.BitwiseOr},
	{"^", token.BitwiseXor},
	{"~", token.BitwiseNot},
	{"?", token.Question},
	{".", token.Concat},
	{"\\", token.Backslash},
	{"@", token.At},
	{";", token.Semicolon},
	{",", token.Comma},
	{":", token.Colon},
	{"{", token.OpenCurly},
	{"}", token.CloseCurly},
	{"(", token.OpenParen},
	{")", token.CloseParen},
}

func (lx *Lexer) scanOperatorOrPunct() token.Token {
	start := lx.cursor.Mark()

	switch lx.cursor.Peek() {
	case '[':
		lx.cursor.Bump()
		if lx.opensShortArray() {
			lx.brackets = append(lx.brackets, token.CloseShortArray)
			return lx.emit(token.OpenShortArray, start)
		}
		lx.brackets = append(lx.brackets, token.CloseSquare)
		return lx.emit(token.OpenSquare, start)
	case ']':
		lx.cursor.Bump()
		kind := token.CloseSquare
		if n := len(lx.brackets); n > 0 {
			kind = lx.brackets[n-1]
			lx.brackets = lx.brackets[:n-1]
		}
		return lx.emit(kind, start)
	}

	for _, op := range operators {
		if lx.cursor.EatString(op.text) {
			return lx.emit(op.kind, start)
		}
	}

	lx.bumpRune()
	tok := lx.emit(token.Invalid, start)
	lx.report(tok.Span, "unexpected character "+quoteText(tok.Text))
	return tok
}

// opensShortArray: '[' после значения означает индекс, иначе литерал массива.
func (lx *Lexer) opensShortArray() bool {
	switch lx.lastSig {
	case token.Variable, token.String, token.ConstantString,
		token.CloseParen, token.CloseSquare, token.CloseShortArray, token.CloseCurly:
		return false
	}
	return true
}

func quoteText(s string) string {
	return "'" + s + "'"
}
