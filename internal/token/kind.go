package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous or unrecognised token.
	Invalid Kind = iota
	// StartOfFile is a sentinel never produced by a tokenizer. Checks that
	// register no kinds are dispatched once per file under it.
	StartOfFile

	OpenTag    // <?php
	CloseTag   // ?>
	InlineHTML // text outside php tags
	Whitespace
	Comment    // // ... , # ... , /* ... */
	DocComment // /** ... */

	Variable       // $name
	String         // bare identifier (T_STRING)
	ConstantString // '...' or "..."
	Number

	// keywords
	Class
	Interface
	Trait
	Function
	Closure // function keyword with no name
	Public
	Protected
	Private
	Static
	Abstract
	Final
	Return
	Extends
	Implements
	Array // array(
	Case
	Default
	Switch
	If
	Else
	Elseif
	For
	Foreach
	While
	Do
	New
	Namespace
	Use
	Const
	Var
	Echo
	Null
	True
	False

	// brackets
	OpenCurly       // {
	CloseCurly      // }
	OpenParen       // (
	CloseParen      // )
	OpenSquare      // [ (index access)
	CloseSquare     // ]
	OpenShortArray  // [ (array literal)
	CloseShortArray // ]

	// punctuation
	Semicolon
	Comma
	Colon
	DoubleColon    // ::
	ObjectOperator // ->
	DoubleArrow    // =>
	Question
	Concat // .
	Ellipsis
	Backslash
	At

	// assignment
	Equal         // =
	PlusEqual     // +=
	MinusEqual    // -=
	MulEqual      // *=
	DivEqual      // /=
	ConcatEqual   // .=
	ModEqual      // %=
	PowEqual      // **=
	AndEqual      // &=
	OrEqual       // |=
	XorEqual      // ^=
	SLEqual       // <<=
	SREqual       // >>=
	CoalesceEqual // ??=

	// comparison / arithmetic / logic
	IsEqual        // ==
	IsIdentical    // ===
	IsNotEqual     // !=
	IsNotIdentical // !==
	Less           // <
	Greater        // >
	LessEqual      // <=
	GreaterEqual   // >=
	Spaceship      // <=>
	Coalesce       // ??
	Plus
	Minus
	Multiply
	Divide
	Modulus
	Pow // **
	Inc // ++
	Dec // --
	BooleanAnd
	BooleanOr
	BooleanNot
	BitwiseAnd
	BitwiseOr
	BitwiseXor
	BitwiseNot
	SL // <<
	SR // >>

	numKinds
)

// NumKinds is the number of defined kinds, sentinel included.
const NumKinds = int(numKinds)

// Valid reports whether k is a defined kind.
func (k Kind) Valid() bool { return k < numKinds }

// IsEmpty reports whether tokens of this kind carry no code (whitespace and comments).
func (k Kind) IsEmpty() bool {
	return k == Whitespace || k == Comment || k == DocComment
}

// IsAssignment reports whether k is an assignment operator.
func (k Kind) IsAssignment() bool {
	return k >= Equal && k <= CoalesceEqual
}

// IsScopeModifier reports whether k is a visibility keyword.
func (k Kind) IsScopeModifier() bool {
	return k == Public || k == Protected || k == Private
}

// IsOpener reports whether k opens a bracketed structure.
func (k Kind) IsOpener() bool {
	switch k {
	case OpenCurly, OpenParen, OpenSquare, OpenShortArray:
		return true
	}
	return false
}

// IsCloser reports whether k closes a bracketed structure.
func (k Kind) IsCloser() bool {
	switch k {
	case CloseCurly, CloseParen, CloseSquare, CloseShortArray:
		return true
	}
	return false
}

// Closer returns the closing kind paired with an opener, or Invalid.
func (k Kind) Closer() Kind {
	switch k {
	case OpenCurly:
		return CloseCurly
	case OpenParen:
		return CloseParen
	case OpenSquare:
		return CloseSquare
	case OpenShortArray:
		return CloseShortArray
	}
	return Invalid
}

// IsScopeOwner reports whether a token of kind k owns a curly-brace scope.
func (k Kind) IsScopeOwner() bool {
	switch k {
	case Class, Interface, Trait, Function, Closure, Namespace,
		Switch, If, Else, Elseif, For, Foreach, While, Do:
		return true
	}
	return false
}
