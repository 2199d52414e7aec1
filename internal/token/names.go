package token

var kindNames = [numKinds]string{
	Invalid:         "T_INVALID",
	StartOfFile:     "T_START_OF_FILE",
	OpenTag:         "T_OPEN_TAG",
	CloseTag:        "T_CLOSE_TAG",
	InlineHTML:      "T_INLINE_HTML",
	Whitespace:      "T_WHITESPACE",
	Comment:         "T_COMMENT",
	DocComment:      "T_DOC_COMMENT",
	Variable:        "T_VARIABLE",
	String:          "T_STRING",
	ConstantString:  "T_CONSTANT_ENCAPSED_STRING",
	Number:          "T_NUMBER",
	Class:           "T_CLASS",
	Interface:       "T_INTERFACE",
	Trait:           "T_TRAIT",
	Function:        "T_FUNCTION",
	Closure:         "T_CLOSURE",
	Public:          "T_PUBLIC",
	Protected:       "T_PROTECTED",
	Private:         "T_PRIVATE",
	Static:          "T_STATIC",
	Abstract:        "T_ABSTRACT",
	Final:           "T_FINAL",
	Return:          "T_RETURN",
	Extends:         "T_EXTENDS",
	Implements:      "T_IMPLEMENTS",
	Array:           "T_ARRAY",
	Case:            "T_CASE",
	Default:         "T_DEFAULT",
	Switch:          "T_SWITCH",
	If:              "T_IF",
	Else:            "T_ELSE",
	Elseif:          "T_ELSEIF",
	For:             "T_FOR",
	Foreach:         "T_FOREACH",
	While:           "T_WHILE",
	Do:              "T_DO",
	New:             "T_NEW",
	Namespace:       "T_NAMESPACE",
	Use:             "T_USE",
	Const:           "T_CONST",
	Var:             "T_VAR",
	Echo:            "T_ECHO",
	Null:            "T_NULL",
	True:            "T_TRUE",
	False:           "T_FALSE",
	OpenCurly:       "T_OPEN_CURLY_BRACKET",
	CloseCurly:      "T_CLOSE_CURLY_BRACKET",
	OpenParen:       "T_OPEN_PARENTHESIS",
	CloseParen:      "T_CLOSE_PARENTHESIS",
	OpenSquare:      "T_OPEN_SQUARE_BRACKET",
	CloseSquare:     "T_CLOSE_SQUARE_BRACKET",
	OpenShortArray:  "T_OPEN_SHORT_ARRAY",
	CloseShortArray: "T_CLOSE_SHORT_ARRAY",
	Semicolon:       "T_SEMICOLON",
	Comma:           "T_COMMA",
	Colon:           "T_COLON",
	DoubleColon:     "T_DOUBLE_COLON",
	ObjectOperator:  "T_OBJECT_OPERATOR",
	DoubleArrow:     "T_DOUBLE_ARROW",
	Question:        "T_INLINE_THEN",
	Concat:          "T_STRING_CONCAT",
	Ellipsis:        "T_ELLIPSIS",
	Backslash:       "T_NS_SEPARATOR",
	At:              "T_ASPERAND",
	Equal:           "T_EQUAL",
	PlusEqual:       "T_PLUS_EQUAL",
	MinusEqual:      "T_MINUS_EQUAL",
	MulEqual:        "T_MUL_EQUAL",
	DivEqual:        "T_DIV_EQUAL",
	ConcatEqual:     "T_CONCAT_EQUAL",
	ModEqual:        "T_MOD_EQUAL",
	PowEqual:        "T_POW_EQUAL",
	AndEqual:        "T_AND_EQUAL",
	OrEqual:         "T_OR_EQUAL",
	XorEqual:        "T_XOR_EQUAL",
	SLEqual:         "T_SL_EQUAL",
	SREqual:         "T_SR_EQUAL",
	CoalesceEqual:   "T_COALESCE_EQUAL",
	IsEqual:         "T_IS_EQUAL",
	IsIdentical:     "T_IS_IDENTICAL",
	IsNotEqual:      "T_IS_NOT_EQUAL",
	IsNotIdentical:  "T_IS_NOT_IDENTICAL",
	Less:            "T_LESS_THAN",
	Greater:         "T_GREATER_THAN",
	LessEqual:       "T_IS_SMALLER_OR_EQUAL",
	GreaterEqual:    "T_IS_GREATER_OR_EQUAL",
	Spaceship:       "T_SPACESHIP",
	Coalesce:        "T_COALESCE",
	Plus:            "T_PLUS",
	Minus:           "T_MINUS",
	Multiply:        "T_MULTIPLY",
	Divide:          "T_DIVIDE",
	Modulus:         "T_MODULUS",
	Pow:             "T_POW",
	Inc:             "T_INC",
	Dec:             "T_DEC",
	BooleanAnd:      "T_BOOLEAN_AND",
	BooleanOr:       "T_BOOLEAN_OR",
	BooleanNot:      "T_BOOLEAN_NOT",
	BitwiseAnd:      "T_BITWISE_AND",
	BitwiseOr:       "T_BITWISE_OR",
	BitwiseXor:      "T_BITWISE_XOR",
	BitwiseNot:      "T_BITWISE_NOT",
	SL:              "T_SL",
	SR:              "T_SR",
}

var nameToKind = func() map[string]Kind {
	m := make(map[string]Kind, len(kindNames))
	for k, name := range kindNames {
		if name != "" {
			m[name] = Kind(k)
		}
	}
	return m
}()

// Name returns the stable "T_*" identifier of the kind.
func (k Kind) Name() string {
	if !k.Valid() {
		return "T_UNKNOWN"
	}
	return kindNames[k]
}

func (k Kind) String() string { return k.Name() }

// LookupName maps a "T_*" identifier back to its Kind.
func LookupName(name string) (Kind, bool) {
	k, ok := nameToKind[name]
	return k, ok
}
