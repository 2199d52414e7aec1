package token

import "strings"

var keywords = map[string]Kind{
	"class":      Class,
	"interface":  Interface,
	"trait":      Trait,
	"function":   Function,
	"public":     Public,
	"protected":  Protected,
	"private":    Private,
	"static":     Static,
	"abstract":   Abstract,
	"final":      Final,
	"return":     Return,
	"extends":    Extends,
	"implements": Implements,
	"array":      Array,
	"case":       Case,
	"default":    Default,
	"switch":     Switch,
	"if":         If,
	"else":       Else,
	"elseif":     Elseif,
	"for":        For,
	"foreach":    Foreach,
	"while":      While,
	"do":         Do,
	"new":        New,
	"namespace":  Namespace,
	"use":        Use,
	"const":      Const,
	"var":        Var,
	"echo":       Echo,
	"null":       Null,
	"true":       True,
	"false":      False,
}

// LookupKeyword возвращает kind ключевого слова.
// PHP keywords are case-insensitive, so the lookup lowercases first.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[strings.ToLower(ident)]
	return k, ok
}
