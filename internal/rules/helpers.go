package rules

import (
	"sniff/internal/stream"
	"sniff/internal/token"
)

var (
	functionSet = token.NewKindSet(token.Function)
	// токены, которые могут стоять между модификаторами и function
	declarationNoise = token.EmptyTokens.Union(token.NewKindSet(
		token.Static, token.Abstract, token.Final,
	))
	modifierOrNoise = declarationNoise.Union(token.ScopeModifiers)
)

// visibilityOf returns the scope modifier belonging to the declaration that
// ends at keyword, or NotFound.
func visibilityOf(s *stream.Stream, keyword int) int {
	for i := keyword - 1; i >= 0; i-- {
		k := s.At(i).Kind
		if !modifierOrNoise.Has(k) {
			return stream.NotFound
		}
		if k.IsScopeModifier() {
			return i
		}
	}
	return stream.NotFound
}

// memberFunctions returns function tokens declared directly in the body
// of the class-like token owner.
func memberFunctions(s *stream.Stream, owner int) []int {
	open := s.ScopeOpener(owner)
	if open == stream.NotFound {
		return nil
	}
	end := s.MatchingClose(open)
	var out []int
	for i := s.FindNext(functionSet, open+1, end, stream.Include); i != stream.NotFound; i = s.FindNext(functionSet, i+1, end, stream.Include) {
		if s.Enclosing(i) != open {
			continue
		}
		out = append(out, i)
		if c := s.ScopeCloser(i); c != stream.NotFound {
			i = c
		}
	}
	return out
}

var visibilityRank = map[token.Kind]int{
	token.Public:    0,
	token.Protected: 1,
	token.Private:   2,
}
