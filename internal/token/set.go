package token

import "math/bits"

// KindSet is a fixed-size bitset over Kind.
type KindSet [2]uint64

// NewKindSet builds a set from the given kinds.
func NewKindSet(kinds ...Kind) KindSet {
	var s KindSet
	for _, k := range kinds {
		s = s.With(k)
	}
	return s
}

// With returns a copy of s that also contains k.
func (s KindSet) With(k Kind) KindSet {
	s[k>>6] |= 1 << (k & 63)
	return s
}

// Has reports whether k is in the set.
func (s KindSet) Has(k Kind) bool {
	return s[k>>6]&(1<<(k&63)) != 0
}

// Union returns the union of two sets.
func (s KindSet) Union(o KindSet) KindSet {
	return KindSet{s[0] | o[0], s[1] | o[1]}
}

// Len returns the number of kinds in the set.
func (s KindSet) Len() int {
	return bits.OnesCount64(s[0]) + bits.OnesCount64(s[1])
}

// Kinds lists members in ascending order.
func (s KindSet) Kinds() []Kind {
	out := make([]Kind, 0, s.Len())
	for k := Kind(0); k < numKinds; k++ {
		if s.Has(k) {
			out = append(out, k)
		}
	}
	return out
}

var (
	// EmptyTokens are tokens that carry no code.
	EmptyTokens = NewKindSet(Whitespace, Comment, DocComment)
	// ScopeModifiers are the visibility keywords.
	ScopeModifiers = NewKindSet(Public, Protected, Private)
	// AssignmentTokens are all assignment operators.
	AssignmentTokens = func() KindSet {
		var s KindSet
		for k := Equal; k <= CoalesceEqual; k++ {
			s = s.With(k)
		}
		return s
	}()
)
