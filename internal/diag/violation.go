package diag

import (
	"sniff/internal/source"
)

// Reserved rule identifiers produced by the engine itself.
const (
	RuleCheckError = "Internal.CheckError"
	RuleMalformed  = "Internal.Malformed"
)

type Violation struct {
	Pos      int
	Span     source.Span
	Line     uint32
	Col      uint32
	Rule     string
	Code     string
	Message  string
	Severity Severity
	Fixable  bool
	Fixed    bool
}

// ID returns the full "<Rule>.<Code>" identifier.
func (v Violation) ID() string {
	if v.Code == "" {
		return v.Rule
	}
	return v.Rule + "." + v.Code
}

type violationKey struct {
	pos  int
	rule string
}

func (v Violation) key() violationKey {
	return violationKey{pos: v.Pos, rule: v.Rule}
}
