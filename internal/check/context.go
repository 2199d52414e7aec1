package check

import (
	"fmt"

	"sniff/internal/diag"
	"sniff/internal/fix"
	"sniff/internal/stream"
)

// Context is what a check sees during one pass.
type Context struct {
	Stream *stream.Stream

	rule     string
	override diag.Severity
	report   *diag.Report
	fixer    *fix.Fixer
	fixing   bool
}

// NewContext binds a check to the pass state. fixer may be nil when
// fixing is off; override 0 keeps the severity chosen by the check.
func NewContext(s *stream.Stream, rule string, override diag.Severity, report *diag.Report, fixer *fix.Fixer) *Context {
	return &Context{
		Stream:   s,
		rule:     rule,
		override: override,
		report:   report,
		fixer:    fixer,
		fixing:   fixer != nil,
	}
}

// Rule returns the ID of the check this context belongs to.
func (c *Context) Rule() string { return c.rule }

// Fixing reports whether changesets will be collected in this pass.
func (c *Context) Fixing() bool { return c.fixing }

// Fixer returns the pass fixer with the owner set to this check.
// It is nil when fixing is off.
func (c *Context) Fixer() *fix.Fixer {
	if c.fixer != nil {
		c.fixer.SetOwner(c.rule)
	}
	return c.fixer
}

func (c *Context) add(pos int, sev diag.Severity, fixable bool, code, format string, args []any) bool {
	if c.override != 0 {
		sev = c.override
	}
	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}
	v := diag.Violation{
		Pos:      pos,
		Rule:     c.rule,
		Code:     code,
		Message:  msg,
		Severity: sev,
		Fixable:  fixable,
	}
	if pos >= 0 && pos < c.Stream.Len() {
		t := c.Stream.At(pos)
		v.Span, v.Line, v.Col = t.Span, t.Line, t.Col
	}
	return c.report.Add(v)
}

// AddError reports an error at token pos.
func (c *Context) AddError(pos int, code, format string, args ...any) {
	c.add(pos, diag.SevError, false, code, format, args)
}

// AddWarning reports a warning at token pos.
func (c *Context) AddWarning(pos int, code, format string, args ...any) {
	c.add(pos, diag.SevWarning, false, code, format, args)
}

// AddFixableError reports a fixable error. It returns true when the caller
// should go on and propose a changeset.
func (c *Context) AddFixableError(pos int, code, format string, args ...any) bool {
	return c.add(pos, diag.SevError, true, code, format, args) && c.fixing
}

// AddFixableWarning is AddFixableError with warning severity.
func (c *Context) AddFixableWarning(pos int, code, format string, args ...any) bool {
	return c.add(pos, diag.SevWarning, true, code, format, args) && c.fixing
}

// Fix proposes edits as one changeset for the violation reported at pos.
// On commit the violation is marked fixed.
func (c *Context) Fix(pos int, edits ...fix.Edit) bool {
	f := c.Fixer()
	if f == nil {
		return false
	}
	if !f.Propose(fix.NewChangeset(c.rule, edits...)) {
		return false
	}
	c.report.MarkFixed(pos, c.rule)
	return true
}
