package diag

import (
	"sort"
)

// Report is an ordered, deduplicated collection of violations for one file.
type Report struct {
	Path  string
	items []Violation
	seen  map[violationKey]int
	max   int
}

// NewReport creates a report; max <= 0 means unlimited.
func NewReport(path string, max int) *Report {
	return &Report{
		Path: path,
		seen: make(map[violationKey]int),
		max:  max,
	}
}

// Add добавляет нарушение. Возвращает false для дубликата (та же позиция и
// то же правило) или если достигнут лимит.
func (r *Report) Add(v Violation) bool {
	if _, dup := r.seen[v.key()]; dup {
		return false
	}
	if r.max > 0 && len(r.items) >= r.max {
		return false
	}
	r.seen[v.key()] = len(r.items)
	r.items = append(r.items, v)
	return true
}

// MarkFixed flags the violation at (pos, rule) as corrected.
func (r *Report) MarkFixed(pos int, rule string) {
	if i, ok := r.seen[violationKey{pos: pos, rule: rule}]; ok {
		r.items[i].Fixed = true
	}
}

func (r *Report) Len() int { return len(r.items) }

// Items возвращает read-only slice; не модифицируйте его.
func (r *Report) Items() []Violation { return r.items }

// Counts returns errors, warnings and fixable totals.
func (r *Report) Counts() (errors, warnings, fixable int) {
	for _, v := range r.items {
		switch v.Severity {
		case SevError:
			errors++
		case SevWarning:
			warnings++
		}
		if v.Fixable {
			fixable++
		}
	}
	return errors, warnings, fixable
}

func (r *Report) HasErrors() bool {
	e, _, _ := r.Counts()
	return e > 0
}

// Filter returns a copy holding only the violations keep accepts.
func (r *Report) Filter(keep func(Violation) bool) *Report {
	out := NewReport(r.Path, r.max)
	for _, v := range r.items {
		if keep(v) {
			out.Add(v)
		}
	}
	return out
}

// Sort orders by line, column, token index, severity (desc), rule.
func (r *Report) Sort() {
	sort.SliceStable(r.items, func(i, j int) bool {
		a, b := r.items[i], r.items[j]
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		if a.Col != b.Col {
			return a.Col < b.Col
		}
		if a.Pos != b.Pos {
			return a.Pos < b.Pos
		}
		if a.Severity != b.Severity {
			return a.Severity > b.Severity
		}
		return a.ID() < b.ID()
	})
	for i, v := range r.items {
		r.seen[v.key()] = i
	}
}
