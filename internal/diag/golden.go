package diag

import (
	"fmt"
	"path/filepath"
	"strings"
)

// FormatGolden renders a report into one stable line per violation:
//
//	<severity> <Rule.Code> <path>:<line>:<col> <message>
//
// The report is not reordered; call Sort first when input order is not
// already deterministic.
func FormatGolden(r *Report) string {
	if r == nil || r.Len() == 0 {
		return ""
	}
	path := normalizePath(r.Path)
	var b strings.Builder
	for i, v := range r.Items() {
		fmt.Fprintf(&b, "%s %s %s:%d:%d %s", v.Severity.Label(), v.ID(), path, v.Line, v.Col, sanitizeMessage(v.Message))
		if v.Fixed {
			b.WriteString(" [fixed]")
		}
		if i < r.Len()-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func normalizePath(path string) string {
	p := filepath.ToSlash(path)
	for strings.HasPrefix(p, "./") {
		p = strings.TrimPrefix(p, "./")
	}
	return p
}

func sanitizeMessage(msg string) string {
	msg = strings.ReplaceAll(msg, "\r\n", "\n")
	msg = strings.ReplaceAll(msg, "\r", "\n")
	msg = strings.ReplaceAll(msg, "\n", " ")
	return strings.TrimSpace(msg)
}
