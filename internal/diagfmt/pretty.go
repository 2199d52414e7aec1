package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"sniff/internal/diag"
	"sniff/internal/source"
)

type palette struct {
	err, warn, path, rule, gutter, caret, fixed *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:    color.New(color.FgRed, color.Bold),
		warn:   color.New(color.FgYellow, color.Bold),
		path:   color.New(color.Bold),
		rule:   color.New(color.FgCyan),
		gutter: color.New(color.FgBlue),
		caret:  color.New(color.FgGreen, color.Bold),
		fixed:  color.New(color.FgGreen),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.path, p.rule, p.gutter, p.caret, p.fixed} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(s diag.Severity) *color.Color {
	if s == diag.SevWarning {
		return p.warn
	}
	return p.err
}

// Pretty печатает нарушения в человекочитаемом виде:
//
//	path:line:col: error Rule.Code: message [fixable]
//	  12 | $a=1;
//	     |   ^
func Pretty(w io.Writer, files []FileReport, opts PrettyOpts) error {
	p := newPalette(opts.Color)
	for _, fr := range files {
		path := fr.displayPath(opts.PathMode, opts.BaseDir)
		if fr.Err != nil {
			if _, err := fmt.Fprintf(w, "%s: %s %s\n", p.path.Sprint(path), p.err.Sprint("error"), fr.Err); err != nil {
				return err
			}
			continue
		}
		if fr.Report == nil {
			continue
		}
		for _, v := range fr.Report.Items() {
			if v.Fixed && !opts.ShowFixed {
				continue
			}
			if err := prettyViolation(w, p, path, fr.File, v, opts); err != nil {
				return err
			}
		}
	}
	return nil
}

func prettyViolation(w io.Writer, p palette, path string, f *source.File, v diag.Violation, opts PrettyOpts) error {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s %s: %s",
		p.path.Sprintf("%s:%d:%d", path, v.Line, v.Col),
		p.severity(v.Severity).Sprint(v.Severity.Label()),
		p.rule.Sprint(v.ID()),
		v.Message,
	)
	switch {
	case v.Fixed:
		b.WriteString(" " + p.fixed.Sprint("[fixed]"))
	case v.Fixable:
		b.WriteString(" [fixable]")
	}
	b.WriteByte('\n')
	if opts.ShowSource && f != nil && v.Line > 0 {
		writeSnippet(&b, p, f, v, opts.Context)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func writeSnippet(b *strings.Builder, p palette, f *source.File, v diag.Violation, context uint8) {
	first := v.Line
	if uint32(context) < first {
		first -= uint32(context)
	} else {
		first = 1
	}
	width := len(fmt.Sprint(v.Line))
	for ln := first; ln <= v.Line; ln++ {
		fmt.Fprintf(b, "%s %s\n", p.gutter.Sprintf("%*d |", width+1, ln), f.GetLine(ln))
	}
	line := f.GetLine(v.Line)
	fmt.Fprintf(b, "%s %s%s\n",
		p.gutter.Sprintf("%*s |", width+1, ""),
		caretPad(line, v.Col),
		p.caret.Sprint(strings.Repeat("^", underlineWidth(f, v))),
	)
}

// caretPad повторяет отступ строки до колонки col: табы сохраняются,
// остальные символы заменяются пробелами по их экранной ширине.
func caretPad(line string, col uint32) string {
	if col <= 1 {
		return ""
	}
	prefix := line
	if int(col-1) < len(line) {
		prefix = line[:col-1]
	}
	var b strings.Builder
	for _, r := range prefix {
		if r == '\t' {
			b.WriteByte('\t')
			continue
		}
		b.WriteString(strings.Repeat(" ", runewidth.RuneWidth(r)))
	}
	return b.String()
}

// underlineWidth is the display width of the flagged token's first line.
func underlineWidth(f *source.File, v diag.Violation) int {
	sp := v.Span
	if sp.Empty() || int(sp.End) > len(f.Content) || sp.Start > sp.End {
		return 1
	}
	text := string(f.Content[sp.Start:sp.End])
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		text = text[:i]
	}
	if n := runewidth.StringWidth(strings.ReplaceAll(text, "\t", " ")); n > 0 {
		return n
	}
	return 1
}

// Summary prints the closing totals line.
func Summary(w io.Writer, files []FileReport, opts PrettyOpts) error {
	p := newPalette(opts.Color)
	var errs, warns, fixable, failed int
	for _, fr := range files {
		if fr.Err != nil {
			failed++
			continue
		}
		if fr.Report == nil {
			continue
		}
		e, wn, fx := fr.Report.Counts()
		errs += e
		warns += wn
		fixable += fx
	}
	line := fmt.Sprintf("%s, %s in %d %s",
		p.err.Sprint(plural(errs, "error")),
		p.warn.Sprint(plural(warns, "warning")),
		len(files), pluralWord(len(files), "file"),
	)
	if fixable > 0 {
		line += fmt.Sprintf(" (%d fixable)", fixable)
	}
	if failed > 0 {
		line += fmt.Sprintf(", %d unreadable", failed)
	}
	_, err := fmt.Fprintln(w, line)
	return err
}

func plural(n int, word string) string {
	return fmt.Sprintf("%d %s", n, pluralWord(n, word))
}

func pluralWord(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
