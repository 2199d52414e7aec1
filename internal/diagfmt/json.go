package diagfmt

import (
	"encoding/json"
	"io"
)

// ViolationJSON представляет нарушение в JSON формате
type ViolationJSON struct {
	ID        string `json:"id"`
	Rule      string `json:"rule"`
	Code      string `json:"code,omitempty"`
	Severity  string `json:"severity"`
	Message   string `json:"message"`
	Line      uint32 `json:"line"`
	Col       uint32 `json:"col"`
	StartByte uint32 `json:"start_byte"`
	EndByte   uint32 `json:"end_byte"`
	Fixable   bool   `json:"fixable"`
	Fixed     bool   `json:"fixed,omitempty"`
}

// FileJSON is one file's section of the output.
type FileJSON struct {
	Path       string          `json:"path"`
	Error      string          `json:"error,omitempty"`
	Errors     int             `json:"errors"`
	Warnings   int             `json:"warnings"`
	Fixable    int             `json:"fixable"`
	Violations []ViolationJSON `json:"violations"`
}

// TotalsJSON sums all files.
type TotalsJSON struct {
	Files    int `json:"files"`
	Errors   int `json:"errors"`
	Warnings int `json:"warnings"`
	Fixable  int `json:"fixable"`
}

// ReportOutput представляет корневую структуру JSON вывода
type ReportOutput struct {
	Files  []FileJSON `json:"files"`
	Totals TotalsJSON `json:"totals"`
}

// BuildReportOutput формирует структуру JSON-вывода без сериализации.
func BuildReportOutput(files []FileReport, opts JSONOpts) ReportOutput {
	out := ReportOutput{Files: make([]FileJSON, 0, len(files))}
	for _, fr := range files {
		fj := FileJSON{
			Path:       fr.displayPath(opts.PathMode, opts.BaseDir),
			Violations: []ViolationJSON{},
		}
		if fr.Err != nil {
			fj.Error = fr.Err.Error()
		}
		if fr.Report != nil {
			fj.Errors, fj.Warnings, fj.Fixable = fr.Report.Counts()
			for _, v := range fr.Report.Items() {
				if v.Fixed && !opts.ShowFixed {
					continue
				}
				if opts.Max > 0 && len(fj.Violations) >= opts.Max {
					break
				}
				fj.Violations = append(fj.Violations, ViolationJSON{
					ID:        v.ID(),
					Rule:      v.Rule,
					Code:      v.Code,
					Severity:  v.Severity.Label(),
					Message:   v.Message,
					Line:      v.Line,
					Col:       v.Col,
					StartByte: v.Span.Start,
					EndByte:   v.Span.End,
					Fixable:   v.Fixable,
					Fixed:     v.Fixed,
				})
			}
		}
		out.Totals.Files++
		out.Totals.Errors += fj.Errors
		out.Totals.Warnings += fj.Warnings
		out.Totals.Fixable += fj.Fixable
		out.Files = append(out.Files, fj)
	}
	return out
}

// JSON форматирует отчёты в JSON формат.
func JSON(w io.Writer, files []FileReport, opts JSONOpts) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(BuildReportOutput(files, opts))
}
