package diagfmt

import (
	"fmt"

	"sniff/internal/diag"
	"sniff/internal/source"
)

// PathMode specifies how file paths are displayed.
type PathMode uint8

const (
	// PathModeAuto chooses relative or absolute path automatically.
	PathModeAuto PathMode = iota
	// PathModeAbsolute always uses absolute paths.
	PathModeAbsolute
	PathModeRelative
	PathModeBasename
)

// ParsePathMode maps a flag value onto a PathMode.
func ParsePathMode(s string) (PathMode, error) {
	switch s {
	case "", "auto":
		return PathModeAuto, nil
	case "absolute", "abs":
		return PathModeAbsolute, nil
	case "relative", "rel":
		return PathModeRelative, nil
	case "basename", "base":
		return PathModeBasename, nil
	}
	return PathModeAuto, fmt.Errorf("unknown path mode %q", s)
}

func (m PathMode) String() string {
	switch m {
	case PathModeAbsolute:
		return "absolute"
	case PathModeRelative:
		return "relative"
	case PathModeBasename:
		return "basename"
	default:
		return "auto"
	}
}

// FileReport pairs a report with the file version it was produced from.
// File may be nil when the file could not be loaded; Err then says why.
type FileReport struct {
	Path   string
	File   *source.File
	Report *diag.Report
	Err    error
}

func (fr FileReport) displayPath(mode PathMode, baseDir string) string {
	f := fr.File
	if f == nil {
		f = &source.File{Path: fr.Path}
	}
	return f.FormatPath(mode.String(), baseDir)
}

// PrettyOpts configures pretty-printing of reports.
type PrettyOpts struct {
	Color    bool
	Context  uint8 // строк исходника перед строкой нарушения
	PathMode PathMode
	BaseDir  string
	// ShowSource prints the offending line with a caret under the column.
	ShowSource bool
	// ShowFixed includes violations that were already corrected.
	ShowFixed bool
}

// JSONOpts configures JSON output of reports.
type JSONOpts struct {
	PathMode  PathMode
	BaseDir   string
	Max       int // обрезка вывода на файл, не Report
	ShowFixed bool
}

// SarifRunMeta provides metadata for SARIF output.
type SarifRunMeta struct {
	ToolName       string
	ToolVersion    string
	InvocationArgs []string
	// Rules describes every check that may appear in results.
	Rules []SarifRule
}

// SarifRule is the reportingDescriptor data for one check.
type SarifRule struct {
	ID          string
	Description string
	Severity    diag.Severity
	Fixable     bool
}
