// Package rules holds the concrete style checks and their catalog.
package rules

import (
	"sort"

	"sniff/internal/check"
	"sniff/internal/diag"
)

// Порядок каталога = порядок регистрации = порядок вызова на одном токене.
var catalog = []*check.Definition{
	{
		ID:          "Arrays.MultiLineArrayComma",
		Description: "Multi-line arrays end with a trailing comma.",
		Severity:    diag.SevError,
		Fixable:     true,
		Factory:     func() check.Check { return multiLineArrayComma{} },
	},
	{
		ID:          "Classes.MultipleClassesOneFile",
		Description: "Only one class per file.",
		Severity:    diag.SevError,
		Factory:     func() check.Check { return &multipleClassesOneFile{} },
	},
	{
		ID:          "Classes.PropertyDeclaration",
		Description: "Class properties are declared before methods.",
		Severity:    diag.SevError,
		Factory:     func() check.Check { return propertyDeclaration{} },
	},
	{
		ID:          "Functions.ScopeOrder",
		Description: "Public methods first, then protected, then private.",
		Severity:    diag.SevError,
		Factory:     func() check.Check { return scopeOrder{} },
	},
	{
		ID:          "Formatting.BlankLineBeforeReturn",
		Description: "A blank line precedes return unless it opens a block or case.",
		Severity:    diag.SevError,
		Fixable:     true,
		Factory:     func() check.Check { return blankLineBeforeReturn{} },
	},
	{
		ID:          "WhiteSpace.FunctionClosingBraceSpace",
		Description: "No blank lines before a function's closing brace.",
		Severity:    diag.SevError,
		Fixable:     true,
		Factory:     func() check.Check { return functionClosingBraceSpace{} },
	},
	{
		ID:          "WhiteSpace.AssignmentSpacing",
		Description: "Assignment operators are surrounded by whitespace.",
		Severity:    diag.SevError,
		Fixable:     true,
		Factory:     func() check.Check { return assignmentSpacing{} },
	},
	{
		ID:          "WhiteSpace.CommaSpacing",
		Description: "A comma is followed by whitespace or a line break.",
		Severity:    diag.SevError,
		Fixable:     true,
		Factory:     func() check.Check { return commaSpacing{} },
	},
	{
		ID:          "WhiteSpace.DiscourageFitzinator",
		Description: "No trailing whitespace.",
		Severity:    diag.SevWarning,
		Fixable:     true,
		Factory:     func() check.Check { return discourageFitzinator{} },
	},
	{
		ID:          "NamingConventions.ValidClassName",
		Description: "Interface, trait and exception names carry their suffix.",
		Severity:    diag.SevError,
		Factory:     func() check.Check { return validClassName{} },
	},
	{
		ID:          "Scope.MethodScope",
		Description: "Methods declare a visibility modifier.",
		Severity:    diag.SevError,
		Factory:     func() check.Check { return methodScope{} },
	},
	{
		ID:          "Commenting.FunctionComment",
		Description: "Functions carry a docblock preceded by one blank line.",
		Severity:    diag.SevError,
		Fixable:     true,
		Factory:     func() check.Check { return functionComment{} },
	},
}

var byID = func() map[string]*check.Definition {
	m := make(map[string]*check.Definition, len(catalog))
	for _, d := range catalog {
		m[d.ID] = d
	}
	return m
}()

// Catalog returns every definition in registration order.
func Catalog() []*check.Definition {
	out := make([]*check.Definition, len(catalog))
	copy(out, catalog)
	return out
}

// Lookup finds a definition by ID.
func Lookup(id string) (*check.Definition, bool) {
	d, ok := byID[id]
	return d, ok
}

// IDs returns all check IDs sorted alphabetically.
func IDs() []string {
	ids := make([]string, 0, len(catalog))
	for _, d := range catalog {
		ids = append(ids, d.ID)
	}
	sort.Strings(ids)
	return ids
}

// Instances creates a fresh instance of every check; use it as an
// engine.Factory.
func Instances() []check.Instance {
	return check.Instantiate(catalog)
}
