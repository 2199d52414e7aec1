package diag

import (
	"testing"
)

func TestFormatGolden(t *testing.T) {
	r := NewReport("./testdata/sample.php", 0)
	r.Add(Violation{Pos: 9, Line: 3, Col: 1, Rule: "Classes.MultipleClassesOneFile", Code: "MultipleFound",
		Message: "Only one class\nper file", Severity: SevError})
	r.Add(Violation{Pos: 4, Line: 2, Col: 7, Rule: "Arrays.MultiLineArrayComma", Code: "Invalid",
		Message: "Add a comma", Severity: SevWarning, Fixable: true, Fixed: true})
	r.Sort()

	expected := "warning Arrays.MultiLineArrayComma.Invalid testdata/sample.php:2:7 Add a comma [fixed]\n" +
		"error Classes.MultipleClassesOneFile.MultipleFound testdata/sample.php:3:1 Only one class per file"
	if got := FormatGolden(r); got != expected {
		t.Fatalf("unexpected golden output:\nwant:\n%s\n\ngot:\n%s", expected, got)
	}
}

func TestReportDedupByPositionAndRule(t *testing.T) {
	r := NewReport("a.php", 0)
	v := Violation{Pos: 3, Rule: "A.B", Code: "X", Severity: SevError}
	if !r.Add(v) {
		t.Fatalf("first add rejected")
	}
	v.Code = "Y"
	if r.Add(v) {
		t.Fatalf("same position and rule must be suppressed")
	}
	v.Rule = "C.D"
	if !r.Add(v) {
		t.Fatalf("different rule at same position must be kept")
	}
	if r.Len() != 2 {
		t.Fatalf("len = %d, want 2", r.Len())
	}
}

func TestReportLimitAndCounts(t *testing.T) {
	r := NewReport("a.php", 2)
	r.Add(Violation{Pos: 1, Rule: "A", Severity: SevError, Fixable: true})
	r.Add(Violation{Pos: 2, Rule: "A", Severity: SevWarning})
	if r.Add(Violation{Pos: 3, Rule: "A", Severity: SevWarning}) {
		t.Fatalf("limit not enforced")
	}
	e, w, f := r.Counts()
	if e != 1 || w != 1 || f != 1 {
		t.Fatalf("counts = %d/%d/%d", e, w, f)
	}
	r.MarkFixed(1, "A")
	if !r.Items()[0].Fixed {
		t.Fatalf("MarkFixed had no effect")
	}
}

func TestParseSeverity(t *testing.T) {
	for in, want := range map[string]Severity{"error": SevError, "WARNING": SevWarning, " warn ": SevWarning} {
		got, err := ParseSeverity(in)
		if err != nil || got != want {
			t.Fatalf("ParseSeverity(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseSeverity("info"); err == nil {
		t.Fatalf("info is not a valid severity")
	}
}
