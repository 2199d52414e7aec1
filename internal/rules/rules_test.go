package rules_test

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"testing"

	"sniff/internal/diag"
	"sniff/internal/engine"
	"sniff/internal/lexer"
	"sniff/internal/rules"
	"sniff/internal/source"
)

// findings runs a single check over src and returns "Code@line:col" entries.
func findings(t *testing.T, id, src string) []string {
	t.Helper()
	if _, ok := rules.Lookup(id); !ok {
		t.Fatalf("unknown check %s", id)
	}
	fs := source.NewFileSet()
	f := fs.Get(fs.AddVirtual("t.php", []byte(src)))
	toks, err := lexer.Tokenize(f)
	if err != nil {
		t.Fatalf("lex: %v", err)
	}
	res, err := engine.Analyze(f, toks, rules.Instances(), engine.Options{Enabled: engine.EnabledSet(id)})
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	var out []string
	for _, v := range res.Report.Items() {
		if v.Rule != id {
			t.Fatalf("foreign violation %s", v.ID())
		}
		out = append(out, fmt.Sprintf("%s@%d:%d", v.Code, v.Line, v.Col))
	}
	return out
}

// fixWith runs iterative fixing restricted to the given checks.
func fixWith(t *testing.T, src string, ids ...string) *engine.FixResult {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("t.php", []byte(src))
	opts := engine.Options{}
	if len(ids) > 0 {
		opts.Enabled = engine.EnabledSet(ids...)
	}
	res, err := engine.Fix(context.Background(), fs, id, lexer.Tokenizer{}, rules.Instances, opts)
	if err != nil {
		t.Fatalf("fix: %v", err)
	}
	if !res.Converged {
		t.Fatalf("fix did not converge after %d passes", res.Passes)
	}
	return res
}

func expect(t *testing.T, got []string, want ...string) {
	t.Helper()
	if strings.Join(got, " ") != strings.Join(want, " ") {
		t.Fatalf("want %v, got %v", want, got)
	}
}

func TestCatalog(t *testing.T) {
	defs := rules.Catalog()
	if len(defs) != 12 {
		t.Fatalf("want 12 checks, got %d", len(defs))
	}
	ids := rules.IDs()
	if !sort.StringsAreSorted(ids) {
		t.Fatalf("IDs not sorted: %v", ids)
	}
	for _, d := range defs {
		if !strings.Contains(d.ID, ".") {
			t.Fatalf("id %q lacks a category", d.ID)
		}
		if d.Severity != diag.SevError && d.Severity != diag.SevWarning {
			t.Fatalf("%s: bad severity %v", d.ID, d.Severity)
		}
		if d.Factory() == nil {
			t.Fatalf("%s: nil factory result", d.ID)
		}
	}
	if _, ok := rules.Lookup("Nope.Nothing"); ok {
		t.Fatalf("lookup of unknown id succeeded")
	}
}

func TestMultiLineArrayComma(t *testing.T) {
	const id = "Arrays.MultiLineArrayComma"
	expect(t, findings(t, id, "<?php\n$a = [1, 2, 3\n];\n"), "Invalid@2:6")
	expect(t, findings(t, id, "<?php\n$a = array(\n    1\n);\n"), "Invalid@2:6")
	expect(t, findings(t, id, "<?php\n$a = [1, 2,\n];\n"))
	expect(t, findings(t, id, "<?php\n$a = [1, 2];\n"))
	expect(t, findings(t, id, "<?php\n$a = [\n];\n"))
	expect(t, findings(t, id, "<?php\n$a = $b[\n0\n];\n"))

	res := fixWith(t, "<?php\n$a = [1, 2, 3\n];\n", id)
	if res.Text != "<?php\n$a = [1, 2, 3,\n];\n" {
		t.Fatalf("got %q", res.Text)
	}
}

func TestMultipleClassesOneFile(t *testing.T) {
	const id = "Classes.MultipleClassesOneFile"
	expect(t, findings(t, id, "<?php\nclass A {}\nclass B {}\n"), "multipleClassesOneFile@3:1")
	expect(t, findings(t, id, "<?php\nclass A {}\n$x = new class {};\n"))
}

func TestPropertyDeclaration(t *testing.T) {
	const id = "Classes.PropertyDeclaration"
	src := `<?php
class A
{
    public function foo()
    {
    }

    protected $x;
    private ?int $y;
}
`
	expect(t, findings(t, id, src), "Invalid@8:5", "Invalid@9:5")

	ok := `<?php
class A
{
    private $x;

    public function __construct(private $y, public $z)
    {
    }

    public const C = 1;
}
`
	expect(t, findings(t, id, ok))
}

func TestScopeOrder(t *testing.T) {
	const id = "Functions.ScopeOrder"
	src := `<?php
class A
{
    public function foo() {}
    private function bar() {}
    public function baz() {}
}
`
	expect(t, findings(t, id, src), "Invalid@6:5")

	exempt := `<?php
class A
{
    private function bar() {}
    public function __construct() {}
    protected function setUp() {}
    private function baz() {}
}
`
	expect(t, findings(t, id, exempt))
}

func TestBlankLineBeforeReturn(t *testing.T) {
	const id = "Formatting.BlankLineBeforeReturn"
	src := "<?php\nfunction foo()\n{\n    $a = 1;\n    return $a;\n}\n"
	expect(t, findings(t, id, src), "missingBlankLine@5:5")

	clean := `<?php
function bar($x)
{
    switch ($x) {
        case 1:
            return 1;
    }
    if ($x) {
        return 2;
    }

    return 3;
}
`
	expect(t, findings(t, id, clean))

	res := fixWith(t, src, id)
	want := "<?php\nfunction foo()\n{\n    $a = 1;\n\n    return $a;\n}\n"
	if res.Text != want {
		t.Fatalf("want %q, got %q", want, res.Text)
	}
}

func TestFunctionClosingBraceSpace(t *testing.T) {
	const id = "WhiteSpace.FunctionClosingBraceSpace"
	src := "<?php\nfunction foo()\n{\n    $a = 1;\n\n\n}\n"
	expect(t, findings(t, id, src), "SpacingBeforeNestedClose@7:1")

	res := fixWith(t, src, id)
	if res.Text != "<?php\nfunction foo()\n{\n    $a = 1;\n}\n" {
		t.Fatalf("got %q", res.Text)
	}
	again := fixWith(t, res.Text, id)
	if again.Applied != 0 || again.Report.Len() != 0 {
		t.Fatalf("second run changed %d, reported %d", again.Applied, again.Report.Len())
	}

	expect(t, findings(t, id, "<?php\nfunction foo() { return 1; }\n"), "ContentBeforeClose@2:28")
	res = fixWith(t, "<?php\nfunction foo() { return 1; }\n", id)
	if res.Text != "<?php\nfunction foo() { return 1; \n}\n" {
		t.Fatalf("got %q", res.Text)
	}

	// пустое тело в стиле Symfony корректно, "{}" на одной строке нет
	expect(t, findings(t, id, "<?php\nfunction foo()\n{\n}\n"))
	expect(t, findings(t, id, "<?php\nclass A{ public function foo()\n    {\n    }\n}\n"))
	expect(t, findings(t, id, "<?php\nfunction foo() {}\n"), "ContentBeforeClose@2:17")
	res = fixWith(t, "<?php\nfunction foo() {}\n", id)
	if res.Text != "<?php\nfunction foo() {\n}\n" {
		t.Fatalf("got %q", res.Text)
	}

	expect(t, findings(t, id, "<?php\nfunction foo()\n{\n\n}\n"), "SpacingBeforeNestedClose@5:1")
	res = fixWith(t, "<?php\nfunction foo()\n{\n\n}\n", id)
	if res.Text != "<?php\nfunction foo()\n{\n}\n" {
		t.Fatalf("got %q", res.Text)
	}

	expect(t, findings(t, id, "<?php\ninterface I\n{\n    public function foo();\n}\n"))
}

func TestAssignmentSpacing(t *testing.T) {
	const id = "WhiteSpace.AssignmentSpacing"
	expect(t, findings(t, id, "<?php\n$a=1;\n$b .= 'x';\n"), "Invalid@2:3")
	expect(t, findings(t, id, "<?php\ndeclare(strict_types=1);\n"))

	res := fixWith(t, "<?php\n$a=1;\n$b =2;\n", id)
	if res.Text != "<?php\n$a = 1;\n$b = 2;\n" {
		t.Fatalf("got %q", res.Text)
	}
}

func TestCommaSpacing(t *testing.T) {
	const id = "WhiteSpace.CommaSpacing"
	expect(t, findings(t, id, "<?php\nfoo($a,$b);\n"), "Invalid@2:7")
	expect(t, findings(t, id, "<?php\nfoo($a, $b,\n    $c);\n"))

	res := fixWith(t, "<?php\nfoo($a,$b);\n", id)
	if res.Text != "<?php\nfoo($a, $b);\n" {
		t.Fatalf("got %q", res.Text)
	}

	// висячая запятая многострочного массива не разделитель
	expect(t, findings(t, id, "<?php\n$a = [1, 2,\n    3,];\n$b = array(1,\n    2,);\n"))
	expect(t, findings(t, id, "<?php\n$a = [1,];\nfoo($a,);\n"), "Invalid@2:8", "Invalid@3:7")

	res = fixWith(t, "<?php\n$a = [1, 2,\n    3];\n")
	if res.Text != "<?php\n$a = [1, 2,\n    3,];\n" || res.Report.Len() != 0 {
		t.Fatalf("got %q with %d violations", res.Text, res.Report.Len())
	}
}

func TestDiscourageFitzinator(t *testing.T) {
	const id = "WhiteSpace.DiscourageFitzinator"
	src := "<?php\n$a = 1;   \n"
	expect(t, findings(t, id, src), "trimWhiteSpace@2:8")
	expect(t, findings(t, id, "<?php\n$a = 1;\n\n$b = 2;\n"))

	res := fixWith(t, src, id)
	if res.Text != "<?php\n$a = 1;\n" {
		t.Fatalf("got %q", res.Text)
	}
	if res.Report.Len() != 0 {
		t.Fatalf("report after fixing:\n%s", diag.FormatGolden(res.Report))
	}
}

func TestValidClassName(t *testing.T) {
	const id = "NamingConventions.ValidClassName"
	expect(t, findings(t, id, "<?php\ninterface Foo {}\n"), "InvalidInterfaceName@2:1")
	expect(t, findings(t, id, "<?php\ntrait Bar {}\n"), "InvalidTraitName@2:1")
	expect(t, findings(t, id, "<?php\nclass Baz extends \\Base\\RuntimeException {}\n"), "InvalidExceptionName@2:11")
	expect(t, findings(t, id, `<?php
interface FooInterface extends BarInterface {}
trait BarTrait {}
class BazException extends RuntimeException {}
class Qux extends Base {}
`))
}

func TestMethodScope(t *testing.T) {
	const id = "Scope.MethodScope"
	src := `<?php
class A
{
    function foo() {}
    public function bar()
    {
        $f = function () {};
    }
}
function free() {}
`
	got := findings(t, id, src)
	expect(t, got, "Missing@4:5")

	fs := source.NewFileSet()
	f := fs.Get(fs.AddVirtual("t.php", []byte(src)))
	toks, _ := lexer.Tokenize(f)
	res, err := engine.Analyze(f, toks, rules.Instances(), engine.Options{Enabled: engine.EnabledSet(id)})
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if msg := res.Report.Items()[0].Message; msg != `No scope modifier specified for function "foo"` {
		t.Fatalf("message %q", msg)
	}
}

func TestFunctionComment(t *testing.T) {
	const id = "Commenting.FunctionComment"
	missing := `<?php
class A
{
    public function foo($a)
    {
        return $a;
    }
}
`
	expect(t, findings(t, id, missing), "Missing@4:12")

	documented := `<?php

/**
 * Does things.
 *
 * @param int $a
 *
 * @return int
 */
function foo($a)
{
    return $a;
}
`
	expect(t, findings(t, id, documented))

	untagged := `<?php

/**
 * Does things.
 */
function foo($a)
{
    $f = function () {
        return 1;
    };
    return $a;
}
`
	expect(t, findings(t, id, untagged), "MissingParamTag@6:14", "MissingReturn@11:5")

	// докблок с готовой "é", сигнатура с "e" и комбинирующим акутом
	composed := "<?php\n\n/**\n * Greets.\n *\n * @param string $caf\u00e9\n */\nfunction greet($cafe\u0301)\n{\n    echo $cafe\u0301;\n}\n"
	expect(t, findings(t, id, composed))
	other := strings.Replace(composed, "$caf\u00e9", "$other", 1)
	expect(t, findings(t, id, other), "MissingParamTag@8:16")

	expect(t, findings(t, id, "<?php\n// foo\nfunction foo() {}\n"), "WrongStyle@3:1")
	expect(t, findings(t, id, "<?php\nfunction testFoo() {}\nfunction setUp() {}\n"))
	expect(t, findings(t, id, "<?php\n/** {@inheritdoc} */\nfunction foo($a) { return $a; }\n"))
	expect(t, findings(t, id, "<?php\n\n/**\n * Foo.\n */\n\nfunction foo() {}\n"), "SpacingAfter@7:1")

	crowded := `<?php
class A
{
    /**
     * Foo.
     */
    public $x;
    /**
     * Bar.
     */
    public function bar()
    {
    }
}
`
	expect(t, findings(t, id, crowded), "SpacingBeforeDocblock@8:5")
	res := fixWith(t, crowded, id)
	want := strings.Replace(crowded, "public $x;\n", "public $x;\n\n", 1)
	if res.Text != want {
		t.Fatalf("want %q, got %q", want, res.Text)
	}

	spaced := "<?php\n\n/**\n * A.\n */\nfunction a() {}\n\n\n\n/**\n * B.\n */\nfunction b() {}\n"
	expect(t, findings(t, id, spaced), "SpacingBeforeDocblock@10:1")
	res = fixWith(t, spaced, id)
	if want := "<?php\n\n/**\n * A.\n */\nfunction a() {}\n\n/**\n * B.\n */\nfunction b() {}\n"; res.Text != want {
		t.Fatalf("want %q, got %q", want, res.Text)
	}
}

func TestWholeCatalogFixIsIdempotent(t *testing.T) {
	src := `<?php

/**
 * Sum.
 *
 * @param int $a
 * @param int $b
 *
 * @return int
 */
function sum($a,$b)
{
    $c=$a + $b;
    return $c;


}
`
	want := `<?php

/**
 * Sum.
 *
 * @param int $a
 * @param int $b
 *
 * @return int
 */
function sum($a, $b)
{
    $c = $a + $b;

    return $c;
}
`
	res := fixWith(t, src)
	if res.Text != want {
		t.Fatalf("want %q, got %q", want, res.Text)
	}
	if res.Report.Len() != 0 {
		t.Fatalf("violations left:\n%s", diag.FormatGolden(res.Report))
	}
	again := fixWith(t, res.Text)
	if again.Applied != 0 || again.Passes != 1 || again.Text != want {
		t.Fatalf("second run not idempotent: applied=%d passes=%d", again.Applied, again.Passes)
	}
}
