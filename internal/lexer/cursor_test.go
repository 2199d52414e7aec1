package lexer

import (
	"testing"

	"sniff/internal/source"
)

func TestCursorBasics(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("c.php", []byte("<?php x"))
	c := NewCursor(fs.Get(id))

	if !c.HasPrefix("<?") {
		t.Fatalf("expected prefix")
	}
	m := c.Mark()
	if !c.EatString("<?php") {
		t.Fatalf("EatString failed")
	}
	if sp := c.SpanFrom(m); sp.Start != 0 || sp.End != 5 {
		t.Fatalf("unexpected span %v", sp)
	}
	if c.PeekAt(1) != 'x' {
		t.Fatalf("PeekAt(1) = %q", c.PeekAt(1))
	}
	if !c.Eat(' ') || c.Bump() != 'x' || !c.EOF() {
		t.Fatalf("unexpected cursor state at %d", c.Off)
	}
	if c.Bump() != 0 || c.Peek() != 0 {
		t.Fatalf("reads past EOF must return 0")
	}
	c.Reset(m)
	if c.Off != 0 {
		t.Fatalf("Reset did not rewind")
	}
}
