package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestRunRoundTrip(t *testing.T) {
	in := `<root xmlns="urn:x"><a k="1">text</a></root>`
	out := &bytes.Buffer{}
	if err := run(strings.NewReader(in), out, false); err != nil {
		t.Fatal(err)
	}
	if out.String() != in {
		t.Fatalf("round trip mismatch:\n in: %s\nout: %s", in, out.String())
	}
}

func TestRunLooseComment(t *testing.T) {
	in := `<root><!--a--b--></root>`
	out := &bytes.Buffer{}
	if err := run(strings.NewReader(in), out, false); err == nil {
		t.Fatal("expected enforcement error")
	}
	out.Reset()
	if err := run(strings.NewReader(in), out, true); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "<!--a--b-->") {
		t.Fatalf("unexpected output: %s", out.String())
	}
}
