package render

import (
	"bytes"
	"image/color"
	"testing"
)

func TestFill(t *testing.T) {
	var out bytes.Buffer
	r := DefaultRenderer{Out: &out}
	r.SetSize(10, 20)

	r.Fill(2, 3, "x")
	r.Fill(11, 3, "hidden")
	r.Fill(0, 3, "hidden")
	r.FillColor(4, 5, color.RGBA{1, 2, 3, 255}, "y")
	r.Flush()

	expected := "\033[2;3Hx\033[4;5H\033[38;2;1;2;3my\033[0m"
	if out.String() != expected {
		t.Logf("out      %q", out.String())
		t.Logf("expected %q", expected)
		t.Fail()
	}
}

func TestDecorationsExpire(t *testing.T) {
	var out bytes.Buffer
	r := DefaultRenderer{Out: &out}
	r.AddDecoration(1, 1, "*", 2)

	for i, expected := range []string{"\033[1;1H*", "\033[1;1H*", ""} {
		out.Reset()
		r.tickDecorations()
		r.Flush()
		if out.String() != expected {
			t.Logf("frame %d got %q", i, out.String())
			t.Fail()
		}
	}
}
