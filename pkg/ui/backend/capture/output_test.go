package capture

import (
	"strings"
	"testing"

	"github.com/ryanoneill/envision-sub004/pkg/ui/backend"
)

func TestToANSIPlainBufferHasOnlyFinalReset(t *testing.T) {
	b := New(4, 1)
	drawString(b, 0, 0, "ab", backend.DefaultStyle())

	got := b.ToANSI()
	if got != "ab\x1b[0m" {
		t.Errorf("ToANSI = %q", got)
	}
}

func TestToANSICoalescesEqualRuns(t *testing.T) {
	b := New(6, 1)
	red := backend.DefaultStyle().Foreground(backend.ColorRed)
	drawString(b, 0, 0, "rrr", red)
	drawString(b, 3, 0, "d", backend.DefaultStyle())

	got := b.ToANSI()
	// One escape for the red run, one reset when style returns to
	// default, one final reset.
	if n := strings.Count(got, "\x1b["); n != 3 {
		t.Errorf("escape count = %d in %q", n, got)
	}
	if !strings.Contains(got, "31") {
		t.Errorf("missing red SGR in %q", got)
	}
	if !strings.HasSuffix(got, "\x1b[0m") {
		t.Errorf("missing final reset in %q", got)
	}
}

func TestToANSIAttributesAndColors(t *testing.T) {
	b := New(4, 1)
	style := backend.DefaultStyle().
		Foreground(backend.ColorRGB(1, 2, 3)).
		Background(backend.Color256(200)).
		Bold(true).
		Underline(true)
	drawString(b, 0, 0, "!", style)

	got := b.ToANSI()
	for _, want := range []string{"1", "4", "38;2;1;2;3", "48;5;200"} {
		if !strings.Contains(got, want) {
			t.Errorf("ToANSI %q missing %q", got, want)
		}
	}
}

func TestJSONRoundTrip(t *testing.T) {
	b := New(5, 3)
	style := backend.DefaultStyle().
		Foreground(backend.ColorBrightCyan).
		Background(backend.ColorRGB(10, 20, 30)).
		Italic(true).
		Reverse(true)
	drawString(b, 1, 1, "hey", style)
	drawString(b, 0, 2, "!", backend.DefaultStyle().Dim(true))
	b.SetCursorPosition(2, 1)
	b.ShowCursor()

	data, err := b.ToJSONPretty()
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	restored, err := FromJSON(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	if restored.ToString() != b.ToString() {
		t.Errorf("text mismatch: %q vs %q", restored.ToString(), b.ToString())
	}
	for y := 0; y < 3; y++ {
		for x := 0; x < 5; x++ {
			if restored.Cell(x, y) != b.Cell(x, y) {
				t.Errorf("cell (%d,%d) mismatch: %+v vs %+v",
					x, y, restored.Cell(x, y), b.Cell(x, y))
			}
		}
	}
	cx, cy := restored.CursorPosition()
	if cx != 2 || cy != 1 || !restored.CursorVisible() {
		t.Errorf("cursor not restored: (%d,%d) visible=%v", cx, cy, restored.CursorVisible())
	}
}

func TestJSONOmitsDefaultCells(t *testing.T) {
	b := New(10, 10)
	drawString(b, 0, 0, "x", backend.DefaultStyle().Bold(true))

	data, err := b.ToJSON()
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if strings.Count(data, `"symbol"`) != 1 {
		t.Errorf("expected exactly one serialized cell: %s", data)
	}
}

func TestColorStringRoundTrip(t *testing.T) {
	colors := []backend.Color{
		backend.ColorDefault,
		backend.ColorRed,
		backend.ColorBrightWhite,
		backend.Color256(42),
		backend.ColorRGB(255, 0, 128),
	}
	for _, c := range colors {
		if got := backend.ParseColor(c.String()); got != c {
			t.Errorf("ParseColor(%q) = %v, want %v", c.String(), got, c)
		}
	}
}
