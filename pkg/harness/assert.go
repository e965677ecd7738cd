package harness

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/ryanoneill/envision-sub004/pkg/ui/backend"
)

// AssertionKind names the assertion that failed.
type AssertionKind string

const (
	KindContains       AssertionKind = "contains"
	KindNotContains    AssertionKind = "not_contains"
	KindMatches        AssertionKind = "matches"
	KindSnapshot       AssertionKind = "snapshot"
	KindCursor         AssertionKind = "cursor"
	KindTextAt         AssertionKind = "text_at"
	KindRegionContains AssertionKind = "region_contains"
)

// AssertionError reports a failed assertion as a value; the harness
// never panics.
type AssertionError struct {
	Kind       AssertionKind
	Expected   string
	Actual     string
	FrameIndex uint64
}

func (e *AssertionError) Error() string {
	return fmt.Sprintf("assertion %s failed at frame %d:\nexpected: %s\nactual:\n%s",
		e.Kind, e.FrameIndex, e.Expected, e.Actual)
}

func (h *Harness[M]) fail(kind AssertionKind, expected, actual string) error {
	return &AssertionError{
		Kind:       kind,
		Expected:   expected,
		Actual:     actual,
		FrameIndex: h.backend.FrameCount(),
	}
}

// AssertContains fails unless text appears on some row of the screen.
func (h *Harness[M]) AssertContains(text string) error {
	if h.backend.ContainsText(text) {
		return nil
	}
	return h.fail(KindContains, fmt.Sprintf("%q on screen", text), h.Screen())
}

// AssertNotContains fails if text appears on any row.
func (h *Harness[M]) AssertNotContains(text string) error {
	if !h.backend.ContainsText(text) {
		return nil
	}
	return h.fail(KindNotContains, fmt.Sprintf("%q absent from screen", text), h.Screen())
}

// AssertMatches fails unless the screen text matches the regular
// expression pattern.
func (h *Harness[M]) AssertMatches(pattern string) error {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return fmt.Errorf("bad pattern %q: %w", pattern, err)
	}
	screen := h.Screen()
	if re.MatchString(screen) {
		return nil
	}
	return h.fail(KindMatches, fmt.Sprintf("match for /%s/", pattern), screen)
}

// AssertCursorAt fails unless the cursor is visible at (x, y).
func (h *Harness[M]) AssertCursorAt(x, y int) error {
	cx, cy := h.backend.CursorPosition()
	if h.backend.CursorVisible() && cx == x && cy == y {
		return nil
	}
	return h.fail(KindCursor,
		fmt.Sprintf("visible cursor at (%d,%d)", x, y),
		fmt.Sprintf("cursor at (%d,%d) visible=%v", cx, cy, h.backend.CursorVisible()))
}

// AssertTextAt fails unless text starts exactly at (x, y).
func (h *Harness[M]) AssertTextAt(x, y int, text string) error {
	for _, pos := range h.backend.FindText(text) {
		if pos.X == x && pos.Y == y {
			return nil
		}
	}
	return h.fail(KindTextAt, fmt.Sprintf("%q at (%d,%d)", text, x, y), h.Screen())
}

// AssertRegionContains fails unless text appears on a row within rect.
func (h *Harness[M]) AssertRegionContains(rect backend.Rect, text string) error {
	for _, pos := range h.backend.FindText(text) {
		if rect.Contains(pos.X, pos.Y) {
			return nil
		}
	}
	return h.fail(KindRegionContains,
		fmt.Sprintf("%q within %dx%d@(%d,%d)", text, rect.Width, rect.Height, rect.X, rect.Y),
		h.Screen())
}

// AssertSnapshot compares the screen text against the stored golden
// file under SnapshotDir, writing it on first run.
func (h *Harness[M]) AssertSnapshot(name string) error {
	path := filepath.Join(h.SnapshotDir, name+".snap")
	screen := h.Screen()

	stored, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		if err := os.MkdirAll(h.SnapshotDir, 0755); err != nil {
			return fmt.Errorf("create snapshot dir: %w", err)
		}
		if err := os.WriteFile(path, []byte(screen), 0644); err != nil {
			return fmt.Errorf("write snapshot: %w", err)
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("read snapshot: %w", err)
	}

	expected := string(stored)
	if expected == screen {
		return nil
	}
	diff, diffErr := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(expected),
		B:        difflib.SplitLines(screen),
		FromFile: name + " (stored)",
		ToFile:   name + " (current)",
		Context:  3,
	})
	if diffErr != nil {
		diff = screen
	}
	return h.fail(KindSnapshot, fmt.Sprintf("screen to match %s", path), strings.TrimRight(diff, "\n"))
}
