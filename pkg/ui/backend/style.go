package backend

import (
	"fmt"
	"strconv"
	"strings"
)

// Color represents a terminal color.
// -1 is the terminal default, 0-255 are palette colors, and values with
// the RGB bit set are 24-bit true colors.
type Color int32

const colorIsRGB Color = 0x0100_0000

// Color constants
const (
	ColorDefault Color = -1
	ColorBlack   Color = 0
	ColorRed     Color = 1
	ColorGreen   Color = 2
	ColorYellow  Color = 3
	ColorBlue    Color = 4
	ColorMagenta Color = 5
	ColorCyan    Color = 6
	ColorWhite   Color = 7

	ColorBrightBlack   Color = 8
	ColorBrightRed     Color = 9
	ColorBrightGreen   Color = 10
	ColorBrightYellow  Color = 11
	ColorBrightBlue    Color = 12
	ColorBrightMagenta Color = 13
	ColorBrightCyan    Color = 14
	ColorBrightWhite   Color = 15
)

// ColorRGB creates a true color from RGB components.
func ColorRGB(r, g, b uint8) Color {
	return Color(int32(r)<<16|int32(g)<<8|int32(b)) | colorIsRGB
}

// Color256 creates an extended-palette color (0-255).
func Color256(index uint8) Color {
	return Color(index)
}

// IsRGB returns true if this is a true color (not palette).
func (c Color) IsRGB() bool {
	return c >= 0 && c&colorIsRGB != 0
}

// RGB returns the red, green, blue components of an RGB color.
// Returns zeros for non-RGB colors.
func (c Color) RGB() (r, g, b uint8) {
	if !c.IsRGB() {
		return 0, 0, 0
	}
	return uint8((c >> 16) & 0xFF), uint8((c >> 8) & 0xFF), uint8(c & 0xFF)
}

var colorNames = [...]string{
	"black", "red", "green", "yellow", "blue", "magenta", "cyan", "white",
	"bright-black", "bright-red", "bright-green", "bright-yellow",
	"bright-blue", "bright-magenta", "bright-cyan", "bright-white",
}

// String renders the color in the stable form used by JSON snapshots:
// "default", a named 16-palette color, "256:<n>", or "#rrggbb".
func (c Color) String() string {
	switch {
	case c == ColorDefault:
		return "default"
	case c.IsRGB():
		r, g, b := c.RGB()
		return fmt.Sprintf("#%02x%02x%02x", r, g, b)
	case c >= 0 && int(c) < len(colorNames):
		return colorNames[c]
	default:
		return "256:" + strconv.Itoa(int(c))
	}
}

// ParseColor inverts Color.String. Unknown inputs map to the default
// color, matching how snapshots treat absent fields.
func ParseColor(s string) Color {
	switch {
	case s == "" || s == "default":
		return ColorDefault
	case strings.HasPrefix(s, "#") && len(s) == 7:
		v, err := strconv.ParseInt(s[1:], 16, 32)
		if err != nil {
			return ColorDefault
		}
		return Color(v) | colorIsRGB
	case strings.HasPrefix(s, "256:"):
		n, err := strconv.Atoi(s[4:])
		if err != nil || n < 0 || n > 255 {
			return ColorDefault
		}
		return Color(n)
	}
	for i, name := range colorNames {
		if name == s {
			return Color(i)
		}
	}
	return ColorDefault
}

// AttrMask represents text attributes.
type AttrMask uint32

// Attribute flags
const (
	AttrBold AttrMask = 1 << iota
	AttrBlink
	AttrReverse
	AttrUnderline
	AttrDim
	AttrItalic
	AttrStrikeThrough
)

var attrNames = []struct {
	mask AttrMask
	name string
}{
	{AttrBold, "bold"},
	{AttrBlink, "blink"},
	{AttrReverse, "reverse"},
	{AttrUnderline, "underline"},
	{AttrDim, "dim"},
	{AttrItalic, "italic"},
	{AttrStrikeThrough, "strikethrough"},
}

// Names returns the set attribute names in declaration order.
func (a AttrMask) Names() []string {
	var out []string
	for _, entry := range attrNames {
		if a&entry.mask != 0 {
			out = append(out, entry.name)
		}
	}
	return out
}

// ParseAttrs inverts AttrMask.Names.
func ParseAttrs(names []string) AttrMask {
	var a AttrMask
	for _, n := range names {
		for _, entry := range attrNames {
			if entry.name == n {
				a |= entry.mask
			}
		}
	}
	return a
}

// Style combines foreground, background colors and attributes.
// The zero value is not the default style; use DefaultStyle.
type Style struct {
	fg    Color
	bg    Color
	attrs AttrMask
}

// DefaultStyle returns the default style (default colors, no attributes).
func DefaultStyle() Style {
	return Style{fg: ColorDefault, bg: ColorDefault}
}

// NewStyle builds a style from explicit parts.
func NewStyle(fg, bg Color, attrs AttrMask) Style {
	return Style{fg: fg, bg: bg, attrs: attrs}
}

// Foreground sets the foreground color.
func (s Style) Foreground(c Color) Style {
	s.fg = c
	return s
}

// Background sets the background color.
func (s Style) Background(c Color) Style {
	s.bg = c
	return s
}

func (s Style) attr(mask AttrMask, on bool) Style {
	if on {
		s.attrs |= mask
	} else {
		s.attrs &^= mask
	}
	return s
}

// Bold enables or disables bold.
func (s Style) Bold(on bool) Style { return s.attr(AttrBold, on) }

// Italic enables or disables italic.
func (s Style) Italic(on bool) Style { return s.attr(AttrItalic, on) }

// Dim enables or disables dim.
func (s Style) Dim(on bool) Style { return s.attr(AttrDim, on) }

// Underline enables or disables underline.
func (s Style) Underline(on bool) Style { return s.attr(AttrUnderline, on) }

// Reverse enables or disables reverse video.
func (s Style) Reverse(on bool) Style { return s.attr(AttrReverse, on) }

// Blink enables or disables blink.
func (s Style) Blink(on bool) Style { return s.attr(AttrBlink, on) }

// StrikeThrough enables or disables strikethrough.
func (s Style) StrikeThrough(on bool) Style { return s.attr(AttrStrikeThrough, on) }

// Attributes returns all attributes.
func (s Style) Attributes() AttrMask {
	return s.attrs
}

// FG returns the foreground color.
func (s Style) FG() Color {
	return s.fg
}

// BG returns the background color.
func (s Style) BG() Color {
	return s.bg
}

// Decompose returns the foreground, background, and attributes.
func (s Style) Decompose() (fg, bg Color, attrs AttrMask) {
	return s.fg, s.bg, s.attrs
}
