// Package theme provides the visual design system views draw with.
// Components and overlays take a Theme in their view call instead of
// hard-coding colors, so tests can swap palettes.
package theme

import "github.com/ryanoneill/envision-sub004/pkg/ui/backend"

// Theme defines the visual language shared by all views.
type Theme struct {
	// Core palette
	Background backend.Style
	Surface    backend.Style

	// Text hierarchy
	TextPrimary   backend.Style
	TextSecondary backend.Style
	TextMuted     backend.Style
	TextInverse   backend.Style

	// Accent
	Accent    backend.Style
	AccentDim backend.Style

	// Semantic colors
	Success backend.Style
	Warning backend.Style
	Error   backend.Style
	Info    backend.Style

	// UI elements
	Border      backend.Style
	BorderFocus backend.Style
	Selection   backend.Style
	Placeholder backend.Style
	Disabled    backend.Style

	// Widgets
	Spinner  backend.Style
	Progress backend.Style
	StatusBar backend.Style
}

// DefaultTheme returns the default dark palette.
func DefaultTheme() *Theme {
	return &Theme{
		Background: backend.DefaultStyle().Background(backend.ColorRGB(12, 12, 16)),
		Surface:    backend.DefaultStyle().Background(backend.ColorRGB(22, 22, 28)),

		TextPrimary:   backend.DefaultStyle().Foreground(backend.ColorRGB(240, 238, 232)),
		TextSecondary: backend.DefaultStyle().Foreground(backend.ColorRGB(160, 158, 150)),
		TextMuted:     backend.DefaultStyle().Foreground(backend.ColorRGB(100, 98, 92)),
		TextInverse:   backend.DefaultStyle().Foreground(backend.ColorRGB(12, 12, 16)),

		Accent:    backend.DefaultStyle().Foreground(backend.ColorRGB(255, 183, 77)),
		AccentDim: backend.DefaultStyle().Foreground(backend.ColorRGB(180, 130, 60)),

		Success: backend.DefaultStyle().Foreground(backend.ColorRGB(134, 239, 172)),
		Warning: backend.DefaultStyle().Foreground(backend.ColorRGB(255, 138, 101)),
		Error:   backend.DefaultStyle().Foreground(backend.ColorRGB(255, 110, 90)),
		Info:    backend.DefaultStyle().Foreground(backend.ColorRGB(77, 182, 172)),

		Border:      backend.DefaultStyle().Foreground(backend.ColorRGB(50, 50, 60)),
		BorderFocus: backend.DefaultStyle().Foreground(backend.ColorRGB(255, 183, 77)),
		Selection:   backend.DefaultStyle().Background(backend.ColorRGB(60, 60, 80)),
		Placeholder: backend.DefaultStyle().Foreground(backend.ColorRGB(100, 98, 92)).Italic(true),
		Disabled:    backend.DefaultStyle().Foreground(backend.ColorRGB(80, 78, 74)).Dim(true),

		Spinner:   backend.DefaultStyle().Foreground(backend.ColorRGB(255, 183, 77)),
		Progress:  backend.DefaultStyle().Foreground(backend.ColorRGB(79, 195, 247)),
		StatusBar: backend.DefaultStyle().Background(backend.ColorRGB(22, 22, 28)).Foreground(backend.ColorRGB(160, 158, 150)),
	}
}

// PlainTheme returns a theme with no colors at all, useful when
// asserting on plain-text snapshots.
func PlainTheme() *Theme {
	def := backend.DefaultStyle()
	return &Theme{
		Background:    def,
		Surface:       def,
		TextPrimary:   def,
		TextSecondary: def,
		TextMuted:     def,
		TextInverse:   def,
		Accent:        def,
		AccentDim:     def,
		Success:       def,
		Warning:       def,
		Error:         def,
		Info:          def,
		Border:        def,
		BorderFocus:   def,
		Selection:     def.Reverse(true),
		Placeholder:   def,
		Disabled:      def,
		Spinner:       def,
		Progress:      def,
		StatusBar:     def,
	}
}
