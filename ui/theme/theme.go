package theme

// Centralized theming and styling initialization for the viewer UI.
// Provides palette constants and InitStyles to activate a base theme and
// configure semantic widget styles.

import (
	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// Palette defines core semantic colors used across widgets. The viewer
// defaults to dark mode so the rendered frame sits on a matching chrome.
const (
	ColorBg        = "#0f172a" // app background
	ColorSurface   = "#1e293b" // panels, frame border
	ColorBorder    = "#334155"
	ColorPrimary   = "#3b82f6" // buttons, accents
	ColorDanger    = "#ef4444"
	ColorText      = "#f1f5f9"
	ColorTextMuted = "#94a3b8"

	lightBg      = "#f7f9fb"
	lightPrimary = "#2563eb"
	lightDanger  = "#dc2626"
)

// style names used with Style("primary.TButton") etc.
const (
	StylePrimaryButton = "primary.TButton"
	StyleDangerButton  = "danger.TButton"
	StyleStatusLabel   = "status.TLabel"
)

// internal flag for current mode
var darkMode = true

// InitStyles (re)applies styles for the current darkMode value.
func InitStyles() { applyStyles(darkMode) }

// SetDark toggles dark mode and reapplies styles. Returns new mode value.
func SetDark(dark bool) bool {
	darkMode = dark
	applyStyles(darkMode)
	return darkMode
}

// ToggleDark flips dark mode and reapplies styles. Returns new mode value.
func ToggleDark() bool { return SetDark(!darkMode) }

// IsDark reports current mode.
func IsDark() bool { return darkMode }

// applyStyles encapsulates palette & style configuration for light/dark.
func applyStyles(dark bool) {
	if dark {
		_ = ActivateTheme("azure dark")
		App.Configure(Background(ColorBg))
	} else {
		_ = ActivateTheme("azure light")
		App.Configure(Background(lightBg))
	}

	StyleConfigure(StylePrimaryButton,
		Background(func() string {
			if dark {
				return ColorPrimary
			}
			return lightPrimary
		}()),
		Foreground("white"),
		Padding("4p 3p"),
		Borderwidth(1),
		Relief("ridge"),
	)
	StyleConfigure(StyleDangerButton,
		Background(func() string {
			if dark {
				return ColorDanger
			}
			return lightDanger
		}()),
		Foreground("white"),
		Padding("4p 3p"),
		Borderwidth(1),
		Relief("ridge"),
	)
	StyleConfigure(StyleStatusLabel,
		Foreground(func() string {
			if dark {
				return ColorText
			}
			return "#1e293b"
		}()),
		Background(func() string {
			if dark {
				return ColorSurface
			}
			return "#ffffff"
		}()),
		Padding("2p 1p"),
	)
}
