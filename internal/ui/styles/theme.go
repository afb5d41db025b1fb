package styles

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// detectDark is a seam for tests; termenv queries the real terminal.
var detectDark = termenv.HasDarkBackground

// ApplyTheme pins adaptive color resolution to the requested background.
// "auto" asks the terminal which background it has.
func ApplyTheme(theme string) error {
	switch theme {
	case "dark":
		lipgloss.SetHasDarkBackground(true)
	case "light":
		lipgloss.SetHasDarkBackground(false)
	case "auto", "":
		lipgloss.SetHasDarkBackground(detectDark())
	default:
		return fmt.Errorf("unknown theme %q (want dark, light, or auto)", theme)
	}
	return nil
}
