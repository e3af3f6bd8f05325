package clapio

import (
	"github.com/fatih/color"
)

// Style is a set of SGR attributes, e.g. Style{color.FgRed, color.Bold}.
type Style []color.Attribute

// Sprint renders text in the style when enabled is true; otherwise text is
// returned unchanged.
func (s Style) Sprint(enabled bool, text string) string {
	if !enabled || len(s) == 0 {
		return text
	}
	c := color.New(s...)
	c.EnableColor()
	return c.Sprint(text)
}

// Theme provides semantic colors.
type Theme struct {
	Error, Warning, Info, Debug, Muted Style
}

// DefaultTheme returns the bright 16-color theme.
func DefaultTheme() Theme {
	return Theme{
		Error:   Style{color.FgHiRed, color.Bold},
		Warning: Style{color.FgHiYellow},
		Info:    Style{color.FgHiCyan},
		Debug:   Style{color.FgHiMagenta},
		Muted:   Style{color.FgHiBlack},
	}
}

// Paint renders text for the output writer.
func (m *IOManager) Paint(text string, s Style) string {
	return s.Sprint(m.SupportsColor(), text)
}

// PaintErr renders text for the error writer.
func (m *IOManager) PaintErr(text string, s Style) string {
	return s.Sprint(m.SupportsColorErr(), text)
}

// Bold returns s in bold when the output supports color.
func (m *IOManager) Bold(s string) string { return m.Paint(s, Style{color.Bold}) }

// Faint returns s in faint intensity when the output supports color.
func (m *IOManager) Faint(s string) string { return m.Paint(s, Style{color.Faint}) }
