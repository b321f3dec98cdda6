package chat

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// palette maps named colors to the RGB values the game client uses.
var palette = map[Color]string{
	Black:       "#000000",
	DarkBlue:    "#0000AA",
	DarkGreen:   "#00AA00",
	DarkAqua:    "#00AAAA",
	DarkRed:     "#AA0000",
	DarkPurple:  "#AA00AA",
	Gold:        "#FFAA00",
	Gray:        "#AAAAAA",
	DarkGray:    "#555555",
	Blue:        "#5555FF",
	Green:       "#55FF55",
	Aqua:        "#55FFFF",
	Red:         "#FF5555",
	LightPurple: "#FF55FF",
	Yellow:      "#FFFF55",
	White:       "#FFFFFF",
}

// Hex returns the RGB value of c as "#RRGGBB", or false for an unknown name.
func (c Color) Hex() (string, bool) {
	if strings.HasPrefix(string(c), "#") && len(c) == 7 {
		return string(c), true
	}
	hex, ok := palette[c]
	return hex, ok
}

// Render renders t for a terminal with lipgloss's default renderer.
func Render(t *Text) string {
	return RenderWith(lipgloss.DefaultRenderer(), t)
}

// RenderWith renders t with styles from r. Colors and the bold, italic,
// underline and strikethrough flags map to their terminal equivalents;
// obfuscated text blinks. Formatting codes inside the text are removed.
func RenderWith(r *lipgloss.Renderer, t *Text) string {
	var b strings.Builder
	t.render(&b, r, legacyStyle{})
	return b.String()
}

func (t *Text) render(b *strings.Builder, r *lipgloss.Renderer, parent legacyStyle) {
	s := parent
	if t.color != "" {
		s.color = t.color
	}
	inherit(&s.bold, t.bold)
	inherit(&s.italic, t.italic)
	inherit(&s.underlined, t.underlined)
	inherit(&s.strikethrough, t.strikethrough)
	inherit(&s.obfuscated, t.obfuscated)

	if own := StripCodes(t.ownText()); own != "" {
		b.WriteString(s.lipgloss(r).Render(own))
	}
	for _, c := range t.extra {
		c.render(b, r, s)
	}
}

func (s legacyStyle) lipgloss(r *lipgloss.Renderer) lipgloss.Style {
	style := r.NewStyle().
		Bold(s.bold).
		Italic(s.italic).
		Underline(s.underlined).
		Strikethrough(s.strikethrough).
		Blink(s.obfuscated)
	if hex, ok := s.color.Hex(); ok {
		style = style.Foreground(lipgloss.Color(hex))
	}
	return style
}
