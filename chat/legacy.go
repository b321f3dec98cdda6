package chat

import (
	"strings"
	"unicode"
)

// CodeMarker starts a legacy formatting code; the next character selects the
// color or format.
const CodeMarker = '§'

var colorCodes = map[rune]Color{
	'0': Black,
	'1': DarkBlue,
	'2': DarkGreen,
	'3': DarkAqua,
	'4': DarkRed,
	'5': DarkPurple,
	'6': Gold,
	'7': Gray,
	'8': DarkGray,
	'9': Blue,
	'a': Green,
	'b': Aqua,
	'c': Red,
	'd': LightPurple,
	'e': Yellow,
	'f': White,
}

const (
	codeObfuscated    = 'k'
	codeBold          = 'l'
	codeStrikethrough = 'm'
	codeUnderlined    = 'n'
	codeItalic        = 'o'
	codeReset         = 'r'
)

// legacyStyle is the running style while reading or writing legacy text.
type legacyStyle struct {
	color         Color
	bold          bool
	italic        bool
	underlined    bool
	strikethrough bool
	obfuscated    bool
}

func (s legacyStyle) apply(t *Text) *Text {
	if s.color != "" {
		t.Color(s.color)
	}
	if s.bold {
		t.Bold(true)
	}
	if s.italic {
		t.Italic(true)
	}
	if s.underlined {
		t.Underlined(true)
	}
	if s.strikethrough {
		t.Strikethrough(true)
	}
	if s.obfuscated {
		t.Obfuscated(true)
	}
	return t
}

// FromLegacy converts a string with legacy formatting codes into a tree. Each
// run of text becomes a child carrying the style in effect when it was read:
// a color code sets the color and clears bold, italic, underlined and
// strikethrough (obfuscated is kept), a format code switches its flag on, and
// §r clears everything. Codes are case-insensitive; a marker followed by any
// other character is kept as text.
//
// A single run is returned as the node itself rather than wrapped in an
// empty parent.
func FromLegacy(s string) *Text {
	root := Plain("")
	var (
		state legacyStyle
		buf   strings.Builder
	)
	flush := func() {
		if buf.Len() > 0 {
			root.Append(state.apply(Plain(buf.String())))
			buf.Reset()
		}
	}

	runes := []rune(s)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if r != CodeMarker || i+1 >= len(runes) {
			buf.WriteRune(r)
			continue
		}
		code := unicode.ToLower(runes[i+1])
		color, isColor := colorCodes[code]
		switch {
		case isColor:
			flush()
			state = legacyStyle{color: color, obfuscated: state.obfuscated}
		case code == codeReset:
			flush()
			state = legacyStyle{}
		case code == codeObfuscated:
			flush()
			state.obfuscated = true
		case code == codeBold:
			flush()
			state.bold = true
		case code == codeStrikethrough:
			flush()
			state.strikethrough = true
		case code == codeUnderlined:
			flush()
			state.underlined = true
		case code == codeItalic:
			flush()
			state.italic = true
		default:
			buf.WriteRune(r)
			continue
		}
		i++
	}
	flush()

	if len(root.extra) == 1 {
		return root.extra[0]
	}
	return root
}

// ToLegacy renders t as a legacy-coded string. Styles are resolved through
// inheritance from parent to child; hex colors and everything except the
// color and the five format flags are dropped.
func (t *Text) ToLegacy() string {
	var (
		b    strings.Builder
		last legacyStyle
	)
	t.writeLegacy(&b, legacyStyle{}, &last)
	return b.String()
}

func (t *Text) writeLegacy(b *strings.Builder, parent legacyStyle, last *legacyStyle) {
	s := parent
	if t.color != "" {
		s.color = t.color
		if _, ok := codeForColor(t.color); !ok {
			s.color = ""
		}
	}
	inherit(&s.bold, t.bold)
	inherit(&s.italic, t.italic)
	inherit(&s.underlined, t.underlined)
	inherit(&s.strikethrough, t.strikethrough)
	inherit(&s.obfuscated, t.obfuscated)

	if own := t.ownText(); own != "" {
		if s != *last {
			writeTransition(b, *last, s)
			*last = s
		}
		b.WriteString(own)
	}
	for _, c := range t.extra {
		c.writeLegacy(b, s, last)
	}
}

func inherit(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}

// writeTransition writes the codes that turn style from into style to.
func writeTransition(b *strings.Builder, from, to legacyStyle) {
	additive := from.color == to.color &&
		(!from.bold || to.bold) &&
		(!from.italic || to.italic) &&
		(!from.underlined || to.underlined) &&
		(!from.strikethrough || to.strikethrough) &&
		(!from.obfuscated || to.obfuscated)
	if additive {
		writeFlags(b, to, from)
		return
	}

	// A color code keeps obfuscation, so losing it needs a reset.
	if to.color == "" || (from.obfuscated && !to.obfuscated) {
		if from != (legacyStyle{}) {
			writeCode(b, codeReset)
		}
	}
	if code, ok := codeForColor(to.color); ok {
		writeCode(b, code)
	}
	writeFlags(b, to, legacyStyle{})
}

// writeFlags writes the format codes set in to but not in have.
func writeFlags(b *strings.Builder, to, have legacyStyle) {
	if to.obfuscated && !have.obfuscated {
		writeCode(b, codeObfuscated)
	}
	if to.bold && !have.bold {
		writeCode(b, codeBold)
	}
	if to.strikethrough && !have.strikethrough {
		writeCode(b, codeStrikethrough)
	}
	if to.underlined && !have.underlined {
		writeCode(b, codeUnderlined)
	}
	if to.italic && !have.italic {
		writeCode(b, codeItalic)
	}
}

func writeCode(b *strings.Builder, code rune) {
	b.WriteRune(CodeMarker)
	b.WriteRune(code)
}

func codeForColor(c Color) (rune, bool) {
	for code, name := range colorCodes {
		if name == c {
			return code, true
		}
	}
	return 0, false
}

// StripCodes removes every formatting code: a marker and the character after
// it, unless that character is a newline.
func StripCodes(s string) string {
	if !strings.ContainsRune(s, CodeMarker) {
		return s
	}
	var b strings.Builder
	runes := []rune(s)
	for i := 0; i < len(runes); i++ {
		if runes[i] == CodeMarker && i+1 < len(runes) && runes[i+1] != '\n' {
			i++
			continue
		}
		b.WriteRune(runes[i])
	}
	return b.String()
}

// String returns the plain text of the tree: translation keys (followed by
// their arguments as "{a, b}") and text, depth-first, with formatting codes
// removed. Score, selector, keybind and tag path nodes contribute nothing.
func (t *Text) String() string {
	var b strings.Builder
	t.writePlain(&b)
	return StripCodes(b.String())
}

func (t *Text) writePlain(b *strings.Builder) {
	b.WriteString(t.ownText())
	for _, c := range t.extra {
		c.writePlain(b)
	}
}

// ownText is the text of this node alone, codes still in place.
func (t *Text) ownText() string {
	switch t.content {
	case ContentText:
		return t.text
	case ContentTranslate:
		if len(t.with) == 0 {
			return t.translate
		}
		args := make([]string, len(t.with))
		for i, arg := range t.with {
			var b strings.Builder
			arg.writePlain(&b)
			args[i] = b.String()
		}
		return t.translate + "{" + strings.Join(args, ", ") + "}"
	default:
		return ""
	}
}
