// Package chat models rich-text chat components: a tree of styled,
// optionally interactive text nodes that travels as JSON inside protocol
// strings.
//
// Every node has at most one content kind (plain text, translation, score,
// selector, keybind or tag path). The Set* methods switch the content kind and
// drop the fields of every other kind. All mutators change the node in place
// and return it, so calls can be chained:
//
//	msg := chat.Plain("Welcome ").Color(chat.Gold).Bold(true).
//		Append(chat.Plain("Steve").Color(chat.Aqua))
package chat

import (
	"encoding/json"
	"slices"
	"strconv"
)

// Content identifies which content field of a node is populated.
type Content uint8

const (
	ContentNone Content = iota
	ContentText
	ContentTranslate
	ContentScore
	ContentSelector
	ContentKeybind
	ContentNBT
)

// contentKeys lists the JSON key of every content kind in detection order.
var contentKeys = [...]string{
	ContentText:      "text",
	ContentTranslate: "translate",
	ContentScore:     "score",
	ContentSelector:  "selector",
	ContentKeybind:   "keybind",
	ContentNBT:       "nbt",
}

func (c Content) String() string {
	if c == ContentNone {
		return "none"
	}
	if int(c) < len(contentKeys) {
		return contentKeys[c]
	}
	return "unknown(" + strconv.Itoa(int(c)) + ")"
}

// Color is a named chat color or a "#RRGGBB" hex value.
type Color string

const (
	Black       Color = "black"
	DarkBlue    Color = "dark_blue"
	DarkGreen   Color = "dark_green"
	DarkAqua    Color = "dark_aqua"
	DarkRed     Color = "dark_red"
	DarkPurple  Color = "dark_purple"
	Gold        Color = "gold"
	Gray        Color = "gray"
	DarkGray    Color = "dark_gray"
	Blue        Color = "blue"
	Green       Color = "green"
	Aqua        Color = "aqua"
	Red         Color = "red"
	LightPurple Color = "light_purple"
	Yellow      Color = "yellow"
	White       Color = "white"
)

// Score is the content of a scoreboard node.
type Score struct {
	Name      string `json:"name"`
	Objective string `json:"objective"`
	Value     string `json:"value,omitempty"`
}

// ClickEvent runs when the node is clicked, e.g. {"open_url", "https://..."}.
type ClickEvent struct {
	Action string `json:"action"`
	Value  string `json:"value"`
}

// HoverEvent is shown when the pointer rests on the node. Value is kept as
// raw JSON because its shape depends on Action.
type HoverEvent struct {
	Action string          `json:"action"`
	Value  json.RawMessage `json:"value"`
}

// NBTSource locates the tag data a ContentNBT node displays. Empty fields are
// left unchanged by SetNBT.
type NBTSource struct {
	Source    string // "block", "entity" or "storage"
	Block     string
	Entity    string
	Storage   string
	Interpret bool
	Separator *Text
}

// Text is one node of a chat component tree. The zero value is an empty node
// with no content.
type Text struct {
	content Content

	text      string
	translate string
	with      []*Text
	fallback  string
	score     Score
	selector  string
	keybind   string
	nbt       string
	nbtSource string
	block     string
	entity    string
	storage   string
	interpret *bool
	separator *Text

	color         Color
	bold          *bool
	italic        *bool
	underlined    *bool
	strikethrough *bool
	obfuscated    *bool
	font          string
	shadowColor   json.RawMessage

	insertion string
	click     *ClickEvent
	hover     *HoverEvent

	extra []*Text

	// unknown holds object keys this model does not interpret, so a parsed
	// message re-encodes with them intact.
	unknown map[string]json.RawMessage
}

// Plain returns a node whose content is the literal s.
func Plain(s string) *Text {
	return &Text{content: ContentText, text: s}
}

// Translate returns a translation node for key with the given arguments.
func Translate(key string, with ...*Text) *Text {
	return new(Text).SetTranslate(key, with...)
}

// Content reports which content kind the node has.
func (t *Text) Content() Content {
	return t.content
}

// IsEmpty reports whether the node has no content of any kind. Children are
// not considered.
func (t *Text) IsEmpty() bool {
	return t.content == ContentNone
}

// TextValue returns the plain text content, or "" for other content kinds.
func (t *Text) TextValue() string {
	if t.content != ContentText {
		return ""
	}
	return t.text
}

// clearContent drops the content of every kind except keep. The companions
// of keep (translation arguments, separators, tag source fields) survive.
func (t *Text) clearContent(keep Content) {
	if keep != ContentText {
		t.text = ""
	}
	if keep != ContentTranslate {
		t.translate, t.with, t.fallback = "", nil, ""
	}
	if keep != ContentScore {
		t.score = Score{}
	}
	if keep != ContentSelector {
		t.selector = ""
	}
	if keep != ContentKeybind {
		t.keybind = ""
	}
	if keep != ContentNBT {
		t.nbt, t.nbtSource, t.block, t.entity, t.storage = "", "", "", "", ""
		t.interpret = nil
	}
	if keep != ContentSelector && keep != ContentNBT {
		t.separator = nil
	}
	for _, key := range contentKeys[1:] {
		delete(t.unknown, key)
	}
	for _, key := range companionKeys {
		delete(t.unknown, key)
	}
	t.content = keep
}

// SetText makes the node a plain text node.
func (t *Text) SetText(s string) *Text {
	t.clearContent(ContentText)
	t.text = s
	return t
}

// SetTranslate makes the node a translation of key. Arguments replace the
// current ones only when given.
func (t *Text) SetTranslate(key string, with ...*Text) *Text {
	t.clearContent(ContentTranslate)
	t.translate = key
	if len(with) > 0 {
		t.with = with
	}
	return t
}

// Fallback sets the text shown when a translation key is unknown to the
// client. It only has an effect on translation nodes.
func (t *Text) Fallback(s string) *Text {
	if t.content == ContentTranslate {
		t.fallback = s
	}
	return t
}

// SetScore makes the node display a scoreboard value.
func (t *Text) SetScore(name, objective string) *Text {
	t.clearContent(ContentScore)
	t.score = Score{Name: name, Objective: objective}
	return t
}

// SetSelector makes the node display the entities matched by selector. A nil
// separator keeps the current one.
func (t *Text) SetSelector(selector string, separator *Text) *Text {
	t.clearContent(ContentSelector)
	t.selector = selector
	if separator != nil {
		t.separator = separator
	}
	return t
}

// SetKeybind makes the node display the key bound to keybind.
func (t *Text) SetKeybind(keybind string) *Text {
	t.clearContent(ContentKeybind)
	t.keybind = keybind
	return t
}

// SetNBT makes the node display the tag data at path.
func (t *Text) SetNBT(path string, src NBTSource) *Text {
	t.clearContent(ContentNBT)
	t.nbt = path
	if src.Source != "" {
		t.nbtSource = src.Source
	}
	if src.Block != "" {
		t.block = src.Block
	}
	if src.Entity != "" {
		t.entity = src.Entity
	}
	if src.Storage != "" {
		t.storage = src.Storage
	}
	if src.Interpret {
		t.interpret = boolPtr(true)
	}
	if src.Separator != nil {
		t.separator = src.Separator
	}
	return t
}

func boolPtr(b bool) *bool {
	return &b
}

// Style

func (t *Text) Color(c Color) *Text {
	t.color = c
	return t
}

func (t *Text) Bold(b bool) *Text {
	t.bold = boolPtr(b)
	return t
}

func (t *Text) Italic(b bool) *Text {
	t.italic = boolPtr(b)
	return t
}

func (t *Text) Underlined(b bool) *Text {
	t.underlined = boolPtr(b)
	return t
}

func (t *Text) Strikethrough(b bool) *Text {
	t.strikethrough = boolPtr(b)
	return t
}

func (t *Text) Obfuscated(b bool) *Text {
	t.obfuscated = boolPtr(b)
	return t
}

// Font sets the font resource location, e.g. "minecraft:uniform".
func (t *Text) Font(font string) *Text {
	t.font = font
	return t
}

// ShadowColor sets the text shadow as a packed ARGB integer.
func (t *Text) ShadowColor(argb uint32) *Text {
	t.shadowColor = json.RawMessage(strconv.FormatUint(uint64(argb), 10))
	return t
}

// ShadowColorRGBA sets the text shadow as a [r, g, b, a] list of floats in
// [0, 1].
func (t *Text) ShadowColorRGBA(r, g, b, a float64) *Text {
	data, _ := json.Marshal([]float64{r, g, b, a})
	t.shadowColor = data
	return t
}

// Interaction

// Insertion sets the text inserted into the chat input on shift-click.
func (t *Text) Insertion(s string) *Text {
	t.insertion = s
	return t
}

// ClickEvent sets the click action, e.g. "run_command" with "/spawn".
func (t *Text) ClickEvent(action, value string) *Text {
	t.click = &ClickEvent{Action: action, Value: value}
	return t
}

// HoverText shows tooltip when the pointer rests on the node.
func (t *Text) HoverText(tooltip *Text) *Text {
	if tooltip == nil {
		tooltip = Plain("")
	}
	value, err := tooltip.MarshalJSON()
	if err != nil {
		// A tree built through this package always marshals.
		value = json.RawMessage(`""`)
	}
	t.hover = &HoverEvent{Action: "show_text", Value: value}
	return t
}

// Hover returns the hover event, or nil.
func (t *Text) Hover() *HoverEvent {
	if t.hover == nil {
		return nil
	}
	h := *t.hover
	h.Value = slices.Clone(h.Value)
	return &h
}

// Click returns the click event, or nil.
func (t *Text) Click() *ClickEvent {
	if t.click == nil {
		return nil
	}
	c := *t.click
	return &c
}

// Children

// Append adds children at the end. t takes ownership of them.
func (t *Text) Append(children ...*Text) *Text {
	for _, c := range children {
		if c != nil {
			t.extra = append(t.extra, c)
		}
	}
	return t
}

// Extend is Append for a slice.
func (t *Text) Extend(children []*Text) *Text {
	return t.Append(children...)
}

// Appends appends a copy of child with a space before its text.
func (t *Text) Appends(child *Text) *Text {
	return t.AppendSep(child, " ")
}

// AppendSep appends a copy of child with sep before its text. A child without
// text (including non-text content) becomes a plain text node holding only
// sep.
func (t *Text) AppendSep(child *Text, sep string) *Text {
	c := child.Clone()
	if c.TextValue() == "" {
		c.SetText(sep)
	} else {
		c.text = sep + c.text
	}
	return t.Append(c)
}

// Prepend inserts child before the existing children.
func (t *Text) Prepend(child *Text) *Text {
	if child != nil {
		t.extra = slices.Insert(t.extra, 0, child)
	}
	return t
}

// ReplaceChild replaces the child at index. Out of range indices are ignored.
func (t *Text) ReplaceChild(index int, child *Text) *Text {
	if index >= 0 && index < len(t.extra) && child != nil {
		t.extra[index] = child
	}
	return t
}

// RemoveChild removes the child at index. Out of range indices are ignored.
func (t *Text) RemoveChild(index int) *Text {
	if index >= 0 && index < len(t.extra) {
		t.extra = slices.Delete(t.extra, index, index+1)
		if len(t.extra) == 0 {
			t.extra = nil
		}
	}
	return t
}

func (t *Text) ClearChildren() *Text {
	t.extra = nil
	return t
}

// Children returns deep copies of the direct children.
func (t *Text) Children() []*Text {
	out := make([]*Text, len(t.extra))
	for i, c := range t.extra {
		out[i] = c.Clone()
	}
	return out
}

// Flatten moves every descendant, depth-first in document order, into a
// single child list under t. Each moved node keeps its own content and style
// but loses its children. Style is not propagated, so a descendant that
// relied on inheriting from its parent may render differently.
func (t *Text) Flatten() *Text {
	var flat []*Text
	var collect func(nodes []*Text)
	collect = func(nodes []*Text) {
		for _, n := range nodes {
			c := n.shallowCopy()
			c.extra = nil
			flat = append(flat, c)
			collect(n.extra)
		}
	}
	collect(t.extra)
	t.extra = flat
	return t
}

func (t *Text) shallowCopy() *Text {
	c := *t
	return &c
}

// Clone returns a deep copy of t.
func (t *Text) Clone() *Text {
	if t == nil {
		return nil
	}
	c := *t
	c.with = cloneAll(t.with)
	c.separator = t.separator.Clone()
	c.interpret = cloneBool(t.interpret)
	c.bold = cloneBool(t.bold)
	c.italic = cloneBool(t.italic)
	c.underlined = cloneBool(t.underlined)
	c.strikethrough = cloneBool(t.strikethrough)
	c.obfuscated = cloneBool(t.obfuscated)
	c.shadowColor = slices.Clone(t.shadowColor)
	c.click = t.Click()
	c.hover = t.Hover()
	c.extra = cloneAll(t.extra)
	if t.unknown != nil {
		c.unknown = make(map[string]json.RawMessage, len(t.unknown))
		for k, v := range t.unknown {
			c.unknown[k] = slices.Clone(v)
		}
	}
	return &c
}

func cloneAll(nodes []*Text) []*Text {
	if nodes == nil {
		return nil
	}
	out := make([]*Text, len(nodes))
	for i, n := range nodes {
		out[i] = n.Clone()
	}
	return out
}

func cloneBool(b *bool) *bool {
	if b == nil {
		return nil
	}
	return boolPtr(*b)
}
