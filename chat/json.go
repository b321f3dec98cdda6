package chat

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
)

// companionKeys are object keys that belong to a specific content kind.
var companionKeys = []string{
	"with", "fallback", "separator", "interpret", "block", "entity", "storage", "source",
}

// New builds a node from any of the shapes a component may take:
//
//   - nil: an empty node
//   - string: a plain text node
//   - *Text: a deep copy
//   - map[string]any: a component object
//   - []any or []*Text: the first element becomes the node, the others are
//     appended as its children
//   - json.RawMessage or []byte: parsed as component JSON
//   - anything else: a plain text node holding its printed value
func New(v any) (*Text, error) {
	switch x := v.(type) {
	case nil:
		return &Text{}, nil
	case string:
		return Plain(x), nil
	case *Text:
		if x == nil {
			return &Text{}, nil
		}
		return x.Clone(), nil
	case json.RawMessage:
		return Parse(x)
	case []byte:
		return Parse(x)
	case map[string]any:
		data, err := json.Marshal(x)
		if err != nil {
			return nil, fmt.Errorf("failed to encode component object: %w", err)
		}
		return Parse(data)
	case []*Text:
		items := make([]any, len(x))
		for i, c := range x {
			items[i] = c
		}
		return fromList(items)
	case []any:
		return fromList(x)
	default:
		return Plain(fmt.Sprint(v)), nil
	}
}

func fromList(items []any) (*Text, error) {
	if len(items) == 0 {
		return &Text{}, nil
	}
	var (
		head *Text
		err  error
	)
	switch first := items[0].(type) {
	case map[string]any, *Text:
		head, err = New(first)
	default:
		head = Plain(fmt.Sprint(first))
	}
	if err != nil {
		return nil, err
	}
	for _, item := range items[1:] {
		child, err := New(item)
		if err != nil {
			return nil, err
		}
		head.Append(child)
	}
	return head, nil
}

// Parse decodes component JSON. A JSON string is a plain text node, an array
// is a node followed by its children, and an object is a full component.
func Parse(data []byte) (*Text, error) {
	t := new(Text)
	if err := json.Unmarshal(data, t); err != nil {
		return nil, err
	}
	return t, nil
}

// ToJSON encodes t as compact component JSON.
func (t *Text) ToJSON() (string, error) {
	data, err := t.MarshalJSON()
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// MarshalJSON implements json.Marshaler. A node without content is written
// with empty text, as clients reject components that have none. Keys the
// model does not interpret are written back after the known ones, sorted.
func (t *Text) MarshalJSON() ([]byte, error) {
	var w objectWriter

	switch t.content {
	case ContentNone, ContentText:
		w.field("text", t.text)
	case ContentTranslate:
		w.field("translate", t.translate)
		if len(t.with) > 0 {
			w.field("with", t.with)
		}
		if t.fallback != "" {
			w.field("fallback", t.fallback)
		}
	case ContentScore:
		w.field("score", t.score)
	case ContentSelector:
		w.field("selector", t.selector)
		if t.separator != nil {
			w.field("separator", t.separator)
		}
	case ContentKeybind:
		w.field("keybind", t.keybind)
	case ContentNBT:
		w.field("nbt", t.nbt)
		if t.nbtSource != "" {
			w.field("source", t.nbtSource)
		}
		if t.block != "" {
			w.field("block", t.block)
		}
		if t.entity != "" {
			w.field("entity", t.entity)
		}
		if t.storage != "" {
			w.field("storage", t.storage)
		}
		if t.interpret != nil {
			w.field("interpret", *t.interpret)
		}
		if t.separator != nil {
			w.field("separator", t.separator)
		}
	default:
		return nil, fmt.Errorf("unknown content kind %s", t.content)
	}

	if t.color != "" {
		w.field("color", t.color)
	}
	w.optBool("bold", t.bold)
	w.optBool("italic", t.italic)
	w.optBool("underlined", t.underlined)
	w.optBool("strikethrough", t.strikethrough)
	w.optBool("obfuscated", t.obfuscated)
	if t.font != "" {
		w.field("font", t.font)
	}
	if len(t.shadowColor) > 0 {
		w.raw("shadow_color", t.shadowColor)
	}
	if t.insertion != "" {
		w.field("insertion", t.insertion)
	}
	if t.click != nil {
		w.field("clickEvent", t.click)
	}
	if t.hover != nil {
		w.field("hoverEvent", t.hover)
	}
	if len(t.extra) > 0 {
		w.field("extra", t.extra)
	}
	for _, key := range slices.Sorted(maps.Keys(t.unknown)) {
		w.raw(key, t.unknown[key])
	}
	return w.finish()
}

// objectWriter writes a JSON object with keys in call order.
type objectWriter struct {
	buf bytes.Buffer
	err error
}

func (w *objectWriter) raw(key string, value []byte) {
	if w.err != nil {
		return
	}
	if w.buf.Len() == 0 {
		w.buf.WriteByte('{')
	} else {
		w.buf.WriteByte(',')
	}
	w.buf.Write(encodeValue(key, &w.err))
	w.buf.WriteByte(':')
	w.buf.Write(value)
}

func (w *objectWriter) field(key string, value any) {
	if w.err != nil {
		return
	}
	data := encodeValue(value, &w.err)
	if w.err != nil {
		w.err = fmt.Errorf("failed to encode %q: %w", key, w.err)
		return
	}
	w.raw(key, data)
}

func (w *objectWriter) optBool(key string, b *bool) {
	if b != nil {
		w.field(key, *b)
	}
}

func (w *objectWriter) finish() ([]byte, error) {
	if w.err != nil {
		return nil, w.err
	}
	if w.buf.Len() == 0 {
		return []byte("{}"), nil
	}
	w.buf.WriteByte('}')
	return w.buf.Bytes(), nil
}

// encodeValue marshals v without HTML escaping, so "<" and "&" in chat text
// stay readable on the wire.
func encodeValue(v any, errp *error) []byte {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		*errp = err
		return nil
	}
	return bytes.TrimRight(buf.Bytes(), "\n")
}

// UnmarshalJSON implements json.Unmarshaler for the string, array and object
// forms of a component.
func (t *Text) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return errors.New("empty component")
	}

	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = *Plain(s)
		return nil
	case '[':
		var items []json.RawMessage
		if err := json.Unmarshal(data, &items); err != nil {
			return err
		}
		return t.unmarshalList(items)
	case '{':
		return t.unmarshalObject(data)
	case 'n':
		return errors.New("null is not a component")
	default:
		// Numbers and booleans show as their literal text.
		var v any
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*t = *Plain(string(data))
		return nil
	}
}

func (t *Text) unmarshalList(items []json.RawMessage) error {
	if len(items) == 0 {
		*t = Text{}
		return nil
	}
	var head Text
	if err := head.UnmarshalJSON(items[0]); err != nil {
		return fmt.Errorf("component list element 0: %w", err)
	}
	for i, raw := range items[1:] {
		child := new(Text)
		if err := child.UnmarshalJSON(raw); err != nil {
			return fmt.Errorf("component list element %d: %w", i+1, err)
		}
		head.extra = append(head.extra, child)
	}
	*t = head
	return nil
}

func (t *Text) unmarshalObject(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	var out Text
	// "type" only restates what the content key already says.
	delete(fields, "type")

	for kind := ContentText; kind <= ContentNBT; kind++ {
		if _, ok := fields[contentKeys[kind]]; ok {
			out.content = kind
			break
		}
	}

	d := fieldDecoder{fields: fields}
	switch out.content {
	case ContentText:
		d.decode("text", &out.text)
	case ContentTranslate:
		d.decode("translate", &out.translate)
		d.decode("with", &out.with)
		d.decode("fallback", &out.fallback)
	case ContentScore:
		d.decode("score", &out.score)
	case ContentSelector:
		d.decode("selector", &out.selector)
		d.decodeNode("separator", &out.separator)
	case ContentKeybind:
		d.decode("keybind", &out.keybind)
	case ContentNBT:
		d.decode("nbt", &out.nbt)
		d.decode("source", &out.nbtSource)
		d.decode("block", &out.block)
		d.decode("entity", &out.entity)
		d.decode("storage", &out.storage)
		d.decode("interpret", &out.interpret)
		d.decodeNode("separator", &out.separator)
	}

	d.decode("color", &out.color)
	d.decode("bold", &out.bold)
	d.decode("italic", &out.italic)
	d.decode("underlined", &out.underlined)
	d.decode("strikethrough", &out.strikethrough)
	d.decode("obfuscated", &out.obfuscated)
	d.decode("font", &out.font)
	if raw, ok := fields["shadow_color"]; ok {
		out.shadowColor = slices.Clone(raw)
		delete(fields, "shadow_color")
	}
	d.decode("insertion", &out.insertion)
	d.decode("clickEvent", &out.click)
	d.decode("hoverEvent", &out.hover)
	d.decode("extra", &out.extra)
	if d.err != nil {
		return d.err
	}
	// JSON nulls in child lists decode to nil pointers.
	out.with = slices.DeleteFunc(out.with, isNil)
	out.extra = slices.DeleteFunc(out.extra, isNil)

	if len(fields) > 0 {
		out.unknown = fields
	}
	*t = out
	return nil
}

func isNil(t *Text) bool { return t == nil }

// fieldDecoder decodes and removes keys from a component object; the keys
// left over are the ones the model does not interpret.
type fieldDecoder struct {
	fields map[string]json.RawMessage
	err    error
}

func (d *fieldDecoder) decode(key string, dst any) {
	raw, ok := d.fields[key]
	if !ok || d.err != nil {
		return
	}
	delete(d.fields, key)
	if err := json.Unmarshal(raw, dst); err != nil {
		d.err = fmt.Errorf("component field %q: %w", key, err)
	}
}

func (d *fieldDecoder) decodeNode(key string, dst **Text) {
	raw, ok := d.fields[key]
	if !ok || d.err != nil {
		return
	}
	if strings.TrimSpace(string(raw)) == "null" {
		delete(d.fields, key)
		return
	}
	d.decode(key, dst)
}
