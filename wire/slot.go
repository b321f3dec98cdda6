package wire

import (
	"fmt"

	"github.com/anirudhraja/proxywire/registry"
	"github.com/anirudhraja/proxywire/schema"
)

// EmptySlotID is the item id that marks an empty slot.
const EmptySlotID int16 = -1

// EncodeSlot writes s. An empty slot is the single Short -1. Otherwise the id,
// count and damage are followed by the raw tag payload, or by one zero byte
// when there is none.
func (e *Encoder) EncodeSlot(s schema.SlotData) {
	if s.Item == nil {
		e.EncodeShort(EmptySlotID)
		return
	}
	e.EncodeShort(int16(s.Item.ID))
	e.EncodeByte(s.Count)
	e.EncodeShort(s.Damage)
	if len(s.NBT) == 0 {
		e.EncodeByte(0)
		return
	}
	e.EncodeRaw(s.NBT)
}

// EncodeItemSlot resolves name (canonical, with or without namespace, or the
// display name) through the encoder's registry and writes a slot of count
// items with the item's default damage and no tag payload.
func (e *Encoder) EncodeItemSlot(name string, count int8) error {
	if e.registry == nil || !e.registry.Loaded() {
		return registry.ErrNotLoaded
	}
	item := e.registry.ByName(name)
	if item == nil {
		item = e.registry.ByDisplayName(name)
	}
	if item == nil {
		return fmt.Errorf("unknown item %q", name)
	}
	e.EncodeSlot(schema.NewSlot(item, count))
	return nil
}

// DecodeSlot reads a slot.
//
// A non-empty slot consumes the whole rest of the payload: if its first byte
// is zero the slot has no tag data, otherwise all of it is kept verbatim as
// the tag payload. A payload that legitimately starts with a zero byte cannot
// be told apart from "no tag"; this matches what peers send.
//
// Item ids are resolved through the decoder's registry. An id the registry
// does not know is kept as a bare Item with only ID set, so the slot encodes
// back to the same bytes.
func (d *Decoder) DecodeSlot() (schema.SlotData, error) {
	id, err := d.DecodeShort()
	if err != nil {
		return schema.SlotData{}, wrapWithField(err, "id")
	}
	if id == EmptySlotID {
		return schema.SlotData{}, nil
	}

	count, err := d.DecodeByte()
	if err != nil {
		return schema.SlotData{}, wrapWithField(err, "count")
	}
	damage, err := d.DecodeShort()
	if err != nil {
		return schema.SlotData{}, wrapWithField(err, "damage")
	}

	b, ok := d.c.Peek()
	if !ok {
		_, err := d.c.ReadByte()
		return schema.SlotData{}, wrapWithField(err, "nbt")
	}
	var tag []byte
	if b == 0 {
		d.c.Rest()
	} else {
		tag = d.c.Rest()
	}

	return schema.SlotData{
		Item:   d.lookupItem(int(id)),
		Count:  count,
		Damage: damage,
		NBT:    tag,
	}, nil
}

func (d *Decoder) lookupItem(id int) *schema.Item {
	if d.registry != nil {
		if item := d.registry.ByID(id); item != nil {
			return item
		}
	}
	return &schema.Item{ID: id}
}
