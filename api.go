// Package proxywire converts between the bytes a game client and server
// exchange and typed Go values. It binds an item registry to the primitive
// codec in package wire, the tag-tree codec in package nbt and the chat
// model in package chat.
package proxywire

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/anirudhraja/proxywire/chat"
	"github.com/anirudhraja/proxywire/nbt"
	"github.com/anirudhraja/proxywire/registry"
	"github.com/anirudhraja/proxywire/schema"
	"github.com/anirudhraja/proxywire/wire"
)

// Codec is the entry point for packet payload work. It is safe for
// concurrent use; the decoders and encoders it hands out are not.
type Codec struct {
	registry *registry.Registry
	logger   *zap.Logger
}

// Option configures a Codec.
type Option func(*Codec)

// WithLogger sets the logger passed on to the registry and the tag-tree
// loader.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Codec) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New creates a Codec around a loaded registry.
func New(reg *registry.Registry, opts ...Option) (*Codec, error) {
	if !reg.Loaded() {
		return nil, registry.ErrNotLoaded
	}
	c := &Codec{registry: reg, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// NewDefault creates a Codec around the item dataset built into the binary.
func NewDefault(opts ...Option) (*Codec, error) {
	c := &Codec{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(c)
	}
	reg, err := registry.LoadDefault(registry.WithLogger(c.logger))
	if err != nil {
		return nil, fmt.Errorf("failed to load item dataset: %w", err)
	}
	c.registry = reg
	return c, nil
}

// Registry returns the item registry.
func (c *Codec) Registry() *registry.Registry {
	return c.registry
}

// NewDecoder returns a decoder over data that resolves item ids through the
// registry.
func (c *Codec) NewDecoder(data []byte) *wire.Decoder {
	return wire.NewDecoderWithRegistry(data, c.registry)
}

// NewEncoder returns an empty encoder that resolves item names through the
// registry.
func (c *Codec) NewEncoder() *wire.Encoder {
	return wire.NewEncoderWithRegistry(c.registry)
}

// DecodeSlot decodes data as a single slot.
func (c *Codec) DecodeSlot(data []byte) (schema.SlotData, error) {
	return c.NewDecoder(data).DecodeSlot()
}

// EncodeItem encodes a slot of count items named name.
func (c *Codec) EncodeItem(name string, count int8) ([]byte, error) {
	e := c.NewEncoder()
	if err := e.EncodeItemSlot(name, count); err != nil {
		return nil, err
	}
	return e.Bytes(), nil
}

// SlotTag decodes the tag payload of slot. It reports false when the slot
// carries none.
func (c *Codec) SlotTag(slot schema.SlotData) (nbt.Tag, bool, error) {
	if len(slot.NBT) == 0 || slot.NBT[0] == byte(nbt.TagEnd) {
		return nbt.Tag{}, false, nil
	}
	tag, err := nbt.Load(slot.NBT, nbt.WithLogger(c.logger))
	if err != nil {
		return nbt.Tag{}, false, fmt.Errorf("failed to decode slot tag: %w", err)
	}
	return tag, true, nil
}

// WithSlotTag returns a copy of slot carrying tag as its payload, stored
// uncompressed as peers expect.
func (c *Codec) WithSlotTag(slot schema.SlotData, tag nbt.Tag) (schema.SlotData, error) {
	data, err := nbt.Dump(tag, nbt.WithLogger(c.logger))
	if err != nil {
		return slot, fmt.Errorf("failed to encode slot tag: %w", err)
	}
	slot.NBT = data
	return slot, nil
}

// DecodeChat decodes data as a single chat string.
func (c *Codec) DecodeChat(data []byte) (*chat.Text, error) {
	return c.NewDecoder(data).DecodeChat()
}

// EncodeChat encodes t as a chat string.
func (c *Codec) EncodeChat(t *chat.Text) ([]byte, error) {
	e := c.NewEncoder()
	if err := e.EncodeChat(t); err != nil {
		return nil, err
	}
	return e.Bytes(), nil
}
