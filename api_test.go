package proxywire

import (
	"bytes"
	"errors"
	"testing"

	"github.com/anirudhraja/proxywire/chat"
	"github.com/anirudhraja/proxywire/nbt"
	"github.com/anirudhraja/proxywire/registry"
	"github.com/anirudhraja/proxywire/schema"
)

func newCodec(t *testing.T) *Codec {
	t.Helper()
	codec, err := NewDefault()
	if err != nil {
		t.Fatalf("Failed to create codec: %v", err)
	}
	return codec
}

func TestNew_RequiresLoadedRegistry(t *testing.T) {
	if _, err := New(registry.NewRegistry()); !errors.Is(err, registry.ErrNotLoaded) {
		t.Errorf("Expected ErrNotLoaded, got %v", err)
	}
	if _, err := New(nil); !errors.Is(err, registry.ErrNotLoaded) {
		t.Errorf("Expected ErrNotLoaded for nil registry, got %v", err)
	}

	reg := registry.NewRegistry()
	if err := reg.Load([]schema.Item{{ID: 1, Name: "minecraft:stone", DisplayName: "Stone"}}); err != nil {
		t.Fatalf("Failed to load registry: %v", err)
	}
	codec, err := New(reg)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if codec.Registry() != reg {
		t.Errorf("Expected the registry passed to New")
	}
}

func TestCodec_ItemSlot(t *testing.T) {
	codec := newCodec(t)

	t.Run("by_name", func(t *testing.T) {
		data, err := codec.EncodeItem("diamond_sword", 1)
		if err != nil {
			t.Fatalf("EncodeItem failed: %v", err)
		}
		want := []byte{0x01, 0x14, 0x01, 0x00, 0x00, 0x00}
		if !bytes.Equal(data, want) {
			t.Errorf("Expected % x, got % x", want, data)
		}

		slot, err := codec.DecodeSlot(data)
		if err != nil {
			t.Fatalf("DecodeSlot failed: %v", err)
		}
		if slot.Item == nil || slot.Item.Name != "minecraft:diamond_sword" {
			t.Errorf("Expected diamond sword, got %+v", slot.Item)
		}
		if slot.Count != 1 || slot.NBT != nil {
			t.Errorf("Unexpected slot %+v", slot)
		}
	})

	t.Run("by_display_name", func(t *testing.T) {
		data, err := codec.EncodeItem("Orange Wool", 3)
		if err != nil {
			t.Fatalf("EncodeItem failed: %v", err)
		}
		want := []byte{0x00, 0x23, 0x03, 0x00, 0x01, 0x00}
		if !bytes.Equal(data, want) {
			t.Errorf("Expected % x, got % x", want, data)
		}
	})

	t.Run("unknown", func(t *testing.T) {
		if _, err := codec.EncodeItem("minecraft:unobtainium", 1); err == nil {
			t.Error("Expected error for unknown item")
		}
	})
}

func TestCodec_SlotTag(t *testing.T) {
	codec := newCodec(t)

	display := nbt.NewCompound().Set("Name", nbt.String("Excalibur"))
	root := nbt.Tag{Value: nbt.NewCompound().Set("display", display)}

	sword := codec.Registry().ByName("diamond_sword")
	slot, err := codec.WithSlotTag(schema.NewSlot(sword, 1), root)
	if err != nil {
		t.Fatalf("WithSlotTag failed: %v", err)
	}

	enc := codec.NewEncoder()
	enc.EncodeSlot(slot)
	decoded, err := codec.DecodeSlot(enc.Bytes())
	if err != nil {
		t.Fatalf("DecodeSlot failed: %v", err)
	}

	tag, ok, err := codec.SlotTag(decoded)
	if err != nil || !ok {
		t.Fatalf("SlotTag = %v, %v", ok, err)
	}
	if !nbt.Equal(tag.Value, root.Value) {
		t.Errorf("Tag changed on the way through the slot")
	}

	t.Run("no_tag", func(t *testing.T) {
		_, ok, err := codec.SlotTag(schema.NewSlot(sword, 1))
		if err != nil || ok {
			t.Errorf("Expected no tag, got %v, %v", ok, err)
		}
	})

	t.Run("corrupt", func(t *testing.T) {
		broken := slot
		broken.NBT = broken.NBT[:len(broken.NBT)-3]
		if _, _, err := codec.SlotTag(broken); err == nil {
			t.Error("Expected error for truncated tag")
		}
	})
}

func TestCodec_Chat(t *testing.T) {
	codec := newCodec(t)

	data, err := codec.EncodeChat(chat.FromLegacy("§aHello §lWorld"))
	if err != nil {
		t.Fatalf("EncodeChat failed: %v", err)
	}
	msg, err := codec.DecodeChat(data)
	if err != nil {
		t.Fatalf("DecodeChat failed: %v", err)
	}
	if got := msg.String(); got != "Hello World" {
		t.Errorf("Expected %q, got %q", "Hello World", got)
	}
	if got := msg.ToLegacy(); got != "§aHello §lWorld" {
		t.Errorf("Expected legacy %q, got %q", "§aHello §lWorld", got)
	}
}
