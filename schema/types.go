package schema

// Item represents one entry of the item dataset. Items are immutable once the
// registry has loaded them.
type Item struct {
	ID          int    `json:"id" yaml:"id" validate:"min=0,max=32767"`                      // 35
	Name        string `json:"name" yaml:"name" validate:"required,startswith=minecraft:"`   // "minecraft:wool"
	DisplayName string `json:"display_name" yaml:"display_name" validate:"required"`         // "Orange Wool"
	Data        int    `json:"data" yaml:"data" validate:"min=0,max=32767"`                  // default damage value, 1
}

// SlotData represents one inventory slot as it travels on the wire.
type SlotData struct {
	Item   *Item  `json:"item,omitempty"` // nil means empty slot
	Count  int8   `json:"count"`          // stack size
	Damage int16  `json:"damage"`         // damage or data value
	NBT    []byte `json:"nbt,omitempty"`  // raw tag-tree payload, empty when absent
}

// NewSlot returns a slot holding count items of the given kind, using the
// item's default data value as damage.
func NewSlot(item *Item, count int8) SlotData {
	s := SlotData{Item: item, Count: count}
	if item != nil {
		s.Damage = int16(item.Data)
	}
	return s
}

// Empty reports whether the slot carries no item.
func (s SlotData) Empty() bool {
	return s.Item == nil
}

// Pos is an integer block position.
type Pos struct {
	X int32 `json:"x"`
	Y int32 `json:"y"`
	Z int32 `json:"z"`
}
