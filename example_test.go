package proxywire_test

import (
	"fmt"
	"log"

	"github.com/anirudhraja/proxywire"
	"github.com/anirudhraja/proxywire/chat"
	"github.com/anirudhraja/proxywire/nbt"
	"github.com/anirudhraja/proxywire/wire"
)

func ExampleCodec_EncodeItem() {
	codec, err := proxywire.NewDefault()
	if err != nil {
		log.Fatal(err)
	}

	data, err := codec.EncodeItem("Orange Wool", 16)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("% x\n", data)

	slot, err := codec.DecodeSlot(data)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(slot.Item.Name, slot.Count, slot.Damage)
	// Output:
	// 00 23 10 00 01 00
	// minecraft:wool 16 1
}

func ExampleCodec_SlotTag() {
	codec, err := proxywire.NewDefault()
	if err != nil {
		log.Fatal(err)
	}

	lore := nbt.NewList(nbt.String("Forged in fire"))
	display := nbt.NewCompound().
		Set("Name", nbt.String("Excalibur")).
		Set("Lore", lore)
	root := nbt.Tag{Value: nbt.NewCompound().Set("display", display)}

	data, err := codec.EncodeItem("diamond_sword", 1)
	if err != nil {
		log.Fatal(err)
	}
	slot, err := codec.DecodeSlot(data)
	if err != nil {
		log.Fatal(err)
	}
	if slot, err = codec.WithSlotTag(slot, root); err != nil {
		log.Fatal(err)
	}

	tag, ok, err := codec.SlotTag(slot)
	if err != nil || !ok {
		log.Fatal(ok, err)
	}
	fmt.Println(nbt.ToDict(tag.Compound())["display"])
	// Output:
	// map[Lore:[Forged in fire] Name:Excalibur]
}

func Example_chat() {
	msg := chat.Plain("Welcome ").Color(chat.Gold).
		Append(chat.FromLegacy("§bSteve§r!"))

	encoder := wire.NewEncoder()
	if err := encoder.EncodeChatMessage(msg); err != nil {
		log.Fatal(err)
	}

	decoder := wire.NewDecoder(encoder.Bytes())
	decoded, err := decoder.DecodeChat()
	if err != nil {
		log.Fatal(err)
	}
	js, err := decoded.ToJSON()
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(js)
	fmt.Println(decoded.String())
	fmt.Println(decoded.ToLegacy())
	// Output:
	// {"text":"Welcome ","color":"gold","extra":[{"text":"","extra":[{"text":"Steve","color":"aqua"},{"text":"!"}]}]}
	// Welcome Steve!
	// §6Welcome §bSteve§6!
}
