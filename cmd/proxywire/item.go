package main

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/anirudhraja/proxywire/schema"
)

func newItemCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "item",
		Short: "Look up items and pack or unpack inventory slots",
	}

	lookup := &cobra.Command{
		Use:   "lookup <id|name|display name>",
		Short: "Print the dataset record of an item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			codec, err := a.loadCodec()
			if err != nil {
				return err
			}
			reg := codec.Registry()

			var item *schema.Item
			if id, err := strconv.Atoi(args[0]); err == nil {
				item = reg.ByID(id)
			} else if item = reg.ByName(args[0]); item == nil {
				item = reg.ByDisplayName(args[0])
			}
			if item == nil {
				return fmt.Errorf("no item matches %q", args[0])
			}

			out, err := json.MarshalIndent(item, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		},
	}

	var count int8
	encode := &cobra.Command{
		Use:   "encode <name|display name>",
		Short: "Print the wire bytes of a slot holding an item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			codec, err := a.loadCodec()
			if err != nil {
				return err
			}
			data, err := codec.EncodeItem(args[0], count)
			if err != nil {
				return err
			}
			printHex(cmd.OutOrStdout(), data)
			return nil
		},
	}
	encode.Flags().Int8Var(&count, "count", 1, "stack size")

	decode := &cobra.Command{
		Use:   "decode <hex>",
		Short: "Decode a slot and print it as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			codec, err := a.loadCodec()
			if err != nil {
				return err
			}
			data, err := parseHex(args[0])
			if err != nil {
				return err
			}
			slot, err := codec.DecodeSlot(data)
			if err != nil {
				return err
			}

			view := struct {
				schema.SlotData
				Tag json.RawMessage `json:"tag,omitempty"`
			}{SlotData: slot}
			tag, ok, err := codec.SlotTag(slot)
			if err != nil {
				return err
			}
			if ok {
				if view.Tag, err = treeToJSON(tag); err != nil {
					return err
				}
				view.NBT = nil
			}

			out, err := json.MarshalIndent(view, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		},
	}

	cmd.AddCommand(lookup, encode, decode)
	return cmd
}
