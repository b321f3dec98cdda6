package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/anirudhraja/proxywire/chat"
	"github.com/anirudhraja/proxywire/wire"
)

func newChatCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Convert chat components",
	}

	var legacyInput bool
	parse := func(s string) (*chat.Text, error) {
		if legacyInput {
			return chat.FromLegacy(s), nil
		}
		return chat.Parse([]byte(s))
	}

	fromLegacy := &cobra.Command{
		Use:   "from-legacy <text>",
		Short: "Convert text with legacy formatting codes to component JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			js, err := chat.FromLegacy(args[0]).ToJSON()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), js)
			return nil
		},
	}

	toLegacy := &cobra.Command{
		Use:   "to-legacy <json>",
		Short: "Convert component JSON to text with legacy formatting codes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := chat.Parse([]byte(args[0]))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), t.ToLegacy())
			return nil
		},
	}

	plain := &cobra.Command{
		Use:   "plain <component>",
		Short: "Print the plain text of a component",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := parse(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), t.String())
			return nil
		},
	}

	render := &cobra.Command{
		Use:   "render <component>",
		Short: "Print a component with terminal colors",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := parse(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), chat.Render(t))
			return nil
		},
	}

	encode := &cobra.Command{
		Use:   "encode <component>",
		Short: "Print the wire bytes of a component as hex",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := parse(args[0])
			if err != nil {
				return err
			}
			data, err := wire.Pack(wire.Chat, t)
			if err != nil {
				return err
			}
			printHex(cmd.OutOrStdout(), data)
			return nil
		},
	}

	decode := &cobra.Command{
		Use:   "decode <hex>",
		Short: "Decode a wire chat string and print its JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := parseHex(args[0])
			if err != nil {
				return err
			}
			t, err := wire.Unpack(wire.NewDecoder(data), wire.Chat)
			if err != nil {
				return err
			}
			js, err := t.ToJSON()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), js)
			return nil
		},
	}

	for _, c := range []*cobra.Command{plain, render, encode} {
		c.Flags().BoolVar(&legacyInput, "legacy", false, "input is text with legacy formatting codes")
	}
	cmd.AddCommand(fromLegacy, toLegacy, plain, render, encode, decode)
	return cmd
}
