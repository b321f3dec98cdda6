package main

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/anirudhraja/proxywire/schema"
	"github.com/anirudhraja/proxywire/wire"
)

func newVarIntCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "varint",
		Short: "Encode or decode a VarInt",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "encode <n>",
			Short: "Print the VarInt bytes of a 32-bit integer",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				n, err := strconv.ParseInt(args[0], 10, 32)
				if err != nil {
					return fmt.Errorf("invalid integer %q: %w", args[0], err)
				}
				printHex(cmd.OutOrStdout(), wire.AppendVarInt(nil, int32(n)))
				return nil
			},
		},
		&cobra.Command{
			Use:   "decode <hex>",
			Short: "Decode a VarInt from the start of the input",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				data, err := parseHex(args[0])
				if err != nil {
					return err
				}
				n, err := wire.ReadVarInt(bytes.NewReader(data))
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), n)
				return nil
			},
		},
	)
	return cmd
}

func newPositionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "position",
		Short: "Encode or decode a block position",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "encode <x> <y> <z>",
			Short: "Print the packed bytes of a block position",
			Args:  cobra.ExactArgs(3),
			RunE: func(cmd *cobra.Command, args []string) error {
				var coords [3]int32
				for i, arg := range args {
					n, err := strconv.ParseInt(arg, 10, 32)
					if err != nil {
						return fmt.Errorf("invalid coordinate %q: %w", arg, err)
					}
					coords[i] = int32(n)
				}
				data, err := wire.Pack(wire.Position, schema.Pos{X: coords[0], Y: coords[1], Z: coords[2]})
				if err != nil {
					return err
				}
				printHex(cmd.OutOrStdout(), data)
				return nil
			},
		},
		&cobra.Command{
			Use:   "decode <hex>",
			Short: "Decode a packed block position",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				data, err := parseHex(args[0])
				if err != nil {
					return err
				}
				p, err := wire.Unpack(wire.NewDecoder(data), wire.Position)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%d %d %d\n", p.X, p.Y, p.Z)
				return nil
			},
		},
	)
	return cmd
}

func newAngleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "angle",
		Short: "Quantize an angle to a byte or expand it back",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "encode <degrees>",
			Short: "Print the byte for an angle in degrees",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				deg, err := strconv.ParseFloat(args[0], 64)
				if err != nil {
					return fmt.Errorf("invalid angle %q: %w", args[0], err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), wire.AngleToByte(deg))
				return nil
			},
		},
		&cobra.Command{
			Use:   "decode <byte>",
			Short: "Print the angle in degrees for a byte value",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				b, err := strconv.ParseUint(args[0], 10, 8)
				if err != nil {
					return fmt.Errorf("invalid angle byte %q: %w", args[0], err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), wire.AngleFromByte(uint8(b)))
				return nil
			},
		},
	)
	return cmd
}
