package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/anirudhraja/proxywire/nbt"
)

func newNBTCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "nbt",
		Short: "Read, write and convert tag-tree files",
	}
	cmd.AddCommand(newNBTDumpCmd(a), newNBTConvertCmd(a))
	return cmd
}

func newNBTDumpCmd(a *app) *cobra.Command {
	var littleEndian bool
	cmd := &cobra.Command{
		Use:   "dump <file>",
		Short: "Print a tag-tree file as JSON",
		Long: `Print a tag-tree file as JSON. The document has a single key, the root
name, holding the root compound. Gzip and zlib input is detected automatically.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := readTree(a, args[0], littleEndian)
			if err != nil {
				return err
			}
			out, err := treeToJSON(root)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		},
	}
	cmd.Flags().BoolVar(&littleEndian, "little-endian", false, "input uses the little-endian profile")
	return cmd
}

func newNBTConvertCmd(a *app) *cobra.Command {
	var (
		inLittleEndian  bool
		outLittleEndian bool
		compression     string
	)
	cmd := &cobra.Command{
		Use:   "convert <in> <out>",
		Short: "Convert a tag-tree file",
		Long: `Convert a tag-tree file between byte orders and compressions. A path ending
in .json is read or written as the JSON form printed by "nbt dump".`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := nbt.ParseCompression(compression)
			if err != nil {
				return err
			}
			root, err := readTree(a, args[0], inLittleEndian)
			if err != nil {
				return err
			}

			if isJSONPath(args[1]) {
				out, err := treeToJSON(root)
				if err != nil {
					return err
				}
				if err := os.WriteFile(args[1], append(out, '\n'), 0o644); err != nil {
					return fmt.Errorf("failed to write %s: %w", args[1], err)
				}
			} else {
				opts := []nbt.Option{nbt.WithCompression(c), nbt.WithLogger(a.logger)}
				if outLittleEndian {
					opts = append(opts, nbt.WithLittleEndian())
				}
				if err := nbt.DumpFile(args[1], root, opts...); err != nil {
					return err
				}
			}

			a.logger.Info("converted tag tree",
				zap.String("in", args[0]),
				zap.String("out", args[1]),
				zap.Stringer("compression", c),
				zap.Bool("little_endian", outLittleEndian),
			)
			return nil
		},
	}
	cmd.Flags().BoolVar(&inLittleEndian, "in-little-endian", false, "input uses the little-endian profile")
	cmd.Flags().BoolVar(&outLittleEndian, "out-little-endian", false, "write the little-endian profile")
	cmd.Flags().StringVar(&compression, "compression", "none", "output compression: none|gzip|zlib")
	return cmd
}

func isJSONPath(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".json")
}

func readTree(a *app, path string, littleEndian bool) (nbt.Tag, error) {
	if isJSONPath(path) {
		data, err := os.ReadFile(path)
		if err != nil {
			return nbt.Tag{}, fmt.Errorf("failed to read %s: %w", path, err)
		}
		return treeFromJSON(data)
	}

	opts := []nbt.Option{nbt.WithLogger(a.logger)}
	if littleEndian {
		opts = append(opts, nbt.WithLittleEndian())
	}
	return nbt.LoadFile(path, opts...)
}

// treeToJSON renders root as {"<root name>": {...}}.
func treeToJSON(root nbt.Tag) ([]byte, error) {
	c := root.Compound()
	if c == nil {
		return nil, errors.New("root tag is not a compound")
	}
	body, err := nbt.ToStruct(c)
	if err != nil {
		return nil, err
	}
	doc := &structpb.Struct{Fields: map[string]*structpb.Value{
		root.Name: structpb.NewStructValue(body),
	}}
	return protojson.MarshalOptions{Multiline: true, Indent: "  "}.Marshal(doc)
}

func treeFromJSON(data []byte) (nbt.Tag, error) {
	var doc structpb.Struct
	if err := protojson.Unmarshal(data, &doc); err != nil {
		return nbt.Tag{}, fmt.Errorf("invalid tag tree JSON: %w", err)
	}
	if len(doc.Fields) != 1 {
		return nbt.Tag{}, fmt.Errorf("tag tree JSON needs exactly one top-level key, got %d", len(doc.Fields))
	}
	var (
		name string
		body *structpb.Struct
	)
	for k, v := range doc.Fields {
		name, body = k, v.GetStructValue()
	}
	if body == nil {
		return nbt.Tag{}, fmt.Errorf("root %q must be an object", name)
	}
	c, err := nbt.FromStruct(body)
	if err != nil {
		return nbt.Tag{}, err
	}
	return nbt.Tag{Name: name, Value: c}, nil
}
