package main

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anirudhraja/proxywire/nbt"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestPrimitives(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"varint", "encode", "300"}, "ac 02\n"},
		{[]string{"varint", "encode", "-1"}, "ff ff ff ff 0f\n"},
		{[]string{"varint", "decode", "ff ff ff ff 0f"}, "-1\n"},
		{[]string{"varint", "decode", "ac02"}, "300\n"},
		{[]string{"position", "encode", "1", "2", "3"}, "00 00 00 40 08 00 00 03\n"},
		{[]string{"position", "decode", "00 00 00 40 08 00 00 03"}, "1 2 3\n"},
		{[]string{"position", "decode", "ff ff ff ff ff ff ff ff"}, "-1 -1 -1\n"},
		{[]string{"angle", "encode", "90"}, "64\n"},
		{[]string{"angle", "encode", "360"}, "0\n"},
		{[]string{"angle", "decode", "128"}, "180\n"},
	}
	for _, tt := range tests {
		t.Run(strings.Join(tt.args, " "), func(t *testing.T) {
			out, err := run(t, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestPrimitives_Errors(t *testing.T) {
	for _, args := range [][]string{
		{"varint", "encode", "99999999999"},
		{"varint", "decode", "zz"},
		{"varint", "decode", "80 80 80 80 80 01"},
		{"position", "decode", "00 01"},
		{"angle", "decode", "256"},
		{"--log-level", "loud", "varint", "encode", "1"},
	} {
		_, err := run(t, args...)
		assert.Error(t, err, "%v", args)
	}
}

func TestChat(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"chat", "from-legacy", "§aHi"}, `{"text":"Hi","color":"green"}` + "\n"},
		{[]string{"chat", "to-legacy", `{"text":"a","color":"red","bold":true}`}, "§c§la\n"},
		{[]string{"chat", "plain", `{"translate":"k","with":["a"]}`}, "k{a}\n"},
		{[]string{"chat", "plain", "--legacy", "§aHello §lWorld"}, "Hello World\n"},
		{[]string{"chat", "encode", `"hi"`}, "0d 7b 22 74 65 78 74 22 3a 22 68 69 22 7d\n"},
		{[]string{"chat", "decode", "0d 7b 22 74 65 78 74 22 3a 22 68 69 22 7d"}, `{"text":"hi"}` + "\n"},
	}
	for _, tt := range tests {
		t.Run(strings.Join(tt.args, " "), func(t *testing.T) {
			out, err := run(t, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}

	_, err := run(t, "chat", "plain", "{")
	assert.Error(t, err)
}

func TestItem(t *testing.T) {
	out, err := run(t, "item", "encode", "Orange Wool", "--count", "2")
	require.NoError(t, err)
	assert.Equal(t, "00 23 02 00 01 00\n", out)

	out, err = run(t, "item", "lookup", "35")
	require.NoError(t, err)
	assert.Contains(t, out, `"display_name": "White Wool"`)

	out, err = run(t, "item", "lookup", "stone")
	require.NoError(t, err)
	assert.Contains(t, out, `"name": "minecraft:stone"`)

	out, err = run(t, "item", "decode", "00 23 02 00 01 00")
	require.NoError(t, err)
	var slot struct {
		Item   struct{ Name string }
		Count  int
		Damage int
	}
	require.NoError(t, json.Unmarshal([]byte(out), &slot))
	assert.Equal(t, "minecraft:wool", slot.Item.Name)
	assert.Equal(t, 2, slot.Count)
	assert.Equal(t, 1, slot.Damage)

	_, err = run(t, "item", "lookup", "Unobtainium")
	assert.Error(t, err)
}

func TestItem_DatasetFromEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "items.yaml")
	dataset := "- id: 900\n  name: minecraft:ruby\n  display_name: Ruby\n  data: 0\n"
	require.NoError(t, os.WriteFile(path, []byte(dataset), 0o644))
	t.Setenv(envItems, path)

	out, err := run(t, "item", "encode", "Ruby")
	require.NoError(t, err)
	assert.Equal(t, "03 84 01 00 00 00\n", out)

	_, err = run(t, "item", "encode", "stone")
	assert.Error(t, err, "built-in dataset must not be used")
}

func TestNBT_Convert(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "level.json")
	doc := `{"Data": {"LevelName": "world", "Time": 24000, "Spawn": [1, 64, -3]}}`
	require.NoError(t, os.WriteFile(src, []byte(doc), 0o644))

	bin := filepath.Join(dir, "level.dat")
	_, err := run(t, "nbt", "convert", src, bin, "--compression", "gzip")
	require.NoError(t, err)

	data, err := os.ReadFile(bin)
	require.NoError(t, err)
	assert.Equal(t, nbt.CompressionGzip, nbt.Sniff(data))

	root, err := nbt.Load(data)
	require.NoError(t, err)
	assert.Equal(t, "Data", root.Name)
	name, ok := root.Compound().Get("LevelName")
	require.True(t, ok)
	assert.Equal(t, nbt.String("world"), name)

	le := filepath.Join(dir, "level_le.dat")
	_, err = run(t, "nbt", "convert", bin, le, "--out-little-endian")
	require.NoError(t, err)

	out, err := run(t, "nbt", "dump", "--little-endian", le)
	require.NoError(t, err)
	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	var want map[string]any
	require.NoError(t, json.Unmarshal([]byte(doc), &want))
	assert.Equal(t, want, got)

	_, err = run(t, "nbt", "convert", src, bin, "--compression", "lz4")
	assert.Error(t, err)
}

func TestNBT_BadJSON(t *testing.T) {
	dir := t.TempDir()
	for name, doc := range map[string]string{
		"two_roots.json": `{"a": {}, "b": {}}`,
		"scalar.json":    `{"a": 1}`,
		"broken.json":    `{"a": `,
	} {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))
		_, err := run(t, "nbt", "dump", path)
		assert.Error(t, err, name)
	}
}
