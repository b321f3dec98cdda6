package registry

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/anirudhraja/proxywire/schema"
)

//go:embed items.jsonc
var defaultDataset []byte

// LoadDefault builds a registry from the dataset compiled into the binary.
func LoadDefault(opts ...Option) (*Registry, error) {
	items, err := DecodeJSON(defaultDataset)
	if err != nil {
		return nil, fmt.Errorf("failed to decode built-in item dataset: %w", err)
	}
	r := NewRegistry(opts...)
	if err := r.Load(items); err != nil {
		return nil, err
	}
	return r, nil
}

// LoadFile builds a registry from a dataset on disk. The format is chosen from
// the extension: .json and .jsonc are JSON with comments allowed, .yaml and
// .yml are YAML.
func LoadFile(path string, opts ...Option) (*Registry, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read item dataset: %w", err)
	}

	var items []schema.Item
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json", ".jsonc":
		items, err = DecodeJSON(content)
	case ".yaml", ".yml":
		items, err = DecodeYAML(content)
	default:
		return nil, fmt.Errorf("unsupported item dataset format %q: %s", ext, path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decode item dataset %s: %w", path, err)
	}

	r := NewRegistry(opts...)
	if err := r.Load(items); err != nil {
		return nil, err
	}
	return r, nil
}

// DecodeJSON parses a JSON array of item records. Comments and trailing commas
// are tolerated.
func DecodeJSON(content []byte) ([]schema.Item, error) {
	var items []schema.Item
	if err := json.Unmarshal(jsonc.ToJSON(content), &items); err != nil {
		return nil, err
	}
	return items, nil
}

// DecodeYAML parses a YAML sequence of item records.
func DecodeYAML(content []byte) ([]schema.Item, error) {
	var items []schema.Item
	if err := yaml.Unmarshal(content, &items); err != nil {
		return nil, err
	}
	return items, nil
}
