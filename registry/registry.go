package registry

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/anirudhraja/proxywire/schema"
)

// Namespace is prepended to item name queries that lack one.
const Namespace = "minecraft:"

var (
	ErrAlreadyLoaded = errors.New("registry already loaded")
	ErrNotLoaded     = errors.New("registry not loaded")
)

// Registry stores the item dataset. We look items up when packing or unpacking
// inventory slots. A Registry is filled exactly once by Load and is read-only
// afterwards, so concurrent lookups need no locking.
type Registry struct {
	items     []schema.Item
	byID      map[int]int    // item id -> index of first record
	byName    map[string]int // namespaced name -> index of first record
	byDisplay map[string]int // display name -> index of first record

	mu     sync.Mutex
	loaded atomic.Bool
	logger *zap.Logger
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger used to report loads.
func WithLogger(logger *zap.Logger) Option {
	return func(r *Registry) {
		if logger != nil {
			r.logger = logger
		}
	}
}

func NewRegistry(opts ...Option) *Registry {
	r := &Registry{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Load validates and indexes the given records. It may succeed only once per
// Registry; later calls return ErrAlreadyLoaded. When several records share an
// id, name or display name, the one earliest in items wins.
//
// Load must complete before the Registry is shared with decoders.
func (r *Registry) Load(items []schema.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.loaded.Load() {
		return ErrAlreadyLoaded
	}
	return r.build(items)
}

func (r *Registry) build(items []schema.Item) error {
	validate := validator.New(validator.WithRequiredStructEnabled())
	for i := range items {
		if err := validate.Struct(items[i]); err != nil {
			return fmt.Errorf("invalid item record %d (%q): %w", i, items[i].Name, err)
		}
	}

	r.items = make([]schema.Item, len(items))
	copy(r.items, items)
	r.byID = make(map[int]int, len(items))
	r.byName = make(map[string]int, len(items))
	r.byDisplay = make(map[string]int, len(items))

	for i, item := range r.items {
		if _, exists := r.byID[item.ID]; !exists {
			r.byID[item.ID] = i
		}
		if _, exists := r.byName[item.Name]; !exists {
			r.byName[item.Name] = i
		}
		if _, exists := r.byDisplay[item.DisplayName]; !exists {
			r.byDisplay[item.DisplayName] = i
		}
	}
	r.loaded.Store(true)

	r.logger.Info("item registry loaded",
		zap.Int("records", len(r.items)),
		zap.Int("distinct_ids", len(r.byID)),
	)
	return nil
}

// Loaded reports whether Load has completed successfully.
func (r *Registry) Loaded() bool {
	return r != nil && r.loaded.Load()
}

// ByName returns the first item with the given name, adding the minecraft:
// namespace if the query has none. It returns nil when no item matches.
func (r *Registry) ByName(name string) *schema.Item {
	if !strings.HasPrefix(name, Namespace) {
		name = Namespace + name
	}
	return r.lookup(r.byName, name)
}

// ByDisplayName returns the first item whose display name matches exactly.
func (r *Registry) ByDisplayName(displayName string) *schema.Item {
	return r.lookup(r.byDisplay, displayName)
}

// ByID returns the first item with the given numeric id.
func (r *Registry) ByID(id int) *schema.Item {
	if r == nil {
		return nil
	}
	i, ok := r.byID[id]
	if !ok {
		return nil
	}
	item := r.items[i]
	return &item
}

func (r *Registry) lookup(index map[string]int, key string) *schema.Item {
	if r == nil {
		return nil
	}
	i, ok := index[key]
	if !ok {
		return nil
	}
	// Hand out a copy so callers can never mutate the dataset.
	item := r.items[i]
	return &item
}

// Len returns the number of loaded records.
func (r *Registry) Len() int {
	return len(r.items)
}

// Items returns a copy of all records in load order.
func (r *Registry) Items() []schema.Item {
	out := make([]schema.Item, len(r.items))
	copy(out, r.items)
	return out
}
