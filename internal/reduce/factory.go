package reduce

import (
	"sort"

	apperrors "github.com/agbru/parsum/internal/errors"
)

// Factory holds the registered reduction strategies and hands them out by
// name. It is populated once during construction and read-only afterwards,
// so it is safe for concurrent use.
type Factory struct {
	reducers map[string]Reducer
}

// NewDefaultFactory creates a factory with all built-in strategies
// registered.
func NewDefaultFactory() *Factory {
	f := &Factory{reducers: make(map[string]Reducer)}
	f.Register(ChunkedReducer{})
	f.Register(StridedReducer{})
	f.Register(SequentialReducer{})
	return f
}

// Register adds a strategy under its own name, replacing any previous
// registration.
func (f *Factory) Register(r Reducer) {
	f.reducers[r.Name()] = r
}

// Get returns the strategy registered under name.
//
// Returns:
//   - Reducer: The registered strategy.
//   - error: A ConfigError if no strategy has that name.
func (f *Factory) Get(name string) (Reducer, error) {
	r, ok := f.reducers[name]
	if !ok {
		return nil, apperrors.NewConfigError("unknown strategy %q (available: %v)", name, f.List())
	}
	return r, nil
}

// List returns the registered strategy names in sorted order for
// consistent, reproducible behavior.
func (f *Factory) List() []string {
	names := make([]string, 0, len(f.reducers))
	for name := range f.reducers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetAll returns every registered strategy, sorted by name.
func (f *Factory) GetAll() []Reducer {
	names := f.List()
	all := make([]Reducer, 0, len(names))
	for _, name := range names {
		all = append(all, f.reducers[name])
	}
	return all
}
