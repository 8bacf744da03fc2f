package engine

import (
	"sync"
	"sync/atomic"
)

// Engines bundles the shared parser/reducer pair. Immutable once built.
type Engines struct {
	Parser  Parser
	Reducer Reducer
}

// Factory constructs an engine pair. Called at most once per registry
// generation (between Release calls).
type Factory func() (Parser, Reducer, error)

// Registry hands out one shared parser/reducer pair, built lazily on the
// first Acquire. Steady-state reads take no lock: the engines pointer is
// published atomically and the pair is immutable once constructed.
type Registry struct {
	factory Factory

	mu      sync.Mutex
	engines atomic.Pointer[Engines]
}

// NewRegistry creates a registry that builds its engines with factory.
func NewRegistry(factory Factory) *Registry {
	return &Registry{factory: factory}
}

// Acquire returns the shared engines, constructing them on first use.
// Construction errors are returned as-is and leave the registry empty,
// so a later Acquire retries.
func (r *Registry) Acquire() (Parser, Reducer, error) {
	if e := r.engines.Load(); e != nil {
		return e.Parser, e.Reducer, nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if e := r.engines.Load(); e != nil {
		return e.Parser, e.Reducer, nil
	}
	p, red, err := r.factory()
	if err != nil {
		return nil, nil, err
	}
	e := &Engines{Parser: p, Reducer: red}
	r.engines.Store(e)
	return e.Parser, e.Reducer, nil
}

// Release discards the shared engines. The next Acquire reconstructs
// them from scratch. Safe to call repeatedly, including when no engines
// are held. Engine references already handed out stay valid; they are
// simply no longer shared.
func (r *Registry) Release() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.engines.Store(nil)
}
