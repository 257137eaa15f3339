package carrier

import (
	"fmt"
	"sync"
)

// Registry manages registered carriers. One registry is created per process
// and passed to the rate service explicitly; there is no package-level state.
type Registry struct {
	carriers map[CarrierCode]Carrier
	mu       sync.RWMutex
}

// NewRegistry creates a new carrier registry.
func NewRegistry() *Registry {
	return &Registry{
		carriers: make(map[CarrierCode]Carrier),
	}
}

// Register adds a carrier to the registry. Registering the same carrier
// code again overwrites the previous entry.
func (r *Registry) Register(c Carrier) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.carriers[c.Code()] = c
}

// Get returns a carrier by code.
func (r *Registry) Get(code CarrierCode) (Carrier, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if c, ok := r.carriers[code]; ok {
		return c, nil
	}
	return nil, NewCarrierError(ErrCodeCarrierNotFound,
		fmt.Sprintf("no carrier registered for code: %s", code))
}

// All returns all registered carriers in no particular order.
func (r *Registry) All() []Carrier {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make([]Carrier, 0, len(r.carriers))
	for _, c := range r.carriers {
		result = append(result, c)
	}
	return result
}

// Codes returns the codes of all registered carriers.
func (r *Registry) Codes() []CarrierCode {
	r.mu.RLock()
	defer r.mu.RUnlock()
	codes := make([]CarrierCode, 0, len(r.carriers))
	for code := range r.carriers {
		codes = append(codes, code)
	}
	return codes
}

// Count returns the number of registered carriers.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.carriers)
}
