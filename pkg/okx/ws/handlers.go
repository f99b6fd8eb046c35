package ws

import (
	"encoding/json"
	"sync"
)

// Handler processes one channel's raw push payload.
type Handler func(push Push)

// handlerRegistry is a copy-on-write map from Arg scope key to Handler: the
// map is swapped wholesale on register/unregister. dispatch holds the read
// lock only while fetching the handler, so a register can wait for that
// lookup but never for a running handler.
// Keys come from Arg.scopeKey, so a push whose arg carries server-populated
// fields still reaches the handler registered by the subscribe arg.
type handlerRegistry struct {
	mu       sync.RWMutex
	handlers map[string]Handler
}

func newHandlerRegistry() *handlerRegistry {
	return &handlerRegistry{handlers: make(map[string]Handler)}
}

// register installs h for arg. Registering over an id that is already
// present is a programming error and panics rather than silently
// overwriting.
func (r *handlerRegistry) register(arg Arg, h Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.handlers[arg.scopeKey()]; exists {
		panic("ws: repeated handler register: " + arg.scopeKey())
	}
	cloned := make(map[string]Handler, len(r.handlers)+1)
	for k, v := range r.handlers {
		cloned[k] = v
	}
	cloned[arg.scopeKey()] = h
	r.handlers = cloned
}

func (r *handlerRegistry) unregister(arg Arg) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.handlers[arg.scopeKey()]; !ok {
		return
	}
	cloned := make(map[string]Handler, len(r.handlers))
	for k, v := range r.handlers {
		if k != arg.scopeKey() {
			cloned[k] = v
		}
	}
	r.handlers = cloned
}

func (r *handlerRegistry) dispatch(push Push) bool {
	r.mu.RLock()
	h, ok := r.handlers[push.Arg.scopeKey()]
	r.mu.RUnlock()
	if !ok {
		return false
	}
	h(push)
	return true
}

// unmarshalInto is a small helper used by channel-specific subscribe
// wrappers to decode a Push's raw data array into a typed slice.
func unmarshalInto[T any](push Push) ([]T, error) {
	var out []T
	if len(push.Data) == 0 {
		return out, nil
	}
	if err := json.Unmarshal(push.Data, &out); err != nil {
		return nil, err
	}
	return out, nil
}
