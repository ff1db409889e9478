// Package draft is the durable staging area for in-progress wizard flows.
// One wizard session owns one slot; the value round-trips through JSON, so
// only serializable draft fields belong here (attachment bytes never do).
package draft

import (
	"context"
	"encoding/json"
	"reflect"
	"sync"
)

// Store is the single-slot key/value contract the wizard controller depends
// on. Load tolerates a missing or corrupt entry by leaving dest untouched and
// returning nil: the controller treats the zero draft as "nothing staged" and
// decides corruption from its own required fields.
type Store interface {
	Save(ctx context.Context, key string, value any) error
	Load(ctx context.Context, key string, dest any) error
	Clear(ctx context.Context, key string) error
}

// Memory is a process-local Store for tests and single-instance development.
type Memory struct {
	mu      sync.RWMutex
	entries map[string][]byte
}

func NewMemory() *Memory {
	return &Memory{entries: make(map[string][]byte)}
}

func (m *Memory) Save(_ context.Context, key string, value any) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.entries[key] = b
	m.mu.Unlock()
	return nil
}

func (m *Memory) Load(_ context.Context, key string, dest any) error {
	m.mu.RLock()
	b, ok := m.entries[key]
	m.mu.RUnlock()
	if !ok {
		return nil
	}
	decode(b, dest)
	return nil
}

// decode fills dest only when the entire entry parses. json.Unmarshal keeps
// the fields it decoded before hitting a type error, so unmarshalling
// straight into dest would leave a half-populated value behind; a corrupt
// entry must read as empty instead.
func decode(b []byte, dest any) {
	rv := reflect.ValueOf(dest)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return
	}
	tmp := reflect.New(rv.Elem().Type())
	if err := json.Unmarshal(b, tmp.Interface()); err != nil {
		return
	}
	rv.Elem().Set(tmp.Elem())
}

func (m *Memory) Clear(_ context.Context, key string) error {
	m.mu.Lock()
	delete(m.entries, key)
	m.mu.Unlock()
	return nil
}

// Put stores raw bytes under key, bypassing JSON encoding. Test helper for
// simulating corrupt entries.
func (m *Memory) Put(key string, raw []byte) {
	m.mu.Lock()
	m.entries[key] = raw
	m.mu.Unlock()
}
