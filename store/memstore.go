package store

import (
	"fmt"
	"sync"

	"github.com/bitfsorg/reflink-go/address"
)

// MemStore is an in-memory Store for testing. Update stages writes and
// applies them only when the callback succeeds.
type MemStore struct {
	mu     sync.RWMutex
	data   map[address.Address][]byte
	closed bool
}

// Compile-time interface check.
var _ Store = (*MemStore)(nil)

// NewMemStore creates an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{data: make(map[address.Address][]byte)}
}

// Update runs fn with exclusive access; staged writes commit on success.
func (s *MemStore) Update(fn func(Tx) error) error {
	if fn == nil {
		return fmt.Errorf("%w: update func", ErrNilParam)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}

	tx := &memTx{base: s.data, staged: make(map[address.Address][]byte), writable: true}
	if err := fn(tx); err != nil {
		return err
	}
	for k, v := range tx.staged {
		s.data[k] = v
	}
	return nil
}

// View runs fn with shared access.
func (s *MemStore) View(fn func(Tx) error) error {
	if fn == nil {
		return fmt.Errorf("%w: view func", ErrNilParam)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return ErrClosed
	}
	return fn(&memTx{base: s.data})
}

// Len returns the number of stored keys.
func (s *MemStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}

// Close marks the store closed.
func (s *MemStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

type memTx struct {
	base     map[address.Address][]byte
	staged   map[address.Address][]byte
	writable bool
}

func (t *memTx) lookup(addr address.Address) ([]byte, bool) {
	if v, ok := t.staged[addr]; ok {
		return v, true
	}
	v, ok := t.base[addr]
	return v, ok
}

func (t *memTx) Get(addr address.Address) ([]byte, error) {
	v, ok := t.lookup(addr)
	if !ok {
		return nil, ErrKeyNotFound
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, nil
}

func (t *memTx) Has(addr address.Address) (bool, error) {
	_, ok := t.lookup(addr)
	return ok, nil
}

func (t *memTx) Put(addr address.Address, value []byte) error {
	if !t.writable {
		return ErrReadOnly
	}
	if len(value) == 0 {
		return fmt.Errorf("%w: value", ErrNilParam)
	}
	v := make([]byte, len(value))
	copy(v, value)
	t.staged[addr] = v
	return nil
}
