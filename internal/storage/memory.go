package storage

import (
	"context"
	"io"
	"sync"
)

// InMemory keeps uploaded objects in a map. Used by the handler test
// suites in place of a real bucket.
type InMemory struct {
	mu      sync.Mutex
	objects map[string][]byte

	// FailNext makes the next Upload fail with the given error, then resets.
	FailNext error
}

func NewInMemory() *InMemory {
	return &InMemory{objects: map[string][]byte{}}
}

func (m *InMemory) Upload(ctx context.Context, key string, r io.Reader, opts UploadOptions) (string, error) {
	_ = ctx

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FailNext != nil {
		err := m.FailNext
		m.FailNext = nil
		return "", err
	}

	if _, ok := m.objects[key]; ok {
		return "", ErrKeyExists
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	m.objects[key] = data
	return key, nil
}

func (m *InMemory) Delete(ctx context.Context, key string) error {
	_ = ctx

	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.objects, key)
	return nil
}

// Keys returns the stored keys.
func (m *InMemory) Keys() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	keys := make([]string, 0, len(m.objects))
	for k := range m.objects {
		keys = append(keys, k)
	}
	return keys
}

// Object returns the stored bytes for key.
func (m *InMemory) Object(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	data, ok := m.objects[key]
	return data, ok
}
