package snapshot

import (
	"context"
	"sync"
)

// MemoryBackend holds the blob in process memory. Used when running
// without external storage and by tests.
type MemoryBackend struct {
	mu   sync.Mutex
	blob []byte
}

// NewMemoryBackend creates an empty in-memory backend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{}
}

func (b *MemoryBackend) Save(_ context.Context, blob []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.blob = append([]byte(nil), blob...)
	return nil
}

func (b *MemoryBackend) Load(_ context.Context) ([]byte, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.blob == nil {
		return nil, nil
	}
	return append([]byte(nil), b.blob...), nil
}

func (b *MemoryBackend) Close() error {
	return nil
}
