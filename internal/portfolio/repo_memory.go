package portfolio

import (
	"context"
	"sync"
)

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[Lang][]byte
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{data: make(map[Lang][]byte)}
}

// Load returns the stored override bytes for a language.
func (r *MemoryRepo) Load(ctx context.Context, lang Lang) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	raw, ok := r.data[lang]
	if !ok {
		return nil, false, nil
	}
	out := make([]byte, len(raw))
	copy(out, raw)
	return out, true, nil
}

// Save replaces the override bytes for a language.
func (r *MemoryRepo) Save(ctx context.Context, lang Lang, raw []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	stored := make([]byte, len(raw))
	copy(stored, raw)
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[lang] = stored
	return nil
}

// Delete removes the override for a language.
func (r *MemoryRepo) Delete(ctx context.Context, lang Lang) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.data, lang)
	return nil
}
