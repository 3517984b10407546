package jobs

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"sync"
)

// MemoryRepo keeps postings in memory. It backs dev mode and tests.
type MemoryRepo struct {
	mu   sync.RWMutex
	jobs map[string]Posting
}

// NewMemoryRepo constructs a MemoryRepo holding the given postings.
func NewMemoryRepo(postings ...Posting) *MemoryRepo {
	r := &MemoryRepo{jobs: make(map[string]Posting, len(postings))}
	for _, p := range postings {
		r.jobs[p.ID] = p
	}
	return r
}

// LoadSeedFile reads a JSON array of postings. Invalid postings are rejected.
func LoadSeedFile(path string) ([]Posting, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read job seed file: %w", err)
	}
	var postings []Posting
	if err := json.Unmarshal(data, &postings); err != nil {
		return nil, fmt.Errorf("decode job seed file: %w", err)
	}
	for _, p := range postings {
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("job seed %q: %w", p.ID, err)
		}
	}
	return postings, nil
}

// Put inserts or replaces a posting. Used by seeding and tests.
func (r *MemoryRepo) Put(p Posting) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.jobs[p.ID] = p
}

func (r *MemoryRepo) List(ctx context.Context) ([]Posting, error) {
	return r.filter(func(Posting) bool { return true }), nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, id string) (Posting, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.jobs[id]
	if !ok {
		return Posting{}, ErrNotFound
	}
	return p, nil
}

func (r *MemoryRepo) ListByHRCode(ctx context.Context, hrCode string) ([]Posting, error) {
	return r.filter(func(p Posting) bool { return p.HRCode == hrCode }), nil
}

// filter returns matching postings newest first, like the Postgres queries.
func (r *MemoryRepo) filter(keep func(Posting) bool) []Posting {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Posting, 0, len(r.jobs))
	for _, p := range r.jobs {
		if keep(p) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

var _ Repo = (*MemoryRepo)(nil)
