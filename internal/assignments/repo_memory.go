package assignments

import (
	"context"
	"sort"
	"sync"
	"time"
)

type MemoryRepo struct {
	mu    sync.RWMutex
	items map[string]Assignment
}

var _ Repo = (*MemoryRepo)(nil)

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{items: make(map[string]Assignment)}
}

func (r *MemoryRepo) Create(ctx context.Context, a Assignment) (Assignment, error) {
	if err := ctx.Err(); err != nil {
		return Assignment{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.items {
		if existing.ProfileID == a.ProfileID && existing.BidderID == a.BidderID {
			return Assignment{}, ErrConflict
		}
	}
	a.CreatedAt = time.Now().UTC()
	r.items[a.ID] = a
	return a, nil
}

func (r *MemoryRepo) Get(ctx context.Context, id string) (Assignment, error) {
	if err := ctx.Err(); err != nil {
		return Assignment{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.items[id]
	if !ok {
		return Assignment{}, ErrNotFound
	}
	return a, nil
}

func (r *MemoryRepo) ListByProfile(ctx context.Context, profileID string) ([]Assignment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []Assignment{}
	for _, a := range r.items {
		if a.ProfileID == profileID {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *MemoryRepo) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return ErrNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *MemoryRepo) ProfileIDsForBidder(ctx context.Context, bidderID string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	var ids []string
	for _, a := range r.items {
		if a.BidderID == bidderID {
			ids = append(ids, a.ProfileID)
		}
	}
	sort.Strings(ids)
	return ids, nil
}
