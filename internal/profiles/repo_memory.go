package profiles

import (
	"context"
	"sort"
	"sync"
	"time"

	"resume-studio/internal/shared/auth"
	"resume-studio/resume/model"
)

type MemoryRepo struct {
	mu       sync.RWMutex
	profiles map[string]model.Profile

	// Assignments resolves bidder visibility. Nil means bidders see nothing.
	Assignments AssignmentLookup
}

var _ Repo = (*MemoryRepo)(nil)

func NewMemoryRepo(assignments AssignmentLookup) *MemoryRepo {
	return &MemoryRepo{profiles: make(map[string]model.Profile), Assignments: assignments}
}

func (r *MemoryRepo) List(ctx context.Context, p auth.Principal) ([]model.Profile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	visible, err := r.visibility(ctx, p)
	if err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []model.Profile{}
	for _, profile := range r.profiles {
		if visible(profile) {
			out = append(out, profile)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UpdatedAt.After(out[j].UpdatedAt) })
	return out, nil
}

func (r *MemoryRepo) Get(ctx context.Context, p auth.Principal, id string) (model.Profile, error) {
	if err := ctx.Err(); err != nil {
		return model.Profile{}, err
	}
	visible, err := r.visibility(ctx, p)
	if err != nil {
		return model.Profile{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	profile, ok := r.profiles[id]
	if !ok || !visible(profile) {
		return model.Profile{}, ErrNotFound
	}
	return profile, nil
}

func (r *MemoryRepo) Save(ctx context.Context, profile model.Profile) (model.Profile, error) {
	if err := ctx.Err(); err != nil {
		return model.Profile{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now().UTC()
	if existing, ok := r.profiles[profile.ID]; ok {
		profile.CreatedAt = existing.CreatedAt
		profile.OwnerID = existing.OwnerID
	} else {
		profile.CreatedAt = now
	}
	profile.UpdatedAt = now
	r.profiles[profile.ID] = profile
	return profile, nil
}

func (r *MemoryRepo) Delete(ctx context.Context, id string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.profiles[id]; !ok {
		return nil, ErrNotFound
	}
	delete(r.profiles, id)
	return nil, nil
}

func (r *MemoryRepo) visibility(ctx context.Context, p auth.Principal) (func(model.Profile) bool, error) {
	switch p.Role {
	case auth.RoleAdmin:
		return func(model.Profile) bool { return true }, nil
	case auth.RoleManager:
		return func(profile model.Profile) bool { return profile.OwnerID == p.UserID }, nil
	case auth.RoleBidder:
		if r.Assignments == nil {
			return func(model.Profile) bool { return false }, nil
		}
		ids, err := r.Assignments.ProfileIDsForBidder(ctx, p.UserID)
		if err != nil {
			return nil, err
		}
		assigned := make(map[string]struct{}, len(ids))
		for _, id := range ids {
			assigned[id] = struct{}{}
		}
		return func(profile model.Profile) bool {
			_, ok := assigned[profile.ID]
			return ok
		}, nil
	default:
		return func(model.Profile) bool { return false }, nil
	}
}
