package applications

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"resume-studio/internal/shared/auth"
)

type MemoryRepo struct {
	mu   sync.RWMutex
	apps map[string]JobApplication
}

var _ Repo = (*MemoryRepo)(nil)

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{apps: make(map[string]JobApplication)}
}

func (r *MemoryRepo) Create(ctx context.Context, app JobApplication) (JobApplication, error) {
	if err := ctx.Err(); err != nil {
		return JobApplication{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.apps[app.ID] = app
	return app, nil
}

func (r *MemoryRepo) Get(ctx context.Context, p auth.Principal, id string) (JobApplication, error) {
	if err := ctx.Err(); err != nil {
		return JobApplication{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	app, ok := r.apps[id]
	if !ok || !visible(p, app) {
		return JobApplication{}, ErrNotFound
	}
	return app, nil
}

func (r *MemoryRepo) List(ctx context.Context, p auth.Principal, f Filter) ([]JobApplication, error) {
	f.Normalize()
	matched, err := r.match(ctx, p, f)
	if err != nil {
		return nil, err
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].CreatedAt.After(matched[j].CreatedAt) })
	if f.Offset >= len(matched) {
		return []JobApplication{}, nil
	}
	end := f.Offset + f.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[f.Offset:end], nil
}

func (r *MemoryRepo) Count(ctx context.Context, p auth.Principal, f Filter) (int, error) {
	matched, err := r.match(ctx, p, f)
	return len(matched), err
}

func (r *MemoryRepo) Transition(ctx context.Context, id string, to Status, at time.Time) (JobApplication, error) {
	if err := ctx.Err(); err != nil {
		return JobApplication{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	app, ok := r.apps[id]
	if !ok {
		return JobApplication{}, ErrNotFound
	}
	if app.Status != StatusActive {
		return JobApplication{}, ErrInvalidTransition
	}
	switch to {
	case StatusRejected:
		app.RejectedAt = &at
	case StatusWithdrawn:
		app.WithdrawnAt = &at
	default:
		return JobApplication{}, ErrInvalidTransition
	}
	app.Status = to
	r.apps[id] = app
	return app, nil
}

func (r *MemoryRepo) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.apps[id]; !ok {
		return ErrNotFound
	}
	delete(r.apps, id)
	return nil
}

func (r *MemoryRepo) match(ctx context.Context, p auth.Principal, f Filter) ([]JobApplication, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	search := strings.ToLower(strings.TrimSpace(f.Search))
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []JobApplication{}
	for _, app := range r.apps {
		if !visible(p, app) {
			continue
		}
		if f.ProfileID != "" && app.ProfileID != f.ProfileID {
			continue
		}
		if f.Status != "" && app.Status != f.Status {
			continue
		}
		if f.From != nil && app.CreatedAt.Before(*f.From) {
			continue
		}
		if f.To != nil && !app.CreatedAt.Before(*f.To) {
			continue
		}
		if search != "" && !containsFold(search, app.JobTitle, app.CompanyName, app.JobDescription) {
			continue
		}
		out = append(out, app)
	}
	return out, nil
}

func visible(p auth.Principal, app JobApplication) bool {
	switch p.Role {
	case auth.RoleAdmin:
		return true
	case auth.RoleManager:
		return app.ProfileOwnerID == p.UserID
	case auth.RoleBidder:
		return app.UserID == p.UserID
	default:
		return false
	}
}

func containsFold(needle string, haystacks ...string) bool {
	for _, h := range haystacks {
		if strings.Contains(strings.ToLower(h), needle) {
			return true
		}
	}
	return false
}
