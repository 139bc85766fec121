package resumes

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo is an in-memory implementation of Repo used when no database
// is configured.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string]map[string]Resume // userId -> id -> resume
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		data: make(map[string]map[string]Resume),
	}
}

// Create stores a new resume.
func (r *MemoryRepo) Create(ctx context.Context, res Resume) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	byID, ok := r.data[res.UserID]
	if !ok {
		byID = make(map[string]Resume)
		r.data[res.UserID] = byID
	}
	byID[res.ID] = cloneResume(res)
	return nil
}

// Update replaces a stored resume; the work experience and education lists
// are replaced wholesale like the Postgres implementation does.
func (r *MemoryRepo) Update(ctx context.Context, res Resume) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	byID := r.data[res.UserID]
	if _, ok := byID[res.ID]; !ok {
		return ErrNotFound
	}
	byID[res.ID] = cloneResume(res)
	return nil
}

// GetByID returns a resume owned by the user.
func (r *MemoryRepo) GetByID(ctx context.Context, userId, id string) (Resume, error) {
	if err := ctx.Err(); err != nil {
		return Resume{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	res, ok := r.data[userId][id]
	if !ok {
		return Resume{}, ErrNotFound
	}
	return cloneResume(res), nil
}

// ListByUser returns the user's resumes, most recently updated first.
func (r *MemoryRepo) ListByUser(ctx context.Context, userId string) ([]Resume, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Resume, 0, len(r.data[userId]))
	for _, res := range r.data[userId] {
		out = append(out, cloneResume(res))
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	return out, nil
}

// Delete removes a resume owned by the user.
func (r *MemoryRepo) Delete(ctx context.Context, userId, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	byID := r.data[userId]
	if _, ok := byID[id]; !ok {
		return ErrNotFound
	}
	delete(byID, id)
	return nil
}

func cloneResume(res Resume) Resume {
	out := res
	if res.WorkExperiences != nil {
		out.WorkExperiences = append([]WorkExperience(nil), res.WorkExperiences...)
	}
	if res.Educations != nil {
		out.Educations = append([]Education(nil), res.Educations...)
	}
	if res.Skills != nil {
		out.Skills = append([]string(nil), res.Skills...)
	}
	return out
}

var _ Repo = (*MemoryRepo)(nil)
