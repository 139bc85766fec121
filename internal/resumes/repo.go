package resumes

import "context"

// Repo defines persistence operations for resumes. Every operation is scoped
// to the owning user; ids belonging to someone else behave as not found.
type Repo interface {
	Create(ctx context.Context, r Resume) error
	Update(ctx context.Context, r Resume) error
	GetByID(ctx context.Context, userId, id string) (Resume, error)
	ListByUser(ctx context.Context, userId string) ([]Resume, error)
	Delete(ctx context.Context, userId, id string) error
}
