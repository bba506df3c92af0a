package files

import (
	"context"
	"time"
)

// Repo defines persistence operations for files.
type Repo interface {
	Create(ctx context.Context, f File) error
	// GetByID loads one file; the payload is only read when withData is set.
	GetByID(ctx context.Context, id string, withData bool) (File, error)
	// List returns one page ordered newest first, plus the total match count.
	List(ctx context.Context, filter ListFilter) ([]File, int, error)
	Update(ctx context.Context, id string, patch UpdateInput, updatedAt time.Time) (File, error)
	Delete(ctx context.Context, id string) error
}
