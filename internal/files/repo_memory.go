package files

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"
)

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string]File // id -> file
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		data: make(map[string]File),
	}
}

// Create stores a new file, enforcing unique ids and filenames.
func (r *MemoryRepo) Create(ctx context.Context, f File) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.data[f.ID]; ok {
		return fmt.Errorf("%w: file id already exists", ErrInvalidInput)
	}
	if r.filenameTakenLocked(f.Filename, "") {
		return fmt.Errorf("%w: filename already exists", ErrInvalidInput)
	}
	r.data[f.ID] = cloneFile(f, true)
	return nil
}

// GetByID returns a file by id.
func (r *MemoryRepo) GetByID(ctx context.Context, id string, withData bool) (File, error) {
	if err := ctx.Err(); err != nil {
		return File{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.data[id]
	if !ok {
		return File{}, ErrNotFound
	}
	return cloneFile(f, withData), nil
}

// List returns files matching filter, newest first, honoring limit/offset.
func (r *MemoryRepo) List(ctx context.Context, filter ListFilter) ([]File, int, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}

	search := strings.ToLower(filter.Search)

	r.mu.RLock()
	matched := make([]File, 0, len(r.data))
	for _, f := range r.data {
		if filter.MimeType != "" && f.MimeType != filter.MimeType {
			continue
		}
		if filter.UploadedByID != "" && (f.UploadedByID == nil || *f.UploadedByID != filter.UploadedByID) {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(f.Filename), search) &&
			!strings.Contains(strings.ToLower(f.OriginalName), search) {
			continue
		}
		matched = append(matched, cloneFile(f, false))
	}
	r.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return matched[i].ID > matched[j].ID
	})

	total := len(matched)
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}
	if offset >= total {
		return []File{}, total, nil
	}
	end := total
	if filter.Limit > 0 && offset+filter.Limit < end {
		end = offset + filter.Limit
	}
	return matched[offset:end], total, nil
}

// Update applies a metadata patch and returns the updated metadata.
func (r *MemoryRepo) Update(ctx context.Context, id string, patch UpdateInput, updatedAt time.Time) (File, error) {
	if err := ctx.Err(); err != nil {
		return File{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	f, ok := r.data[id]
	if !ok {
		return File{}, ErrNotFound
	}
	if patch.Filename != nil {
		if r.filenameTakenLocked(*patch.Filename, id) {
			return File{}, fmt.Errorf("%w: filename already exists", ErrInvalidInput)
		}
		f.Filename = *patch.Filename
	}
	if patch.OriginalName != nil {
		f.OriginalName = *patch.OriginalName
	}
	f.UpdatedAt = updatedAt
	r.data[id] = f
	return cloneFile(f, false), nil
}

// Delete removes a file.
func (r *MemoryRepo) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.data[id]; !ok {
		return ErrNotFound
	}
	delete(r.data, id)
	return nil
}

func (r *MemoryRepo) filenameTakenLocked(filename, exceptID string) bool {
	for id, f := range r.data {
		if id != exceptID && f.Filename == filename {
			return true
		}
	}
	return false
}

func cloneFile(f File, withData bool) File {
	out := f
	if f.UploadedByID != nil {
		id := *f.UploadedByID
		out.UploadedByID = &id
	}
	if withData && f.Data != nil {
		out.Data = append([]byte(nil), f.Data...)
	} else {
		out.Data = nil
	}
	return out
}

var _ Repo = (*MemoryRepo)(nil)
