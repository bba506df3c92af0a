package files

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"files-backend/internal/shared/metrics"
	"files-backend/internal/shared/util"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100

	maxNameLength   = 255
	defaultMimeType = "application/octet-stream"
)

// Service contains business logic for stored files.
type Service struct {
	Repo Repo
	Now  func() time.Time
}

// NewService constructs a Service backed by repo.
func NewService(repo Repo) *Service {
	return &Service{Repo: repo}
}

// now is truncated to the store's timestamp precision so responses match later reads.
func (s *Service) now() time.Time {
	t := time.Now()
	if s.Now != nil {
		t = s.Now()
	}
	return t.UTC().Truncate(time.Microsecond)
}

// Create stores a new file and returns its metadata without the payload.
func (s *Service) Create(ctx context.Context, in CreateInput) (File, error) {
	originalName := strings.TrimSpace(in.OriginalName)
	if originalName == "" {
		return File{}, fmt.Errorf("%w: original name is required", ErrInvalidInput)
	}
	uploadedBy, err := normalizeUploader(in.UploadedByID)
	if err != nil {
		return File{}, err
	}

	mimeType := strings.TrimSpace(in.MimeType)
	if mimeType == "" {
		mimeType = defaultMimeType
	}

	data := in.Data
	if data == nil {
		data = []byte{}
	}

	now := s.now()
	f := File{
		ID:           uuid.NewString(),
		Filename:     uuid.NewString() + filepath.Ext(originalName),
		OriginalName: originalName,
		MimeType:     mimeType,
		Size:         int64(len(data)),
		Data:         data,
		UploadedByID: uploadedBy,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.Repo.Create(ctx, f); err != nil {
		return File{}, err
	}
	metrics.ObserveUpload(f.Size)

	f.Data = nil
	return f, nil
}

// List returns a page of metadata matching the query, newest first.
func (s *Service) List(ctx context.Context, q ListQuery) (ListResult, error) {
	page, limit, err := normalizePaging(q.Page, q.Limit)
	if err != nil {
		return ListResult{}, err
	}
	if q.UploadedByID != "" {
		if _, err := uuid.Parse(q.UploadedByID); err != nil {
			return ListResult{}, fmt.Errorf("%w: uploadedById must be a UUID", ErrInvalidInput)
		}
	}

	files, total, err := s.Repo.List(ctx, ListFilter{
		MimeType:     q.MimeType,
		UploadedByID: q.UploadedByID,
		Search:       q.Search,
		Limit:        limit,
		Offset:       (page - 1) * limit,
	})
	if err != nil {
		return ListResult{}, err
	}
	return ListResult{Files: files, Total: total, Page: page, Limit: limit}, nil
}

// ListByUploader is List restricted to files uploaded by uploaderID.
func (s *Service) ListByUploader(ctx context.Context, uploaderID string, q ListQuery) (ListResult, error) {
	if _, err := uuid.Parse(uploaderID); err != nil {
		return ListResult{}, fmt.Errorf("%w: userId must be a UUID", ErrInvalidInput)
	}
	q.UploadedByID = uploaderID
	return s.List(ctx, q)
}

// GetMetadata returns a file's metadata without the payload.
func (s *Service) GetMetadata(ctx context.Context, id string) (File, error) {
	if err := validateID(id); err != nil {
		return File{}, err
	}
	return s.Repo.GetByID(ctx, id, false)
}

// GetWithPayload returns a file's metadata and bytes.
func (s *Service) GetWithPayload(ctx context.Context, id string) (File, error) {
	if err := validateID(id); err != nil {
		return File{}, err
	}
	return s.Repo.GetByID(ctx, id, true)
}

// Update changes filename and/or originalName. Everything else is immutable.
func (s *Service) Update(ctx context.Context, id string, patch UpdateInput) (File, error) {
	if err := validateID(id); err != nil {
		return File{}, err
	}
	if patch.Filename != nil {
		if err := validateName("filename", *patch.Filename); err != nil {
			return File{}, err
		}
	}
	if patch.OriginalName != nil {
		if err := validateDisplayName("originalName", *patch.OriginalName); err != nil {
			return File{}, err
		}
	}
	if patch.IsEmpty() {
		return s.Repo.GetByID(ctx, id, false)
	}
	return s.Repo.Update(ctx, id, patch, s.now())
}

// Remove hard-deletes a file.
func (s *Service) Remove(ctx context.Context, id string) error {
	if err := validateID(id); err != nil {
		return err
	}
	if err := s.Repo.Delete(ctx, id); err != nil {
		return err
	}
	metrics.IncDeleted()
	return nil
}

func normalizePaging(page, limit int) (int, int, error) {
	if page == 0 {
		page = DefaultPage
	}
	if limit == 0 {
		limit = DefaultLimit
	}
	if page < 1 {
		return 0, 0, fmt.Errorf("%w: page must not be less than 1", ErrInvalidInput)
	}
	if limit < 1 || limit > MaxLimit {
		return 0, 0, fmt.Errorf("%w: limit must be between 1 and %d", ErrInvalidInput, MaxLimit)
	}
	return page, limit, nil
}

func normalizeUploader(id *string) (*string, error) {
	if id == nil {
		return nil, nil
	}
	trimmed := strings.TrimSpace(*id)
	if trimmed == "" {
		return nil, nil
	}
	if _, err := uuid.Parse(trimmed); err != nil {
		return nil, fmt.Errorf("%w: uploadedById must be a UUID", ErrInvalidInput)
	}
	return &trimmed, nil
}

func validateID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%w: id must be a UUID", ErrInvalidInput)
	}
	return nil
}

func validateDisplayName(field, name string) error {
	if n := utf8.RuneCountInString(name); n == 0 || n > maxNameLength {
		return fmt.Errorf("%w: %s must be between 1 and %d characters", ErrInvalidInput, field, maxNameLength)
	}
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: %s must not be blank", ErrInvalidInput, field)
	}
	return nil
}

// validateName also applies the stored-name rules: no separators, no traversal.
func validateName(field, name string) error {
	if err := validateDisplayName(field, name); err != nil {
		return err
	}
	if err := util.ValidateStoredName(name); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidInput, field, err)
	}
	return nil
}
