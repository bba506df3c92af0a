package files

import "time"

// File is a stored upload: metadata plus, when loaded, the raw payload.
type File struct {
	ID           string
	Filename     string
	OriginalName string
	MimeType     string
	Size         int64
	Data         []byte
	UploadedByID *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// CreateInput carries an upload into Service.Create.
type CreateInput struct {
	OriginalName string
	MimeType     string
	UploadedByID *string
	Data         []byte
}

// UpdateInput is a metadata patch. Nil fields are left unchanged.
type UpdateInput struct {
	Filename     *string
	OriginalName *string
}

// IsEmpty reports whether the patch changes nothing.
func (u UpdateInput) IsEmpty() bool {
	return u.Filename == nil && u.OriginalName == nil
}

// ListQuery is the caller-facing list request; zero Page/Limit mean defaults.
type ListQuery struct {
	Page         int
	Limit        int
	MimeType     string
	UploadedByID string
	Search       string
}

// ListFilter is what repositories execute: filters plus offset/limit.
type ListFilter struct {
	MimeType     string
	UploadedByID string
	Search       string
	Limit        int
	Offset       int
}

// ListResult is one page of metadata.
type ListResult struct {
	Files []File
	Total int
	Page  int
	Limit int
}
