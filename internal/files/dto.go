package files

import (
	"mime/multipart"
	"time"
)

type fileIDParams struct {
	ID string `uri:"id" binding:"required,uuid"`
}

type uploaderParams struct {
	UserID string `uri:"userId" binding:"required,uuid"`
}

type listFilesQuery struct {
	Page         *int   `form:"page" binding:"omitempty,min=1"`
	Limit        *int   `form:"limit" binding:"omitempty,min=1,max=100"`
	MimeType     string `form:"mimetype" binding:"omitempty,max=255"`
	UploadedByID string `form:"uploadedById" binding:"omitempty,uuid"`
	Search       string `form:"search" binding:"omitempty,max=255"`
}

func (q listFilesQuery) toListQuery() ListQuery {
	out := ListQuery{
		MimeType:     q.MimeType,
		UploadedByID: q.UploadedByID,
		Search:       q.Search,
	}
	if q.Page != nil {
		out.Page = *q.Page
	}
	if q.Limit != nil {
		out.Limit = *q.Limit
	}
	return out
}

type uploadFileForm struct {
	File         *multipart.FileHeader `form:"file" binding:"required"`
	UploadedByID string                `form:"uploadedById" binding:"omitempty,uuid"`
}

// updateFileRequest only carries the editable fields; anything else in the body is ignored.
type updateFileRequest struct {
	Filename     *string `json:"filename" binding:"omitempty,min=1,max=255"`
	OriginalName *string `json:"originalName" binding:"omitempty,min=1,max=255"`
}

// FileResponse is the outward-facing metadata of a stored file.
type FileResponse struct {
	ID           string    `json:"id"`
	Filename     string    `json:"filename"`
	OriginalName string    `json:"originalName"`
	MimeType     string    `json:"mimetype"`
	Size         int64     `json:"size"`
	UploadedByID *string   `json:"uploadedById"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// ListResponse is one page of file metadata.
type ListResponse struct {
	Files []FileResponse `json:"files"`
	Total int            `json:"total"`
	Page  int            `json:"page"`
	Limit int            `json:"limit"`
}

func toResponse(f File) FileResponse {
	return FileResponse{
		ID:           f.ID,
		Filename:     f.Filename,
		OriginalName: f.OriginalName,
		MimeType:     f.MimeType,
		Size:         f.Size,
		UploadedByID: f.UploadedByID,
		CreatedAt:    f.CreatedAt,
		UpdatedAt:    f.UpdatedAt,
	}
}

func toListResponse(res ListResult) ListResponse {
	out := ListResponse{
		Files: make([]FileResponse, 0, len(res.Files)),
		Total: res.Total,
		Page:  res.Page,
		Limit: res.Limit,
	}
	for _, f := range res.Files {
		out.Files = append(out.Files, toResponse(f))
	}
	return out
}
