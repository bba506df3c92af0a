package files

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"files-backend/internal/shared/metrics"
	"files-backend/internal/shared/server/respond"
	"files-backend/internal/shared/util"
)

const (
	defaultMaxUploadBytes = 10 << 20 // 10MB
	defaultPreviewMaxAge  = time.Hour

	// multipartOverhead covers boundaries, part headers and form fields on top of the file itself.
	multipartOverhead = 64 << 10
)

// HandlerOptions tunes upload limits and caching of previews.
type HandlerOptions struct {
	MaxUploadBytes int64
	PreviewMaxAge  time.Duration
}

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc  *Service
	opts HandlerOptions
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service, opts HandlerOptions) *Handler {
	if opts.MaxUploadBytes <= 0 {
		opts.MaxUploadBytes = defaultMaxUploadBytes
	}
	if opts.PreviewMaxAge <= 0 {
		opts.PreviewMaxAge = defaultPreviewMaxAge
	}
	return &Handler{Svc: svc, opts: opts}
}

// RegisterRoutes attaches file routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/files")
	g.POST("/upload", h.upload)
	g.GET("", h.list)
	g.GET("/user/:userId", h.listByUploader)
	g.GET("/:id", h.get)
	g.GET("/:id/download", h.download)
	g.GET("/:id/preview", h.preview)
	g.PATCH("/:id", h.update)
	g.DELETE("/:id", h.remove)
}

func (h *Handler) upload(c *gin.Context) {
	bodyLimit := h.opts.MaxUploadBytes + multipartOverhead
	if c.Request.ContentLength > bodyLimit {
		h.tooLarge(c)
		return
	}
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, bodyLimit)

	var form uploadFileForm
	if err := c.ShouldBindWith(&form, binding.FormMultipart); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			h.tooLarge(c)
			return
		}
		respond.BindError(c, err)
		return
	}
	if form.File.Size > h.opts.MaxUploadBytes {
		h.tooLarge(c)
		return
	}
	originalName, err := util.SanitizeFileName(form.File.Filename)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "file name is required", nil)
		return
	}

	file, err := form.File.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read file", nil)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read file", nil)
		return
	}

	in := CreateInput{
		OriginalName: originalName,
		MimeType:     detectMimeType(form.File.Header.Get("Content-Type"), data),
		Data:         data,
	}
	if form.UploadedByID != "" {
		in.UploadedByID = &form.UploadedByID
	}

	f, err := h.Svc.Create(c.Request.Context(), in)
	if err != nil {
		h.fail(c, err, "upload file")
		return
	}
	c.Set("fileId", f.ID)

	respond.JSON(c, http.StatusCreated, toResponse(f))
}

func (h *Handler) list(c *gin.Context) {
	var q listFilesQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respond.BindError(c, err)
		return
	}

	res, err := h.Svc.List(c.Request.Context(), q.toListQuery())
	if err != nil {
		h.fail(c, err, "list files")
		return
	}
	respond.OK(c, toListResponse(res))
}

func (h *Handler) listByUploader(c *gin.Context) {
	var params uploaderParams
	if err := c.ShouldBindUri(&params); err != nil {
		respond.BindError(c, err)
		return
	}
	var q listFilesQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respond.BindError(c, err)
		return
	}

	res, err := h.Svc.ListByUploader(c.Request.Context(), params.UserID, q.toListQuery())
	if err != nil {
		h.fail(c, err, "list files by uploader")
		return
	}
	respond.OK(c, toListResponse(res))
}

func (h *Handler) get(c *gin.Context) {
	id, ok := bindFileID(c)
	if !ok {
		return
	}

	f, err := h.Svc.GetMetadata(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err, "get file")
		return
	}
	respond.OK(c, toResponse(f))
}

func (h *Handler) download(c *gin.Context) {
	h.serve(c, "attachment")
}

func (h *Handler) preview(c *gin.Context) {
	h.serve(c, "inline")
}

func (h *Handler) serve(c *gin.Context, disposition string) {
	id, ok := bindFileID(c)
	if !ok {
		return
	}

	f, err := h.Svc.GetWithPayload(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err, disposition+" file")
		return
	}

	c.Header("Content-Disposition", util.ContentDisposition(disposition, f.OriginalName))
	c.Header("Content-Length", strconv.Itoa(len(f.Data)))
	if disposition == "inline" {
		c.Header("Cache-Control", fmt.Sprintf("public, max-age=%d", int(h.opts.PreviewMaxAge.Seconds())))
	}
	metrics.IncServed(disposition)
	c.Data(http.StatusOK, f.MimeType, f.Data)
}

func (h *Handler) update(c *gin.Context) {
	id, ok := bindFileID(c)
	if !ok {
		return
	}
	var req updateFileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BindError(c, err)
		return
	}

	f, err := h.Svc.Update(c.Request.Context(), id, UpdateInput{
		Filename:     req.Filename,
		OriginalName: req.OriginalName,
	})
	if err != nil {
		h.fail(c, err, "update file")
		return
	}
	respond.OK(c, toResponse(f))
}

func (h *Handler) remove(c *gin.Context) {
	id, ok := bindFileID(c)
	if !ok {
		return
	}

	if err := h.Svc.Remove(c.Request.Context(), id); err != nil {
		h.fail(c, err, "delete file")
		return
	}
	respond.OK(c, gin.H{"message": "File deleted successfully"})
}

func bindFileID(c *gin.Context) (string, bool) {
	var params fileIDParams
	if err := c.ShouldBindUri(&params); err != nil {
		respond.BindError(c, err)
		return "", false
	}
	c.Set("fileId", params.ID)
	return params.ID, true
}

func (h *Handler) tooLarge(c *gin.Context) {
	respond.Error(c, http.StatusBadRequest, "validation_error",
		fmt.Sprintf("file exceeds the maximum upload size of %d bytes", h.opts.MaxUploadBytes), nil)
}

func (h *Handler) fail(c *gin.Context, err error, action string) {
	switch {
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "File not found", nil)
	case errors.Is(err, ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, "validation_error", respond.Reason(err, ErrInvalidInput), nil)
	default:
		respond.Internal(c, err, action)
	}
}
