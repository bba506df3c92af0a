package users

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"files-backend/internal/shared/server/respond"
)

type createUserRequest struct {
	Email string `json:"email" binding:"required,email,max=255"`
	Name  string `json:"name" binding:"omitempty,max=255"`
}

type userIDParams struct {
	ID string `uri:"id" binding:"required,uuid"`
}

type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/users", h.create)
	rg.GET("/users/:id", h.get)
}

func (h *Handler) create(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BindError(c, err)
		return
	}
	user, err := h.Svc.Create(c.Request.Context(), CreateInput{Email: req.Email, Name: req.Name})
	if err != nil {
		h.fail(c, err, "create user")
		return
	}
	respond.JSON(c, http.StatusCreated, user)
}

func (h *Handler) get(c *gin.Context) {
	var params userIDParams
	if err := c.ShouldBindUri(&params); err != nil {
		respond.BindError(c, err)
		return
	}
	user, err := h.Svc.GetByID(c.Request.Context(), params.ID)
	if err != nil {
		h.fail(c, err, "get user")
		return
	}
	respond.OK(c, user)
}

func (h *Handler) fail(c *gin.Context, err error, action string) {
	switch {
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "User not found", nil)
	case errors.Is(err, ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, "validation_error", respond.Reason(err, ErrInvalidInput), nil)
	default:
		respond.Internal(c, err, action)
	}
}
