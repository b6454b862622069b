package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-blog-backend/internal/application"
	"github.com/oksasatya/go-blog-backend/internal/domain/apperr"
	"github.com/oksasatya/go-blog-backend/pkg/response"
)

// maxAvatarBytes caps avatar uploads.
const maxAvatarBytes = 5 << 20

type UserHandler struct {
	Svc *application.UserService
}

func NewUserHandler(svc *application.UserService) *UserHandler {
	return &UserHandler{Svc: svc}
}

type registerRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Name     string `json:"name" binding:"omitempty,max=100"`
	Password string `json:"password" binding:"required,pwd"`
}

// updateUserRequest is decoded only after the caller is authorized; field
// rules live in UserService.Apply.
type updateUserRequest struct {
	Email     *string `json:"email"`
	Name      *string `json:"name"`
	Password  *string `json:"password"`
	Role      *string `json:"role"`
	IsBlocked *bool   `json:"isBlocked"`
}

func (h *UserHandler) List(c *gin.Context) {
	users, err := h.Svc.List(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, users, "users", nil)
}

func (h *UserHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	u, err := h.Svc.Get(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, u, "user", nil)
}

// Register POST /api/users
func (h *UserHandler) Register(c *gin.Context) {
	var req registerRequest
	if !bindJSON(c, &req) {
		return
	}
	u, err := h.Svc.Register(c.Request.Context(), application.RegisterInput{
		Email:    req.Email,
		Name:     req.Name,
		Password: req.Password,
	})
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, u, "user created", nil)
}

func (h *UserHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	me, ok := caller(c)
	if !ok {
		return
	}
	u, err := h.Svc.Editable(c.Request.Context(), me, id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	var req updateUserRequest
	if !bindJSON(c, &req) {
		return
	}
	u, err = h.Svc.Apply(c.Request.Context(), me, u, application.UpdateUserInput{
		Email:     req.Email,
		Name:      req.Name,
		Password:  req.Password,
		Role:      req.Role,
		IsBlocked: req.IsBlocked,
	})
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, u, "user updated", nil)
}

func (h *UserHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	me, ok := caller(c)
	if !ok {
		return
	}
	if err := h.Svc.Delete(c.Request.Context(), me, id); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"id": id}, "user deleted", nil)
}

// UploadAvatar PUT /api/users/:id/avatar (multipart field "avatar")
func (h *UserHandler) UploadAvatar(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	me, ok := caller(c)
	if !ok {
		return
	}
	u, err := h.Svc.Editable(c.Request.Context(), me, id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	fh, err := c.FormFile("avatar")
	if err != nil {
		response.FromError(c, apperr.InvalidInput("avatar file is required"))
		return
	}
	if fh.Size > maxAvatarBytes {
		response.FromError(c, apperr.InvalidInput("avatar must be at most 5MB"))
		return
	}
	f, err := fh.Open()
	if err != nil {
		response.FromError(c, apperr.Internal("could not read upload", err))
		return
	}
	defer func() { _ = f.Close() }()

	u, err = h.Svc.StoreAvatar(c.Request.Context(), u, f, fh.Filename, fh.Header.Get("Content-Type"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, u, "avatar updated", nil)
}
