package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-blog-backend/internal/application"
	"github.com/oksasatya/go-blog-backend/pkg/response"
)

type CategoryHandler struct {
	Svc *application.CategoryService
}

func NewCategoryHandler(svc *application.CategoryService) *CategoryHandler {
	return &CategoryHandler{Svc: svc}
}

type createCategoryRequest struct {
	Name string `json:"name" binding:"required,max=100"`
}

// updateCategoryRequest is decoded only after the caller is authorized.
type updateCategoryRequest struct {
	Name *string `json:"name"`
}

func (h *CategoryHandler) List(c *gin.Context) {
	cats, err := h.Svc.List(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, cats, "categories", nil)
}

func (h *CategoryHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	cat, err := h.Svc.Get(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, cat, "category", nil)
}

func (h *CategoryHandler) Create(c *gin.Context) {
	me, ok := caller(c)
	if !ok {
		return
	}
	var req createCategoryRequest
	if !bindJSON(c, &req) {
		return
	}
	cat, err := h.Svc.Create(c.Request.Context(), me, req.Name)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, cat, "category created", nil)
}

func (h *CategoryHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	me, ok := caller(c)
	if !ok {
		return
	}
	cat, err := h.Svc.Editable(c.Request.Context(), me, id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	var req updateCategoryRequest
	if !bindJSON(c, &req) {
		return
	}
	cat, err = h.Svc.Apply(c.Request.Context(), cat, req.Name)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, cat, "category updated", nil)
}

func (h *CategoryHandler) Delete(c *gin.Context) {
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
	response.Success[any](c, http.StatusOK, gin.H{"id": id}, "category deleted", nil)
}
