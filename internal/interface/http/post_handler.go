package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-blog-backend/internal/application"
	"github.com/oksasatya/go-blog-backend/pkg/response"
)

type PostHandler struct {
	Svc *application.PostService
}

func NewPostHandler(svc *application.PostService) *PostHandler {
	return &PostHandler{Svc: svc}
}

type createPostRequest struct {
	Title       string  `json:"title" binding:"required,title"`
	Description *string `json:"description" binding:"omitempty,max=500"`
	Content     string  `json:"content" binding:"required"`
	Published   bool    `json:"published"`
	CategoryID  *int64  `json:"categoryId" binding:"omitempty,gt=0"`
}

// updatePostRequest is decoded only after the caller is authorized; field
// rules live in PostService.Apply.
type updatePostRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Content     *string `json:"content"`
	Published   *bool   `json:"published"`
	CategoryID  *int64  `json:"categoryId"`
}

func (h *PostHandler) List(c *gin.Context) {
	posts, err := h.Svc.List(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, posts, "posts", nil)
}

func (h *PostHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	p, err := h.Svc.Get(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, p, "post", nil)
}

// Search GET /api/posts/search?q=...&size=...
func (h *PostHandler) Search(c *gin.Context) {
	size, _ := strconv.Atoi(c.Query("size"))
	posts, err := h.Svc.Search(c.Request.Context(), c.Query("q"), size)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, posts, "search results", map[string]any{"count": len(posts)})
}

func (h *PostHandler) Create(c *gin.Context) {
	me, ok := caller(c)
	if !ok {
		return
	}
	var req createPostRequest
	if !bindJSON(c, &req) {
		return
	}
	p, err := h.Svc.Create(c.Request.Context(), me, application.CreatePostInput{
		Title:       req.Title,
		Description: req.Description,
		Content:     req.Content,
		Published:   req.Published,
		CategoryID:  req.CategoryID,
	})
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, p, "post created", nil)
}

func (h *PostHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	me, ok := caller(c)
	if !ok {
		return
	}
	p, err := h.Svc.Editable(c.Request.Context(), me, id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	var req updatePostRequest
	if !bindJSON(c, &req) {
		return
	}
	p, err = h.Svc.Apply(c.Request.Context(), p, application.UpdatePostInput{
		Title:       req.Title,
		Description: req.Description,
		Content:     req.Content,
		Published:   req.Published,
		CategoryID:  req.CategoryID,
	})
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, p, "post updated", nil)
}

func (h *PostHandler) Delete(c *gin.Context) {
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
	response.Success[any](c, http.StatusOK, gin.H{"id": id}, "post deleted", nil)
}
