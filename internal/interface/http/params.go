package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-blog-backend/internal/domain/apperr"
	"github.com/oksasatya/go-blog-backend/internal/domain/entity"
	"github.com/oksasatya/go-blog-backend/internal/interface/middleware"
	"github.com/oksasatya/go-blog-backend/pkg/response"
	"github.com/oksasatya/go-blog-backend/pkg/validation"
)

// pathID parses the :id route parameter. It writes a 400 and returns false
// for anything but a positive integer.
func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.FromError(c, apperr.InvalidInput("id must be a positive integer"))
		return 0, false
	}
	return id, true
}

// caller returns the authenticated identity. Routes using it sit behind
// middleware.Auth, so a miss is a wiring bug.
func caller(c *gin.Context) (entity.Identity, bool) {
	id, ok := middleware.Identity(c)
	if !ok {
		response.Error[any](c, http.StatusUnauthorized, "unauthenticated", nil)
	}
	return id, ok
}

func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return false
	}
	return true
}
