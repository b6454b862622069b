package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-blog-backend/internal/domain/entity"
	"github.com/oksasatya/go-blog-backend/pkg/helpers"
	"github.com/oksasatya/go-blog-backend/pkg/response"
)

const ctxIdentityKey = "identity"

// TokenParser decodes a session token into the identity it carries.
type TokenParser interface {
	Parse(token string) (*entity.Identity, error)
}

// Auth requires a valid "Authorization: Bearer <token>" header and stores the
// decoded identity in the Gin context. Blocked identities are refused.
func Auth(tokens TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := bearerToken(c.GetHeader("Authorization"))
		if raw == "" {
			response.Error[any](c, http.StatusUnauthorized, "missing bearer token", nil)
			return
		}
		id, err := tokens.Parse(raw)
		if err != nil {
			msg := "invalid token"
			if errors.Is(err, helpers.ErrTokenExpired) {
				msg = "token has expired"
			}
			response.Error[any](c, http.StatusUnauthorized, msg, nil)
			return
		}
		if id.Blocked {
			response.Error[any](c, http.StatusForbidden, "account is blocked", nil)
			return
		}
		c.Set(ctxIdentityKey, *id)
		c.Next()
	}
}

func bearerToken(header string) string {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

// Identity returns the caller identity set by Auth.
func Identity(c *gin.Context) (entity.Identity, bool) {
	v, ok := c.Get(ctxIdentityKey)
	if !ok {
		return entity.Identity{}, false
	}
	id, ok := v.(entity.Identity)
	return id, ok
}
