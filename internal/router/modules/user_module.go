package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/go-blog-backend/internal/interface/http"
)

// UserModule wires account routes.
// Public: POST /users (registration)
// Protected: GET /users, GET/PUT/DELETE /users/:id, PUT /users/:id/avatar
type UserModule struct {
	Handler *handlers.UserHandler
	Auth    gin.HandlerFunc
}

func NewUserModule(h *handlers.UserHandler, auth gin.HandlerFunc) *UserModule {
	return &UserModule{Handler: h, Auth: auth}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	rg.POST("/users", m.Handler.Register)

	users := rg.Group("/users", m.Auth)
	{
		users.GET("", m.Handler.List)
		users.GET("/:id", m.Handler.Get)
		users.PUT("/:id", m.Handler.Update)
		users.DELETE("/:id", m.Handler.Delete)
		users.PUT("/:id/avatar", m.Handler.UploadAvatar)
	}
}
