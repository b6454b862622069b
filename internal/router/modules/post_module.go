package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/go-blog-backend/internal/interface/http"
)

// PostModule wires post routes; all of them require a session token.
type PostModule struct {
	Handler *handlers.PostHandler
	Auth    gin.HandlerFunc
}

func NewPostModule(h *handlers.PostHandler, auth gin.HandlerFunc) *PostModule {
	return &PostModule{Handler: h, Auth: auth}
}

func (m *PostModule) Register(rg *gin.RouterGroup) {
	posts := rg.Group("/posts", m.Auth)
	{
		posts.GET("", m.Handler.List)
		posts.GET("/search", m.Handler.Search)
		posts.GET("/:id", m.Handler.Get)
		posts.POST("", m.Handler.Create)
		posts.PUT("/:id", m.Handler.Update)
		posts.DELETE("/:id", m.Handler.Delete)
	}
}
