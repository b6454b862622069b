package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/go-blog-backend/internal/interface/http"
)

// CategoryModule wires category routes. Reads are public.
type CategoryModule struct {
	Handler *handlers.CategoryHandler
	Auth    gin.HandlerFunc
}

func NewCategoryModule(h *handlers.CategoryHandler, auth gin.HandlerFunc) *CategoryModule {
	return &CategoryModule{Handler: h, Auth: auth}
}

func (m *CategoryModule) Register(rg *gin.RouterGroup) {
	rg.GET("/categories", m.Handler.List)
	rg.GET("/categories/:id", m.Handler.Get)
	rg.POST("/categories", m.Auth, m.Handler.Create)
	rg.PUT("/categories/:id", m.Auth, m.Handler.Update)
	rg.DELETE("/categories/:id", m.Auth, m.Handler.Delete)
}
