package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-blog-backend/internal/application"
	"github.com/oksasatya/go-blog-backend/internal/container"
	handlers "github.com/oksasatya/go-blog-backend/internal/interface/http"
	"github.com/oksasatya/go-blog-backend/internal/interface/middleware"
	"github.com/oksasatya/go-blog-backend/internal/router/modules"
)

// NewEngine builds the Gin engine with global middleware and every module
// registered under /api.
func NewEngine(c *container.Container) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.RealIP())
	if c.Config.HTTPLogEnabled && c.Logger != nil {
		r.Use(middleware.AccessLog(c.Logger))
	}
	if origins := c.Config.CORSOrigins(); len(origins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:  origins,
			AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.HeaderRequestID},
			ExposeHeaders: []string{"Content-Length", middleware.HeaderRequestID},
			MaxAge:        12 * time.Hour,
		}))
	}

	reg := NewRegistry(r)
	InitModules(reg, c)
	reg.RegisterAll()
	return r
}

// InitModules builds services and handlers from c and adds their modules to
// the registry.
func InitModules(r *Registry, c *container.Container) {
	auth := middleware.Auth(c.JWT)

	authSvc := application.NewAuthService(c.Users, c.Hasher, c.JWT, c.Logger)
	userSvc := application.NewUserService(c.Users, c.Hasher, c.Avatars, c.Logger)
	postSvc := application.NewPostService(c.Posts, c.Categories, c.PostIndex, c.Logger)
	categorySvc := application.NewCategoryService(c.Categories, c.Logger)

	r.Add(modules.NewAuthModule(handlers.NewAuthHandler(authSvc)))
	r.Add(modules.NewUserModule(handlers.NewUserHandler(userSvc), auth))
	r.Add(modules.NewPostModule(handlers.NewPostHandler(postSvc), auth))
	r.Add(modules.NewCategoryModule(handlers.NewCategoryHandler(categorySvc), auth))
	if c.Config.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule())
	}
}
