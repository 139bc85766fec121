package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	googleauth "resume-builder/internal/auth"
	"resume-builder/internal/editor"
	"resume-builder/internal/generate"
	"resume-builder/internal/resumes"
	"resume-builder/internal/shared/config"
	"resume-builder/internal/shared/server/middleware"
	"resume-builder/internal/users"
)

// RouterDeps carries the handlers the router wires up.
type RouterDeps struct {
	Config          config.Config
	ResumesHandler  *resumes.Handler
	EditorHandler   *editor.Handler
	GenerateHandler *generate.Handler
	UsersHandler    *users.Handler
	GoogleAuth      *googleauth.GoogleService
}

// NewRouter builds the gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	engine := gin.New()
	engine.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
	)

	if deps.Config.ObjectStoreType == "local" {
		engine.Static("/files", deps.Config.LocalStoreDir)
	}

	api := engine.Group("/api/v1")
	api.Use(middleware.Auth())

	api.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "time": time.Now().UTC()})
	})

	if deps.GoogleAuth != nil {
		deps.GoogleAuth.RegisterRoutes(api)
	}
	if deps.UsersHandler != nil {
		deps.UsersHandler.RegisterRoutes(api)
	}
	if deps.ResumesHandler != nil {
		deps.ResumesHandler.RegisterRoutes(api)
	}
	if deps.EditorHandler != nil {
		deps.EditorHandler.RegisterRoutes(api)
	}
	if deps.GenerateHandler != nil {
		generateGroup := api.Group("")
		generateGroup.Use(middleware.RateLimit(middleware.RateLimitConfig{
			Rules: map[string]middleware.RateLimitRule{
				"GENERATE": {Rate: 0.5, Burst: 5},
			},
			DefaultGroup: "GENERATE",
		}))
		deps.GenerateHandler.RegisterRoutes(generateGroup)
	}

	return engine
}

// Addr returns a normalized listen address for the given port.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return fmt.Sprintf(":%s", port)
}
