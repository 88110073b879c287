package server

import (
	"net/http"

	"courtflow/internal/access"
	"courtflow/internal/config"
	"courtflow/internal/handlers"
	"courtflow/internal/middleware"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
)

func NewRouter(cfg *config.Config) *gin.Engine {
	r := gin.Default()

	handlers.UploadDir = cfg.UploadDir

	store := cookie.NewStore([]byte(cfg.SessionSecret))
	r.Use(sessions.Sessions("court_session", store))

	r.Use(middleware.InjectUser())

	// AUTH
	r.POST("/login", handlers.Login)
	r.POST("/logout", handlers.Logout)

	auth := r.Group("/")
	auth.Use(middleware.RequireAuth())

	// USERS (admin territory; everyone else needs explicit grid rows)
	auth.GET("/users",
		middleware.RequirePermission("users", access.ActionView),
		handlers.ListUsers,
	)
	auth.POST("/users",
		middleware.RequirePermission("users", access.ActionAdd),
		handlers.CreateUser,
	)

	// PERMISSION GRID
	auth.GET("/users/:id/permissions",
		middleware.RequirePermission("permissions", access.ActionView),
		handlers.GetUserPermissions,
	)
	auth.PUT("/users/:id/permissions",
		middleware.RequirePermission("permissions", access.ActionEdit),
		handlers.ReplaceUserPermissions,
	)

	// CASES, one route tree for all three tiers
	auth.GET("/cases/:type",
		middleware.RequirePermission("cases", access.ActionView),
		handlers.ListCases,
	)
	auth.POST("/cases/:type",
		middleware.RequirePermission("cases", access.ActionAdd),
		handlers.CreateCase,
	)
	auth.GET("/cases/:type/:id",
		middleware.RequirePermission("cases", access.ActionView),
		handlers.GetCase,
	)
	auth.PUT("/cases/:type/:id",
		middleware.RequirePermission("cases", access.ActionEdit),
		handlers.UpdateCase,
	)
	auth.DELETE("/cases/:type/:id",
		middleware.RequirePermission("cases", access.ActionDelete),
		handlers.DeleteCase,
	)

	// escalation creates a record in the next tier
	auth.POST("/cases/:type/:id/escalate",
		middleware.RequirePermission("cases", access.ActionAdd),
		handlers.EscalateCase,
	)

	// CASE HISTORY
	auth.GET("/cases/:type/:id/history",
		middleware.RequirePermission("audit", access.ActionView),
		handlers.CaseHistory,
	)

	// DOCUMENTS
	auth.GET("/cases/:type/:id/documents",
		middleware.RequirePermission("documents", access.ActionView),
		handlers.ListCaseDocuments,
	)
	auth.POST("/cases/:type/:id/documents",
		middleware.RequirePermission("documents", access.ActionAdd),
		handlers.UploadDocument,
	)
	auth.GET("/documents/:id/download",
		middleware.RequirePermission("documents", access.ActionView),
		handlers.DownloadDocument,
	)
	auth.DELETE("/documents/:id",
		middleware.RequirePermission("documents", access.ActionDelete),
		handlers.DeleteDocument,
	)

	// COURT SESSIONS
	auth.GET("/cases/:type/:id/sessions",
		middleware.RequirePermission("sessions", access.ActionView),
		handlers.ListCaseSessions,
	)
	auth.POST("/cases/:type/:id/sessions",
		middleware.RequirePermission("sessions", access.ActionAdd),
		handlers.CreateCaseSession,
	)
	auth.PUT("/sessions/:id",
		middleware.RequirePermission("sessions", access.ActionEdit),
		handlers.UpdateCourtSession,
	)
	auth.DELETE("/sessions/:id",
		middleware.RequirePermission("sessions", access.ActionDelete),
		handlers.DeleteCourtSession,
	)

	// HEALTHCHECK
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	return r
}
