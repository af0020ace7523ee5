package http

import (
	"html/template"
	"time"

	"github.com/gin-gonic/gin"

	"locallibrary/internal/auth"
)

// NewRouter creates and configures the HTTP router with all endpoints.
// Uses RouterConfig to receive all dependencies, improving testability
// and reducing parameter count.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	router.Use(auth.SecurityHeadersMiddleware())

	// CSRF must run before session so that session context is preserved
	if len(cfg.CSRFSecret) > 0 {
		router.Use(auth.CSRFMiddleware(cfg.CSRFSecret, cfg.SecureCookies))
	}

	// Session runs after CSRF so session context isn't overwritten by
	// CSRF's request replacement
	if cfg.SessionManager != nil {
		router.Use(cfg.SessionManager.SessionLoadSave())
	}

	if cfg.AuthMiddleware != nil {
		router.Use(cfg.AuthMiddleware.Handler())
	}

	funcMap := template.FuncMap{
		"formatDate": func(t time.Time) string {
			return t.Format("Jan 2, 2006")
		},
		"formatDatePtr": func(t *time.Time) string {
			if t == nil {
				return ""
			}
			return t.Format("Jan 2, 2006")
		},
	}

	tmpl := template.Must(template.New("").Funcs(funcMap).ParseGlob(cfg.TemplatesPath + "/*.html"))
	router.SetHTMLTemplate(tmpl)

	router.Static("/static", cfg.StaticPath)

	// Auth routes
	if cfg.AuthService != nil {
		var recorder auth.LoginRecorder
		if cfg.AuditService != nil {
			recorder = cfg.AuditService
		}
		authController, err := auth.NewAuthController(cfg.AuthService, cfg.SessionManager, cfg.TemplatesPath, cfg.AuthConfig, recorder)
		if err == nil {
			authController.RegisterRoutes(router)
		}
	}

	health := NewHealthController(cfg.Database, cfg.Version)
	catalogController := NewCatalogController(cfg.CatalogStore, cfg.LoanStore, cfg.Summary)
	issueController := NewIssueController(cfg.IssueService)

	router.GET("/health", health.Status)

	// Catalog pages
	router.GET("/", catalogController.IndexPage)
	router.GET("/books/", catalogController.BookListPage)
	router.GET("/books/:id", catalogController.BookDetailPage)
	router.GET("/search/", catalogController.SearchPage)

	// Signed-in pages
	requireAuth := passthrough()
	issueGuard := passthrough()
	if cfg.AuthMiddleware != nil {
		requireAuth = cfg.AuthMiddleware.RequireAuth()
		if cfg.RequireLibrarian {
			issueGuard = cfg.AuthMiddleware.RequireLibrarian()
		} else {
			issueGuard = cfg.AuthMiddleware.RequireAuth()
		}
	}

	router.GET("/mybooks/", requireAuth, catalogController.MyBooksPage)
	router.GET("/books/:id/issue", issueGuard, issueController.IssueForm)
	router.POST("/books/:id/issue", issueGuard, issueController.IssueSubmit)

	return router
}

// passthrough is a no-op middleware used when auth is not wired (tests).
func passthrough() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
	}
}
