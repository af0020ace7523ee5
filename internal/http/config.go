package http

import (
	"locallibrary/internal/audit"
	"locallibrary/internal/auth"
	"locallibrary/internal/catalog"
	"locallibrary/internal/config"
	"locallibrary/internal/database"
	"locallibrary/internal/loans"
)

// RouterConfig contains all dependencies and configuration needed to
// create the HTTP router.
type RouterConfig struct {
	// Core dependencies
	Database     *database.Database
	CatalogStore CatalogStore
	LoanStore    LoanStore
	Summary      *catalog.SummaryProvider
	IssueService *loans.Service
	AuditService *audit.Service

	// Authentication
	AuthService    *auth.Service
	SessionManager *auth.SessionManager
	AuthMiddleware *auth.Middleware
	AuthConfig     config.Auth
	CSRFSecret     []byte
	SecureCookies  bool

	// RequireLibrarian gates the issue workflow behind the librarian role.
	RequireLibrarian bool

	// UI paths
	TemplatesPath string
	StaticPath    string

	// Application info
	Version string
}
