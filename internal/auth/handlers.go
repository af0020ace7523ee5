package auth

import (
	"errors"
	"html/template"
	"net/http"
	"path/filepath"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"

	"locallibrary/internal/config"
	"locallibrary/internal/entities"
)

// setupMutex serializes setup requests to prevent creating two initial
// accounts from concurrent submissions.
var setupMutex sync.Mutex

// isLocalPath validates that a redirect path is local to prevent open
// redirect attacks.
func isLocalPath(path string) bool {
	if path == "" {
		return false
	}
	if !strings.HasPrefix(path, "/") {
		return false
	}
	// Protocol-relative URLs (//evil.com)
	if strings.HasPrefix(path, "//") {
		return false
	}
	if strings.Contains(path, "://") {
		return false
	}
	if strings.Contains(path, "\\") {
		return false
	}
	return true
}

// sanitizeRedirectPath returns a safe redirect path, defaulting to "/" if invalid.
func sanitizeRedirectPath(path string) string {
	if isLocalPath(path) {
		return path
	}
	return "/"
}

// LoginRecorder receives the outcome of login attempts for the audit
// trail. Implemented by internal/audit.Service.
type LoginRecorder interface {
	RecordLogin(userID uint, username string, loginErr error)
}

// AuthController handles authentication-related HTTP endpoints.
type AuthController struct {
	service        *Service
	sessionManager *SessionManager
	templates      *template.Template
	config         config.Auth
	rateLimiter    *RateLimiter
	recorder       LoginRecorder
}

// NewAuthController creates a new authentication controller. recorder may
// be nil to disable login auditing.
func NewAuthController(service *Service, sessionManager *SessionManager, templatesPath string, cfg config.Auth, recorder LoginRecorder) (*AuthController, error) {
	pattern := filepath.Join(templatesPath, "auth", "*.html")
	tmpl, err := template.ParseGlob(pattern)
	if err != nil {
		// Templates might not exist yet, create controller without them
		tmpl = nil
	}

	rateLimiter := NewRateLimiter(RateLimitConfig{
		MaxAttempts:     cfg.MaxLoginAttempts,
		WindowDuration:  cfg.RateLimitWindow,
		LockoutDuration: cfg.LockoutDuration,
	})

	return &AuthController{
		service:        service,
		sessionManager: sessionManager,
		templates:      tmpl,
		config:         cfg,
		rateLimiter:    rateLimiter,
		recorder:       recorder,
	}, nil
}

// RegisterRoutes registers authentication routes on the router.
func (ac *AuthController) RegisterRoutes(router *gin.Engine) {
	router.GET("/login", ac.LoginPage)
	router.POST("/login", ac.Login)
	router.POST("/logout", ac.Logout)
	router.GET("/logout", ac.Logout) // Support GET for simple logout links
	router.GET("/setup", ac.SetupPage)
	router.POST("/setup", ac.Setup)
}

// Stop cleans up resources (rate limiter background goroutine).
func (ac *AuthController) Stop() {
	if ac.rateLimiter != nil {
		ac.rateLimiter.Stop()
	}
}

// LoginPage renders the login form.
func (ac *AuthController) LoginPage(c *gin.Context) {
	if ac.sessionManager != nil && ac.sessionManager.IsAuthenticated(c.Request) {
		c.Redirect(http.StatusFound, "/")
		return
	}

	next := sanitizeRedirectPath(c.Query("next"))

	// A fresh database has no accounts yet
	hasUsers, _ := ac.service.HasUsers()
	if !hasUsers {
		c.Redirect(http.StatusFound, "/setup")
		return
	}

	ac.renderTemplate(c, "login.html", gin.H{
		"Title":     "Login",
		"Next":      next,
		"CSRFToken": GetCSRFToken(c),
		"Error":     c.Query("error"),
	})
}

// Login handles the login form submission.
func (ac *AuthController) Login(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")
	next := sanitizeRedirectPath(c.PostForm("next"))
	clientIP := c.ClientIP()

	if ac.rateLimiter != nil {
		allowed, retryAfter := ac.rateLimiter.Allow(clientIP, username)
		if !allowed {
			c.Header("Retry-After", retryAfter.String())
			ac.renderTemplate(c, "login.html", gin.H{
				"Title":     "Login",
				"Next":      next,
				"Username":  username,
				"CSRFToken": GetCSRFToken(c),
				"Error":     "Too many login attempts. Please try again later.",
			})
			return
		}
	}

	user, err := ac.service.Authenticate(username, password)
	if err != nil {
		if ac.rateLimiter != nil {
			ac.rateLimiter.RecordFailure(clientIP, username)
		}
		if ac.recorder != nil {
			ac.recorder.RecordLogin(0, username, err)
		}
		ac.renderTemplate(c, "login.html", gin.H{
			"Title":     "Login",
			"Next":      next,
			"Username":  username,
			"CSRFToken": GetCSRFToken(c),
			"Error":     "Invalid username or password.",
		})
		return
	}

	if ac.rateLimiter != nil {
		ac.rateLimiter.RecordSuccess(clientIP, username)
	}

	if ac.sessionManager != nil {
		if err := ac.sessionManager.CreateSession(c.Request, user); err != nil {
			ac.renderTemplate(c, "login.html", gin.H{
				"Title":     "Login",
				"Next":      next,
				"CSRFToken": GetCSRFToken(c),
				"Error":     "Failed to create session. Please try again.",
			})
			return
		}
	}

	if ac.recorder != nil {
		ac.recorder.RecordLogin(user.ID, username, nil)
	}

	c.Redirect(http.StatusFound, next)
}

// Logout destroys the session and redirects to the catalog.
func (ac *AuthController) Logout(c *gin.Context) {
	if ac.sessionManager != nil {
		_ = ac.sessionManager.DestroySession(c.Request)
	}
	c.Redirect(http.StatusFound, "/")
}

// SetupPage renders the first-run form that creates the initial librarian
// account. Once any user exists the page redirects to login.
func (ac *AuthController) SetupPage(c *gin.Context) {
	hasUsers, err := ac.service.HasUsers()
	if err == nil && hasUsers {
		c.Redirect(http.StatusFound, "/login")
		return
	}

	ac.renderTemplate(c, "setup.html", gin.H{
		"Title":     "Setup",
		"CSRFToken": GetCSRFToken(c),
	})
}

// Setup handles the first-run form submission.
func (ac *AuthController) Setup(c *gin.Context) {
	setupMutex.Lock()
	defer setupMutex.Unlock()

	hasUsers, err := ac.service.HasUsers()
	if err == nil && hasUsers {
		c.Redirect(http.StatusFound, "/login")
		return
	}

	username := c.PostForm("username")
	email := c.PostForm("email")
	password := c.PostForm("password")
	confirm := c.PostForm("password_confirm")

	if password != confirm {
		ac.renderTemplate(c, "setup.html", gin.H{
			"Title":     "Setup",
			"Username":  username,
			"Email":     email,
			"CSRFToken": GetCSRFToken(c),
			"Error":     "Passwords do not match.",
		})
		return
	}

	// The first account runs the library
	user, err := ac.service.CreateUser(username, email, password, entities.UserRoleLibrarian)
	if err != nil {
		ac.renderTemplate(c, "setup.html", gin.H{
			"Title":     "Setup",
			"Username":  username,
			"Email":     email,
			"CSRFToken": GetCSRFToken(c),
			"Error":     setupErrorMessage(err),
		})
		return
	}

	if ac.sessionManager != nil {
		_ = ac.sessionManager.CreateSession(c.Request, user)
	}

	c.Redirect(http.StatusFound, "/")
}

func setupErrorMessage(err error) string {
	switch {
	case errors.Is(err, ErrPasswordTooShort):
		return "Password must be at least 12 characters."
	case errors.Is(err, ErrUsernameInvalid):
		return "Username must be 3-64 characters, letters, digits, underscore or hyphen."
	case errors.Is(err, ErrEmailInvalid):
		return "Please provide a valid email address."
	case errors.Is(err, ErrUserExists):
		return "A user with that name or email already exists."
	default:
		return "Could not create the account. Please check the form and try again."
	}
}

// renderTemplate renders an auth template, falling back to plain text when
// templates are not configured (tests).
func (ac *AuthController) renderTemplate(c *gin.Context, name string, data gin.H) {
	if ac.templates == nil {
		if errMsg, ok := data["Error"].(string); ok && errMsg != "" {
			c.String(http.StatusOK, "%s: %s", name, errMsg)
			return
		}
		c.String(http.StatusOK, "%s", name)
		return
	}

	c.Status(http.StatusOK)
	c.Header("Content-Type", "text/html; charset=utf-8")
	if err := ac.templates.ExecuteTemplate(c.Writer, name, data); err != nil {
		c.String(http.StatusInternalServerError, "Template error: %s", err.Error())
	}
}
