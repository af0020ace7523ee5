package entrypoint

import (
	"context"
	"encoding/hex"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"locallibrary/internal/audit"
	"locallibrary/internal/auth"
	"locallibrary/internal/catalog"
	"locallibrary/internal/config"
	"locallibrary/internal/database"
	auditrepo "locallibrary/internal/database/audit"
	catalogrepo "locallibrary/internal/database/catalog"
	instancerepo "locallibrary/internal/database/instances"
	userrepo "locallibrary/internal/database/users"
	http_controllers "locallibrary/internal/http"
	"locallibrary/internal/loans"
	"locallibrary/internal/scheduler"
	"locallibrary/internal/tasks"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

// Serve runs the HTTP server until SIGINT/SIGTERM, then shuts down
// gracefully within the configured timeout.
func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		log.Printf("Starting server at %s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	// Shutdown callbacks first (task queue, scheduler)
	if onShutdown != nil {
		onShutdown(ctx)
	}

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server Shutdown:", err)
	}

	log.Println("Server exiting")
}

// Run wires the application together and serves it.
func Run(cfg *config.Config, version string) {
	log.Printf("Starting LocalLibrary v%s", version)

	db, err := database.NewDatabase(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	// Repositories
	catalogRepo := catalogrepo.NewRepository(db.DB)
	instanceRepo := instancerepo.NewRepository(db.DB)
	auditRepo := auditrepo.NewRepository(db.DB)
	userRepo := userrepo.NewRepository(db.DB)

	// Task queue for async audit writes
	var taskClient *tasks.Client
	if cfg.Tasks.Enabled {
		taskClient, err = tasks.NewClient(cfg.Database.Path, tasks.Config{
			Workers:         cfg.Tasks.Workers,
			ReleaseAfter:    cfg.Tasks.ReleaseAfter,
			CleanupInterval: cfg.Tasks.CleanupInterval,
		})
		if err != nil {
			log.Printf("WARNING: Failed to initialize task queue, audit events will be written inline: %v", err)
			taskClient = nil
		}
	}

	auditService := audit.NewService(auditRepo, taskClient)

	// Domain services
	summary := catalog.NewSummaryProvider(catalogRepo, instanceRepo)
	issueService := loans.NewService(instanceRepo, auditService)

	// Authentication
	sessionSecret := cfg.Auth.SessionSecret
	if sessionSecret == "" {
		sessionSecret, err = auth.GenerateSessionSecret()
		if err != nil {
			log.Fatalf("Failed to generate session secret: %v", err)
		}
		log.Printf("WARNING: AUTH_SESSION_SECRET not set, sessions will not survive restarts")
	}
	csrfSecret, err := hex.DecodeString(sessionSecret)
	if err != nil || len(csrfSecret) < 32 {
		csrfSecret = []byte(sessionSecret)
	}

	sqlDB, err := db.DB.DB()
	if err != nil {
		log.Fatalf("Failed to access underlying database: %v", err)
	}

	sessionManager, err := auth.NewSessionManager(sqlDB, cfg.Auth)
	if err != nil {
		log.Fatalf("Failed to initialize session manager: %v", err)
	}

	authService := auth.NewService(userRepo, cfg.Auth)
	authMiddleware := auth.NewMiddleware(authService, sessionManager)

	// Background workers
	taskCtx, cancelTasks := context.WithCancel(context.Background())
	defer cancelTasks()
	if taskClient != nil {
		taskClient.Register(
			tasks.NewRecordAuditEventQueue(auditRepo),
			tasks.NewCleanupAuditEventsQueue(auditRepo),
		)
		go taskClient.Start(taskCtx)
	}

	auditCleanup := scheduler.NewAuditCleanupScheduler(auditRepo, taskClient, cfg.Audit.CleanupSchedule, cfg.Audit.RetentionDays)
	if err := auditCleanup.Start(taskCtx); err != nil {
		log.Printf("WARNING: Failed to start audit cleanup scheduler: %v", err)
		auditCleanup = nil
	}

	var statsScheduler *scheduler.StatsReportScheduler
	if cfg.StatsReport.Enabled {
		statsScheduler = scheduler.NewStatsReportScheduler(summary, cfg.StatsReport.Schedule)
		if err := statsScheduler.Start(taskCtx); err != nil {
			log.Printf("WARNING: Failed to start stats report scheduler: %v", err)
			statsScheduler = nil
		}
	}

	router := http_controllers.NewRouter(http_controllers.RouterConfig{
		Database:         db,
		CatalogStore:     catalogRepo,
		LoanStore:        instanceRepo,
		Summary:          summary,
		IssueService:     issueService,
		AuditService:     auditService,
		AuthService:      authService,
		SessionManager:   sessionManager,
		AuthMiddleware:   authMiddleware,
		AuthConfig:       cfg.Auth,
		CSRFSecret:       csrfSecret,
		SecureCookies:    cfg.Auth.SecureCookies,
		RequireLibrarian: cfg.Loans.RequireLibrarian,
		TemplatesPath:    cfg.UI.TemplatesPath,
		StaticPath:       cfg.UI.StaticPath,
		Version:          version,
	})

	Serve(router, cfg, func(ctx context.Context) {
		if statsScheduler != nil {
			statsScheduler.Stop()
		}
		if auditCleanup != nil {
			auditCleanup.Stop()
		}
		if taskClient != nil {
			taskClient.Stop(ctx)
			if err := taskClient.Close(); err != nil {
				log.Printf("Error closing task queue: %v", err)
			}
		}
	})
}
