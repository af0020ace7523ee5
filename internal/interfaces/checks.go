package interfaces

// This file contains compile-time interface implementation checks.
// These ensure that concrete types satisfy their interfaces at compile time,
// catching missing methods before runtime.
//
// To verify all checks pass: go build ./internal/interfaces/...

import (
	"locallibrary/internal/audit"
	"locallibrary/internal/auth"
	"locallibrary/internal/catalog"
	auditrepo "locallibrary/internal/database/audit"
	catalogrepo "locallibrary/internal/database/catalog"
	instancerepo "locallibrary/internal/database/instances"
	userrepo "locallibrary/internal/database/users"
	"locallibrary/internal/http"
	"locallibrary/internal/loans"
	"locallibrary/internal/scheduler"
	"locallibrary/internal/tasks"
)

// =============================================================================
// Data Access Layer
// =============================================================================

// CatalogStore implementations
var _ http.CatalogStore = (*catalogrepo.Repository)(nil)

// LoanStore implementations
var _ http.LoanStore = (*instancerepo.Repository)(nil)

// InstanceStore implementations
var _ loans.InstanceStore = (*instancerepo.Repository)(nil)

// UserStore implementations
var _ auth.UserStore = (*userrepo.Repository)(nil)

// Catalog aggregate counters
var _ catalog.BookCounter = (*catalogrepo.Repository)(nil)
var _ catalog.InstanceCounter = (*instancerepo.Repository)(nil)

// =============================================================================
// Audit Trail
// =============================================================================

// Issue and login outcomes flow into the audit service
var _ loans.IssueRecorder = (*audit.Service)(nil)
var _ auth.LoginRecorder = (*audit.Service)(nil)

// Workers and schedulers write through the audit repository
var _ tasks.EventLogger = (*auditrepo.Repository)(nil)
var _ tasks.AuditEventCleaner = (*auditrepo.Repository)(nil)
var _ scheduler.AuditCleaner = (*auditrepo.Repository)(nil)
