// Package interfaces documents the core abstractions used throughout the application.
//
// # Interface Categories
//
// ## Data Access Interfaces
//
//   - CatalogStore: Read access to books and authors (internal/http/catalog.go)
//   - LoanStore: Current loans per borrower (internal/http/catalog.go)
//   - InstanceStore: Copy lookup and loan-state writes (internal/loans/service.go)
//   - UserStore: Account persistence (internal/auth/service.go)
//   - BookCounter, InstanceCounter: Catalog aggregates (internal/catalog/summary.go)
//
// ## Audit Interfaces
//
//   - IssueRecorder: Outcome of issue attempts (internal/loans/service.go)
//   - LoginRecorder: Outcome of login attempts (internal/auth/handlers.go)
//   - EventLogger: Audit event persistence for workers (internal/tasks/record_audit.go)
//   - AuditEventCleaner: Retention sweeps (internal/tasks/cleanup_audit.go)
//
// # Adding a New Database Domain
//
// To add a new data domain (e.g., reservations):
//
//  1. Create sub-package: internal/database/reservations/
//
//  2. Define repository:
//
//     type Repository struct { db *gorm.DB }
//
//     func NewRepository(db *gorm.DB) *Repository
//
//  3. Implement interface methods
//
//  4. Add compile-time check:
//
//     var _ ReservationStore = (*Repository)(nil)
//
// # Compile-Time Interface Checks
//
// All implementations should include compile-time checks to ensure they satisfy
// their interfaces. This catches missing methods at compile time rather than runtime:
//
//	var _ SomeInterface = (*MyImplementation)(nil)
//
// This pattern is used throughout the codebase. See checks.go for examples.
package interfaces
