// Package database provides the data access layer for the application.
//
// # Architecture
//
// The database layer is organized into domain-specific sub-packages:
//
//	database/
//	├── database.go      # Connection setup, migrations, genre seeding
//	├── catalog/         # Books, authors and genres
//	├── instances/       # Physical copies and their loan state
//	├── audit/           # Audit trail of loan and auth events
//	└── users/           # User management
//
// # Using Sub-packages
//
// Each sub-package provides a Repository type with domain-specific operations:
//
//	// Initialize database connection
//	db, err := database.NewDatabase("./locallibrary.db")
//
//	// Create domain-specific repositories
//	catalogRepo := catalog.NewRepository(db.DB)
//	instanceRepo := instances.NewRepository(db.DB)
//
//	// Use repositories
//	book, err := catalogRepo.GetBookByID(123)
//	loans, total, err := instanceRepo.GetLoansForBorrower(userID, 10, 0)
//
// # Interface Implementations
//
// Each sub-package implements specific interfaces:
//
//   - catalog.Repository: implements http.CatalogStore and catalog.BookCounter
//   - instances.Repository: implements http.LoanStore, loans.InstanceStore
//     and catalog.InstanceCounter
//   - audit.Repository: implements tasks.EventLogger and tasks.AuditEventCleaner
//   - users.Repository: implements auth.UserStore
//
// # Adding a New Domain
//
// To add a new domain (e.g., reservations):
//
//  1. Create a new sub-package: internal/database/reservations/
//  2. Define a Repository struct with a *gorm.DB field
//  3. Add NewRepository(db *gorm.DB) constructor
//  4. Implement the required interface
//  5. Add compile-time interface check: var _ SomeInterface = (*Repository)(nil)
package database
