package instances

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"locallibrary/internal/entities"
)

func setupTestDB(t *testing.T) (*gorm.DB, *Repository, func()) {
	dbPath := "./test_instances_" + t.Name() + ".db"

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&entities.Author{},
		&entities.Genre{},
		&entities.Book{},
		&entities.BookInstance{},
		&entities.User{},
	)
	require.NoError(t, err)

	repo := NewRepository(db)

	cleanup := func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
		os.Remove(dbPath)
	}

	return db, repo, cleanup
}

func createTestBook(t *testing.T, db *gorm.DB, title string) *entities.Book {
	author := &entities.Author{FirstName: "Test", LastName: "Author"}
	require.NoError(t, db.Create(author).Error)
	book := &entities.Book{Title: title, AuthorID: author.ID}
	require.NoError(t, db.Create(book).Error)
	return book
}

func createLoan(t *testing.T, db *gorm.DB, repo *Repository, bookID uint, borrowerID uint, due time.Time) *entities.BookInstance {
	instance, err := repo.CreateInstance(bookID, "", entities.StatusOnLoan)
	require.NoError(t, err)
	require.NoError(t, db.Model(&entities.BookInstance{}).
		Where("id = ?", instance.ID).
		Updates(map[string]any{"borrower_id": borrowerID, "due_back": due}).Error)
	return instance
}

func TestCreateInstance(t *testing.T) {
	db, repo, cleanup := setupTestDB(t)
	defer cleanup()

	book := createTestBook(t, db, "Emma")

	instance, err := repo.CreateInstance(book.ID, "Penguin Classics, 2003", entities.StatusAvailable)

	require.NoError(t, err)
	assert.Len(t, instance.ID, 36, "copies are keyed by UUID")
	assert.Equal(t, entities.StatusAvailable, instance.Status)
	assert.Nil(t, instance.DueBack)
}

func TestCreateInstance_DefaultsToMaintenance(t *testing.T) {
	db, repo, cleanup := setupTestDB(t)
	defer cleanup()

	book := createTestBook(t, db, "Emma")

	instance, err := repo.CreateInstance(book.ID, "", "")

	require.NoError(t, err)
	assert.Equal(t, entities.StatusMaintenance, instance.Status)
}

func TestGetInstanceByID_PreloadsBookAndAuthor(t *testing.T) {
	db, repo, cleanup := setupTestDB(t)
	defer cleanup()

	book := createTestBook(t, db, "Emma")
	created, err := repo.CreateInstance(book.ID, "", entities.StatusAvailable)
	require.NoError(t, err)

	instance, err := repo.GetInstanceByID(created.ID)

	require.NoError(t, err)
	assert.Equal(t, "Emma", instance.Book.Title)
	assert.Equal(t, "Test Author", instance.Book.Author.Name())
}

func TestGetInstanceByID_NotFound(t *testing.T) {
	_, repo, cleanup := setupTestDB(t)
	defer cleanup()

	_, err := repo.GetInstanceByID("no-such-copy")

	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestGetLoansForBorrower_OrderedSoonestDueFirst(t *testing.T) {
	db, repo, cleanup := setupTestDB(t)
	defer cleanup()

	book := createTestBook(t, db, "Emma")
	later := createLoan(t, db, repo, book.ID, 7, time.Date(2024, 4, 20, 0, 0, 0, 0, time.UTC))
	sooner := createLoan(t, db, repo, book.ID, 7, time.Date(2024, 4, 5, 0, 0, 0, 0, time.UTC))

	loans, total, err := repo.GetLoansForBorrower(7, 10, 0)

	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, loans, 2)
	assert.Equal(t, sooner.ID, loans[0].ID)
	assert.Equal(t, later.ID, loans[1].ID)
	assert.Equal(t, "Emma", loans[0].Book.Title)
}

func TestGetLoansForBorrower_ExcludesOtherUsersAndStatuses(t *testing.T) {
	db, repo, cleanup := setupTestDB(t)
	defer cleanup()

	book := createTestBook(t, db, "Emma")
	due := time.Date(2024, 4, 5, 0, 0, 0, 0, time.UTC)

	mine := createLoan(t, db, repo, book.ID, 7, due)
	createLoan(t, db, repo, book.ID, 8, due) // someone else's loan

	// Linked to the user but already back on the shelf; not a current loan
	returned, err := repo.CreateInstance(book.ID, "", entities.StatusAvailable)
	require.NoError(t, err)
	borrower := uint(7)
	require.NoError(t, repo.SetBorrower(returned.ID, &borrower))

	loans, total, err := repo.GetLoansForBorrower(7, 10, 0)

	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, loans, 1)
	assert.Equal(t, mine.ID, loans[0].ID)
}

func TestGetLoansForBorrower_Pagination(t *testing.T) {
	db, repo, cleanup := setupTestDB(t)
	defer cleanup()

	book := createTestBook(t, db, "Emma")
	for day := 1; day <= 12; day++ {
		createLoan(t, db, repo, book.ID, 7, time.Date(2024, 4, day, 0, 0, 0, 0, time.UTC))
	}

	first, total, err := repo.GetLoansForBorrower(7, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(12), total)
	assert.Len(t, first, 10)

	second, _, err := repo.GetLoansForBorrower(7, 10, 10)
	require.NoError(t, err)
	assert.Len(t, second, 2)
}

func TestMarkOnLoan(t *testing.T) {
	db, repo, cleanup := setupTestDB(t)
	defer cleanup()

	book := createTestBook(t, db, "Emma")
	created, err := repo.CreateInstance(book.ID, "", entities.StatusAvailable)
	require.NoError(t, err)

	due := time.Date(2024, 4, 5, 0, 0, 0, 0, time.UTC)
	require.NoError(t, repo.MarkOnLoan(created.ID, due))

	instance, err := repo.GetInstanceByID(created.ID)
	require.NoError(t, err)
	assert.Equal(t, entities.StatusOnLoan, instance.Status)
	require.NotNil(t, instance.DueBack)
	assert.Equal(t, due.Format("2006-01-02"), instance.DueBack.Format("2006-01-02"))
}

func TestMarkOnLoan_DoesNotTouchOtherCopies(t *testing.T) {
	db, repo, cleanup := setupTestDB(t)
	defer cleanup()

	book := createTestBook(t, db, "Emma")
	target, err := repo.CreateInstance(book.ID, "", entities.StatusAvailable)
	require.NoError(t, err)
	other, err := repo.CreateInstance(book.ID, "", entities.StatusAvailable)
	require.NoError(t, err)

	require.NoError(t, repo.MarkOnLoan(target.ID, time.Date(2024, 4, 5, 0, 0, 0, 0, time.UTC)))

	untouched, err := repo.GetInstanceByID(other.ID)
	require.NoError(t, err)
	assert.Equal(t, entities.StatusAvailable, untouched.Status)
	assert.Nil(t, untouched.DueBack)
}

func TestMarkOnLoan_PreservesBorrower(t *testing.T) {
	db, repo, cleanup := setupTestDB(t)
	defer cleanup()

	book := createTestBook(t, db, "Emma")
	created, err := repo.CreateInstance(book.ID, "", entities.StatusAvailable)
	require.NoError(t, err)
	borrower := uint(7)
	require.NoError(t, repo.SetBorrower(created.ID, &borrower))

	require.NoError(t, repo.MarkOnLoan(created.ID, time.Date(2024, 4, 5, 0, 0, 0, 0, time.UTC)))

	instance, err := repo.GetInstanceByID(created.ID)
	require.NoError(t, err)
	require.NotNil(t, instance.BorrowerID)
	assert.Equal(t, uint(7), *instance.BorrowerID)
}

func TestMarkOnLoan_UnknownCopy(t *testing.T) {
	_, repo, cleanup := setupTestDB(t)
	defer cleanup()

	err := repo.MarkOnLoan("no-such-copy", time.Now())

	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestCountInstancesByStatus(t *testing.T) {
	db, repo, cleanup := setupTestDB(t)
	defer cleanup()

	book := createTestBook(t, db, "Emma")
	for i := 0; i < 3; i++ {
		_, err := repo.CreateInstance(book.ID, "", entities.StatusAvailable)
		require.NoError(t, err)
	}
	_, err := repo.CreateInstance(book.ID, "", entities.StatusOnLoan)
	require.NoError(t, err)

	total, err := repo.CountInstances()
	require.NoError(t, err)
	assert.Equal(t, int64(4), total)

	available, err := repo.CountInstancesByStatus(entities.StatusAvailable)
	require.NoError(t, err)
	assert.Equal(t, int64(3), available)
}
