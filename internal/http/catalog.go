package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"locallibrary/internal/auth"
	"locallibrary/internal/catalog"
	"locallibrary/internal/entities"
)

// CatalogStore is the read surface of internal/database/catalog.Repository
// that the pages need.
type CatalogStore interface {
	GetAllBooks() ([]entities.Book, error)
	GetBookByID(id uint) (*entities.Book, error)
	SearchBooksByTitle(query string, limit, offset int) ([]entities.Book, int64, error)
}

// LoanStore is the read surface of internal/database/instances.Repository
// used by the borrowed-books page.
type LoanStore interface {
	GetLoansForBorrower(userID uint, limit, offset int) ([]entities.BookInstance, int64, error)
}

// CatalogController serves the public catalog pages and the signed-in
// borrowed-books page.
type CatalogController struct {
	store   CatalogStore
	loans   LoanStore
	summary *catalog.SummaryProvider
}

// NewCatalogController creates a new catalog controller.
func NewCatalogController(store CatalogStore, loans LoanStore, summary *catalog.SummaryProvider) *CatalogController {
	return &CatalogController{
		store:   store,
		loans:   loans,
		summary: summary,
	}
}

// IndexPage renders the landing page with catalog aggregates.
func (ctrl *CatalogController) IndexPage(c *gin.Context) {
	summary, err := ctrl.summary.Summary()
	if err != nil {
		c.String(http.StatusInternalServerError, "Error loading catalog summary: %s", err.Error())
		return
	}

	c.HTML(http.StatusOK, "index", templateContext(c, gin.H{
		"Title":                 "Local Library",
		"NumBooks":              summary.NumBooks,
		"NumInstances":          summary.NumInstances,
		"NumInstancesAvailable": summary.NumInstancesAvailable,
		"NumAuthors":            summary.NumAuthors,
	}))
}

// BookListPage renders every book in the catalog.
func (ctrl *CatalogController) BookListPage(c *gin.Context) {
	books, err := ctrl.store.GetAllBooks()
	if err != nil {
		c.String(http.StatusInternalServerError, "Error loading books: %s", err.Error())
		return
	}

	c.HTML(http.StatusOK, "book-list", templateContext(c, gin.H{
		"Title": "All Books",
		"Books": books,
	}))
}

// BookDetailPage renders one book with its copies, or 404.
func (ctrl *CatalogController) BookDetailPage(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	book, err := ctrl.store.GetBookByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.String(http.StatusNotFound, "Book not found")
			return
		}
		c.String(http.StatusInternalServerError, "Error loading book: %s", err.Error())
		return
	}

	c.HTML(http.StatusOK, "book-detail", templateContext(c, gin.H{
		"Title": book.Title,
		"Book":  book,
	}))
}

// SearchPage renders books whose title contains the query, 10 per page.
// An empty or absent query lists the whole catalog.
func (ctrl *CatalogController) SearchPage(c *gin.Context) {
	query := c.Query("q")
	page := pageParam(c)

	books, total, err := ctrl.store.SearchBooksByTitle(query, PageSize, (page-1)*PageSize)
	if err == nil && page > pageCount(PageSize, total) {
		// Out-of-range page: land on the last page instead of an empty list
		page = pageCount(PageSize, total)
		books, total, err = ctrl.store.SearchBooksByTitle(query, PageSize, (page-1)*PageSize)
	}
	if err != nil {
		c.String(http.StatusInternalServerError, "Error searching books: %s", err.Error())
		return
	}

	c.HTML(http.StatusOK, "search-results", templateContext(c, gin.H{
		"Title":      "Search Results",
		"Query":      query,
		"Books":      books,
		"Pagination": newPagination(page, PageSize, total),
	}))
}

// MyBooksPage renders the copies on loan to the signed-in user, soonest
// due first, 10 per page. The route is guarded by RequireAuth.
func (ctrl *CatalogController) MyBooksPage(c *gin.Context) {
	userID := auth.GetUserID(c)
	page := pageParam(c)

	loans, total, err := ctrl.loans.GetLoansForBorrower(userID, PageSize, (page-1)*PageSize)
	if err == nil && page > pageCount(PageSize, total) {
		page = pageCount(PageSize, total)
		loans, total, err = ctrl.loans.GetLoansForBorrower(userID, PageSize, (page-1)*PageSize)
	}
	if err != nil {
		c.String(http.StatusInternalServerError, "Error loading borrowed books: %s", err.Error())
		return
	}

	c.HTML(http.StatusOK, "my-books", templateContext(c, gin.H{
		"Title":      "My Borrowed Books",
		"Loans":      loans,
		"Pagination": newPagination(page, PageSize, total),
	}))
}
