package http

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"locallibrary/internal/auth"
	"locallibrary/internal/entities"
)

// PageSize is the fixed page size for the borrowed-books and search
// listings.
const PageSize = 10

// Pagination carries the page navigation state for templates.
type Pagination struct {
	Page       int
	TotalPages int
	Total      int64
	HasPrev    bool
	HasNext    bool
	PrevPage   int
	NextPage   int
}

// pageParam parses the ?page query parameter, defaulting to 1.
func pageParam(c *gin.Context) int {
	page, err := strconv.Atoi(c.Query("page"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// pageCount returns the number of pages needed for total items, at least 1.
func pageCount(pageSize int, total int64) int {
	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	if totalPages < 1 {
		totalPages = 1
	}
	return totalPages
}

// newPagination computes navigation state for a page of pageSize items out
// of total. Callers clamp the page before querying so the offset and the
// displayed page agree.
func newPagination(page, pageSize int, total int64) Pagination {
	totalPages := pageCount(pageSize, total)
	if page > totalPages {
		page = totalPages
	}
	return Pagination{
		Page:       page,
		TotalPages: totalPages,
		Total:      total,
		HasPrev:    page > 1,
		HasNext:    page < totalPages,
		PrevPage:   page - 1,
		NextPage:   page + 1,
	}
}

// parseIDParam extracts and validates an unsigned integer ID from URL
// parameters. Returns 0, false after writing a 400 response when invalid.
func parseIDParam(c *gin.Context, paramName string) (uint, bool) {
	idStr := c.Param(paramName)
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		c.String(400, "invalid %s", paramName)
		return 0, false
	}
	return uint(id), true
}

// templateContext merges the signed-in user's details into page data so
// every template can render the navigation bar.
func templateContext(c *gin.Context, data gin.H) gin.H {
	if data == nil {
		data = gin.H{}
	}
	data["IsAuthenticated"] = auth.IsAuthenticated(c)
	data["Username"] = auth.GetUsername(c)
	data["IsLibrarian"] = auth.GetUserRole(c) == entities.UserRoleLibrarian
	data["CSRFToken"] = auth.GetCSRFToken(c)
	return data
}
