package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"locallibrary/internal/auth"
	"locallibrary/internal/loans"
)

// issueDateLayout is the wire format of the issue form's date field.
const issueDateLayout = "2006-01-02"

// IssueController serves the two-phase issue form: GET renders it with a
// proposed due date, POST validates and persists.
type IssueController struct {
	service *loans.Service
}

// NewIssueController creates a new issue controller.
func NewIssueController(service *loans.Service) *IssueController {
	return &IssueController{service: service}
}

// IssueForm renders the issue form for one copy, pre-filled with the
// proposed due date (today + 3 weeks).
func (ctrl *IssueController) IssueForm(c *gin.Context) {
	instanceID := c.Param("id")

	instance, proposed, err := ctrl.service.ProposeIssue(instanceID)
	if err != nil {
		if errors.Is(err, loans.ErrInstanceNotFound) {
			c.String(http.StatusNotFound, "Book copy not found")
			return
		}
		c.String(http.StatusInternalServerError, "Error loading book copy: %s", err.Error())
		return
	}

	c.HTML(http.StatusOK, "book-issue", templateContext(c, gin.H{
		"Title":     "Issue Book",
		"Instance":  instance,
		"IssueDate": proposed.Format(issueDateLayout),
	}))
}

// IssueSubmit handles the issue form submission. A valid date marks the
// copy on loan and redirects to the book list; a rejected date re-renders
// the form with the error and no mutation.
func (ctrl *IssueController) IssueSubmit(c *gin.Context) {
	instanceID := c.Param("id")
	rawDate := c.PostForm("issue_date")

	issueDate, parseErr := time.Parse(issueDateLayout, rawDate)
	if parseErr != nil {
		instance, proposed, err := ctrl.service.ProposeIssue(instanceID)
		if err != nil {
			if errors.Is(err, loans.ErrInstanceNotFound) {
				c.String(http.StatusNotFound, "Book copy not found")
				return
			}
			c.String(http.StatusInternalServerError, "Error loading book copy: %s", err.Error())
			return
		}
		c.HTML(http.StatusOK, "book-issue", templateContext(c, gin.H{
			"Title":     "Issue Book",
			"Instance":  instance,
			"IssueDate": proposed.Format(issueDateLayout),
			"Error":     "Enter a valid date (YYYY-MM-DD).",
		}))
		return
	}

	instance, err := ctrl.service.Issue(instanceID, issueDate, auth.GetUserID(c))
	if err != nil {
		if errors.Is(err, loans.ErrInstanceNotFound) {
			c.String(http.StatusNotFound, "Book copy not found")
			return
		}
		if loans.IsValidationError(err) {
			c.HTML(http.StatusOK, "book-issue", templateContext(c, gin.H{
				"Title":     "Issue Book",
				"Instance":  instance,
				"IssueDate": rawDate,
				"Error":     issueErrorMessage(err),
			}))
			return
		}
		c.String(http.StatusInternalServerError, "Error issuing book: %s", err.Error())
		return
	}

	c.Redirect(http.StatusSeeOther, "/books/")
}

func issueErrorMessage(err error) string {
	switch {
	case errors.Is(err, loans.ErrDateInPast):
		return "Invalid date - issue date in past."
	case errors.Is(err, loans.ErrDateTooFar):
		return "Invalid date - issue date more than 4 weeks ahead."
	default:
		return "Invalid date."
	}
}
