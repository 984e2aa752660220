package domain

import (
	"fmt"
	"net/url"
	"time"

	"github.com/fmi-projects/project-management-api/internal/apperr"
	"github.com/fmi-projects/project-management-api/internal/paging"
	"github.com/fmi-projects/project-management-api/internal/validation"
)

var (
	ErrNotFound  = fmt.Errorf("comment %w", apperr.ErrNotFound)
	ErrNotAuthor = fmt.Errorf("only the author may change this comment: %w", apperr.ErrForbidden)
)

// Comment is the stored row. CreatedAt is set once on insert.
type Comment struct {
	ID        int64
	Content   string
	ProjectID int64
	UserID    int64
	CreatedAt time.Time
}

// View is a comment joined with its project title and author username.
type View struct {
	ID           int64     `json:"id"`
	Content      string    `json:"content"`
	CreatedAt    time.Time `json:"createdAt"`
	ProjectID    int64     `json:"projectId"`
	ProjectTitle string    `json:"projectTitle"`
	UserID       int64     `json:"userId"`
	Username     string    `json:"username"`
}

type CreateRequest struct {
	Content   string `json:"content"`
	ProjectID int64  `json:"projectId"`
}

func (r CreateRequest) Validate() error {
	var c validation.Checker
	checkContent(&c, r.Content)
	c.Check("projectId", r.ProjectID, "required,gt=0", "Project ID is required")
	return c.Err()
}

type UpdateRequest struct {
	Content string `json:"content"`
}

func (r UpdateRequest) Validate() error {
	var c validation.Checker
	checkContent(&c, r.Content)
	return c.Err()
}

func checkContent(c *validation.Checker, content string) {
	c.Check("content", content, "required,min=1,max=1000", "Comment content must be between 1 and 1000 characters")
}

// SortFields lists the keys accepted by comment search.
var SortFields = paging.NewSortFields(map[string]string{
	"id":           "c.id",
	"content":      "c.content",
	"createdAt":    "c.created_at",
	"projectId":    "c.project_id",
	"projectTitle": "p.title",
	"userId":       "c.user_id",
	"username":     "u.username",
})

type SearchFilter struct {
	Content   string
	Username  string
	UserID    *int64
	ProjectID *int64
	FromDate  *time.Time
	ToDate    *time.Time
	Page      paging.Params
}

func ParseSearchFilter(values url.Values) (SearchFilter, error) {
	var c validation.Checker
	f := SearchFilter{
		Content:   values.Get("content"),
		Username:  values.Get("username"),
		UserID:    paging.OptionalInt64(values, "userId", &c),
		ProjectID: paging.OptionalInt64(values, "projectId", &c),
		FromDate:  paging.OptionalTime(values, "fromDate", &c),
		ToDate:    paging.OptionalTime(values, "toDate", &c),
		Page:      paging.ParseParamsInto(values, &c),
	}
	c.Check("content", f.Content, "max=100", "Content filter cannot exceed 100 characters")
	c.Check("username", f.Username, "max=50", "Username filter cannot exceed 50 characters")
	return f, c.Err()
}
