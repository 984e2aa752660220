package domain

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/fmi-projects/project-management-api/internal/apperr"
	"github.com/fmi-projects/project-management-api/internal/paging"
	"github.com/fmi-projects/project-management-api/internal/validation"
)

var (
	ErrNotFound          = fmt.Errorf("project %w", apperr.ErrNotFound)
	ErrOwnerNotFound     = fmt.Errorf("project owner %w", apperr.ErrNotFound)
	ErrNotOwner          = fmt.Errorf("only the project owner may change it: %w", apperr.ErrForbidden)
	ErrCategoryNotLinked = fmt.Errorf("project category link %w", apperr.ErrNotFound)
)

// Project is the stored row.
type Project struct {
	ID          int64  `json:"id"`
	OwnerID     int64  `json:"ownerId"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Summary is the list shape: the title is exposed as name and related rows
// are flattened to their category names and comment contents.
type Summary struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	OwnerID     int64    `json:"ownerId"`
	OwnerName   string   `json:"ownerName"`
	Categories  []string `json:"categories"`
	Comments    []string `json:"comments"`
}

// Request is the body of both create and update. The owner is always the caller.
type Request struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

func (r Request) Validate() error {
	var c validation.Checker
	c.Check("title", strings.TrimSpace(r.Title), "required,min=3,max=100", "Project title must be between 3 and 100 characters")
	c.Check("description", r.Description, "max=2000", "Description cannot exceed 2000 characters")
	return c.Err()
}

// SortFields lists the keys accepted by project search. "title" is an alias
// of "name".
var SortFields = paging.NewSortFields(map[string]string{
	"id":        "p.id",
	"name":      "p.title",
	"title":     "p.title",
	"ownerName": "u.username",
})

type SearchFilter struct {
	Title         string
	Description   string
	OwnerUsername string
	OwnerID       *int64
	CategoryID    *int64
	Page          paging.Params
}

func ParseSearchFilter(values url.Values) (SearchFilter, error) {
	var c validation.Checker
	f := SearchFilter{
		Title:         values.Get("title"),
		Description:   values.Get("description"),
		OwnerUsername: values.Get("ownerUsername"),
		OwnerID:       paging.OptionalInt64(values, "ownerId", &c),
		CategoryID:    paging.OptionalInt64(values, "categoryId", &c),
		Page:          paging.ParseParamsInto(values, &c),
	}
	c.Check("title", f.Title, "max=100", "Title filter cannot exceed 100 characters")
	c.Check("description", f.Description, "max=100", "Description filter cannot exceed 100 characters")
	c.Check("ownerUsername", f.OwnerUsername, "max=50", "Owner username filter cannot exceed 50 characters")
	return f, c.Err()
}
