package domain

import (
	"fmt"
	"strings"

	"github.com/fmi-projects/project-management-api/internal/apperr"
	"github.com/fmi-projects/project-management-api/internal/validation"
)

var ErrNotFound = fmt.Errorf("category %w", apperr.ErrNotFound)

type Category struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Request is the body of both create and update.
type Request struct {
	ID          int64  `json:"id,omitempty"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (r Request) Validate() error {
	var c validation.Checker
	c.Check("name", strings.TrimSpace(r.Name), "required,min=2,max=50", "Category name must be between 2 and 50 characters")
	c.Check("description", r.Description, "max=500", "Description cannot exceed 500 characters")
	return c.Err()
}
