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
	ErrNotFound      = fmt.Errorf("user %w", apperr.ErrNotFound)
	ErrUsernameTaken = fmt.Errorf("username %w", apperr.ErrConflict)
)

// User is the stored account. PasswordHash never leaves the service layer.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
	FirstName    string
	LastName     string
	IsAdmin      bool
}

// View is the wire shape of a user.
type View struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	IsAdmin   bool   `json:"isAdmin"`
}

func (u User) View() View {
	return View{
		ID:        u.ID,
		Username:  u.Username,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		IsAdmin:   u.IsAdmin,
	}
}

type CreateRequest struct {
	Username  string `json:"username"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	IsAdmin   bool   `json:"isAdmin"`
}

func (r CreateRequest) Validate() error {
	var c validation.Checker
	checkAccount(&c, r.Username, r.Password, r.FirstName, r.LastName)
	return c.Err()
}

// EditRequest replaces every editable field. The admin flag is not editable.
type EditRequest struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

func (r EditRequest) Validate() error {
	var c validation.Checker
	c.Check("id", r.ID, "required,gt=0", "User ID is required")
	checkAccount(&c, r.Username, r.Password, r.FirstName, r.LastName)
	return c.Err()
}

func checkAccount(c *validation.Checker, username, password, firstName, lastName string) {
	c.Check("username", strings.TrimSpace(username), "required,min=3,max=50", "Username must be between 3 and 50 characters")
	c.Check("password", password, "required,min=6,max=100", "Password must be between 6 and 100 characters")
	c.Check("firstName", strings.TrimSpace(firstName), "required,max=50", "First name is required and cannot exceed 50 characters")
	c.Check("lastName", strings.TrimSpace(lastName), "required,max=50", "Last name is required and cannot exceed 50 characters")
}

// SortFields lists the keys accepted by user search.
var SortFields = paging.NewSortFields(map[string]string{
	"id":        "u.id",
	"username":  "u.username",
	"firstName": "u.first_name",
	"lastName":  "u.last_name",
	"isAdmin":   "u.is_admin",
})

type SearchFilter struct {
	Username  string
	FirstName string
	LastName  string
	IsAdmin   *bool
	Page      paging.Params
}

// ParseSearchFilter reads user search query parameters.
func ParseSearchFilter(values url.Values) (SearchFilter, error) {
	var c validation.Checker
	f := SearchFilter{
		Username:  values.Get("username"),
		FirstName: values.Get("firstName"),
		LastName:  values.Get("lastName"),
		IsAdmin:   paging.OptionalBool(values, "isAdmin", &c),
		Page:      paging.ParseParamsInto(values, &c),
	}
	c.Check("username", f.Username, "max=50", "Username filter cannot exceed 50 characters")
	c.Check("firstName", f.FirstName, "max=50", "First name filter cannot exceed 50 characters")
	c.Check("lastName", f.LastName, "max=50", "Last name filter cannot exceed 50 characters")
	return f, c.Err()
}
