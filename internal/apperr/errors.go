// Package apperr holds the error kinds shared by every domain package.
//
// Domain packages wrap these kinds in their own sentinels, e.g.
//
//	var ErrNotFound = fmt.Errorf("comment %w", apperr.ErrNotFound)
//
// so the HTTP layer can map any of them with errors.Is.
package apperr

import "errors"

var (
	ErrNotFound        = errors.New("not found")
	ErrForbidden       = errors.New("forbidden")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrConflict        = errors.New("already exists")
	ErrTooManyAttempts = errors.New("too many attempts")
)
