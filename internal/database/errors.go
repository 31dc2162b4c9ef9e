package database

import (
	"errors"

	"github.com/lib/pq"
)

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrAdminNotFound   = errors.New("admin not found")
	ErrProductNotFound = errors.New("product not found")
	ErrOrderNotFound   = errors.New("order not found")
	ErrUsernameTaken   = errors.New("username already exists")
)

// IsUniqueViolation reports whether err is a postgres unique constraint
// failure (code 23505), e.g. a duplicate username on registration.
func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return false
}
