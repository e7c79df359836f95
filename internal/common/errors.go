package common

import (
	"errors"

	"github.com/lib/pq"
)

var (
	ErrRecordNotFound = errors.New("record not found")
	ErrForbidden      = errors.New("you are not the owner of this post")
)

const (
	pqUniqueViolation     = "23505"
	pqForeignKeyViolation = "23503"
)

// UniqueViolation reports whether err is a unique constraint violation on the named constraint.
// An empty name matches any unique constraint.
func UniqueViolation(err error, name string) bool {
	return pqErrorIs(err, pqUniqueViolation, name)
}

// ForeignKeyViolation reports whether err is a foreign key violation on the named constraint.
// An empty name matches any foreign key constraint.
func ForeignKeyViolation(err error, name string) bool {
	return pqErrorIs(err, pqForeignKeyViolation, name)
}

func pqErrorIs(err error, code pq.ErrorCode, name string) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}

	return pqErr.Code == code && (name == "" || pqErr.Constraint == name)
}
