package main

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	sqlite3 "github.com/mattn/go-sqlite3"
)

// Sentinel errors let callers branch on the failure class while the wrapped
// details carry the human-readable message the API returns.
var (
	ErrValidation = errors.New("invalid request")
	ErrNotFound   = errors.New("record not found")
	ErrConflict   = errors.New("conflicting record")
)

type RequestError struct {
	Err     error
	Details string
}

func (e *RequestError) Error() string {
	if e.Details != "" {
		return e.Details
	}
	return e.Err.Error()
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

func validationErr(format string, a ...interface{}) error {
	return &RequestError{Err: ErrValidation, Details: fmt.Sprintf(format, a...)}
}

func notFoundErr(format string, a ...interface{}) error {
	return &RequestError{Err: ErrNotFound, Details: fmt.Sprintf(format, a...)}
}

func conflictErr(format string, a ...interface{}) error {
	return &RequestError{Err: ErrConflict, Details: fmt.Sprintf(format, a...)}
}

// storeErr converts driver-level constraint failures into the request error
// taxonomy. Uniqueness only guards bill numbers and foreign keys only guard
// line references, so the mapping is unambiguous.
func storeErr(err error) error {
	var serr sqlite3.Error
	if errors.As(err, &serr) {
		switch serr.ExtendedCode {
		case sqlite3.ErrConstraintUnique, sqlite3.ErrConstraintPrimaryKey:
			return conflictErr("bill number already exists")
		case sqlite3.ErrConstraintForeignKey:
			return notFoundErr("referenced record does not exist")
		}
	}
	if errors.Is(err, sql.ErrNoRows) {
		return notFoundErr("record not found")
	}
	return err
}

func errStatus(err error) int {
	switch {
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

func abortErr(c *gin.Context, err error) {
	c.JSON(errStatus(err), gin.H{"message": err.Error()})
}
