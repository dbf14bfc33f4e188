// Package services implements the business rules of the admin dashboard
package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/hasnain-nisan/admindash/internal/db"
)

// Service errors
var (
	ErrInvalidInput        = errors.New("invalid input")
	ErrConflict            = errors.New("conflict")
	ErrUserNotFound        = errors.New("user not found")
	ErrClientNotFound      = errors.New("client not found")
	ErrProjectNotFound     = errors.New("project not found")
	ErrStakeholderNotFound = errors.New("stakeholder not found")
	ErrInterviewNotFound   = errors.New("interview not found")
	ErrConfigNotFound      = errors.New("config not found")
)

// notFound joins sentinel to err when err is a missing-row error
func notFound(sentinel, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errors.Join(sentinel, err)
	}
	return err
}

// conflict joins ErrConflict to err when err is a unique constraint violation
func conflict(err error) error {
	if db.IsDuplicateKeyError(err) {
		return errors.Join(ErrConflict, err)
	}
	return err
}

func invalid(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}
