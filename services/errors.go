package services

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

var (
	ErrDuplicateEmail = errors.New("email already registered")
	ErrDuplicateTitle = errors.New("post title already exists")
	ErrNotFound       = errors.New("not found")
	ErrAuthFailure    = errors.New("invalid credentials")
	ErrUnauthorized   = errors.New("login required")
	ErrForbidden      = errors.New("forbidden")
)

var (
	ErrPostNotFound    = fmt.Errorf("post %w", ErrNotFound)
	ErrCommentNotFound = fmt.Errorf("comment %w", ErrNotFound)
	ErrUserNotFound    = fmt.Errorf("user %w", ErrNotFound)
)

// AuthReason says why a login failed. It is for logs and metrics only; the
// client sees the same answer either way.
type AuthReason string

const (
	ReasonUnknownEmail  AuthReason = "unknown_email"
	ReasonWrongPassword AuthReason = "wrong_password"
)

type AuthError struct {
	Reason AuthReason
}

func (e *AuthError) Error() string {
	return ErrAuthFailure.Error()
}

func (e *AuthError) Is(target error) bool {
	return target == ErrAuthFailure
}

// isUniqueViolation covers drivers that do not translate constraint errors.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") || strings.Contains(msg, "duplicate key")
}
