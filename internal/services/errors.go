package services

import (
	"errors"
	"sort"
	"strings"

	"gorm.io/gorm"
)

var (
	ErrInvalidCredentials   = errors.New("incorrect credentials")
	ErrPasswordTooShort     = errors.New("password too short")
	ErrPasswordMismatch     = errors.New("passwords do not match")
	ErrCurrentPasswordWrong = errors.New("current password is incorrect")
	ErrFailedToHashPassword = errors.New("failed to hash password")
)

// ValidationError reports one or more invalid input fields.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// fieldErrors collects field messages while validating an input.
type fieldErrors map[string]string

func (f fieldErrors) require(field, value string) {
	if strings.TrimSpace(value) == "" {
		f[field] = "is required"
	}
}

func (f fieldErrors) err() error {
	if len(f) == 0 {
		return nil
	}
	return &ValidationError{Fields: f}
}

// isDuplicate reports whether err is a unique constraint violation.
func isDuplicate(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// checkNewPassword validates a new password and its confirmation.
func checkNewPassword(password, confirm string, minLength int) error {
	if len(password) < minLength {
		return ErrPasswordTooShort
	}
	if password != confirm {
		return ErrPasswordMismatch
	}
	return nil
}

// uniqueUint64 removes duplicates while keeping the first occurrence order.
func uniqueUint64(values []uint64) []uint64 {
	seen := make(map[uint64]struct{}, len(values))
	result := make([]uint64, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		result = append(result, v)
	}
	return result
}
