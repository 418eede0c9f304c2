package repository

import (
	"errors"
	"strings"

	"github.com/propertyos/rentledger/pkg/domain"
	"gorm.io/gorm"
)

// translateError maps gorm/driver errors onto the domain taxonomy. notFound is
// the sentinel to use for gorm.ErrRecordNotFound, since each entity has its
// own not-found error.
func translateError(err error, notFound error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domain.ErrAlreadyExists
	}
	if isSerializationFailure(err) {
		return domain.ErrConcurrentModification
	}
	return err
}

// isSerializationFailure detects transaction conflicts the caller should
// retry. Postgres reports SQLSTATE 40001 (serialization_failure) and 40P01
// (deadlock_detected); sqlite reports a busy database.
func isSerializationFailure(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "40001") ||
		strings.Contains(msg, "40P01") ||
		strings.Contains(msg, "deadlock") ||
		strings.Contains(msg, "database is locked")
}
