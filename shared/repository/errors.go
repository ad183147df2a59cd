package repository

import (
	"errors"
	"hotelbook/shared/constant"

	"github.com/lib/pq"
)

// PgErrorCode returns the SQLSTATE carried by err, or an empty string for non-Postgres errors.
func PgErrorCode(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}

	return ""
}

func IsUniqueViolation(err error) bool {
	return PgErrorCode(err) == constant.PqErrorCodeUniqueViolation
}

func IsForeignKeyViolation(err error) bool {
	return PgErrorCode(err) == constant.PqErrorCodeFkViolation
}

func IsExclusionViolation(err error) bool {
	return PgErrorCode(err) == constant.PqErrorCodeExclusionViolation
}

// IsContention reports lock timeouts and serialization failures, both safe for the caller to retry.
func IsContention(err error) bool {
	code := PgErrorCode(err)

	return code == constant.PqErrorCodeLockNotAvailable || code == constant.PqErrorCodeSerializationFailure
}
