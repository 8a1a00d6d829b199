package apperr

import (
	"errors"

	"github.com/lib/pq"
)

const (
	pqUniqueViolation     = pq.ErrorCode("23505")
	pqForeignKeyViolation = pq.ErrorCode("23503")
	pqNumericOverflow     = pq.ErrorCode("22003")
)

// FromStore turns constraint violations reported by Postgres into Conflict
// errors and numeric overflow into a Validation error. Any other error is
// returned unchanged.
func FromStore(err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return err
	}
	switch pqErr.Code {
	case pqUniqueViolation:
		return &Error{Kind: ErrConflict, Message: "record already exists", Cause: err}
	case pqForeignKeyViolation:
		return &Error{Kind: ErrConflict, Message: "record is still referenced", Cause: err}
	case pqNumericOverflow:
		return &Error{Kind: ErrValidation, Message: "amount is out of range", Cause: err}
	}
	return err
}
