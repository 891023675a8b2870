package services

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	apperrors "pennywise/internal/errors"
)

// dbError maps a gorm error to an AppError. Errors that are already AppErrors
// (for example from model hooks) pass through unchanged.
func dbError(err error, notFound, duplicate *apperrors.AppError) error {
	var appErr *apperrors.AppError
	switch {
	case errors.As(err, &appErr):
		return appErr
	case notFound != nil && errors.Is(err, gorm.ErrRecordNotFound):
		return notFound
	case duplicate != nil && errors.Is(err, gorm.ErrDuplicatedKey):
		return duplicate
	default:
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
}

// validID reports whether id is a well-formed UUID. Malformed ids are treated
// like ids that do not exist.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
