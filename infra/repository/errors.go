package repository

import (
	"errors"

	"github.com/amirasaad/minibank/pkg/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MapGormErrorToDomain converts GORM errors to domain errors.
// Traverses the error chain to find GORM errors and maps them to appropriate
// domain errors. kind and id describe the entity being accessed and are used
// for not-found errors.
func MapGormErrorToDomain(err error, kind domain.Kind, id string) error {
	if err == nil {
		return nil
	}

	currentErr := err
	for currentErr != nil {
		switch {
		case errors.Is(currentErr, gorm.ErrDuplicatedKey):
			return domain.ErrAlreadyExists
		case errors.Is(currentErr, gorm.ErrRecordNotFound):
			return domain.NewNotFound(kind, id)
		}
		currentErr = errors.Unwrap(currentErr)
	}

	return err
}

// WrapError wraps a GORM operation and automatically maps errors.
//
// Usage:
//
//	err := WrapError(domain.KindUser, u.ID, func() error {
//	    return r.db.WithContext(ctx).Create(&m).Error
//	})
func WrapError(kind domain.Kind, id string, op func() error) error {
	return MapGormErrorToDomain(op(), kind, id)
}

// validID reports whether id can be a primary key. Ids are uuids; anything
// else cannot exist and is reported as not found without a query.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
