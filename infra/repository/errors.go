package repository

import (
	"errors"

	domainaccount "github.com/dajham/bankcore/pkg/domain/account"
	"gorm.io/gorm"
)

// MapGormErrorToDomain converts GORM errors to domain errors.
// This keeps infrastructure concerns (database errors) within the
// infrastructure layer. Traverses the error chain to find GORM errors and
// maps them to appropriate domain errors.
func MapGormErrorToDomain(err error) error {
	if err == nil {
		return nil
	}

	currentErr := err
	for currentErr != nil {
		switch {
		case errors.Is(currentErr, gorm.ErrDuplicatedKey):
			return domainaccount.ErrDuplicateAccountNumber
		case errors.Is(currentErr, gorm.ErrRecordNotFound):
			return domainaccount.ErrAccountNotFound
		}
		currentErr = errors.Unwrap(currentErr)
	}

	return err
}
