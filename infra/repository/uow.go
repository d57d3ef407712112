// Package repository implements the persistence ports on GORM/Postgres,
// including the unit of work that makes a transfer's two account writes and
// one transaction append a single atomic commit.
package repository

import (
	"context"
	"fmt"
	"reflect"

	repo "github.com/dajham/bankcore/pkg/repository"
	"gorm.io/gorm"
)

// UoW provides transaction boundary and repository access in one abstraction.
//
// Why is GetRepository part of UoW?
// - Ensures all repositories use the same DB session/transaction for true atomicity.
// - Keeps service code clean and focused on business logic.
// - Centralizes repository wiring and registry for maintainability.
// - Prevents accidental use of the wrong DB session (which would break transactionality).
type UoW struct {
	db           *gorm.DB
	tx           *gorm.DB
	repoRegistry map[reflect.Type]func(*gorm.DB) any
}

// NewUoW creates a new UoW for the given *gorm.DB.
func NewUoW(db *gorm.DB) *UoW {
	return &UoW{
		db: db,
		repoRegistry: map[reflect.Type]func(*gorm.DB) any{
			reflect.TypeOf((*repo.AccountRepository)(nil)).Elem():     func(db *gorm.DB) any { return NewAccountRepository(db) },
			reflect.TypeOf((*repo.TransactionRepository)(nil)).Elem(): func(db *gorm.DB) any { return NewTransactionRepository(db) },
		},
	}
}

// Do runs the given function in a transaction boundary, providing a UoW with
// repository access bound to that transaction. If fn returns an error the
// transaction is rolled back and nothing is persisted.
func (u *UoW) Do(ctx context.Context, fn func(uow repo.UnitOfWork) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txnUow := &UoW{db: u.db, tx: tx, repoRegistry: u.repoRegistry}
		return fn(txnUow)
	})
}

// session returns the transaction handle when inside Do, the root handle
// otherwise.
func (u *UoW) session() *gorm.DB {
	if u.tx != nil {
		return u.tx
	}
	return u.db
}

// GetRepository provides generic, type-safe access to repositories using the
// current session.
func (u *UoW) GetRepository(repoType reflect.Type) (any, error) {
	constructor, ok := u.repoRegistry[repoType]
	if !ok {
		return nil, fmt.Errorf("unsupported repository type: %v", repoType)
	}
	return constructor(u.session()), nil
}

// AccountRepository returns the account repository bound to the current
// session.
func (u *UoW) AccountRepository() (repo.AccountRepository, error) {
	r, err := u.GetRepository(reflect.TypeOf((*repo.AccountRepository)(nil)).Elem())
	if err != nil {
		return nil, err
	}
	return r.(repo.AccountRepository), nil
}

// TransactionRepository returns the transaction repository bound to the
// current session.
func (u *UoW) TransactionRepository() (repo.TransactionRepository, error) {
	r, err := u.GetRepository(reflect.TypeOf((*repo.TransactionRepository)(nil)).Elem())
	if err != nil {
		return nil, err
	}
	return r.(repo.TransactionRepository), nil
}
