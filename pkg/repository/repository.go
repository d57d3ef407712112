// Package repository defines the persistence ports the ledger core consumes.
// The domain owns these contracts; infrastructure implements them.
package repository

import (
	"context"

	"github.com/dajham/bankcore/pkg/domain/account"
	"github.com/google/uuid"
)

// AccountRepository is the persistence port for Account aggregates.
type AccountRepository interface {
	// Create inserts a new account. It fails with
	// account.ErrDuplicateAccountNumber when the account number collides
	// with an existing row; the store's uniqueness constraint is
	// authoritative over any pre-check.
	Create(ctx context.Context, a *account.Account) error

	// Update persists a mutated account, conditioned on the version the
	// aggregate was loaded with. On success the aggregate's version is
	// advanced; on a stale version it fails with
	// account.ErrConcurrentModification and nothing is written.
	Update(ctx context.Context, a *account.Account) error

	// Get retrieves an account by id, or account.ErrAccountNotFound.
	Get(ctx context.Context, id uuid.UUID) (*account.Account, error)

	// GetByNumber retrieves an account by its account number, or
	// account.ErrAccountNotFound.
	GetByNumber(ctx context.Context, number string) (*account.Account, error)

	// ExistsByNumber reports whether an account number is already taken.
	ExistsByNumber(ctx context.Context, number string) (bool, error)

	// Delete removes an account row. This is a store-level operation
	// outside domain invariants; the core never calls it during transfers.
	Delete(ctx context.Context, id uuid.UUID) error
}

// TransactionRepository is the append-only persistence port for transfer
// fact records. Records are never updated or deleted.
type TransactionRepository interface {
	// Create appends a transaction record.
	Create(ctx context.Context, tx *account.Transaction) error

	// Get retrieves a transaction by id.
	Get(ctx context.Context, id uuid.UUID) (*account.Transaction, error)

	// ListByAccount lists transactions touching the given account as either
	// source or target, newest first.
	ListByAccount(ctx context.Context, accountID uuid.UUID) ([]*account.Transaction, error)
}
