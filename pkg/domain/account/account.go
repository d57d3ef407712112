// Package account contains the ledger's aggregate roots: the Account, whose
// balance invariants are enforced before any persistence, and the immutable
// Transaction fact recorded for every completed transfer.
package account

import (
	"errors"
	"time"

	"github.com/dajham/bankcore/pkg/domain/money"
	"github.com/google/uuid"
)

var (
	// ErrInvalidAmount is returned when an operation receives a non-positive
	// or malformed amount, or when an account is opened with a negative
	// initial balance.
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrInsufficientFunds is returned when a withdrawal would drive the
	// balance below zero.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrAccountNotFound is returned when an account cannot be found.
	ErrAccountNotFound = errors.New("account not found")

	// ErrCannotTransferToSameAccount is returned when a transfer names the
	// same account as source and target.
	ErrCannotTransferToSameAccount = errors.New("cannot transfer to same account")

	// ErrConcurrentModification is returned when an optimistic version check
	// loses a race. The failed request had no effect and is safe to retry.
	ErrConcurrentModification = errors.New("account was modified concurrently, retry the operation")

	// ErrDuplicateAccountNumber is returned by the store when an account
	// number collides with an existing one. The account service retries
	// generation; callers never see this once a retry succeeds.
	ErrDuplicateAccountNumber = errors.New("account number already exists")
)

// Account is a bank account aggregate. It owns a monetary balance and is the
// only place deposit and withdrawal rules are enforced.
//
// Invariants:
//   - Balance is never negative after any completed operation.
//   - Number is globally unique and immutable after creation.
//   - Version is an opaque optimistic-concurrency token owned by the store;
//     the domain never interprets it beyond carrying it through a save.
type Account struct {
	ID        uuid.UUID
	Number    string
	OwnerID   uuid.UUID
	Balance   money.Money
	Version   int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Builder provides a fluent API for constructing Account instances, both for
// opening new accounts and for hydrating persisted ones.
type Builder struct {
	id        uuid.UUID
	number    string
	ownerID   uuid.UUID
	balance   money.Money
	version   int64
	createdAt time.Time
	updatedAt time.Time
}

// New creates a Builder with a fresh identity and a zero balance.
func New() *Builder {
	return &Builder{
		id:        uuid.New(),
		createdAt: time.Now().UTC(),
	}
}

// WithID sets the identity, for hydrating an existing account.
func (b *Builder) WithID(id uuid.UUID) *Builder {
	b.id = id
	return b
}

// WithNumber sets the human-facing account number. Mandatory.
func (b *Builder) WithNumber(number string) *Builder {
	b.number = number
	return b
}

// WithOwnerID sets the owning user's identifier. Mandatory. The core does not
// interpret it.
func (b *Builder) WithOwnerID(ownerID uuid.UUID) *Builder {
	b.ownerID = ownerID
	return b
}

// WithBalance sets the opening balance. Defaults to 0.00.
func (b *Builder) WithBalance(balance money.Money) *Builder {
	b.balance = balance
	return b
}

// WithVersion sets the optimistic-concurrency token, for hydrating an
// existing account from the store.
func (b *Builder) WithVersion(version int64) *Builder {
	b.version = version
	return b
}

// WithCreatedAt sets the creation timestamp, for hydration.
func (b *Builder) WithCreatedAt(t time.Time) *Builder {
	b.createdAt = t
	return b
}

// WithUpdatedAt sets the last-updated timestamp, for hydration.
func (b *Builder) WithUpdatedAt(t time.Time) *Builder {
	b.updatedAt = t
	return b
}

// Build validates all invariants and returns the Account.
func (b *Builder) Build() (*Account, error) {
	if b.ownerID == uuid.Nil {
		return nil, errors.New("ownerID is required")
	}
	if b.number == "" {
		return nil, errors.New("account number is required")
	}
	if b.balance.IsNegative() {
		return nil, ErrInvalidAmount
	}
	return &Account{
		ID:        b.id,
		Number:    b.number,
		OwnerID:   b.ownerID,
		Balance:   b.balance,
		Version:   b.version,
		CreatedAt: b.createdAt,
		UpdatedAt: b.updatedAt,
	}, nil
}

// Deposit adds funds to the account.
//
// Fails with ErrInvalidAmount if the amount is not positive. There is no
// upper bound. On failure the account is unchanged.
func (a *Account) Deposit(amount money.Money) error {
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}
	a.Balance = a.Balance.Add(amount)
	return nil
}

// Withdraw removes funds from the account.
//
// Fails with ErrInvalidAmount if the amount is not positive and with
// ErrInsufficientFunds if the balance would go negative. Both checks run
// before any mutation; on failure the account is unchanged.
func (a *Account) Withdraw(amount money.Money) error {
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}
	if a.Balance.LessThan(amount) {
		return ErrInsufficientFunds
	}
	a.Balance = a.Balance.Sub(amount)
	return nil
}

// HasSufficientBalance reports whether the balance covers the given amount.
// It is a read-only helper; Withdraw re-checks internally so there is no
// check-then-act gap inside a single call.
func (a *Account) HasSufficientBalance(amount money.Money) bool {
	return !a.Balance.LessThan(amount)
}
