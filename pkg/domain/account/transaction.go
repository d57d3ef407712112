package account

import (
	"errors"
	"time"

	"github.com/dajham/bankcore/pkg/domain/money"
	"github.com/google/uuid"
)

// ErrTransactionNotFound is returned when a transaction record cannot be
// found.
var ErrTransactionNotFound = errors.New("transaction not found")

// Transaction is the immutable fact record of a completed transfer between
// two accounts. It holds plain identifiers, never object references, and is
// appended exactly once per successful transfer.
//
// Invariants:
//   - SourceAccountID != TargetAccountID.
//   - Amount is strictly positive.
//   - A Transaction is never updated after construction.
type Transaction struct {
	ID              uuid.UUID
	SourceAccountID uuid.UUID
	TargetAccountID uuid.UUID
	Amount          money.Money
	ReferenceCode   string
	CreatedAt       time.Time
}

// NewTransaction constructs the fact record for a transfer. The reference
// code is a random 128-bit identifier used for external correlation.
func NewTransaction(sourceID, targetID uuid.UUID, amount money.Money) (*Transaction, error) {
	if sourceID == targetID {
		return nil, ErrCannotTransferToSameAccount
	}
	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}
	return &Transaction{
		ID:              uuid.New(),
		SourceAccountID: sourceID,
		TargetAccountID: targetID,
		Amount:          amount,
		ReferenceCode:   uuid.NewString(),
		CreatedAt:       time.Now().UTC(),
	}, nil
}
