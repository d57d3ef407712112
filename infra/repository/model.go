package repository

import (
	"time"

	domainaccount "github.com/dajham/bankcore/pkg/domain/account"
	"github.com/dajham/bankcore/pkg/domain/money"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Account represents an account record in the database. The version column
// is the optimistic-concurrency token; every successful update advances it
// by exactly one.
type Account struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Number    string          `gorm:"column:account_number;type:varchar(32);uniqueIndex;not null"`
	OwnerID   uuid.UUID       `gorm:"type:uuid;index;not null"`
	Balance   decimal.Decimal `gorm:"type:numeric(19,2);not null"`
	Version   int64           `gorm:"not null;default:0"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName specifies the table name for the Account model.
func (Account) TableName() string {
	return "accounts"
}

// Transaction represents a transfer fact record in the database. Rows are
// append-only.
type Transaction struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey"`
	SourceAccountID uuid.UUID       `gorm:"type:uuid;index;not null"`
	TargetAccountID uuid.UUID       `gorm:"type:uuid;index;not null"`
	Amount          decimal.Decimal `gorm:"type:numeric(19,2);not null"`
	ReferenceCode   string          `gorm:"type:varchar(64);uniqueIndex;not null"`
	CreatedAt       time.Time
}

// TableName specifies the table name for the Transaction model.
func (Transaction) TableName() string {
	return "transactions"
}

// mapAccountToModel maps the domain aggregate to its GORM model.
func mapAccountToModel(a *domainaccount.Account) Account {
	return Account{
		ID:        a.ID,
		Number:    a.Number,
		OwnerID:   a.OwnerID,
		Balance:   a.Balance.Decimal(),
		Version:   a.Version,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

// mapModelToAccount hydrates the domain aggregate from a GORM model.
func mapModelToAccount(m *Account) (*domainaccount.Account, error) {
	balance, err := money.New(m.Balance)
	if err != nil {
		return nil, err
	}
	return domainaccount.New().
		WithID(m.ID).
		WithNumber(m.Number).
		WithOwnerID(m.OwnerID).
		WithBalance(balance).
		WithVersion(m.Version).
		WithCreatedAt(m.CreatedAt).
		WithUpdatedAt(m.UpdatedAt).
		Build()
}

// mapTransactionToModel maps the domain fact record to its GORM model.
func mapTransactionToModel(t *domainaccount.Transaction) Transaction {
	return Transaction{
		ID:              t.ID,
		SourceAccountID: t.SourceAccountID,
		TargetAccountID: t.TargetAccountID,
		Amount:          t.Amount.Decimal(),
		ReferenceCode:   t.ReferenceCode,
		CreatedAt:       t.CreatedAt,
	}
}

// mapModelToTransaction hydrates the domain fact record from a GORM model.
func mapModelToTransaction(m *Transaction) (*domainaccount.Transaction, error) {
	amount, err := money.New(m.Amount)
	if err != nil {
		return nil, err
	}
	return &domainaccount.Transaction{
		ID:              m.ID,
		SourceAccountID: m.SourceAccountID,
		TargetAccountID: m.TargetAccountID,
		Amount:          amount,
		ReferenceCode:   m.ReferenceCode,
		CreatedAt:       m.CreatedAt,
	}, nil
}
