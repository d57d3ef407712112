package repository

import (
	"context"
	"errors"

	domainaccount "github.com/dajham/bankcore/pkg/domain/account"
	repo "github.com/dajham/bankcore/pkg/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates an append-only transaction repository
// using the provided *gorm.DB (which may be a transaction session).
func NewTransactionRepository(db *gorm.DB) repo.TransactionRepository {
	return &transactionRepository{db: db}
}

// Create implements repository.TransactionRepository.
func (r *transactionRepository) Create(ctx context.Context, t *domainaccount.Transaction) error {
	m := mapTransactionToModel(t)
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return MapGormErrorToDomain(err)
	}
	return nil
}

// Get implements repository.TransactionRepository.
func (r *transactionRepository) Get(ctx context.Context, id uuid.UUID) (*domainaccount.Transaction, error) {
	var m Transaction
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainaccount.ErrTransactionNotFound
		}
		return nil, MapGormErrorToDomain(err)
	}
	return mapModelToTransaction(&m)
}

// ListByAccount implements repository.TransactionRepository.
func (r *transactionRepository) ListByAccount(ctx context.Context, accountID uuid.UUID) ([]*domainaccount.Transaction, error) {
	var ms []Transaction
	err := r.db.WithContext(ctx).
		Where("source_account_id = ? OR target_account_id = ?", accountID, accountID).
		Order("created_at DESC").
		Find(&ms).Error
	if err != nil {
		return nil, MapGormErrorToDomain(err)
	}
	result := make([]*domainaccount.Transaction, 0, len(ms))
	for i := range ms {
		t, err := mapModelToTransaction(&ms[i])
		if err != nil {
			return nil, err
		}
		result = append(result, t)
	}
	return result, nil
}
