package repository

import (
	"context"

	domainaccount "github.com/dajham/bankcore/pkg/domain/account"
	repo "github.com/dajham/bankcore/pkg/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type accountRepository struct {
	db *gorm.DB
}

// NewAccountRepository creates an account repository using the provided
// *gorm.DB (which may be a transaction session).
func NewAccountRepository(db *gorm.DB) repo.AccountRepository {
	return &accountRepository{db: db}
}

// Create implements repository.AccountRepository.
func (r *accountRepository) Create(ctx context.Context, a *domainaccount.Account) error {
	m := mapAccountToModel(a)
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return MapGormErrorToDomain(err)
	}
	a.CreatedAt = m.CreatedAt
	a.UpdatedAt = m.UpdatedAt
	return nil
}

// Update implements repository.AccountRepository. The write is conditioned
// on the version the aggregate was loaded with; the version advances by one
// atomically with the balance write.
func (r *accountRepository) Update(ctx context.Context, a *domainaccount.Account) error {
	result := r.db.WithContext(ctx).
		Model(&Account{}).
		Where("id = ? AND version = ?", a.ID, a.Version).
		Updates(map[string]any{
			"balance": a.Balance.Decimal(),
			"version": a.Version + 1,
		})
	if result.Error != nil {
		return MapGormErrorToDomain(result.Error)
	}
	if result.RowsAffected == 0 {
		// Re-read to tell a vanished row from a lost version race.
		var count int64
		if err := r.db.WithContext(ctx).
			Model(&Account{}).
			Where("id = ?", a.ID).
			Count(&count).Error; err != nil {
			return MapGormErrorToDomain(err)
		}
		if count == 0 {
			return domainaccount.ErrAccountNotFound
		}
		return domainaccount.ErrConcurrentModification
	}
	a.Version++
	return nil
}

// Get implements repository.AccountRepository.
func (r *accountRepository) Get(ctx context.Context, id uuid.UUID) (*domainaccount.Account, error) {
	var m Account
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, MapGormErrorToDomain(err)
	}
	return mapModelToAccount(&m)
}

// GetByNumber implements repository.AccountRepository.
func (r *accountRepository) GetByNumber(ctx context.Context, number string) (*domainaccount.Account, error) {
	var m Account
	if err := r.db.WithContext(ctx).First(&m, "account_number = ?", number).Error; err != nil {
		return nil, MapGormErrorToDomain(err)
	}
	return mapModelToAccount(&m)
}

// ExistsByNumber implements repository.AccountRepository.
func (r *accountRepository) ExistsByNumber(ctx context.Context, number string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Account{}).
		Where("account_number = ?", number).
		Count(&count).Error
	if err != nil {
		return false, MapGormErrorToDomain(err)
	}
	return count > 0, nil
}

// Delete implements repository.AccountRepository.
func (r *accountRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&Account{}, "id = ?", id)
	if result.Error != nil {
		return MapGormErrorToDomain(result.Error)
	}
	if result.RowsAffected == 0 {
		return domainaccount.ErrAccountNotFound
	}
	return nil
}
