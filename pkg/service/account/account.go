// Package account provides the application service for opening accounts and
// performing single-account operations through the unit of work.
package account

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/dajham/bankcore/pkg/config"
	domainaccount "github.com/dajham/bankcore/pkg/domain/account"
	"github.com/dajham/bankcore/pkg/domain/money"
	"github.com/dajham/bankcore/pkg/repository"
	"github.com/google/uuid"
)

// Service creates accounts with store-verified-unique numbers and applies
// single-account deposits and withdrawals.
type Service struct {
	uow     repository.UnitOfWork
	numbers NumberGenerator
	cfg     config.AccountNumbers
	logger  *slog.Logger
}

// NewService creates a new Service with the provided unit of work, number
// generator and retry configuration.
func NewService(
	uow repository.UnitOfWork,
	numbers NumberGenerator,
	cfg config.AccountNumbers,
	logger *slog.Logger,
) *Service {
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 5
	}
	return &Service{uow: uow, numbers: numbers, cfg: cfg, logger: logger}
}

// CreateAccount opens a new account for the given owner with the given
// opening balance (zero allowed, negative rejected with ErrInvalidAmount).
//
// A candidate number is generated per attempt; the existence pre-check is an
// optimization only, and the store's unique constraint decides a true race.
// Both collision paths re-enter a bounded retry loop with a short backoff.
func (s *Service) CreateAccount(
	ctx context.Context,
	ownerID uuid.UUID,
	initialBalance money.Money,
) (*domainaccount.Account, error) {
	if initialBalance.IsNegative() {
		return nil, domainaccount.ErrInvalidAmount
	}

	var lastErr error
	for attempt := 0; attempt < s.cfg.MaxAttempts; attempt++ {
		if attempt > 0 && s.cfg.Backoff > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(s.cfg.Backoff):
			}
		}

		number := s.numbers.Generate()

		accounts, err := s.uow.AccountRepository()
		if err != nil {
			return nil, err
		}
		taken, err := accounts.ExistsByNumber(ctx, number)
		if err != nil {
			return nil, err
		}
		if taken {
			s.logger.Warn("account number collision on pre-check, regenerating",
				"number", number, "attempt", attempt+1)
			lastErr = domainaccount.ErrDuplicateAccountNumber
			continue
		}

		a, err := domainaccount.New().
			WithOwnerID(ownerID).
			WithNumber(number).
			WithBalance(initialBalance).
			Build()
		if err != nil {
			return nil, err
		}

		err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
			repo, err := uow.AccountRepository()
			if err != nil {
				return err
			}
			return repo.Create(ctx, a)
		})
		if errors.Is(err, domainaccount.ErrDuplicateAccountNumber) {
			// Lost a race to a concurrent creation proposing the same
			// number; the insert is the authority, so retry.
			s.logger.Warn("account number collision on insert, regenerating",
				"number", number, "attempt", attempt+1)
			lastErr = err
			continue
		}
		if err != nil {
			return nil, err
		}

		s.logger.Info("account created",
			"account_id", a.ID, "number", a.Number, "owner_id", ownerID)
		return a, nil
	}
	return nil, lastErr
}

// Deposit adds funds to the account and persists it under the optimistic
// version check.
func (s *Service) Deposit(
	ctx context.Context,
	accountID uuid.UUID,
	amount money.Money,
) (*domainaccount.Account, error) {
	return s.mutate(ctx, accountID, func(a *domainaccount.Account) error {
		return a.Deposit(amount)
	})
}

// Withdraw removes funds from the account and persists it under the
// optimistic version check.
func (s *Service) Withdraw(
	ctx context.Context,
	accountID uuid.UUID,
	amount money.Money,
) (*domainaccount.Account, error) {
	return s.mutate(ctx, accountID, func(a *domainaccount.Account) error {
		return a.Withdraw(amount)
	})
}

// mutate loads the account, applies the domain mutation and saves it in one
// unit of work. Domain failures leave the stored account untouched.
func (s *Service) mutate(
	ctx context.Context,
	accountID uuid.UUID,
	fn func(a *domainaccount.Account) error,
) (*domainaccount.Account, error) {
	var result *domainaccount.Account
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		a, err := repo.Get(ctx, accountID)
		if err != nil {
			return err
		}
		if err := fn(a); err != nil {
			return err
		}
		if err := repo.Update(ctx, a); err != nil {
			return err
		}
		result = a
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// GetAccount retrieves an account by id.
func (s *Service) GetAccount(ctx context.Context, accountID uuid.UUID) (*domainaccount.Account, error) {
	accounts, err := s.uow.AccountRepository()
	if err != nil {
		return nil, err
	}
	return accounts.Get(ctx, accountID)
}

// GetAccountByNumber retrieves an account by its human-facing number.
func (s *Service) GetAccountByNumber(ctx context.Context, number string) (*domainaccount.Account, error) {
	accounts, err := s.uow.AccountRepository()
	if err != nil {
		return nil, err
	}
	return accounts.GetByNumber(ctx, number)
}

// GetBalance returns the current balance of an account.
func (s *Service) GetBalance(ctx context.Context, accountID uuid.UUID) (money.Money, error) {
	a, err := s.GetAccount(ctx, accountID)
	if err != nil {
		return money.Zero(), err
	}
	return a.Balance, nil
}

// GetTransactions lists the transfer records touching an account.
func (s *Service) GetTransactions(ctx context.Context, accountID uuid.UUID) ([]*domainaccount.Transaction, error) {
	txs, err := s.uow.TransactionRepository()
	if err != nil {
		return nil, err
	}
	return txs.ListByAccount(ctx, accountID)
}
