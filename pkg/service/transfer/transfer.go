// Package transfer implements the transfer orchestration protocol: validate,
// debit, credit, and record a transfer as one atomic unit of work.
package transfer

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"

	"github.com/dajham/bankcore/pkg/domain/account"
	"github.com/dajham/bankcore/pkg/domain/money"
	"github.com/dajham/bankcore/pkg/repository"
	"github.com/google/uuid"
)

// Result reports a completed transfer to the caller.
type Result struct {
	TransactionID uuid.UUID
	ReferenceCode string
}

// Service orchestrates fund transfers between two accounts.
type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
}

// NewService creates a new transfer Service.
func NewService(uow repository.UnitOfWork, logger *slog.Logger) *Service {
	return &Service{uow: uow, logger: logger}
}

// Transfer moves amount from the source account to the target account.
//
// The protocol:
//  1. source == target fails with ErrCannotTransferToSameAccount before any
//     read.
//  2. Both accounts are loaded; a miss fails with ErrAccountNotFound.
//  3. Withdraw and deposit are applied in memory; insufficient funds or an
//     invalid amount fail before any write.
//  4. Both accounts are saved under their loaded versions and the transaction
//     record is appended, all in one unit of work. A stale version fails the
//     whole unit with ErrConcurrentModification and nothing is persisted.
//
// Every failure before the commit is side-effect-free. A
// ErrConcurrentModification failure is safe for the caller to retry as a
// whole; the orchestrator never retries internally.
func (s *Service) Transfer(
	ctx context.Context,
	sourceID, targetID uuid.UUID,
	amount money.Money,
) (*Result, error) {
	if sourceID == targetID {
		return nil, account.ErrCannotTransferToSameAccount
	}

	var result *Result
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		accounts, err := uow.AccountRepository()
		if err != nil {
			return err
		}

		source, err := accounts.Get(ctx, sourceID)
		if err != nil {
			return fmt.Errorf("source account %s: %w", sourceID, err)
		}
		target, err := accounts.Get(ctx, targetID)
		if err != nil {
			return fmt.Errorf("target account %s: %w", targetID, err)
		}

		if err := source.Withdraw(amount); err != nil {
			return err
		}
		if err := target.Deposit(amount); err != nil {
			return err
		}

		// The conditioned writes always run in ascending id order,
		// regardless of which side is the source, so two opposing
		// transfers over the same pair cannot deadlock on row locks.
		first, second := source, target
		if bytes.Compare(target.ID[:], source.ID[:]) < 0 {
			first, second = target, source
		}
		if err := accounts.Update(ctx, first); err != nil {
			return err
		}
		if err := accounts.Update(ctx, second); err != nil {
			return err
		}

		record, err := account.NewTransaction(sourceID, targetID, amount)
		if err != nil {
			return err
		}
		transactions, err := uow.TransactionRepository()
		if err != nil {
			return err
		}
		if err := transactions.Create(ctx, record); err != nil {
			return err
		}

		result = &Result{
			TransactionID: record.ID,
			ReferenceCode: record.ReferenceCode,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("transfer completed",
		"transaction_id", result.TransactionID,
		"reference_code", result.ReferenceCode,
		"source_account_id", sourceID,
		"target_account_id", targetID,
		"amount", amount.String(),
	)
	return result, nil
}
