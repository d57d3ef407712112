package fakes

import (
	"context"

	"github.com/dajham/bankcore/pkg/domain/account"
	"github.com/google/uuid"
)

type accountRepo struct {
	root   *UnitOfWork
	staged *staging
}

func (r *accountRepo) Create(_ context.Context, a *account.Account) error {
	r.root.mu.Lock()
	defer r.root.mu.Unlock()

	if _, taken := r.root.numbers[a.Number]; taken {
		return account.ErrDuplicateAccountNumber
	}
	if r.staged == nil {
		r.root.accounts[a.ID] = *a
		r.root.numbers[a.Number] = a.ID
		return nil
	}
	for _, c := range r.staged.creates {
		if c.Number == a.Number {
			return account.ErrDuplicateAccountNumber
		}
	}
	r.staged.creates = append(r.staged.creates, *a)
	return nil
}

func (r *accountRepo) Update(_ context.Context, a *account.Account) error {
	r.root.mu.Lock()
	defer r.root.mu.Unlock()

	committed, ok := r.root.accounts[a.ID]
	if !ok {
		return account.ErrAccountNotFound
	}
	if committed.Version != a.Version {
		return account.ErrConcurrentModification
	}
	loaded := a.Version
	a.Version++
	if r.staged == nil {
		r.root.accounts[a.ID] = *a
		return nil
	}
	r.staged.updates = append(r.staged.updates, stagedUpdate{row: *a, loadedVersion: loaded})
	return nil
}

func (r *accountRepo) Get(_ context.Context, id uuid.UUID) (*account.Account, error) {
	r.root.mu.Lock()
	defer r.root.mu.Unlock()

	if r.staged != nil {
		for i := range r.staged.updates {
			if r.staged.updates[i].row.ID == id {
				row := r.staged.updates[i].row
				return &row, nil
			}
		}
		for i := range r.staged.creates {
			if r.staged.creates[i].ID == id {
				row := r.staged.creates[i]
				return &row, nil
			}
		}
	}
	a, ok := r.root.accounts[id]
	if !ok {
		return nil, account.ErrAccountNotFound
	}
	return &a, nil
}

func (r *accountRepo) GetByNumber(_ context.Context, number string) (*account.Account, error) {
	r.root.mu.Lock()
	defer r.root.mu.Unlock()

	if r.staged != nil {
		for i := range r.staged.creates {
			if r.staged.creates[i].Number == number {
				row := r.staged.creates[i]
				return &row, nil
			}
		}
	}
	id, ok := r.root.numbers[number]
	if !ok {
		return nil, account.ErrAccountNotFound
	}
	a := r.root.accounts[id]
	return &a, nil
}

func (r *accountRepo) ExistsByNumber(_ context.Context, number string) (bool, error) {
	r.root.mu.Lock()
	defer r.root.mu.Unlock()

	if r.staged != nil {
		for i := range r.staged.creates {
			if r.staged.creates[i].Number == number {
				return true, nil
			}
		}
	}
	_, taken := r.root.numbers[number]
	return taken, nil
}

func (r *accountRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.root.mu.Lock()
	defer r.root.mu.Unlock()

	a, ok := r.root.accounts[id]
	if !ok {
		return account.ErrAccountNotFound
	}
	delete(r.root.accounts, id)
	delete(r.root.numbers, a.Number)
	return nil
}

type transactionRepo struct {
	root   *UnitOfWork
	staged *staging
}

func (r *transactionRepo) Create(_ context.Context, t *account.Transaction) error {
	r.root.mu.Lock()
	defer r.root.mu.Unlock()

	if r.staged == nil {
		r.root.transactions = append(r.root.transactions, *t)
		return nil
	}
	r.staged.txRecords = append(r.staged.txRecords, *t)
	return nil
}

func (r *transactionRepo) Get(_ context.Context, id uuid.UUID) (*account.Transaction, error) {
	r.root.mu.Lock()
	defer r.root.mu.Unlock()

	for i := range r.root.transactions {
		if r.root.transactions[i].ID == id {
			t := r.root.transactions[i]
			return &t, nil
		}
	}
	return nil, account.ErrTransactionNotFound
}

func (r *transactionRepo) ListByAccount(_ context.Context, accountID uuid.UUID) ([]*account.Transaction, error) {
	r.root.mu.Lock()
	defer r.root.mu.Unlock()

	var out []*account.Transaction
	for i := len(r.root.transactions) - 1; i >= 0; i-- {
		t := r.root.transactions[i]
		if t.SourceAccountID == accountID || t.TargetAccountID == accountID {
			out = append(out, &t)
		}
	}
	return out, nil
}
