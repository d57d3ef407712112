// Package fakes provides an in-memory repository.UnitOfWork with optimistic
// commit semantics for service-level tests.
package fakes

import (
	"context"
	"fmt"
	"reflect"
	"sync"

	"github.com/dajham/bankcore/pkg/domain/account"
	"github.com/dajham/bankcore/pkg/repository"
	"github.com/google/uuid"
)

// UnitOfWork stores accounts and transactions in memory. Writes issued inside
// Do are staged and applied atomically on success; a staged account write
// whose loaded version no longer matches the committed row fails the whole
// unit with account.ErrConcurrentModification, mirroring the real store.
type UnitOfWork struct {
	mu           sync.Mutex
	accounts     map[uuid.UUID]account.Account
	numbers      map[string]uuid.UUID
	transactions []account.Transaction
}

// NewUnitOfWork creates an empty in-memory unit of work.
func NewUnitOfWork() *UnitOfWork {
	return &UnitOfWork{
		accounts: make(map[uuid.UUID]account.Account),
		numbers:  make(map[string]uuid.UUID),
	}
}

// Seed commits an account directly, bypassing staging.
func (u *UnitOfWork) Seed(a *account.Account) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.accounts[a.ID] = *a
	u.numbers[a.Number] = a.ID
}

// Account returns a committed snapshot for assertions.
func (u *UnitOfWork) Account(id uuid.UUID) (account.Account, bool) {
	u.mu.Lock()
	defer u.mu.Unlock()
	a, ok := u.accounts[id]
	return a, ok
}

// Transactions returns the committed transfer records.
func (u *UnitOfWork) Transactions() []account.Transaction {
	u.mu.Lock()
	defer u.mu.Unlock()
	out := make([]account.Transaction, len(u.transactions))
	copy(out, u.transactions)
	return out
}

// Do implements repository.UnitOfWork.
func (u *UnitOfWork) Do(ctx context.Context, fn func(uow repository.UnitOfWork) error) error {
	s := &session{root: u, staged: &staging{}}
	if err := fn(s); err != nil {
		return err
	}
	return u.commit(s.staged)
}

// GetRepository implements repository.UnitOfWork for the auto-commit session.
func (u *UnitOfWork) GetRepository(repoType reflect.Type) (any, error) {
	return getRepository(u, nil, repoType)
}

// AccountRepository implements repository.UnitOfWork for the auto-commit
// session: each operation commits immediately.
func (u *UnitOfWork) AccountRepository() (repository.AccountRepository, error) {
	return &accountRepo{root: u}, nil
}

// TransactionRepository implements repository.UnitOfWork for the auto-commit
// session.
func (u *UnitOfWork) TransactionRepository() (repository.TransactionRepository, error) {
	return &transactionRepo{root: u}, nil
}

// staging buffers the writes of one Do invocation.
type staging struct {
	creates   []account.Account
	updates   []stagedUpdate
	txRecords []account.Transaction
}

type stagedUpdate struct {
	row           account.Account
	loadedVersion int64
}

// session is the transaction-bound view handed to the Do callback.
type session struct {
	root   *UnitOfWork
	staged *staging
}

// Do on a session joins the enclosing unit, like a nested gorm transaction.
func (s *session) Do(ctx context.Context, fn func(uow repository.UnitOfWork) error) error {
	return fn(s)
}

func (s *session) GetRepository(repoType reflect.Type) (any, error) {
	return getRepository(s.root, s.staged, repoType)
}

func (s *session) AccountRepository() (repository.AccountRepository, error) {
	return &accountRepo{root: s.root, staged: s.staged}, nil
}

func (s *session) TransactionRepository() (repository.TransactionRepository, error) {
	return &transactionRepo{root: s.root, staged: s.staged}, nil
}

func getRepository(root *UnitOfWork, staged *staging, repoType reflect.Type) (any, error) {
	switch repoType {
	case reflect.TypeOf((*repository.AccountRepository)(nil)).Elem():
		return &accountRepo{root: root, staged: staged}, nil
	case reflect.TypeOf((*repository.TransactionRepository)(nil)).Elem():
		return &transactionRepo{root: root, staged: staged}, nil
	default:
		return nil, fmt.Errorf("unsupported repository type: %v", repoType)
	}
}

// commit re-validates every staged write against the committed state and
// applies all of them under one lock, or none at all.
func (u *UnitOfWork) commit(st *staging) error {
	u.mu.Lock()
	defer u.mu.Unlock()

	for _, upd := range st.updates {
		committed, ok := u.accounts[upd.row.ID]
		if !ok {
			return account.ErrAccountNotFound
		}
		if committed.Version != upd.loadedVersion {
			return account.ErrConcurrentModification
		}
	}
	for _, c := range st.creates {
		if _, taken := u.numbers[c.Number]; taken {
			return account.ErrDuplicateAccountNumber
		}
	}

	for _, c := range st.creates {
		u.accounts[c.ID] = c
		u.numbers[c.Number] = c.ID
	}
	for _, upd := range st.updates {
		u.accounts[upd.row.ID] = upd.row
	}
	u.transactions = append(u.transactions, st.txRecords...)
	return nil
}
