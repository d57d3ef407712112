package repository

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	repo "github.com/dajham/bankcore/pkg/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUoW_Do_CommitsOnSuccess(t *testing.T) {
	db, mock := newMockDB(t)
	uow := NewUoW(db)

	mock.ExpectBegin()
	mock.ExpectCommit()

	err := uow.Do(context.Background(), func(txn repo.UnitOfWork) error {
		accounts, err := txn.AccountRepository()
		require.NoError(t, err)
		assert.NotNil(t, accounts)

		transactions, err := txn.TransactionRepository()
		require.NoError(t, err)
		assert.NotNil(t, transactions)
		return nil
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUoW_Do_RollsBackOnError(t *testing.T) {
	db, mock := newMockDB(t)
	uow := NewUoW(db)

	mock.ExpectBegin()
	mock.ExpectRollback()

	boom := errors.New("boom")
	err := uow.Do(context.Background(), func(txn repo.UnitOfWork) error {
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUoW_GetRepository(t *testing.T) {
	db, _ := newMockDB(t)
	uow := NewUoW(db)

	r, err := uow.GetRepository(reflect.TypeOf((*repo.AccountRepository)(nil)).Elem())
	require.NoError(t, err)
	_, ok := r.(repo.AccountRepository)
	assert.True(t, ok)

	r, err = uow.GetRepository(reflect.TypeOf((*repo.TransactionRepository)(nil)).Elem())
	require.NoError(t, err)
	_, ok = r.(repo.TransactionRepository)
	assert.True(t, ok)
}

func TestUoW_GetRepository_Unsupported(t *testing.T) {
	db, _ := newMockDB(t)
	uow := NewUoW(db)

	_, err := uow.GetRepository(reflect.TypeOf((*error)(nil)).Elem())
	assert.Error(t, err)
}

func TestUoW_SharesSessionAcrossRepositories(t *testing.T) {
	// Writes made through one repository must be visible to the other within
	// the same Do, and both must ride the same BEGIN/COMMIT.
	db, mock := newMockDB(t)
	uow := NewUoW(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT count\(\*\) FROM "accounts" WHERE account_number = \$1`).
		WithArgs("ACC-00000000001-AAAAAA").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectCommit()

	err := uow.Do(context.Background(), func(txn repo.UnitOfWork) error {
		accounts, err := txn.AccountRepository()
		require.NoError(t, err)
		taken, err := accounts.ExistsByNumber(context.Background(), "ACC-00000000001-AAAAAA")
		require.NoError(t, err)
		assert.False(t, taken)
		return nil
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
