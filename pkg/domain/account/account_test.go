package account_test

import (
	"io"
	"log"
	"log/slog"
	"os"
	"testing"

	domainaccount "github.com/dajham/bankcore/pkg/domain/account"
	"github.com/dajham/bankcore/pkg/domain/money"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestMain runs before any tests and applies globally for all tests in the package.
func TestMain(m *testing.M) {
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
	log.SetOutput(io.Discard)

	exitVal := m.Run()
	os.Exit(exitVal)
}

func newAccount(t *testing.T, balance string) *domainaccount.Account {
	t.Helper()
	a, err := domainaccount.New().
		WithOwnerID(uuid.New()).
		WithNumber("ACC-12345678901-ABC123").
		WithBalance(money.MustParse(balance)).
		Build()
	require.NoError(t, err)
	return a
}

func TestBuild(t *testing.T) {
	t.Parallel()

	t.Run("defaults to a zero balance", func(t *testing.T) {
		a, err := domainaccount.New().
			WithOwnerID(uuid.New()).
			WithNumber("ACC-12345678901-ABC123").
			Build()
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, a.ID)
		assert.True(t, a.Balance.Equal(money.Zero()))
		assert.Equal(t, int64(0), a.Version)
	})

	t.Run("requires an owner", func(t *testing.T) {
		_, err := domainaccount.New().WithNumber("ACC-12345678901-ABC123").Build()
		assert.Error(t, err)
	})

	t.Run("requires a number", func(t *testing.T) {
		_, err := domainaccount.New().WithOwnerID(uuid.New()).Build()
		assert.Error(t, err)
	})

	t.Run("rejects a negative opening balance", func(t *testing.T) {
		_, err := domainaccount.New().
			WithOwnerID(uuid.New()).
			WithNumber("ACC-12345678901-ABC123").
			WithBalance(money.MustParse("-1.00")).
			Build()
		assert.ErrorIs(t, err, domainaccount.ErrInvalidAmount)
	})
}

func TestDeposit(t *testing.T) {
	t.Parallel()

	t.Run("adds to the balance", func(t *testing.T) {
		a := newAccount(t, "500.00")
		require.NoError(t, a.Deposit(money.MustParse("300.00")))
		assert.Equal(t, "800.00", a.Balance.String())
	})

	t.Run("rejects zero", func(t *testing.T) {
		a := newAccount(t, "500.00")
		assert.ErrorIs(t, a.Deposit(money.Zero()), domainaccount.ErrInvalidAmount)
		assert.Equal(t, "500.00", a.Balance.String())
	})

	t.Run("rejects negative amounts", func(t *testing.T) {
		a := newAccount(t, "500.00")
		assert.ErrorIs(t, a.Deposit(money.MustParse("-10.00")), domainaccount.ErrInvalidAmount)
		assert.Equal(t, "500.00", a.Balance.String())
	})
}

func TestWithdraw(t *testing.T) {
	t.Parallel()

	t.Run("subtracts from the balance", func(t *testing.T) {
		a := newAccount(t, "1000.00")
		require.NoError(t, a.Withdraw(money.MustParse("300.00")))
		assert.Equal(t, "700.00", a.Balance.String())
	})

	t.Run("allows draining to exactly zero", func(t *testing.T) {
		a := newAccount(t, "1000.00")
		require.NoError(t, a.Withdraw(money.MustParse("1000.00")))
		assert.Equal(t, "0.00", a.Balance.String())
		assert.False(t, a.Balance.IsNegative())
	})

	t.Run("insufficient funds leaves the balance untouched", func(t *testing.T) {
		a := newAccount(t, "1000.00")
		err := a.Withdraw(money.MustParse("2000.00"))
		assert.ErrorIs(t, err, domainaccount.ErrInsufficientFunds)
		assert.Equal(t, "1000.00", a.Balance.String())
		assert.Equal(t, int64(0), a.Version)
	})

	t.Run("rejects non-positive amounts before the funds check", func(t *testing.T) {
		a := newAccount(t, "0.00")
		assert.ErrorIs(t, a.Withdraw(money.Zero()), domainaccount.ErrInvalidAmount)
		assert.ErrorIs(t, a.Withdraw(money.MustParse("-5.00")), domainaccount.ErrInvalidAmount)
	})
}

func TestHasSufficientBalance(t *testing.T) {
	t.Parallel()

	a := newAccount(t, "100.00")
	assert.True(t, a.HasSufficientBalance(money.MustParse("100.00")))
	assert.True(t, a.HasSufficientBalance(money.MustParse("99.99")))
	assert.False(t, a.HasSufficientBalance(money.MustParse("100.01")))
}
