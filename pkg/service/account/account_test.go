package account_test

import (
	"context"
	"io"
	"log/slog"
	"regexp"
	"testing"

	"github.com/dajham/bankcore/internal/fakes"
	"github.com/dajham/bankcore/pkg/config"
	domainaccount "github.com/dajham/bankcore/pkg/domain/account"
	"github.com/dajham/bankcore/pkg/domain/money"
	"github.com/dajham/bankcore/pkg/repository"
	accountservice "github.com/dajham/bankcore/pkg/service/account"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var numberFormat = regexp.MustCompile(`^ACC-\d{11}-[A-Z0-9]{6}$`)

func newService(uow repository.UnitOfWork, gen accountservice.NumberGenerator) *accountservice.Service {
	return accountservice.NewService(
		uow,
		gen,
		config.AccountNumbers{MaxAttempts: 5},
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)
}

// scriptedGenerator returns a fixed sequence of numbers, repeating the last.
type scriptedGenerator struct {
	numbers []string
	calls   int
}

func (g *scriptedGenerator) Generate() string {
	i := g.calls
	if i >= len(g.numbers) {
		i = len(g.numbers) - 1
	}
	g.calls++
	return g.numbers[i]
}

func TestNumberGenerator(t *testing.T) {
	t.Parallel()

	gen := accountservice.NewNumberGenerator()
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		n := gen.Generate()
		assert.Regexp(t, numberFormat, n)
		seen[n] = true
	}
	// The random suffix makes same-millisecond collisions negligible.
	assert.Greater(t, len(seen), 95)
}

func TestCreateAccount(t *testing.T) {
	t.Parallel()

	t.Run("creates a retrievable account with the given balance", func(t *testing.T) {
		uow := fakes.NewUnitOfWork()
		svc := newService(uow, accountservice.NewNumberGenerator())

		a, err := svc.CreateAccount(context.Background(), uuid.New(), money.MustParse("250.00"))
		require.NoError(t, err)
		assert.Regexp(t, numberFormat, a.Number)

		got, err := svc.GetAccount(context.Background(), a.ID)
		require.NoError(t, err)
		assert.Equal(t, "250.00", got.Balance.String())

		byNumber, err := svc.GetAccountByNumber(context.Background(), a.Number)
		require.NoError(t, err)
		assert.Equal(t, a.ID, byNumber.ID)
	})

	t.Run("zero opening balance round-trips as exactly 0.00", func(t *testing.T) {
		uow := fakes.NewUnitOfWork()
		svc := newService(uow, accountservice.NewNumberGenerator())

		a, err := svc.CreateAccount(context.Background(), uuid.New(), money.Zero())
		require.NoError(t, err)

		balance, err := svc.GetBalance(context.Background(), a.ID)
		require.NoError(t, err)
		assert.Equal(t, "0.00", balance.String())

		accounts, err := uow.AccountRepository()
		require.NoError(t, err)
		taken, err := accounts.ExistsByNumber(context.Background(), a.Number)
		require.NoError(t, err)
		assert.True(t, taken)
	})

	t.Run("rejects a negative opening balance", func(t *testing.T) {
		uow := fakes.NewUnitOfWork()
		svc := newService(uow, accountservice.NewNumberGenerator())

		_, err := svc.CreateAccount(context.Background(), uuid.New(), money.MustParse("-0.01"))
		assert.ErrorIs(t, err, domainaccount.ErrInvalidAmount)
	})

	t.Run("regenerates when the pre-check finds a taken number", func(t *testing.T) {
		uow := fakes.NewUnitOfWork()
		existing, err := domainaccount.New().
			WithOwnerID(uuid.New()).
			WithNumber("ACC-00000000001-AAAAAA").
			Build()
		require.NoError(t, err)
		uow.Seed(existing)

		gen := &scriptedGenerator{numbers: []string{
			"ACC-00000000001-AAAAAA", // collides with the seeded account
			"ACC-00000000002-BBBBBB",
		}}
		svc := newService(uow, gen)

		a, err := svc.CreateAccount(context.Background(), uuid.New(), money.Zero())
		require.NoError(t, err)
		assert.Equal(t, "ACC-00000000002-BBBBBB", a.Number)
		assert.Equal(t, 2, gen.calls)
	})

	t.Run("gives up after exhausting attempts", func(t *testing.T) {
		uow := fakes.NewUnitOfWork()
		existing, err := domainaccount.New().
			WithOwnerID(uuid.New()).
			WithNumber("ACC-00000000001-AAAAAA").
			Build()
		require.NoError(t, err)
		uow.Seed(existing)

		gen := &scriptedGenerator{numbers: []string{"ACC-00000000001-AAAAAA"}}
		svc := newService(uow, gen)

		_, err = svc.CreateAccount(context.Background(), uuid.New(), money.Zero())
		assert.ErrorIs(t, err, domainaccount.ErrDuplicateAccountNumber)
		assert.Equal(t, 5, gen.calls)
	})
}

// racingUoW fakes a concurrent creation racing past the existence pre-check:
// the pre-check sees the number as free, but the insert hits the store's
// unique constraint. The constraint is authoritative and the service must
// retry generation rather than abort.
type racingUoW struct {
	*fakes.UnitOfWork
	rejectFirstInsert bool
}

func (u *racingUoW) Do(ctx context.Context, fn func(uow repository.UnitOfWork) error) error {
	if u.rejectFirstInsert {
		u.rejectFirstInsert = false
		return domainaccount.ErrDuplicateAccountNumber
	}
	return u.UnitOfWork.Do(ctx, fn)
}

func TestCreateAccount_InsertRaceRetries(t *testing.T) {
	t.Parallel()

	uow := &racingUoW{UnitOfWork: fakes.NewUnitOfWork(), rejectFirstInsert: true}
	gen := &scriptedGenerator{numbers: []string{
		"ACC-00000000001-AAAAAA",
		"ACC-00000000002-BBBBBB",
	}}
	svc := newService(uow, gen)

	a, err := svc.CreateAccount(context.Background(), uuid.New(), money.Zero())
	require.NoError(t, err)
	assert.Equal(t, "ACC-00000000002-BBBBBB", a.Number)
	assert.Equal(t, 2, gen.calls)
}

func TestDepositAndWithdraw(t *testing.T) {
	t.Parallel()

	uow := fakes.NewUnitOfWork()
	svc := newService(uow, accountservice.NewNumberGenerator())

	a, err := svc.CreateAccount(context.Background(), uuid.New(), money.MustParse("1000.00"))
	require.NoError(t, err)

	t.Run("deposit persists the new balance", func(t *testing.T) {
		got, err := svc.Deposit(context.Background(), a.ID, money.MustParse("250.00"))
		require.NoError(t, err)
		assert.Equal(t, "1250.00", got.Balance.String())
	})

	t.Run("withdraw persists the new balance", func(t *testing.T) {
		got, err := svc.Withdraw(context.Background(), a.ID, money.MustParse("300.00"))
		require.NoError(t, err)
		assert.Equal(t, "950.00", got.Balance.String())
	})

	t.Run("failed withdraw changes nothing", func(t *testing.T) {
		_, err := svc.Withdraw(context.Background(), a.ID, money.MustParse("99999.00"))
		assert.ErrorIs(t, err, domainaccount.ErrInsufficientFunds)

		balance, err := svc.GetBalance(context.Background(), a.ID)
		require.NoError(t, err)
		assert.Equal(t, "950.00", balance.String())
	})

	t.Run("unknown account", func(t *testing.T) {
		_, err := svc.Deposit(context.Background(), uuid.New(), money.MustParse("1.00"))
		assert.ErrorIs(t, err, domainaccount.ErrAccountNotFound)
	})
}
