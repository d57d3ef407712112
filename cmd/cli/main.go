// Command cli is a thin operator console over the ledger core. It is
// surrounding-layer plumbing: every command parses primitive arguments and
// calls straight into the services.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/dajham/bankcore/infra/initializer"
	"github.com/dajham/bankcore/pkg/config"
	"github.com/dajham/bankcore/pkg/domain/money"
	"github.com/fatih/color"
	"github.com/google/uuid"
)

func usage() {
	fmt.Println("Usage: cli <command> [arguments]")
	fmt.Println("Commands:")
	fmt.Println("  create <owner_id> [initial_balance]")
	fmt.Println("  deposit <account_id> <amount>")
	fmt.Println("  withdraw <account_id> <amount>")
	fmt.Println("  transfer <source_account_id> <target_account_id> <amount>")
	fmt.Println("  balance <account_id>")
	fmt.Println("  transactions <account_id>")
}

func main() {
	if len(os.Args) < 2 {
		usage()
		return
	}

	cfg, err := config.Load()
	if err != nil {
		color.Red("Failed to load configuration: %v", err)
		os.Exit(1)
	}
	deps, err := initializer.InitializeDependencies(cfg)
	if err != nil {
		color.Red("Failed to initialize dependencies: %v", err)
		os.Exit(1)
	}

	ctx := context.Background()
	if err := run(ctx, deps, os.Args[1], os.Args[2:]); err != nil {
		color.Red("Error: %v", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, deps *initializer.Deps, cmd string, args []string) error {
	switch cmd {
	case "create":
		if len(args) < 1 {
			return fmt.Errorf("usage: create <owner_id> [initial_balance]")
		}
		ownerID, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid owner id: %w", err)
		}
		initial := money.Zero()
		if len(args) > 1 {
			initial, err = money.NewFromString(args[1])
			if err != nil {
				return err
			}
		}
		a, err := deps.AccountService.CreateAccount(ctx, ownerID, initial)
		if err != nil {
			return err
		}
		color.Green("Account created: ID=%s Number=%s Balance=%s", a.ID, a.Number, a.Balance)

	case "deposit", "withdraw":
		if len(args) < 2 {
			return fmt.Errorf("usage: %s <account_id> <amount>", cmd)
		}
		accountID, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid account id: %w", err)
		}
		amount, err := money.NewFromString(args[1])
		if err != nil {
			return err
		}
		op := deps.AccountService.Deposit
		if cmd == "withdraw" {
			op = deps.AccountService.Withdraw
		}
		acct, err := op(ctx, accountID, amount)
		if err != nil {
			return err
		}
		color.Green("%s of %s applied to account %s. New balance: %s", cmd, amount, acct.Number, acct.Balance)

	case "transfer":
		if len(args) < 3 {
			return fmt.Errorf("usage: transfer <source_account_id> <target_account_id> <amount>")
		}
		sourceID, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid source account id: %w", err)
		}
		targetID, err := uuid.Parse(args[1])
		if err != nil {
			return fmt.Errorf("invalid target account id: %w", err)
		}
		amount, err := money.NewFromString(args[2])
		if err != nil {
			return err
		}
		result, err := deps.TransferService.Transfer(ctx, sourceID, targetID, amount)
		if err != nil {
			return err
		}
		color.Green("Transfer completed: transaction=%s reference=%s", result.TransactionID, result.ReferenceCode)

	case "balance":
		if len(args) < 1 {
			return fmt.Errorf("usage: balance <account_id>")
		}
		accountID, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid account id: %w", err)
		}
		balance, err := deps.AccountService.GetBalance(ctx, accountID)
		if err != nil {
			return err
		}
		color.Cyan("Balance: %s", balance)

	case "transactions":
		if len(args) < 1 {
			return fmt.Errorf("usage: transactions <account_id>")
		}
		accountID, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid account id: %w", err)
		}
		txs, err := deps.AccountService.GetTransactions(ctx, accountID)
		if err != nil {
			return err
		}
		if len(txs) == 0 {
			color.Yellow("No transactions found")
			return nil
		}
		for _, tx := range txs {
			fmt.Printf("%s  %s -> %s  %s  ref=%s  at=%s\n",
				tx.ID, tx.SourceAccountID, tx.TargetAccountID,
				tx.Amount, tx.ReferenceCode, tx.CreatedAt.Format("2006-01-02 15:04:05"))
		}

	default:
		usage()
		return fmt.Errorf("unknown command: %s", cmd)
	}
	return nil
}
