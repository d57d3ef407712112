// Package initializer assembles the application dependency graph: logger,
// configuration, database, unit of work and the ledger services.
package initializer

import (
	"fmt"
	"log/slog"

	"github.com/dajham/bankcore/infra"
	infrarepo "github.com/dajham/bankcore/infra/repository"
	"github.com/dajham/bankcore/pkg/config"
	accountservice "github.com/dajham/bankcore/pkg/service/account"
	transferservice "github.com/dajham/bankcore/pkg/service/transfer"
	"gorm.io/gorm"
)

// Deps holds the initialized application dependencies.
type Deps struct {
	Logger          *slog.Logger
	DB              *gorm.DB
	UoW             *infrarepo.UoW
	AccountService  *accountservice.Service
	TransferService *transferservice.Service
}

// InitializeDependencies initializes all the application dependencies.
func InitializeDependencies(cfg *config.App) (*Deps, error) {
	deps := &Deps{}
	logger := setupLogger(cfg.Log)
	deps.Logger = logger

	db, err := infra.NewDBConnection(*cfg.DB, cfg.Env)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := infra.Migrate(db); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	deps.DB = db

	uow := infrarepo.NewUoW(db)
	deps.UoW = uow

	deps.AccountService = accountservice.NewService(
		uow,
		accountservice.NewNumberGenerator(),
		*cfg.AccountNumbers,
		logger,
	)
	deps.TransferService = transferservice.NewService(uow, logger)

	logger.Info("Dependencies initialized", "env", cfg.Env)
	return deps, nil
}
