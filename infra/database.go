// Package infra wires the ledger core to its real collaborators: the
// Postgres database and connection settings.
package infra

import (
	"errors"
	"time"

	infrarepo "github.com/dajham/bankcore/infra/repository"
	"github.com/dajham/bankcore/pkg/config"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDBConnection opens the Postgres connection described by cfg and applies
// pool settings. TranslateError is enabled so unique violations surface as
// gorm.ErrDuplicatedKey for the repository error mapping.
func NewDBConnection(cfg config.DB, appEnv string) (*gorm.DB, error) {
	databaseUrl := cfg.Url
	if databaseUrl == "" {
		return nil, errors.New("BANKCORE_DATABASE_URL is not set")
	}

	var logMode logger.LogLevel
	if appEnv == "development" {
		logMode = logger.Info
	} else {
		logMode = logger.Silent
	}

	connection, err := gorm.Open(postgres.Open(databaseUrl), &gorm.Config{
		Logger:                 logger.Default.LogMode(logMode),
		SkipDefaultTransaction: true,
		TranslateError:         true,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := connection.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(25)
	sqlDB.SetConnMaxLifetime(1 * time.Hour)

	return connection, nil
}

// Migrate creates or updates the ledger tables.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&infrarepo.Account{}, &infrarepo.Transaction{})
}
