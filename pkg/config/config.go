// Package config holds the environment-driven application configuration.
package config

import (
	"time"
)

// DB configures the database connection.
type DB struct {
	Url string `envconfig:"URL"`
}

// Log configures the structured logger.
type Log struct {
	Level      int    `envconfig:"LEVEL" default:"0"`
	Format     string `envconfig:"FORMAT" default:"text"`
	TimeFormat string `envconfig:"TIME_FORMAT" default:"2006-01-02 15:04:05"`
	Prefix     string `envconfig:"PREFIX" default:"[bankcore]"`
}

// AccountNumbers configures the account-number collision retry loop.
type AccountNumbers struct {
	MaxAttempts int           `envconfig:"MAX_ATTEMPTS" default:"5"`
	Backoff     time.Duration `envconfig:"BACKOFF" default:"10ms"`
}

// App is the root configuration, populated from the environment with the
// BANKCORE prefix (e.g. BANKCORE_DATABASE_URL).
type App struct {
	Env            string          `envconfig:"APP_ENV" default:"development"`
	Log            *Log            `envconfig:"LOG"`
	DB             *DB             `envconfig:"DATABASE"`
	AccountNumbers *AccountNumbers `envconfig:"ACCOUNT_NUMBERS"`
}
