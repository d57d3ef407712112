package account

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// NumberGenerator produces candidate human-facing account numbers.
// Generated numbers are collision-resistant but never assumed unique; the
// store's uniqueness constraint is the authority and the service retries on
// collision.
type NumberGenerator interface {
	Generate() string
}

// timeRandomGenerator produces numbers in the form
// ACC-<11-digit time-derived suffix>-<6 uppercase alphanumeric>,
// e.g. ACC-56789012345-A1B2C3.
type timeRandomGenerator struct{}

// NewNumberGenerator returns the default time-plus-random generator.
func NewNumberGenerator() NumberGenerator {
	return timeRandomGenerator{}
}

func (timeRandomGenerator) Generate() string {
	// Last 11 digits of the millisecond clock plus a random suffix drawn
	// from a fresh UUID.
	ts := time.Now().UnixMilli() % 100_000_000_000
	suffix := strings.ToUpper(uuid.NewString()[:6])
	return fmt.Sprintf("ACC-%011d-%s", ts, suffix)
}
