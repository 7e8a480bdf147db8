package recurring

import (
	"database/sql"
	"errors"
	"time"
)

var (
	ErrNegativeAmount = errors.New("amount must not be negative")
	ErrRuleInvalid    = errors.New("recurring rule is invalid")
)

// Interval is the closed set of recurrence kinds. Only monthly rules are
// materialized; anything else is stored untouched and skipped by the engine
// until an engine branch exists for it.
type Interval string

const IntervalMonthly Interval = "monthly"

// Rule is a template for a charge that repeats every period. The engine
// advances LastRun whenever it materializes the rule into an expense.
type Rule struct {
	ID        int
	StartDate time.Time
	Category  string
	Amount    float64
	Note      string
	Interval  Interval
	// LastRun is nil when the rule never materialized or when the stored
	// value cannot be parsed; both mean the rule is due.
	LastRun *time.Time

	// lastRunRaw carries the stored last_run verbatim so the repository can
	// compare-and-swap against the exact value this rule was loaded with.
	lastRunRaw sql.NullString
}

// isDue reports whether a monthly rule still has to materialize for the
// calendar month of today. Comparison is on (year, month) only; a missed
// month is caught up with a single charge, not one per skipped month.
func isDue(lastRun *time.Time, today time.Time) bool {
	if lastRun == nil {
		return true
	}
	if lastRun.Year() != today.Year() {
		return lastRun.Year() < today.Year()
	}
	return lastRun.Month() < today.Month()
}
