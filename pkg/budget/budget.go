package budget

import "errors"

var (
	ErrNegativeAmount = errors.New("budget amount must not be negative")
	ErrInvalidPeriod  = errors.New("budget period is invalid")
)

// Budget is a monthly spending limit for one category. There is at most one
// budget per (user, category, year, month).
type Budget struct {
	Category string
	Amount   float64
	Year     int
	Month    int
}
