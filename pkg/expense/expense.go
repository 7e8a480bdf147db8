package expense

import (
	"errors"
	"time"
)

var (
	ErrNegativeAmount  = errors.New("amount must not be negative")
	ErrExpenseNotFound = errors.New("expense not found")
)

// DateFormat is the calendar-date layout used everywhere an expense date
// crosses a boundary (storage, JSON, CSV).
const DateFormat = "2006-01-02"

type Expense struct {
	ID       int
	Date     time.Time
	Category string
	Amount   float64
	Note     string
}

// Filter restricts a listing to a date range and caps the number of rows.
// Zero From/To leave the corresponding bound open.
type Filter struct {
	From  time.Time
	To    time.Time
	Limit int
}
