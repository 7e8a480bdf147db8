package event_bus

import "time"

const (
	ExpenseCreatedEvent  EventType = "expense.created"
	BudgetThresholdEvent EventType = "budget.threshold"
)

// ExpenseCreated is published whenever a new expense row is written, whether
// entered directly or materialized from a recurring rule.
type ExpenseCreated struct {
	ExpenseId int
	Date      time.Time
	Category  string
	Amount    float64
	Recurring bool
}

// BudgetThresholdCrossed is published when a month's spend reaches the
// approaching (80%) or exceeded (100%) threshold of a category budget.
type BudgetThresholdCrossed struct {
	Category string
	Spent    float64
	Limit    float64
	Level    string
}
