package budget

import (
	"fmt"
	"math"
)

type WarningLevel string

const (
	WarningApproaching WarningLevel = "approaching"
	WarningExceeded    WarningLevel = "exceeded"
)

const (
	approachingThreshold = 80.0
	exceededThreshold    = 100.0
)

// Warning reports that a month's spend has crossed a budget threshold.
type Warning struct {
	Category string
	Level    WarningLevel
	Spent    float64
	Limit    float64
	// Percentage is the spend-to-limit ratio rounded to a whole percent.
	Percentage int
	Message    string
}

// Evaluate compares per-category spend against the given budgets and returns
// warnings in budget order. Categories without a budget row are never
// evaluated. A non-positive limit defines the percentage as 0, so such
// budgets never warn.
func Evaluate(totals map[string]float64, budgets []Budget) []Warning {
	warnings := make([]Warning, 0)
	for _, b := range budgets {
		spent := totals[b.Category]
		pct := 0.0
		if b.Amount > 0 {
			pct = spent / b.Amount * 100
		}
		switch {
		case pct >= exceededThreshold:
			warnings = append(warnings, Warning{
				Category:   b.Category,
				Level:      WarningExceeded,
				Spent:      spent,
				Limit:      b.Amount,
				Percentage: int(math.Round(pct)),
				Message:    fmt.Sprintf("Budget exceeded for %s: spent %.2f / %.2f", b.Category, spent, b.Amount),
			})
		case pct >= approachingThreshold:
			warnings = append(warnings, Warning{
				Category:   b.Category,
				Level:      WarningApproaching,
				Spent:      spent,
				Limit:      b.Amount,
				Percentage: int(math.Round(pct)),
				Message:    fmt.Sprintf("Approaching budget for %s: %d%% used", b.Category, int(math.Round(pct))),
			})
		}
	}
	return warnings
}
