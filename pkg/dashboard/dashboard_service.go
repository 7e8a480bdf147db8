package dashboard

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/spendwise/spendwise/internal/event_bus"
	"github.com/spendwise/spendwise/internal/utils"
	"github.com/spendwise/spendwise/pkg/budget"
	"github.com/spendwise/spendwise/pkg/expense"
	"github.com/spendwise/spendwise/pkg/recurring"
	"github.com/spendwise/spendwise/pkg/summary"
)

// recentExpensesLimit caps the expense list shown on the dashboard.
const recentExpensesLimit = 20

// View is everything the dashboard shows for the current month: recent
// expenses, the per-category summary, and any budget warnings. Due recurring
// rules are materialized before the numbers are computed, so the view always
// includes this month's recurring charges.
type View struct {
	Expenses []expense.Expense
	Budgets  []budget.Budget
	Summary  summary.MonthSummary
	Warnings []budget.Warning
}

type DashboardService interface {
	View(ctx context.Context) (View, error)
}

type DashboardServiceImpl struct {
	recurringEngine recurring.Engine
	expenseService  expense.ExpenseService
	summaryService  summary.SummaryService
	budgetService   budget.BudgetService
	bus             *event_bus.EventBus
	clock           utils.Clock
}

func NewDashboardService(
	recurringEngine recurring.Engine,
	expenseService expense.ExpenseService,
	summaryService summary.SummaryService,
	budgetService budget.BudgetService,
	bus *event_bus.EventBus,
	clock utils.Clock,
) *DashboardServiceImpl {
	return &DashboardServiceImpl{
		recurringEngine: recurringEngine,
		expenseService:  expenseService,
		summaryService:  summaryService,
		budgetService:   budgetService,
		bus:             bus,
		clock:           clock,
	}
}

func (s *DashboardServiceImpl) View(ctx context.Context) (View, error) {
	today := s.clock.Now()

	// Materialize first so the summary and warnings below see this month's
	// recurring charges.
	if _, err := s.recurringEngine.MaterializeDue(ctx, today); err != nil {
		return View{}, fmt.Errorf("failed to materialize recurring rules: %w", err)
	}

	expenses, err := s.expenseService.List(ctx, expense.Filter{Limit: recentExpensesLimit})
	if err != nil {
		return View{}, err
	}

	monthSummary, err := s.summaryService.SummarizeMonth(ctx, today.Year(), int(today.Month()))
	if err != nil {
		return View{}, err
	}

	budgets, err := s.budgetService.ListForMonth(ctx, today.Year(), int(today.Month()))
	if err != nil {
		return View{}, err
	}

	warnings := budget.Evaluate(monthSummary.ByCategory, budgets)
	for _, warning := range warnings {
		if err := s.bus.Publish(event_bus.NewEvent(ctx, event_bus.BudgetThresholdEvent, event_bus.BudgetThresholdCrossed{
			Category: warning.Category,
			Spent:    warning.Spent,
			Limit:    warning.Limit,
			Level:    string(warning.Level),
		})); err != nil {
			log.Warnf("failed to publish budget threshold event: %v", err)
		}
	}

	return View{
		Expenses: expenses,
		Budgets:  budgets,
		Summary:  monthSummary,
		Warnings: warnings,
	}, nil
}
