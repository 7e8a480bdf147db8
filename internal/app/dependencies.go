package app

import (
	"database/sql"

	log "github.com/sirupsen/logrus"

	"github.com/spendwise/spendwise/internal/event_bus"
	"github.com/spendwise/spendwise/internal/utils"
	"github.com/spendwise/spendwise/pkg/budget"
	"github.com/spendwise/spendwise/pkg/dashboard"
	"github.com/spendwise/spendwise/pkg/expense"
	"github.com/spendwise/spendwise/pkg/recurring"
	"github.com/spendwise/spendwise/pkg/summary"
	"github.com/spendwise/spendwise/pkg/user"
)

// Dependencies holds all services and handlers for the application.
type Dependencies struct {
	EventBus *event_bus.EventBus
	Clock    utils.Clock

	UserService user.Service
	UserHandler *user.Handler

	ExpenseRepo        expense.ExpenseRepo
	ExpenseService     expense.ExpenseService
	CsvExpenseRenderer expense.ExpenseRenderer
	ExpenseHandler     *expense.ExpenseHandler

	BudgetRepo    budget.BudgetRepo
	BudgetService budget.BudgetService
	BudgetHandler *budget.BudgetHandler

	RecurringRepo    recurring.RecurringRepo
	RecurringService recurring.RecurringService
	RecurringHandler *recurring.RecurringHandler

	SummaryRepo    summary.SummaryRepo
	SummaryService summary.SummaryService
	SummaryHandler *summary.SummaryHandler

	DashboardService dashboard.DashboardService
	DashboardHandler *dashboard.DashboardHandler
}

// BuildDependencies initializes and wires all application services and handlers.
func BuildDependencies(db *sql.DB) *Dependencies {
	deps := &Dependencies{}

	deps.EventBus = event_bus.NewEventBus()
	deps.Clock = &utils.SystemClock{}

	deps.UserService = user.NewUserService(user.NewUserRepo(db))
	deps.UserHandler = user.NewHandler(deps.UserService)

	deps.ExpenseRepo = expense.NewExpenseRepo(db)
	deps.ExpenseService = expense.NewExpenseService(deps.ExpenseRepo, deps.EventBus, deps.Clock)
	deps.CsvExpenseRenderer = expense.NewCsvExpenseRenderer()
	deps.ExpenseHandler = expense.NewExpenseHandler(deps.ExpenseService, deps.CsvExpenseRenderer)

	deps.BudgetRepo = budget.NewBudgetRepo(db)
	deps.BudgetService = budget.NewBudgetService(deps.BudgetRepo)
	deps.BudgetHandler = budget.NewBudgetHandler(deps.BudgetService)

	deps.RecurringRepo = recurring.NewRecurringRepo(db)
	deps.RecurringService = recurring.NewRecurringService(deps.RecurringRepo, deps.EventBus, deps.Clock)
	deps.RecurringHandler = recurring.NewRecurringHandler(deps.RecurringService)

	deps.SummaryRepo = summary.NewSummaryRepo(db)
	deps.SummaryService = summary.NewSummaryService(deps.SummaryRepo)
	deps.SummaryHandler = summary.NewSummaryHandler(deps.SummaryService)

	deps.DashboardService = dashboard.NewDashboardService(
		deps.RecurringService,
		deps.ExpenseService,
		deps.SummaryService,
		deps.BudgetService,
		deps.EventBus,
		deps.Clock,
	)
	deps.DashboardHandler = dashboard.NewDashboardHandler(deps.DashboardService)

	subscribeEventLoggers(deps.EventBus)

	return deps
}

// subscribeEventLoggers attaches audit logging for domain events.
func subscribeEventLoggers(bus *event_bus.EventBus) {
	event_bus.SubscribeTyped[event_bus.ExpenseCreated](bus, event_bus.ExpenseCreatedEvent,
		func(e event_bus.EventT[event_bus.ExpenseCreated]) error {
			log.WithFields(log.Fields{
				"expenseId": e.Data.ExpenseId,
				"category":  e.Data.Category,
				"amount":    e.Data.Amount,
				"recurring": e.Data.Recurring,
			}).Info("expense created")
			return nil
		})

	event_bus.SubscribeTyped[event_bus.BudgetThresholdCrossed](bus, event_bus.BudgetThresholdEvent,
		func(e event_bus.EventT[event_bus.BudgetThresholdCrossed]) error {
			log.WithFields(log.Fields{
				"category": e.Data.Category,
				"spent":    e.Data.Spent,
				"limit":    e.Data.Limit,
				"level":    e.Data.Level,
			}).Warn("budget threshold crossed")
			return nil
		})
}
