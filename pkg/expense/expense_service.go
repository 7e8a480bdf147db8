package expense

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/spendwise/spendwise/internal/event_bus"
	"github.com/spendwise/spendwise/internal/utils"
	"github.com/spendwise/spendwise/pkg/user"
)

type ExpenseService interface {
	List(ctx context.Context, filter Filter) ([]Expense, error)
	Create(ctx context.Context, expense Expense) (Expense, error)
	Delete(ctx context.Context, id int) (bool, error)
}

type ExpenseServiceImpl struct {
	repo  ExpenseRepo
	bus   *event_bus.EventBus
	clock utils.Clock
}

func NewExpenseService(repo ExpenseRepo, bus *event_bus.EventBus, clock utils.Clock) *ExpenseServiceImpl {
	return &ExpenseServiceImpl{repo: repo, bus: bus, clock: clock}
}

func (s *ExpenseServiceImpl) List(ctx context.Context, filter Filter) ([]Expense, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.List(ctx, userId, filter)
}

func (s *ExpenseServiceImpl) Create(ctx context.Context, expense Expense) (Expense, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Expense{}, fmt.Errorf("failed to get current user: %w", err)
	}
	if expense.Amount < 0 {
		return Expense{}, ErrNegativeAmount
	}
	if expense.Date.IsZero() {
		expense.Date = s.clock.Now()
	}
	if expense.Category == "" {
		expense.Category = "Other"
	}

	id, err := s.repo.Store(ctx, userId, expense)
	if err != nil {
		return Expense{}, err
	}
	expense.ID = id

	if err := s.bus.Publish(event_bus.NewEvent(ctx, event_bus.ExpenseCreatedEvent, event_bus.ExpenseCreated{
		ExpenseId: expense.ID,
		Date:      expense.Date,
		Category:  expense.Category,
		Amount:    expense.Amount,
	})); err != nil {
		log.Warnf("failed to publish expense created event: %v", err)
	}

	return expense, nil
}

func (s *ExpenseServiceImpl) Delete(ctx context.Context, id int) (bool, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to get current user: %w", err)
	}
	deleted, err := s.repo.Delete(ctx, userId, id)
	if err != nil {
		return false, err
	}
	if !deleted {
		log.Warnf("expense not deleted, probably because it does not exist (%d) or the user (%d) is not the owner", id, userId)
		return false, ErrExpenseNotFound
	}
	return true, nil
}
