package recurring

import (
	"context"
	"fmt"
	"strconv"
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"

	"github.com/spendwise/spendwise/internal/event_bus"
	"github.com/spendwise/spendwise/internal/utils"
	"github.com/spendwise/spendwise/pkg/user"
)

// Engine materializes due recurring rules into concrete expenses.
type Engine interface {
	// MaterializeDue creates an expense for every monthly rule that has not
	// run in today's calendar month yet and returns the new expense ids.
	// Safe to call redundantly within the same month.
	MaterializeDue(ctx context.Context, today time.Time) ([]int, error)
}

type RecurringService interface {
	Engine
	ListRules(ctx context.Context) ([]Rule, error)
	CreateRule(ctx context.Context, rule Rule) (Rule, error)
}

type RecurringServiceImpl struct {
	repo  RecurringRepo
	bus   *event_bus.EventBus
	clock utils.Clock
	// group serializes materialization per user so two dashboard views in
	// parallel cannot both observe a rule as due.
	group singleflight.Group
}

func NewRecurringService(repo RecurringRepo, bus *event_bus.EventBus, clock utils.Clock) *RecurringServiceImpl {
	return &RecurringServiceImpl{repo: repo, bus: bus, clock: clock}
}

func (s *RecurringServiceImpl) ListRules(ctx context.Context) ([]Rule, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.ListRules(ctx, userId)
}

func (s *RecurringServiceImpl) CreateRule(ctx context.Context, rule Rule) (Rule, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Rule{}, fmt.Errorf("failed to get current user: %w", err)
	}
	if rule.Amount < 0 {
		return Rule{}, ErrNegativeAmount
	}
	if rule.Category == "" {
		return Rule{}, ErrRuleInvalid
	}
	if rule.StartDate.IsZero() {
		rule.StartDate = s.clock.Now()
	}
	if rule.Interval == "" {
		rule.Interval = IntervalMonthly
	}

	id, err := s.repo.StoreRule(ctx, userId, rule)
	if err != nil {
		return Rule{}, err
	}
	rule.ID = id
	return rule, nil
}

func (s *RecurringServiceImpl) MaterializeDue(ctx context.Context, today time.Time) ([]int, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}

	created, err, _ := s.group.Do(strconv.Itoa(userId), func() (any, error) {
		return s.materializeDueForUser(ctx, userId, today)
	})
	if err != nil {
		return nil, err
	}
	return created.([]int), nil
}

func (s *RecurringServiceImpl) materializeDueForUser(ctx context.Context, userId int, today time.Time) ([]int, error) {
	rules, err := s.repo.ListRules(ctx, userId)
	if err != nil {
		return nil, err
	}

	created := make([]int, 0)
	for _, rule := range rules {
		switch rule.Interval {
		case IntervalMonthly:
		default:
			log.Debugf("skipping rule %d with unsupported interval %q", rule.ID, rule.Interval)
			continue
		}
		if !isDue(rule.LastRun, today) {
			continue
		}

		expenseId, claimed, err := s.repo.MaterializeRule(ctx, userId, rule, today)
		if err != nil {
			return nil, err
		}
		if !claimed {
			continue
		}
		log.Infof("materialized recurring rule %d into expense %d", rule.ID, expenseId)
		created = append(created, expenseId)

		if err := s.bus.Publish(event_bus.NewEvent(ctx, event_bus.ExpenseCreatedEvent, event_bus.ExpenseCreated{
			ExpenseId: expenseId,
			Date:      today,
			Category:  rule.Category,
			Amount:    rule.Amount,
			Recurring: true,
		})); err != nil {
			log.Warnf("failed to publish expense created event: %v", err)
		}
	}
	return created, nil
}
