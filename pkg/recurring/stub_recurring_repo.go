package recurring

import (
	"context"
	"database/sql"
	"time"

	"github.com/spendwise/spendwise/pkg/expense"
)

type StubRecurringRepo struct {
	nextRuleId    int
	nextExpenseId int
	rules         map[int]Rule
	owners        map[int]int
	// Expenses records materialized expenses so tests can count them.
	Expenses []expense.Expense
}

func NewStubRecurringRepo() *StubRecurringRepo {
	return &StubRecurringRepo{
		rules:  map[int]Rule{},
		owners: map[int]int{},
	}
}

func (s *StubRecurringRepo) ListRules(ctx context.Context, userId int) ([]Rule, error) {
	rules := make([]Rule, 0)
	for id := 1; id <= s.nextRuleId; id++ {
		rule, ok := s.rules[id]
		if ok && s.owners[id] == userId {
			rules = append(rules, rule)
		}
	}
	return rules, nil
}

func (s *StubRecurringRepo) StoreRule(ctx context.Context, userId int, rule Rule) (int, error) {
	s.nextRuleId++
	rule.ID = s.nextRuleId
	s.rules[rule.ID] = rule
	s.owners[rule.ID] = userId
	return rule.ID, nil
}

func (s *StubRecurringRepo) MaterializeRule(ctx context.Context, userId int, rule Rule, today time.Time) (int, bool, error) {
	stored, ok := s.rules[rule.ID]
	if !ok || s.owners[rule.ID] != userId {
		return 0, false, nil
	}
	// Same compare-and-swap the SQL repository performs.
	if stored.lastRunRaw != rule.lastRunRaw {
		return 0, false, nil
	}

	lastRun := today
	stored.LastRun = &lastRun
	stored.lastRunRaw = sql.NullString{String: today.Format(expense.DateFormat), Valid: true}
	s.rules[rule.ID] = stored

	s.nextExpenseId++
	s.Expenses = append(s.Expenses, expense.Expense{
		ID:       s.nextExpenseId,
		Date:     today,
		Category: rule.Category,
		Amount:   rule.Amount,
		Note:     rule.Note,
	})
	return s.nextExpenseId, true, nil
}

// SetLastRun overrides a rule's last_run as if it were stored, including the
// raw text form used for the compare-and-swap.
func (s *StubRecurringRepo) SetLastRun(ruleId int, lastRun time.Time) {
	rule := s.rules[ruleId]
	run := lastRun
	rule.LastRun = &run
	rule.lastRunRaw = sql.NullString{String: lastRun.Format(expense.DateFormat), Valid: true}
	s.rules[ruleId] = rule
}

// SetMalformedLastRun stores an unparseable last_run value, mimicking what
// the SQL repository does when it scans one: raw kept, parsed value dropped.
func (s *StubRecurringRepo) SetMalformedLastRun(ruleId int, raw string) {
	rule := s.rules[ruleId]
	rule.LastRun = nil
	rule.lastRunRaw = sql.NullString{String: raw, Valid: true}
	s.rules[ruleId] = rule
}

func (s *StubRecurringRepo) Cleanup() {
	s.rules = map[int]Rule{}
	s.owners = map[int]int{}
	s.Expenses = nil
	s.nextRuleId = 0
	s.nextExpenseId = 0
}
