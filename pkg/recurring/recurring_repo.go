package recurring

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spendwise/spendwise/pkg/expense"
)

type RecurringRepo interface {
	ListRules(ctx context.Context, userId int) ([]Rule, error)
	StoreRule(ctx context.Context, userId int, rule Rule) (int, error)
	// MaterializeRule atomically advances the rule's last_run to today and
	// inserts the matching expense. The two writes share one transaction and
	// the update is conditional on last_run still holding the value the rule
	// was loaded with, so concurrent callers create at most one expense per
	// period. Returns the new expense id and whether this call claimed the
	// period.
	MaterializeRule(ctx context.Context, userId int, rule Rule, today time.Time) (int, bool, error)
}

type RecurringRepoImpl struct {
	db *sql.DB
}

func NewRecurringRepo(db *sql.DB) *RecurringRepoImpl {
	return &RecurringRepoImpl{db: db}
}

func (r *RecurringRepoImpl) ListRules(ctx context.Context, userId int) ([]Rule, error) {
	query := `SELECT id, start_date, category, amount, note, interval, last_run
				FROM recurring WHERE user_id = ? ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, userId)
	if err != nil {
		err := fmt.Errorf("could not query recurring rules: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	rules := make([]Rule, 0)
	for rows.Next() {
		var rule Rule
		var startDateString string
		var note sql.NullString
		var interval string
		if err := rows.Scan(&rule.ID, &startDateString, &rule.Category, &rule.Amount, &note, &interval, &rule.lastRunRaw); err != nil {
			err := fmt.Errorf("could not scan recurring rule: %w", err)
			log.Error(err)
			return nil, err
		}
		startDate, err := time.Parse(expense.DateFormat, startDateString)
		if err != nil {
			err := fmt.Errorf("could not parse rule start date: %w", err)
			log.Error(err)
			return nil, err
		}
		rule.StartDate = startDate
		if note.Valid {
			rule.Note = note.String
		}
		rule.Interval = Interval(interval)
		if rule.lastRunRaw.Valid {
			lastRun, err := time.Parse(expense.DateFormat, rule.lastRunRaw.String)
			if err != nil {
				// Fail open: an unreadable last_run must not silently drop a
				// recurring charge, so the rule stays due.
				log.Warnf("unparseable last_run %q on rule %d, treating as due", rule.lastRunRaw.String, rule.ID)
			} else {
				rule.LastRun = &lastRun
			}
		}
		rules = append(rules, rule)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}
	return rules, nil
}

func (r *RecurringRepoImpl) StoreRule(ctx context.Context, userId int, rule Rule) (int, error) {
	query := `INSERT INTO recurring (user_id, start_date, category, amount, note, interval, last_run)
				VALUES (?, ?, ?, ?, ?, ?, NULL)`
	result, err := r.db.ExecContext(ctx, query,
		userId,
		rule.StartDate.Format(expense.DateFormat),
		rule.Category,
		rule.Amount,
		rule.Note,
		string(rule.Interval),
	)
	if err != nil {
		err := fmt.Errorf("could not execute query: %w", err)
		log.Error(err)
		return 0, err
	}
	lastInsertID, err := result.LastInsertId()
	if err != nil {
		err := fmt.Errorf("could not retrieve last insert id: %w", err)
		log.Error(err)
		return 0, err
	}
	return int(lastInsertID), nil
}

func (r *RecurringRepoImpl) MaterializeRule(ctx context.Context, userId int, rule Rule, today time.Time) (int, bool, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		err := fmt.Errorf("could not begin transaction: %w", err)
		log.Error(err)
		return 0, false, err
	}
	defer tx.Rollback()

	// Compare-and-swap on last_run: only the caller that still sees the
	// loaded value claims the period.
	updateQuery := `UPDATE recurring SET last_run = ? WHERE id = ? AND user_id = ? AND last_run IS ?`
	result, err := tx.ExecContext(ctx, updateQuery,
		today.Format(expense.DateFormat),
		rule.ID,
		userId,
		rule.lastRunRaw,
	)
	if err != nil {
		err := fmt.Errorf("could not update last_run: %w", err)
		log.Error(err)
		return 0, false, err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		err := fmt.Errorf("could not get rows affected: %w", err)
		log.Error(err)
		return 0, false, err
	}
	if rowsAffected == 0 {
		log.Debugf("rule %d already materialized by a concurrent request", rule.ID)
		return 0, false, nil
	}

	insertQuery := `INSERT INTO expenses (user_id, date, category, amount, note) VALUES (?, ?, ?, ?, ?)`
	insertResult, err := tx.ExecContext(ctx, insertQuery,
		userId,
		today.Format(expense.DateFormat),
		rule.Category,
		rule.Amount,
		rule.Note,
	)
	if err != nil {
		err := fmt.Errorf("could not insert materialized expense: %w", err)
		log.Error(err)
		return 0, false, err
	}
	expenseId, err := insertResult.LastInsertId()
	if err != nil {
		err := fmt.Errorf("could not retrieve last insert id: %w", err)
		log.Error(err)
		return 0, false, err
	}

	if err := tx.Commit(); err != nil {
		err := fmt.Errorf("could not commit transaction: %w", err)
		log.Error(err)
		return 0, false, err
	}
	return int(expenseId), true, nil
}
