package budget

import (
	"context"
	"database/sql"
	"fmt"

	log "github.com/sirupsen/logrus"
)

type BudgetRepo interface {
	// ListForMonth returns the user's budgets for one month, ordered by category.
	ListForMonth(ctx context.Context, userId int, year int, month int) ([]Budget, error)
	// Upsert replaces any existing budget for the same (category, year, month).
	Upsert(ctx context.Context, userId int, budget Budget) error
}

type BudgetRepoImpl struct {
	db *sql.DB
}

func NewBudgetRepo(db *sql.DB) *BudgetRepoImpl {
	return &BudgetRepoImpl{db: db}
}

func (b *BudgetRepoImpl) ListForMonth(ctx context.Context, userId int, year int, month int) ([]Budget, error) {
	query := `SELECT category, amount, year, month FROM budgets
				WHERE user_id = ? AND year = ? AND month = ? ORDER BY category`
	rows, err := b.db.QueryContext(ctx, query, userId, year, month)
	if err != nil {
		err := fmt.Errorf("could not query budgets: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	budgets := make([]Budget, 0)
	for rows.Next() {
		var budget Budget
		if err := rows.Scan(&budget.Category, &budget.Amount, &budget.Year, &budget.Month); err != nil {
			err := fmt.Errorf("could not scan budget: %w", err)
			log.Error(err)
			return nil, err
		}
		budgets = append(budgets, budget)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}
	return budgets, nil
}

func (b *BudgetRepoImpl) Upsert(ctx context.Context, userId int, budget Budget) error {
	tx, err := b.db.BeginTx(ctx, nil)
	if err != nil {
		err := fmt.Errorf("could not begin transaction: %w", err)
		log.Error(err)
		return err
	}
	defer tx.Rollback()

	deleteQuery := `DELETE FROM budgets WHERE user_id = ? AND category = ? AND year = ? AND month = ?`
	if _, err := tx.ExecContext(ctx, deleteQuery, userId, budget.Category, budget.Year, budget.Month); err != nil {
		err := fmt.Errorf("could not delete previous budget: %w", err)
		log.Error(err)
		return err
	}

	insertQuery := `INSERT INTO budgets (user_id, category, amount, year, month) VALUES (?, ?, ?, ?, ?)`
	if _, err := tx.ExecContext(ctx, insertQuery, userId, budget.Category, budget.Amount, budget.Year, budget.Month); err != nil {
		err := fmt.Errorf("could not insert budget: %w", err)
		log.Error(err)
		return err
	}

	if err := tx.Commit(); err != nil {
		err := fmt.Errorf("could not commit transaction: %w", err)
		log.Error(err)
		return err
	}
	return nil
}
