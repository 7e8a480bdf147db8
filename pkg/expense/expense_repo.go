package expense

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
)

type ExpenseRepo interface {
	// List returns the user's expenses ordered by date descending.
	List(ctx context.Context, userId int, filter Filter) ([]Expense, error)
	Store(ctx context.Context, userId int, expense Expense) (int, error)
	Delete(ctx context.Context, userId int, expenseId int) (bool, error)
}

type ExpenseRepoImpl struct {
	db *sql.DB
}

func NewExpenseRepo(db *sql.DB) *ExpenseRepoImpl {
	return &ExpenseRepoImpl{db: db}
}

func (e *ExpenseRepoImpl) List(ctx context.Context, userId int, filter Filter) ([]Expense, error) {
	query := `SELECT id, date, category, amount, note FROM expenses WHERE user_id = ?`
	args := []any{userId}

	if !filter.From.IsZero() {
		query += ` AND date >= ?`
		args = append(args, filter.From.Format(DateFormat))
	}
	if !filter.To.IsZero() {
		query += ` AND date < ?`
		args = append(args, filter.To.Format(DateFormat))
	}
	query += ` ORDER BY date DESC, id DESC LIMIT ?`
	limit := filter.Limit
	if limit <= 0 {
		limit = 500
	}
	args = append(args, limit)

	rows, err := e.db.QueryContext(ctx, query, args...)
	if err != nil {
		err := fmt.Errorf("could not query expenses: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	expenses := make([]Expense, 0)
	for rows.Next() {
		var expense Expense
		var dateString string
		var note sql.NullString
		if err := rows.Scan(&expense.ID, &dateString, &expense.Category, &expense.Amount, &note); err != nil {
			err := fmt.Errorf("could not scan expense: %w", err)
			log.Error(err)
			return nil, err
		}
		date, err := time.Parse(DateFormat, dateString)
		if err != nil {
			err := fmt.Errorf("could not parse expense date: %w", err)
			log.Error(err)
			return nil, err
		}
		expense.Date = date
		if note.Valid {
			expense.Note = note.String
		}
		expenses = append(expenses, expense)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}
	return expenses, nil
}

func (e *ExpenseRepoImpl) Store(ctx context.Context, userId int, expense Expense) (int, error) {
	query := `INSERT INTO expenses (user_id, date, category, amount, note) VALUES (?, ?, ?, ?, ?)`
	result, err := e.db.ExecContext(ctx, query,
		userId,
		expense.Date.Format(DateFormat),
		expense.Category,
		expense.Amount,
		expense.Note,
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

func (e *ExpenseRepoImpl) Delete(ctx context.Context, userId int, expenseId int) (bool, error) {
	query := `DELETE FROM expenses WHERE id = ? AND user_id = ?`
	result, err := e.db.ExecContext(ctx, query, expenseId, userId)
	if err != nil {
		err := fmt.Errorf("could not execute query: %w", err)
		log.Error(err)
		return false, err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		err := fmt.Errorf("could not get rows affected: %w", err)
		log.Error(err)
		return false, err
	}
	return rowsAffected == 1, nil
}
