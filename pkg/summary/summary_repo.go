package summary

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spendwise/spendwise/pkg/expense"
)

type SummaryRepo interface {
	// TotalsByCategory sums expense amounts per category over the calendar
	// month, using a half-open date interval so month boundaries never
	// double-count.
	TotalsByCategory(ctx context.Context, userId int, year int, month int) (map[string]float64, error)
}

type SummaryRepoImpl struct {
	db *sql.DB
}

func NewSummaryRepo(db *sql.DB) *SummaryRepoImpl {
	return &SummaryRepoImpl{db: db}
}

func (r *SummaryRepoImpl) TotalsByCategory(ctx context.Context, userId int, year int, month int) (map[string]float64, error) {
	from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)

	query := `SELECT category, SUM(amount) FROM expenses
				WHERE user_id = ? AND date >= ? AND date < ?
				GROUP BY category`
	rows, err := r.db.QueryContext(ctx, query,
		userId,
		from.Format(expense.DateFormat),
		to.Format(expense.DateFormat),
	)
	if err != nil {
		err := fmt.Errorf("could not query month totals: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	totals := make(map[string]float64)
	for rows.Next() {
		var category string
		var total float64
		if err := rows.Scan(&category, &total); err != nil {
			err := fmt.Errorf("could not scan month total: %w", err)
			log.Error(err)
			return nil, err
		}
		totals[category] = total
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}
	return totals, nil
}
