package expense

import (
	"bytes"
	"encoding/csv"
	"strconv"

	log "github.com/sirupsen/logrus"
)

type ExpenseRenderer interface {
	RenderExpenses(expenses []Expense) (string, error)
}

type CsvExpenseRendererImpl struct {
}

func NewCsvExpenseRenderer() *CsvExpenseRendererImpl {
	return &CsvExpenseRendererImpl{}
}

// RenderExpenses renders expense rows as CSV with an id,date,category,amount,note header.
func (t *CsvExpenseRendererImpl) RenderExpenses(expenses []Expense) (string, error) {
	data := make([][]string, 0, len(expenses)+1)
	data = append(data, []string{"id", "date", "category", "amount", "note"})
	for _, e := range expenses {
		data = append(data, []string{
			strconv.Itoa(e.ID),
			e.Date.Format(DateFormat),
			e.Category,
			strconv.FormatFloat(e.Amount, 'f', -1, 64),
			e.Note,
		})
	}

	var b bytes.Buffer
	writer := csv.NewWriter(&b)
	for _, row := range data {
		if err := writer.Write(row); err != nil {
			log.Errorf("Error writing to csv: %v", err)
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		log.Errorf("Error writing to csv: %v", err)
		return "", err
	}

	return b.String(), nil
}
