package dashboard

import (
	"encoding/json"
	"net/http"

	"github.com/spendwise/spendwise/pkg/expense"
	"github.com/spendwise/spendwise/pkg/summary"
)

type WarningDTO struct {
	Category   string  `json:"category"`
	Level      string  `json:"level"`
	Spent      float64 `json:"spent"`
	Limit      float64 `json:"limit"`
	Percentage int     `json:"percentage"`
	Message    string  `json:"message"`
}

type ViewDTO struct {
	Expenses []ExpenseDTO            `json:"expenses"`
	Budgets  []BudgetDTO             `json:"budgets"`
	Summary  summary.MonthSummaryDTO `json:"summary"`
	Warnings []WarningDTO            `json:"warnings"`
}

type BudgetDTO struct {
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
	Year     int     `json:"year"`
	Month    int     `json:"month"`
}

type ExpenseDTO struct {
	ID       int     `json:"id"`
	Date     string  `json:"date"`
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
	Note     string  `json:"note,omitempty"`
}

type DashboardHandler struct {
	dashboardService DashboardService
}

func NewDashboardHandler(dashboardService DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService}
}

// GetDashboard godoc
// @Summary Get the dashboard view
// @Description Recent expenses, the current month's summary and budget warnings. Due recurring charges are materialized on the way.
// @Tags Dashboard
// @Produce json
// @Success 200 {object} ViewDTO
// @Router /api/dashboard [get]
func (handler *DashboardHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	view, err := handler.dashboardService.View(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(viewToDTO(view)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func viewToDTO(view View) ViewDTO {
	expensesDTO := make([]ExpenseDTO, 0, len(view.Expenses))
	for _, e := range view.Expenses {
		expensesDTO = append(expensesDTO, ExpenseDTO{
			ID:       e.ID,
			Date:     e.Date.Format(expense.DateFormat),
			Category: e.Category,
			Amount:   e.Amount,
			Note:     e.Note,
		})
	}

	budgetsDTO := make([]BudgetDTO, 0, len(view.Budgets))
	for _, b := range view.Budgets {
		budgetsDTO = append(budgetsDTO, BudgetDTO{
			Category: b.Category,
			Amount:   b.Amount,
			Year:     b.Year,
			Month:    b.Month,
		})
	}

	warningsDTO := make([]WarningDTO, 0, len(view.Warnings))
	for _, warning := range view.Warnings {
		warningsDTO = append(warningsDTO, WarningDTO{
			Category:   warning.Category,
			Level:      string(warning.Level),
			Spent:      warning.Spent,
			Limit:      warning.Limit,
			Percentage: warning.Percentage,
			Message:    warning.Message,
		})
	}

	return ViewDTO{
		Expenses: expensesDTO,
		Budgets:  budgetsDTO,
		Summary:  summary.SummaryToDTO(view.Summary),
		Warnings: warningsDTO,
	}
}
