package expense

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"github.com/spendwise/spendwise/internal/rest"
)

// csvExportLimit mirrors the larger cap used for full exports as opposed to
// the default listing page size.
const csvExportLimit = 10000

type ExpenseDTO struct {
	ID       int     `json:"id,omitempty"`
	Date     string  `json:"date,omitempty"`
	Category string  `json:"category,omitempty"`
	Amount   float64 `json:"amount"`
	Note     string  `json:"note,omitempty"`
}

type ExpenseHandler struct {
	expenseService ExpenseService
	csvRenderer    ExpenseRenderer
}

func NewExpenseHandler(expenseService ExpenseService, csvRenderer ExpenseRenderer) *ExpenseHandler {
	return &ExpenseHandler{expenseService, csvRenderer}
}

// ListExpenses godoc
// @Summary List expenses
// @Description List the current user's expenses, newest first. Returns CSV when requested with Accept: text/csv.
// @Tags Expense
// @Produce json
// @Produce text/csv
// @Param from query string false "Start date (YYYY-MM-DD, inclusive)"
// @Param to query string false "End date (YYYY-MM-DD, exclusive)"
// @Param limit query int false "Maximum number of rows"
// @Success 200 {array} ExpenseDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid date or limit"
// @Router /api/expense [get]
func (handler *ExpenseHandler) ListExpenses(w http.ResponseWriter, r *http.Request) {
	filter, err := filterFromQuery(r)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		encodeErr := json.NewEncoder(w).Encode(rest.ErrorResponse{
			Error:   "Invalid filter",
			Details: err.Error(),
		})
		if encodeErr != nil {
			http.Error(w, encodeErr.Error(), http.StatusInternalServerError)
		}
		return
	}

	if r.Header.Get("Accept") == "text/csv" && filter.Limit == 0 {
		filter.Limit = csvExportLimit
	}

	expenses, err := handler.expenseService.List(r.Context(), filter)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if r.Header.Get("Accept") == "text/csv" {
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", `attachment; filename="expenses.csv"`)
		csv, err := handler.csvRenderer.RenderExpenses(expenses)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		if _, err := w.Write([]byte(csv)); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		return
	}

	expensesDTO := make([]ExpenseDTO, 0, len(expenses))
	for _, e := range expenses {
		expensesDTO = append(expensesDTO, expenseToDTO(e))
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(expensesDTO); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// CreateExpense godoc
// @Summary Record a new expense
// @Tags Expense
// @Accept json
// @Produce json
// @Param expense body ExpenseDTO true "Expense"
// @Success 201 {object} ExpenseDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid expense"
// @Router /api/expense [post]
func (handler *ExpenseHandler) CreateExpense(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	log.Debug("Recording new expense")

	var expenseDTO ExpenseDTO
	if err := json.NewDecoder(r.Body).Decode(&expenseDTO); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		encodeErr := json.NewEncoder(w).Encode(rest.ErrorResponse{
			Error: "Invalid request body format",
		})
		if encodeErr != nil {
			http.Error(w, encodeErr.Error(), http.StatusInternalServerError)
		}
		return
	}

	expense, err := dtoToExpense(expenseDTO)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		encodeErr := json.NewEncoder(w).Encode(rest.ErrorResponse{
			Error:   "Invalid date",
			Details: "date must be in YYYY-MM-DD format",
		})
		if encodeErr != nil {
			http.Error(w, encodeErr.Error(), http.StatusInternalServerError)
		}
		return
	}

	created, err := handler.expenseService.Create(r.Context(), expense)
	if err != nil {
		if errors.Is(err, ErrNegativeAmount) {
			w.WriteHeader(http.StatusBadRequest)
			encodeErr := json.NewEncoder(w).Encode(rest.ErrorResponse{
				Error: "Amount must not be negative",
			})
			if encodeErr != nil {
				http.Error(w, encodeErr.Error(), http.StatusInternalServerError)
			}
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(expenseToDTO(created)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// DeleteExpense godoc
// @Summary Delete an expense
// @Tags Expense
// @Param id path int true "Expense id"
// @Success 204
// @Failure 404 {string} string "Expense not found"
// @Router /api/expense/{id} [delete]
func (handler *ExpenseHandler) DeleteExpense(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	expenseIdString := vars["id"]
	expenseId, err := strconv.ParseInt(expenseIdString, 10, 64)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ok, err := handler.expenseService.Delete(r.Context(), int(expenseId))
	if err != nil && !errors.Is(err, ErrExpenseNotFound) {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if !ok {
		http.Error(w, "Expense not found", http.StatusNotFound)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func filterFromQuery(r *http.Request) (Filter, error) {
	var filter Filter
	if fromString := r.URL.Query().Get("from"); fromString != "" {
		from, err := time.Parse(DateFormat, fromString)
		if err != nil {
			return Filter{}, err
		}
		filter.From = from
	}
	if toString := r.URL.Query().Get("to"); toString != "" {
		to, err := time.Parse(DateFormat, toString)
		if err != nil {
			return Filter{}, err
		}
		filter.To = to
	}
	if limitString := r.URL.Query().Get("limit"); limitString != "" {
		limit, err := strconv.Atoi(limitString)
		if err != nil {
			return Filter{}, err
		}
		filter.Limit = limit
	}
	return filter, nil
}

func expenseToDTO(expense Expense) ExpenseDTO {
	return ExpenseDTO{
		ID:       expense.ID,
		Date:     expense.Date.Format(DateFormat),
		Category: expense.Category,
		Amount:   expense.Amount,
		Note:     expense.Note,
	}
}

func dtoToExpense(dto ExpenseDTO) (Expense, error) {
	var date time.Time
	if dto.Date != "" {
		parsed, err := time.Parse(DateFormat, dto.Date)
		if err != nil {
			return Expense{}, err
		}
		date = parsed
	}
	return Expense{
		ID:       dto.ID,
		Date:     date,
		Category: dto.Category,
		Amount:   dto.Amount,
		Note:     dto.Note,
	}, nil
}
