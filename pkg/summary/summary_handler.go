package summary

import (
	"encoding/json"
	"errors"
	"net/http"
	"sort"
	"strconv"

	"github.com/spendwise/spendwise/internal/rest"
)

// MonthSummaryDTO lays the totals out as parallel arrays so a chart can
// consume them directly. Labels are sorted so the response is stable.
type MonthSummaryDTO struct {
	Year   int       `json:"year"`
	Month  int       `json:"month"`
	Labels []string  `json:"labels"`
	Data   []float64 `json:"data"`
	Total  float64   `json:"total"`
}

type SummaryHandler struct {
	summaryService SummaryService
}

func NewSummaryHandler(summaryService SummaryService) *SummaryHandler {
	return &SummaryHandler{summaryService}
}

// GetSummary godoc
// @Summary Get a monthly spending summary
// @Description Per-category totals and the overall total for one calendar month.
// @Tags Summary
// @Produce json
// @Param year query int true "Year"
// @Param month query int true "Month (1-12)"
// @Success 200 {object} MonthSummaryDTO
// @Failure 400 {object} rest.ErrorResponse "Missing or invalid year/month"
// @Router /api/summary [get]
func (handler *SummaryHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	year, yearErr := strconv.Atoi(r.URL.Query().Get("year"))
	month, monthErr := strconv.Atoi(r.URL.Query().Get("month"))
	if yearErr != nil || monthErr != nil {
		w.WriteHeader(http.StatusBadRequest)
		encodeErr := json.NewEncoder(w).Encode(rest.ErrorResponse{
			Error: "year and month required",
		})
		if encodeErr != nil {
			http.Error(w, encodeErr.Error(), http.StatusInternalServerError)
		}
		return
	}

	monthSummary, err := handler.summaryService.SummarizeMonth(r.Context(), year, month)
	if err != nil {
		if errors.Is(err, ErrInvalidPeriod) {
			w.WriteHeader(http.StatusBadRequest)
			encodeErr := json.NewEncoder(w).Encode(rest.ErrorResponse{
				Error: err.Error(),
			})
			if encodeErr != nil {
				http.Error(w, encodeErr.Error(), http.StatusInternalServerError)
			}
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(SummaryToDTO(monthSummary)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// SummaryToDTO flattens a summary into sorted label/data arrays.
func SummaryToDTO(monthSummary MonthSummary) MonthSummaryDTO {
	labels := make([]string, 0, len(monthSummary.ByCategory))
	for category := range monthSummary.ByCategory {
		labels = append(labels, category)
	}
	sort.Strings(labels)

	data := make([]float64, 0, len(labels))
	for _, label := range labels {
		data = append(data, monthSummary.ByCategory[label])
	}
	return MonthSummaryDTO{
		Year:   monthSummary.Year,
		Month:  monthSummary.Month,
		Labels: labels,
		Data:   data,
		Total:  monthSummary.Total,
	}
}
