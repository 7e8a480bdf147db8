package recurring

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spendwise/spendwise/internal/rest"
	"github.com/spendwise/spendwise/pkg/expense"
)

type RuleDTO struct {
	ID        int     `json:"id,omitempty"`
	StartDate string  `json:"startDate,omitempty"`
	Category  string  `json:"category,omitempty"`
	Amount    float64 `json:"amount"`
	Note      string  `json:"note,omitempty"`
	Interval  string  `json:"interval,omitempty"`
	LastRun   string  `json:"lastRun,omitempty"`
}

type RecurringHandler struct {
	recurringService RecurringService
}

func NewRecurringHandler(recurringService RecurringService) *RecurringHandler {
	return &RecurringHandler{recurringService}
}

// ListRules godoc
// @Summary List recurring rules
// @Description List the current user's recurring monthly charges.
// @Tags Recurring
// @Produce json
// @Success 200 {array} RuleDTO
// @Router /api/recurring [get]
func (handler *RecurringHandler) ListRules(w http.ResponseWriter, r *http.Request) {
	rules, err := handler.recurringService.ListRules(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	rulesDTO := make([]RuleDTO, 0, len(rules))
	for _, rule := range rules {
		rulesDTO = append(rulesDTO, ruleToDTO(rule))
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(rulesDTO); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// CreateRule godoc
// @Summary Create a recurring rule
// @Description Register a charge that is materialized once per calendar month.
// @Tags Recurring
// @Accept json
// @Produce json
// @Param rule body RuleDTO true "Recurring rule"
// @Success 201 {object} RuleDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid rule"
// @Router /api/recurring [post]
func (handler *RecurringHandler) CreateRule(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	log.Debug("Creating new recurring rule")

	var ruleDTO RuleDTO
	if err := json.NewDecoder(r.Body).Decode(&ruleDTO); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		encodeErr := json.NewEncoder(w).Encode(rest.ErrorResponse{
			Error: "Invalid request body format",
		})
		if encodeErr != nil {
			http.Error(w, encodeErr.Error(), http.StatusInternalServerError)
		}
		return
	}

	rule, err := dtoToRule(ruleDTO)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		encodeErr := json.NewEncoder(w).Encode(rest.ErrorResponse{
			Error:   "Invalid date",
			Details: "startDate must be in YYYY-MM-DD format",
		})
		if encodeErr != nil {
			http.Error(w, encodeErr.Error(), http.StatusInternalServerError)
		}
		return
	}

	created, err := handler.recurringService.CreateRule(r.Context(), rule)
	if err != nil {
		if errors.Is(err, ErrNegativeAmount) || errors.Is(err, ErrRuleInvalid) {
			w.WriteHeader(http.StatusBadRequest)
			encodeErr := json.NewEncoder(w).Encode(rest.ErrorResponse{
				Error:   "Invalid rule",
				Details: err.Error(),
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
	if err := json.NewEncoder(w).Encode(ruleToDTO(created)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func ruleToDTO(rule Rule) RuleDTO {
	dto := RuleDTO{
		ID:        rule.ID,
		StartDate: rule.StartDate.Format(expense.DateFormat),
		Category:  rule.Category,
		Amount:    rule.Amount,
		Note:      rule.Note,
		Interval:  string(rule.Interval),
	}
	if rule.LastRun != nil {
		dto.LastRun = rule.LastRun.Format(expense.DateFormat)
	}
	return dto
}

func dtoToRule(dto RuleDTO) (Rule, error) {
	var startDate time.Time
	if dto.StartDate != "" {
		parsed, err := time.Parse(expense.DateFormat, dto.StartDate)
		if err != nil {
			return Rule{}, err
		}
		startDate = parsed
	}
	return Rule{
		StartDate: startDate,
		Category:  dto.Category,
		Amount:    dto.Amount,
		Note:      dto.Note,
		Interval:  Interval(dto.Interval),
	}, nil
}
