package expense

import (
	"time"

	"spendwise/internal"
	"spendwise/internal/category"
)

// CreateExpenseDTO represents the request payload for logging an expense.
// Date carries the user-supplied calendar date as YYYY-MM-DD; a full
// RFC 3339 timestamp is also accepted.
type CreateExpenseDTO struct {
	Amount      float64 `json:"amount"`
	Category    string  `json:"category"`
	Description string  `json:"description,omitempty"`
	Date        string  `json:"date"`

	parsedDate time.Time
}

const maxDescriptionLength = 500

// Validate validates the CreateExpenseDTO
func (dto *CreateExpenseDTO) Validate() error {
	if dto.Amount <= 0 {
		return internal.NewValidationFieldError("amount", "amount must be greater than 0", internal.ErrCodeInvalidAmount)
	}
	if dto.Category == "" {
		return internal.NewValidationFieldError("category", "category is required", internal.ErrCodeInvalidCategory)
	}
	if !category.IsValid(dto.Category) {
		return internal.NewValidationFieldError("category", "unknown category: "+dto.Category, internal.ErrCodeInvalidCategory)
	}
	if len(dto.Description) > maxDescriptionLength {
		return internal.NewValidationFieldError("description", "description must be less than 500 characters", internal.ErrCodeInvalidDescription)
	}
	if dto.Date == "" {
		return internal.NewValidationFieldError("date", "date is required", internal.ErrCodeInvalidDate)
	}

	parsed, err := parseDate(dto.Date)
	if err != nil {
		return internal.NewValidationFieldError("date", "date must be YYYY-MM-DD or RFC 3339", internal.ErrCodeInvalidDate)
	}
	if futureDay(parsed, time.Now()) {
		return internal.NewValidationFieldError("date", "date cannot be in the future", internal.ErrCodeInvalidDate)
	}
	dto.parsedDate = parsed

	return nil
}

// futureDay reports whether t's calendar day is after now's, matching the
// day-level comparison the aggregates use.
func futureDay(t, now time.Time) bool {
	ty, tm, td := t.Date()
	ny, nm, nd := now.Date()
	if ty != ny {
		return ty > ny
	}
	if tm != nm {
		return tm > nm
	}
	return td > nd
}

func parseDate(value string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, value)
}
