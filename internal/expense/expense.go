package expense

import (
	"time"

	"github.com/google/uuid"
)

// Expense is a single logged transaction. Records are immutable once
// created; they can only be deleted, never edited in place.
type Expense struct {
	ID          string    `json:"id"`
	Amount      float64   `json:"amount"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
}

// NewExpense builds an expense from a validated DTO, assigning a fresh
// opaque id. The description falls back to the category name when omitted.
func NewExpense(dto CreateExpenseDTO) *Expense {
	description := dto.Description
	if description == "" {
		description = dto.Category
	}

	return &Expense{
		ID:          uuid.New().String(),
		Amount:      dto.Amount,
		Category:    dto.Category,
		Description: description,
		Date:        dto.parsedDate,
	}
}
