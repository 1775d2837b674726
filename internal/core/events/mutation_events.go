package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventTypeExpenseAdded    = "expense.added"
	EventTypeExpenseDeleted  = "expense.deleted"
	EventTypeSettingsUpdated = "settings.updated"
)

type ExpenseAddedEvent struct {
	BaseEvent
	ExpenseID string  `json:"expense_id"`
	Amount    float64 `json:"amount"`
	Category  string  `json:"category"`
}

func NewExpenseAddedEvent(expenseID string, amount float64, category string) *ExpenseAddedEvent {
	return &ExpenseAddedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeExpenseAdded,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"expense_id": expenseID,
				"amount":     amount,
				"category":   category,
			},
		},
		ExpenseID: expenseID,
		Amount:    amount,
		Category:  category,
	}
}

type ExpenseDeletedEvent struct {
	BaseEvent
	ExpenseID string `json:"expense_id"`
}

func NewExpenseDeletedEvent(expenseID string) *ExpenseDeletedEvent {
	return &ExpenseDeletedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeExpenseDeleted,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"expense_id": expenseID,
			},
		},
		ExpenseID: expenseID,
	}
}

type SettingsUpdatedEvent struct {
	BaseEvent
	Fields []string `json:"fields"`
}

func NewSettingsUpdatedEvent(fields []string) *SettingsUpdatedEvent {
	return &SettingsUpdatedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeSettingsUpdated,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"fields": fields,
			},
		},
		Fields: fields,
	}
}
