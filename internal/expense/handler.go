package expense

import (
	"context"
	"encoding/json"
	"net/http"

	"spendwise/internal/transport"

	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	Add(ctx context.Context, dto CreateExpenseDTO) (*Expense, error)
	Delete(ctx context.Context, id string)
	List() []*Expense
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(service ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: transport.NewBaseHandler(nil),
		Service:     service,
	}
}

func (h *Handler) CreateExpense(w http.ResponseWriter, r *http.Request) {
	var dto CreateExpenseDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("CreateExpense: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	exp, err := h.Service.Add(r.Context(), dto)
	if err != nil {
		h.Logger.Error("CreateExpense: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, exp)
}

func (h *Handler) ListExpenses(w http.ResponseWriter, r *http.Request) {
	expenses := h.Service.List()

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"expenses": expenses,
		"count":    len(expenses),
	})
}

// DeleteExpense removes a record by id. Deleting an id that does not exist
// succeeds with no effect.
func (h *Handler) DeleteExpense(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		h.WriteError(w, http.StatusBadRequest, "invalid expense ID")
		return
	}

	h.Service.Delete(r.Context(), id)
	w.WriteHeader(http.StatusNoContent)
}
