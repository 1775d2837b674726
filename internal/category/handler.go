package category

import (
	"net/http"

	"spendwise/internal/transport"
)

type Handler struct {
	*transport.BaseHandler
}

func NewHandler() *Handler {
	return &Handler{
		BaseHandler: transport.NewBaseHandler(nil),
	}
}

// GetCategories returns the fixed category catalog.
func (h *Handler) GetCategories(w http.ResponseWriter, r *http.Request) {
	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"categories": All(),
	})
}
