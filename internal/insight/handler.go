package insight

import (
	"context"
	"errors"
	"net/http"

	"spendwise/internal"
	"spendwise/internal/transport"
)

type ServiceAPI interface {
	Status() Status
	RequestAnalysis(ctx context.Context) (Status, error)
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

// GetInsight returns the current request state and last result.
func (h *Handler) GetInsight(w http.ResponseWriter, r *http.Request) {
	h.WriteJSON(w, http.StatusOK, h.Service.Status())
}

// RequestAnalysis kicks off an analysis run. 202 while the run is Pending,
// 200 when an empty collection resolves immediately, 409 when a run is
// already in flight, 403 when the feature is disabled.
func (h *Handler) RequestAnalysis(w http.ResponseWriter, r *http.Request) {
	status, err := h.Service.RequestAnalysis(r.Context())
	if err != nil {
		if !errors.Is(err, internal.ErrAnalysisInFlight) && !errors.Is(err, internal.ErrAIDisabled) {
			h.Logger.Error("RequestAnalysis: service error", "error", err)
		}
		h.HandleServiceError(w, err)
		return
	}

	code := http.StatusOK
	if status.State == StatePending {
		code = http.StatusAccepted
	}
	h.WriteJSON(w, code, status)
}
