package updateorder

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/corray333/order-management/internal/service/models/order"
)

// service is an interface for the service layer.
type service interface {
	Update(ctx context.Context, id int64, description string, productIDs []int64) (*order.Order, error)
}

type updateOrderRequest struct {
	OrderDescription string  `json:"orderDescription" validate:"required,max=100"`
	ProductIDs       []int64 `json:"productIds"`
}

// Validate validates the update order request.
func (r *updateOrderRequest) Validate() error {
	return validator.New().Struct(r)
}

// UpdateOrder handles the update order request. The supplied product set
// fully replaces the prior associations; an omitted or empty set clears them.
func UpdateOrder(w http.ResponseWriter, r *http.Request, service service) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		id = 0
	}

	var req updateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Failed to decode request body", http.StatusBadRequest)
		slog.Error("Error decoding request body for update order", "error", err)

		return
	}

	if err := req.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error validating request body for update order", "error", err)

		return
	}

	updated, err := service.Update(r.Context(), id, req.OrderDescription, req.ProductIDs)
	if err != nil {
		switch {
		case errors.Is(err, order.ErrInvalidDescription):
			http.Error(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, order.ErrNotFound):
			http.Error(w, err.Error(), http.StatusNotFound)
		default:
			http.Error(w, err.Error(), http.StatusInternalServerError)
			slog.Error("Error updating order", "order_id", id, "error", err)
		}

		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(updated); err != nil {
		slog.Error("Error writing response for update order", "error", err)
	}
}
