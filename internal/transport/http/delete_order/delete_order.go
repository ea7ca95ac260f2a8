package deleteorder

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/corray333/order-management/internal/service/models/order"
)

// service is an interface for the service layer.
type service interface {
	Remove(ctx context.Context, id int64) (*order.Order, error)
}

// deleteOrderResponse carries the deleted row's stored columns only; the
// computed count and product list no longer exist for a deleted order.
type deleteOrderResponse struct {
	ID               int64     `json:"id"`
	OrderDescription string    `json:"orderDescription"`
	CreatedAt        time.Time `json:"createdAt"`
}

// DeleteOrder handles the delete order request. The response carries the
// deleted order's prior field values, or null when no order matched.
func DeleteOrder(w http.ResponseWriter, r *http.Request, service service) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		id = 0
	}

	deleted, err := service.Remove(r.Context(), id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		slog.Error("Error deleting order", "order_id", id, "error", err)

		return
	}

	var resp *deleteOrderResponse
	if deleted != nil {
		resp = &deleteOrderResponse{
			ID:               deleted.ID,
			OrderDescription: deleted.Description,
			CreatedAt:        deleted.CreatedAt,
		}
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("Error writing response for delete order", "error", err)
	}
}
