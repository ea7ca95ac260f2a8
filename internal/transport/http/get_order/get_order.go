package getorder

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/corray333/order-management/internal/service/models/order"
)

// service is an interface for the service layer.
type service interface {
	GetByID(ctx context.Context, id int64) (*order.Order, error)
}

// GetOrder handles the get order by id request. A missing order is an
// explicit null response, not an error. A non-numeric id coerces to a
// non-matching value and yields the same null.
func GetOrder(w http.ResponseWriter, r *http.Request, service service) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		id = 0
	}

	found, err := service.GetByID(r.Context(), id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		slog.Error("Error getting order", "order_id", id, "error", err)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(found); err != nil {
		slog.Error("Error writing response for get order", "error", err)
	}
}
