package getorder

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/corray333/order-management/internal/service/models/order"
)

type fakeService struct {
	orders map[int64]*order.Order
	err    error

	lastID int64
}

func (s *fakeService) GetByID(_ context.Context, id int64) (*order.Order, error) {
	s.lastID = id
	if s.err != nil {
		return nil, s.err
	}

	return s.orders[id], nil
}

func newRouter(svc *fakeService) *chi.Mux {
	router := chi.NewRouter()
	router.Get("/api/order/{id}", func(w http.ResponseWriter, r *http.Request) {
		GetOrder(w, r, svc)
	})

	return router
}

func TestGetOrder(t *testing.T) {
	t.Parallel()

	existing := &order.Order{
		ID:              7,
		Description:     "Order for Customer 1",
		CreatedAt:       time.Date(2025, 1, 2, 10, 0, 0, 0, time.UTC),
		CountOfProducts: 2,
		ProductIDs:      []int64{1, 2},
	}

	t.Run("existing order", func(t *testing.T) {
		svc := &fakeService{orders: map[int64]*order.Order{7: existing}}

		rec := httptest.NewRecorder()
		newRouter(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/order/7", nil))

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		body := rec.Body.String()
		if !strings.Contains(body, `"countOfProducts":2`) || !strings.Contains(body, `"products":[1,2]`) {
			t.Fatalf("unexpected body: %s", body)
		}
	})

	t.Run("missing order responds with null", func(t *testing.T) {
		svc := &fakeService{orders: map[int64]*order.Order{}}

		rec := httptest.NewRecorder()
		newRouter(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/order/999", nil))

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if strings.TrimSpace(rec.Body.String()) != "null" {
			t.Fatalf("expected null body, got %s", rec.Body.String())
		}
	})

	t.Run("non-numeric id coerces to a non-matching value", func(t *testing.T) {
		svc := &fakeService{orders: map[int64]*order.Order{7: existing}}

		rec := httptest.NewRecorder()
		newRouter(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/order/abc", nil))

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if strings.TrimSpace(rec.Body.String()) != "null" {
			t.Fatalf("expected null body, got %s", rec.Body.String())
		}
		if svc.lastID != 0 {
			t.Fatalf("expected coerced id 0, got %d", svc.lastID)
		}
	})

	t.Run("store error responds with 500", func(t *testing.T) {
		svc := &fakeService{err: errors.New("connection refused")}

		rec := httptest.NewRecorder()
		newRouter(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/order/7", nil))

		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", rec.Code)
		}
	})
}
