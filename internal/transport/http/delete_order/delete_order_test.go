package deleteorder

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/corray333/order-management/internal/service/models/order"
)

type fakeService struct {
	deleted *order.Order
	err     error

	gotID int64
}

func (s *fakeService) Remove(_ context.Context, id int64) (*order.Order, error) {
	s.gotID = id
	if s.err != nil {
		return nil, s.err
	}

	return s.deleted, nil
}

func serve(svc *fakeService, id string) *httptest.ResponseRecorder {
	router := chi.NewRouter()
	router.Delete("/api/order/{id}", func(w http.ResponseWriter, r *http.Request) {
		DeleteOrder(w, r, svc)
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/order/"+id, nil))

	return rec
}

func TestDeleteOrder(t *testing.T) {
	t.Parallel()

	t.Run("existing order returns prior values", func(t *testing.T) {
		svc := &fakeService{deleted: &order.Order{ID: 1, Description: "Order for Customer 1"}}

		rec := serve(svc, "1")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		body := rec.Body.String()
		if !strings.Contains(body, `"orderDescription":"Order for Customer 1"`) {
			t.Fatalf("unexpected body: %s", body)
		}
		if strings.Contains(body, "countOfProducts") || strings.Contains(body, `"products"`) {
			t.Fatalf("deleted order must carry stored columns only, got %s", body)
		}
	})

	t.Run("missing order responds with null", func(t *testing.T) {
		svc := &fakeService{}

		rec := serve(svc, "42")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if strings.TrimSpace(rec.Body.String()) != "null" {
			t.Fatalf("expected null body, got %s", rec.Body.String())
		}
	})

	t.Run("non-numeric id coerces to a non-matching value", func(t *testing.T) {
		svc := &fakeService{}

		rec := serve(svc, "abc")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if svc.gotID != 0 {
			t.Fatalf("expected coerced id 0, got %d", svc.gotID)
		}
	})

	t.Run("store error responds with 500", func(t *testing.T) {
		svc := &fakeService{err: errors.New("connection refused")}

		rec := serve(svc, "1")

		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", rec.Code)
		}
	})
}
