package listorders

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/corray333/order-management/internal/service/models/order"
)

type fakeService struct {
	orders []order.Order
	err    error

	gotFilter *order.QueryOrdersModel
}

func (s *fakeService) List(_ context.Context, filter *order.QueryOrdersModel) ([]order.Order, error) {
	s.gotFilter = filter
	if s.err != nil {
		return nil, s.err
	}

	return s.orders, nil
}

func serve(svc *fakeService, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	ListOrders(rec, httptest.NewRequest(http.MethodGet, target, nil), svc)

	return rec
}

func TestListOrders(t *testing.T) {
	t.Parallel()

	t.Run("returns orders with counts", func(t *testing.T) {
		svc := &fakeService{orders: []order.Order{
			{ID: 1, Description: "First", CountOfProducts: 2},
			{ID: 2, Description: "Second", CountOfProducts: 0},
		}}

		rec := serve(svc, "/api/order")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		body := rec.Body.String()
		if !strings.Contains(body, `"countOfProducts":2`) || !strings.Contains(body, `"countOfProducts":0`) {
			t.Fatalf("unexpected body: %s", body)
		}
	})

	t.Run("empty result is an empty array", func(t *testing.T) {
		svc := &fakeService{orders: []order.Order{}}

		rec := serve(svc, "/api/order")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if strings.TrimSpace(rec.Body.String()) != "[]" {
			t.Fatalf("expected empty array, got %s", rec.Body.String())
		}
	})

	t.Run("limit and offset are forwarded", func(t *testing.T) {
		svc := &fakeService{orders: []order.Order{}}

		serve(svc, "/api/order?limit=10&offset=20")

		if svc.gotFilter.Limit != 10 || svc.gotFilter.Offset != 20 {
			t.Fatalf("unexpected filter %+v", svc.gotFilter)
		}
	})

	t.Run("store error responds with 500", func(t *testing.T) {
		svc := &fakeService{err: errors.New("connection refused")}

		rec := serve(svc, "/api/order")

		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", rec.Code)
		}
	})
}
