package createorder

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
	created *order.Order
	err     error

	called         bool
	gotDescription string
	gotProductIDs  []int64
}

func (s *fakeService) Create(_ context.Context, description string, productIDs []int64) (*order.Order, error) {
	s.called = true
	s.gotDescription = description
	s.gotProductIDs = productIDs
	if s.err != nil {
		return nil, s.err
	}

	return s.created, nil
}

func serve(svc *fakeService, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/order", strings.NewReader(body))
	CreateOrder(rec, req, svc)

	return rec
}

func TestCreateOrder(t *testing.T) {
	t.Parallel()

	t.Run("success", func(t *testing.T) {
		svc := &fakeService{created: &order.Order{
			ID:              1,
			Description:     "Order for Customer 1",
			CountOfProducts: 2,
			ProductIDs:      []int64{1, 2},
		}}

		rec := serve(svc, `{"orderDescription":"Order for Customer 1","productIds":[1,2]}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d", rec.Code)
		}
		if svc.gotDescription != "Order for Customer 1" {
			t.Fatalf("unexpected description %q", svc.gotDescription)
		}
		if len(svc.gotProductIDs) != 2 {
			t.Fatalf("unexpected product ids %v", svc.gotProductIDs)
		}
		if !strings.Contains(rec.Body.String(), `"countOfProducts":2`) {
			t.Fatalf("unexpected body: %s", rec.Body.String())
		}
	})

	t.Run("omitted productIds passes nil to the service", func(t *testing.T) {
		svc := &fakeService{created: &order.Order{ID: 1, Description: "Order"}}

		rec := serve(svc, `{"orderDescription":"Order"}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d", rec.Code)
		}
		if svc.gotProductIDs != nil {
			t.Fatalf("expected nil product ids, got %v", svc.gotProductIDs)
		}
	})

	t.Run("invalid json", func(t *testing.T) {
		rec := serve(&fakeService{}, `{"orderDescription":`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("empty description is rejected before the service is called", func(t *testing.T) {
		svc := &fakeService{}

		rec := serve(svc, `{"orderDescription":"","productIds":[1]}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		if svc.called {
			t.Fatal("service must not be called for an invalid request")
		}
	})

	t.Run("description over the column limit is rejected", func(t *testing.T) {
		svc := &fakeService{}

		rec := serve(svc, `{"orderDescription":"`+strings.Repeat("x", 101)+`"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		if svc.called {
			t.Fatal("service must not be called for an invalid request")
		}
	})

	t.Run("store error", func(t *testing.T) {
		rec := serve(&fakeService{err: errors.New("connection refused")}, `{"orderDescription":"Order"}`)

		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", rec.Code)
		}
	})
}
