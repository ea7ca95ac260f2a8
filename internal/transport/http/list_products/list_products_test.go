package listproducts

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/corray333/order-management/internal/service/models/product"
)

type fakeService struct {
	products []product.Product
	err      error
}

func (s *fakeService) List(_ context.Context) ([]product.Product, error) {
	if s.err != nil {
		return nil, s.err
	}

	return s.products, nil
}

func serve(svc *fakeService) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	ListProducts(rec, httptest.NewRequest(http.MethodGet, "/api/product", nil), svc)

	return rec
}

func TestListProducts(t *testing.T) {
	t.Parallel()

	t.Run("returns catalog ordered by id", func(t *testing.T) {
		hp := "This is HP laptop"
		svc := &fakeService{products: []product.Product{
			{ID: 1, Name: "HP laptop", Description: &hp},
			{ID: 2, Name: "lenovo laptop"},
		}}

		rec := serve(svc)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		body := rec.Body.String()
		if !strings.Contains(body, `"productName":"HP laptop"`) {
			t.Fatalf("unexpected body: %s", body)
		}
		if !strings.Contains(body, `"productDescription":null`) {
			t.Fatalf("expected null description for product without one, got %s", body)
		}
	})

	t.Run("store error responds with 500", func(t *testing.T) {
		svc := &fakeService{err: errors.New("connection refused")}

		rec := serve(svc)

		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", rec.Code)
		}
	})
}
