package order_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/corray333/order-management/internal/service/models/order"
)

func TestValidateDescription(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name        string
		description string
		wantErr     bool
	}{
		{name: "ok", description: "Order for Customer 1"},
		{name: "exactly at the limit", description: strings.Repeat("x", order.MaxDescriptionLen)},
		{name: "multibyte runes count as one", description: strings.Repeat("я", order.MaxDescriptionLen)},
		{name: "empty", description: "", wantErr: true},
		{name: "over the limit", description: strings.Repeat("x", order.MaxDescriptionLen+1), wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := order.ValidateDescription(tc.description)
			if tc.wantErr && !errors.Is(err, order.ErrInvalidDescription) {
				t.Fatalf("expected ErrInvalidDescription, got %v", err)
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
		})
	}
}
