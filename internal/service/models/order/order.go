package order

import (
	"errors"
	"time"
	"unicode/utf8"
)

// MaxDescriptionLen is the column limit for order_description.
const MaxDescriptionLen = 100

var (
	ErrNotFound           = errors.New("order not found")
	ErrInvalidDescription = errors.New("order description must be non-empty and at most 100 characters")
)

// Order represents an order in the system.
//
// CountOfProducts is computed from the mapping table, never stored.
// ProductIDs is populated only by single-order reads; list reads carry
// the count alone.
type Order struct {
	ID              int64     `json:"id"`
	Description     string    `json:"orderDescription"`
	CreatedAt       time.Time `json:"createdAt"`
	CountOfProducts int64     `json:"countOfProducts"`
	ProductIDs      []int64   `json:"products"`
}

// ValidateDescription checks the description against the schema constraints.
func ValidateDescription(description string) error {
	if description == "" || utf8.RuneCountInString(description) > MaxDescriptionLen {
		return ErrInvalidDescription
	}

	return nil
}
