package orderevent

import (
	"time"

	"github.com/corray333/order-management/internal/service/models/order"
)

type Action string

const (
	ActionCreated Action = "order.created"
	ActionUpdated Action = "order.updated"
	ActionDeleted Action = "order.deleted"
)

// Event is the audit payload published for every order mutation.
type Event struct {
	Action     Action      `json:"action"`
	Order      order.Order `json:"order"`
	OccurredAt time.Time   `json:"occurredAt"`
}
