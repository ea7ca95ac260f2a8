package ordersvc

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/corray333/order-management/internal/dal/interfaces/iorderproductrepo"
	"github.com/corray333/order-management/internal/dal/interfaces/iorderrepo"
	"github.com/corray333/order-management/internal/dal/interfaces/ioutboxrepo"
	"github.com/corray333/order-management/internal/dal/postgres"
	"github.com/corray333/order-management/internal/dal/uow"
	"github.com/corray333/order-management/internal/service/models/order"
	"github.com/corray333/order-management/internal/service/models/orderevent"
	"github.com/corray333/order-management/internal/service/models/outbox"
)

// OrderService manages the order lifecycle together with the product
// associations each order owns. Every mutation and its outbox event run in
// one transaction; reads go straight to the pool.
type OrderService struct {
	pgClient *postgres.Client
	newUOW   func() unitOfWork

	eventQueue      string
	eventRoutingKey string
	eventExchange   string
	eventMaxRetries int
}

type unitOfWork interface {
	Begin(ctx context.Context) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error

	OrderRepository() iorderrepo.IOrderRepository
	OrderProductRepository() iorderproductrepo.IOrderProductRepository
	OutboxRepository() ioutboxrepo.IOutboxRepository
}

// option is a function that configures the OrderService.
type option func(*OrderService)

// MustNewOrderService creates a new OrderService.
func MustNewOrderService(opts ...option) *OrderService {
	s := &OrderService{
		eventQueue:      viper.GetString("rabbitmq.order_events.queue"),
		eventRoutingKey: viper.GetString("rabbitmq.order_events.routing_key"),
		eventExchange:   viper.GetString("rabbitmq.order_events.exchange"),
		eventMaxRetries: viper.GetInt("rabbitmq.order_events.max_retries"),
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.eventQueue == "" {
		s.eventQueue = "oms.order.events"
	}
	if s.eventRoutingKey == "" {
		s.eventRoutingKey = s.eventQueue
	}
	if s.eventMaxRetries == 0 {
		s.eventMaxRetries = 5
	}

	if s.newUOW == nil {
		s.newUOW = func() unitOfWork {
			return uow.NewUnitOfWork(s.pgClient)
		}
	}

	return s
}

// WithPostgresClient sets the Postgres client for the OrderService.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithPostgresClient(pgClient *postgres.Client) option {
	return func(s *OrderService) {
		s.pgClient = pgClient
	}
}

// Create inserts a new order with the requested product associations and
// returns the read view of the created order.
func (s *OrderService) Create(
	ctx context.Context,
	description string,
	productIDs []int64,
) (*order.Order, error) {
	if err := order.ValidateDescription(description); err != nil {
		return nil, err
	}

	work := s.newUOW()

	if err := work.Begin(ctx); err != nil {
		return nil, err
	}

	created, err := work.OrderRepository().Insert(ctx, description)
	if err != nil {
		_ = work.Rollback(ctx)

		return nil, err
	}

	if len(productIDs) > 0 {
		if err := work.OrderProductRepository().BulkInsert(ctx, created.ID, productIDs); err != nil {
			_ = work.Rollback(ctx)

			return nil, err
		}
	}

	created.CountOfProducts = int64(len(productIDs))
	created.ProductIDs = productIDs

	if err := s.enqueueEvent(ctx, work, orderevent.ActionCreated, *created); err != nil {
		_ = work.Rollback(ctx)

		return nil, err
	}

	if err := work.Commit(ctx); err != nil {
		return nil, err
	}

	return s.GetByID(ctx, created.ID)
}

// List retrieves every order annotated with its product count, ordered by id.
func (s *OrderService) List(ctx context.Context, filter *order.QueryOrdersModel) ([]order.Order, error) {
	if filter == nil {
		filter = &order.QueryOrdersModel{}
	}

	work := s.newUOW()

	orders, err := work.OrderRepository().QueryWithCounts(ctx, filter)
	if err != nil {
		return nil, err
	}

	if orders == nil {
		orders = []order.Order{}
	}

	return orders, nil
}

// GetByID retrieves one order with its product count and the explicit list of
// mapped product ids. Returns nil without error when the order does not
// exist. Two queries on purpose: the grouped aggregation cannot also yield
// the per-product list.
func (s *OrderService) GetByID(ctx context.Context, id int64) (*order.Order, error) {
	work := s.newUOW()

	orders, err := work.OrderRepository().QueryWithCounts(ctx, &order.QueryOrdersModel{IDs: []int64{id}})
	if err != nil {
		return nil, err
	}

	if len(orders) == 0 {
		return nil, nil
	}

	found := orders[0]

	productIDs, err := work.OrderProductRepository().ListProductIDs(ctx, id)
	if err != nil {
		return nil, err
	}

	found.ProductIDs = productIDs

	return &found, nil
}

// Update changes the order's description and fully replaces its product
// associations with the supplied set. An empty set clears every association.
// Returns order.ErrNotFound without touching any mapping row when the order
// does not exist.
func (s *OrderService) Update(
	ctx context.Context,
	id int64,
	description string,
	productIDs []int64,
) (*order.Order, error) {
	if err := order.ValidateDescription(description); err != nil {
		return nil, err
	}

	work := s.newUOW()

	if err := work.Begin(ctx); err != nil {
		return nil, err
	}

	affected, err := work.OrderRepository().UpdateDescription(ctx, id, description)
	if err != nil {
		_ = work.Rollback(ctx)

		return nil, err
	}

	if affected == 0 {
		_ = work.Rollback(ctx)

		return nil, fmt.Errorf("failed to update order %d: %w", id, order.ErrNotFound)
	}

	if err := work.OrderProductRepository().DeleteByOrderID(ctx, id); err != nil {
		_ = work.Rollback(ctx)

		return nil, err
	}

	if len(productIDs) > 0 {
		if err := work.OrderProductRepository().BulkInsert(ctx, id, productIDs); err != nil {
			_ = work.Rollback(ctx)

			return nil, err
		}
	}

	updated := order.Order{
		ID:              id,
		Description:     description,
		CountOfProducts: int64(len(productIDs)),
		ProductIDs:      productIDs,
	}
	if err := s.enqueueEvent(ctx, work, orderevent.ActionUpdated, updated); err != nil {
		_ = work.Rollback(ctx)

		return nil, err
	}

	if err := work.Commit(ctx); err != nil {
		return nil, err
	}

	return s.GetByID(ctx, id)
}

// Remove deletes the order together with every mapping row it owns and
// returns the deleted order's prior field values. Returns nil without error
// when the order does not exist.
func (s *OrderService) Remove(ctx context.Context, id int64) (*order.Order, error) {
	work := s.newUOW()

	if err := work.Begin(ctx); err != nil {
		return nil, err
	}

	productIDs, err := work.OrderProductRepository().ListProductIDs(ctx, id)
	if err != nil {
		_ = work.Rollback(ctx)

		return nil, err
	}

	if err := work.OrderProductRepository().DeleteByOrderID(ctx, id); err != nil {
		_ = work.Rollback(ctx)

		return nil, err
	}

	deleted, err := work.OrderRepository().Delete(ctx, id)
	if err != nil {
		_ = work.Rollback(ctx)

		return nil, err
	}

	if deleted == nil {
		_ = work.Rollback(ctx)

		return nil, nil
	}

	snapshot := *deleted
	snapshot.CountOfProducts = int64(len(productIDs))
	snapshot.ProductIDs = productIDs
	if err := s.enqueueEvent(ctx, work, orderevent.ActionDeleted, snapshot); err != nil {
		_ = work.Rollback(ctx)

		return nil, err
	}

	if err := work.Commit(ctx); err != nil {
		return nil, err
	}

	return deleted, nil
}

// enqueueEvent stores the audit event in the outbox within the caller's
// transaction so the event is published iff the mutation commits.
func (s *OrderService) enqueueEvent(
	ctx context.Context,
	work unitOfWork,
	action orderevent.Action,
	o order.Order,
) error {
	now := time.Now()

	payload, err := json.Marshal(orderevent.Event{
		Action:     action,
		Order:      o,
		OccurredAt: now,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal order event: %w", err)
	}

	return work.OutboxRepository().Insert(ctx, outbox.OutboxMessage{
		QueueName:    s.eventQueue,
		ExchangeName: s.eventExchange,
		RoutingKey:   s.eventRoutingKey,
		Payload:      payload,
		ContentType:  "application/json",
		MaxRetries:   s.eventMaxRetries,
		CreatedAt:    now,
		UpdatedAt:    now,
		NextRetryAt:  now,
	})
}
