package uow

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/corray333/order-management/internal/dal/interfaces/iorderproductrepo"
	"github.com/corray333/order-management/internal/dal/interfaces/iorderrepo"
	"github.com/corray333/order-management/internal/dal/interfaces/ioutboxrepo"
	"github.com/corray333/order-management/internal/dal/postgres"
	orderrepo "github.com/corray333/order-management/internal/dal/repositories/order/postgres"
	orderproductrepo "github.com/corray333/order-management/internal/dal/repositories/orderproduct/postgres"
	outboxrepo "github.com/corray333/order-management/internal/dal/repositories/outbox/postgres"
)

// unitOfWork scopes repository calls to one connection. Before Begin the
// repositories run directly on the pool; after Begin they share one
// transaction until Commit or Rollback.
type unitOfWork struct {
	pool             *pgxpool.Pool
	tx               pgx.Tx
	orderRepo        iorderrepo.IOrderRepository
	orderProductRepo iorderproductrepo.IOrderProductRepository
	outboxRepo       ioutboxrepo.IOutboxRepository
}

// NewUnitOfWork creates a unit of work bound to the client's pool.
func NewUnitOfWork(client *postgres.Client) *unitOfWork {
	return &unitOfWork{
		pool:             client.Pool(),
		orderRepo:        orderrepo.NewPostgresOrderRepository(client.Pool()),
		orderProductRepo: orderproductrepo.NewPostgresOrderProductRepository(client.Pool()),
		outboxRepo:       outboxrepo.NewOutboxRepository(client.Pool()),
	}
}

func (u *unitOfWork) OrderRepository() iorderrepo.IOrderRepository {
	return u.orderRepo
}

func (u *unitOfWork) OrderProductRepository() iorderproductrepo.IOrderProductRepository {
	return u.orderProductRepo
}

func (u *unitOfWork) OutboxRepository() ioutboxrepo.IOutboxRepository {
	return u.outboxRepo
}

func (u *unitOfWork) Begin(ctx context.Context) error {
	tx, err := u.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}

	u.tx = tx
	u.orderRepo = orderrepo.NewPostgresOrderRepository(tx)
	u.orderProductRepo = orderproductrepo.NewPostgresOrderProductRepository(tx)
	u.outboxRepo = outboxrepo.NewOutboxRepository(tx)

	return nil
}

func (u *unitOfWork) Commit(ctx context.Context) error {
	if u.tx == nil {
		return nil
	}

	return u.tx.Commit(ctx)
}

func (u *unitOfWork) Rollback(ctx context.Context) error {
	if u.tx == nil {
		return nil
	}

	return u.tx.Rollback(ctx)
}
