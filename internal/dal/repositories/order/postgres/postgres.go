package postgresrepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/corray333/order-management/internal/service/models/order"
)

// OrderDal represents order data access layer model.
type OrderDal struct {
	Id              int64     `db:"id"`
	Description     string    `db:"order_description"`
	CreatedAt       time.Time `db:"created_at"`
	CountOfProducts int64     `db:"count_of_products"`
}

// ToModel converts OrderDal to service layer Order model.
func (o *OrderDal) ToModel() *order.Order {
	return &order.Order{
		ID:              o.Id,
		Description:     o.Description,
		CreatedAt:       o.CreatedAt,
		CountOfProducts: o.CountOfProducts,
	}
}

// GenericConn is an interface that works with both pgxpool.Pool and pgx.Tx.
type GenericConn interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

// PostgresOrderRepository represents a Postgres order repository.
type PostgresOrderRepository struct {
	conn GenericConn
	sb   sq.StatementBuilderType
}

// NewPostgresOrderRepository creates a new Postgres order repository.
func NewPostgresOrderRepository(conn GenericConn) *PostgresOrderRepository {
	return &PostgresOrderRepository{
		conn: conn,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// Insert inserts a single order and returns it with the generated id and
// server-assigned creation time.
func (r *PostgresOrderRepository) Insert(ctx context.Context, description string) (*order.Order, error) {
	sql, args, err := r.sb.
		Insert("orders").
		Columns("order_description").
		Values(description).
		Suffix("RETURNING id, order_description, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build insert query: %w", err)
	}

	var dal OrderDal
	if err := r.conn.QueryRow(ctx, sql, args...).
		Scan(&dal.Id, &dal.Description, &dal.CreatedAt); err != nil {
		return nil, fmt.Errorf("failed to insert order: %w", err)
	}

	return dal.ToModel(), nil
}

// QueryWithCounts retrieves orders annotated with the number of mapped
// products. One aggregation query: orders left-joined to the mapping table,
// grouped by order columns, ordered by id.
func (r *PostgresOrderRepository) QueryWithCounts(
	ctx context.Context,
	filter *order.QueryOrdersModel,
) ([]order.Order, error) {
	query := r.sb.
		Select(
			"o.id",
			"o.order_description",
			"o.created_at",
			"COUNT(m.product_id) AS count_of_products",
		).
		From("orders AS o").
		LeftJoin("order_product_map AS m ON m.order_id = o.id").
		GroupBy("o.id", "o.order_description", "o.created_at").
		OrderBy("o.id ASC")

	if len(filter.IDs) > 0 {
		query = query.Where(sq.Eq{"o.id": filter.IDs})
	}

	if filter.Limit > 0 {
		query = query.Limit(uint64(filter.Limit))
	}

	if filter.Offset > 0 {
		query = query.Offset(uint64(filter.Offset))
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.conn.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	var result []order.Order
	for rows.Next() {
		var dal OrderDal
		if err := rows.Scan(
			&dal.Id,
			&dal.Description,
			&dal.CreatedAt,
			&dal.CountOfProducts,
		); err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}

		result = append(result, *dal.ToModel())
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}

// UpdateDescription updates the description of an order and reports how many
// rows matched. Zero means the order does not exist.
func (r *PostgresOrderRepository) UpdateDescription(
	ctx context.Context,
	id int64,
	description string,
) (int64, error) {
	sql, args, err := r.sb.
		Update("orders").
		Set("order_description", description).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build update query: %w", err)
	}

	tag, err := r.conn.Exec(ctx, sql, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to update order: %w", err)
	}

	return tag.RowsAffected(), nil
}

// Delete removes an order and returns its prior field values, or nil when no
// row matched.
func (r *PostgresOrderRepository) Delete(ctx context.Context, id int64) (*order.Order, error) {
	sql, args, err := r.sb.
		Delete("orders").
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING id, order_description, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build delete query: %w", err)
	}

	var dal OrderDal
	if err := r.conn.QueryRow(ctx, sql, args...).
		Scan(&dal.Id, &dal.Description, &dal.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}

		return nil, fmt.Errorf("failed to delete order: %w", err)
	}

	return dal.ToModel(), nil
}
