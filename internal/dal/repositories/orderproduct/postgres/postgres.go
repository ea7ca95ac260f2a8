package postgresrepo

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// GenericConn is an interface that works with both pgxpool.Pool and pgx.Tx.
type GenericConn interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

// PostgresOrderProductRepository manages rows of the order_product_map join
// table. An order exclusively owns its mapping rows.
type PostgresOrderProductRepository struct {
	conn GenericConn
	sb   sq.StatementBuilderType
}

// NewPostgresOrderProductRepository creates a new Postgres mapping repository.
func NewPostgresOrderProductRepository(conn GenericConn) *PostgresOrderProductRepository {
	return &PostgresOrderProductRepository{
		conn: conn,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// BulkInsert inserts one mapping row per product id for the given order.
// Duplicate product ids within one order violate the unique constraint on
// (order_id, product_id) and surface as a store error.
func (r *PostgresOrderProductRepository) BulkInsert(
	ctx context.Context,
	orderID int64,
	productIDs []int64,
) error {
	if len(productIDs) == 0 {
		return nil
	}

	query := r.sb.
		Insert("order_product_map").
		Columns("order_id", "product_id")

	for _, productID := range productIDs {
		query = query.Values(orderID, productID)
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build insert query: %w", err)
	}

	if _, err := r.conn.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("failed to insert order product mappings: %w", err)
	}

	return nil
}

// DeleteByOrderID removes every mapping row owned by the order.
func (r *PostgresOrderProductRepository) DeleteByOrderID(ctx context.Context, orderID int64) error {
	sql, args, err := r.sb.
		Delete("order_product_map").
		Where(sq.Eq{"order_id": orderID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete query: %w", err)
	}

	if _, err := r.conn.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("failed to delete order product mappings: %w", err)
	}

	return nil
}

// ListProductIDs returns the product ids mapped to the order in insertion
// order. Empty slice when the order has no mappings.
func (r *PostgresOrderProductRepository) ListProductIDs(
	ctx context.Context,
	orderID int64,
) ([]int64, error) {
	sql, args, err := r.sb.
		Select("product_id").
		From("order_product_map").
		Where(sq.Eq{"order_id": orderID}).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	rows, err := r.conn.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query order product mappings: %w", err)
	}
	defer rows.Close()

	result := make([]int64, 0)
	for rows.Next() {
		var productID int64
		if err := rows.Scan(&productID); err != nil {
			return nil, fmt.Errorf("failed to scan product id: %w", err)
		}

		result = append(result, productID)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}
