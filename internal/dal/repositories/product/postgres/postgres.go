package postgresrepo

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/corray333/order-management/internal/service/models/product"
)

// ProductDal represents product data access layer model.
type ProductDal struct {
	Id          int64   `db:"id"`
	Name        string  `db:"product_name"`
	Description *string `db:"product_description"`
}

// ToModel converts ProductDal to service layer Product model.
func (p *ProductDal) ToModel() *product.Product {
	return &product.Product{
		ID:          p.Id,
		Name:        p.Name,
		Description: p.Description,
	}
}

// GenericConn is an interface that works with both pgxpool.Pool and pgx.Tx.
type GenericConn interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

// PostgresProductRepository represents a Postgres product repository.
// The catalog is read-only from this service's perspective.
type PostgresProductRepository struct {
	conn GenericConn
	sb   sq.StatementBuilderType
}

// NewPostgresProductRepository creates a new Postgres product repository.
func NewPostgresProductRepository(conn GenericConn) *PostgresProductRepository {
	return &PostgresProductRepository{
		conn: conn,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// List retrieves every product ordered by id.
func (r *PostgresProductRepository) List(ctx context.Context) ([]product.Product, error) {
	sql, args, err := r.sb.
		Select("id", "product_name", "product_description").
		From("products").
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	rows, err := r.conn.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	result := make([]product.Product, 0)
	for rows.Next() {
		var dal ProductDal
		if err := rows.Scan(&dal.Id, &dal.Name, &dal.Description); err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}

		result = append(result, *dal.ToModel())
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}
