package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/mercado-b2b-api/internal/domain"
	"github.com/jhoicas/mercado-b2b-api/internal/domain/entity"
	"github.com/jhoicas/mercado-b2b-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productSelect = `
	SELECT p.id, p.seller_id, p.name, p.description, p.category_id, COALESCE(c.name, ''),
		p.currency_code, p.price, p.min_order_qty, p.unit, p.status, p.is_verified, p.is_active,
		p.rejection_reason, p.reviewed_by, p.reviewed_at, p.created_at, p.updated_at
	FROM products p
	LEFT JOIN categories c ON c.id = p.category_id`

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var (
		p          entity.Product
		categoryID *string
		reviewedBy *string
	)
	err := row.Scan(
		&p.ID, &p.SellerID, &p.Name, &p.Description, &categoryID, &p.CategoryName,
		&p.CurrencyCode, &p.Price, &p.MinOrderQty, &p.Unit, &p.Status, &p.IsVerified, &p.IsActive,
		&p.RejectionReason, &reviewedBy, &p.ReviewedAt, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	p.CategoryID = deref(categoryID)
	p.ReviewedBy = deref(reviewedBy)
	return &p, nil
}

// Create persiste un nuevo producto.
func (r *ProductRepo) Create(ctx context.Context, product *entity.Product) error {
	query := `
		INSERT INTO products (id, seller_id, name, description, category_id, currency_code, price,
			min_order_qty, unit, status, is_verified, is_active, rejection_reason, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(ctx, query,
		product.ID, product.SellerID, product.Name, product.Description, nullable(product.CategoryID),
		product.CurrencyCode, product.Price, product.MinOrderQty, product.Unit, product.Status,
		product.IsVerified, product.IsActive, product.RejectionReason, product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return wrapDBErr("insert product", err)
	}
	return nil
}

// GetByID obtiene un producto por ID con el nombre de categoría resuelto.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, productSelect+` WHERE p.id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, fmt.Errorf("get product %s: %w", id, domain.ErrProductNotFound)
		}
		return nil, wrapDBErr("get product", err)
	}
	return p, nil
}

// Update reescribe los campos editables y de revisión.
func (r *ProductRepo) Update(ctx context.Context, product *entity.Product) error {
	query := `
		UPDATE products SET name = $2, description = $3, category_id = $4, currency_code = $5, price = $6,
			min_order_qty = $7, unit = $8, status = $9, is_verified = $10, is_active = $11,
			rejection_reason = $12, reviewed_by = $13, reviewed_at = $14, updated_at = $15
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		product.ID, product.Name, product.Description, nullable(product.CategoryID), product.CurrencyCode,
		product.Price, product.MinOrderQty, product.Unit, product.Status, product.IsVerified, product.IsActive,
		product.RejectionReason, nullable(product.ReviewedBy), product.ReviewedAt, product.UpdatedAt,
	)
	if err != nil {
		return wrapDBErr("update product", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("update product %s: %w", product.ID, domain.ErrProductNotFound)
	}
	return nil
}

// List lista productos según el filtro.
func (r *ProductRepo) List(ctx context.Context, f *repository.ListFilter) ([]*entity.Product, error) {
	where, args, err := buildWhere(repository.CollectionProducts, f)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", domain.NewValidationError(err.Error()))
	}
	rows, err := r.q.Query(ctx, productSelect+where, args...)
	if err != nil {
		return nil, wrapDBErr("list products", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, wrapDBErr("scan product", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// CountByStatus cuenta productos por estado. sellerID vacío cuenta todos.
func (r *ProductRepo) CountByStatus(ctx context.Context, sellerID string) (map[string]int, error) {
	return countByStatus(ctx, r.q, "products", sellerID)
}

func countByStatus(ctx context.Context, q Querier, table, sellerID string) (map[string]int, error) {
	query := `SELECT status, COUNT(*) FROM ` + table + ` WHERE ($1 = '' OR seller_id::text = $1) GROUP BY status`
	rows, err := q.Query(ctx, query, sellerID)
	if err != nil {
		return nil, fmt.Errorf("count %s by status: %w", table, err)
	}
	defer rows.Close()
	out := map[string]int{}
	for rows.Next() {
		var (
			status string
			n      int
		)
		if err := rows.Scan(&status, &n); err != nil {
			return nil, wrapDBErr("scan count", err)
		}
		out[status] = n
	}
	return out, rows.Err()
}
