package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/mercado-b2b-api/internal/domain"
	"github.com/jhoicas/mercado-b2b-api/internal/domain/entity"
	"github.com/jhoicas/mercado-b2b-api/internal/domain/repository"
)

var (
	_ repository.CategoryRepository = (*CategoryRepo)(nil)
	_ repository.CurrencyRepository = (*CurrencyRepo)(nil)
)

// CategoryRepo categorías de producto.
type CategoryRepo struct {
	q Querier
}

// NewCategoryRepository construye el adaptador.
func NewCategoryRepository(q Querier) *CategoryRepo {
	return &CategoryRepo{q: q}
}

func (r *CategoryRepo) Create(ctx context.Context, c *entity.Category) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO categories (id, name, slug, created_at) VALUES ($1, $2, $3, $4)`,
		c.ID, c.Name, c.Slug, c.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("create category %q: %w", c.Name, domain.ErrDuplicate)
		}
		return wrapDBErr("insert category", err)
	}
	return nil
}

func (r *CategoryRepo) GetByName(ctx context.Context, name string) (*entity.Category, error) {
	var c entity.Category
	err := r.q.QueryRow(ctx,
		`SELECT id, name, slug, created_at FROM categories WHERE lower(name) = lower($1)`, name,
	).Scan(&c.ID, &c.Name, &c.Slug, &c.CreatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, fmt.Errorf("get category %q: %w", name, domain.ErrNotFound)
		}
		return nil, wrapDBErr("get category", err)
	}
	return &c, nil
}

func (r *CategoryRepo) List(ctx context.Context) ([]*entity.Category, error) {
	rows, err := r.q.Query(ctx, `SELECT id, name, slug, created_at FROM categories ORDER BY name`)
	if err != nil {
		return nil, wrapDBErr("list categories", err)
	}
	defer rows.Close()
	var list []*entity.Category
	for rows.Next() {
		var c entity.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug, &c.CreatedAt); err != nil {
			return nil, wrapDBErr("scan category", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// CurrencyRepo catálogo de monedas.
type CurrencyRepo struct {
	q Querier
}

// NewCurrencyRepository construye el adaptador.
func NewCurrencyRepository(q Querier) *CurrencyRepo {
	return &CurrencyRepo{q: q}
}

func (r *CurrencyRepo) GetByCode(ctx context.Context, code string) (*entity.Currency, error) {
	var c entity.Currency
	err := r.q.QueryRow(ctx,
		`SELECT code, name, symbol FROM currencies WHERE code = upper($1)`, code,
	).Scan(&c.Code, &c.Name, &c.Symbol)
	if err != nil {
		if isNoRows(err) {
			return nil, fmt.Errorf("get currency %q: %w", code, domain.ErrNotFound)
		}
		return nil, wrapDBErr("get currency", err)
	}
	return &c, nil
}

func (r *CurrencyRepo) List(ctx context.Context) ([]*entity.Currency, error) {
	rows, err := r.q.Query(ctx, `SELECT code, name, symbol FROM currencies ORDER BY code`)
	if err != nil {
		return nil, wrapDBErr("list currencies", err)
	}
	defer rows.Close()
	var list []*entity.Currency
	for rows.Next() {
		var c entity.Currency
		if err := rows.Scan(&c.Code, &c.Name, &c.Symbol); err != nil {
			return nil, wrapDBErr("scan currency", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}
