package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/jhoicas/mercado-b2b-api/internal/domain"
	"github.com/jhoicas/mercado-b2b-api/internal/domain/entity"
	"github.com/jhoicas/mercado-b2b-api/internal/domain/repository"
)

var (
	_ repository.ProductRepository  = (*ProductRepo)(nil)
	_ repository.CategoryRepository = (*CategoryRepo)(nil)
	_ repository.CurrencyRepository = (*CurrencyRepo)(nil)
)

// ProductRepo productos en memoria.
type ProductRepo struct {
	s *Store
}

// NewProductRepository construye el repositorio.
func NewProductRepository(s *Store) *ProductRepo { return &ProductRepo{s: s} }

func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("products.create"); err != nil {
		return err
	}
	if _, ok := r.s.products[p.ID]; ok {
		return fmt.Errorf("create product %s: %w", p.ID, domain.ErrDuplicate)
	}
	c := *p
	c.CategoryName = ""
	r.s.products[p.ID] = &c
	return nil
}

func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.products[id]
	if !ok {
		return nil, fmt.Errorf("get product %s: %w", id, domain.ErrProductNotFound)
	}
	return r.s.resolveProduct(p), nil
}

func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("products.update"); err != nil {
		return err
	}
	if _, ok := r.s.products[p.ID]; !ok {
		return fmt.Errorf("update product %s: %w", p.ID, domain.ErrProductNotFound)
	}
	c := *p
	c.CategoryName = ""
	r.s.products[p.ID] = &c
	return nil
}

func (r *ProductRepo) List(ctx context.Context, f *repository.ListFilter) ([]*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	all := make([]*entity.Product, 0, len(r.s.products))
	for _, p := range r.s.products {
		all = append(all, r.s.resolveProduct(p))
	}
	return applyFilter(all, f, func(p *entity.Product) row {
		return row{
			"seller_id":     p.SellerID,
			"status":        p.Status,
			"category_id":   p.CategoryID,
			"currency_code": p.CurrencyCode,
			"is_active":     p.IsActive,
			"is_verified":   p.IsVerified,
			"name":          p.Name,
			"price":         p.Price,
			"created_at":    p.CreatedAt,
			"updated_at":    p.UpdatedAt,
		}
	})
}

func (r *ProductRepo) CountByStatus(ctx context.Context, sellerID string) (map[string]int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := map[string]int{}
	for _, p := range r.s.products {
		if sellerID == "" || p.SellerID == sellerID {
			out[p.Status]++
		}
	}
	return out, nil
}

// resolveProduct copia el producto con el nombre de categoría resuelto. Requiere s.mu tomado.
func (s *Store) resolveProduct(p *entity.Product) *entity.Product {
	c := *p
	if cat, ok := s.categories[p.CategoryID]; ok {
		c.CategoryName = cat.Name
	}
	return &c
}

// CategoryRepo categorías en memoria.
type CategoryRepo struct {
	s *Store
}

// NewCategoryRepository construye el repositorio.
func NewCategoryRepository(s *Store) *CategoryRepo { return &CategoryRepo{s: s} }

func (r *CategoryRepo) Create(ctx context.Context, c *entity.Category) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.categories {
		if strings.EqualFold(existing.Name, c.Name) {
			return fmt.Errorf("create category %q: %w", c.Name, domain.ErrDuplicate)
		}
	}
	cp := *c
	r.s.categories[c.ID] = &cp
	return nil
}

func (r *CategoryRepo) GetByName(ctx context.Context, name string) (*entity.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, c := range r.s.categories {
		if strings.EqualFold(c.Name, name) {
			cp := *c
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("get category %q: %w", name, domain.ErrNotFound)
}

func (r *CategoryRepo) List(ctx context.Context) ([]*entity.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.Category, 0, len(r.s.categories))
	for _, c := range r.s.categories {
		cp := *c
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// CurrencyRepo monedas sembradas en NewStore.
type CurrencyRepo struct {
	s *Store
}

// NewCurrencyRepository construye el repositorio.
func NewCurrencyRepository(s *Store) *CurrencyRepo { return &CurrencyRepo{s: s} }

func (r *CurrencyRepo) GetByCode(ctx context.Context, code string) (*entity.Currency, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	c, ok := r.s.currencies[strings.ToUpper(code)]
	if !ok {
		return nil, fmt.Errorf("get currency %q: %w", code, domain.ErrNotFound)
	}
	cp := *c
	return &cp, nil
}

func (r *CurrencyRepo) List(ctx context.Context) ([]*entity.Currency, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.Currency, 0, len(r.s.currencies))
	for _, c := range r.s.currencies {
		cp := *c
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}
