package usecase

import (
	"context"

	"github.com/jhoicas/mercado-b2b-api/internal/application/dto"
	"github.com/jhoicas/mercado-b2b-api/internal/application/ports"
	"github.com/jhoicas/mercado-b2b-api/internal/domain/entity"
	"github.com/jhoicas/mercado-b2b-api/internal/domain/repository"
)

// Units unidades de medida ofrecidas en los formularios.
var Units = []string{"piece", "kg", "ton", "liter", "meter", "box", "pallet", "container"}

// CatalogUseCase catálogos de referencia y feed XML del catálogo público.
type CatalogUseCase struct {
	categories repository.CategoryRepository
	currencies repository.CurrencyRepository
	products   repository.ProductRepository
	feed       ports.CatalogFeedBuilder
	supplier   string
}

// NewCatalogUseCase construye el caso de uso. supplier identifica al marketplace en el feed.
func NewCatalogUseCase(
	categories repository.CategoryRepository,
	currencies repository.CurrencyRepository,
	products repository.ProductRepository,
	feed ports.CatalogFeedBuilder,
	supplier string,
) *CatalogUseCase {
	return &CatalogUseCase{categories: categories, currencies: currencies, products: products, feed: feed, supplier: supplier}
}

// Get categorías, monedas y unidades.
func (uc *CatalogUseCase) Get(ctx context.Context) (*dto.CatalogResponse, error) {
	cats, err := uc.categories.List(ctx)
	if err != nil {
		return nil, err
	}
	curs, err := uc.currencies.List(ctx)
	if err != nil {
		return nil, err
	}
	out := &dto.CatalogResponse{
		Categories: make([]dto.CategoryResponse, 0, len(cats)),
		Currencies: make([]dto.CurrencyResponse, 0, len(curs)),
		Units:      Units,
	}
	for _, c := range cats {
		out.Categories = append(out.Categories, dto.CategoryResponse{ID: c.ID, Name: c.Name, Slug: c.Slug})
	}
	for _, c := range curs {
		out.Currencies = append(out.Currencies, dto.CurrencyResponse{Code: c.Code, Name: c.Name, Symbol: c.Symbol})
	}
	return out, nil
}

// Feed XML de todos los productos aprobados y activos.
func (uc *CatalogUseCase) Feed(ctx context.Context) (*ports.CatalogFeed, error) {
	list, err := uc.products.List(ctx, repository.NewFilter().
		Where("status", entity.ProductStatusApproved).
		Where("is_active", true).
		Order("name", false))
	if err != nil {
		return nil, err
	}
	return uc.feed.BuildCatalogFeed(ctx, uc.supplier, list)
}
