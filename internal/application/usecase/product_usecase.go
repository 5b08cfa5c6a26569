package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jhoicas/mercado-b2b-api/internal/application/dto"
	"github.com/jhoicas/mercado-b2b-api/internal/domain"
	"github.com/jhoicas/mercado-b2b-api/internal/domain/entity"
	"github.com/jhoicas/mercado-b2b-api/internal/domain/repository"
	"github.com/jhoicas/mercado-b2b-api/pkg/logger"
)

// DefaultCurrency moneda usada cuando el vendedor no indica una.
const DefaultCurrency = "USD"

// PublicProductQuery filtros del catálogo público.
type PublicProductQuery struct {
	Category string
	SellerID string
	dto.PageRequest
}

// ProductUseCase alta, edición y revisión de productos.
type ProductUseCase struct {
	products   repository.ProductRepository
	categories repository.CategoryRepository
	currencies repository.CurrencyRepository
	notifier   *Notifier
	log        *logger.Logger
	now        func() time.Time
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(
	products repository.ProductRepository,
	categories repository.CategoryRepository,
	currencies repository.CurrencyRepository,
	notifier *Notifier,
	log *logger.Logger,
) *ProductUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &ProductUseCase{
		products:   products,
		categories: categories,
		currencies: currencies,
		notifier:   notifier,
		log:        log.Named("products"),
		now:        time.Now,
	}
}

// Create crea el producto en estado pending, sin verificar ni activar.
func (uc *ProductUseCase) Create(ctx context.Context, sellerID string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	in.Name = strings.TrimSpace(in.Name)
	var problems []string
	if in.Name == "" {
		problems = append(problems, "name es requerido")
	}
	if strings.TrimSpace(in.Category) == "" {
		problems = append(problems, "category es requerida")
	}
	if in.Price.IsNegative() {
		problems = append(problems, "price no puede ser negativo")
	}
	if in.MinOrderQty < 0 {
		problems = append(problems, "min_order_qty no puede ser negativo")
	}
	if len(problems) > 0 {
		return nil, domain.NewValidationError("datos de producto inválidos", problems...)
	}
	if in.MinOrderQty == 0 {
		in.MinOrderQty = 1
	}
	currency, err := uc.resolveCurrency(ctx, in.Currency)
	if err != nil {
		return nil, err
	}
	category, err := uc.ensureCategory(ctx, in.Category)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	p := &entity.Product{
		ID:           uuid.New().String(),
		SellerID:     sellerID,
		Name:         in.Name,
		Description:  strings.TrimSpace(in.Description),
		CategoryID:   category.ID,
		CategoryName: category.Name,
		CurrencyCode: currency,
		Price:        in.Price,
		MinOrderQty:  in.MinOrderQty,
		Unit:         strings.TrimSpace(in.Unit),
		Status:       entity.ProductStatusPending,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.products.Create(ctx, p); err != nil {
		return nil, err
	}
	uc.log.Info().Str("product_id", p.ID).Str("seller_id", sellerID).Msg("producto creado")
	return ToProductResponse(p), nil
}

// Update edita un producto propio. Editar un producto rechazado lo devuelve a pending.
func (uc *ProductUseCase) Update(ctx context.Context, sellerID, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	p, err := uc.ownProduct(ctx, sellerID, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, domain.NewValidationError("name no puede quedar vacío")
		}
		p.Name = name
	}
	if in.Description != nil {
		p.Description = strings.TrimSpace(*in.Description)
	}
	if in.Price != nil {
		if in.Price.IsNegative() {
			return nil, domain.NewValidationError("price no puede ser negativo")
		}
		p.Price = *in.Price
	}
	if in.MinOrderQty != nil {
		if *in.MinOrderQty < 1 {
			return nil, domain.NewValidationError("min_order_qty debe ser al menos 1")
		}
		p.MinOrderQty = *in.MinOrderQty
	}
	if in.Unit != nil {
		p.Unit = strings.TrimSpace(*in.Unit)
	}
	if in.Currency != nil {
		code, err := uc.resolveCurrency(ctx, *in.Currency)
		if err != nil {
			return nil, err
		}
		p.CurrencyCode = code
	}
	if in.Category != nil {
		cat, err := uc.ensureCategory(ctx, *in.Category)
		if err != nil {
			return nil, err
		}
		p.CategoryID, p.CategoryName = cat.ID, cat.Name
	}
	if p.Status == entity.ProductStatusRejected {
		p.Status = entity.ProductStatusPending
		p.RejectionReason = ""
	}
	p.UpdatedAt = uc.now()
	if err := uc.products.Update(ctx, p); err != nil {
		return nil, err
	}
	return ToProductResponse(p), nil
}

// Submit envía a revisión un producto pending o rejected.
func (uc *ProductUseCase) Submit(ctx context.Context, sellerID, id string) (*dto.ProductResponse, error) {
	p, err := uc.ownProduct(ctx, sellerID, id)
	if err != nil {
		return nil, err
	}
	if p.Status != entity.ProductStatusPending && p.Status != entity.ProductStatusRejected {
		return nil, fmt.Errorf("%w: producto en estado %s", domain.ErrConflict, p.Status)
	}
	p.Status = entity.ProductStatusSubmitted
	p.RejectionReason = ""
	p.UpdatedAt = uc.now()
	if err := uc.products.Update(ctx, p); err != nil {
		return nil, err
	}
	return ToProductResponse(p), nil
}

// ListPublic productos aprobados y activos.
func (uc *ProductUseCase) ListPublic(ctx context.Context, q PublicProductQuery) (*dto.ProductListResponse, error) {
	q.DefaultPage()
	f := repository.NewFilter().
		Where("status", entity.ProductStatusApproved).
		Where("is_active", true).
		Page(q.Limit, q.Offset)
	if q.SellerID != "" {
		f.Where("seller_id", q.SellerID)
	}
	if q.Category != "" {
		cat, err := uc.categories.GetByName(ctx, q.Category)
		if err != nil {
			if domain.IsNotFound(err) {
				return &dto.ProductListResponse{Items: []dto.ProductResponse{}, Page: dto.PageResponse{Limit: q.Limit, Offset: q.Offset}}, nil
			}
			return nil, err
		}
		f.Where("category_id", cat.ID)
	}
	return uc.list(ctx, f, q.PageRequest)
}

// GetPublic detalle de un producto visible en el catálogo.
func (uc *ProductUseCase) GetPublic(ctx context.Context, id string) (*dto.ProductResponse, error) {
	p, err := uc.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !p.IsPublic() {
		return nil, fmt.Errorf("get product %s: %w", id, domain.ErrProductNotFound)
	}
	return ToProductResponse(p), nil
}

// ListBySeller productos del vendedor, opcionalmente por estado.
func (uc *ProductUseCase) ListBySeller(ctx context.Context, sellerID, status string, page dto.PageRequest) (*dto.ProductListResponse, error) {
	page.DefaultPage()
	f := repository.NewFilter().Where("seller_id", sellerID).Page(page.Limit, page.Offset)
	if status != "" {
		if !validProductStatus(status) {
			return nil, domain.NewValidationError("status inválido", status)
		}
		f.Where("status", status)
	}
	return uc.list(ctx, f, page)
}

// ListPending productos que esperan revisión, los más antiguos primero.
func (uc *ProductUseCase) ListPending(ctx context.Context, page dto.PageRequest) (*dto.ProductListResponse, error) {
	page.DefaultPage()
	f := repository.NewFilter().
		WhereIn("status", entity.ProductStatusPending, entity.ProductStatusSubmitted).
		Order("created_at", false).
		Page(page.Limit, page.Offset)
	return uc.list(ctx, f, page)
}

// Approve marca el producto como aprobado, verificado y activo.
func (uc *ProductUseCase) Approve(ctx context.Context, captainID, productID string) (*dto.ProductResponse, error) {
	p, err := uc.reviewable(ctx, productID)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	p.Status = entity.ProductStatusApproved
	p.IsVerified = true
	p.IsActive = true
	p.RejectionReason = ""
	p.ReviewedBy = captainID
	p.ReviewedAt = &now
	p.UpdatedAt = now
	if err := uc.products.Update(ctx, p); err != nil {
		return nil, err
	}
	uc.notifier.Notify(ctx, p.SellerID, entity.NotificationProductApproved,
		"Producto aprobado", fmt.Sprintf("Tu producto %q fue aprobado y ya es visible en el catálogo.", p.Name))
	return ToProductResponse(p), nil
}

// Reject rechaza el producto con un motivo obligatorio.
func (uc *ProductUseCase) Reject(ctx context.Context, captainID, productID, reason string) (*dto.ProductResponse, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, domain.NewValidationError("reason es requerido para rechazar")
	}
	p, err := uc.reviewable(ctx, productID)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	p.Status = entity.ProductStatusRejected
	p.IsVerified = false
	p.IsActive = false
	p.RejectionReason = reason
	p.ReviewedBy = captainID
	p.ReviewedAt = &now
	p.UpdatedAt = now
	if err := uc.products.Update(ctx, p); err != nil {
		return nil, err
	}
	uc.notifier.Notify(ctx, p.SellerID, entity.NotificationProductRejected,
		"Producto rechazado", fmt.Sprintf("Tu producto %q fue rechazado: %s", p.Name, reason))
	return ToProductResponse(p), nil
}

func (uc *ProductUseCase) list(ctx context.Context, f *repository.ListFilter, page dto.PageRequest) (*dto.ProductListResponse, error) {
	list, err := uc.products.List(ctx, f)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *ToProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Count: len(items)},
	}, nil
}

func (uc *ProductUseCase) ownProduct(ctx context.Context, sellerID, id string) (*entity.Product, error) {
	p, err := uc.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.SellerID != sellerID {
		return nil, fmt.Errorf("%w: el producto pertenece a otro vendedor", domain.ErrForbidden)
	}
	return p, nil
}

func (uc *ProductUseCase) reviewable(ctx context.Context, id string) (*entity.Product, error) {
	if strings.TrimSpace(id) == "" {
		return nil, domain.NewValidationError("product_id es requerido")
	}
	p, err := uc.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !p.IsReviewable() {
		return nil, fmt.Errorf("%w: producto en estado %s", domain.ErrConflict, p.Status)
	}
	return p, nil
}

func (uc *ProductUseCase) resolveCurrency(ctx context.Context, code string) (string, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		code = DefaultCurrency
	}
	c, err := uc.currencies.GetByCode(ctx, code)
	if err != nil {
		if domain.IsNotFound(err) {
			return "", domain.NewValidationError("moneda no soportada", code)
		}
		return "", err
	}
	return c.Code, nil
}

// ensureCategory busca la categoría sin distinguir mayúsculas y la crea si no existe.
func (uc *ProductUseCase) ensureCategory(ctx context.Context, name string) (*entity.Category, error) {
	name = NormalizeCategoryName(name)
	if name == "" {
		return nil, domain.NewValidationError("category es requerida")
	}
	cat, err := uc.categories.GetByName(ctx, name)
	if err == nil {
		return cat, nil
	}
	if !domain.IsNotFound(err) {
		return nil, err
	}
	cat = &entity.Category{
		ID:        uuid.New().String(),
		Name:      name,
		Slug:      Slugify(name),
		CreatedAt: uc.now(),
	}
	if err := uc.categories.Create(ctx, cat); err != nil {
		// Otra petición la creó entre la búsqueda y el insert.
		if errors.Is(err, domain.ErrDuplicate) {
			return uc.categories.GetByName(ctx, name)
		}
		return nil, err
	}
	return cat, nil
}

// NormalizeCategoryName colapsa espacios y aplica Title case ("  industrial  PUMPS" → "Industrial Pumps").
func NormalizeCategoryName(name string) string {
	name = strings.Join(strings.Fields(name), " ")
	return cases.Title(language.Und).String(strings.ToLower(name))
}

// Slugify "Industrial Pumps & Valves" → "industrial-pumps-valves".
func Slugify(name string) string {
	var sb strings.Builder
	dash := false
	for _, r := range strings.ToLower(name) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			sb.WriteRune(r)
			dash = false
			continue
		}
		if !dash && sb.Len() > 0 {
			sb.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(sb.String(), "-")
}

func validProductStatus(s string) bool {
	switch s {
	case entity.ProductStatusPending, entity.ProductStatusSubmitted, entity.ProductStatusApproved, entity.ProductStatusRejected:
		return true
	}
	return false
}

// ToProductResponse mapea la entidad a DTO.
func ToProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:              p.ID,
		SellerID:        p.SellerID,
		Name:            p.Name,
		Description:     p.Description,
		CategoryID:      p.CategoryID,
		Category:        p.CategoryName,
		Currency:        p.CurrencyCode,
		Price:           p.Price.Round(2),
		MinOrderQty:     p.MinOrderQty,
		Unit:            p.Unit,
		Status:          p.Status,
		IsVerified:      p.IsVerified,
		IsActive:        p.IsActive,
		RejectionReason: p.RejectionReason,
		ReviewedAt:      p.ReviewedAt,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}
