// Package rfq orquesta el flujo de solicitudes de cotización entre comprador y vendedor.
package rfq

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/mercado-b2b-api/internal/application/dto"
	"github.com/jhoicas/mercado-b2b-api/internal/application/ports"
	"github.com/jhoicas/mercado-b2b-api/internal/application/usecase"
	"github.com/jhoicas/mercado-b2b-api/internal/domain"
	"github.com/jhoicas/mercado-b2b-api/internal/domain/entity"
	"github.com/jhoicas/mercado-b2b-api/internal/domain/repository"
	rfqdomain "github.com/jhoicas/mercado-b2b-api/internal/domain/rfq"
	"github.com/jhoicas/mercado-b2b-api/pkg/logger"
)

// Deps dependencias del caso de uso.
type Deps struct {
	RFQs       repository.RFQRepository
	Products   repository.ProductRepository
	Users      repository.UserRepository
	Currencies repository.CurrencyRepository
	Notifier   *usecase.Notifier
	PDF        ports.RFQPDFGenerator
	Log        *logger.Logger
}

// UseCase casos de uso de RFQ.
type UseCase struct {
	rfqs       repository.RFQRepository
	products   repository.ProductRepository
	users      repository.UserRepository
	currencies repository.CurrencyRepository
	notifier   *usecase.Notifier
	pdf        ports.RFQPDFGenerator
	log        *logger.Logger
	now        func() time.Time
}

// NewUseCase construye el caso de uso.
func NewUseCase(d Deps) *UseCase {
	log := d.Log
	if log == nil {
		log = logger.Nop()
	}
	return &UseCase{
		rfqs:       d.RFQs,
		products:   d.Products,
		users:      d.Users,
		currencies: d.Currencies,
		notifier:   d.Notifier,
		pdf:        d.PDF,
		log:        log.Named("rfq"),
		now:        time.Now,
	}
}

// Create registra una RFQ del comprador sobre un producto aprobado y activo.
// El vendedor se toma del producto; la RFQ nace en estado initial.
func (uc *UseCase) Create(ctx context.Context, buyerID string, in dto.CreateRFQRequest) (*dto.RFQResponse, error) {
	if strings.TrimSpace(in.ProductID) == "" {
		return nil, domain.NewValidationError("product_id es requerido")
	}
	var problems []string
	if !in.Quantity.IsPositive() {
		problems = append(problems, "quantity debe ser mayor que cero")
	}
	if in.TargetPrice != nil && in.TargetPrice.IsNegative() {
		problems = append(problems, "target_price no puede ser negativo")
	}
	requiredBy, err := parseDate(in.RequiredBy)
	if err != nil {
		problems = append(problems, err.Error())
	}
	if len(problems) > 0 {
		return nil, domain.NewValidationError("datos de RFQ inválidos", problems...)
	}

	p, err := uc.products.GetByID(ctx, in.ProductID)
	if err != nil {
		return nil, err
	}
	if !p.IsPublic() {
		return nil, fmt.Errorf("get product %s: %w", in.ProductID, domain.ErrProductNotFound)
	}
	if p.SellerID == buyerID {
		return nil, fmt.Errorf("%w: no puedes cotizar tu propio producto", domain.ErrForbidden)
	}

	currency, err := uc.resolveCurrency(ctx, in.Currency, p.CurrencyCode)
	if err != nil {
		return nil, err
	}
	unit := strings.TrimSpace(in.Unit)
	if unit == "" {
		unit = p.Unit
	}
	now := uc.now()
	q := &entity.RFQ{
		ID:               uuid.New().String(),
		BuyerID:          buyerID,
		SellerID:         p.SellerID,
		ProductID:        p.ID,
		ProductName:      p.Name,
		Quantity:         in.Quantity,
		Unit:             unit,
		TargetPrice:      in.TargetPrice,
		CurrencyCode:     currency,
		DeliveryLocation: strings.TrimSpace(in.DeliveryLocation),
		RequiredBy:       requiredBy,
		Message:          strings.TrimSpace(in.Message),
		Status:           rfqdomain.StatusInitial,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := uc.rfqs.Create(ctx, q); err != nil {
		return nil, err
	}
	uc.log.Info().Str("rfq_id", q.ID).Str("buyer_id", buyerID).Str("seller_id", q.SellerID).Msg("RFQ creada")
	uc.notifier.Notify(ctx, q.SellerID, entity.NotificationRFQCreated,
		"Nueva solicitud de cotización", fmt.Sprintf("Recibiste una RFQ por %s %s de %q.", q.Quantity.String(), q.Unit, p.Name))
	return ToRFQResponse(q), nil
}

// UpdateByBuyer aplica la edición del comprador. Si el vendedor ya había respondido
// (en cualquier forma) la RFQ pasa a resubmitted y se incrementa resubmission_count.
func (uc *UseCase) UpdateByBuyer(ctx context.Context, buyerID, id string, in dto.UpdateRFQRequest) (*dto.RFQResponse, error) {
	q, err := uc.rfqs.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if q.BuyerID != buyerID {
		return nil, fmt.Errorf("%w: la RFQ pertenece a otro comprador", domain.ErrForbidden)
	}

	if in.Quantity != nil {
		if !in.Quantity.IsPositive() {
			return nil, domain.NewValidationError("quantity debe ser mayor que cero")
		}
		q.Quantity = *in.Quantity
	}
	if in.TargetPrice != nil {
		if in.TargetPrice.IsNegative() {
			return nil, domain.NewValidationError("target_price no puede ser negativo")
		}
		tp := *in.TargetPrice
		q.TargetPrice = &tp
	}
	if in.RequiredBy != nil {
		d, err := parseDate(*in.RequiredBy)
		if err != nil {
			return nil, domain.NewValidationError("datos de RFQ inválidos", err.Error())
		}
		q.RequiredBy = d
	}
	if in.Unit != nil {
		q.Unit = strings.TrimSpace(*in.Unit)
	}
	if in.Currency != nil {
		code, err := uc.resolveCurrency(ctx, *in.Currency, q.CurrencyCode)
		if err != nil {
			return nil, err
		}
		q.CurrencyCode = code
	}
	if in.DeliveryLocation != nil {
		q.DeliveryLocation = strings.TrimSpace(*in.DeliveryLocation)
	}
	if in.Message != nil {
		q.Message = strings.TrimSpace(*in.Message)
	}

	prev := q.Status
	q.Status = rfqdomain.NextStatusOnBuyerUpdate(prev)
	resubmitted := q.Status != prev && q.Status == rfqdomain.StatusResubmitted
	if resubmitted {
		q.ResubmissionCount++
	}
	q.UpdatedAt = uc.now()
	if err := uc.rfqs.Update(ctx, q); err != nil {
		return nil, err
	}

	if resubmitted {
		uc.notifier.Notify(ctx, q.SellerID, entity.NotificationRFQResubmitted,
			"RFQ reenviada", fmt.Sprintf("El comprador modificó y reenvió la RFQ de %q.", q.ProductName))
	} else {
		uc.notifier.Notify(ctx, q.SellerID, entity.NotificationRFQUpdated,
			"RFQ actualizada", fmt.Sprintf("El comprador actualizó la RFQ de %q.", q.ProductName))
	}
	return ToRFQResponse(q), nil
}

// resolveCurrency valida el código contra el catálogo; vacío conserva fallback.
func (uc *UseCase) resolveCurrency(ctx context.Context, code, fallback string) (string, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return fallback, nil
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

// Respond aplica una acción del vendedor. Una RFQ aceptada no admite más acciones.
func (uc *UseCase) Respond(ctx context.Context, sellerID, id string, in dto.SellerRFQActionRequest) (*dto.RFQResponse, error) {
	action := rfqdomain.SellerAction(strings.TrimSpace(in.Action))
	if in.QuotedPrice != nil && in.QuotedPrice.IsNegative() {
		return nil, domain.NewValidationError("quoted_price no puede ser negativo")
	}
	if in.LeadTimeDays != nil && *in.LeadTimeDays < 0 {
		return nil, domain.NewValidationError("lead_time_days no puede ser negativo")
	}
	q, err := uc.rfqs.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if q.SellerID != sellerID {
		return nil, fmt.Errorf("%w: la RFQ está dirigida a otro vendedor", domain.ErrForbidden)
	}
	next, err := rfqdomain.ApplySellerAction(q.Status, action)
	if err != nil {
		switch {
		case errors.Is(err, rfqdomain.ErrUnknownAction):
			return nil, domain.NewValidationError("acción inválida",
				"action debe ser request_negotiation, provide_doq, respond, accept o reject")
		case errors.Is(err, rfqdomain.ErrClosed):
			return nil, fmt.Errorf("%w: %v", domain.ErrConflict, err)
		}
		return nil, err
	}

	now := uc.now()
	q.Status = next
	if msg := strings.TrimSpace(in.Message); msg != "" {
		q.SellerMessage = msg
	}
	if in.QuotedPrice != nil {
		qp := *in.QuotedPrice
		q.QuotedPrice = &qp
	}
	if in.LeadTimeDays != nil {
		lt := *in.LeadTimeDays
		q.LeadTimeDays = &lt
	}
	q.RespondedAt = &now
	q.UpdatedAt = now
	if err := uc.rfqs.Update(ctx, q); err != nil {
		return nil, err
	}
	uc.notifier.Notify(ctx, q.BuyerID, entity.NotificationRFQResponse,
		"Respuesta a tu RFQ", fmt.Sprintf("El vendedor respondió tu RFQ de %q: %s.", q.ProductName, q.Status))
	return ToRFQResponse(q), nil
}

// Get devuelve la RFQ a sus participantes o a un captain.
func (uc *UseCase) Get(ctx context.Context, userID, role, id string) (*dto.RFQResponse, error) {
	q, err := uc.visible(ctx, userID, role, id)
	if err != nil {
		return nil, err
	}
	return ToRFQResponse(q), nil
}

// ListForBuyer RFQs creadas por el comprador.
func (uc *UseCase) ListForBuyer(ctx context.Context, buyerID, status string, page dto.PageRequest) (*dto.RFQListResponse, error) {
	return uc.list(ctx, "buyer_id", buyerID, status, page)
}

// ListForSeller RFQs dirigidas al vendedor.
func (uc *UseCase) ListForSeller(ctx context.Context, sellerID, status string, page dto.PageRequest) (*dto.RFQListResponse, error) {
	return uc.list(ctx, "seller_id", sellerID, status, page)
}

// PDF resumen imprimible de la RFQ. Devuelve el contenido y un nombre de archivo sugerido.
func (uc *UseCase) PDF(ctx context.Context, userID, role, id string) ([]byte, string, error) {
	q, err := uc.visible(ctx, userID, role, id)
	if err != nil {
		return nil, "", err
	}
	doc := ports.RFQDocument{RFQ: q, GeneratedAt: uc.now()}
	if doc.Product, err = uc.products.GetByID(ctx, q.ProductID); err != nil && !domain.IsNotFound(err) {
		return nil, "", err
	}
	if doc.Buyer, err = uc.users.GetByID(ctx, q.BuyerID); err != nil && !domain.IsNotFound(err) {
		return nil, "", err
	}
	if doc.Seller, err = uc.users.GetByID(ctx, q.SellerID); err != nil && !domain.IsNotFound(err) {
		return nil, "", err
	}
	out, err := uc.pdf.GenerateRFQPDF(ctx, doc)
	if err != nil {
		return nil, "", fmt.Errorf("generar PDF: %w", err)
	}
	return out, fmt.Sprintf("rfq-%s.pdf", shortID(q.ID)), nil
}

func (uc *UseCase) visible(ctx context.Context, userID, role, id string) (*entity.RFQ, error) {
	q, err := uc.rfqs.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if role != entity.RoleCaptain && !q.IsParticipant(userID) {
		return nil, fmt.Errorf("%w: no participas en esta RFQ", domain.ErrForbidden)
	}
	return q, nil
}

func (uc *UseCase) list(ctx context.Context, column, userID, status string, page dto.PageRequest) (*dto.RFQListResponse, error) {
	page.DefaultPage()
	f := repository.NewFilter().Where(column, userID).Page(page.Limit, page.Offset)
	if status != "" {
		st, err := rfqdomain.Parse(status)
		if err != nil {
			return nil, domain.NewValidationError("status inválido", status)
		}
		f.Where("status", st.String())
	}
	list, err := uc.rfqs.List(ctx, f)
	if err != nil {
		return nil, err
	}
	items := make([]dto.RFQResponse, 0, len(list))
	for _, q := range list {
		items = append(items, *ToRFQResponse(q))
	}
	return &dto.RFQListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Count: len(items)},
	}, nil
}

func parseDate(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(dto.DateLayout, s)
	if err != nil {
		return nil, fmt.Errorf("required_by debe tener formato %s", dto.DateLayout)
	}
	return &t, nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// ToRFQResponse mapea la entidad a DTO.
func ToRFQResponse(q *entity.RFQ) *dto.RFQResponse {
	if q == nil {
		return nil
	}
	out := &dto.RFQResponse{
		ID:                q.ID,
		BuyerID:           q.BuyerID,
		SellerID:          q.SellerID,
		ProductID:         q.ProductID,
		ProductName:       q.ProductName,
		Quantity:          q.Quantity,
		Unit:              q.Unit,
		TargetPrice:       q.TargetPrice,
		Currency:          q.CurrencyCode,
		DeliveryLocation:  q.DeliveryLocation,
		Message:           q.Message,
		Status:            q.Status.String(),
		SellerMessage:     q.SellerMessage,
		QuotedPrice:       q.QuotedPrice,
		LeadTimeDays:      q.LeadTimeDays,
		RespondedAt:       q.RespondedAt,
		ResubmissionCount: q.ResubmissionCount,
		CreatedAt:         q.CreatedAt,
		UpdatedAt:         q.UpdatedAt,
	}
	if q.RequiredBy != nil {
		out.RequiredBy = q.RequiredBy.Format(dto.DateLayout)
	}
	return out
}
