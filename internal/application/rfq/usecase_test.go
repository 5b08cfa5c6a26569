package rfq_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/mercado-b2b-api/internal/application/dto"
	"github.com/jhoicas/mercado-b2b-api/internal/application/ports"
	"github.com/jhoicas/mercado-b2b-api/internal/application/rfq"
	"github.com/jhoicas/mercado-b2b-api/internal/application/usecase"
	"github.com/jhoicas/mercado-b2b-api/internal/domain"
	"github.com/jhoicas/mercado-b2b-api/internal/domain/entity"
	"github.com/jhoicas/mercado-b2b-api/internal/domain/repository"
	rfqdomain "github.com/jhoicas/mercado-b2b-api/internal/domain/rfq"
	"github.com/jhoicas/mercado-b2b-api/internal/infrastructure/memory"
	"github.com/jhoicas/mercado-b2b-api/pkg/logger"
)

const (
	buyer  = "buyer-1"
	seller = "seller-1"
)

type fakePDF struct {
	last ports.RFQDocument
	err  error
}

func (f *fakePDF) GenerateRFQPDF(_ context.Context, doc ports.RFQDocument) ([]byte, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.last = doc
	return []byte("%PDF-fake"), nil
}

type fixture struct {
	uc    *rfq.UseCase
	store *memory.Store
	pdf   *fakePDF
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	s := memory.NewStore()
	f := &fixture{store: s, pdf: &fakePDF{}}
	f.uc = rfq.NewUseCase(rfq.Deps{
		RFQs:       memory.NewRFQRepository(s),
		Products:   memory.NewProductRepository(s),
		Users:      memory.NewUserRepository(s),
		Currencies: memory.NewCurrencyRepository(s),
		Notifier:   usecase.NewNotifier(memory.NewNotificationRepository(s), logger.Nop()),
		PDF:        f.pdf,
		Log:        logger.Nop(),
	})
	for _, id := range []string{buyer, seller} {
		require.NoError(t, memory.NewUserRepository(s).Create(context.Background(), &entity.User{
			ID: id, Email: id + "@mercado.test", FirstName: id, IsActive: true, CreatedAt: time.Now(),
		}))
	}
	return f
}

func (f *fixture) product(t *testing.T, id, status string, active bool) {
	t.Helper()
	require.NoError(t, memory.NewProductRepository(f.store).Create(context.Background(), &entity.Product{
		ID: id, SellerID: seller, Name: "Bomba " + id, CurrencyCode: "EUR", Unit: "pieza",
		Price: decimal.NewFromInt(100), MinOrderQty: 1, Status: status, IsActive: active,
		CreatedAt: time.Now(), UpdatedAt: time.Now(),
	}))
}

func (f *fixture) create(t *testing.T) *dto.RFQResponse {
	t.Helper()
	f.product(t, "p-ok", entity.ProductStatusApproved, true)
	out, err := f.uc.Create(context.Background(), buyer, dto.CreateRFQRequest{
		ProductID: "p-ok", Quantity: decimal.NewFromInt(500), RequiredBy: "2026-12-01",
	})
	require.NoError(t, err)
	return out
}

func (f *fixture) notifications(t *testing.T, userID string) []*entity.Notification {
	t.Helper()
	list, err := memory.NewNotificationRepository(f.store).List(context.Background(), repository.NewFilter().Where("user_id", userID))
	require.NoError(t, err)
	return list
}

func TestCreate_HeredaDatosDelProducto(t *testing.T) {
	f := newFixture(t)
	out := f.create(t)

	assert.Equal(t, seller, out.SellerID)
	assert.Equal(t, "EUR", out.Currency)
	assert.Equal(t, "pieza", out.Unit)
	assert.Equal(t, "2026-12-01", out.RequiredBy)
	assert.Equal(t, rfqdomain.StatusInitial.String(), out.Status)
	require.Len(t, f.notifications(t, seller), 1)
	assert.Equal(t, entity.NotificationRFQCreated, f.notifications(t, seller)[0].Type)
}

func TestCreate_Validaciones(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.product(t, "p-pend", entity.ProductStatusPending, false)
	f.product(t, "p-ok", entity.ProductStatusApproved, true)

	_, err := f.uc.Create(ctx, buyer, dto.CreateRFQRequest{ProductID: "p-pend", Quantity: decimal.NewFromInt(1)})
	assert.True(t, domain.IsNotFound(err), "un producto no público no se puede cotizar")

	_, err = f.uc.Create(ctx, seller, dto.CreateRFQRequest{ProductID: "p-ok", Quantity: decimal.NewFromInt(1)})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = f.uc.Create(ctx, buyer, dto.CreateRFQRequest{ProductID: "p-ok", RequiredBy: "01/12/2026"})
	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Len(t, ve.Details, 2, "cantidad y fecha")
}

func TestMoneda_SoloDelCatalogo(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.product(t, "p-ok", entity.ProductStatusApproved, true)

	_, err := f.uc.Create(ctx, buyer, dto.CreateRFQRequest{
		ProductID: "p-ok", Quantity: decimal.NewFromInt(5), Currency: "DOGECOIN",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	out, err := f.uc.Create(ctx, buyer, dto.CreateRFQRequest{
		ProductID: "p-ok", Quantity: decimal.NewFromInt(5), Currency: " inr ",
	})
	require.NoError(t, err)
	assert.Equal(t, "INR", out.Currency)

	bad := "xx"
	_, err = f.uc.UpdateByBuyer(ctx, buyer, out.ID, dto.UpdateRFQRequest{Currency: &bad})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	empty := " "
	got, err := f.uc.UpdateByBuyer(ctx, buyer, out.ID, dto.UpdateRFQRequest{Currency: &empty})
	require.NoError(t, err)
	assert.Equal(t, "INR", got.Currency, "vacío conserva la moneda")
}

func TestUpdateByBuyer_Reenvio(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	q := f.create(t)
	msg := "urgente"

	out, err := f.uc.UpdateByBuyer(ctx, buyer, q.ID, dto.UpdateRFQRequest{Message: &msg})
	require.NoError(t, err)
	assert.Equal(t, rfqdomain.StatusInitial.String(), out.Status, "sin respuesta del vendedor no hay reenvío")
	assert.Zero(t, out.ResubmissionCount)

	_, err = f.uc.Respond(ctx, seller, q.ID, dto.SellerRFQActionRequest{Action: "reject", Message: "sin stock"})
	require.NoError(t, err)

	qty := decimal.NewFromInt(200)
	out, err = f.uc.UpdateByBuyer(ctx, buyer, q.ID, dto.UpdateRFQRequest{Quantity: &qty})
	require.NoError(t, err)
	assert.Equal(t, rfqdomain.StatusResubmitted.String(), out.Status)
	assert.Equal(t, 1, out.ResubmissionCount)

	out, err = f.uc.UpdateByBuyer(ctx, buyer, q.ID, dto.UpdateRFQRequest{Message: &msg})
	require.NoError(t, err)
	assert.Equal(t, 1, out.ResubmissionCount, "una segunda edición seguida no vuelve a contar")

	_, err = f.uc.UpdateByBuyer(ctx, "otro", q.ID, dto.UpdateRFQRequest{Message: &msg})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestRespond_ReglasDelVendedor(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	q := f.create(t)

	_, err := f.uc.Respond(ctx, "otro-seller", q.ID, dto.SellerRFQActionRequest{Action: "respond"})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = f.uc.Respond(ctx, seller, q.ID, dto.SellerRFQActionRequest{Action: "bailar"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	lead := -1
	_, err = f.uc.Respond(ctx, seller, q.ID, dto.SellerRFQActionRequest{Action: "respond", LeadTimeDays: &lead})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	price := decimal.RequireFromString("95.50")
	lead = 15
	out, err := f.uc.Respond(ctx, seller, q.ID, dto.SellerRFQActionRequest{
		Action: "respond", Message: "podemos", QuotedPrice: &price, LeadTimeDays: &lead,
	})
	require.NoError(t, err)
	assert.Equal(t, rfqdomain.StatusResponded.String(), out.Status)
	assert.True(t, out.QuotedPrice.Equal(price))
	assert.Equal(t, 15, *out.LeadTimeDays)
	assert.NotNil(t, out.RespondedAt)

	_, err = f.uc.Respond(ctx, seller, q.ID, dto.SellerRFQActionRequest{Action: "accept"})
	require.NoError(t, err)
	_, err = f.uc.Respond(ctx, seller, q.ID, dto.SellerRFQActionRequest{Action: "respond"})
	assert.ErrorIs(t, err, domain.ErrConflict)

	assert.Len(t, f.notifications(t, buyer), 2)
}

func TestPDF_Visibilidad(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	q := f.create(t)

	out, name, err := f.uc.PDF(ctx, buyer, entity.RoleBuyer, q.ID)
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-fake"), out)
	assert.Equal(t, "rfq-"+q.ID[:8]+".pdf", name)
	require.NotNil(t, f.pdf.last.Product)
	assert.Equal(t, seller, f.pdf.last.Seller.ID)
	assert.Equal(t, buyer, f.pdf.last.Buyer.ID)

	_, _, err = f.uc.PDF(ctx, "intruso", entity.RoleSeller, q.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, _, err = f.uc.PDF(ctx, "cap", entity.RoleCaptain, q.ID)
	assert.NoError(t, err)

	f.pdf.err = errors.New("fuente no encontrada")
	_, _, err = f.uc.PDF(ctx, seller, entity.RoleSeller, q.ID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "generar PDF")
}

func TestListas_FiltroDeEstado(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.create(t)

	mine, err := f.uc.ListForBuyer(ctx, buyer, "", dto.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, mine.Items, 1)

	inbox, err := f.uc.ListForSeller(ctx, seller, "initial", dto.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, inbox.Items, 1)

	_, err = f.uc.ListForSeller(ctx, seller, "archivada", dto.PageRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
