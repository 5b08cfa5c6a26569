package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/mercado-b2b-api/internal/application/ports"
	"github.com/jhoicas/mercado-b2b-api/internal/domain/entity"
	"github.com/jhoicas/mercado-b2b-api/internal/domain/rfq"
)

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "999", formatMoney("999"))
	assert.Equal(t, "25,000.50", formatMoney("25000.50"))
	assert.Equal(t, "1,000,000", formatMoney("1000000"))
	assert.Equal(t, "-1,234.00", formatMoney("-1234.00"))
}

func TestSplitEvery(t *testing.T) {
	assert.Equal(t, []string{"abc", "de"}, splitEvery("abcde", 3))
	assert.Nil(t, splitEvery("", 3))
	assert.Equal(t, []string{"ñáé"}, splitEvery("ñáé", 3))
}

func TestGenerateRFQPDF(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	price := decimal.RequireFromString("12.5")
	lead := 15
	doc := ports.RFQDocument{
		RFQ: &entity.RFQ{
			ID:            "6f1c2d3e-0000-4000-8000-000000000001",
			ProductID:     "p1",
			ProductName:   "Válvula de bola 2\"",
			Quantity:      decimal.NewFromInt(500),
			Unit:          "piece",
			CurrencyCode:  "USD",
			Status:        rfq.StatusResponded,
			QuotedPrice:   &price,
			LeadTimeDays:  &lead,
			RespondedAt:   &now,
			SellerMessage: "Precio válido por 30 días.",
			CreatedAt:     now,
		},
		Buyer:       &entity.User{FirstName: "Ana", LastName: "Pérez", Email: "ana@acme.test", CompanyName: "Acme"},
		GeneratedAt: now,
	}
	out, err := NewMarotoRFQGenerator("").GenerateRFQPDF(context.Background(), doc)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestGenerateRFQPDF_SinRFQ(t *testing.T) {
	_, err := NewMarotoRFQGenerator("x").GenerateRFQPDF(context.Background(), ports.RFQDocument{})
	assert.Error(t, err)
}
