package entity

import (
	"time"

	"github.com/jhoicas/mercado-b2b-api/internal/domain/rfq"
	"github.com/shopspring/decimal"
)

// RFQ solicitud de cotización de un comprador a un vendedor sobre un producto.
type RFQ struct {
	ID               string
	BuyerID          string
	SellerID         string
	ProductID        string
	ProductName      string // resuelto en lecturas
	Quantity         decimal.Decimal
	Unit             string
	TargetPrice      *decimal.Decimal
	CurrencyCode     string
	DeliveryLocation string
	RequiredBy       *time.Time
	Message          string
	Status           rfq.Status

	// Respuesta del vendedor
	SellerMessage string
	QuotedPrice   *decimal.Decimal
	LeadTimeDays  *int
	RespondedAt   *time.Time

	ResubmissionCount int
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// IsParticipant informa si userID es el comprador o el vendedor de la RFQ.
func (r *RFQ) IsParticipant(userID string) bool {
	return userID != "" && (r.BuyerID == userID || r.SellerID == userID)
}
