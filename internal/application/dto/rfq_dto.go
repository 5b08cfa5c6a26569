package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout formato de fechas sin hora (required_by).
const DateLayout = "2006-01-02"

// CreateRFQRequest entrada del comprador para crear una RFQ.
type CreateRFQRequest struct {
	ProductID        string           `json:"product_id" validate:"required"`
	Quantity         decimal.Decimal  `json:"quantity" validate:"required"`
	Unit             string           `json:"unit"`
	TargetPrice      *decimal.Decimal `json:"target_price"`
	Currency         string           `json:"currency" validate:"omitempty,len=3"`
	DeliveryLocation string           `json:"delivery_location"`
	RequiredBy       string           `json:"required_by"` // YYYY-MM-DD
	Message          string           `json:"message"`
}

// UpdateRFQRequest edición del comprador (campos opcionales).
type UpdateRFQRequest struct {
	Quantity         *decimal.Decimal `json:"quantity"`
	Unit             *string          `json:"unit"`
	TargetPrice      *decimal.Decimal `json:"target_price"`
	Currency         *string          `json:"currency"`
	DeliveryLocation *string          `json:"delivery_location"`
	RequiredBy       *string          `json:"required_by"`
	Message          *string          `json:"message"`
}

// SellerRFQActionRequest acción del vendedor.
// Action: request_negotiation | provide_doq | respond | accept | reject.
type SellerRFQActionRequest struct {
	Action       string           `json:"action" validate:"required"`
	Message      string           `json:"message"`
	QuotedPrice  *decimal.Decimal `json:"quoted_price"`
	LeadTimeDays *int             `json:"lead_time_days"`
}

// RFQResponse salida de una RFQ.
type RFQResponse struct {
	ID                string           `json:"id"`
	BuyerID           string           `json:"buyer_id"`
	SellerID          string           `json:"seller_id"`
	ProductID         string           `json:"product_id"`
	ProductName       string           `json:"product_name"`
	Quantity          decimal.Decimal  `json:"quantity"`
	Unit              string           `json:"unit"`
	TargetPrice       *decimal.Decimal `json:"target_price,omitempty"`
	Currency          string           `json:"currency"`
	DeliveryLocation  string           `json:"delivery_location"`
	RequiredBy        string           `json:"required_by,omitempty"`
	Message           string           `json:"message"`
	Status            string           `json:"status"`
	SellerMessage     string           `json:"seller_message,omitempty"`
	QuotedPrice       *decimal.Decimal `json:"quoted_price,omitempty"`
	LeadTimeDays      *int             `json:"lead_time_days,omitempty"`
	RespondedAt       *time.Time       `json:"responded_at,omitempty"`
	ResubmissionCount int              `json:"resubmission_count"`
	CreatedAt         time.Time        `json:"created_at"`
	UpdatedAt         time.Time        `json:"updated_at"`
}

// RFQListResponse lista paginada de RFQs.
type RFQListResponse struct {
	Items []RFQResponse `json:"items"`
	Page  PageResponse  `json:"page"`
}
