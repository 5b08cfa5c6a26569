package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados del ciclo de vida de un producto.
const (
	ProductStatusPending   = "pending"
	ProductStatusSubmitted = "submitted"
	ProductStatusApproved  = "approved"
	ProductStatusRejected  = "rejected"
)

// Product producto publicado por un vendedor. IsVerified e IsActive solo pasan a true
// cuando un captain lo aprueba.
type Product struct {
	ID              string
	SellerID        string
	Name            string
	Description     string
	CategoryID      string
	CategoryName    string // resuelto en lecturas
	CurrencyCode    string
	Price           decimal.Decimal
	MinOrderQty     int
	Unit            string
	Status          string
	IsVerified      bool
	IsActive        bool
	RejectionReason string
	ReviewedBy      string
	ReviewedAt      *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// IsPublic informa si el producto es visible en el catálogo público.
func (p *Product) IsPublic() bool {
	return p.Status == ProductStatusApproved && p.IsActive
}

// IsReviewable informa si un captain puede aprobarlo o rechazarlo.
func (p *Product) IsReviewable() bool {
	return p.Status == ProductStatusPending || p.Status == ProductStatusSubmitted
}
