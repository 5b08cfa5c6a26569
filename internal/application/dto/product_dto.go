package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto. Category y Currency se resuelven por nombre/código.
type CreateProductRequest struct {
	Name        string          `json:"name" validate:"required,min=1,max=200"`
	Description string          `json:"description"`
	Category    string          `json:"category" validate:"required"`
	Currency    string          `json:"currency" validate:"omitempty,len=3"`
	Price       decimal.Decimal `json:"price"`
	MinOrderQty int             `json:"min_order_qty" validate:"min=1"`
	Unit        string          `json:"unit"`
}

// UpdateProductRequest entrada para actualizar un producto (campos opcionales).
type UpdateProductRequest struct {
	Name        *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Description *string          `json:"description"`
	Category    *string          `json:"category"`
	Currency    *string          `json:"currency"`
	Price       *decimal.Decimal `json:"price"`
	MinOrderQty *int             `json:"min_order_qty"`
	Unit        *string          `json:"unit"`
}

// ReviewProductRequest aprobación o rechazo por un captain.
type ReviewProductRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Reason    string `json:"reason"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID              string          `json:"id"`
	SellerID        string          `json:"seller_id"`
	Name            string          `json:"name"`
	Description     string          `json:"description"`
	CategoryID      string          `json:"category_id"`
	Category        string          `json:"category"`
	Currency        string          `json:"currency"`
	Price           decimal.Decimal `json:"price"`
	MinOrderQty     int             `json:"min_order_qty"`
	Unit            string          `json:"unit"`
	Status          string          `json:"status"`
	IsVerified      bool            `json:"is_verified"`
	IsActive        bool            `json:"is_active"`
	RejectionReason string          `json:"rejection_reason,omitempty"`
	ReviewedAt      *time.Time      `json:"reviewed_at,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// SellerDashboardResponse conteos por estado para el panel del vendedor.
type SellerDashboardResponse struct {
	Products map[string]int `json:"products"`
	RFQs     map[string]int `json:"rfqs"`
}
