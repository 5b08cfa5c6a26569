package entity

import "time"

// Category categoría de productos. Se crea automáticamente cuando un vendedor
// usa un nombre que aún no existe.
type Category struct {
	ID        string
	Name      string
	Slug      string
	CreatedAt time.Time
}

// Currency moneda (ISO 4217). Nunca se crea desde la API.
type Currency struct {
	Code   string
	Name   string
	Symbol string
}
