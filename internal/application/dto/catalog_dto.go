package dto

// CategoryResponse categoría.
type CategoryResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// CurrencyResponse moneda.
type CurrencyResponse struct {
	Code   string `json:"code"`
	Name   string `json:"name"`
	Symbol string `json:"symbol"`
}

// CatalogResponse catálogos de referencia para formularios.
type CatalogResponse struct {
	Categories []CategoryResponse `json:"categories"`
	Currencies []CurrencyResponse `json:"currencies"`
	Units      []string           `json:"units"`
}
