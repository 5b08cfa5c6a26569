package ports

import (
	"context"
	"time"

	"github.com/jhoicas/mercado-b2b-api/internal/domain/entity"
)

// RFQDocument datos necesarios para la representación PDF de una RFQ.
type RFQDocument struct {
	RFQ         *entity.RFQ
	Product     *entity.Product
	Buyer       *entity.User
	Seller      *entity.User
	GeneratedAt time.Time
}

// RFQPDFGenerator genera el resumen PDF de una RFQ.
type RFQPDFGenerator interface {
	GenerateRFQPDF(ctx context.Context, doc RFQDocument) ([]byte, error)
}

// CatalogFeed documento XML del catálogo y su huella (ETag).
type CatalogFeed struct {
	XML  []byte
	ETag string
}

// CatalogFeedBuilder construye el feed XML de productos aprobados.
// El resultado debe ser determinista para el mismo conjunto de productos.
type CatalogFeedBuilder interface {
	BuildCatalogFeed(ctx context.Context, supplier string, products []*entity.Product) (*CatalogFeed, error)
}
