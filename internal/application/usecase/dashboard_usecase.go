package usecase

import (
	"context"
	"fmt"

	"github.com/jhoicas/mercado-b2b-api/internal/application/dto"
	"github.com/jhoicas/mercado-b2b-api/internal/domain/entity"
	"github.com/jhoicas/mercado-b2b-api/internal/domain/repository"
	"github.com/jhoicas/mercado-b2b-api/internal/domain/rfq"
)

// DashboardUseCase conteos por estado para el panel del vendedor.
type DashboardUseCase struct {
	products repository.ProductRepository
	rfqs     repository.RFQRepository
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(products repository.ProductRepository, rfqs repository.RFQRepository) *DashboardUseCase {
	return &DashboardUseCase{products: products, rfqs: rfqs}
}

// SellerDashboard cuenta productos y RFQs del vendedor por estado. Los estados sin
// filas aparecen con 0 para que el panel tenga siempre las mismas claves.
func (uc *DashboardUseCase) SellerDashboard(ctx context.Context, sellerID string) (*dto.SellerDashboardResponse, error) {
	type countResult struct {
		counts map[string]int
		err    error
	}
	prodChan := make(chan countResult, 1)
	rfqChan := make(chan countResult, 1)

	// Consultas independientes en paralelo.
	go func() {
		c, err := uc.products.CountByStatus(ctx, sellerID)
		prodChan <- countResult{c, err}
	}()
	go func() {
		c, err := uc.rfqs.CountByStatus(ctx, sellerID)
		rfqChan <- countResult{c, err}
	}()

	prodRes := <-prodChan
	rfqRes := <-rfqChan
	if prodRes.err != nil {
		return nil, fmt.Errorf("dashboard: productos: %w", prodRes.err)
	}
	if rfqRes.err != nil {
		return nil, fmt.Errorf("dashboard: rfqs: %w", rfqRes.err)
	}

	products := map[string]int{
		entity.ProductStatusPending:   0,
		entity.ProductStatusSubmitted: 0,
		entity.ProductStatusApproved:  0,
		entity.ProductStatusRejected:  0,
	}
	for k, v := range prodRes.counts {
		products[k] = v
	}
	rfqs := make(map[string]int, len(rfq.AllStatuses))
	for _, s := range rfq.AllStatuses {
		rfqs[s.String()] = 0
	}
	for k, v := range rfqRes.counts {
		rfqs[k] = v
	}
	return &dto.SellerDashboardResponse{Products: products, RFQs: rfqs}, nil
}
