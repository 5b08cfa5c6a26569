package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/mercado-b2b-api/internal/application/usecase"
	"github.com/jhoicas/mercado-b2b-api/internal/domain/entity"
	"github.com/jhoicas/mercado-b2b-api/internal/domain/rfq"
	"github.com/jhoicas/mercado-b2b-api/internal/infrastructure/memory"
)

func TestSellerDashboard_ClavesCompletas(t *testing.T) {
	s := memory.NewStore()
	products := newProductUseCase(s)
	p := createProduct(t, products, "Tornillo")
	createProduct(t, products, "Tuerca")
	_, err := products.Approve(context.Background(), captainID, p.ID)
	require.NoError(t, err)

	uc := usecase.NewDashboardUseCase(memory.NewProductRepository(s), memory.NewRFQRepository(s))
	out, err := uc.SellerDashboard(context.Background(), sellerID)
	require.NoError(t, err)

	assert.Equal(t, 1, out.Products[entity.ProductStatusApproved])
	assert.Equal(t, 1, out.Products[entity.ProductStatusPending])
	assert.Equal(t, 0, out.Products[entity.ProductStatusRejected])
	assert.Len(t, out.RFQs, len(rfq.AllStatuses))
	for _, st := range rfq.AllStatuses {
		assert.Contains(t, out.RFQs, st.String())
	}

	vacio, err := uc.SellerDashboard(context.Background(), "sin-productos")
	require.NoError(t, err)
	assert.Len(t, vacio.Products, 4)
	assert.Equal(t, 0, vacio.Products[entity.ProductStatusApproved])
}
