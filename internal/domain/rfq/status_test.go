package rfq_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/mercado-b2b-api/internal/domain/rfq"
)

func TestNextStatusOnBuyerUpdate(t *testing.T) {
	cases := []struct {
		current rfq.Status
		want    rfq.Status
	}{
		{rfq.StatusInitial, rfq.StatusInitial},
		{rfq.StatusNegotiationRequested, rfq.StatusResubmitted},
		{rfq.StatusDOQProvided, rfq.StatusResubmitted},
		{rfq.StatusResponded, rfq.StatusResubmitted},
		{rfq.StatusAccepted, rfq.StatusResubmitted},
		{rfq.StatusRejected, rfq.StatusResubmitted},
		{rfq.StatusResubmitted, rfq.StatusResubmitted},
	}
	require.Len(t, cases, len(rfq.AllStatuses), "la tabla debe cubrir todos los estados")
	for _, tc := range cases {
		t.Run(string(tc.current), func(t *testing.T) {
			assert.Equal(t, tc.want, rfq.NextStatusOnBuyerUpdate(tc.current))
		})
	}
}

// Dos ediciones seguidas del comprador sin acción del vendedor dejan "resubmitted".
func TestNextStatusOnBuyerUpdate_Idempotente(t *testing.T) {
	s := rfq.NextStatusOnBuyerUpdate(rfq.StatusResponded)
	s = rfq.NextStatusOnBuyerUpdate(s)
	assert.Equal(t, rfq.StatusResubmitted, s)
}

func TestHasSellerResponse(t *testing.T) {
	assert.False(t, rfq.HasSellerResponse(rfq.StatusInitial))
	assert.False(t, rfq.HasSellerResponse(rfq.StatusResubmitted))
	assert.True(t, rfq.HasSellerResponse(rfq.StatusRejected))
	assert.True(t, rfq.HasSellerResponse(rfq.StatusDOQProvided))
}

func TestApplySellerAction(t *testing.T) {
	next, err := rfq.ApplySellerAction(rfq.StatusInitial, rfq.ActionProvideDOQ)
	require.NoError(t, err)
	assert.Equal(t, rfq.StatusDOQProvided, next)

	next, err = rfq.ApplySellerAction(rfq.StatusResubmitted, rfq.ActionAccept)
	require.NoError(t, err)
	assert.Equal(t, rfq.StatusAccepted, next)

	_, err = rfq.ApplySellerAction(rfq.StatusAccepted, rfq.ActionReject)
	assert.ErrorIs(t, err, rfq.ErrClosed)

	_, err = rfq.ApplySellerAction(rfq.StatusInitial, rfq.SellerAction("cancel"))
	assert.ErrorIs(t, err, rfq.ErrUnknownAction)
}

func TestParse(t *testing.T) {
	st, err := rfq.Parse("doq_provided")
	require.NoError(t, err)
	assert.Equal(t, rfq.StatusDOQProvided, st)

	_, err = rfq.Parse("closed")
	assert.Error(t, err)
}
