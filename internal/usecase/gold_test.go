package usecase

import (
	"context"
	"net/http"
	"testing"

	"Tickfunds/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGoldService_Quote(t *testing.T) {
	s := NewGoldService(loadCatalog(t))
	ctx := context.Background()

	q, err := s.Quote(ctx, models.GoldQuoteRequest{Side: "buy", Metal: "gold", Amount: 6380})
	require.NoError(t, err)
	assert.Equal(t, 1.0, q.Quantity)
	assert.Equal(t, 6380.0, q.Amount)

	q, err = s.Quote(ctx, models.GoldQuoteRequest{Side: "sell", Metal: "silver", Quantity: 2})
	require.NoError(t, err)
	assert.Equal(t, 156.4, q.Amount)

	// amount wins over quantity
	q, err = s.Quote(ctx, models.GoldQuoteRequest{Metal: "gold", Amount: 1000, Quantity: 5})
	require.NoError(t, err)
	assert.Equal(t, 0.1567, q.Quantity)

	_, err = s.Quote(ctx, models.GoldQuoteRequest{Metal: "gold"})
	requireAppError(t, err, http.StatusBadRequest)
	assert.ErrorIs(t, err, ErrNoQuoteInput)

	_, err = s.Quote(ctx, models.GoldQuoteRequest{Metal: "platinum", Amount: 10})
	appErr := requireAppError(t, err, http.StatusBadRequest)
	assert.Equal(t, "metal", appErr.Field)
}

func TestGoldService_Holdings(t *testing.T) {
	s := NewGoldService(loadCatalog(t))
	h := s.Holdings()

	require.Len(t, h.Positions, 2)
	assert.Equal(t, 95325.0, h.Positions[0].Invested)
	assert.Equal(t, 98890.0, h.Positions[0].CurrentValue)
	assert.Equal(t, 113950.0, h.TotalInvested)
	assert.Equal(t, 118440.0, h.TotalValue)
	assert.Equal(t, 4490.0, h.TotalPnL)
	assert.NotEmpty(t, h.Display)
	assert.Len(t, s.Transactions(), 4)
	assert.Len(t, s.Prices(), 2)
}
