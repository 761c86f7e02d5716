package usecase

import (
	"testing"

	"Tickfunds/internal/domain/models"

	"github.com/stretchr/testify/assert"
)

func TestOrderService_Tabs(t *testing.T) {
	s := NewOrderService(loadCatalog(t))

	book := s.List(models.OrderQuery{})
	assert.Len(t, book.Orders, 5)
	assert.Equal(t, map[string]int{"all": 5, "pending": 2, "executed": 2, "cancelled": 1}, book.Counts)

	pending := s.List(models.OrderQuery{Tab: models.OrderPending})
	assert.Len(t, pending.Orders, 2)
	for _, o := range pending.Orders {
		assert.Contains(t, []string{models.OrderPending, models.OrderProcessing}, o.Status)
	}
}

func TestFilterOrders_Search(t *testing.T) {
	orders := []models.Order{
		{ID: "ORD001", FundName: "HDFC Flexi Cap Fund", Status: models.OrderPending},
		{ID: "ORD002", FundName: "ICICI Blue Chip", Status: models.OrderExecuted},
		{ID: "ORD003", FundName: "SBI Hybrid", Status: models.OrderProcessing},
	}

	book := FilterOrders(orders, models.OrderQuery{Search: "hdfc"})
	assert.Len(t, book.Orders, 1)
	assert.Equal(t, 1, book.Counts["all"])
	assert.Equal(t, 0, book.Counts[models.OrderExecuted])

	book = FilterOrders(orders, models.OrderQuery{Search: "ord00", Tab: models.OrderExecuted})
	assert.Len(t, book.Orders, 1)
	assert.Equal(t, 3, book.Counts["all"])
	assert.Equal(t, 2, book.Counts[models.OrderPending])
}
