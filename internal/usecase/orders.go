package usecase

import (
	"strings"

	"Tickfunds/internal/domain/models"
	domrepo "Tickfunds/internal/domain/repository"
	"Tickfunds/pkg/util"
)

const tabAll = "all"

// orderTab folds processing orders into the pending tab.
func orderTab(status string) string {
	if status == models.OrderProcessing {
		return models.OrderPending
	}
	return status
}

// FilterOrders groups orders into tabs and filters by tab and by a search
// over fund name and order id. Counts cover the search result of every tab.
func FilterOrders(orders []models.Order, q models.OrderQuery) models.OrderBook {
	tab := q.Tab
	if tab == "" {
		tab = tabAll
	}
	search := strings.TrimSpace(q.Search)
	book := models.OrderBook{
		Orders: make([]models.Order, 0),
		Counts: map[string]int{
			tabAll:                0,
			models.OrderPending:   0,
			models.OrderExecuted:  0,
			models.OrderCancelled: 0,
		},
	}
	for _, o := range orders {
		if search != "" && !util.ContainsFold(o.FundName, search) && !util.ContainsFold(o.ID, search) {
			continue
		}
		t := orderTab(o.Status)
		book.Counts[tabAll]++
		book.Counts[t]++
		if tab == tabAll || tab == t {
			book.Orders = append(book.Orders, o)
		}
	}
	return book
}

type OrderService struct {
	catalog domrepo.OrderCatalog
}

func NewOrderService(catalog domrepo.OrderCatalog) *OrderService {
	return &OrderService{catalog: catalog}
}

func (s *OrderService) List(q models.OrderQuery) models.OrderBook {
	return FilterOrders(s.catalog.Orders(), q)
}
