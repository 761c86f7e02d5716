package usecase

import (
	"errors"
	"strings"
	"time"

	"Tickfunds/internal/domain/models"
	domrepo "Tickfunds/internal/domain/repository"
	xhttp "Tickfunds/pkg/http"
	"Tickfunds/pkg/util"
)

type AlertService struct {
	store domrepo.AlertStore
	now   func() time.Time
}

func NewAlertService(store domrepo.AlertStore) *AlertService {
	return &AlertService{store: store, now: time.Now}
}

// Feed lists alerts of one kind, or all of them. Maturity countdowns run
// from q.AsOf, or from today when it is empty.
func (s *AlertService) Feed(q models.AlertQuery) (*models.AlertFeed, error) {
	asOf := s.now()
	if strings.TrimSpace(q.AsOf) != "" {
		t, ok := util.ParseTime(q.AsOf)
		if !ok {
			return nil, xhttp.FieldError("asOf", "asOf must be a date like 2024-01-31")
		}
		asOf = t
	}
	kind := q.Kind
	if kind == "" {
		kind = tabAll
	}

	feed := &models.AlertFeed{
		Alerts:   make([]models.Alert, 0),
		Price:    make([]models.PriceAlert, 0),
		Maturity: make([]models.MaturityAlert, 0),
	}
	if kind != models.AlertPrice && kind != models.AlertMaturity {
		for _, a := range s.store.Alerts() {
			if kind == tabAll || a.Kind == kind {
				feed.Alerts = append(feed.Alerts, a)
				if !a.Read {
					feed.Unread++
				}
			}
		}
	}
	if kind == tabAll || kind == models.AlertPrice {
		for _, p := range s.store.PriceAlerts() {
			p.Triggered = p.IsTriggered()
			feed.Price = append(feed.Price, p)
			if !p.Read {
				feed.Unread++
			}
		}
	}
	if kind == tabAll || kind == models.AlertMaturity {
		for _, m := range s.store.MaturityAlerts() {
			if due, ok := util.ParseTime(m.MaturityDate); ok {
				m.DaysLeft = util.DaysBetween(asOf, due)
			}
			feed.Maturity = append(feed.Maturity, m)
			if !m.Read {
				feed.Unread++
			}
		}
	}
	return feed, nil
}

func (s *AlertService) MarkRead(id string) error {
	if err := s.store.MarkRead(id); err != nil {
		if errors.Is(err, domrepo.ErrNotFound) {
			return xhttp.NotFoundErrorf("alert %q not found", id).WithError(err)
		}
		return err
	}
	return nil
}
