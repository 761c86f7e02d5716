package repository

import (
	"fmt"
	"sync"

	"Tickfunds/internal/domain/models"
	domrepo "Tickfunds/internal/domain/repository"
)

// AccountStore keeps the per-process mutable user state: alert read flags,
// wishlist, family members and credentials.
type AccountStore struct {
	mu sync.RWMutex

	alerts   []models.Alert
	price    []models.PriceAlert
	maturity []models.MaturityAlert

	wishlist models.Wishlist
	family   []models.FamilyMember

	password string
	pin      string
}

var (
	_ domrepo.AlertStore      = (*AccountStore)(nil)
	_ domrepo.WishlistStore   = (*AccountStore)(nil)
	_ domrepo.FamilyStore     = (*AccountStore)(nil)
	_ domrepo.CredentialStore = (*AccountStore)(nil)
)

// LoadAccountStore seeds the store from the embedded account and alert data.
func LoadAccountStore() (*AccountStore, error) {
	var alerts struct {
		Alerts   []models.Alert         `yaml:"alerts"`
		Price    []models.PriceAlert    `yaml:"price"`
		Maturity []models.MaturityAlert `yaml:"maturity"`
	}
	var account struct {
		Wishlist    models.Wishlist       `yaml:"wishlist"`
		Family      []models.FamilyMember `yaml:"family"`
		Credentials struct {
			Password string `yaml:"password"`
			Pin      string `yaml:"pin"`
		} `yaml:"credentials"`
	}
	if err := readData("alerts.yaml", &alerts); err != nil {
		return nil, err
	}
	if err := readData("account.yaml", &account); err != nil {
		return nil, err
	}
	return &AccountStore{
		alerts:   alerts.Alerts,
		price:    alerts.Price,
		maturity: alerts.Maturity,
		wishlist: account.Wishlist,
		family:   account.Family,
		password: account.Credentials.Password,
		pin:      account.Credentials.Pin,
	}, nil
}

func (s *AccountStore) Alerts() []models.Alert {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Alert(nil), s.alerts...)
}

func (s *AccountStore) PriceAlerts() []models.PriceAlert {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.PriceAlert(nil), s.price...)
}

func (s *AccountStore) MaturityAlerts() []models.MaturityAlert {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.MaturityAlert(nil), s.maturity...)
}

// MarkRead flags one alert of any kind as read. Marking twice is a no-op.
func (s *AccountStore) MarkRead(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.alerts {
		if s.alerts[i].ID == id {
			s.alerts[i].Read = true
			return nil
		}
	}
	for i := range s.price {
		if s.price[i].ID == id {
			s.price[i].Read = true
			return nil
		}
	}
	for i := range s.maturity {
		if s.maturity[i].ID == id {
			s.maturity[i].Read = true
			return nil
		}
	}
	return fmt.Errorf("alert %q: %w", id, domrepo.ErrNotFound)
}

func (s *AccountStore) Wishlist() models.Wishlist {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return models.Wishlist{
		Funds:   append([]models.WishlistFund(nil), s.wishlist.Funds...),
		Baskets: append([]models.WishlistBasket(nil), s.wishlist.Baskets...),
	}
}

// Remove drops a fund or basket from the wishlist by id.
func (s *AccountStore) Remove(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, f := range s.wishlist.Funds {
		if f.ID == id {
			s.wishlist.Funds = append(s.wishlist.Funds[:i:i], s.wishlist.Funds[i+1:]...)
			return nil
		}
	}
	for i, b := range s.wishlist.Baskets {
		if b.ID == id {
			s.wishlist.Baskets = append(s.wishlist.Baskets[:i:i], s.wishlist.Baskets[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("wishlist item %q: %w", id, domrepo.ErrNotFound)
}

func (s *AccountStore) Members() []models.FamilyMember {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.FamilyMember(nil), s.family...)
}

func (s *AccountStore) Add(m models.FamilyMember) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.family {
		if existing.ID == m.ID {
			return fmt.Errorf("family member %q already exists", m.ID)
		}
	}
	s.family = append(s.family, m)
	return nil
}

func (s *AccountStore) PasswordMatches(password string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return password == s.password
}

func (s *AccountStore) SetPassword(password string) {
	s.mu.Lock()
	s.password = password
	s.mu.Unlock()
}

func (s *AccountStore) HasPin() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pin != ""
}

func (s *AccountStore) PinMatches(pin string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pin != "" && pin == s.pin
}

func (s *AccountStore) SetPin(pin string) {
	s.mu.Lock()
	s.pin = pin
	s.mu.Unlock()
}

func (s *AccountStore) ClearPin() {
	s.mu.Lock()
	s.pin = ""
	s.mu.Unlock()
}
