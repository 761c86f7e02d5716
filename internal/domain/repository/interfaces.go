package repository

import (
	"context"
	"errors"
	"time"

	"Tickfunds/internal/domain/models"
)

var (
	ErrNotFound        = errors.New("not found")
	ErrSessionNotFound = errors.New("session not found or expired")
	ErrSessionBusy     = errors.New("session is being updated")
)

type FundCatalog interface {
	Funds(ctx context.Context) ([]models.Fund, error)
	Fund(ctx context.Context, id string) (*models.Fund, error)
	FundHouses() []string
	RiskLevels() []string
	Categories() []string
}

type RiskCatalog interface {
	Questions() []models.RiskQuestion
	Categories() []models.RiskCategory
}

type LoanCatalog interface {
	Products() []models.LoanProduct
	PledgeableHoldings() []models.PledgeableHolding
}

type FixedIncomeCatalog interface {
	Bonds() []models.Bond
	BondBaskets() []models.BondBasket
	FixedDeposits() []models.FixedDeposit
}

type GoldCatalog interface {
	Prices() []models.MetalPrice
	Holdings() []models.MetalHolding
	Transactions() []models.GoldTransaction
}

type OrderCatalog interface {
	Orders() []models.Order
}

type PortfolioCatalog interface {
	AssetClasses() []models.AssetClass
	Loans() []models.LoanPosition
}

// AlertStore holds alerts with process-local read flags.
type AlertStore interface {
	Alerts() []models.Alert
	PriceAlerts() []models.PriceAlert
	MaturityAlerts() []models.MaturityAlert
	MarkRead(id string) error
}

type WishlistStore interface {
	Wishlist() models.Wishlist
	Remove(id string) error
}

type FamilyStore interface {
	Members() []models.FamilyMember
	Add(m models.FamilyMember) error
}

// CredentialStore holds the mock password and transaction PIN.
type CredentialStore interface {
	PasswordMatches(password string) bool
	SetPassword(password string)
	HasPin() bool
	PinMatches(pin string) bool
	SetPin(pin string)
	ClearPin()
}

// SessionStore keeps wizard state for a bounded time.
type SessionStore interface {
	Save(ctx context.Context, namespace, id string, v interface{}) error
	Load(ctx context.Context, namespace, id string, dest interface{}) error
	// Lock serialises read-modify-write cycles on one session.
	Lock(ctx context.Context, namespace, id string) (unlock func(), err error)
}

// BankResolver maps an IFSC code to bank and branch names.
type BankResolver interface {
	Resolve(ctx context.Context, ifsc string) (bank, branch string, err error)
}

// ActivityRecorder accepts usage events from usecases. It never blocks.
type ActivityRecorder interface {
	Record(ctx context.Context, kind, subject string, attrs map[string]string)
}

type ActivityPublisher interface {
	PublishBatch(ctx context.Context, events []models.ActivityEvent) error
	Close() error
}

type ActivityStore interface {
	Init(ctx context.Context) error
	Store(ctx context.Context, e models.ActivityEvent) error
	StoreBatch(ctx context.Context, events []models.ActivityEvent) error
	TopSubjects(ctx context.Context, kind string, since time.Time, limit int) ([]models.SubjectCount, error)
	Health(ctx context.Context) error
	Close() error
}

type Metrics interface {
	RecordActivity(kind, backend string)
	RecordActivityDropped(reason string)
	RecordError(kind string)
	RecordCacheLookup(cache string, hit bool)
	RecordVerification(step string, ok bool)
	RecordLatency(op string, seconds float64)
}
