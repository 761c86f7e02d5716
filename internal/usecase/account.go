package usecase

import (
	"errors"
	"strings"
	"unicode"

	"Tickfunds/internal/domain/models"
	domrepo "Tickfunds/internal/domain/repository"
	xhttp "Tickfunds/pkg/http"

	"github.com/google/uuid"
)

const passwordSpecials = `!@#$%^&*(),.?":{}|<>`

var passwordChecks = []struct {
	label string
	ok    func(string) bool
}{
	{"At least 8 characters", func(s string) bool { return len([]rune(s)) >= 8 }},
	{"One uppercase letter", func(s string) bool { return strings.IndexFunc(s, unicode.IsUpper) >= 0 }},
	{"One lowercase letter", func(s string) bool { return strings.IndexFunc(s, unicode.IsLower) >= 0 }},
	{"One number", func(s string) bool { return strings.IndexFunc(s, unicode.IsDigit) >= 0 }},
	{"One special character", func(s string) bool { return strings.ContainsAny(s, passwordSpecials) }},
}

// PasswordRules evaluates every password requirement.
func PasswordRules(password string) []models.PasswordRule {
	rules := make([]models.PasswordRule, len(passwordChecks))
	for i, c := range passwordChecks {
		rules[i] = models.PasswordRule{Label: c.label, Valid: c.ok(password)}
	}
	return rules
}

type AccountService struct {
	wishlist    domrepo.WishlistStore
	family      domrepo.FamilyStore
	credentials domrepo.CredentialStore
}

func NewAccountService(wishlist domrepo.WishlistStore, family domrepo.FamilyStore, credentials domrepo.CredentialStore) *AccountService {
	return &AccountService{wishlist: wishlist, family: family, credentials: credentials}
}

func (s *AccountService) Wishlist() models.Wishlist {
	return s.wishlist.Wishlist()
}

func (s *AccountService) RemoveFromWishlist(id string) error {
	if err := s.wishlist.Remove(id); err != nil {
		if errors.Is(err, domrepo.ErrNotFound) {
			return xhttp.NotFoundErrorf("wishlist item %q not found", id).WithError(err)
		}
		return err
	}
	return nil
}

func (s *AccountService) Family() models.FamilySummary {
	members := s.family.Members()
	summary := models.FamilySummary{Members: members}
	total := dec(0)
	for _, m := range members {
		total = total.Add(dec(m.PortfolioValue))
		summary.TotalGoals += m.Goals
		if m.KYCStatus == models.KYCVerified {
			summary.VerifiedCount++
		}
	}
	summary.TotalPortfolio = round2(total.InexactFloat64())
	summary.Display = compact(summary.TotalPortfolio)
	return summary
}

// AddFamilyMember registers a member with pending KYC and an empty portfolio.
func (s *AccountService) AddFamilyMember(req models.AddFamilyMemberRequest) (*models.FamilyMember, error) {
	m := models.FamilyMember{
		ID:        uuid.NewString(),
		Name:      strings.TrimSpace(req.Name),
		Relation:  req.Relation,
		Email:     strings.TrimSpace(req.Email),
		Phone:     strings.TrimSpace(req.Phone),
		PAN:       strings.ToUpper(strings.TrimSpace(req.PAN)),
		DOB:       req.DOB,
		KYCStatus: models.KYCPending,
	}
	if err := s.family.Add(m); err != nil {
		return nil, err
	}
	return &m, nil
}

// ChangePassword checks the current password, then reports every unmet rule
// at once.
func (s *AccountService) ChangePassword(req models.ChangePasswordRequest) ([]models.PasswordRule, error) {
	if !s.credentials.PasswordMatches(req.CurrentPassword) {
		return nil, xhttp.FieldError("currentPassword", "Current password is incorrect")
	}
	rules := PasswordRules(req.NewPassword)
	var details []xhttp.ValidationError
	for _, r := range rules {
		if !r.Valid {
			details = append(details, xhttp.ValidationError{
				Code:    "ERR_PASSWORD_RULE",
				Field:   "newPassword",
				Message: r.Label,
			})
		}
	}
	if req.NewPassword != req.ConfirmPassword {
		details = append(details, xhttp.ValidationError{
			Code:    "ERR_EQFIELD",
			Field:   "confirmPassword",
			Message: "Passwords do not match",
		})
	}
	if len(details) > 0 {
		return rules, xhttp.ValidationFailed("Password does not meet requirements", details...)
	}
	s.credentials.SetPassword(req.NewPassword)
	return rules, nil
}

func (s *AccountService) PinStatus() models.PinStatus {
	return models.PinStatus{HasPin: s.credentials.HasPin()}
}

func (s *AccountService) CreatePin(req models.CreatePinRequest) (*models.PinStatus, error) {
	if s.credentials.HasPin() {
		return nil, xhttp.ConflictError("A PIN already exists, change it instead")
	}
	if req.NewPin != req.ConfirmPin {
		return nil, xhttp.FieldError("confirmPin", "PINs do not match")
	}
	s.credentials.SetPin(req.NewPin)
	return &models.PinStatus{HasPin: true, Message: "PIN created successfully"}, nil
}

func (s *AccountService) ChangePin(req models.ChangePinRequest) (*models.PinStatus, error) {
	if err := s.checkCurrentPin(req.CurrentPin); err != nil {
		return nil, err
	}
	if req.NewPin != req.ConfirmPin {
		return nil, xhttp.FieldError("confirmPin", "PINs do not match")
	}
	s.credentials.SetPin(req.NewPin)
	return &models.PinStatus{HasPin: true, Message: "PIN changed successfully"}, nil
}

func (s *AccountService) DeletePin(req models.DeletePinRequest) (*models.PinStatus, error) {
	if err := s.checkCurrentPin(req.CurrentPin); err != nil {
		return nil, err
	}
	s.credentials.ClearPin()
	return &models.PinStatus{HasPin: false, Message: "PIN removed"}, nil
}

func (s *AccountService) checkCurrentPin(pin string) error {
	if !s.credentials.HasPin() {
		return xhttp.BadRequestError("No PIN is set")
	}
	if !s.credentials.PinMatches(pin) {
		return xhttp.FieldError("currentPin", "Current PIN is incorrect")
	}
	return nil
}
