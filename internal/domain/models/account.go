package models

type WishlistFund struct {
	ID        string  `json:"id" yaml:"id"`
	Name      string  `json:"name" yaml:"name"`
	Category  string  `json:"category" yaml:"category"`
	NAV       float64 `json:"nav" yaml:"nav"`
	Returns1Y float64 `json:"returns1Y" yaml:"returns1Y"`
	Returns3Y float64 `json:"returns3Y" yaml:"returns3Y"`
	RiskLevel string  `json:"riskLevel" yaml:"riskLevel"`
	AddedOn   string  `json:"addedOn" yaml:"addedOn"`
}

type WishlistBasket struct {
	ID      string  `json:"id" yaml:"id"`
	Name    string  `json:"name" yaml:"name"`
	AUM     float64 `json:"aum" yaml:"aum"`
	Returns float64 `json:"returns" yaml:"returns"`
	AddedOn string  `json:"addedOn" yaml:"addedOn"`
}

type Wishlist struct {
	Funds   []WishlistFund   `json:"funds"`
	Baskets []WishlistBasket `json:"baskets"`
}

// KYC statuses of a family member.
const (
	KYCVerified   = "verified"
	KYCPending    = "pending"
	KYCIncomplete = "incomplete"
)

// Relations accepted for a new family member.
var FamilyRelations = []string{
	"Spouse", "Father", "Mother", "Son", "Daughter",
	"Brother", "Sister", "Guardian", "Other",
}

type FamilyMember struct {
	ID             string  `json:"id" yaml:"id"`
	Name           string  `json:"name" yaml:"name"`
	Relation       string  `json:"relation" yaml:"relation"`
	Email          string  `json:"email" yaml:"email"`
	Phone          string  `json:"phone" yaml:"phone"`
	PAN            string  `json:"pan,omitempty" yaml:"pan"`
	DOB            string  `json:"dob,omitempty" yaml:"dob"`
	KYCStatus      string  `json:"kycStatus" yaml:"kycStatus"`
	RiskProfile    string  `json:"riskProfile,omitempty" yaml:"riskProfile"`
	PortfolioValue float64 `json:"portfolioValue" yaml:"portfolioValue"`
	Goals          int     `json:"goals" yaml:"goals"`
}

type FamilySummary struct {
	Members        []FamilyMember `json:"members"`
	TotalPortfolio float64        `json:"totalPortfolio"`
	VerifiedCount  int            `json:"verifiedCount"`
	TotalGoals     int            `json:"totalGoals"`
	Display        string         `json:"display"`
}

type AddFamilyMemberRequest struct {
	Name     string `json:"name" validate:"required"`
	Relation string `json:"relation" validate:"required,oneof=Spouse Father Mother Son Daughter Brother Sister Guardian Other"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone" validate:"required,min=10,max=15"`
	PAN      string `json:"pan" validate:"omitempty,len=10"`
	DOB      string `json:"dob"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required"`
	ConfirmPassword string `json:"confirmPassword" validate:"required"`
}

// PasswordRule is one requirement shown under the password field.
type PasswordRule struct {
	Label string `json:"label"`
	Valid bool   `json:"valid"`
}

type CreatePinRequest struct {
	NewPin     string `json:"newPin" validate:"required,pin4"`
	ConfirmPin string `json:"confirmPin" validate:"required,pin4"`
}

type ChangePinRequest struct {
	CurrentPin string `json:"currentPin" validate:"required,pin4"`
	NewPin     string `json:"newPin" validate:"required,pin4"`
	ConfirmPin string `json:"confirmPin" validate:"required,pin4"`
}

type DeletePinRequest struct {
	CurrentPin string `json:"currentPin" validate:"required,pin4"`
}

type PinStatus struct {
	HasPin  bool   `json:"hasPin"`
	Message string `json:"message"`
}
