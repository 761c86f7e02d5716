package models

import "time"

// Onboarding steps in wizard order.
const (
	StepWelcome      = "welcome"
	StepPersonal     = "personal"
	StepPAN          = "pan"
	StepAadhaar      = "aadhaar"
	StepBank         = "bank"
	StepNominee      = "nominee"
	StepVerification = "verification"
	StepComplete     = "complete"
)

var OnboardingSteps = []string{
	StepWelcome, StepPersonal, StepPAN, StepAadhaar,
	StepBank, StepNominee, StepVerification, StepComplete,
}

// Verification checks.
const (
	CheckPAN     = "pan"
	CheckAadhaar = "aadhaar"
	CheckIFSC    = "ifsc"
	CheckFinal   = "final"
)

// Verification states.
const (
	VerifyIdle     = "idle"
	VerifyPending  = "pending"
	VerifyVerified = "verified"
	VerifyFailed   = "failed"
)

var (
	Genders = []string{"Male", "Female", "Other"}

	Occupations = []string{
		"Salaried - Private",
		"Salaried - Government",
		"Self Employed - Business",
		"Self Employed - Professional",
		"Retired",
		"Student",
		"Homemaker",
		"Others",
	}

	AnnualIncomeBands = []string{
		"Below ₹1 Lakh",
		"₹1 Lakh - ₹5 Lakhs",
		"₹5 Lakhs - ₹10 Lakhs",
		"₹10 Lakhs - ₹25 Lakhs",
		"₹25 Lakhs - ₹1 Crore",
		"Above ₹1 Crore",
	}
)

type PersonalDetails struct {
	FullName     string `json:"fullName" validate:"required"`
	Email        string `json:"email" validate:"required,email"`
	Mobile       string `json:"mobile" validate:"required,min=10,max=15"`
	DOB          string `json:"dob" validate:"required"`
	Gender       string `json:"gender" validate:"required,oneof=Male Female Other"`
	Occupation   string `json:"occupation" validate:"required"`
	AnnualIncome string `json:"annualIncome" validate:"required"`
}

type PANDetails struct {
	Number   string `json:"panNumber"`
	Name     string `json:"panName,omitempty"`
	Verified bool   `json:"panVerified"`
}

type AadhaarDetails struct {
	Number   string `json:"aadhaarNumber"`
	Verified bool   `json:"aadhaarVerified"`
}

type BankDetails struct {
	AccountNumber string `json:"accountNumber"`
	IFSC          string `json:"ifscCode"`
	BankName      string `json:"bankName,omitempty"`
	BranchName    string `json:"branchName,omitempty"`
}

type NomineeDetails struct {
	Name     string `json:"nomineeName" validate:"required"`
	Relation string `json:"nomineeRelation" validate:"required"`
	Share    string `json:"nomineeShare" default:"100" validate:"numeric"`
}

type BankStepRequest struct {
	AccountNumber        string `json:"accountNumber" validate:"required,min=6,max=20,numeric"`
	ConfirmAccountNumber string `json:"confirmAccountNumber" validate:"required,eqfield=AccountNumber"`
}

type PANVerifyRequest struct {
	PANNumber string `json:"panNumber" validate:"required,len=10,alphanum"`
}

type AadhaarVerifyRequest struct {
	AadhaarNumber string `json:"aadhaarNumber" validate:"required"`
}

type IFSCVerifyRequest struct {
	IFSCCode string `json:"ifscCode" validate:"required,len=11,alphanum"`
}

// KYCSession is the wizard state kept in the session cache.
type KYCSession struct {
	ID           string            `json:"id"`
	Step         string            `json:"step"`
	Progress     float64           `json:"progress"`
	Personal     PersonalDetails   `json:"personal"`
	PAN          PANDetails        `json:"pan"`
	Aadhaar      AadhaarDetails    `json:"aadhaar"`
	Bank         BankDetails       `json:"bank"`
	Nominee      NomineeDetails    `json:"nominee"`
	Verification map[string]string `json:"verification"`
	CreatedAt    time.Time         `json:"createdAt"`
	UpdatedAt    time.Time         `json:"updatedAt"`
}

// StepIndex returns the position of step in OnboardingSteps, or -1.
func StepIndex(step string) int {
	for i, s := range OnboardingSteps {
		if s == step {
			return i
		}
	}
	return -1
}

// StepProgress is index/(len-1)×100.
func StepProgress(step string) float64 {
	idx := StepIndex(step)
	if idx < 0 {
		return 0
	}
	return float64(idx) / float64(len(OnboardingSteps)-1) * 100
}

// VerificationJob asks the verifier to complete one check after Delay.
type VerificationJob struct {
	SessionID string        `json:"sessionId"`
	Check     string        `json:"check"`
	Delay     time.Duration `json:"delay"`
}
