package domain

import "time"

type Frequency string

const (
	Monthly   Frequency = "monthly"
	Quarterly Frequency = "quarterly"
	Annually  Frequency = "annually"
)

type InterestMethod string

const (
	Flat     InterestMethod = "flat"
	Reducing InterestMethod = "reducing"
)

// LoanTerms is the immutable input bundle shared by every calculation.
type LoanTerms struct {
	Principal   float64        `json:"principal"`
	AnnualRate  float64        `json:"annual_rate"`
	TenureYears float64        `json:"tenure_years"`
	Frequency   Frequency      `json:"repayment_frequency"`
	Method      InterestMethod `json:"interest_method"`
}

// WithTenure returns a copy of the terms with the tenure replaced.
func (t LoanTerms) WithTenure(years float64) LoanTerms {
	t.TenureYears = years
	return t
}

// WithPrincipal returns a copy of the terms with the principal replaced.
func (t LoanTerms) WithPrincipal(principal float64) LoanTerms {
	t.Principal = principal
	return t
}

type PaymentSummary struct {
	Emi              float64 `json:"emi"`
	TotalInterest    float64 `json:"total_interest"`
	TotalPayment     float64 `json:"total_payment"`
	NumberOfPayments int     `json:"number_of_payments"`
}

type ScheduleEntry struct {
	PaymentNumber       int       `json:"payment_number"`
	PaymentDate         time.Time `json:"payment_date"`
	OpeningBalance      float64   `json:"opening_balance"`
	Emi                 float64   `json:"emi"`
	PrincipalPaid       float64   `json:"principal_paid"`
	InterestPaid        float64   `json:"interest_paid"`
	ClosingBalance      float64   `json:"closing_balance"`
	CumulativePrincipal float64   `json:"cumulative_principal"`
	CumulativeInterest  float64   `json:"cumulative_interest"`
}

type YearSummary struct {
	Year           int     `json:"year"`
	TotalPrincipal float64 `json:"total_principal"`
	TotalInterest  float64 `json:"total_interest"`
	TotalPayment   float64 `json:"total_payment"`
	ClosingBalance float64 `json:"closing_balance"`
}

type EmiModification struct {
	OriginalEmi         float64 `json:"original_emi"`
	NewEmi              float64 `json:"new_emi"`
	OriginalTenureYears float64 `json:"original_tenure_years"`
	NewTenureYears      float64 `json:"new_tenure_years"`
	TenureChangeYears   float64 `json:"tenure_change_years"`
	NewPaymentCount     int     `json:"new_payments"`
}

type TenureModification struct {
	OriginalEmi         float64 `json:"original_emi"`
	NewEmi              float64 `json:"new_emi"`
	OriginalTenureYears float64 `json:"original_tenure_years"`
	NewTenureYears      float64 `json:"new_tenure_years"`
	EmiChange           float64 `json:"emi_change"`
}

type PrepaymentStrategy string

const (
	ReduceEmi    PrepaymentStrategy = "reduce_emi"
	ReduceTenure PrepaymentStrategy = "reduce_tenure"
)

// PrepaymentOutcome describes the loan after a lump-sum prepayment. When the
// prepayment covers the outstanding principal FullyClosed is set and every
// New* field is zero.
type PrepaymentOutcome struct {
	Strategy             PrepaymentStrategy `json:"strategy"`
	OriginalEmi          float64            `json:"original_emi"`
	OutstandingPrincipal float64            `json:"outstanding_principal"`
	NewPrincipal         float64            `json:"new_principal"`
	NewEmi               float64            `json:"new_emi"`
	NewTenureYears       float64            `json:"new_tenure_years"`
	NewPaymentCount      int                `json:"new_payments"`
	InterestSaved        float64            `json:"interest_saved"`
	NewTotalPayment      float64            `json:"new_total_payment"`
	EmiReduction         float64            `json:"emi_reduction"`
	TenureReductionYears float64            `json:"tenure_reduction_years"`
	FullyClosed          bool               `json:"fully_closed"`
	Message              string             `json:"message,omitempty"`
}

type SettlementOutcome struct {
	OutstandingPrincipal float64 `json:"outstanding_principal"`
	AmountPaid           float64 `json:"amount_paid"`
	SettlementAmount     float64 `json:"settlement_amount"`
	PrepaymentCharges    float64 `json:"prepayment_charges"`
	InterestSaved        float64 `json:"interest_saved"`
	TotalSavings         float64 `json:"total_savings"`
	RemainingPayments    int     `json:"remaining_payments"`
}

// ScheduleReport bundles an amortization schedule with its summary and
// year-wise rollup.
type ScheduleReport struct {
	Terms   LoanTerms       `json:"terms"`
	Start   time.Time       `json:"start_date"`
	Summary PaymentSummary  `json:"summary"`
	Entries []ScheduleEntry `json:"schedule"`
	Years   []YearSummary   `json:"year_wise_summary"`
}
