package http

import "loan-engine/domain"

type scheduleRequest struct {
	domain.LoanTerms
	StartDate string `json:"start_date,omitempty"`
}

type outstandingRequest struct {
	domain.LoanTerms
	PaymentsMade int `json:"payments_made"`
}

type outstandingResponse struct {
	PaymentsMade         int     `json:"payments_made"`
	OutstandingPrincipal float64 `json:"outstanding_principal"`
}

type prepaymentRequest struct {
	domain.LoanTerms
	PaymentsMade int                       `json:"payments_made"`
	Amount       float64                   `json:"prepayment_amount"`
	Strategy     domain.PrepaymentStrategy `json:"strategy"`
}

type settlementRequest struct {
	domain.LoanTerms
	PaymentsMade int     `json:"payments_made"`
	Charges      float64 `json:"prepayment_charges"`
}

type modifyEmiRequest struct {
	domain.LoanTerms
	NewEmi float64 `json:"new_emi"`
}

type modifyTenureRequest struct {
	domain.LoanTerms
	NewTenureYears float64 `json:"new_tenure_years"`
}

type compareRequest struct {
	Options []domain.LoanOption `json:"options"`
}

type breakEvenRequest struct {
	LoanA domain.LoanOption `json:"loan_a"`
	LoanB domain.LoanOption `json:"loan_b"`
}

type effectiveRateRequest struct {
	domain.LoanTerms
	ProcessingFee float64 `json:"processing_fee"`
	OtherCharges  float64 `json:"other_charges"`
}

type errorResponse struct {
	Error string `json:"error"`
}
