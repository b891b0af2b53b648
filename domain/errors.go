package domain

import "errors"

// Sentinel errors returned (wrapped) by the calculator. Match with errors.Is.
var (
	// ErrInvalidInput is returned when a precondition on the inputs fails.
	// Nothing is computed in that case.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInsufficientPayment is returned when a payment can never amortize
	// the loan, e.g. an EMI at or below the per-period interest.
	ErrInsufficientPayment = errors.New("insufficient payment")

	// ErrEmptyInput is returned when a collection operation gets no items.
	ErrEmptyInput = errors.New("empty input")
)
