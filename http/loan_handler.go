package http

import (
	"net/http"
	"time"

	"loan-engine/domain"
	"loan-engine/service"
)

type LoanHandler struct {
	service *service.LoanService
}

func NewLoanHandler(service *service.LoanService) *LoanHandler {
	return &LoanHandler{service: service}
}

func (h *LoanHandler) CalculateEmi(w http.ResponseWriter, r *http.Request) {
	var terms domain.LoanTerms
	if !decodeJSON(w, r, &terms) {
		return
	}
	result, err := h.service.CalculateEmi(r.Context(), terms)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *LoanHandler) Schedule(w http.ResponseWriter, r *http.Request) {
	var req scheduleRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	var start time.Time
	if req.StartDate != "" {
		parsed, err := time.Parse(time.DateOnly, req.StartDate)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "start_date must be YYYY-MM-DD"})
			return
		}
		start = parsed
	}

	result, err := h.service.Schedule(r.Context(), req.LoanTerms, start)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *LoanHandler) Outstanding(w http.ResponseWriter, r *http.Request) {
	var req outstandingRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	balance, err := h.service.OutstandingPrincipal(req.LoanTerms, req.PaymentsMade)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, outstandingResponse{PaymentsMade: req.PaymentsMade, OutstandingPrincipal: balance})
}

func (h *LoanHandler) Prepayment(w http.ResponseWriter, r *http.Request) {
	var req prepaymentRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	result, err := h.service.Prepayment(req.LoanTerms, req.PaymentsMade, req.Amount, req.Strategy)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *LoanHandler) EarlySettlement(w http.ResponseWriter, r *http.Request) {
	var req settlementRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	result, err := h.service.EarlySettlement(req.LoanTerms, req.PaymentsMade, req.Charges)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *LoanHandler) ModifyEmi(w http.ResponseWriter, r *http.Request) {
	var req modifyEmiRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	result, err := h.service.ModifyEmi(req.LoanTerms, req.NewEmi)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *LoanHandler) ModifyTenure(w http.ResponseWriter, r *http.Request) {
	var req modifyTenureRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	result, err := h.service.ModifyTenure(req.LoanTerms, req.NewTenureYears)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *LoanHandler) Compare(w http.ResponseWriter, r *http.Request) {
	var req compareRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	result, err := h.service.Compare(r.Context(), req.Options)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *LoanHandler) BreakEven(w http.ResponseWriter, r *http.Request) {
	var req breakEvenRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	result, err := h.service.BreakEven(req.LoanA, req.LoanB)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *LoanHandler) EffectiveRate(w http.ResponseWriter, r *http.Request) {
	var req effectiveRateRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	result, err := h.service.EffectiveRate(req.LoanTerms, req.ProcessingFee, req.OtherCharges)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *LoanHandler) TaxBenefits(w http.ResponseWriter, r *http.Request) {
	var in domain.TaxBenefitInput
	if !decodeJSON(w, r, &in) {
		return
	}
	result, err := h.service.TaxBenefits(in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *LoanHandler) LifetimeTaxBenefits(w http.ResponseWriter, r *http.Request) {
	var in domain.TaxBenefitInput
	if !decodeJSON(w, r, &in) {
		return
	}
	result, err := h.service.LifetimeTaxBenefits(in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *LoanHandler) Eligibility(w http.ResponseWriter, r *http.Request) {
	var in domain.EligibilityInput
	if !decodeJSON(w, r, &in) {
		return
	}
	result, err := h.service.Eligibility(in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *LoanHandler) Affordability(w http.ResponseWriter, r *http.Request) {
	var in domain.AffordabilityInput
	if !decodeJSON(w, r, &in) {
		return
	}
	result, err := h.service.Affordability(in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
