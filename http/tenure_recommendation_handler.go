package http

import (
	"net/http"

	"loan-engine/domain"
	"loan-engine/service"
)

type TenureRecommendationHandler struct {
	service *service.TenureRecommendationService
}

func NewTenureRecommendationHandler(service *service.TenureRecommendationService) *TenureRecommendationHandler {
	return &TenureRecommendationHandler{service: service}
}

func (h *TenureRecommendationHandler) RecommendTenure(w http.ResponseWriter, r *http.Request) {
	var in domain.TenureRecommendationInput
	if !decodeJSON(w, r, &in) {
		return
	}
	result, err := h.service.RecommendTenure(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
