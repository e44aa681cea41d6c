package api

import (
	"net/http"

	"github.com/fuelpos/fuelpos/internal/pos"
)

func (h *Handler) recordSale(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Product            string  `json:"product"`
		Units              float64 `json:"units"`
		Amount             float64 `json:"amount"`
		CustomerCardNumber string  `json:"customerCardNumber"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Product == "" || req.Units == 0 || req.Amount == 0 {
		respondError(w, http.StatusBadRequest, "product, units and amount are required")
		return
	}

	result, err := h.pos.RecordSale(r.Context(), pos.SaleInput{
		Product:            req.Product,
		Units:              req.Units,
		Amount:             req.Amount,
		CustomerCardNumber: req.CustomerCardNumber,
	})
	if err != nil {
		respondWorkflowError(w, r, err, "Failed to record sale")
		return
	}
	respondJSON(w, http.StatusOK, result)
}

func (h *Handler) redeemPoints(w http.ResponseWriter, r *http.Request) {
	var req struct {
		CustomerCardNumber string                    `json:"customerCardNumber"`
		Items              []pos.RedemptionItemInput `json:"items"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.CustomerCardNumber == "" || len(req.Items) == 0 {
		respondError(w, http.StatusBadRequest, "customerCardNumber and items are required")
		return
	}

	result, err := h.pos.RedeemPoints(r.Context(), pos.RedemptionInput{
		CustomerCardNumber: req.CustomerCardNumber,
		Items:              req.Items,
	})
	if err != nil {
		respondWorkflowError(w, r, err, "Failed to redeem points")
		return
	}
	respondJSON(w, http.StatusOK, result)
}
