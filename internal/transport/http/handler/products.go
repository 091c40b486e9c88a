package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/imnatewest/ai-fridge-app/internal/application/product"
)

// ProductHandler handles barcode product lookups.
type ProductHandler struct {
	svc product.Service
}

func NewProductHandler(svc product.Service) *ProductHandler { return &ProductHandler{svc: svc} }

func (h *ProductHandler) Lookup(w http.ResponseWriter, r *http.Request) {
	p, err := h.svc.Lookup(r.Context(), chi.URLParam(r, "barcode"))
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}
