package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/imnatewest/ai-fridge-app/internal/application/photo"
	"github.com/imnatewest/ai-fridge-app/internal/transport/http/middleware"
)

// PhotoHandler handles item photo endpoints.
type PhotoHandler struct {
	svc photo.Service
}

func NewPhotoHandler(svc photo.Service) *PhotoHandler { return &PhotoHandler{svc: svc} }

func (h *PhotoHandler) Upload(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}
	f, header, err := r.FormFile("photo")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing photo field")
		return
	}
	defer f.Close()

	item, err := h.svc.Upload(r.Context(), chi.URLParam(r, "id"), claims.UserID, f, header.Header.Get("Content-Type"))
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

// URL returns a short-lived presigned link to the item's photo.
func (h *PhotoHandler) URL(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	url, err := h.svc.URL(r.Context(), chi.URLParam(r, "id"), claims.UserID)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"url": url})
}

func (h *PhotoHandler) Delete(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	if err := h.svc.Delete(r.Context(), chi.URLParam(r, "id"), claims.UserID); err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "photo deleted"})
}
