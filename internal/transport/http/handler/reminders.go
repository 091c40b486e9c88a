package handler

import (
	"net/http"
	"time"

	"github.com/imnatewest/ai-fridge-app/internal/application/reminder"
	"github.com/imnatewest/ai-fridge-app/internal/transport/http/middleware"
)

// ReminderHandler handles expiration reminder endpoints.
type ReminderHandler struct {
	svc reminder.Service
}

func NewReminderHandler(svc reminder.Service) *ReminderHandler { return &ReminderHandler{svc: svc} }

func (h *ReminderHandler) ListPending(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	pending, err := h.svc.ListPending(r.Context(), claims.UserID)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, pending)
}

// Reconcile recomputes the caller's pending reminder set from the current
// inventory snapshot. Clients call this after app foregrounding.
func (h *ReminderHandler) Reconcile(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	if err := h.svc.Reconcile(r.Context(), claims.UserID, time.Now()); err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "reminders reconciled"})
}

// SendDigest emails the caller a summary of expired and expiring items.
func (h *ReminderHandler) SendDigest(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	if err := h.svc.SendDigest(r.Context(), claims.UserID, time.Now()); err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "digest sent"})
}
