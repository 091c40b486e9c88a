package handler

import (
	"net/http"
	"strconv"

	"github.com/imnatewest/ai-fridge-app/internal/application/recipe"
	"github.com/imnatewest/ai-fridge-app/internal/transport/http/middleware"
)

// RecipeHandler handles recipe suggestion endpoints.
type RecipeHandler struct {
	svc recipe.Service
}

func NewRecipeHandler(svc recipe.Service) *RecipeHandler { return &RecipeHandler{svc: svc} }

func (h *RecipeHandler) Suggest(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	count, _ := strconv.Atoi(r.URL.Query().Get("count"))
	suggestions, err := h.svc.Suggest(r.Context(), claims.UserID, count)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, suggestions)
}
