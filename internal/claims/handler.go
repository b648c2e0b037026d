// internal/claims/handler.go
package claims

import (
	"encoding/json"
	"net/http"

	"iddirhub/internal/domain"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/claims", h.handleListClaims)
	r.Post("/claims", h.handleAddClaim)
	r.Put("/claims/{id}/status", h.handleUpdateClaim)
}

func (h *Handler) handleListClaims(w http.ResponseWriter, r *http.Request) {
	memberID := r.URL.Query().Get("memberId")

	var (
		claims []domain.Claim
		err    error
	)
	if memberID != "" {
		claims, err = h.service.MemberClaims(r.Context(), memberID)
	} else {
		claims, err = h.service.GetClaims(r.Context())
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if claims == nil {
		claims = []domain.Claim{}
	}
	json.NewEncoder(w).Encode(claims)
}

func (h *Handler) handleAddClaim(w http.ResponseWriter, r *http.Request) {
	var input ClaimInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	claim, err := h.service.AddClaim(r.Context(), input)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(claim)
}

func (h *Handler) handleUpdateClaim(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Status domain.ClaimStatus `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.service.UpdateClaim(r.Context(), chi.URLParam(r, "id"), req.Status); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
