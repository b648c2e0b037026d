// internal/membership/handler.go
package membership

import (
	"encoding/json"
	"errors"
	"net/http"

	"iddirhub/internal/domain"
	"iddirhub/internal/ledger"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	service Service
	ledger  ledger.Service
}

func NewHandler(service Service, ledger ledger.Service) *Handler {
	return &Handler{service: service, ledger: ledger}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/members", h.handleListMembers)
	r.Post("/members", h.handleAddMember)
	r.Get("/members/{id}", h.handleGetMember)
	r.Put("/members/{id}", h.handleUpdateMember)
	r.Delete("/members/{id}", h.handleDeleteMember)
	r.Post("/members/{id}/approve", h.handleApprove)
	r.Post("/members/{id}/reject", h.handleReject)
	r.Get("/members/{id}/transactions", h.handleMemberTransactions)

	r.Post("/register", h.handleStartRegistration)
	r.Post("/register/verify", h.handleCompleteRegistration)
	r.Post("/login", h.handleLogin)
}

func (h *Handler) handleListMembers(w http.ResponseWriter, r *http.Request) {
	members, err := h.service.GetMembers(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	out := make([]domain.Member, len(members))
	for i, m := range members {
		out[i] = m.Redacted()
	}
	json.NewEncoder(w).Encode(out)
}

func (h *Handler) handleGetMember(w http.ResponseWriter, r *http.Request) {
	member, err := h.service.GetMember(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if member == nil {
		http.Error(w, "member not found", http.StatusNotFound)
		return
	}
	json.NewEncoder(w).Encode(member.Redacted())
}

func (h *Handler) handleAddMember(w http.ResponseWriter, r *http.Request) {
	var m domain.Member
	if err := json.NewDecoder(r.Body).Decode(&m); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	created, err := h.service.AddMember(r.Context(), m)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(created.Redacted())
}

func (h *Handler) handleUpdateMember(w http.ResponseWriter, r *http.Request) {
	var m domain.Member
	if err := json.NewDecoder(r.Body).Decode(&m); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	m.ID = chi.URLParam(r, "id")

	if err := h.service.UpdateMember(r.Context(), m); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleDeleteMember(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteMember(r.Context(), chi.URLParam(r, "id")); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleApprove(w http.ResponseWriter, r *http.Request) {
	if err := h.service.ApproveRegistration(r.Context(), chi.URLParam(r, "id")); err != nil {
		http.Error(w, err.Error(), lifecycleStatusCode(err))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleReject(w http.ResponseWriter, r *http.Request) {
	if err := h.service.RejectRegistration(r.Context(), chi.URLParam(r, "id")); err != nil {
		http.Error(w, err.Error(), lifecycleStatusCode(err))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleMemberTransactions(w http.ResponseWriter, r *http.Request) {
	txs, err := h.ledger.MemberTransactions(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if txs == nil {
		txs = []domain.Transaction{}
	}
	json.NewEncoder(w).Encode(txs)
}

func (h *Handler) handleStartRegistration(w http.ResponseWriter, r *http.Request) {
	var input RegistrationInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	verification, err := h.service.StartRegistration(r.Context(), input)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, ErrRateLimited) {
			status = http.StatusTooManyRequests
		}
		http.Error(w, err.Error(), status)
		return
	}

	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(verification)
}

func (h *Handler) handleCompleteRegistration(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Token string `json:"token"`
		Code  string `json:"code"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	member, err := h.service.CompleteRegistration(r.Context(), req.Token, req.Code)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(member.Redacted())
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	member, err := h.service.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnauthorized)
		return
	}

	json.NewEncoder(w).Encode(member.Redacted())
}

func lifecycleStatusCode(err error) int {
	switch {
	case errors.Is(err, ErrMemberNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrNotPending):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
