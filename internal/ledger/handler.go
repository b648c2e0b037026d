// internal/ledger/handler.go
package ledger

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
	r.Get("/transactions", h.handleListTransactions)
	r.Post("/transactions", h.handleAddTransaction)
	r.Put("/transactions/{id}/status", h.handleUpdateStatus)
	r.Get("/funds/total", h.handleTotalFunds)
}

func (h *Handler) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	txs, err := h.service.GetTransactions(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(txs)
}

func (h *Handler) handleAddTransaction(w http.ResponseWriter, r *http.Request) {
	var tx domain.Transaction
	if err := json.NewDecoder(r.Body).Decode(&tx); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	created, err := h.service.AddTransaction(r.Context(), tx)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(created)
}

func (h *Handler) handleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Status domain.TransactionStatus `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.service.UpdateTransactionStatus(r.Context(), chi.URLParam(r, "id"), req.Status); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleTotalFunds(w http.ResponseWriter, r *http.Request) {
	total, err := h.service.TotalFunds(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(map[string]float64{"total": total})
}
