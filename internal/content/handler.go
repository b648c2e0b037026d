// internal/content/handler.go
package content

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
	r.Get("/settings", h.handleGetSettings)
	r.Put("/settings", h.handleUpdateSettings)
	r.Get("/gallery", h.handleGetGallery)
	r.Post("/gallery", h.handleAddGalleryItem)
	r.Delete("/gallery/{id}", h.handleDeleteGalleryItem)
	r.Get("/leadership", h.handleGetLeadership)
	r.Put("/leadership/{id}", h.handleUpdateLeadership)
}

func (h *Handler) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.service.GetSettings(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(settings)
}

func (h *Handler) handleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	var patch SettingsPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	settings, err := h.service.UpdateSettings(r.Context(), patch)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(settings)
}

func (h *Handler) handleGetGallery(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.GetGallery(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(items)
}

func (h *Handler) handleAddGalleryItem(w http.ResponseWriter, r *http.Request) {
	var item domain.GalleryItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	created, err := h.service.AddGalleryItem(r.Context(), item)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(created)
}

func (h *Handler) handleDeleteGalleryItem(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteGalleryItem(r.Context(), chi.URLParam(r, "id")); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleGetLeadership(w http.ResponseWriter, r *http.Request) {
	leaders, err := h.service.GetLeadership(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(leaders)
}

func (h *Handler) handleUpdateLeadership(w http.ResponseWriter, r *http.Request) {
	var m domain.LeadershipMember
	if err := json.NewDecoder(r.Body).Decode(&m); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	m.ID = chi.URLParam(r, "id")

	if err := h.service.UpdateLeadershipMember(r.Context(), m); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
